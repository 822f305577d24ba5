package ui

import (
	"fmt"
	"sort"
	"strings"

	"focusflow/internal/config"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultShortcuts maps single keys to command lines.
func defaultShortcuts() map[string]string {
	volumeUp := fmt.Sprintf("volume +%g", config.VolumeStep)
	volumeDown := fmt.Sprintf("volume -%g", config.VolumeStep)
	return map[string]string{
		" ": "toggle",
		"r": "reset",
		"s": "switch",
		"[": "adjust -1",
		"]": "adjust +1",
		"1": "preset classic",
		"2": "preset extended",
		"3": "preset quick",
		"p": "play",
		"n": "next",
		"b": "prev",
		"+": volumeUp,
		"=": volumeUp,
		"-": volumeDown,
		"v": "panel",
		"t": "theme",
		"i": "info",
		"?": "help",
		"q": "quit",
	}
}

// keyName normalises a key event to the names used in the shortcut map.
func keyName(msg tea.KeyMsg) string {
	if msg.Type == tea.KeySpace {
		return " "
	}
	return msg.String()
}

func (m Model) handleShortcut(key string) (Model, tea.Cmd, bool) {
	command, ok := m.shortcuts[key]
	if !ok {
		return m, nil, false
	}
	m, cmd := m.execute(command)
	return m, cmd, true
}

func (m Model) showShortcuts() string {
	keys := make([]string, 0, len(m.shortcuts))
	for k := range m.shortcuts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("Keyboard Shortcuts:\n\n")
	for _, k := range keys {
		label := k
		if k == " " {
			label = "space"
		}
		sb.WriteString(fmt.Sprintf("%-8s %s\n", label, m.shortcuts[k]))
	}
	sb.WriteString(fmt.Sprintf("%-8s %s\n", "e", "edit duration"))
	sb.WriteString(fmt.Sprintf("%-8s seek %s\n", "←/→", config.SeekStep))
	sb.WriteString(fmt.Sprintf("%-8s %s\n", ":", "command line"))
	return sb.String()
}
