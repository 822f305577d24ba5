package ui

import (
	"sort"
	"strings"

	"focusflow/internal/interval"
)

// TabState holds the completion cycle in progress.
type TabState struct {
	Completions  []string
	CurrentIndex int
	Prefix       string
	Partial      string
}

// handleTabCompletion completes the command name, or a preset name after
// "preset ".
func (m *Model) handleTabCompletion() {
	input := m.input.Value()
	parts := strings.Fields(input)
	trailingSpace := strings.HasSuffix(input, " ")

	var prefix, partial string
	var candidates []string
	switch {
	case len(parts) == 0 || (len(parts) == 1 && !trailingSpace):
		if len(parts) == 1 {
			partial = strings.ToLower(parts[0])
		}
		candidates = m.commander.Names()
	case strings.ToLower(parts[0]) == "preset" && (len(parts) == 1 || (len(parts) == 2 && !trailingSpace)):
		prefix = "preset "
		if len(parts) == 2 {
			partial = strings.ToLower(parts[1])
		}
		for _, p := range interval.Presets {
			candidates = append(candidates, p.Name)
		}
	default:
		m.clearTabCompletion()
		return
	}

	// Tabbing again on the value we filled in cycles the same list.
	if st := m.tabState; st != nil && st.Prefix == prefix && len(st.Completions) > 0 &&
		st.Completions[st.CurrentIndex] == partial {
		st.CurrentIndex = (st.CurrentIndex + 1) % len(st.Completions)
		m.applyCompletion()
		return
	}

	var completions []string
	for _, c := range candidates {
		if strings.HasPrefix(c, partial) {
			completions = append(completions, c)
		}
	}
	if len(completions) == 0 {
		m.clearTabCompletion()
		return
	}
	sort.Strings(completions)

	m.tabState = &TabState{
		Completions: completions,
		Prefix:      prefix,
		Partial:     partial,
	}
	m.applyCompletion()
}

func (m *Model) applyCompletion() {
	st := m.tabState
	current := st.Completions[st.CurrentIndex]
	m.input.SetValue(st.Prefix + current)
	m.input.CursorEnd()

	if len(st.Completions) == 1 {
		m.tabOutput = ""
		if usage := m.commander.Usage(current); usage != "" && st.Prefix == "" {
			m.tabOutput = usage
		}
		return
	}
	var sb strings.Builder
	for i, c := range st.Completions {
		if i > 0 {
			sb.WriteString("  ")
		}
		if i == st.CurrentIndex {
			sb.WriteString("[" + c + "]")
		} else {
			sb.WriteString(c)
		}
	}
	m.tabOutput = sb.String()
}

func (m *Model) clearTabCompletion() {
	m.tabState = nil
	m.tabOutput = ""
}
