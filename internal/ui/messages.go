package ui

import (
	"focusflow/internal/audio"
	"focusflow/internal/player"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg carries the countdown generation that produced it.
type tickMsg struct{ gen uint64 }

type mediaMsg struct{ ev audio.Event }

type playResultMsg struct{ res player.Result }

func waitForTick(ch <-chan uint64) tea.Cmd {
	return func() tea.Msg {
		return tickMsg{gen: <-ch}
	}
}

func waitForMedia(ch <-chan audio.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return mediaMsg{ev: ev}
	}
}

func waitForResult(ch <-chan player.Result) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return nil
		}
		return playResultMsg{res: res}
	}
}
