package ui

import tea "github.com/charmbracelet/bubbletea"

// TUI wraps our Bubble Tea program.
type TUI struct {
	model   Model
	program *tea.Program
}

// New returns a TUI around model.
func New(model Model) *TUI {
	return &TUI{model: model}
}

// Start runs the main loop until the user quits.
func (t *TUI) Start() error {
	defer t.model.Countdown().Cancel()
	t.program = tea.NewProgram(t.model, tea.WithAltScreen())
	_, err := t.program.Run()
	return err
}
