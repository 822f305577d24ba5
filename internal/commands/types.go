package commands

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	// ErrUnknownCommand is returned for input that names no command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when arguments are missing or malformed.
	ErrUsage = errors.New("usage")
)

// ToggleThemeMsg asks the UI to switch between the light and dark themes.
type ToggleThemeMsg struct{}

// ShowHelpMsg asks the UI to show the help overlay.
type ShowHelpMsg struct{ Text string }

type handler func(c *Commander, args []string) (string, tea.Cmd, error)

type command struct {
	name    string
	aliases []string
	usage   string
	summary string
	run     handler
}
