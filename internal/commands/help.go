package commands

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Help renders the command reference.
func (c *Commander) Help() string {
	var b strings.Builder
	b.WriteString("Available Commands:\n\n")
	for _, cmd := range c.table {
		names := append([]string{cmd.name}, cmd.aliases...)
		label := strings.Join(names, ", ")
		if cmd.usage != cmd.name {
			label += " " + strings.TrimPrefix(cmd.usage, cmd.name+" ")
		}
		fmt.Fprintf(&b, "%-28s %s\n", label, cmd.summary)
	}
	b.WriteString("\nCommands can be used with or without a colon prefix (:)")
	return b.String()
}

func (c *Commander) handleHelp(args []string) (string, tea.Cmd, error) {
	text := c.Help()
	return "", func() tea.Msg { return ShowHelpMsg{Text: text} }, nil
}

func (c *Commander) handleTheme(args []string) (string, tea.Cmd, error) {
	return "", func() tea.Msg { return ToggleThemeMsg{} }, nil
}

func (c *Commander) handleQuit(args []string) (string, tea.Cmd, error) {
	return "Goodbye!", tea.Quit, nil
}
