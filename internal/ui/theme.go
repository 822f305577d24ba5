package ui

import (
	"focusflow/pkg/viz"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles for one colour scheme.
type Theme struct {
	Name   string
	Scheme viz.ColorScheme

	Title   lipgloss.Style
	Panel   lipgloss.Style
	Work    lipgloss.Style
	Rest    lipgloss.Style
	Clock   lipgloss.Style
	Muted   lipgloss.Style
	Text    lipgloss.Style
	Active  lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Key     lipgloss.Style
	Spinner lipgloss.Style
}

// NewTheme builds the styles for the named scheme ("dark" or "light").
func NewTheme(name string) Theme {
	s := viz.Scheme(name)
	if _, ok := viz.ColorSchemes[name]; !ok {
		name = "dark"
	}
	return Theme{
		Name:   name,
		Scheme: s,

		Title: lipgloss.NewStyle().Bold(true).Foreground(s.Primary),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(s.Muted).
			Padding(0, 1),
		Work:    lipgloss.NewStyle().Bold(true).Foreground(s.Warning),
		Rest:    lipgloss.NewStyle().Bold(true).Foreground(s.Secondary),
		Clock:   lipgloss.NewStyle().Bold(true).Foreground(s.Text),
		Muted:   lipgloss.NewStyle().Foreground(s.Muted),
		Text:    lipgloss.NewStyle().Foreground(s.Text),
		Active:  lipgloss.NewStyle().Bold(true).Foreground(s.Highlight),
		Status:  lipgloss.NewStyle().Foreground(s.Primary),
		Error:   lipgloss.NewStyle().Foreground(s.Error),
		Key:     lipgloss.NewStyle().Foreground(s.Accent),
		Spinner: lipgloss.NewStyle().Foreground(s.Accent),
	}
}

// Toggled returns the other theme.
func (t Theme) Toggled() Theme {
	if t.Name == "light" {
		return NewTheme("dark")
	}
	return NewTheme("light")
}

func (t Theme) progressBar(width int) progress.Model {
	return progress.New(
		progress.WithGradient(string(t.Scheme.Primary), string(t.Scheme.Accent)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
}
