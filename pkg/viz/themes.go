package viz

import "github.com/charmbracelet/lipgloss"

// ColorScheme defines the colors used across the interface.
type ColorScheme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Highlight  lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DarkScheme is the default scheme.
func DarkScheme() ColorScheme {
	return ColorScheme{
		Primary:    lipgloss.Color("#88c0d0"),
		Secondary:  lipgloss.Color("#a3be8c"),
		Accent:     lipgloss.Color("#b48ead"),
		Background: lipgloss.Color("#2e3440"),
		Text:       lipgloss.Color("#eceff4"),
		Muted:      lipgloss.Color("#6c7689"),
		Highlight:  lipgloss.Color("#ebcb8b"),
		Warning:    lipgloss.Color("#d08770"),
		Error:      lipgloss.Color("#bf616a"),
	}
}

// LightScheme suits terminals with a light background.
func LightScheme() ColorScheme {
	return ColorScheme{
		Primary:    lipgloss.Color("#268bd2"),
		Secondary:  lipgloss.Color("#859900"),
		Accent:     lipgloss.Color("#d33682"),
		Background: lipgloss.Color("#fdf6e3"),
		Text:       lipgloss.Color("#073642"),
		Muted:      lipgloss.Color("#93a1a1"),
		Highlight:  lipgloss.Color("#b58900"),
		Warning:    lipgloss.Color("#cb4b16"),
		Error:      lipgloss.Color("#dc322f"),
	}
}

// ColorSchemes contains all available color schemes
var ColorSchemes = map[string]ColorScheme{
	"dark":  DarkScheme(),
	"light": LightScheme(),
}

// Scheme returns the named scheme, falling back to dark.
func Scheme(name string) ColorScheme {
	if s, ok := ColorSchemes[name]; ok {
		return s
	}
	return DarkScheme()
}
