package interval

import "strings"

// Preset is a named pair of work/rest durations.
type Preset struct {
	Name        string
	Label       string
	WorkMinutes int
	RestMinutes int
}

// Presets lists the built-in quick presets in display order.
var Presets = []Preset{
	{Name: "classic", Label: "25/5 Classic", WorkMinutes: 25, RestMinutes: 5},
	{Name: "extended", Label: "50/10 Extended", WorkMinutes: 50, RestMinutes: 10},
	{Name: "quick", Label: "15/3 Quick", WorkMinutes: 15, RestMinutes: 3},
}

// FindPreset looks a preset up by name, case-insensitively.
func FindPreset(name string) (Preset, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Apply applies the preset to t.
func (p Preset) Apply(t *Timer) bool {
	return t.ApplyPreset(p.WorkMinutes, p.RestMinutes)
}
