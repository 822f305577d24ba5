// Package viz renders small terminal graphics: colour schemes, fill bars
// and level meters.
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var levelRunes = []rune(" ▁▂▃▄▅▆▇█")

// Bar draws a horizontal bar filled to fill in [0,1].
func Bar(width int, fill float64, style lipgloss.Style) string {
	if width < 1 {
		return ""
	}

	filled := int(float64(width) * clamp01(fill))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled)
	if filled < width {
		bar += strings.Repeat("░", width-filled)
	}

	return style.Render(bar)
}

// LevelBars draws one column per level, height rows tall, coloured from
// scheme.Primary (quiet) to scheme.Accent (loud).
func LevelBars(levels []float64, height int, scheme ColorScheme) string {
	if len(levels) == 0 || height < 1 {
		return ""
	}

	steps := len(levelRunes) - 1
	rows := make([]string, height)
	for row := 0; row < height; row++ {
		var sb strings.Builder
		// row 0 is the top
		base := float64(height-1-row) / float64(height)
		for _, l := range levels {
			l = clamp01(l)
			part := (l - base) * float64(height)
			idx := int(clamp01(part) * float64(steps))
			r := levelRunes[idx]
			if idx == 0 {
				sb.WriteRune(r)
				continue
			}
			style := lipgloss.NewStyle().Foreground(GradientColor(l, scheme))
			sb.WriteString(style.Render(string(r)))
		}
		rows[row] = sb.String()
	}
	return strings.Join(rows, "\n")
}

// GradientColor interpolates between the primary and accent colours.
func GradientColor(intensity float64, scheme ColorScheme) lipgloss.Color {
	intensity = clamp01(intensity)
	r1, g1, b1 := hexToRGB(string(scheme.Primary))
	r2, g2, b2 := hexToRGB(string(scheme.Accent))

	r := int(float64(r1) + intensity*float64(r2-r1))
	g := int(float64(g1) + intensity*float64(g2-g1))
	b := int(float64(b1) + intensity*float64(b2-b1))

	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

func hexToRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string(hex[0]) + string(hex[0]) +
			string(hex[1]) + string(hex[1]) +
			string(hex[2]) + string(hex[2])
	}

	var r, g, b int
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}

func clamp01(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
