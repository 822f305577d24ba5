package ui

import (
	"fmt"
	"math"
	"strings"

	"focusflow/internal/interval"
	"focusflow/internal/player"
	"focusflow/pkg/viz"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	levelHeight     = 3
	compactBarWidth = 10
)

func (m Model) View() string {
	if m.helpOn {
		return m.helpView()
	}

	var sb strings.Builder
	sb.WriteString(m.theme.Title.Render("focusflow"))
	sb.WriteString("\n")
	sb.WriteString(m.timerView())
	sb.WriteString("\n")
	sb.WriteString(m.playerView())
	sb.WriteString("\n")
	sb.WriteString(m.statusView())
	sb.WriteString("\n")
	sb.WriteString(m.promptView())
	return sb.String()
}

func (m Model) timerView() string {
	t := m.timer.Snapshot()
	modeStyle := m.theme.Work
	if t.Mode == interval.ModeRest {
		modeStyle = m.theme.Rest
	}

	var sb strings.Builder
	state := "paused"
	if t.Running {
		state = "running"
	}
	sb.WriteString(fmt.Sprintf("%s  %s\n",
		modeStyle.Render(strings.ToUpper(t.Mode.String())),
		m.theme.Muted.Render(state)))

	if t.Editing {
		sb.WriteString(m.theme.Active.Render("minutes: ") + m.durationInput.View())
		sb.WriteString(m.theme.Muted.Render("  enter to apply, esc to cancel"))
	} else {
		sb.WriteString(m.theme.Clock.Render(interval.FormatClock(t.Remaining)))
	}
	sb.WriteString("\n")
	sb.WriteString(m.timerBar.ViewAs(m.timer.Progress()))
	sb.WriteString("\n")
	sb.WriteString(m.theme.Muted.Render(fmt.Sprintf("work %dm · rest %dm", t.WorkMinutes, t.RestMinutes)))
	sb.WriteString("\n")
	sb.WriteString(m.presetsView(t))

	return m.theme.Panel.Render(sb.String())
}

func (m Model) presetsView(t interval.State) string {
	labels := make([]string, 0, len(interval.Presets))
	for i, p := range interval.Presets {
		label := fmt.Sprintf("%d %s", i+1, p.Label)
		if p.WorkMinutes == t.WorkMinutes && p.RestMinutes == t.RestMinutes {
			labels = append(labels, m.theme.Active.Render(label))
		} else {
			labels = append(labels, m.theme.Muted.Render(label))
		}
	}
	return strings.Join(labels, "  ")
}

func (m Model) playerView() string {
	p := m.player.Snapshot()
	icon := "⏸"
	if p.Playing {
		icon = "▶"
	}
	title := fmt.Sprintf("%s %s %s", icon, p.Track.Icon, trackTitle(p.Track))
	title = truncate(title, m.barWidth()+4)

	if !p.PanelVisible {
		bar := viz.Bar(compactBarWidth, m.player.Progress(), m.theme.Muted)
		return m.theme.Muted.Render(title) + " " + bar + m.theme.Muted.Render("  (v to show player)")
	}

	var sb strings.Builder
	sb.WriteString(m.theme.Text.Render(title))
	sb.WriteString("\n")
	sb.WriteString(m.trackBar.ViewAs(m.player.Progress()))
	sb.WriteString("\n")

	clock := fmt.Sprintf("%s / %s", player.FormatTime(p.Position), player.FormatTime(p.Duration))
	if p.Playing && p.Duration <= 0 {
		clock = m.spinner.View() + " loading"
	}
	sb.WriteString(fmt.Sprintf("%s   vol %d%%", clock, int(math.Round(p.Volume*100))))

	if len(m.levels) > 0 && p.Playing {
		sb.WriteString("\n")
		sb.WriteString(viz.LevelBars(m.levels, levelHeight, m.theme.Scheme))
	}

	tracks := m.player.Tracks()
	if len(tracks) > 1 {
		sb.WriteString("\n")
		for i, tr := range tracks {
			line := truncate(fmt.Sprintf("%d. %s", i+1, trackTitle(tr)), m.barWidth())
			if i == p.Index {
				sb.WriteString(m.theme.Active.Render("› " + line))
			} else {
				sb.WriteString(m.theme.Muted.Render("  " + line))
			}
			if i < len(tracks)-1 {
				sb.WriteString("\n")
			}
		}
	}

	return m.theme.Panel.Render(sb.String())
}

func trackTitle(t player.Track) string {
	name := t.Name
	if name == "" {
		name = "Untitled"
	}
	if t.Artist == "" {
		return name
	}
	return name + " - " + t.Artist
}

func (m Model) statusView() string {
	lines := strings.Split(m.mainOutput, "\n")
	for i, l := range lines {
		lines[i] = truncate(l, max(m.width, 20))
	}
	out := strings.Join(lines, "\n")
	if m.isError {
		return m.theme.Error.Render(out)
	}
	return m.theme.Status.Render(out)
}

func (m Model) promptView() string {
	if m.commandOn {
		view := m.input.View()
		if m.tabOutput != "" {
			view += "\n" + m.theme.Muted.Render(truncate(m.tabOutput, max(m.width, 20)))
		}
		return view
	}
	hints := []string{"space start/pause", "e edit", "p play", "v player", ": command", "? help"}
	return m.theme.Muted.Render(truncate(strings.Join(hints, " · "), max(m.width, 20)))
}

func (m Model) helpView() string {
	header := m.theme.Title.Render("focusflow help")
	footer := m.theme.Muted.Render("↑/↓ scroll · esc close")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), footer)
}

func truncate(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
