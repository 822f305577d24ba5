package ui

import (
	"fmt"
	"strings"

	"focusflow/internal/audio"
	"focusflow/internal/commands"
	"focusflow/internal/config"
	"focusflow/internal/interval"
	"focusflow/internal/logging"
	"focusflow/internal/player"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update is the single place timer and player state change.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		if m.countdown.Current(msg.gen) && m.timer.Tick() {
			m.setOutput(fmt.Sprintf("%s finished, %s is up next (%s). Press space to start.",
				m.timer.Mode().Other(), m.timer.Mode(), interval.FormatClock(m.timer.Remaining())))
		}
		m.countdown.Sync(m.timer)
		return m, waitForTick(m.ticks)

	case mediaMsg:
		m.handleMedia(msg.ev)
		return m, waitForMedia(m.events)

	case playResultMsg:
		if m.player.Reconcile(msg.res) {
			m.setError(msg.res.Err)
		}
		return m, waitForResult(m.results)

	case commands.ToggleThemeMsg:
		m.applyTheme(m.theme.Toggled())
		m.setOutput(fmt.Sprintf("Theme: %s", m.theme.Name))
		return m, nil

	case commands.ShowHelpMsg:
		m.helpOn = true
		m.viewport.SetContent(msg.Text + "\n\n" + m.showShortcuts())
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// cursor blink
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.durationInput, cmd = m.durationInput.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		if m.exitPrompt {
			return m, tea.Quit
		}
		m.exitPrompt = true
		m.setOutput("Press Ctrl+C again to exit or any other key to continue...")
		return m, nil
	}
	m.exitPrompt = false

	switch {
	case m.helpOn:
		return m.handleHelpKey(msg)
	case m.timer.Editing():
		return m.handleEditKey(msg)
	case m.commandOn:
		return m.handleCommandKey(msg)
	}

	switch msg.Type {
	case tea.KeyLeft:
		m.player.SeekBy(-config.SeekStep.Seconds())
		return m, nil
	case tea.KeyRight:
		m.player.SeekBy(config.SeekStep.Seconds())
		return m, nil
	}

	switch key := keyName(msg); key {
	case ":":
		m.commandOn = true
		m.input.SetValue("")
		m.clearTabCompletion()
		cmd := m.input.Focus()
		return m, cmd
	case "e":
		if !m.timer.BeginEdit() {
			m.setOutput("Pause the timer to edit its duration")
			return m, nil
		}
		m.durationInput.SetValue(fmt.Sprintf("%d", m.timer.DurationFor(m.timer.Mode())))
		m.durationInput.CursorEnd()
		cmd := m.durationInput.Focus()
		return m, cmd
	default:
		var cmd tea.Cmd
		m, cmd, _ = m.handleShortcut(key)
		return m, cmd
	}
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch keyName(msg) {
	case "esc", "q", "?", "enter":
		m.helpOn = false
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		text := m.durationInput.Value()
		if m.timer.SubmitDuration(text) {
			m.setOutput(fmt.Sprintf("%s set to %s", m.timer.Mode(), interval.FormatClock(m.timer.Remaining())))
		}
		m.durationInput.Blur()
		m.countdown.Sync(m.timer)
		return m, nil
	case tea.KeyEsc:
		m.timer.CancelEdit()
		m.durationInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.durationInput, cmd = m.durationInput.Update(msg)
	return m, cmd
}

func (m Model) handleCommandKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeCommandLine()
		return m, nil

	case tea.KeyTab:
		m.handleTabCompletion()
		return m, nil

	case tea.KeyUp:
		if m.historyPos < len(m.history)-1 {
			m.historyPos++
			m.input.SetValue(m.history[len(m.history)-1-m.historyPos])
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if m.historyPos > 0 {
			m.historyPos--
			m.input.SetValue(m.history[len(m.history)-1-m.historyPos])
			m.input.CursorEnd()
		} else if m.historyPos == 0 {
			m.historyPos = -1
			m.input.SetValue("")
		}
		return m, nil

	case tea.KeyEnter:
		line := strings.TrimSpace(m.input.Value())
		m.closeCommandLine()
		if line == "" {
			return m, nil
		}
		m.history = append(m.history, line)
		return m.execute(line)
	}

	m.clearTabCompletion()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeCommandLine() {
	m.commandOn = false
	m.historyPos = -1
	m.input.SetValue("")
	m.input.Blur()
	m.clearTabCompletion()
}

// execute runs a command line and keeps the countdown in step with the
// timer afterwards.
func (m Model) execute(line string) (Model, tea.Cmd) {
	output, cmd, err := m.commander.Execute(line)
	m.countdown.Sync(m.timer)
	if err != nil {
		m.setError(err)
		return m, cmd
	}
	if output != "" {
		m.setOutput(output)
	}
	return m, cmd
}

func (m *Model) handleMedia(ev audio.Event) {
	if ev.Token != m.player.Token() {
		return
	}
	switch ev.Kind {
	case audio.EventPosition:
		m.player.OnPositionUpdate(ev.Token, ev.Value)
	case audio.EventDuration:
		m.player.OnDurationKnown(ev.Token, ev.Value)
	case audio.EventReady:
		m.player.OnMediaReady(ev.Token)
	case audio.EventEnded:
		m.levels = nil
		m.player.OnTrackEnded(ev.Token)
	case audio.EventFailed:
		m.levels = nil
		m.player.Reconcile(player.Rejected(ev.Token, ev.Err))
		m.setError(fmt.Errorf("cannot play %s: %w", m.player.Current().Name, ev.Err))
	case audio.EventMetadata:
		m.tags.set(ev.Token, ev.Metadata)
		cur := m.player.Current()
		var name, artist string
		if cur.Name == "" {
			name = ev.Metadata.Title
		}
		if cur.Artist == "" {
			artist = ev.Metadata.Artist
		}
		m.player.UpdateTrack(m.player.Index(), name, artist)
	case audio.EventLevels:
		if m.player.Playing() {
			m.levels = ev.Levels
		}
	}
}

func (m *Model) setOutput(s string) {
	m.mainOutput = s
	m.isError = false
}

func (m *Model) setError(err error) {
	logging.Error("ui", err)
	m.mainOutput = fmt.Sprintf("Error: %v", err)
	m.isError = true
}

func (m *Model) applyTheme(t Theme) {
	m.theme = t
	m.spinner.Style = t.Spinner
	m.timerBar = t.progressBar(m.barWidth())
	m.trackBar = t.progressBar(m.barWidth())
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.timerBar.Width = m.barWidth()
	m.trackBar.Width = m.barWidth()
	m.input.Width = max(width-4, 10)
	m.viewport.Width = max(width-4, 10)
	m.viewport.Height = max(height-6, 5)
}

func (m Model) barWidth() int {
	return max(min(m.width, 80)-8, 10)
}
