package commands

import (
	"fmt"
	"strconv"
	"strings"

	"focusflow/internal/interval"

	tea "github.com/charmbracelet/bubbletea"
)

func (c *Commander) handleStart(args []string) (string, tea.Cmd, error) {
	if !c.timer.Start() {
		if c.timer.Running() {
			return "", nil, fmt.Errorf("timer is already running")
		}
		return "", nil, fmt.Errorf("nothing left to count down")
	}
	return fmt.Sprintf("%s started: %s", c.timer.Mode(), interval.FormatClock(c.timer.Remaining())), nil, nil
}

func (c *Commander) handlePause(args []string) (string, tea.Cmd, error) {
	if !c.timer.Pause() {
		return "", nil, fmt.Errorf("timer is not running")
	}
	return fmt.Sprintf("Paused at %s", interval.FormatClock(c.timer.Remaining())), nil, nil
}

func (c *Commander) handleToggle(args []string) (string, tea.Cmd, error) {
	if c.timer.Running() {
		return c.handlePause(args)
	}
	return c.handleStart(args)
}

func (c *Commander) handleReset(args []string) (string, tea.Cmd, error) {
	c.timer.Reset()
	return fmt.Sprintf("%s reset to %s", c.timer.Mode(), interval.FormatClock(c.timer.Remaining())), nil, nil
}

func (c *Commander) handleSwitch(args []string) (string, tea.Cmd, error) {
	if !c.timer.SwitchMode() {
		return "", nil, fmt.Errorf("pause the timer before switching modes")
	}
	return fmt.Sprintf("Switched to %s", c.timer.Mode()), nil, nil
}

func (c *Commander) handleSet(args []string) (string, tea.Cmd, error) {
	if len(args) != 1 {
		return "", nil, usageError("set <minutes>")
	}
	minutes, err := strconv.Atoi(args[0])
	if err != nil || !c.timer.SetDuration(minutes) {
		return "", nil, fmt.Errorf("duration must be %d-%d minutes", interval.MinMinutes, interval.MaxMinutes)
	}
	return fmt.Sprintf("%s set to %d min", c.timer.Mode(), minutes), nil, nil
}

func (c *Commander) handleAdjust(args []string) (string, tea.Cmd, error) {
	if len(args) != 1 {
		return "", nil, usageError("adjust <+n|-n>")
	}
	delta, err := strconv.Atoi(strings.TrimPrefix(args[0], "+"))
	if err != nil {
		return "", nil, usageError("adjust <+n|-n>")
	}
	if !c.timer.AdjustDuration(delta) {
		return "", nil, fmt.Errorf("pause the timer before adjusting it")
	}
	return fmt.Sprintf("%s now %s", c.timer.Mode(), interval.FormatClock(c.timer.Remaining())), nil, nil
}

func (c *Commander) handlePreset(args []string) (string, tea.Cmd, error) {
	switch len(args) {
	case 1:
		p, ok := interval.FindPreset(args[0])
		if !ok {
			return "", nil, fmt.Errorf("unknown preset %q (%s)", args[0], presetNames())
		}
		if !p.Apply(c.timer) {
			return "", nil, fmt.Errorf("pause the timer before applying a preset")
		}
		return fmt.Sprintf("Preset %s applied", p.Label), nil, nil
	case 2:
		work, errW := strconv.Atoi(args[0])
		rest, errR := strconv.Atoi(args[1])
		if errW != nil || errR != nil {
			return "", nil, usageError("preset <name>|<work> <rest>")
		}
		if c.timer.Running() {
			return "", nil, fmt.Errorf("pause the timer before applying a preset")
		}
		if !c.timer.ApplyPreset(work, rest) {
			return "", nil, fmt.Errorf("durations must be %d-%d minutes", interval.MinMinutes, interval.MaxMinutes)
		}
		return fmt.Sprintf("Preset %d/%d applied", work, rest), nil, nil
	default:
		return "", nil, usageError("preset <name>|<work> <rest>")
	}
}

func presetNames() string {
	names := make([]string, len(interval.Presets))
	for i, p := range interval.Presets {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
