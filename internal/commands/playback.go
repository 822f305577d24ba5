package commands

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"focusflow/internal/player"

	tea "github.com/charmbracelet/bubbletea"
)

func (c *Commander) handlePlay(args []string) (string, tea.Cmd, error) {
	c.player.TogglePlay()
	if c.player.Playing() {
		return "Playing " + c.player.Current().Name, nil, nil
	}
	return "Paused", nil, nil
}

func (c *Commander) handleNext(args []string) (string, tea.Cmd, error) {
	c.player.NextTrack()
	return c.nowSelected(), nil, nil
}

func (c *Commander) handlePrev(args []string) (string, tea.Cmd, error) {
	c.player.PreviousTrack()
	return c.nowSelected(), nil, nil
}

func (c *Commander) handleTrack(args []string) (string, tea.Cmd, error) {
	if len(args) != 1 {
		return "", nil, usageError("track <number>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return "", nil, usageError("track <number>")
	}
	if !c.player.SelectTrack(n - 1) {
		return "", nil, fmt.Errorf("track must be 1-%d", len(c.player.Tracks()))
	}
	return c.nowSelected(), nil, nil
}

func (c *Commander) nowSelected() string {
	tracks := c.player.Tracks()
	return fmt.Sprintf("Track %d/%d: %s", c.player.Index()+1, len(tracks), c.player.Current().Name)
}

func (c *Commander) handleSeek(args []string) (string, tea.Cmd, error) {
	if len(args) != 1 {
		return "", nil, usageError("seek <0..1>")
	}
	f, err := parseUnit(args[0])
	if err != nil {
		return "", nil, usageError("seek <0..1>")
	}
	if !c.player.Seek(f) {
		return "", nil, fmt.Errorf("track length is not known yet")
	}
	return "Seek to " + player.FormatTime(c.player.Position()), nil, nil
}

func (c *Commander) handleVolume(args []string) (string, tea.Cmd, error) {
	if len(args) != 1 {
		return "", nil, usageError("volume <0..1|+n|-n>")
	}
	v, err := parseUnit(args[0])
	if err != nil {
		return "", nil, usageError("volume <0..1|+n|-n>")
	}
	if strings.HasPrefix(args[0], "+") || strings.HasPrefix(args[0], "-") {
		v += c.player.Volume()
	}
	c.player.SetVolume(v)
	return fmt.Sprintf("Volume %d%%", int(math.Round(c.player.Volume()*100))), nil, nil
}

func (c *Commander) handlePanel(args []string) (string, tea.Cmd, error) {
	c.player.TogglePanel()
	if c.player.PanelVisible() {
		return "Player shown", nil, nil
	}
	return "Player hidden", nil, nil
}

func (c *Commander) handleInfo(args []string) (string, tea.Cmd, error) {
	if c.info != nil {
		if text := c.info(); text != "" {
			return text, nil, nil
		}
	}
	t := c.player.Current()
	return fmt.Sprintf("%s %s - %s", t.Icon, t.Name, t.Artist), nil, nil
}

// parseUnit accepts a fraction like 0.25 or a percentage like 25%.
func parseUnit(s string) (float64, error) {
	percent := false
	if n := len(s); n > 1 && s[n-1] == '%' {
		percent = true
		s = s[:n-1]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if percent {
		f /= 100
	}
	return f, nil
}
