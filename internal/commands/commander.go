// Package commands parses the ":" command line and applies it to the timer
// and the track player.
package commands

import (
	"fmt"
	"sort"
	"strings"

	"focusflow/internal/interval"
	"focusflow/internal/player"

	tea "github.com/charmbracelet/bubbletea"
)

// Commander dispatches command lines. Like the components it drives, it
// must only be used from the UI goroutine.
type Commander struct {
	timer  *interval.Timer
	player *player.TrackPlayer
	info   func() string
	table  []command
	lookup map[string]*command
}

// Option configures a Commander.
type Option func(*Commander)

// WithInfo sets the provider used by the info command.
func WithInfo(fn func() string) Option {
	return func(c *Commander) { c.info = fn }
}

// NewCommander builds a dispatcher over timer and player.
func NewCommander(timer *interval.Timer, tp *player.TrackPlayer, opts ...Option) *Commander {
	c := &Commander{
		timer:  timer,
		player: tp,
		table:  commandTable(),
		lookup: make(map[string]*command),
	}
	for i := range c.table {
		cmd := &c.table[i]
		c.lookup[cmd.name] = cmd
		for _, a := range cmd.aliases {
			c.lookup[a] = cmd
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute runs one command line. A leading colon is optional. The returned
// text is meant for the status line; the tea.Cmd, when non-nil, carries a
// follow-up message for the UI.
func (c *Commander) Execute(input string) (string, tea.Cmd, error) {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, ":")

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return "", nil, fmt.Errorf("empty command")
	}

	name := strings.ToLower(parts[0])
	cmd, ok := c.lookup[name]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s (type 'help' for available commands)", ErrUnknownCommand, name)
	}
	return cmd.run(c, parts[1:])
}

// Names returns every command name and alias, sorted.
func (c *Commander) Names() []string {
	names := make([]string, 0, len(c.lookup))
	for n := range c.lookup {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Usage returns the usage line of a command, or "" if it is unknown.
func (c *Commander) Usage(name string) string {
	if cmd, ok := c.lookup[strings.ToLower(name)]; ok {
		return cmd.usage
	}
	return ""
}

func usageError(cmd string) error {
	return fmt.Errorf("%w: %s", ErrUsage, cmd)
}

func commandTable() []command {
	return []command{
		{name: "start", aliases: []string{"s"}, usage: "start", summary: "Start the countdown", run: (*Commander).handleStart},
		{name: "pause", usage: "pause", summary: "Pause the countdown", run: (*Commander).handlePause},
		{name: "toggle", usage: "toggle", summary: "Start or pause the countdown", run: (*Commander).handleToggle},
		{name: "reset", aliases: []string{"r"}, usage: "reset", summary: "Reset the current phase", run: (*Commander).handleReset},
		{name: "switch", aliases: []string{"sw"}, usage: "switch", summary: "Switch between work and rest", run: (*Commander).handleSwitch},
		{name: "set", usage: "set <minutes>", summary: "Set the current phase duration (1-180)", run: (*Commander).handleSet},
		{name: "adjust", aliases: []string{"adj"}, usage: "adjust <+n|-n>", summary: "Add or remove minutes", run: (*Commander).handleAdjust},
		{name: "preset", usage: "preset <name>|<work> <rest>", summary: "Apply a preset", run: (*Commander).handlePreset},
		{name: "play", aliases: []string{"p"}, usage: "play", summary: "Toggle music playback", run: (*Commander).handlePlay},
		{name: "next", aliases: []string{"n"}, usage: "next", summary: "Next track", run: (*Commander).handleNext},
		{name: "prev", aliases: []string{"previous"}, usage: "prev", summary: "Previous track", run: (*Commander).handlePrev},
		{name: "track", aliases: []string{"t"}, usage: "track <number>", summary: "Jump to a track", run: (*Commander).handleTrack},
		{name: "seek", usage: "seek <0..1>", summary: "Seek to a fraction of the track", run: (*Commander).handleSeek},
		{name: "volume", aliases: []string{"vol"}, usage: "volume <0..1|+n|-n>", summary: "Set or step the volume", run: (*Commander).handleVolume},
		{name: "panel", usage: "panel", summary: "Show or hide the player panel", run: (*Commander).handlePanel},
		{name: "info", aliases: []string{"i"}, usage: "info", summary: "Show track tags", run: (*Commander).handleInfo},
		{name: "theme", usage: "theme", summary: "Toggle light/dark theme", run: (*Commander).handleTheme},
		{name: "help", aliases: []string{"h", "?"}, usage: "help", summary: "Show this help", run: (*Commander).handleHelp},
		{name: "quit", aliases: []string{"q", "exit"}, usage: "quit", summary: "Exit", run: (*Commander).handleQuit},
	}
}
