package ui

import (
	"time"

	"focusflow/internal/audio"
	"focusflow/internal/commands"
	"focusflow/internal/interval"
	"focusflow/internal/player"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 60
	tickBuffer    = 16
	commandPrompt = ":"
)

// Options are the collaborators a Model drives.
type Options struct {
	Timer  *interval.Timer
	Player *player.TrackPlayer
	// Events delivers media notifications; nil disables them.
	Events <-chan audio.Event
	// Results delivers asynchronous play outcomes; nil disables them.
	Results <-chan player.Result
	// Scheduler drives the countdown; nil uses a real ticker.
	Scheduler interval.Scheduler
	Theme     string
}

// Model is the bubbletea model for the timer and the player.
type Model struct {
	timer     *interval.Timer
	countdown *interval.Countdown
	ticks     chan uint64
	player    *player.TrackPlayer
	events    <-chan audio.Event
	results   <-chan player.Result
	commander *commands.Commander

	input         textinput.Model
	durationInput textinput.Model
	viewport      viewport.Model
	timerBar      progress.Model
	trackBar      progress.Model
	spinner       spinner.Model
	theme         Theme

	width      int
	height     int
	mainOutput string
	isError    bool
	tabOutput  string
	tabState   *TabState
	history    []string
	historyPos int
	commandOn  bool
	helpOn     bool
	exitPrompt bool
	levels     []float64
	tags       *trackTags
	shortcuts  map[string]string
}

// NewModel wires the timer, player and countdown into a Model.
func NewModel(opts Options) Model {
	sched := opts.Scheduler
	if sched == nil {
		sched = interval.TickerScheduler{}
	}
	ticks := make(chan uint64, tickBuffer)
	countdown := interval.NewCountdown(sched, time.Second, func(gen uint64) {
		select {
		case ticks <- gen:
		default:
		}
	})

	input := textinput.New()
	input.Prompt = commandPrompt
	input.Placeholder = "command (type 'help' for list)"
	input.CharLimit = 256
	input.Width = defaultWidth

	durationInput := textinput.New()
	durationInput.Prompt = ""
	durationInput.Placeholder = "minutes"
	durationInput.CharLimit = 3
	durationInput.Width = 8

	theme := NewTheme(opts.Theme)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Spinner

	m := Model{
		timer:         opts.Timer,
		countdown:     countdown,
		ticks:         ticks,
		player:        opts.Player,
		events:        opts.Events,
		results:       opts.Results,
		input:         input,
		durationInput: durationInput,
		viewport:      viewport.New(defaultWidth, 16),
		timerBar:      theme.progressBar(defaultWidth - 4),
		trackBar:      theme.progressBar(defaultWidth - 4),
		spinner:       s,
		theme:         theme,
		width:         defaultWidth,
		historyPos:    -1,
		mainOutput:    "Welcome to focusflow! Press ? for keys, : for commands.",
		tags:          &trackTags{},
		shortcuts:     defaultShortcuts(),
	}
	tags := m.tags
	tp := opts.Player
	m.commander = commands.NewCommander(opts.Timer, tp, commands.WithInfo(func() string {
		return tags.describe(tp.Token())
	}))
	return m
}

// Init starts listening for ticks, media events and play results.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		waitForTick(m.ticks),
		waitForMedia(m.events),
		waitForResult(m.results),
	)
}

// Countdown exposes the countdown so the owner can cancel it on exit.
func (m Model) Countdown() *interval.Countdown { return m.countdown }

// trackTags remembers the tags of the current load. It is shared by all
// copies of the model.
type trackTags struct {
	token uint64
	meta  *audio.Metadata
}

func (t *trackTags) set(token uint64, meta *audio.Metadata) {
	t.token = token
	t.meta = meta
}

func (t *trackTags) describe(current uint64) string {
	if t.meta == nil || t.token != current {
		return ""
	}
	return t.meta.String()
}
