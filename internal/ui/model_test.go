package ui

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"focusflow/internal/audio"
	"focusflow/internal/config"
	"focusflow/internal/interval"
	"focusflow/internal/logging"
	"focusflow/internal/player"

	tea "github.com/charmbracelet/bubbletea"
)

type manualScheduler struct {
	fns  map[int]func()
	next int
}

func (s *manualScheduler) Every(d time.Duration, fn func()) func() {
	id := s.next
	s.next++
	s.fns[id] = fn
	return func() { delete(s.fns, id) }
}

func (s *manualScheduler) fire() {
	for _, fn := range s.fns {
		fn()
	}
}

type fakeMedia struct {
	token  uint64
	loads  []string
	plays  int
	volume float64
	done   []func(player.Result)
}

func (f *fakeMedia) Load(source string) uint64 {
	f.token++
	f.loads = append(f.loads, source)
	return f.token
}

func (f *fakeMedia) Play(done func(player.Result)) {
	f.plays++
	f.done = append(f.done, done)
}

func (f *fakeMedia) Pause()              {}
func (f *fakeMedia) Seek(float64)        {}
func (f *fakeMedia) SetVolume(v float64) { f.volume = v }

type harness struct {
	t       *testing.T
	m       Model
	sched   *manualScheduler
	media   *fakeMedia
	results chan player.Result
}

func newHarness(t *testing.T, tracks ...player.Track) *harness {
	t.Helper()
	logging.SetOutput(io.Discard)
	t.Cleanup(func() { logging.SetOutput(nil) })

	if len(tracks) == 0 {
		tracks = []player.Track{
			{Name: "one", Artist: "a", Source: "1.mp3"},
			{Name: "two", Artist: "b", Source: "2.mp3"},
		}
	}
	h := &harness{
		t:       t,
		sched:   &manualScheduler{fns: make(map[int]func())},
		media:   &fakeMedia{},
		results: make(chan player.Result, 4),
	}
	tp, err := player.New(h.media, tracks, player.WithResultHandler(func(res player.Result) {
		h.results <- res
	}))
	if err != nil {
		t.Fatalf("player.New failed: %v", err)
	}
	h.m = NewModel(Options{
		Timer:     interval.NewTimer(25, 5),
		Player:    tp,
		Results:   h.results,
		Scheduler: h.sched,
	})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) key(s string) tea.Cmd {
	h.t.Helper()
	switch s {
	case " ":
		return h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	case "enter":
		return h.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return h.send(tea.KeyMsg{Type: tea.KeyEsc})
	case "tab":
		return h.send(tea.KeyMsg{Type: tea.KeyTab})
	case "left":
		return h.send(tea.KeyMsg{Type: tea.KeyLeft})
	case "right":
		return h.send(tea.KeyMsg{Type: tea.KeyRight})
	case "ctrl+c":
		return h.send(tea.KeyMsg{Type: tea.KeyCtrlC})
	}
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.key(string(r))
	}
}

// tick fires the scheduler and delivers whatever generation it produced.
func (h *harness) tick() {
	h.t.Helper()
	h.sched.fire()
	select {
	case gen := <-h.m.ticks:
		h.send(tickMsg{gen: gen})
	default:
		h.t.Fatalf("expected a scheduled tick")
	}
}

func TestSpaceStartsAndPausesCountdown(t *testing.T) {
	h := newHarness(t)
	h.key(" ")
	if !h.m.timer.Running() || !h.m.countdown.Active() {
		t.Fatalf("expected running timer with an active countdown")
	}
	h.tick()
	if h.m.timer.Remaining() != 25*60-1 {
		t.Fatalf("expected one second elapsed, got %d", h.m.timer.Remaining())
	}

	h.key(" ")
	if h.m.timer.Running() || h.m.countdown.Active() {
		t.Fatalf("expected paused timer without a countdown")
	}
}

func TestStaleTickIsIgnored(t *testing.T) {
	h := newHarness(t)
	h.key(" ")
	h.sched.fire()
	stale := <-h.m.ticks

	h.key(" ")
	h.key(" ")
	h.send(tickMsg{gen: stale})
	if h.m.timer.Remaining() != 25*60 {
		t.Fatalf("expected stale tick to be dropped, got %d", h.m.timer.Remaining())
	}
}

func TestFullWorkPhaseFlipsToRest(t *testing.T) {
	h := newHarness(t)
	h.key("3") // quick preset: 15/3
	h.key(" ")
	for i := 0; i < 15*60; i++ {
		h.tick()
	}
	if h.m.timer.Mode() != interval.ModeRest || h.m.timer.Remaining() != 3*60 || h.m.timer.Running() {
		t.Fatalf("expected idle rest with 180s, got %v %d %v",
			h.m.timer.Mode(), h.m.timer.Remaining(), h.m.timer.Running())
	}
	if h.m.countdown.Active() {
		t.Fatalf("expected countdown cancelled after the flip")
	}
	if !strings.Contains(h.m.mainOutput, "finished") {
		t.Fatalf("expected a phase-end message, got %q", h.m.mainOutput)
	}
}

func TestEditDuration(t *testing.T) {
	h := newHarness(t)
	h.key("e")
	if !h.m.timer.Editing() {
		t.Fatalf("expected edit mode")
	}
	h.m.durationInput.SetValue("")
	h.typeText("40")
	h.key("enter")
	if h.m.timer.Editing() || h.m.timer.Remaining() != 40*60 {
		t.Fatalf("expected 40 minutes applied, got %d", h.m.timer.Remaining())
	}

	h.key("e")
	h.m.durationInput.SetValue("999")
	h.key("enter")
	if h.m.timer.Editing() || h.m.timer.Remaining() != 40*60 {
		t.Fatalf("expected invalid entry ignored, got %d", h.m.timer.Remaining())
	}

	h.key("e")
	h.key("esc")
	if h.m.timer.Editing() {
		t.Fatalf("expected escape to leave edit mode")
	}
}

func TestEditRejectedWhileRunning(t *testing.T) {
	h := newHarness(t)
	h.key(" ")
	h.key("e")
	if h.m.timer.Editing() {
		t.Fatalf("expected edit to be refused while running")
	}
}

func TestCommandLine(t *testing.T) {
	h := newHarness(t)
	h.key(":")
	if !h.m.commandOn {
		t.Fatalf("expected command line open")
	}
	if h.m.input.Value() != "" {
		t.Fatalf("expected the colon not to be typed, got %q", h.m.input.Value())
	}
	h.typeText("set 10")
	h.key("enter")
	if h.m.commandOn {
		t.Fatalf("expected command line closed")
	}
	if h.m.timer.Remaining() != 600 {
		t.Fatalf("expected 600s, got %d", h.m.timer.Remaining())
	}

	h.key(":")
	h.typeText("bogus")
	h.key("enter")
	if !h.m.isError || !strings.HasPrefix(h.m.mainOutput, "Error:") {
		t.Fatalf("expected an error line, got %q", h.m.mainOutput)
	}
}

func TestCommandHistory(t *testing.T) {
	h := newHarness(t)
	h.key(":")
	h.typeText("set 10")
	h.key("enter")
	h.key(":")
	h.send(tea.KeyMsg{Type: tea.KeyUp})
	if h.m.input.Value() != "set 10" {
		t.Fatalf("expected history recall, got %q", h.m.input.Value())
	}
	h.send(tea.KeyMsg{Type: tea.KeyDown})
	if h.m.input.Value() != "" {
		t.Fatalf("expected empty input after history end, got %q", h.m.input.Value())
	}
}

func TestTabCompletion(t *testing.T) {
	h := newHarness(t)
	h.key(":")
	h.typeText("pre")
	h.key("tab")
	if h.m.input.Value() != "preset" {
		t.Fatalf("expected preset, got %q", h.m.input.Value())
	}
	h.typeText(" ex")
	h.key("tab")
	if h.m.input.Value() != "preset extended" {
		t.Fatalf("expected preset extended, got %q", h.m.input.Value())
	}

	h.m.input.SetValue("p")
	h.key("tab")
	first := h.m.input.Value()
	h.key("tab")
	if h.m.input.Value() == first {
		t.Fatalf("expected repeated tab to cycle, stayed at %q", first)
	}
}

func TestPlayRejectionIsReconciled(t *testing.T) {
	h := newHarness(t)
	h.key("p")
	if !h.m.player.Playing() || h.media.plays != 1 {
		t.Fatalf("expected optimistic play")
	}
	h.media.done[0](player.Rejected(0, errors.New("autoplay blocked")))
	h.send(playResultMsg{res: <-h.results})
	if h.m.player.Playing() {
		t.Fatalf("expected playing flag rolled back")
	}
	if !h.m.isError {
		t.Fatalf("expected the rejection to be shown")
	}
}

func TestMediaEvents(t *testing.T) {
	h := newHarness(t, player.Track{Source: "x.mp3"}, player.Track{Name: "b", Source: "y.mp3"})
	token := h.m.player.Token()

	h.send(mediaMsg{ev: audio.Event{Kind: audio.EventDuration, Token: token, Value: 120}})
	h.send(mediaMsg{ev: audio.Event{Kind: audio.EventPosition, Token: token, Value: 30}})
	if h.m.player.Duration() != 120 || h.m.player.Position() != 30 {
		t.Fatalf("expected 30/120, got %v/%v", h.m.player.Position(), h.m.player.Duration())
	}

	h.send(mediaMsg{ev: audio.Event{Kind: audio.EventPosition, Token: token + 7, Value: 90}})
	if h.m.player.Position() != 30 {
		t.Fatalf("expected stale position ignored")
	}

	meta := &audio.Metadata{Title: "Tagged", Artist: "Tagger"}
	h.send(mediaMsg{ev: audio.Event{Kind: audio.EventMetadata, Token: token, Metadata: meta}})
	if cur := h.m.player.Current(); cur.Name != "Tagged" || cur.Artist != "Tagger" {
		t.Fatalf("expected tag fallback, got %+v", cur)
	}
	out, _, _ := h.m.commander.Execute("info")
	if !strings.Contains(out, "Tagged") {
		t.Fatalf("expected info to show tags, got %q", out)
	}

	h.send(mediaMsg{ev: audio.Event{Kind: audio.EventEnded, Token: token}})
	if h.m.player.Index() != 1 {
		t.Fatalf("expected advance on end, got %d", h.m.player.Index())
	}
}

func TestMediaFailureStopsPlaying(t *testing.T) {
	h := newHarness(t)
	h.key("p")
	if !h.m.player.Playing() {
		t.Fatalf("expected optimistic play")
	}
	token := h.m.player.Token()
	h.send(mediaMsg{ev: audio.Event{Kind: audio.EventFailed, Token: token, Err: errors.New("device unplugged")}})
	if h.m.player.Playing() {
		t.Fatalf("expected playing flag rolled back after a failure")
	}
	if !h.m.isError || !strings.Contains(h.m.mainOutput, "device unplugged") {
		t.Fatalf("expected the failure to be shown, got %q", h.m.mainOutput)
	}
}

func TestSeekKeys(t *testing.T) {
	h := newHarness(t)
	token := h.m.player.Token()
	h.send(mediaMsg{ev: audio.Event{Kind: audio.EventDuration, Token: token, Value: 100}})
	h.key("right")
	if want := config.SeekStep.Seconds(); h.m.player.Position() != want {
		t.Fatalf("expected %vs, got %v", want, h.m.player.Position())
	}
	h.key("left")
	h.key("left")
	if h.m.player.Position() != 0 {
		t.Fatalf("expected clamp to 0, got %v", h.m.player.Position())
	}
}

func TestVolumeKeys(t *testing.T) {
	h := newHarness(t)
	h.key("+")
	want := config.DefaultVolume + config.VolumeStep
	if got := h.m.player.Volume(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
	h.key("-")
	h.key("-")
	want = config.DefaultVolume - config.VolumeStep
	if got := h.m.player.Volume(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestThemeAndHelp(t *testing.T) {
	h := newHarness(t)
	start := h.m.theme.Name
	cmd := h.key("t")
	h.send(cmd())
	if h.m.theme.Name == start {
		t.Fatalf("expected theme to change from %s", start)
	}

	cmd = h.key("?")
	h.send(cmd())
	if !h.m.helpOn {
		t.Fatalf("expected help overlay")
	}
	if !strings.Contains(h.m.View(), "help") {
		t.Fatalf("expected help view")
	}
	h.key("esc")
	if h.m.helpOn {
		t.Fatalf("expected help closed")
	}
}

func TestCtrlCNeedsConfirmation(t *testing.T) {
	h := newHarness(t)
	if cmd := h.key("ctrl+c"); cmd != nil {
		t.Fatalf("expected no quit on first ctrl+c")
	}
	cmd := h.key("ctrl+c")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}

func TestViewRendersState(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 80, Height: 30})
	view := h.m.View()
	for _, want := range []string{"WORK", "25:00", "one - a", "(v to show player)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}

	h.key("v")
	view = h.m.View()
	for _, want := range []string{"0:00 / 0:00", "vol 30%", "2. two - b"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in panel view:\n%s", want, view)
		}
	}

	h.key("v")
	token := h.m.player.Token()
	h.send(mediaMsg{ev: audio.Event{Kind: audio.EventDuration, Token: token, Value: 100}})
	h.send(mediaMsg{ev: audio.Event{Kind: audio.EventPosition, Token: token, Value: 50}})
	if view = h.m.View(); !strings.Contains(view, "█████░░░░░") {
		t.Fatalf("expected a half-filled compact bar in view:\n%s", view)
	}
}
