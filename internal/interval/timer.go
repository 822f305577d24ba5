// Package interval implements the work/rest countdown state machine and the
// ticker handle that drives it once per second.
package interval

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode is the phase of the cycle.
type Mode int

const (
	ModeWork Mode = iota
	ModeRest
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeWork:
		return "Work"
	case ModeRest:
		return "Rest"
	default:
		return "Unknown"
	}
}

// Other returns the mode the cycle flips to.
func (m Mode) Other() Mode {
	if m == ModeWork {
		return ModeRest
	}
	return ModeWork
}

// Duration limits in minutes.
const (
	MinMinutes = 1
	MaxMinutes = 180

	DefaultWorkMinutes = 25
	DefaultRestMinutes = 5
)

// ValidMinutes reports whether minutes is an accepted configured duration.
func ValidMinutes(minutes int) bool {
	return minutes >= MinMinutes && minutes <= MaxMinutes
}

// State is a read-only snapshot for renderers.
type State struct {
	Mode        Mode
	Remaining   int
	Total       int
	Running     bool
	Editing     bool
	WorkMinutes int
	RestMinutes int
}

// Timer owns the countdown. It is not safe for concurrent use; all calls are
// expected from a single control loop.
type Timer struct {
	mode        Mode
	workMinutes int
	restMinutes int
	remaining   int
	running     bool
	editing     bool
}

// NewTimer returns an idle timer in work mode. Out-of-range durations fall
// back to the defaults.
func NewTimer(workMinutes, restMinutes int) *Timer {
	if !ValidMinutes(workMinutes) {
		workMinutes = DefaultWorkMinutes
	}
	if !ValidMinutes(restMinutes) {
		restMinutes = DefaultRestMinutes
	}
	t := &Timer{
		mode:        ModeWork,
		workMinutes: workMinutes,
		restMinutes: restMinutes,
	}
	t.remaining = t.DurationFor(ModeWork) * 60
	return t
}

// DurationFor returns the configured minutes of a mode.
func (t *Timer) DurationFor(mode Mode) int {
	if mode == ModeRest {
		return t.restMinutes
	}
	return t.workMinutes
}

func (t *Timer) setDurationFor(mode Mode, minutes int) {
	if mode == ModeRest {
		t.restMinutes = minutes
	} else {
		t.workMinutes = minutes
	}
}

func (t *Timer) Mode() Mode       { return t.mode }
func (t *Timer) Remaining() int   { return t.remaining }
func (t *Timer) Running() bool    { return t.running }
func (t *Timer) Editing() bool    { return t.editing }
func (t *Timer) WorkMinutes() int { return t.workMinutes }
func (t *Timer) RestMinutes() int { return t.restMinutes }

// Snapshot returns the current state.
func (t *Timer) Snapshot() State {
	return State{
		Mode:        t.mode,
		Remaining:   t.remaining,
		Total:       t.DurationFor(t.mode) * 60,
		Running:     t.running,
		Editing:     t.editing,
		WorkMinutes: t.workMinutes,
		RestMinutes: t.restMinutes,
	}
}

// Progress returns the elapsed fraction of the current phase in [0,1].
func (t *Timer) Progress() float64 {
	total := t.DurationFor(t.mode) * 60
	if total <= 0 {
		return 0
	}
	p := float64(total-t.remaining) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Tick advances the countdown by one second. It returns true when the phase
// was exhausted and the mode flipped. Ticks while idle are ignored.
func (t *Timer) Tick() bool {
	if !t.running {
		return false
	}
	if t.remaining > 1 {
		t.remaining--
		return false
	}
	t.running = false
	t.mode = t.mode.Other()
	t.remaining = t.DurationFor(t.mode) * 60
	return true
}

// Start begins counting down. It leaves edit mode and does nothing when no
// time is left or the timer already runs.
func (t *Timer) Start() bool {
	if t.running || t.remaining <= 0 {
		return false
	}
	t.editing = false
	t.running = true
	return true
}

// Pause stops counting down, keeping the remaining time.
func (t *Timer) Pause() bool {
	if !t.running {
		return false
	}
	t.running = false
	return true
}

// Toggle starts an idle timer or pauses a running one.
func (t *Timer) Toggle() bool {
	if t.running {
		return t.Pause()
	}
	return t.Start()
}

// Reset discards countdown progress for the current mode.
func (t *Timer) Reset() {
	t.running = false
	t.remaining = t.DurationFor(t.mode) * 60
}

// SwitchMode flips between work and rest. Rejected while running.
func (t *Timer) SwitchMode() bool {
	if t.running {
		return false
	}
	t.mode = t.mode.Other()
	t.remaining = t.DurationFor(t.mode) * 60
	t.running = false
	return true
}

// AdjustDuration shifts the remaining time by deltaMinutes, with a floor of
// one minute, and stores the whole minutes as the current mode's duration.
// The result is also capped at MaxMinutes; plain adjustment has no upper
// bound, the cap keeps the stored duration within ValidMinutes. Leftover
// seconds are carried, so a paused 24:30 adjusted by +1 becomes 25:30 with a
// configured duration of 25. Rejected while running.
func (t *Timer) AdjustDuration(deltaMinutes int) bool {
	if t.running {
		return false
	}
	newSeconds := t.remaining + deltaMinutes*60
	if newSeconds < MinMinutes*60 {
		newSeconds = MinMinutes * 60
	}
	if newSeconds > MaxMinutes*60 {
		newSeconds = MaxMinutes * 60
	}
	t.remaining = newSeconds
	t.setDurationFor(t.mode, newSeconds/60)
	return true
}

// SetDuration sets the current mode's duration and restarts its countdown.
// Values outside [MinMinutes, MaxMinutes] are ignored. Edit mode is always
// left.
func (t *Timer) SetDuration(minutes int) bool {
	t.editing = false
	if !ValidMinutes(minutes) {
		return false
	}
	t.setDurationFor(t.mode, minutes)
	t.remaining = minutes * 60
	return true
}

// SubmitDuration parses typed minutes and applies them like SetDuration.
// Only the leading integer counts, so "12.5" and "12min" both mean 12; text
// without one is ignored.
func (t *Timer) SubmitDuration(text string) bool {
	minutes, ok := leadingInt(text)
	if !ok {
		t.editing = false
		return false
	}
	return t.SetDuration(minutes)
}

// leadingInt reads an optionally signed run of digits at the start of s,
// after leading spaces.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// BeginEdit enters edit mode. Only possible while idle.
func (t *Timer) BeginEdit() bool {
	if t.running {
		return false
	}
	t.editing = true
	return true
}

// CancelEdit leaves edit mode without changes.
func (t *Timer) CancelEdit() {
	t.editing = false
}

// ApplyPreset sets both durations and returns to the start of a work phase.
// Rejected while running or when either value is out of range.
func (t *Timer) ApplyPreset(workMinutes, restMinutes int) bool {
	if t.running || !ValidMinutes(workMinutes) || !ValidMinutes(restMinutes) {
		return false
	}
	t.workMinutes = workMinutes
	t.restMinutes = restMinutes
	t.mode = ModeWork
	t.remaining = workMinutes * 60
	return true
}

// FormatClock renders seconds as zero-padded MM:SS. Minutes are not wrapped
// into hours.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
