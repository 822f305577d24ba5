package interval

import (
	"sync"
	"testing"
	"time"
)

// fakeScheduler records schedules and fires them on demand.
type fakeScheduler struct {
	mu      sync.Mutex
	entries []*fakeEntry
}

type fakeEntry struct {
	fn      func()
	stopped bool
}

func (f *fakeScheduler) Every(d time.Duration, fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := &fakeEntry{fn: fn}
	f.entries = append(f.entries, e)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		e.stopped = true
	}
}

func (f *fakeScheduler) active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.entries {
		if !e.stopped {
			n++
		}
	}
	return n
}

// fire runs every schedule that is still active, once.
func (f *fakeScheduler) fire() {
	f.mu.Lock()
	var fns []func()
	for _, e := range f.entries {
		if !e.stopped {
			fns = append(fns, e.fn)
		}
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

type tickRecorder struct {
	mu   sync.Mutex
	gens []uint64
}

func (r *tickRecorder) record(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gens = append(r.gens, gen)
}

func (r *tickRecorder) take() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.gens
	r.gens = nil
	return out
}

func TestCountdownRestartDoesNotStack(t *testing.T) {
	sched := &fakeScheduler{}
	rec := &tickRecorder{}
	c := NewCountdown(sched, time.Second, rec.record)

	first := c.Restart()
	second := c.Restart()
	if first == second {
		t.Fatalf("expected a new generation on restart")
	}
	if sched.active() != 1 {
		t.Fatalf("expected one active schedule, got %d", sched.active())
	}

	sched.fire()
	gens := rec.take()
	if len(gens) != 1 {
		t.Fatalf("expected exactly one tick, got %d", len(gens))
	}
	if !c.Current(gens[0]) {
		t.Fatalf("expected tick from current generation")
	}
	if c.Current(first) {
		t.Fatalf("expected first generation to be stale")
	}
}

func TestCountdownCancel(t *testing.T) {
	sched := &fakeScheduler{}
	rec := &tickRecorder{}
	c := NewCountdown(sched, time.Second, rec.record)

	gen := c.Restart()
	c.Cancel()
	if c.Active() {
		t.Fatalf("expected countdown inactive after cancel")
	}
	if c.Current(gen) {
		t.Fatalf("expected cancelled generation to be stale")
	}
	sched.fire()
	if len(rec.take()) != 0 {
		t.Fatalf("expected no ticks after cancel")
	}
	c.Cancel()
}

func TestCountdownSyncFollowsTimer(t *testing.T) {
	sched := &fakeScheduler{}
	rec := &tickRecorder{}
	c := NewCountdown(sched, time.Second, rec.record)
	tm := NewTimer(1, 1)

	c.Sync(tm)
	if c.Active() {
		t.Fatalf("expected no schedule for idle timer")
	}

	tm.Start()
	c.Sync(tm)
	c.Sync(tm)
	if sched.active() != 1 || len(sched.entries) != 1 {
		t.Fatalf("expected a single schedule, got %d entries", len(sched.entries))
	}

	// Drive the timer through its whole phase; each fire yields one tick.
	for i := 0; i < 60; i++ {
		sched.fire()
		gens := rec.take()
		if len(gens) != 1 {
			t.Fatalf("expected one tick per second, got %d", len(gens))
		}
		if c.Current(gens[0]) {
			tm.Tick()
		}
		c.Sync(tm)
	}
	if tm.Mode() != ModeRest || tm.Running() {
		t.Fatalf("expected idle rest phase, got %v running=%v", tm.Mode(), tm.Running())
	}
	if c.Active() {
		t.Fatalf("expected schedule cancelled after exhaustion")
	}
}

func TestCountdownSyncRestartsOnDurationChange(t *testing.T) {
	sched := &fakeScheduler{}
	c := NewCountdown(sched, time.Second, func(uint64) {})
	tm := NewTimer(25, 5)
	tm.Start()
	c.Sync(tm)
	tm.SetDuration(30)
	c.Sync(tm)
	if len(sched.entries) != 2 {
		t.Fatalf("expected restart after duration change, got %d schedules", len(sched.entries))
	}
	if sched.active() != 1 {
		t.Fatalf("expected one active schedule, got %d", sched.active())
	}
}

func TestTickerSchedulerStops(t *testing.T) {
	var mu sync.Mutex
	count := 0
	stop := TickerScheduler{}.Every(5*time.Millisecond, func() {
		mu.Lock()
		count++
		mu.Unlock()
	})
	time.Sleep(30 * time.Millisecond)
	stop()
	stop()
	mu.Lock()
	seen := count
	mu.Unlock()
	if seen == 0 {
		t.Fatalf("expected at least one tick")
	}
	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if count > seen+1 {
		t.Fatalf("expected ticks to stop, got %d after %d", count, seen)
	}
}
