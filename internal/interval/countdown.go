package interval

import (
	"sync"
	"time"
)

// Scheduler runs fn every d until the returned stop function is called.
type Scheduler interface {
	Every(d time.Duration, fn func()) (stop func())
}

// TickerScheduler schedules with time.Ticker on a dedicated goroutine.
type TickerScheduler struct{}

// Every implements Scheduler.
func (TickerScheduler) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

// deps are the timer fields whose change requires a fresh schedule.
type deps struct {
	mode Mode
	work int
	rest int
}

// Countdown is the owned handle of the once-per-second schedule. At most one
// schedule is active at a time; every Restart or Cancel starts a new
// generation, and callbacks from older generations are reported stale by
// Current.
type Countdown struct {
	mu       sync.Mutex
	sched    Scheduler
	interval time.Duration
	onTick   func(gen uint64)
	stop     func()
	gen      uint64
	last     deps
}

// NewCountdown creates an inactive countdown. onTick runs on the scheduler's
// goroutine and must only hand the generation over to the control loop.
func NewCountdown(sched Scheduler, interval time.Duration, onTick func(gen uint64)) *Countdown {
	if sched == nil {
		sched = TickerScheduler{}
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Countdown{
		sched:    sched,
		interval: interval,
		onTick:   onTick,
	}
}

// Restart cancels any active schedule and starts a new one, returning its
// generation.
func (c *Countdown) Restart() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.restartLocked()
}

func (c *Countdown) restartLocked() uint64 {
	c.cancelLocked()
	gen := c.gen
	c.stop = c.sched.Every(c.interval, func() {
		if c.onTick != nil {
			c.onTick(gen)
		}
	})
	return gen
}

// Cancel stops the active schedule, if any.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
}

func (c *Countdown) cancelLocked() {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
	c.gen++
}

// Active reports whether a schedule is running.
func (c *Countdown) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

// Current reports whether gen belongs to the active schedule.
func (c *Countdown) Current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil && gen == c.gen
}

// Sync aligns the schedule with t: cancelled when t is idle, restarted when
// t runs and its mode or durations changed since the last sync or nothing is
// scheduled yet.
func (c *Countdown) Sync(t *Timer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !t.Running() {
		if c.stop != nil {
			c.cancelLocked()
		}
		return
	}
	current := deps{mode: t.Mode(), work: t.WorkMinutes(), rest: t.RestMinutes()}
	if c.stop == nil || current != c.last {
		c.restartLocked()
	}
	c.last = current
}
