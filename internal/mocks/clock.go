package mocks

import (
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/pkg/clock"
)

var _ clock.Clock = (*ManualClock)(nil)

// ManualClock holds scheduled calls until Fire is invoked.
type ManualClock struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	clock   *ManualClock
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (that *ManualClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	that.mu.Lock()
	defer that.mu.Unlock()

	timer := &manualTimer{clock: that, delay: d, f: f}
	that.pending = append(that.pending, timer)

	return timer
}

func (that *manualTimer) Stop() bool {
	that.clock.mu.Lock()
	defer that.clock.mu.Unlock()

	if that.stopped || that.fired {
		return false
	}
	that.stopped = true

	return true
}

// Pending counts scheduled calls that were neither stopped nor fired.
func (that *ManualClock) Pending() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	count := 0
	for _, timer := range that.pending {
		if !timer.stopped && !timer.fired {
			count++
		}
	}

	return count
}

// Delays returns the delay of every call ever scheduled.
func (that *ManualClock) Delays() []time.Duration {
	that.mu.Lock()
	defer that.mu.Unlock()

	delays := make([]time.Duration, 0, len(that.pending))
	for _, timer := range that.pending {
		delays = append(delays, timer.delay)
	}

	return delays
}

// Fire runs every live scheduled call in order and returns how many ran.
func (that *ManualClock) Fire() int {
	that.mu.Lock()
	due := make([]*manualTimer, 0, len(that.pending))
	for _, timer := range that.pending {
		if !timer.stopped && !timer.fired {
			timer.fired = true
			due = append(due, timer)
		}
	}
	that.mu.Unlock()

	for _, timer := range due {
		timer.f()
	}

	return len(due)
}

// FireStale runs calls even if they were stopped, emulating a timer whose
// callback was already running when Stop was called.
func (that *ManualClock) FireStale() int {
	that.mu.Lock()
	due := make([]*manualTimer, 0, len(that.pending))
	for _, timer := range that.pending {
		if !timer.fired {
			timer.fired = true
			due = append(due, timer)
		}
	}
	that.mu.Unlock()

	for _, timer := range due {
		timer.f()
	}

	return len(due)
}
