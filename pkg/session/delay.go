package session

import (
	"fmt"
	"math/rand"
	"time"
)

// Delay is how long the computer pretends to think.
type Delay struct {
	Min time.Duration
	Max time.Duration
}

var DefaultDelay = Delay{Min: 500 * time.Millisecond, Max: 1500 * time.Millisecond}

func (d Delay) String() string {
	return fmt.Sprintf("%s-%s", d.Min, d.Max)
}

// Next draws a duration uniformly from [Min, Max].
func (d Delay) Next(rnd *rand.Rand) time.Duration {
	if d.Max <= d.Min {
		return d.Min
	}
	return d.Min + time.Duration(rnd.Int63n(int64(d.Max-d.Min)+1))
}

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

type SchedulerFunc func(d time.Duration, fn func())

func (f SchedulerFunc) AfterFunc(d time.Duration, fn func()) { f(d, fn) }

// SleepScheduler blocks the caller for the delay and then runs fn. It suits
// front ends that read one command at a time.
var SleepScheduler = SchedulerFunc(func(d time.Duration, fn func()) {
	time.Sleep(d)
	fn()
})

// Manual holds scheduled functions until Fire is called.
type Manual struct {
	pending []func()
	Delays  []time.Duration
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) {
	m.pending = append(m.pending, fn)
	m.Delays = append(m.Delays, d)
}

// Pending is the number of functions waiting to fire.
func (m *Manual) Pending() int { return len(m.pending) }

// Fire runs every pending function in scheduling order and reports how many ran.
func (m *Manual) Fire() int {
	pending := m.pending
	m.pending = nil
	for _, fn := range pending {
		fn()
	}
	return len(pending)
}
