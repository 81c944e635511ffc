package clock

import (
	"sync"
	"time"
)

// Fake is a Calendar and Sleeper driven by hand. Sleep advances the
// clock instead of blocking.
type Fake struct {
	mu    sync.Mutex
	now   time.Time
	loc   *time.Location
	slept []time.Duration
}

func NewFake(now time.Time, loc *time.Location) *Fake {
	if loc == nil {
		loc = time.UTC
	}
	return &Fake{now: now, loc: loc}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Location() *time.Location { return f.loc }

func (f *Fake) Sleep(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slept = append(f.slept, d)
	f.now = f.now.Add(d)
}

// Slept lists every duration passed to Sleep, in order.
func (f *Fake) Slept() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.slept...)
}
