package clock

import (
	"sync"
	"time"
)

// Fake is a manually advanced Clock for tests. Scheduled functions fire when
// Advance moves the fake time past their deadline.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	pending []fakeTimer
}

type fakeTimer struct {
	at time.Time
	f  func()
}

func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) *time.Timer {
	f.mu.Lock()
	f.pending = append(f.pending, fakeTimer{at: f.now.Add(d), f: fn})
	f.mu.Unlock()
	// The returned timer is inert; firing is driven by Advance.
	return time.NewTimer(time.Hour)
}

// Advance moves the clock forward and fires every function scheduled within
// the advanced window, in scheduling order.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	var due []func()
	var rest []fakeTimer
	for _, t := range f.pending {
		if !t.at.After(f.now) {
			due = append(due, t.f)
		} else {
			rest = append(rest, t)
		}
	}
	f.pending = rest
	f.mu.Unlock()

	for _, fn := range due {
		fn()
	}
}

// PendingCount reports how many scheduled functions have not fired yet.
func (f *Fake) PendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}
