package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced Clock for deterministic tests.
// Timers only fire inside Advance, in deadline order, on the
// calling goroutine.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*fakeTimer
}

// NewFake creates a fake clock starting at a fixed reference time.
func NewFake() *Fake {
	return &Fake{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the fake clock's current time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// AfterFunc registers fn to fire when the clock is advanced past d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	t := &fakeTimer{
		clock:    f,
		deadline: f.now.Add(d),
		seq:      f.seq,
		fn:       fn,
	}
	f.pending = append(f.pending, t)
	return t
}

// Advance moves the clock forward by d, firing every timer whose
// deadline is reached, in deadline order. Callbacks run synchronously
// and may schedule new timers; those fire too if they fall within d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		t := f.nextDue(target)
		if t == nil {
			break
		}
		f.mu.Lock()
		f.now = t.deadline
		f.mu.Unlock()
		t.fn()
	}

	f.mu.Lock()
	f.now = target
	f.mu.Unlock()
}

// Pending returns the number of outstanding timers. Useful for
// asserting that teardown cancelled everything.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// nextDue pops the earliest timer with deadline <= target, or nil.
func (f *Fake) nextDue(target time.Time) *fakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()

	sort.SliceStable(f.pending, func(i, j int) bool {
		if f.pending[i].deadline.Equal(f.pending[j].deadline) {
			return f.pending[i].seq < f.pending[j].seq
		}
		return f.pending[i].deadline.Before(f.pending[j].deadline)
	})

	if len(f.pending) == 0 || f.pending[0].deadline.After(target) {
		return nil
	}
	t := f.pending[0]
	f.pending = f.pending[1:]
	return t
}

func (f *Fake) remove(t *fakeTimer) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, p := range f.pending {
		if p == t {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			return true
		}
	}
	return false
}

type fakeTimer struct {
	clock    *Fake
	deadline time.Time
	seq      int
	fn       func()
}

func (t *fakeTimer) Stop() bool {
	return t.clock.remove(t)
}
