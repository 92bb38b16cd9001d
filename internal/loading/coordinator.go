package loading

import (
	"sync"
	"time"

	"loadstate/internal/clock"
	"loadstate/internal/logger"
)

// transitionKind identifies a requested change going through the
// debounce gate.
type transitionKind int

const (
	kindStart transitionKind = iota
	kindStop
	kindProgress
	kindStage
)

// transition is a deferred change sitting in the debounce slot.
type transition struct {
	kind     transitionKind
	cfg      StartConfig
	progress int
	stage    string
}

// Coordinator tracks loading state for one consumer. All mutation goes
// through its API; readers get immutable snapshots. A single mutex
// serializes mutators and timer callbacks, so every commit is atomic
// from a subscriber's point of view.
//
// At most one timer of each kind (debounce, stability, min-duration,
// max-duration) is outstanding at any time.
type Coordinator struct {
	mu    sync.Mutex
	opts  Options
	clk   clock.Clock
	log   logger.Logger
	guard *Guard

	state State

	// debounce gate
	lastApplied    time.Time
	pending        *transition
	deferred       int
	overflowWarned bool

	// episode tracking for the min/max enforcer
	episodeActive bool
	episodeStart  time.Time

	// one timer slot per kind; arming a slot cancels the prior timer
	debounceTimer  clock.Timer
	stabilityTimer clock.Timer
	minTimer       clock.Timer
	maxTimer       clock.Timer

	closed  bool
	subs    map[int]func(Snapshot)
	nextSub int
}

// New creates a coordinator with the given options, clock, and
// diagnostic sink. A nil clock means the system clock; a nil logger
// discards diagnostics; a nil guard gets a private one.
func New(opts Options, clk clock.Clock, log logger.Logger) *Coordinator {
	return NewWithGuard(opts, clk, log, nil)
}

// NewWithGuard creates a coordinator sharing an externally owned
// lifecycle guard. Disposing the guard renders all outstanding timer
// callbacks inert without going through Close.
func NewWithGuard(opts Options, clk clock.Clock, log logger.Logger, guard *Guard) *Coordinator {
	if clk == nil {
		clk = clock.System()
	}
	if log == nil {
		log = logger.Noop()
	}
	if guard == nil {
		guard = NewGuard()
	}
	return &Coordinator{
		opts:        opts.withDefaults(),
		clk:         clk,
		log:         log,
		guard:       guard,
		state:       defaultState(),
		lastApplied: clk.Now(),
		subs:        make(map[int]func(Snapshot)),
	}
}

// Snapshot returns the current state with the derived visibility
// gates. The derivations are recomputed on every call.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to be called after every committed update.
// The returned function cancels the subscription.
func (c *Coordinator) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Start begins a loading episode, or merges configuration into one
// already in progress. The request goes through the debounce gate.
func (c *Coordinator) Start(cfg StartConfig) {
	if c.runGuarded(func() bool {
		return c.requestLocked(transition{kind: kindStart, cfg: cfg})
	}) {
		c.notify()
	}
}

// Stop ends the current loading episode, subject to the minimum
// visible duration. The request goes through the debounce gate.
func (c *Coordinator) Stop() {
	if c.runGuarded(func() bool {
		return c.requestLocked(transition{kind: kindStop})
	}) {
		c.notify()
	}
}

// SetProgress commits a clamped progress percentage without altering
// whether the coordinator is loading.
func (c *Coordinator) SetProgress(n int) {
	if c.runGuarded(func() bool {
		return c.requestLocked(transition{kind: kindProgress, progress: n})
	}) {
		c.notify()
	}
}

// SetStage commits a sub-stage label without altering whether the
// coordinator is loading.
func (c *Coordinator) SetStage(s string) {
	if c.runGuarded(func() bool {
		return c.requestLocked(transition{kind: kindStage, stage: s})
	}) {
		c.notify()
	}
}

// SetError commits a terminal error, forcing loading off and the type
// to idle regardless of the minimum duration. An empty message clears
// a prior error without otherwise changing state. Errors bypass the
// debounce gate.
func (c *Coordinator) SetError(msg string) {
	if c.runGuarded(func() bool {
		if msg == "" {
			if c.state.Err == "" {
				return false
			}
			next := c.state
			next.Err = ""
			return c.commitLocked(next, true)
		}

		c.endEpisodeLocked()
		next := c.state
		next.Err = msg
		next.Loading = false
		next.Type = TypeIdle
		next.Progress = 0
		return c.commitLocked(next, true)
	}) {
		c.notify()
	}
}

// Clear resets the coordinator to fresh idle defaults, cancelling all
// outstanding timers. No settle window is opened; the new state is
// immediately stable.
func (c *Coordinator) Clear() {
	if c.runGuarded(func() bool {
		c.cancelTimersLocked()
		c.pending = nil
		c.deferred = 0
		c.overflowWarned = false
		c.episodeActive = false
		c.state = defaultState()
		c.lastApplied = c.clk.Now()
		return true
	}) {
		c.notify()
	}
}

// ForceRefresh commits an identical state except for a new RenderKey,
// forcing consumers to re-render without a semantic change.
func (c *Coordinator) ForceRefresh() {
	if c.runGuarded(func() bool {
		next := c.state
		next.RenderKey = newRenderKey()
		c.state = next
		return true
	}) {
		c.notify()
	}
}

// Close tears the coordinator down: the lifecycle guard flips, every
// outstanding timer is cancelled, and all future timer callbacks and
// mutator calls become no-ops. Safe to call more than once.
func (c *Coordinator) Close() {
	c.guard.Dispose()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancelTimersLocked()
	c.pending = nil
}

// Closed reports whether the coordinator has been torn down.
func (c *Coordinator) Closed() bool {
	return !c.guard.Active()
}

// runGuarded runs fn under the coordinator lock, skipping it entirely
// after teardown. Any panic inside fn is recovered into a safe
// idle+error state rather than propagating to the caller. The return
// value reports whether subscribers should be notified.
func (c *Coordinator) runGuarded(fn func() bool) (changed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("recovered fault during loading-state commit: %v", r)
			c.cancelTimersLocked()
			c.pending = nil
			c.deferred = 0
			c.overflowWarned = false
			c.episodeActive = false
			s := defaultState()
			s.Err = faultMessage
			c.state = s
			changed = true
		}
	}()

	if c.closed || !c.guard.Active() {
		return false
	}
	return fn()
}

// requestLocked is the debounce gate. Requests arriving within the
// debounce window of the last applied change go into a single pending
// slot, last-write-wins; more than burstThreshold deferred requests in
// one window are dropped with a warning.
func (c *Coordinator) requestLocked(tr transition) bool {
	now := c.clk.Now()
	if now.Sub(c.lastApplied) >= c.opts.Debounce {
		return c.applyLocked(tr)
	}

	c.deferred++
	if c.deferred > burstThreshold {
		if !c.overflowWarned {
			c.log.Warn("loading transition churn: %d requests in one debounce window, dropping the rest", c.deferred)
			c.overflowWarned = true
		}
		return false
	}

	c.setPendingLocked(tr)
	c.stopTimerLocked(&c.debounceTimer)
	c.debounceTimer = c.clk.AfterFunc(c.opts.flushDelay(), c.debounceFired)
	return false
}

// setPendingLocked overwrites the pending slot. Progress and stage
// requests fold into a pending start instead of displacing it, so a
// quick start+setProgress burst does not lose the start.
func (c *Coordinator) setPendingLocked(tr transition) {
	if c.pending != nil && c.pending.kind == kindStart {
		switch tr.kind {
		case kindProgress:
			c.pending.cfg.Progress = tr.progress
			return
		case kindStage:
			c.pending.cfg.Stage = tr.stage
			return
		}
	}
	c.pending = &tr
}

// applyLocked applies a transition immediately, resetting the debounce
// window and burst counter.
func (c *Coordinator) applyLocked(tr transition) bool {
	switch tr.kind {
	case kindStart:
		return c.applyStartLocked(tr.cfg)
	case kindStop:
		return c.applyStopLocked()
	case kindProgress:
		next := c.state
		next.Progress = tr.progress
		return c.commitLocked(next, true)
	case kindStage:
		next := c.state
		next.Stage = tr.stage
		return c.commitLocked(next, true)
	}
	return false
}

func (c *Coordinator) applyStartLocked(cfg StartConfig) bool {
	next := c.state
	next.Loading = true
	next.Err = ""

	if cfg.Type != TypeIdle {
		next.Type = cfg.Type
	} else if next.Type == TypeIdle {
		next.Type = TypeSkeleton
	}
	if cfg.Progress != 0 {
		next.Progress = cfg.Progress
	}
	if cfg.Message != "" {
		next.Message = cfg.Message
	} else if next.Message == "" {
		next.Message = c.opts.MessageContext.DefaultMessage()
	}
	if cfg.Stage != "" {
		next.Stage = cfg.Stage
	}

	if !c.episodeActive {
		c.episodeActive = true
		c.episodeStart = c.clk.Now()
	}

	// a start during the min-duration wait resumes the episode
	c.stopTimerLocked(&c.minTimer)

	// the max timer restarts only if none is running for this episode
	if c.maxTimer == nil {
		c.maxTimer = c.clk.AfterFunc(c.opts.MaxWait, c.maxFired)
	}

	return c.commitLocked(next, true)
}

func (c *Coordinator) applyStopLocked() bool {
	if !c.episodeActive {
		return false
	}

	// a stop always retires the max timer, whether the idle commit
	// happens now or after the min-duration delay
	c.stopTimerLocked(&c.maxTimer)

	elapsed := c.clk.Now().Sub(c.episodeStart)
	if elapsed < c.opts.MinVisible {
		c.stopTimerLocked(&c.minTimer)
		c.minTimer = c.clk.AfterFunc(c.opts.MinVisible-elapsed, c.minFired)
		return false
	}
	return c.commitIdleLocked()
}

// commitIdleLocked ends the episode and commits the idle shape.
func (c *Coordinator) commitIdleLocked() bool {
	c.episodeActive = false
	c.stopTimerLocked(&c.minTimer)

	next := c.state
	next.Loading = false
	next.Type = TypeIdle
	next.Progress = 0
	next.Message = ""
	next.Stage = ""
	return c.commitLocked(next, true)
}

// commitLocked is the single commit point: it enforces the State
// invariants, assigns a fresh render key, and (for semantic changes)
// opens the stability window. ForceRefresh and Clear bypass it.
func (c *Coordinator) commitLocked(next State, openWindow bool) bool {
	next = next.normalize()
	next.RenderKey = newRenderKey()

	if openWindow {
		next.Stable = false
		c.stopTimerLocked(&c.stabilityTimer)
		c.stabilityTimer = c.clk.AfterFunc(stabilityDelay, c.stabilityFired)
	}

	c.state = next
	c.lastApplied = c.clk.Now()
	c.deferred = 0
	c.overflowWarned = false
	return true
}

// endEpisodeLocked abandons the current episode and any transition
// still sitting in the debounce slot.
func (c *Coordinator) endEpisodeLocked() {
	c.episodeActive = false
	c.pending = nil
	c.stopTimerLocked(&c.debounceTimer)
	c.stopTimerLocked(&c.minTimer)
	c.stopTimerLocked(&c.maxTimer)
}

// debounceFired flushes the pending transition.
func (c *Coordinator) debounceFired() {
	if c.runGuarded(func() bool {
		c.debounceTimer = nil
		tr := c.pending
		if tr == nil {
			return false
		}
		c.pending = nil
		return c.applyLocked(*tr)
	}) {
		c.notify()
	}
}

// stabilityFired re-commits the current state with Stable=true. Only
// the stability flag and the render key change; no new settle window
// opens.
func (c *Coordinator) stabilityFired() {
	if c.runGuarded(func() bool {
		c.stabilityTimer = nil
		if c.state.Stable {
			return false
		}
		next := c.state
		next.Stable = true
		next.RenderKey = newRenderKey()
		c.state = next
		return true
	}) {
		c.notify()
	}
}

// minFired dismisses the indicator once the minimum visible duration
// has elapsed.
func (c *Coordinator) minFired() {
	if c.runGuarded(func() bool {
		c.minTimer = nil
		if !c.episodeActive {
			return false
		}
		return c.commitIdleLocked()
	}) {
		c.notify()
	}
}

// maxFired force-commits a timeout outcome for an episode that never
// stopped.
func (c *Coordinator) maxFired() {
	if c.runGuarded(func() bool {
		c.maxTimer = nil
		if !c.episodeActive {
			return false
		}
		c.log.Warn("loading episode exceeded %s, forcing timeout", c.opts.MaxWait)
		c.endEpisodeLocked()

		next := c.state
		next.Loading = false
		next.Type = TypeIdle
		next.Progress = 0
		next.Message = ""
		next.Stage = ""
		next.Err = TimeoutMessage
		return c.commitLocked(next, true)
	}) {
		c.notify()
	}
}

// cancelTimersLocked stops all four timer kinds.
func (c *Coordinator) cancelTimersLocked() {
	c.stopTimerLocked(&c.debounceTimer)
	c.stopTimerLocked(&c.stabilityTimer)
	c.stopTimerLocked(&c.minTimer)
	c.stopTimerLocked(&c.maxTimer)
}

// stopTimerLocked cancels and clears one timer slot.
func (c *Coordinator) stopTimerLocked(t *clock.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

func (c *Coordinator) snapshotLocked() Snapshot {
	return Snapshot{
		State:              c.state,
		ShouldShowSkeleton: ShouldShowSkeleton(c.state, c.opts.SkeletonFallback),
		StableLoading:      StableLoading(c.state),
	}
}

// notify delivers the current snapshot to all subscribers, outside the
// coordinator lock so callbacks may call back into the coordinator.
func (c *Coordinator) notify() {
	c.mu.Lock()
	snap := c.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		c.safeNotify(fn, snap)
	}
}

// safeNotify shields the coordinator from subscriber panics.
func (c *Coordinator) safeNotify(fn func(Snapshot), snap Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("recovered subscriber panic: %v", r)
		}
	}()
	fn(snap)
}
