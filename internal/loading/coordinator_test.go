package loading

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadstate/internal/clock"
	"loadstate/internal/logger"
)

// newTestCoordinator creates a coordinator on a fake clock, advanced
// past the initial debounce window so the first transition applies
// immediately.
func newTestCoordinator(t *testing.T) (*Coordinator, *clock.Fake, *logger.BufferLogger) {
	t.Helper()
	fake := clock.NewFake()
	log := logger.NewBufferLogger()
	c := New(DefaultOptions(), fake, log)
	fake.Advance(DefaultDebounce)
	return c, fake, log
}

func TestNewStartsIdle(t *testing.T) {
	c, _, _ := newTestCoordinator(t)
	defer c.Close()

	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, TypeIdle, snap.Type)
	assert.Equal(t, 0, snap.Progress)
	assert.Empty(t, snap.Err)
	assert.True(t, snap.Stable)
	assert.NotEmpty(t, snap.RenderKey)
	assert.False(t, snap.ShouldShowSkeleton)
	assert.False(t, snap.StableLoading)
}

func TestNewNilCollaborators(t *testing.T) {
	c := New(DefaultOptions(), nil, nil)
	defer c.Close()

	assert.False(t, c.Snapshot().Loading)
	assert.False(t, c.Closed())
}

func TestStartCommitsLoadingState(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)
	defer c.Close()

	c.Start(StartConfig{})

	snap := c.Snapshot()
	assert.True(t, snap.Loading)
	assert.Equal(t, TypeSkeleton, snap.Type)
	assert.Equal(t, "Loading...", snap.Message)
	assert.False(t, snap.Stable, "fresh commit opens the settle window")
	assert.False(t, snap.ShouldShowSkeleton, "skeleton waits for stability")

	fake.Advance(stabilityDelay)

	settled := c.Snapshot()
	assert.True(t, settled.Loading)
	assert.True(t, settled.Stable)
	assert.True(t, settled.ShouldShowSkeleton)
	assert.True(t, settled.StableLoading)
	assert.NotEqual(t, snap.RenderKey, settled.RenderKey)
}

func TestStartUsesConfig(t *testing.T) {
	c, _, _ := newTestCoordinator(t)
	defer c.Close()

	c.Start(StartConfig{
		Type:     TypeContent,
		Progress: 30,
		Message:  "Fetching appointments...",
		Stage:    "profile",
	})

	snap := c.Snapshot()
	assert.Equal(t, TypeContent, snap.Type)
	assert.Equal(t, 30, snap.Progress)
	assert.Equal(t, "Fetching appointments...", snap.Message)
	assert.Equal(t, "profile", snap.Stage)
}

func TestStartMessageContextDefault(t *testing.T) {
	fake := clock.NewFake()
	opts := DefaultOptions()
	opts.MessageContext = ContextRoute
	c := New(opts, fake, logger.Noop())
	defer c.Close()
	fake.Advance(DefaultDebounce)

	c.Start(StartConfig{})
	assert.Equal(t, "Loading page...", c.Snapshot().Message)
}

func TestStopEnforcesMinimumVisibleDuration(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)
	defer c.Close()

	c.Start(StartConfig{})
	fake.Advance(100 * time.Millisecond)

	c.Stop()
	assert.True(t, c.Snapshot().Loading, "stop within MinVisible defers dismissal")

	// dismissal lands exactly MinVisible after the start commit
	fake.Advance(199 * time.Millisecond)
	assert.True(t, c.Snapshot().Loading)

	fake.Advance(1 * time.Millisecond)
	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, TypeIdle, snap.Type)
	assert.Equal(t, 0, snap.Progress)
	assert.Empty(t, snap.Message)
	assert.Empty(t, snap.Err)
}

func TestStopAfterMinimumCommitsImmediately(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)
	defer c.Close()

	c.Start(StartConfig{})
	fake.Advance(400 * time.Millisecond)

	c.Stop()

	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, TypeIdle, snap.Type)
}

func TestStopWithoutStartIsNoop(t *testing.T) {
	c, _, _ := newTestCoordinator(t)
	defer c.Close()

	before := c.Snapshot()
	c.Stop()
	assert.Equal(t, before, c.Snapshot())
}

func TestMaxWaitForcesTimeout(t *testing.T) {
	c, fake, log := newTestCoordinator(t)
	defer c.Close()

	c.Start(StartConfig{})
	fake.Advance(10 * time.Second)

	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, TypeIdle, snap.Type)
	assert.Equal(t, 0, snap.Progress)
	assert.Equal(t, TimeoutMessage, snap.Err)
	assert.True(t, log.HasLevel("warn"))

	// the episode is over; nothing else fires
	fake.Advance(stabilityDelay)
	assert.True(t, c.Snapshot().Stable)
	assert.Equal(t, 0, fake.Pending())
}

func TestStopCancelsMaxTimer(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)
	defer c.Close()

	c.Start(StartConfig{})
	fake.Advance(400 * time.Millisecond)
	c.Stop()

	fake.Advance(20 * time.Second)
	assert.Empty(t, c.Snapshot().Err, "no timeout after a clean stop")
}

func TestRepeatedStartKeepsMaxTimerForEpisode(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)
	defer c.Close()

	c.Start(StartConfig{})
	fake.Advance(5 * time.Second)

	// same episode: the max timer must not restart
	c.Start(StartConfig{Message: "Still loading..."})
	assert.Equal(t, "Still loading...", c.Snapshot().Message)

	fake.Advance(5 * time.Second)
	assert.Equal(t, TimeoutMessage, c.Snapshot().Err)
}

func TestStartDuringMinWaitResumesEpisode(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)
	defer c.Close()

	c.Start(StartConfig{})
	fake.Advance(100 * time.Millisecond)
	c.Stop()

	fake.Advance(100 * time.Millisecond)
	c.Start(StartConfig{})

	// the pending dismissal was cancelled by the new start
	fake.Advance(300 * time.Millisecond)
	assert.True(t, c.Snapshot().Loading)
}

func TestDebounceCollapsesBurst(t *testing.T) {
	fake := clock.NewFake()
	log := logger.NewBufferLogger()
	c := New(DefaultOptions(), fake, log)
	defer c.Close()

	var commits int
	c.Subscribe(func(Snapshot) { commits++ })

	// 20 starts inside one debounce window
	for i := 0; i < 20; i++ {
		c.Start(StartConfig{})
	}

	assert.False(t, c.Snapshot().Loading, "nothing applied yet")
	assert.Equal(t, 0, commits)
	assert.Equal(t, 1, log.CountLevel("warn"), "one churn warning, not one per drop")

	fake.Advance(30 * time.Millisecond)

	assert.True(t, c.Snapshot().Loading)
	assert.Equal(t, 1, commits, "exactly one applied transition")
}

func TestDebounceLastWriteWins(t *testing.T) {
	fake := clock.NewFake()
	c := New(DefaultOptions(), fake, logger.Noop())
	defer c.Close()

	c.Start(StartConfig{Type: TypeContent})
	c.Start(StartConfig{Type: TypeRoute})

	fake.Advance(30 * time.Millisecond)

	assert.Equal(t, TypeRoute, c.Snapshot().Type)
}

func TestDebounceFoldsProgressIntoPendingStart(t *testing.T) {
	fake := clock.NewFake()
	c := New(DefaultOptions(), fake, logger.Noop())
	defer c.Close()

	c.Start(StartConfig{Type: TypeContent})
	c.SetProgress(40)
	c.SetStage("records")

	fake.Advance(30 * time.Millisecond)

	snap := c.Snapshot()
	assert.True(t, snap.Loading, "the start survived the later requests")
	assert.Equal(t, 40, snap.Progress)
	assert.Equal(t, "records", snap.Stage)
}

func TestProgressAlwaysClamped(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)
	defer c.Close()

	c.Start(StartConfig{})
	fake.Advance(DefaultDebounce)

	c.SetProgress(150)
	assert.Equal(t, 100, c.Snapshot().Progress)

	fake.Advance(DefaultDebounce)
	c.SetProgress(-10)
	assert.Equal(t, 0, c.Snapshot().Progress)
}

func TestProgressDoesNotAlterLoading(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)
	defer c.Close()

	c.SetProgress(50)
	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, 50, snap.Progress)

	fake.Advance(DefaultDebounce)
	c.Start(StartConfig{})
	fake.Advance(DefaultDebounce)
	c.SetProgress(80)
	snap = c.Snapshot()
	assert.True(t, snap.Loading)
	assert.Equal(t, 80, snap.Progress)
}

func TestStageDoesNotAlterLoading(t *testing.T) {
	c, _, _ := newTestCoordinator(t)
	defer c.Close()

	c.SetStage("insurance")
	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, "insurance", snap.Stage)
}

func TestSetErrorBypassesMinDuration(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)
	defer c.Close()

	c.Start(StartConfig{})
	fake.Advance(10 * time.Millisecond)

	c.SetError("appointments unavailable")

	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, TypeIdle, snap.Type)
	assert.Equal(t, 0, snap.Progress)
	assert.Equal(t, "appointments unavailable", snap.Err)
	assert.False(t, snap.ShouldShowSkeleton)

	// min and max timers were abandoned with the episode
	fake.Advance(20 * time.Second)
	assert.Equal(t, "appointments unavailable", c.Snapshot().Err)
}

func TestClearErrorKeepsOtherFields(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)
	defer c.Close()

	c.SetError("boom")
	fake.Advance(stabilityDelay)
	before := c.Snapshot()

	c.SetError("")

	snap := c.Snapshot()
	assert.Empty(t, snap.Err)
	assert.Equal(t, before.Loading, snap.Loading)
	assert.Equal(t, before.Type, snap.Type)
	assert.Equal(t, before.Progress, snap.Progress)
}

func TestClearErrorWhenNoErrorIsNoop(t *testing.T) {
	c, _, _ := newTestCoordinator(t)
	defer c.Close()

	before := c.Snapshot()
	c.SetError("")
	assert.Equal(t, before, c.Snapshot())
}

func TestForceRefreshChangesOnlyRenderKey(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)
	defer c.Close()

	c.Start(StartConfig{Progress: 25})
	fake.Advance(stabilityDelay)
	before := c.Snapshot()

	c.ForceRefresh()
	after := c.Snapshot()

	assert.NotEqual(t, before.RenderKey, after.RenderKey)

	normalized := after.State
	normalized.RenderKey = before.RenderKey
	assert.Equal(t, before.State, normalized, "every field but RenderKey is identical")
	assert.True(t, after.Loading)
}

func TestForceRefreshDoesNotOpenSettleWindow(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)
	defer c.Close()

	c.Start(StartConfig{})
	fake.Advance(stabilityDelay)
	require.True(t, c.Snapshot().Stable)

	c.ForceRefresh()
	assert.True(t, c.Snapshot().Stable)
}

func TestClearResetsToIdleDefaults(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)
	defer c.Close()

	c.Start(StartConfig{Progress: 60, Message: "Loading records...", Stage: "fetch"})
	fake.Advance(20 * time.Millisecond)
	c.Stop() // deferred into the debounce slot

	c.Clear()

	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, TypeIdle, snap.Type)
	assert.Equal(t, 0, snap.Progress)
	assert.Empty(t, snap.Message)
	assert.Empty(t, snap.Stage)
	assert.Empty(t, snap.Err)
	assert.True(t, snap.Stable)

	// no outstanding timers: advancing produces no further changes
	assert.Equal(t, 0, fake.Pending())
	var commits int
	c.Subscribe(func(Snapshot) { commits++ })
	fake.Advance(time.Minute)
	assert.Equal(t, 0, commits)
}

func TestStabilityFlipChangesNothingElse(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)
	defer c.Close()

	var snaps []Snapshot
	c.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })

	c.Start(StartConfig{})
	fake.Advance(stabilityDelay)

	require.Len(t, snaps, 2, "one semantic commit, one stability flip")
	unstable, stable := snaps[0], snaps[1]

	assert.False(t, unstable.Stable)
	assert.True(t, stable.Stable)
	assert.NotEqual(t, unstable.RenderKey, stable.RenderKey)

	normalized := stable.State
	normalized.Stable = unstable.Stable
	normalized.RenderKey = unstable.RenderKey
	assert.Equal(t, unstable.State, normalized, "only Stable and RenderKey change")
}

func TestSubscribeAndCancel(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)
	defer c.Close()

	var commits int
	cancel := c.Subscribe(func(Snapshot) { commits++ })

	c.Start(StartConfig{})
	assert.Equal(t, 1, commits)

	cancel()
	fake.Advance(stabilityDelay)
	assert.Equal(t, 1, commits, "no notifications after cancel")
}

func TestSubscriberPanicRecovered(t *testing.T) {
	c, fake, log := newTestCoordinator(t)
	defer c.Close()

	c.Subscribe(func(Snapshot) { panic("renderer exploded") })

	assert.NotPanics(t, func() {
		c.Start(StartConfig{})
	})
	assert.True(t, log.HasLevel("error"))

	// the coordinator is still functional
	fake.Advance(stabilityDelay)
	assert.True(t, c.Snapshot().StableLoading)
}

func TestCommitFaultFallsBackToIdleError(t *testing.T) {
	c, fake, log := newTestCoordinator(t)
	defer c.Close()

	changed := c.runGuarded(func() bool { panic("commit exploded") })

	assert.True(t, changed)
	assert.True(t, log.HasLevel("error"))
	assert.Equal(t, 0, fake.Pending())

	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, TypeIdle, snap.Type)
	assert.Equal(t, faultMessage, snap.Err)
	assert.True(t, snap.Stable)
}

func TestCloseCancelsAllTimers(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)

	c.Start(StartConfig{}) // stability + max timers armed
	require.NotZero(t, fake.Pending())

	c.Close()

	assert.Equal(t, 0, fake.Pending())
	assert.True(t, c.Closed())
}

func TestCloseIsIdempotent(t *testing.T) {
	c, _, _ := newTestCoordinator(t)
	c.Close()
	assert.NotPanics(t, func() { c.Close() })
}

func TestMutatorsAreNoopsAfterClose(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)
	c.Close()

	var commits int
	c.Subscribe(func(Snapshot) { commits++ })

	c.Start(StartConfig{})
	c.SetProgress(50)
	c.SetError("x")
	c.Clear()
	c.ForceRefresh()
	fake.Advance(time.Minute)

	assert.Equal(t, 0, commits)
	assert.False(t, c.Snapshot().Loading)
}

func TestDisposedGuardMakesScheduledCallbacksInert(t *testing.T) {
	fake := clock.NewFake()
	guard := NewGuard()
	c := NewWithGuard(DefaultOptions(), fake, logger.Noop(), guard)
	fake.Advance(DefaultDebounce)

	c.Start(StartConfig{})
	before := c.Snapshot()
	require.True(t, before.Loading)

	// the owner tears down without going through Close; timers are
	// still scheduled but must not mutate state when they fire
	guard.Dispose()
	fake.Advance(20 * time.Second)

	assert.Equal(t, before, c.Snapshot(), "no write after teardown")
	assert.True(t, c.Closed())
}

func TestProgressInvariantAcrossSequence(t *testing.T) {
	c, fake, _ := newTestCoordinator(t)
	defer c.Close()

	var snaps []Snapshot
	c.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })

	c.Start(StartConfig{Progress: 250})
	fake.Advance(DefaultDebounce)
	c.SetProgress(-40)
	fake.Advance(DefaultDebounce)
	c.SetProgress(70)
	fake.Advance(400 * time.Millisecond)
	c.Stop()
	fake.Advance(time.Second)

	require.NotEmpty(t, snaps)
	for i, s := range snaps {
		assert.GreaterOrEqual(t, s.Progress, 0, "snapshot %d", i)
		assert.LessOrEqual(t, s.Progress, 100, "snapshot %d", i)
	}
}
