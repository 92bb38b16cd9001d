// Package loading implements the safe asynchronous loading-state
// coordinator behind skeleton-placeholder rendering.
//
// The coordinator tracks whether something is loading, gates skeleton
// visibility, and enforces timing rules that keep loading indicators
// from flickering:
//
//	Debounce     - bursts of Start/Stop calls within a short window
//	               collapse into the most recent request; excessive
//	               churn is dropped with a warning
//	Min duration - a loading indicator, once shown, stays visible for
//	               a perceptible minimum before dismissal
//	Max duration - an episode that never stops is forced into an
//	               error outcome after a deadline
//	Stability    - every committed change opens a short settle window
//	               during which consumers should avoid swapping views
//
// # Usage
//
//	c := loading.New(loading.DefaultOptions(), clock.System(), logger.Default())
//	defer c.Close()
//
//	c.Start(loading.StartConfig{Type: loading.TypeContent})
//	// ... fetch ...
//	c.Stop()
//
//	snap := c.Snapshot()
//	if snap.ShouldShowSkeleton {
//		// render placeholder
//	}
//
// All state is exposed as immutable snapshots; every committed update
// carries a fresh RenderKey so consumers can force re-renders without
// diffing fields. Close cancels every outstanding timer and renders
// future callbacks inert, so a torn-down consumer can never be written
// to by a stale timer.
//
// The coordinator never panics to its caller: faults during a commit
// are recovered and surfaced as a safe idle snapshot with the error
// field set.
package loading
