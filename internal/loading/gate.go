package loading

// ShouldShowSkeleton derives whether the placeholder UI should be
// visible: the fallback must be enabled, there must be no error, and
// the state must be stably loading. Recomputed on every snapshot,
// never cached across commits.
func ShouldShowSkeleton(s State, fallbackEnabled bool) bool {
	return fallbackEnabled && s.Err == "" && s.Loading && s.Stable
}

// StableLoading reports whether the state is loading and past its
// settle window. Consumers that gate expensive re-renders on stability
// use this instead of Loading alone.
func StableLoading(s State) bool {
	return s.Loading && s.Stable
}

// Snapshot is what the rendering layer reads: the current State plus
// the derived visibility gates.
type Snapshot struct {
	State

	// ShouldShowSkeleton reports whether the placeholder UI should
	// render for this snapshot.
	ShouldShowSkeleton bool

	// StableLoading reports whether the state is loading and stable.
	StableLoading bool
}
