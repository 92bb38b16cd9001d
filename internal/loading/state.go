package loading

import "github.com/google/uuid"

// Type identifies what kind of loading episode is in progress.
type Type int

const (
	TypeIdle Type = iota
	TypeRoute
	TypeContent
	TypeSkeleton
	TypeProgressive
)

// String returns the display name for a loading type.
func (t Type) String() string {
	switch t {
	case TypeIdle:
		return "idle"
	case TypeRoute:
		return "route"
	case TypeContent:
		return "content"
	case TypeSkeleton:
		return "skeleton"
	case TypeProgressive:
		return "progressive"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of the coordinator's loading status.
// Every committed update replaces the whole value; fields are never
// mutated in place.
type State struct {
	// Loading reports whether a loading episode is in progress.
	Loading bool

	// Type is the kind of episode in progress, TypeIdle when none.
	Type Type

	// Progress is a completion percentage, always within [0, 100].
	Progress int

	// Message is a human-readable loading message, empty when idle.
	Message string

	// Stage is an optional sub-stage label within an episode.
	Stage string

	// Err holds a terminal error message. Non-empty Err implies
	// Loading is false and Type is TypeIdle.
	Err string

	// Stable is false only during the settle window immediately
	// following a committed change.
	Stable bool

	// RenderKey is an opaque token that changes on every commit.
	// Consumers use it to force a fresh render without reinterpreting
	// other fields.
	RenderKey string
}

// defaultState returns the idle defaults a fresh coordinator starts in.
func defaultState() State {
	return State{
		Type:      TypeIdle,
		Stable:    true,
		RenderKey: newRenderKey(),
	}
}

// newRenderKey issues an opaque unique token for a committed update.
func newRenderKey() string {
	return uuid.NewString()
}

// clampProgress clamps a percentage to the 0-100 range.
func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// normalize enforces the State invariants on a candidate value:
// progress clamped, and a non-empty error forcing the idle shape.
func (s State) normalize() State {
	s.Progress = clampProgress(s.Progress)
	if s.Err != "" {
		s.Loading = false
		s.Type = TypeIdle
	}
	return s
}
