package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Loaded successfully
	SymbolFail     = "✗" // Failed / errored
	SymbolPending  = "○" // Idle, nothing in flight
	SymbolProgress = "◐" // Loading in progress
	SymbolUnstable = "~" // Mid-transition, settle window open
)
