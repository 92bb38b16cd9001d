package loading

import "time"

// Timing defaults. MinVisible keeps an indicator from flashing for an
// imperceptible instant; MaxWait bounds how long an episode may run
// before it is forced into a timeout error.
const (
	DefaultMinVisible = 300 * time.Millisecond
	DefaultMaxWait    = 10 * time.Second
	DefaultDebounce   = 50 * time.Millisecond
)

// stabilityDelay is the settle window opened after every semantic
// commit. burstThreshold caps how many transitions may be deferred in
// one debounce window before further requests are dropped.
// debounceFlushCap bounds how long a deferred transition may sit in
// the pending slot after the last request.
const (
	stabilityDelay   = 100 * time.Millisecond
	burstThreshold   = 10
	debounceFlushCap = 20 * time.Millisecond
)

// TimeoutMessage is the fixed error surfaced when MaxWait elapses
// without a stop.
const TimeoutMessage = "Loading timed out. Please try again."

// faultMessage is surfaced when a commit fault is recovered.
const faultMessage = "Something went wrong while updating loading state."

// Priority expresses how urgent an episode is. It is informational
// only; the coordinator does not schedule differently by priority.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityEmergency
)

// String returns the display name for a priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityEmergency:
		return "emergency"
	default:
		return "unknown"
	}
}

// MessageContext selects the default loading message for episodes
// started without an explicit one.
type MessageContext string

const (
	ContextGeneric MessageContext = "generic"
	ContextRoute   MessageContext = "route"
	ContextContent MessageContext = "content"
	ContextList    MessageContext = "list"
	ContextMedia   MessageContext = "media"
)

// contextMessages maps each context to its default message.
var contextMessages = map[MessageContext]string{
	ContextGeneric: "Loading...",
	ContextRoute:   "Loading page...",
	ContextContent: "Loading content...",
	ContextList:    "Loading items...",
	ContextMedia:   "Loading media...",
}

// DefaultMessage returns the loading message for a context, falling
// back to the generic message for unknown contexts.
func (m MessageContext) DefaultMessage() string {
	if msg, ok := contextMessages[m]; ok {
		return msg
	}
	return contextMessages[ContextGeneric]
}

// Options configures a coordinator instance.
type Options struct {
	// MinVisible is the minimum time a loading indicator stays
	// visible once shown.
	MinVisible time.Duration

	// MaxWait is the deadline after which a running episode is
	// forced into a timeout error.
	MaxWait time.Duration

	// Debounce is the quiet period used to collapse rapid
	// Start/Stop bursts.
	Debounce time.Duration

	// SkeletonFallback gates skeleton-placeholder visibility.
	SkeletonFallback bool

	// Priority is informational only.
	Priority Priority

	// MessageContext selects the default loading message.
	MessageContext MessageContext
}

// DefaultOptions returns the documented defaults: 300ms minimum
// visibility, 10s timeout, 50ms debounce, skeletons enabled.
func DefaultOptions() Options {
	return Options{
		MinVisible:       DefaultMinVisible,
		MaxWait:          DefaultMaxWait,
		Debounce:         DefaultDebounce,
		SkeletonFallback: true,
		Priority:         PriorityNormal,
		MessageContext:   ContextGeneric,
	}
}

// withDefaults fills zero-valued timing fields. SkeletonFallback is
// left as given; start from DefaultOptions to get it enabled.
func (o Options) withDefaults() Options {
	if o.MinVisible <= 0 {
		o.MinVisible = DefaultMinVisible
	}
	if o.MaxWait <= 0 {
		o.MaxWait = DefaultMaxWait
	}
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.MessageContext == "" {
		o.MessageContext = ContextGeneric
	}
	return o
}

// flushDelay is how long a deferred transition waits after the most
// recent request before it is applied.
func (o Options) flushDelay() time.Duration {
	if o.Debounce < debounceFlushCap {
		return o.Debounce
	}
	return debounceFlushCap
}

// StartConfig carries the optional configuration for a loading episode.
// Zero-valued fields merge with the current state rather than
// overwriting it.
type StartConfig struct {
	Type     Type
	Progress int
	Message  string
	Stage    string
}
