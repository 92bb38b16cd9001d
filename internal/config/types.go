package config

import (
	"time"

	"loadstate/internal/loading"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .loadstate.yaml configuration file.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	Loading LoadingConfig `yaml:"loading" mapstructure:"loading"`
	Demo    DemoConfig    `yaml:"demo" mapstructure:"demo"`
}

// LoadingConfig tunes the coordinator's timing and gating behavior.
type LoadingConfig struct {
	// MinVisible is the minimum time a loading indicator stays visible.
	MinVisible time.Duration `yaml:"min_visible" mapstructure:"min_visible"`

	// MaxWait is the deadline before an episode is forced into a timeout.
	MaxWait time.Duration `yaml:"max_wait" mapstructure:"max_wait"`

	// Debounce is the quiet period for collapsing rapid start/stop bursts.
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`

	// SkeletonFallback gates skeleton-placeholder visibility.
	SkeletonFallback bool `yaml:"skeleton_fallback" mapstructure:"skeleton_fallback"`

	// Priority is informational: low, normal, high, or emergency.
	Priority string `yaml:"priority" mapstructure:"priority"`

	// MessageContext selects the default loading message:
	// generic, route, content, list, or media.
	MessageContext string `yaml:"message_context" mapstructure:"message_context"`
}

// DemoConfig controls the terminal demo.
type DemoConfig struct {
	// Scenario selects what the demo simulates: interactive, slow,
	// timeout, or churn.
	Scenario string `yaml:"scenario" mapstructure:"scenario"`

	// FetchTime is how long the simulated fetch takes.
	FetchTime time.Duration `yaml:"fetch_time" mapstructure:"fetch_time"`

	// Skeleton names the placeholder renderer: card, list-row, or banner.
	Skeleton string `yaml:"skeleton" mapstructure:"skeleton"`

	// Width is the render width in terminal cells.
	Width int `yaml:"width" mapstructure:"width"`
}

// DefaultConfig returns the built-in defaults used when no config file
// exists or a section is omitted.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Loading: LoadingConfig{
			MinVisible:       loading.DefaultMinVisible,
			MaxWait:          loading.DefaultMaxWait,
			Debounce:         loading.DefaultDebounce,
			SkeletonFallback: true,
			Priority:         "normal",
			MessageContext:   "generic",
		},
		Demo: DemoConfig{
			Scenario:  "interactive",
			FetchTime: 2 * time.Second,
			Skeleton:  "card",
			Width:     48,
		},
	}
}

// priorities maps config strings to loading priorities.
var priorities = map[string]loading.Priority{
	"low":       loading.PriorityLow,
	"normal":    loading.PriorityNormal,
	"high":      loading.PriorityHigh,
	"emergency": loading.PriorityEmergency,
}

// ToOptions converts the loading section into coordinator options.
func (c *Config) ToOptions() loading.Options {
	opts := loading.Options{
		MinVisible:       c.Loading.MinVisible,
		MaxWait:          c.Loading.MaxWait,
		Debounce:         c.Loading.Debounce,
		SkeletonFallback: c.Loading.SkeletonFallback,
		Priority:         loading.PriorityNormal,
		MessageContext:   loading.MessageContext(c.Loading.MessageContext),
	}
	if p, ok := priorities[c.Loading.Priority]; ok {
		opts.Priority = p
	}
	if opts.MessageContext == "" {
		opts.MessageContext = loading.ContextGeneric
	}
	return opts
}
