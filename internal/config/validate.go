package config

import (
	"fmt"

	"loadstate/internal/errors"
)

// validPriorities are the accepted loading.priority values.
var validPriorities = map[string]bool{
	"low":       true,
	"normal":    true,
	"high":      true,
	"emergency": true,
}

// validContexts are the accepted loading.message_context values.
var validContexts = map[string]bool{
	"generic": true,
	"route":   true,
	"content": true,
	"list":    true,
	"media":   true,
}

// validScenarios are the accepted demo.scenario values.
var validScenarios = map[string]bool{
	"interactive": true,
	"slow":        true,
	"timeout":     true,
	"churn":       true,
}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but loadstate only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Update loadstate, or set version to a supported value")
	}

	if cfg.Loading.MinVisible < 0 {
		return errors.New(errors.ErrConfig,
			"loading.min_visible cannot be negative",
			"Use a duration like 300ms, or 0 to fall back to the default")
	}
	if cfg.Loading.MaxWait < 0 {
		return errors.New(errors.ErrConfig,
			"loading.max_wait cannot be negative",
			"Use a duration like 10s, or 0 to fall back to the default")
	}
	if cfg.Loading.Debounce < 0 {
		return errors.New(errors.ErrConfig,
			"loading.debounce cannot be negative",
			"Use a duration like 50ms, or 0 to fall back to the default")
	}
	if cfg.Loading.MaxWait > 0 && cfg.Loading.MinVisible >= cfg.Loading.MaxWait {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("loading.min_visible (%s) must be below loading.max_wait (%s)", cfg.Loading.MinVisible, cfg.Loading.MaxWait),
			"An indicator cannot be required to stay visible past its own timeout")
	}

	if cfg.Loading.Priority != "" && !validPriorities[cfg.Loading.Priority] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown loading.priority '%s'", cfg.Loading.Priority),
			"Use one of: low, normal, high, emergency")
	}
	if cfg.Loading.MessageContext != "" && !validContexts[cfg.Loading.MessageContext] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown loading.message_context '%s'", cfg.Loading.MessageContext),
			"Use one of: generic, route, content, list, media")
	}

	if cfg.Demo.Scenario != "" && !validScenarios[cfg.Demo.Scenario] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown demo.scenario '%s'", cfg.Demo.Scenario),
			"Use one of: interactive, slow, timeout, churn")
	}
	if cfg.Demo.FetchTime < 0 {
		return errors.New(errors.ErrConfig,
			"demo.fetch_time cannot be negative",
			"Use a duration like 2s")
	}
	if cfg.Demo.Width < 0 {
		return errors.New(errors.ErrConfig,
			"demo.width cannot be negative",
			"Use a width like 48, or 0 for the default")
	}

	return nil
}
