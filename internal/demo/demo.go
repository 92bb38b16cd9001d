// Package demo implements the terminal demonstration of the loading
// coordinator: a Bubble Tea program that swaps skeleton placeholders
// for content based on coordinator snapshots, with scripted scenarios
// for the timeout, churn, and min-duration behaviors.
package demo

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"loadstate/internal/config"
	"loadstate/internal/loading"
)

// Scenario names, matching the demo.scenario config values.
const (
	ScenarioInteractive = "interactive"
	ScenarioSlow        = "slow"
	ScenarioTimeout     = "timeout"
	ScenarioChurn       = "churn"
)

// snapshotMsg carries a committed coordinator snapshot into the
// Bubble Tea loop.
type snapshotMsg loading.Snapshot

// fetchDoneMsg signals that the simulated fetch finished.
type fetchDoneMsg struct{}

// fetchProgressMsg advances the simulated fetch.
type fetchProgressMsg struct{ percent int }

// listen waits for the next snapshot pushed by the coordinator
// subscription.
func listen(ch <-chan loading.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

// subscribe bridges the coordinator's observer callback into a channel
// the Bubble Tea loop can drain. Slow consumers drop snapshots rather
// than blocking a commit.
func subscribe(coord *loading.Coordinator) (<-chan loading.Snapshot, func()) {
	ch := make(chan loading.Snapshot, 64)
	cancel := coord.Subscribe(func(snap loading.Snapshot) {
		select {
		case ch <- snap:
		default:
		}
	})
	return ch, func() {
		cancel()
		close(ch)
	}
}

// startFetch kicks off the simulated fetch for a scenario.
func startFetch(coord *loading.Coordinator, cfg config.DemoConfig) tea.Cmd {
	switch cfg.Scenario {
	case ScenarioSlow:
		coord.Start(loading.StartConfig{Type: loading.TypeContent})
		return tea.Tick(cfg.FetchTime, func(time.Time) tea.Msg { return fetchDoneMsg{} })

	case ScenarioTimeout:
		// start and never stop; the max-duration enforcer ends it
		coord.Start(loading.StartConfig{Type: loading.TypeContent})
		return nil

	case ScenarioChurn:
		// hammer the debounce gate, then settle into a normal fetch
		for i := 0; i < 20; i++ {
			coord.Start(loading.StartConfig{Type: loading.TypeContent})
		}
		return tea.Tick(cfg.FetchTime, func(time.Time) tea.Msg { return fetchDoneMsg{} })

	default:
		return nil
	}
}

// progressTicks simulates staged fetch progress across the fetch time.
func progressTicks(cfg config.DemoConfig) tea.Cmd {
	step := cfg.FetchTime / 4
	if step <= 0 {
		return nil
	}
	var cmds []tea.Cmd
	for i := 1; i <= 3; i++ {
		pct := i * 25
		delay := time.Duration(i) * step
		cmds = append(cmds, tea.Tick(delay, func(time.Time) tea.Msg {
			return fetchProgressMsg{percent: pct}
		}))
	}
	return tea.Batch(cmds...)
}
