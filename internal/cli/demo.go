package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"loadstate/internal/clock"
	"loadstate/internal/config"
	"loadstate/internal/demo"
	"loadstate/internal/errors"
	"loadstate/internal/loading"
	"loadstate/internal/logger"
	"loadstate/internal/ui"
)

// Command-specific flags
var (
	demoScenarioFlag  string
	demoSkeletonFlag  string
	demoFetchTimeFlag string
)

// demoCmd runs the interactive loading-state demo
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the interactive loading-state demo",
	Long: `Start a terminal UI driven by the loading coordinator.

The demo simulates a clinic appointment screen: a simulated fetch runs
through the coordinator, and the screen swaps between a skeleton
placeholder, the fetched content, and error states as snapshots arrive.

Scenarios:
  interactive  Drive transitions yourself with the keyboard
  slow         A fetch that outlasts the minimum visible duration
  timeout      A fetch that never completes; the deadline ends it
  churn        A burst of rapid starts collapsed by the debounce gate

Keyboard shortcuts:
  s           Start loading
  x           Stop loading
  p           Bump progress
  g           Cycle the fetch stage
  e / E       Set / clear an error
  r           Force a re-render
  c           Clear all loading state
  q / Ctrl+C  Quit

Examples:
  loadstate demo
  loadstate demo --scenario churn
  loadstate demo --scenario slow --fetch-time 5s --skeleton list-row`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return demoCommand(demoScenarioFlag, demoSkeletonFlag, demoFetchTimeFlag)
	},
}

// demoCommand loads config, applies flag overrides, and runs the
// Bubble Tea program.
func demoCommand(scenarioFlag, skeletonFlag, fetchTimeFlag string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if scenarioFlag != "" {
		cfg.Demo.Scenario = scenarioFlag
	}
	if skeletonFlag != "" {
		cfg.Demo.Skeleton = skeletonFlag
	}
	if fetchTimeFlag != "" {
		parsed, err := time.ParseDuration(fetchTimeFlag)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Invalid fetch time: %s", fetchTimeFlag),
				"Use a valid duration like 2s, 500ms, or 1m")
		}
		if parsed <= 0 {
			return errors.New(errors.ErrConfig,
				"Fetch time must be positive",
				"Use a duration like 2s or 500ms")
		}
		cfg.Demo.FetchTime = parsed
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	// An unset or interactive scenario gets a picker when there is a
	// terminal to ask on.
	if (cfg.Demo.Scenario == "" || cfg.Demo.Scenario == demo.ScenarioInteractive) &&
		scenarioFlag == "" && isTerminal() {
		picked, err := pickScenario()
		if err != nil {
			return err
		}
		cfg.Demo.Scenario = picked
	}

	coord := loading.New(cfg.ToOptions(), clock.System(), logger.NewEnvLogger("[loading]"))
	defer coord.Close()

	registry := loading.NewRegistry()
	if err := ui.RegisterDefaults(registry); err != nil {
		return errors.Wrap(err, "Failed to register skeleton renderers")
	}

	model := demo.NewModel(coord, registry, cfg.Demo)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"The demo UI crashed",
			"Check terminal compatibility, or try --no-color")
	}

	return nil
}

// loadConfig resolves the config for the demo: explicit --config path,
// discovered file, or built-in defaults.
func loadConfig() (*config.Config, error) {
	if configFlag != "" {
		return config.Load(configFlag)
	}
	return config.LoadOrDefault()
}

// pickScenario asks which scenario to run.
func pickScenario() (string, error) {
	scenario := demo.ScenarioInteractive

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which scenario?").
				Options(
					huh.NewOption("Interactive (drive it yourself)", demo.ScenarioInteractive),
					huh.NewOption("Slow fetch", demo.ScenarioSlow),
					huh.NewOption("Timeout", demo.ScenarioTimeout),
					huh.NewOption("Start/stop churn", demo.ScenarioChurn),
				).
				Value(&scenario),
		),
	)

	if err := form.Run(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get scenario choice",
			"Pass --scenario to skip the picker")
	}

	return scenario, nil
}

// isTerminal reports whether stdin is attached to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func init() {
	demoCmd.Flags().StringVar(&demoScenarioFlag, "scenario", "", "scenario to run (interactive, slow, timeout, churn)")
	demoCmd.Flags().StringVar(&demoSkeletonFlag, "skeleton", "", "skeleton renderer (card, list-row, banner)")
	demoCmd.Flags().StringVar(&demoFetchTimeFlag, "fetch-time", "", "simulated fetch duration (e.g., 2s, 500ms)")

	rootCmd.AddCommand(demoCmd)
}
