package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"loadstate/internal/config"
	"loadstate/internal/errors"
	"loadstate/internal/ui"
)

var initForce bool

// initCmd creates a new .loadstate.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .loadstate.yaml configuration",
	Long: `Initialize a new loadstate configuration file.

Creates a .loadstate.yaml file in the current directory with the
built-in defaults: loading durations, skeleton fallback, and the demo
scenario settings.

Examples:
  loadstate init
  loadstate init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce)
	},
}

// InitOptions holds options for the init command.
type InitOptions struct {
	Overwrite      bool // Overwrite existing config without asking
	NonInteractive bool // Skip prompts, fail instead of asking
}

// Init creates a new .loadstate.yaml configuration file.
func Init(opts InitOptions) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		var overwrite bool

		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}

		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	header := `# loadstate configuration
# Durations accept Go syntax: 300ms, 10s, 1m
# Run 'loadstate demo' to see the coordinator in action

`
	content := header + string(data)

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Println("Next steps:")
	fmt.Println("  loadstate demo                  - Run the interactive demo")
	fmt.Println("  loadstate demo --scenario churn - Watch the debounce gate work")

	return nil
}

// initCommand is the implementation called by the cobra command.
func initCommand(force bool) error {
	return Init(InitOptions{
		Overwrite:      force,
		NonInteractive: !isTerminal(),
	})
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	rootCmd.AddCommand(initCmd)
}
