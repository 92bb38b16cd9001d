package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loadstate/internal/errors"
	"loadstate/internal/ui"
)

// Global flags available to all subcommands
var (
	configFlag  string
	verboseFlag bool
	noColorFlag bool
)

// rootCmd is the base command for loadstate
var rootCmd = &cobra.Command{
	Use:   "loadstate",
	Short: "Safe loading-state coordination for async UIs",
	Long: `loadstate coordinates asynchronous loading indicators: it debounces
rapid start/stop churn, enforces minimum and maximum visible durations,
and gates skeleton placeholders behind a stability window so screens
never flicker mid-transition.

Run 'loadstate demo' to see the coordinator drive a live terminal UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag || os.Getenv("NO_COLOR") != "" {
			ui.DisableColors()
		} else {
			ui.AutoDetectColors()
		}
		if verboseFlag {
			os.Setenv("LOADSTATE_DEBUG", "1")
		}
	},
}

// Execute runs the root command and prints structured errors with
// their suggestions before exiting non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// printError renders an error to stderr, with the suggestion line
// when the error carries one.
func printError(err error) {
	var structured *errors.Error
	if stderrors.As(err, &structured) {
		fmt.Fprintf(os.Stderr, "%s %s\n", ui.SymbolFail, structured.Message)
		if structured.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "  %s\n", structured.Suggestion)
		}
		if verboseFlag && structured.Cause != nil {
			fmt.Fprintf(os.Stderr, "  cause: %v\n", structured.Cause)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", ui.SymbolFail, err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}
