// Package cli implements the loadstate command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to an implementation function for the actual work. The
// root command is "loadstate" with subcommands:
//
//	loadstate demo        - Run the interactive loading-state demo
//	loadstate init        - Create a .loadstate.yaml config
//	loadstate version     - Print version information
//	loadstate completion  - Generate shell completion scripts
//
// Global flags (--config, --verbose, --no-color) are defined on the
// root command and available to all subcommands. Command-specific
// flags like --scenario and --fetch-time are defined on individual
// commands and override the loaded configuration.
//
// The demo command builds everything the library needs: it loads
// config, constructs a coordinator on the system clock, fills the
// skeleton registry, and hands both to the Bubble Tea program. When
// run on a terminal with no scenario pinned, a picker form asks which
// scenario to simulate.
package cli
