package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetRootCmd creates a fresh root command for testing, so completion
// output does not depend on global command registration order.
func resetRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loadstate",
		Short: "Safe loading-state coordination for async UIs",
	}
}

func TestCompletionBashGeneration(t *testing.T) {
	cmd := resetRootCmd()

	var buf bytes.Buffer
	err := cmd.GenBashCompletion(&buf)

	require.NoError(t, err)
	output := buf.String()

	assert.Contains(t, output, "# bash completion for loadstate")
	assert.Contains(t, output, "__loadstate_debug")
	assert.Contains(t, output, "complete -o default -F __start_loadstate loadstate")
}

func TestCompletionZshGeneration(t *testing.T) {
	cmd := resetRootCmd()

	var buf bytes.Buffer
	err := cmd.GenZshCompletion(&buf)

	require.NoError(t, err)
	output := buf.String()

	assert.Contains(t, output, "#compdef loadstate")
	assert.Contains(t, output, "_loadstate()")
}

func TestCompletionFishGeneration(t *testing.T) {
	cmd := resetRootCmd()

	var buf bytes.Buffer
	err := cmd.GenFishCompletion(&buf, true)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "fish completion for loadstate")
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	err := completionCmd.Args(completionCmd, []string{"tcsh"})
	assert.Error(t, err)
}

func TestCompletionRequiresShellArg(t *testing.T) {
	err := completionCmd.Args(completionCmd, []string{})
	assert.Error(t, err)
}
