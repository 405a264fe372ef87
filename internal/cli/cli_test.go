package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaultsToHelp(t *testing.T) {
	parsed, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, CommandHelp, parsed.Command)
	require.True(t, parsed.ShowHelp)
}

func TestParseSimpleCommand(t *testing.T) {
	parsed, err := Parse([]string{"monitors"})
	require.NoError(t, err)
	require.Equal(t, CommandMonitors, parsed.Command)
	require.False(t, parsed.ShowHelp)
	require.Empty(t, parsed.Args)
}

func TestParseVerboseFlag(t *testing.T) {
	parsed, err := Parse([]string{"--verbose", "watch"})
	require.NoError(t, err)
	require.Equal(t, CommandWatch, parsed.Command)
	require.True(t, parsed.Verbose)
}

func TestParseDispatchCollectsTrailingArgs(t *testing.T) {
	parsed, err := Parse([]string{"dispatch", "workspace", "3"})
	require.NoError(t, err)
	require.Equal(t, CommandDispatch, parsed.Command)
	require.Equal(t, []string{"workspace", "3"}, parsed.Args)
}

func TestParseDispatchRequiresArgs(t *testing.T) {
	_, err := Parse([]string{"dispatch"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "requires arguments")
}

func TestParseRejectsUnknownCommand(t *testing.T) {
	_, err := Parse([]string{"frobnicate"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown command")
}

func TestParseRejectsUnknownFlag(t *testing.T) {
	_, err := Parse([]string{"--frobnicate"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown flag")
}

func TestParseRejectsTrailingArgsAfterSimpleCommand(t *testing.T) {
	_, err := Parse([]string{"monitors", "extra"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected arguments")
}

func TestHelpTextNamesBinary(t *testing.T) {
	require.Contains(t, HelpText("hyprwire"), "hyprwire [--verbose] <command>")
}
