package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treemap/internal/config"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"view", "export", "summary", "serve"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "treemap", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestCommandFlags(t *testing.T) {
	flag := exportCmd.Flags().Lookup("borough")
	require.NotNil(t, flag)
	assert.Equal(t, "All", flag.DefValue)

	require.NotNil(t, exportCmd.Flags().ShorthandLookup("o"))
	require.NotNil(t, summaryCmd.Flags().Lookup("json"))

	port := serveCmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "0", port.DefValue)

	for _, name := range []string{"trees", "boundaries", "seed"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestIsInteractive(t *testing.T) {
	assert.True(t, isInteractive(rootCmd))
	assert.True(t, isInteractive(viewCmd))
	assert.False(t, isInteractive(exportCmd))
	assert.False(t, isInteractive(serveCmd))
}

func TestApplyFlags(t *testing.T) {
	c := &config.Config{}
	c.Trees.Path = "from-config.csv"
	require.NoError(t, summaryCmd.ParseFlags([]string{"--trees", "cli.csv", "--seed", "42"}))
	applyFlags(summaryCmd, c)
	assert.Equal(t, "cli.csv", c.Trees.Path)
	assert.Equal(t, uint64(42), c.Trees.Seed)
	assert.Empty(t, c.Boundaries.Source)
}
