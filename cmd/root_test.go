package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MSSputnik/RVEZeitmessung/internal/conf"
	"github.com/MSSputnik/RVEZeitmessung/internal/runtime"
)

func TestRootCommand(t *testing.T) {
	settings := &conf.Settings{}
	settings.Main.Name = "Test"
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = "Test.db"

	ctx, err := runtime.NewContext(settings)
	require.NoError(t, err)

	rootCmd, err := RootCommand(ctx)
	require.NoError(t, err)
	require.NotNil(t, rootCmd)

	names := make([]string, 0)
	for _, sub := range rootCmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, expected := range []string{"stamp", "correct", "delete", "list", "audit", "export", "send", "clock"} {
		assert.Contains(t, names, expected)
	}

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("database"))
}
