package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	tests := []struct {
		args     []string
		expected string
	}{
		{args: []string{"serve"}, expected: "serve"},
		{args: []string{"migrate", "up"}, expected: "up"},
		{args: []string{"migrate", "down"}, expected: "down"},
		{args: []string{"seed", "menu.json.gz"}, expected: "seed"},
	}

	for _, tt := range tests {
		cmd, _, err := rootCmd.Find(tt.args)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, cmd.Name())
	}
}

func TestFlags(t *testing.T) {
	steps := migrateDownCmd.Flags().Lookup("steps")
	require.NotNil(t, steps)
	assert.Equal(t, "1", steps.DefValue)

	migrate := serveCmd.Flags().Lookup("migrate")
	require.NotNil(t, migrate)
	assert.Equal(t, "false", migrate.DefValue)
}

func TestSeedRejectsExtraArgs(t *testing.T) {
	assert.Error(t, seedCmd.Args(seedCmd, []string{"a", "b"}))
	assert.NoError(t, seedCmd.Args(seedCmd, []string{"a"}))
}
