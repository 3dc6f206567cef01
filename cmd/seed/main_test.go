package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCommand_StdoutHasOnlyStatusLines(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")

	for run := 0; run < 2; run++ {
		var stdout, stderr bytes.Buffer
		app := newApp()
		app.Writer = &stdout
		app.ErrWriter = &stderr

		require.NoError(t, app.Run([]string{"seed", "--database-url", dbPath, "--seed", "1"}))

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, 6, stdout.String())
		assert.Equal(t, "Starting database seeding...", lines[0])
		assert.Equal(t, "Database seeding completed successfully!", lines[5])
		assert.NotContains(t, stdout.String(), "record not found")
		assert.NotContains(t, stderr.String(), "record not found")
	}
}
