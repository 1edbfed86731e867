package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAppliesMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.db")
	conn, err := Open(Config{Path: path})
	require.NoError(t, err)
	defer conn.Close()

	var n int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&n))
	assert.Equal(t, 3, n)

	for _, table := range []string{"trajectories", "trajectory_samples"} {
		var name string
		err := conn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.db")
	conn, err := Open(Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	conn, err = Open(Config{Path: path})
	require.NoError(t, err)
	defer conn.Close()

	var n int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&n))
	assert.Equal(t, 3, n)
}
