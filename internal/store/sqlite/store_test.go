package sqlite

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestStore creates a store backed by a temp-dir database that is closed
// and removed when the test finishes.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath, slog.Default())
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestOpen_RunsSchema(t *testing.T) {
	s := newTestStore(t)

	// Schema is idempotent: a second run against the same database must not fail.
	_, err := s.db.Exec(schemaSQL)
	require.NoError(t, err)
}
