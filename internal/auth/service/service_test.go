package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumichat/lumichat/internal/auth/store"
	"github.com/lumichat/lumichat/internal/auth/store/drivers/sqlite"
)

// newTestStore opens a throwaway file-backed database with the schema
// applied. A file in t.TempDir keeps every pooled connection on the same
// database, which :memory: does not guarantee.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}
