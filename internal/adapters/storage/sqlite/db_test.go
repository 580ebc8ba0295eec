package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"pet-shelter/internal/adapters/storage/sqlite"
	"pet-shelter/internal/adapters/storage/storagetest"

	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storagetest.Store {
		db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "data", "shelter.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		return db
	})
}

func TestOpen_MigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelter.db")

	db, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
