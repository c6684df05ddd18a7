package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tactyo.db")
	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSetGetDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.Get(ctx, KeyActiveProjectID)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Set(ctx, KeyActiveProjectID, "42"))
	got, err = s.Get(ctx, KeyActiveProjectID)
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	// Overwrite
	require.NoError(t, s.Set(ctx, KeyActiveProjectID, "7"))
	got, err = s.Get(ctx, KeyActiveProjectID)
	require.NoError(t, err)
	assert.Equal(t, "7", got)

	require.NoError(t, s.Delete(ctx, KeyActiveProjectID))
	got, err = s.Get(ctx, KeyActiveProjectID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeleteMissingKeyIsNoop(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Delete(context.Background(), "never-set"))
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, KeySessionCookie, "tactyo_session=abc"))

	require.NoError(t, s.Migrate(ctx))

	got, err := s.Get(ctx, KeySessionCookie)
	require.NoError(t, err)
	assert.Equal(t, "tactyo_session=abc", got)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", "v"))
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.NoError(t, m.Delete(ctx, "k"))
	got, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, got)
}
