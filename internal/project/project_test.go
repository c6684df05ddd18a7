package project

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tactyo/tactyo/internal/api"
	"github.com/tactyo/tactyo/internal/state"
)

const projectList = `[
	{"id":1,"owner_login":"acme","project_number":3,"name":"Core"},
	{"id":2,"owner_login":"acme","project_number":7,"name":"Mobile"}
]`

func newManager(t *testing.T, body string, status int, seedActive string) (*Manager, *state.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != 0 {
			w.WriteHeader(status)
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	st := state.NewMemoryStore()
	ctx := context.Background()
	if seedActive != "" {
		require.NoError(t, st.Set(ctx, state.KeyActiveProjectID, seedActive))
	}
	m, err := NewManager(ctx, api.NewClient(srv.URL, st, nil), st)
	require.NoError(t, err)
	return m, st
}

func TestStartsLoadingWithStoredSelection(t *testing.T) {
	m, _ := newManager(t, projectList, 0, "2")
	snap := m.Snapshot()
	assert.Equal(t, StatusLoading, snap.Status)
	assert.Equal(t, "2", snap.ActiveID)
	assert.Nil(t, snap.Active(), "no list fetched yet")
}

func TestRefreshKeepsValidSelection(t *testing.T) {
	m, _ := newManager(t, projectList, 0, "2")
	snap := m.Refresh(context.Background())

	assert.Equal(t, StatusReady, snap.Status)
	require.NotNil(t, snap.Active())
	assert.Equal(t, "Mobile", snap.Active().Name)
}

func TestRefreshClearsStaleSelection(t *testing.T) {
	m, st := newManager(t, projectList, 0, "99")
	snap := m.Refresh(context.Background())

	assert.Empty(t, snap.ActiveID)
	assert.Nil(t, snap.Active())

	stored, err := st.Get(context.Background(), state.KeyActiveProjectID)
	require.NoError(t, err)
	assert.Empty(t, stored, "stale id removed from the store too")
}

func TestRefreshError(t *testing.T) {
	m, _ := newManager(t, `{"detail":"boom"}`, http.StatusInternalServerError, "1")
	snap := m.Refresh(context.Background())

	assert.Equal(t, StatusError, snap.Status)
	assert.Contains(t, snap.Err, "boom")
	assert.Equal(t, "1", snap.ActiveID, "selection untouched on fetch failure")
}

func TestSetActiveProjectPersists(t *testing.T) {
	m, st := newManager(t, projectList, 0, "")
	ctx := context.Background()
	m.Refresh(ctx)

	require.NoError(t, m.SetActiveProject(ctx, "1"))
	assert.Equal(t, "Core", m.Snapshot().Active().Name)

	stored, err := st.Get(ctx, state.KeyActiveProjectID)
	require.NoError(t, err)
	assert.Equal(t, "1", stored)
}
