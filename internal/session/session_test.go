package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tactyo/tactyo/internal/api"
	"github.com/tactyo/tactyo/internal/state"
)

func newManager(t *testing.T, handler http.HandlerFunc) *Manager {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewManager(api.NewClient(srv.URL, state.NewMemoryStore(), nil))
}

func TestStartsLoading(t *testing.T) {
	m := newManager(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.Equal(t, StatusLoading, m.Snapshot().Status)
}

func TestRefreshAuthenticated(t *testing.T) {
	m := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"u1","email":"ana@example.com","role":"pm","needs_account_setup":false}`))
	})

	snap := m.Refresh(context.Background())
	assert.Equal(t, StatusAuthenticated, snap.Status)
	assert.Equal(t, "ana@example.com", snap.User.Email)
	assert.Equal(t, "pm", snap.User.Role)
}

func TestRefreshDefaultsRoleToViewer(t *testing.T) {
	m := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"u1","email":"novo@example.com"}`))
	})

	snap := m.Refresh(context.Background())
	assert.Equal(t, "viewer", snap.User.Role)
	assert.False(t, snap.User.NeedsAccountSetup)
}

func TestRefresh401IsUnauthenticatedNotError(t *testing.T) {
	m := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Not authenticated"}`))
	})

	snap := m.Refresh(context.Background())
	assert.Equal(t, StatusUnauthenticated, snap.Status)
	assert.Nil(t, snap.User)
	assert.Contains(t, snap.Err, "Not authenticated")
}

func TestHasRole(t *testing.T) {
	m := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"u1","email":"ana@example.com","role":"editor"}`))
	})

	// Not authenticated yet: always false, even with no role filter.
	assert.False(t, m.HasRole())
	assert.False(t, m.HasRole("editor"))

	m.Refresh(context.Background())

	assert.True(t, m.HasRole(), "empty allowed list means any authenticated user")
	assert.True(t, m.HasRole("pm", "editor"))
	assert.False(t, m.HasRole("owner", "admin"))
}
