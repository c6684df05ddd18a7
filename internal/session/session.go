// Package session tracks the authentication state of the CLI: who the
// current user is, or why there is no session.
package session

import (
	"context"

	"github.com/tactyo/tactyo/internal/api"
)

// Status is the session lifecycle state.
type Status string

const (
	StatusLoading         Status = "loading"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// Snapshot is a read-only view of the session state, suitable for
// handing to the route guard.
type Snapshot struct {
	Status Status
	User   *api.User
	Err    string
}

// Manager owns the session state. It starts in loading and resolves
// via Refresh.
type Manager struct {
	client *api.Client
	snap   Snapshot
}

// NewManager creates a session manager in the loading state.
func NewManager(client *api.Client) *Manager {
	return &Manager{
		client: client,
		snap:   Snapshot{Status: StatusLoading},
	}
}

// Refresh re-runs the who-am-I fetch. A 401 (or any failure) resolves
// to unauthenticated with the message recorded; it is not an error for
// the caller.
func (m *Manager) Refresh(ctx context.Context) Snapshot {
	user, err := m.client.Me(ctx)
	if err != nil {
		m.snap = Snapshot{Status: StatusUnauthenticated, Err: err.Error()}
		return m.snap
	}
	m.snap = Snapshot{Status: StatusAuthenticated, User: normalizeUser(user)}
	return m.snap
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Snapshot {
	return m.snap
}

// HasRole reports whether the current user holds one of the allowed
// roles. It is false while unauthenticated and true for an empty
// allowed list.
func (m *Manager) HasRole(roles ...string) bool {
	if m.snap.Status != StatusAuthenticated || m.snap.User == nil {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if m.snap.User.Role == role {
			return true
		}
	}
	return false
}

// normalizeUser fills the defaults the API may omit.
func normalizeUser(u *api.User) *api.User {
	out := *u
	if out.Role == "" {
		out.Role = api.RoleViewer
	}
	return &out
}
