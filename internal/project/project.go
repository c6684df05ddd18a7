// Package project tracks the accessible project list and the active
// selection, persisting the selection in the state store.
package project

import (
	"context"
	"strconv"

	"github.com/tactyo/tactyo/internal/api"
	"github.com/tactyo/tactyo/internal/state"
)

// Status is the project-list lifecycle state.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Snapshot is a read-only view of the project state for the guard and
// commands.
type Snapshot struct {
	Status   Status
	Projects []api.Project
	ActiveID string
	Err      string
}

// Active returns the project matching the stored active id, or nil.
func (s Snapshot) Active() *api.Project {
	if s.ActiveID == "" {
		return nil
	}
	for i := range s.Projects {
		if strconv.Itoa(s.Projects[i].ID) == s.ActiveID {
			return &s.Projects[i]
		}
	}
	return nil
}

// Manager owns the project list and the persisted selection.
type Manager struct {
	client *api.Client
	store  state.Store
	snap   Snapshot
}

// NewManager creates a project manager in the loading state, seeding
// the selection from the state store.
func NewManager(ctx context.Context, client *api.Client, store state.Store) (*Manager, error) {
	activeID, err := store.Get(ctx, state.KeyActiveProjectID)
	if err != nil {
		return nil, err
	}
	return &Manager{
		client: client,
		store:  store,
		snap:   Snapshot{Status: StatusLoading, ActiveID: activeID},
	}, nil
}

// Refresh fetches the accessible project list. A stored selection that
// no longer appears in the list is cleared from memory and the store.
func (m *Manager) Refresh(ctx context.Context) Snapshot {
	projects, err := m.client.Projects(ctx)
	if err != nil {
		m.snap = Snapshot{Status: StatusError, ActiveID: m.snap.ActiveID, Err: err.Error()}
		return m.snap
	}

	activeID := m.snap.ActiveID
	if activeID != "" && !containsID(projects, activeID) {
		activeID = ""
		_ = m.store.Delete(ctx, state.KeyActiveProjectID)
	}

	m.snap = Snapshot{Status: StatusReady, Projects: projects, ActiveID: activeID}
	return m.snap
}

// SetActiveProject selects a project and persists the choice.
func (m *Manager) SetActiveProject(ctx context.Context, id string) error {
	if err := m.store.Set(ctx, state.KeyActiveProjectID, id); err != nil {
		return err
	}
	m.snap.ActiveID = id
	return nil
}

// Snapshot returns the current project state.
func (m *Manager) Snapshot() Snapshot {
	return m.snap
}

func containsID(projects []api.Project, id string) bool {
	for _, p := range projects {
		if strconv.Itoa(p.ID) == id {
			return true
		}
	}
	return false
}
