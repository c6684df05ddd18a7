package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tactyo/tactyo/internal/api"
	"github.com/tactyo/tactyo/internal/project"
	"github.com/tactyo/tactyo/internal/session"
)

func authedSession(needsSetup bool) session.Snapshot {
	return session.Snapshot{
		Status: session.StatusAuthenticated,
		User:   &api.User{ID: "u1", Email: "ana@example.com", Role: "pm", NeedsAccountSetup: needsSetup},
	}
}

func readyProjects(activeID string, projects ...api.Project) project.Snapshot {
	return project.Snapshot{Status: project.StatusReady, Projects: projects, ActiveID: activeID}
}

var twoProjects = []api.Project{
	{ID: 1, OwnerLogin: "acme", ProjectNumber: 3, Name: "Core"},
	{ID: 2, OwnerLogin: "acme", ProjectNumber: 7, Name: "Mobile"},
}

func TestLoadingWinsOverEverything(t *testing.T) {
	d := Decide(session.Snapshot{Status: session.StatusLoading}, readyProjects(""), "/epics")
	assert.Equal(t, OutcomeLoading, d.Outcome)

	d = Decide(authedSession(true), project.Snapshot{Status: project.StatusLoading}, "/epics")
	assert.Equal(t, OutcomeLoading, d.Outcome)
}

func TestUnauthenticatedAlwaysRedirectsToLogin(t *testing.T) {
	sess := session.Snapshot{Status: session.StatusUnauthenticated, Err: "Not authenticated"}
	for _, path := range []string{"/", "/login", "/epics", "/settings", "/project-selection", "/onboarding/account"} {
		d := Decide(sess, readyProjects("1", twoProjects...), path)
		assert.Equal(t, OutcomeRedirectLogin, d.Outcome, path)
		assert.Equal(t, PathLogin, d.Target)
	}
}

func TestAccountSetupRedirect(t *testing.T) {
	d := Decide(authedSession(true), readyProjects(""), "/roadmap")
	assert.Equal(t, OutcomeRedirectAccountSetup, d.Outcome)
	assert.Equal(t, PathAccountSetup, d.Target)

	// Already on the setup path (or nested under it): no redirect loop.
	d = Decide(authedSession(true), readyProjects(""), "/onboarding/account")
	assert.Equal(t, OutcomeAllow, d.Outcome)
	d = Decide(authedSession(true), readyProjects(""), "/onboarding/account/github")
	assert.Equal(t, OutcomeAllow, d.Outcome)

	// Setup pending keeps the selection redirect out even when
	// selectable projects exist: the setup screen must render.
	d = Decide(authedSession(true), readyProjects("", twoProjects...), "/onboarding/account")
	assert.Equal(t, OutcomeAllow, d.Outcome)
	d = Decide(authedSession(true), readyProjects("", twoProjects...), "/onboarding/account/github")
	assert.Equal(t, OutcomeAllow, d.Outcome)
}

func TestProjectSelectionRedirect(t *testing.T) {
	// No selection, projects exist: redirect.
	d := Decide(authedSession(false), readyProjects("", twoProjects...), "/roadmap")
	assert.Equal(t, OutcomeRedirectProjectSelection, d.Outcome)
	assert.Equal(t, PathProjectSelection, d.Target)

	// Exempt paths.
	d = Decide(authedSession(false), readyProjects("", twoProjects...), PathProjectSelection)
	assert.Equal(t, OutcomeAllow, d.Outcome)
	d = Decide(authedSession(false), readyProjects("", twoProjects...), PathSettings)
	assert.Equal(t, OutcomeAllow, d.Outcome)

	// Empty project list: nothing to select, allow.
	d = Decide(authedSession(false), readyProjects(""), "/roadmap")
	assert.Equal(t, OutcomeAllow, d.Outcome)

	// Stale selection (id not in list) counts as no selection.
	d = Decide(authedSession(false), readyProjects("99", twoProjects...), "/roadmap")
	assert.Equal(t, OutcomeRedirectProjectSelection, d.Outcome)
}

func TestAllowWithActiveProject(t *testing.T) {
	d := Decide(authedSession(false), readyProjects("2", twoProjects...), "/roadmap")
	assert.Equal(t, OutcomeAllow, d.Outcome)
	assert.Empty(t, d.Target)
}

func TestSetupTakesPrecedenceOverProjectSelection(t *testing.T) {
	d := Decide(authedSession(true), readyProjects("", twoProjects...), "/roadmap")
	assert.Equal(t, OutcomeRedirectAccountSetup, d.Outcome)
}

func TestProjectErrorStateAllowsRender(t *testing.T) {
	// error state is neither loading nor ready: screens render their
	// own error, the guard stays out of the way.
	d := Decide(authedSession(false), project.Snapshot{Status: project.StatusError, Err: "boom"}, "/roadmap")
	assert.Equal(t, OutcomeAllow, d.Outcome)
}
