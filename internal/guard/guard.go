// Package guard decides what a navigation is allowed to do given the
// session and project state. The decision table matches the web
// client's route guard so CLI and SPA gate access identically.
package guard

import (
	"strings"

	"github.com/tactyo/tactyo/internal/project"
	"github.com/tactyo/tactyo/internal/session"
)

// Outcome is the single decision produced per evaluation.
type Outcome string

const (
	OutcomeLoading                  Outcome = "loading"
	OutcomeRedirectLogin            Outcome = "redirect-login"
	OutcomeRedirectAccountSetup     Outcome = "redirect-account-setup"
	OutcomeRedirectProjectSelection Outcome = "redirect-project-selection"
	OutcomeAllow                    Outcome = "allow"
)

// Well-known paths of the decision table.
const (
	PathLogin            = "/login"
	PathAccountSetup     = "/onboarding/account"
	PathProjectSelection = "/project-selection"
	PathSettings         = "/settings"
)

// Decision carries the outcome and, for redirects, the target path.
type Decision struct {
	Outcome Outcome
	Target  string
}

// Decide evaluates the guard's strict precedence chain. Exactly one
// outcome fires:
//  1. either state still loading → loading placeholder;
//  2. unauthenticated → login;
//  3. account setup pending and not already on the setup path → setup;
//  4. setup complete, no active project, non-empty list, and not
//     already on the selection or settings path → project selection;
//  5. otherwise allow.
func Decide(sess session.Snapshot, proj project.Snapshot, path string) Decision {
	if sess.Status == session.StatusLoading || proj.Status == project.StatusLoading {
		return Decision{Outcome: OutcomeLoading}
	}

	if sess.Status != session.StatusAuthenticated {
		return Decision{Outcome: OutcomeRedirectLogin, Target: PathLogin}
	}

	if sess.User != nil && sess.User.NeedsAccountSetup && !strings.HasPrefix(path, PathAccountSetup) {
		return Decision{Outcome: OutcomeRedirectAccountSetup, Target: PathAccountSetup}
	}

	if proj.Status == project.StatusReady &&
		(sess.User == nil || !sess.User.NeedsAccountSetup) &&
		proj.Active() == nil &&
		len(proj.Projects) > 0 &&
		path != PathProjectSelection &&
		path != PathSettings {
		return Decision{Outcome: OutcomeRedirectProjectSelection, Target: PathProjectSelection}
	}

	return Decision{Outcome: OutcomeAllow}
}
