package guard

import (
	"net/url"

	"github.com/mcoot/gameportal/internal/portal"
)

// SessionState is what the guard knows about the visitor's session when it
// makes a decision
type SessionState int

const (
	// SessionUnverified means no check was made or the check failed
	SessionUnverified SessionState = iota
	// SessionValid means the backend confirmed the session
	SessionValid
)

// Outcome of a navigation
type Outcome string

const (
	Allowed    Outcome = "allowed"
	Redirected Outcome = "redirected"
)

// Decision is the result of evaluating a navigation
type Decision struct {
	Outcome Outcome
	Route   Route
	// Location is set when Outcome is Redirected
	Location string
	// Status is the session check that allowed a protected route. It is nil
	// for public routes and redirects.
	Status *portal.AuthStatus
}

// Allowed reports whether the navigation may proceed
func (d Decision) Allowed() bool {
	return d.Outcome == Allowed
}

// Evaluate decides a navigation to fullPath on route given the session state.
// It performs no I/O.
func Evaluate(route Route, session SessionState, fullPath, loginPath string) Decision {
	if !route.RequiresAuth() || session == SessionValid {
		return Decision{Outcome: Allowed, Route: route}
	}
	return Decision{
		Outcome:  Redirected,
		Route:    route,
		Location: LoginLocation(loginPath, fullPath),
	}
}

// LoginLocation builds the login URL that returns the visitor to fullPath
func LoginLocation(loginPath, fullPath string) string {
	q := url.Values{"redirect": {fullPath}}
	return loginPath + "?" + q.Encode()
}
