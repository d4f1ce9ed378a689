package guard

import (
	"context"
	"log/slog"

	"github.com/mcoot/gameportal/internal/metrics"
	"github.com/mcoot/gameportal/internal/portal"
)

// SessionChecker asks the backend whether a session is valid
type SessionChecker interface {
	CheckAuth(ctx context.Context, sess portal.Session) (*portal.AuthStatus, error)
}

// State of a single navigation
type State int

const (
	Unchecked State = iota
	Checking
	StateAllowed
	StateRedirected
)

func (s State) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Checking:
		return "checking"
	case StateAllowed:
		return "allowed"
	case StateRedirected:
		return "redirected"
	default:
		return "unknown"
	}
}

// Transition is reported to the Observer each time a navigation changes state
type Transition struct {
	FullPath string
	Route    Route
	From     State
	To       State
}

// Observer receives navigation state transitions. It is called synchronously.
type Observer func(Transition)

// Guard gates navigation to protected routes on a fresh session check
type Guard struct {
	table    *Table
	checker  SessionChecker
	logger   *slog.Logger
	metrics  *metrics.Registry
	observer Observer
}

// Option configures a Guard
type Option func(*Guard)

// WithLogger sets the guard's logger
func WithLogger(logger *slog.Logger) Option {
	return func(g *Guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithMetrics records each decision in the registry
func WithMetrics(m *metrics.Registry) Option {
	return func(g *Guard) {
		g.metrics = m
	}
}

// WithObserver installs a state transition hook
func WithObserver(o Observer) Option {
	return func(g *Guard) {
		g.observer = o
	}
}

// New creates a guard over table using checker for session checks
func New(table *Table, checker SessionChecker, opts ...Option) *Guard {
	g := &Guard{
		table:   table,
		checker: checker,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Table returns the guard's route table
func (g *Guard) Table() *Table {
	return g.table
}

// Navigate decides whether the visitor holding sess may open fullPath.
// Public routes are allowed without contacting the backend. Protected routes
// trigger exactly one session check; any failure redirects to login.
func (g *Guard) Navigate(ctx context.Context, fullPath string, sess portal.Session) Decision {
	route := g.table.Resolve(fullPath)

	state := SessionUnverified
	var status *portal.AuthStatus
	if route.RequiresAuth() {
		g.transition(fullPath, route, Unchecked, Checking)
		status, state = g.check(ctx, fullPath, sess)
	}

	decision := Evaluate(route, state, fullPath, g.table.LoginPath())
	if decision.Allowed() {
		decision.Status = status
	}

	from := Unchecked
	if route.RequiresAuth() {
		from = Checking
	}
	if decision.Allowed() {
		g.transition(fullPath, route, from, StateAllowed)
	} else {
		g.transition(fullPath, route, from, StateRedirected)
	}

	g.metrics.RecordGuardDecision(routeLabel(route), string(decision.Outcome))
	return decision
}

func (g *Guard) check(ctx context.Context, fullPath string, sess portal.Session) (*portal.AuthStatus, SessionState) {
	status, err := g.checker.CheckAuth(ctx, sess)
	if err != nil {
		g.logger.DebugContext(ctx, "session check failed",
			slog.String("path", fullPath),
			slog.String("error", err.Error()),
		)
		return nil, SessionUnverified
	}
	if !status.OK() {
		code := 0
		if status != nil {
			code = status.StatusCode
		}
		g.logger.DebugContext(ctx, "session not authenticated",
			slog.String("path", fullPath),
			slog.Int("status", code),
		)
		return nil, SessionUnverified
	}
	return status, SessionValid
}

func (g *Guard) transition(fullPath string, route Route, from, to State) {
	if g.observer == nil {
		return
	}
	g.observer(Transition{FullPath: fullPath, Route: route, From: from, To: to})
}

func routeLabel(r Route) string {
	if r.Name == "" {
		return "unknown"
	}
	return r.Name
}
