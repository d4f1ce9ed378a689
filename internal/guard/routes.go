package guard

import (
	"fmt"
	"net/url"
	"strings"
)

// Capability is what a route demands of the visitor
type Capability int

const (
	// Public routes are always reachable
	Public Capability = iota
	// Authenticated routes need a session the backend accepts
	Authenticated
)

func (c Capability) String() string {
	switch c {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("Capability(%d)", int(c))
	}
}

// Route is one entry of the navigation table
type Route struct {
	Path       string
	Name       string
	Capability Capability
}

// RequiresAuth reports whether navigating to the route needs a valid session
func (r Route) RequiresAuth() bool {
	return r.Capability == Authenticated
}

// Route names
const (
	RouteGames    = "Games"
	RouteHangman  = "Hangman"
	RouteLogin    = "Login"
	RouteRegister = "Register"
)

// DefaultRoutes is the portal's navigation table
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/games", Name: RouteGames, Capability: Authenticated},
		{Path: "/hangman", Name: RouteHangman, Capability: Authenticated},
		{Path: "/login", Name: RouteLogin, Capability: Public},
		{Path: "/register", Name: RouteRegister, Capability: Public},
	}
}

// Table is an immutable set of routes indexed by path
type Table struct {
	routes    []Route
	byPath    map[string]Route
	loginPath string
}

// NewTable builds a table. One route must be named Login; it is where
// rejected navigations are sent.
func NewTable(routes []Route) (*Table, error) {
	t := &Table{
		routes: make([]Route, 0, len(routes)),
		byPath: make(map[string]Route, len(routes)),
	}
	for _, r := range routes {
		if r.Path == "" || r.Path[0] != '/' {
			return nil, fmt.Errorf("guard: route %q has invalid path %q", r.Name, r.Path)
		}
		if _, dup := t.byPath[r.Path]; dup {
			return nil, fmt.Errorf("guard: duplicate route path %q", r.Path)
		}
		t.byPath[r.Path] = r
		t.routes = append(t.routes, r)
		if r.Name == RouteLogin {
			t.loginPath = r.Path
		}
	}
	if t.loginPath == "" {
		return nil, fmt.Errorf("guard: table has no %s route", RouteLogin)
	}
	return t, nil
}

// DefaultTable returns the table built from DefaultRoutes
func DefaultTable() *Table {
	t, err := NewTable(DefaultRoutes())
	if err != nil {
		panic(err)
	}
	return t
}

// Routes returns a copy of the table's routes in declaration order
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// LoginPath is the path of the Login route
func (t *Table) LoginPath() string {
	return t.loginPath
}

// Resolve finds the route for a full path (query and fragment ignored).
// A path below a route, such as /games/5 under /games, resolves to that
// route. Paths not in the table resolve to an unnamed public route.
func (t *Table) Resolve(fullPath string) Route {
	p := fullPath
	if u, err := url.Parse(fullPath); err == nil {
		p = u.Path
	}
	if r, ok := t.byPath[p]; ok {
		return r
	}
	for _, r := range t.routes {
		if strings.HasPrefix(p, r.Path+"/") {
			return r
		}
	}
	return Route{Path: p, Capability: Public}
}
