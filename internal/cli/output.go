package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mcoot/gameportal/internal/guard"
	"github.com/mcoot/gameportal/internal/portal"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		_, _ = fmt.Fprintln(o.errOut, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.out, string(data))
	} else {
		_, _ = fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthStatusResult:
		o.printAuthStatus(v)
	case []portal.Game:
		o.printGames(v)
	case *portal.MutationResult:
		o.printMutation(v)
	case *portal.RegisterResult:
		o.printf("%s (id %d)\n", v.Message, v.ID)
	case NavigationResult:
		o.printNavigation(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.out, format, args...)
}

// AuthStatusResult is the JSON shape of 'portal status'
type AuthStatusResult struct {
	Authenticated bool  `json:"authenticated"`
	UserID        int64 `json:"user_id,omitempty"`
	IsAdmin       bool  `json:"is_admin"`
	StatusCode    int   `json:"status_code"`
}

func newAuthStatusResult(s *portal.AuthStatus) AuthStatusResult {
	return AuthStatusResult{
		Authenticated: s.OK(),
		UserID:        s.UserID,
		IsAdmin:       s.IsAdmin,
		StatusCode:    s.StatusCode,
	}
}

func (o *Output) printAuthStatus(s AuthStatusResult) {
	if !s.Authenticated {
		o.printf("Authenticated: no (HTTP %d)\n", s.StatusCode)
		return
	}
	admin := "no"
	if s.IsAdmin {
		admin = "yes"
	}
	o.printf("Authenticated: yes\n")
	o.printf("User ID: %d\n", s.UserID)
	o.printf("Admin: %s\n", admin)
}

func (o *Output) printGames(games []portal.Game) {
	if len(games) == 0 {
		o.printf("No games.\n")
		return
	}
	tw := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tGENRE\tPLATFORM\tYEAR")
	for _, g := range games {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", g.ID, g.Name, g.Genre, g.Platform, g.Year)
	}
	_ = tw.Flush()
}

func (o *Output) printMutation(m *portal.MutationResult) {
	if m.ID != 0 {
		o.printf("%s (id %d)\n", m.Message, m.ID)
		return
	}
	o.printf("%s\n", m.Message)
}

// NavigationResult is what 'portal open' reports for one navigation
type NavigationResult struct {
	Path     string `json:"path"`
	Route    string `json:"route,omitempty"`
	Outcome  string `json:"outcome"`
	Location string `json:"location,omitempty"`
	UserID   int64  `json:"user_id,omitempty"`
	IsAdmin  bool   `json:"is_admin,omitempty"`
}

func newNavigationResult(path string, d guard.Decision) NavigationResult {
	r := NavigationResult{
		Path:     path,
		Route:    d.Route.Name,
		Outcome:  string(d.Outcome),
		Location: d.Location,
	}
	if d.Status != nil {
		r.UserID = d.Status.UserID
		r.IsAdmin = d.Status.IsAdmin
	}
	return r
}

func (o *Output) printNavigation(n NavigationResult) {
	if n.Location != "" {
		o.printf("%s: redirected to %s\n", n.Path, n.Location)
		return
	}
	if n.UserID != 0 {
		o.printf("%s: allowed (user %d)\n", n.Path, n.UserID)
		return
	}
	o.printf("%s: allowed\n", n.Path)
}
