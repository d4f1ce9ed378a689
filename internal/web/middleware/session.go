package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/gameportal/internal/guard"
	"github.com/mcoot/gameportal/internal/portal"
	"github.com/mcoot/gameportal/internal/web/templates/layout"
)

type contextKey string

const (
	userContextKey     contextKey = "user"
	decisionContextKey contextKey = "decision"
)

// SessionCookieName holds the backend session token on the portal's own origin
const SessionCookieName = "portal_session"

// Session reads the backend session carried by the request, if any
func Session(r *http.Request) portal.Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return portal.Session{}
	}
	return portal.NewSession(cookie.Value)
}

// SetSession stores the backend token in the visitor's browser
func SetSession(w http.ResponseWriter, sess portal.Session, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.Token(),
		Path:     "/",
		MaxAge:   86400, // backend sessions last a day
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession removes the session cookie
func ClearSession(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetUser returns the visitor confirmed by the guard, or nil on public pages
func GetUser(ctx context.Context) *layout.User {
	user, _ := ctx.Value(userContextKey).(*layout.User)
	return user
}

// GetDecision returns the guard decision that admitted the request
func GetDecision(ctx context.Context) (guard.Decision, bool) {
	d, ok := ctx.Value(decisionContextKey).(guard.Decision)
	return d, ok
}

// Guard runs every request through the navigation guard. Redirected
// navigations get a 303 to the login page carrying the original path.
func Guard(g *guard.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := g.Navigate(r.Context(), navigationTarget(r), Session(r))
			if !d.Allowed() {
				http.Redirect(w, r, d.Location, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), decisionContextKey, d)
			if d.Status != nil {
				ctx = context.WithValue(ctx, userContextKey, &layout.User{
					ID:      d.Status.UserID,
					IsAdmin: d.Status.IsAdmin,
				})
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// navigationTarget is the path a visitor should land on after logging in.
// Form posts are not replayable, so they return to their section instead.
func navigationTarget(r *http.Request) string {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return r.URL.RequestURI()
	}
	first, _, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	return "/" + first
}
