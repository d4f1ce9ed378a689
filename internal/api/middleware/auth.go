package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/gameportal/internal/api/apierr"
	"github.com/mcoot/gameportal/internal/services/accounts"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionCookie is the cookie the backend keeps its session token in
const SessionCookie = "token"

// Auth rejects requests without a valid session cookie with 401
func Auth(svc *accounts.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := svc.ValidateSession(Token(r))
			if err != nil {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Token extracts the session token from the request cookie
func Token(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *accounts.Session {
	session, _ := ctx.Value(sessionContextKey).(*accounts.Session)
	return session
}

// MustGetSession returns the session or panics
func MustGetSession(ctx context.Context) *accounts.Session {
	session := GetSession(ctx)
	if session == nil {
		panic("no session in context - auth middleware not applied?")
	}
	return session
}
