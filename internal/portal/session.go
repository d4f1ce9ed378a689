package portal

// Session is the opaque credential the backend issued at login. Callers hold
// it and pass it to every call; the client keeps no session state of its own.
type Session struct {
	token string
}

// NewSession wraps a token previously obtained from Login
func NewSession(token string) Session {
	return Session{token: token}
}

// Token returns the raw token, for persisting between processes
func (s Session) Token() string {
	return s.token
}

// IsZero reports whether the session carries no credential
func (s Session) IsZero() bool {
	return s.token == ""
}

// String never reveals the token
func (s Session) String() string {
	if s.IsZero() {
		return "Session(none)"
	}
	return "Session(***)"
}
