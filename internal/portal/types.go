package portal

import "encoding/json"

// GameID identifies a game on the backend
type GameID int64

// Game is a backend-owned game record. The client passes it through without
// validation; the backend decides which fields are required.
type Game struct {
	ID           GameID `json:"id,omitempty"`
	Name         string `json:"nombre"`
	Genre        string `json:"genero"`
	Platform     string `json:"plataforma"`
	Year         int    `json:"anio"`
	Description  string `json:"descripcion,omitempty"`
	ImagePath    string `json:"imagen_ruta,omitempty"`
	WikipediaURL string `json:"wikipedia_url,omitempty"`
}

// LoginResult is the backend's answer to a successful login
type LoginResult struct {
	Message string `json:"message"`
	// Session is taken from the backend's Set-Cookie header
	Session Session `json:"-"`
}

// RegisterResult is the backend's answer to a successful registration
type RegisterResult struct {
	Message string `json:"mensaje"`
	ID      int64  `json:"id"`
}

// MutationResult is the backend's confirmation for create, update, delete and logout
type MutationResult struct {
	Message string `json:"mensaje"`
	ID      GameID `json:"id,omitempty"`
}

// AuthStatus is the body of GET /auth/status together with the HTTP status
// it arrived with
type AuthStatus struct {
	StatusCode    int   `json:"-"`
	Authenticated bool  `json:"authenticated"`
	UserID        int64 `json:"user_id,omitempty"`
	IsAdmin       bool  `json:"es_admin,omitempty"`
}

// UnmarshalJSON accepts both "authenticated" and the Spanish "autenticado"
// key used by the deployed backend
func (a *AuthStatus) UnmarshalJSON(data []byte) error {
	var raw struct {
		Authenticated *bool `json:"authenticated"`
		Autenticado   *bool `json:"autenticado"`
		UserID        int64 `json:"user_id"`
		IsAdmin       bool  `json:"es_admin"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	a.UserID = raw.UserID
	a.IsAdmin = raw.IsAdmin
	switch {
	case raw.Authenticated != nil:
		a.Authenticated = *raw.Authenticated
	case raw.Autenticado != nil:
		a.Authenticated = *raw.Autenticado
	default:
		a.Authenticated = false
	}
	return nil
}

// OK reports whether the status came back with a success code and says the
// session is authenticated
func (a *AuthStatus) OK() bool {
	return a != nil && a.StatusCode >= 200 && a.StatusCode < 300 && a.Authenticated
}
