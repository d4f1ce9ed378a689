package response

import "github.com/mcoot/gameportal/internal/model"

// Created is returned by POST /register and POST /juegos
type Created struct {
	Message string `json:"mensaje"`
	ID      int64  `json:"id"`
}

// Mutation is returned by PUT and DELETE on /juegos/{id}
type Mutation struct {
	Message string            `json:"mensaje"`
	ID      model.VideoGameID `json:"id"`
}

// LoginOK is returned by a successful POST /login
type LoginOK struct {
	Message string `json:"message"`
}

// Message is a bare confirmation
type Message struct {
	Message string `json:"mensaje"`
}

// AuthStatus is returned by GET /auth/status
type AuthStatus struct {
	Authenticated bool             `json:"autenticado"`
	UserID        *model.AccountID `json:"user_id,omitempty"`
	IsAdmin       *bool            `json:"es_admin,omitempty"`
}
