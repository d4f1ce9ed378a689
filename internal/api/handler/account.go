package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/gameportal/internal/api/apierr"
	"github.com/mcoot/gameportal/internal/api/middleware"
	"github.com/mcoot/gameportal/internal/api/request"
	"github.com/mcoot/gameportal/internal/api/response"
	"github.com/mcoot/gameportal/internal/services/accounts"
)

// AccountHandler handles registration, login and session endpoints
type AccountHandler struct {
	accounts *accounts.Service
	// secureCookies marks the session cookie Secure and SameSite=None
	secureCookies bool
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(svc *accounts.Service, secureCookies bool) *AccountHandler {
	return &AccountHandler{
		accounts:      svc,
		secureCookies: secureCookies,
	}
}

// Register handles POST /register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError(apierr.MsgMissingFields))
		return
	}

	if err := request.Validate(&req); err != nil {
		WriteError(w, NewInvalidRequestError(apierr.MsgMissingFields))
		return
	}

	account, err := h.accounts.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Created{
		Message: "Usuario registrado correctamente",
		ID:      int64(account.ID),
	})
}

// Login handles POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError(apierr.MsgInvalidBody))
		return
	}

	session, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	http.SetCookie(w, h.cookie(session.Token, 0))
	response.JSON(w, http.StatusOK, response.LoginOK{Message: "Inicio de sesión correcto"})
}

// Status handles GET /auth/status
func (h *AccountHandler) Status(w http.ResponseWriter, r *http.Request) {
	session, err := h.accounts.ValidateSession(middleware.Token(r))
	if err != nil {
		response.JSON(w, http.StatusUnauthorized, response.AuthStatus{Authenticated: false})
		return
	}

	response.JSON(w, http.StatusOK, response.AuthStatus{
		Authenticated: true,
		UserID:        &session.AccountID,
		IsAdmin:       &session.IsAdmin,
	})
}

// Logout handles POST /logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	h.accounts.InvalidateSession(session.Token)

	http.SetCookie(w, h.cookie("", -1))
	response.JSON(w, http.StatusOK, response.Message{Message: "Sesión cerrada"})
}

func (h *AccountHandler) cookie(value string, maxAge int) *http.Cookie {
	c := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if h.secureCookies {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}
