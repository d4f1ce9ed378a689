package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/gameportal/internal/portal"
	"github.com/mcoot/gameportal/internal/web/middleware"
	"github.com/mcoot/gameportal/internal/web/templates/pages"
)

const msgBackendUnavailable = "No se pudo contactar con el servidor. Inténtalo más tarde."

// AuthHandler handles login, registration and logout against the backend
type AuthHandler struct {
	client        *portal.Client
	secureCookies bool
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(client *portal.Client, secureCookies bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{client: client, secureCookies: secureCookies, logger: logger}
}

// LoginPage renders the login form. ?redirect= is kept for after login.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, http.StatusOK, pages.LoginData{
		Redirect: r.URL.Query().Get("redirect"),
	})
}

// Login checks the credentials with the backend and keeps its session token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, pages.LoginData{Error: "Formulario no válido"})
		return
	}

	data := pages.LoginData{
		Username: strings.TrimSpace(r.FormValue("username")),
		Redirect: r.FormValue("redirect"),
	}
	password := r.FormValue("password")

	if data.Username == "" || password == "" {
		data.Error = "Usuario y contraseña son obligatorios"
		h.renderLogin(w, r, http.StatusBadRequest, data)
		return
	}

	result, err := h.client.Login(r.Context(), data.Username, password)
	if err != nil {
		status := portal.StatusCode(err)
		data.Error = portal.Message(err)
		if status == 0 || portal.IsTransport(err) {
			h.logger.WarnContext(r.Context(), "login failed",
				slog.String("username", data.Username),
				slog.String("error", err.Error()),
			)
			status = http.StatusBadGateway
			data.Error = msgBackendUnavailable
		}
		h.renderLogin(w, r, status, data)
		return
	}

	middleware.SetSession(w, result.Session, h.secureCookies)
	redirectWithFlash(w, r, SafeRedirect(data.Redirect), "success", result.Message)
}

// RegisterPage renders the sign-up form
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderRegister(w, r, http.StatusOK, pages.RegisterData{})
}

// Register validates the form locally, then creates the account on the backend
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegister(w, r, http.StatusBadRequest, pages.RegisterData{Error: "Formulario no válido"})
		return
	}

	form := parseRegisterForm(r)
	data := pages.RegisterData{
		Username:    form.Username,
		Email:       form.Email,
		FieldErrors: validateForm(form),
	}
	if len(data.FieldErrors) > 0 {
		h.renderRegister(w, r, http.StatusBadRequest, data)
		return
	}

	result, err := h.client.Register(r.Context(), form.Username, form.Email, form.Password)
	if err != nil {
		status := portal.StatusCode(err)
		data.Error = portal.Message(err)
		if status == 0 {
			status = http.StatusBadGateway
			data.Error = msgBackendUnavailable
		}
		h.renderRegister(w, r, status, data)
		return
	}

	h.logger.InfoContext(r.Context(), "account registered",
		slog.String("username", data.Username),
		slog.Int64("user_id", result.ID),
	)
	redirectWithFlash(w, r, "/login", "success", result.Message)
}

// Logout ends the backend session and forgets the token. The cookie is
// cleared even when the backend call fails.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	message := "Sesión cerrada"
	if sess := middleware.Session(r); !sess.IsZero() {
		result, err := h.client.Logout(r.Context(), sess)
		switch {
		case err == nil:
			message = result.Message
		case !portal.IsUnauthorized(err):
			h.logger.WarnContext(r.Context(), "backend logout failed", slog.String("error", err.Error()))
		}
	}

	middleware.ClearSession(w, h.secureCookies)
	redirectWithFlash(w, r, "/login", "info", message)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, data pages.LoginData) {
	data.PageData = pageData(r, "Iniciar sesión")
	render(w, r, h.logger, status, pages.Login(data))
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request, status int, data pages.RegisterData) {
	data.PageData = pageData(r, "Registro")
	render(w, r, h.logger, status, pages.Register(data))
}
