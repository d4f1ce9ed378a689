package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/gameportal/internal/model"
)

// ErrorResponse is the body of every error reply. The backend reports errors
// as a single human-readable string.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Messages the backend sends to clients
const (
	MsgMissingFields      = "Faltan campos obligatorios"
	MsgAccountExists      = "El usuario o email ya existen"
	MsgInvalidCredentials = "Credenciales incorrectas"
	MsgUnauthorized       = "No autorizado"
	MsgGameNotFound       = "Juego no encontrado"
	MsgInvalidBody        = "Cuerpo de la petición inválido"
	MsgInternal           = "Error interno del servidor"
)

// httpError combines an HTTP status code with a message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.message})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrMissingFields):
		return &httpError{http.StatusBadRequest, MsgMissingFields}
	case errors.Is(err, model.ErrAccountExists):
		return &httpError{http.StatusConflict, MsgAccountExists}
	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, MsgInvalidCredentials}
	case errors.Is(err, model.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, MsgUnauthorized}
	case errors.Is(err, model.ErrVideoGameNotFound):
		return &httpError{http.StatusNotFound, MsgGameNotFound}
	default:
		return &httpError{http.StatusInternalServerError, MsgInternal}
	}
}

// NewInvalidRequestError creates a 400 error with the given message
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewUnauthorizedError creates a 401 error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, MsgUnauthorized}
}

// NewForbiddenError creates a 403 error with the given message
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, message}
}

// NewNotFoundError creates a 404 error with the given message
func NewNotFoundError(message string) error {
	return &httpError{http.StatusNotFound, message}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, MsgInternal}
}
