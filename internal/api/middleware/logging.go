package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/gameportal/internal/middleware"
)

// Logging logs each backend request
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "backend")))
}
