package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/gameportal/internal/middleware"
)

// Recovery creates panic recovery middleware for the portal pages.
// Returns an HTML error page on panic.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html lang="es">
<head><title>Error</title></head>
<body>
<h1>Error interno</h1>
<p>Algo ha ido mal. Inténtalo de nuevo más tarde.</p>
<p><a href="/games">Volver a los juegos</a></p>
</body>
</html>`))
}
