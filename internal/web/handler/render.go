package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/gameportal/internal/web/middleware"
	"github.com/mcoot/gameportal/internal/web/templates/layout"
)

// DefaultLanding is where visitors go when no other destination applies
const DefaultLanding = "/games"

func pageData(r *http.Request, title string) layout.PageData {
	return layout.PageData{
		Title: title,
		User:  middleware.GetUser(r.Context()),
		Flash: middleware.GetFlash(r.Context()),
	}
}

func flashError(message string) *layout.FlashMessage {
	return &layout.FlashMessage{Type: "error", Message: message}
}

func render(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		// Headers are gone by now; all that is left is to log it
		logger.ErrorContext(r.Context(), "failed to render page",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
}

func redirectWithFlash(w http.ResponseWriter, r *http.Request, location, flashType, message string) {
	middleware.SetFlash(w, flashType, message)
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// SafeRedirect accepts only same-origin absolute paths, falling back to
// DefaultLanding. "//host" and "/\host" are rejected since browsers treat
// them as another origin, and so is anything with tab, CR or LF, which
// browsers drop before parsing.
func SafeRedirect(target string) string {
	if strings.ContainsAny(target, "\t\r\n") ||
		!strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "//") ||
		strings.HasPrefix(target, "/\\") {
		return DefaultLanding
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return DefaultLanding
	}
	return target
}
