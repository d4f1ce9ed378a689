package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/gameportal/internal/guard"
	"github.com/mcoot/gameportal/internal/portal"
	"github.com/mcoot/gameportal/internal/web/middleware"
	"github.com/mcoot/gameportal/internal/web/templates/pages"
)

const msgInvalidYear = "El año debe ser un número"

// GamesHandler serves the catalog pages. Every route sits behind the guard.
type GamesHandler struct {
	client *portal.Client
	// loginPath is where a lost session is sent, from the guard's table
	loginPath     string
	secureCookies bool
	logger        *slog.Logger
}

// NewGamesHandler creates a new GamesHandler
func NewGamesHandler(client *portal.Client, loginPath string, secureCookies bool, logger *slog.Logger) *GamesHandler {
	return &GamesHandler{client: client, loginPath: loginPath, secureCookies: secureCookies, logger: logger}
}

// List renders every game in the catalog
func (h *GamesHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.client.ListGames(r.Context(), middleware.Session(r))
	if err != nil {
		if h.sessionLost(w, r, err) {
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to list games", slog.String("error", err.Error()))
		data := pages.GamesData{PageData: pageData(r, "Juegos")}
		data.Flash = flashError(msgBackendUnavailable)
		render(w, r, h.logger, http.StatusBadGateway, pages.Games(data))
		return
	}

	render(w, r, h.logger, http.StatusOK, pages.Games(pages.GamesData{
		PageData: pageData(r, "Juegos"),
		Games:    games,
	}))
}

// Create adds a game. The backend refuses non-admins.
func (h *GamesHandler) Create(w http.ResponseWriter, r *http.Request) {
	game, problem := gameFromForm(r)
	if problem != "" {
		redirectWithFlash(w, r, DefaultLanding, "error", problem)
		return
	}

	result, err := h.client.CreateGame(r.Context(), middleware.Session(r), game)
	h.finish(w, r, result, err)
}

// Update replaces a game's fields with the submitted form
func (h *GamesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(r)
	if !ok {
		redirectWithFlash(w, r, DefaultLanding, "error", "Juego no encontrado")
		return
	}
	game, problem := gameFromForm(r)
	if problem != "" {
		redirectWithFlash(w, r, DefaultLanding, "error", problem)
		return
	}

	result, err := h.client.UpdateGame(r.Context(), middleware.Session(r), id, game)
	h.finish(w, r, result, err)
}

// Delete removes a game
func (h *GamesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(r)
	if !ok {
		redirectWithFlash(w, r, DefaultLanding, "error", "Juego no encontrado")
		return
	}

	result, err := h.client.DeleteGame(r.Context(), middleware.Session(r), id)
	h.finish(w, r, result, err)
}

// finish turns a mutation outcome into a flash on the catalog page
func (h *GamesHandler) finish(w http.ResponseWriter, r *http.Request, result *portal.MutationResult, err error) {
	if err != nil {
		if h.sessionLost(w, r, err) {
			return
		}
		msg := portal.Message(err)
		if portal.IsTransport(err) {
			msg = msgBackendUnavailable
		}
		redirectWithFlash(w, r, DefaultLanding, "error", msg)
		return
	}
	redirectWithFlash(w, r, DefaultLanding, "success", result.Message)
}

// sessionLost handles a backend 401 on a page the guard already admitted,
// which happens when the session ends between the check and the call
func (h *GamesHandler) sessionLost(w http.ResponseWriter, r *http.Request, err error) bool {
	if !portal.IsUnauthorized(err) {
		return false
	}
	middleware.ClearSession(w, h.secureCookies)
	http.Redirect(w, r, guard.LoginLocation(h.loginPath, DefaultLanding), http.StatusSeeOther)
	return true
}

func gameID(r *http.Request) (portal.GameID, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return portal.GameID(id), true
}

// gameFromForm reads the catalog form, returning a visitor-facing problem
// when it cannot be used
func gameFromForm(r *http.Request) (portal.Game, string) {
	if err := r.ParseForm(); err != nil {
		return portal.Game{}, "Formulario no válido"
	}

	field := func(name string) string { return strings.TrimSpace(r.PostFormValue(name)) }

	var year int
	if raw := field("anio"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return portal.Game{}, msgInvalidYear
		}
		year = y
	}

	return portal.Game{
		Name:         field("nombre"),
		Genre:        field("genero"),
		Platform:     field("plataforma"),
		Year:         year,
		Description:  field("descripcion"),
		ImagePath:    field("imagen_ruta"),
		WikipediaURL: field("wikipedia_url"),
	}, ""
}
