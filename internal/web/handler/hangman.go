package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/services/hangman"
	"github.com/mcoot/gameportal/internal/web/middleware"
	"github.com/mcoot/gameportal/internal/web/templates/pages"
)

const hangmanPath = "/hangman"

// HangmanHandler serves the hangman game. Games are keyed by the backend
// user id the guard confirmed, so they follow the account across browsers.
type HangmanHandler struct {
	hangman *hangman.Service
	logger  *slog.Logger
}

// NewHangmanHandler creates a new HangmanHandler
func NewHangmanHandler(svc *hangman.Service, logger *slog.Logger) *HangmanHandler {
	return &HangmanHandler{hangman: svc, logger: logger}
}

// View renders the visitor's current game, or the start screen
func (h *HangmanHandler) View(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	game, err := h.hangman.Current(r.Context(), owner)
	if err != nil && !errors.Is(err, model.ErrNoActiveGame) {
		h.logger.ErrorContext(r.Context(), "failed to load hangman game", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	render(w, r, h.logger, http.StatusOK, pages.Hangman(pages.HangmanData{
		PageData: pageData(r, "Ahorcado"),
		Game:     game,
	}))
}

// New starts a fresh game, abandoning any game in progress
func (h *HangmanHandler) New(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	if _, err := h.hangman.Start(r.Context(), owner); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to start hangman game", slog.String("error", err.Error()))
		redirectWithFlash(w, r, hangmanPath, "error", "No se pudo empezar la partida")
		return
	}
	http.Redirect(w, r, hangmanPath, http.StatusSeeOther)
}

// Guess plays one letter
func (h *HangmanHandler) Guess(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, hangmanPath, "error", "Formulario no válido")
		return
	}

	id := model.HangmanID(r.PostFormValue("game_id"))
	result, err := h.hangman.Guess(r.Context(), id, owner, r.PostFormValue("letter"))
	if err != nil {
		redirectWithFlash(w, r, hangmanPath, "error", guessErrorMessage(err))
		return
	}

	if result.Game.IsOver() {
		// The page itself announces the result
		http.Redirect(w, r, hangmanPath, http.StatusSeeOther)
		return
	}
	if result.Hit {
		redirectWithFlash(w, r, hangmanPath, "success", fmt.Sprintf("¡Bien! La %c está en la palabra", result.Letter))
		return
	}
	redirectWithFlash(w, r, hangmanPath, "info", fmt.Sprintf("La %c no está en la palabra", result.Letter))
}

// Abandon gives up the current game
func (h *HangmanHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, hangmanPath, "error", "Formulario no válido")
		return
	}

	id := model.HangmanID(r.PostFormValue("game_id"))
	if err := h.hangman.Abandon(r.Context(), id, owner); err != nil {
		redirectWithFlash(w, r, hangmanPath, "error", guessErrorMessage(err))
		return
	}
	redirectWithFlash(w, r, hangmanPath, "info", "Partida abandonada")
}

// owner is the guard-confirmed user. The guard always sets it on this
// route, so a missing user is a wiring bug.
func (h *HangmanHandler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		h.logger.ErrorContext(r.Context(), "hangman route reached without a confirmed user")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return "", false
	}
	return model.OwnerFromUserID(user.ID), true
}

func guessErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidLetter):
		return "Introduce una sola letra"
	case errors.Is(err, model.ErrAlreadyGuessed):
		return "Ya has probado esa letra"
	case errors.Is(err, model.ErrGameOver):
		return "La partida ya ha terminado"
	case errors.Is(err, model.ErrHangmanNotFound), errors.Is(err, model.ErrNotGameOwner):
		return "Partida no encontrada"
	default:
		return "Algo ha ido mal"
	}
}
