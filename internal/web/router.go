package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gameportal/internal/guard"
	"github.com/mcoot/gameportal/internal/metrics"
	commonmw "github.com/mcoot/gameportal/internal/middleware"
	"github.com/mcoot/gameportal/internal/portal"
	"github.com/mcoot/gameportal/internal/services/hangman"
	"github.com/mcoot/gameportal/internal/web/handler"
	"github.com/mcoot/gameportal/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger  *slog.Logger
	Client  *portal.Client
	Guard   *guard.Guard
	Hangman *hangman.Service
	Metrics *metrics.Registry
	// StaticDir is served under /static/ when set
	StaticDir string
	// SecureCookies marks the portal's own cookies Secure, for HTTPS deployments
	SecureCookies bool
}

// NewRouter creates the portal's page router. Every page goes through the
// navigation guard; the guard's route table decides which pages need a session.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(commonmw.Metrics(cfg.Metrics, "web"))

	authHandler := handler.NewAuthHandler(cfg.Client, cfg.SecureCookies, cfg.Logger)
	gamesHandler := handler.NewGamesHandler(cfg.Client, cfg.Guard.Table().LoginPath(), cfg.SecureCookies, cfg.Logger)
	hangmanHandler := handler.NewHangmanHandler(cfg.Hangman, cfg.Logger)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Flash())
	pages.Use(middleware.Guard(cfg.Guard))

	pages.HandleFunc("/", handler.Home).Methods(http.MethodGet)

	pages.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	pages.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	pages.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	pages.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	pages.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	pages.HandleFunc("/games", gamesHandler.List).Methods(http.MethodGet)
	pages.HandleFunc("/games", gamesHandler.Create).Methods(http.MethodPost)
	pages.HandleFunc("/games/{id:[0-9]+}", gamesHandler.Update).Methods(http.MethodPost)
	pages.HandleFunc("/games/{id:[0-9]+}/delete", gamesHandler.Delete).Methods(http.MethodPost)

	pages.HandleFunc("/hangman", hangmanHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/hangman/new", hangmanHandler.New).Methods(http.MethodPost)
	pages.HandleFunc("/hangman/guess", hangmanHandler.Guess).Methods(http.MethodPost)
	pages.HandleFunc("/hangman/abandon", hangmanHandler.Abandon).Methods(http.MethodPost)

	return r
}
