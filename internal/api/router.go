package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gameportal/internal/api/handler"
	"github.com/mcoot/gameportal/internal/api/middleware"
	"github.com/mcoot/gameportal/internal/metrics"
	commonmw "github.com/mcoot/gameportal/internal/middleware"
	"github.com/mcoot/gameportal/internal/services/accounts"
	"github.com/mcoot/gameportal/internal/services/catalog"
)

// RouterConfig holds configuration for the backend router
type RouterConfig struct {
	Logger   *slog.Logger
	Accounts *accounts.Service
	Catalog  *catalog.Service
	Metrics  *metrics.Registry
	// SecureCookies issues the session cookie with Secure and SameSite=None,
	// as a cross-origin deployment needs
	SecureCookies bool
}

// NewRouter creates the backend router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	accountHandler := handler.NewAccountHandler(cfg.Accounts, cfg.SecureCookies)
	catalogHandler := handler.NewCatalogHandler(cfg.Catalog)

	authMiddleware := middleware.Auth(cfg.Accounts)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(commonmw.Metrics(cfg.Metrics, "backend"))

	// Public routes
	r.HandleFunc("/register", accountHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", accountHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/status", accountHandler.Status).Methods(http.MethodGet)
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Everything else needs a session
	protected := r.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/logout", accountHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/juegos", catalogHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/juegos", catalogHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/juegos/{id:[0-9]+}", catalogHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/juegos/{id:[0-9]+}", catalogHandler.Delete).Methods(http.MethodDelete)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
