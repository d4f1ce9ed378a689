package factory

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/gameportal/internal/api"
	"github.com/mcoot/gameportal/internal/dependencies/clock"
	"github.com/mcoot/gameportal/internal/dependencies/random"
	"github.com/mcoot/gameportal/internal/metrics"
	"github.com/mcoot/gameportal/internal/services/accounts"
	"github.com/mcoot/gameportal/internal/services/catalog"
)

// Backend is the in-memory emulation of the game backend
type Backend struct {
	Clock    clock.Clock
	Random   random.Random
	Accounts *accounts.Service
	Catalog  *catalog.Service
	Handler  http.Handler
}

// BackendConfig configures the emulated backend
type BackendConfig struct {
	Accounts accounts.Config
	// CatalogPath seeds the catalog from a JSON file (optional)
	CatalogPath string
	// Admin account created on start. Skipped when Username is empty.
	AdminUsername string
	AdminEmail    string
	AdminPassword string
	SecureCookies bool
	Logger        *slog.Logger
	// Metrics records served requests (optional)
	Metrics *metrics.Registry
}

// NewBackend creates the emulated backend with all dependencies wired
func NewBackend(ctx context.Context, cfg BackendConfig) (*Backend, error) {
	return newBackendWithDependencies(ctx, clock.New(), random.New(), cfg)
}

func newBackendWithDependencies(ctx context.Context, clk clock.Clock, rnd random.Random, cfg BackendConfig) (*Backend, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	accountService := accounts.New(clk, rnd, cfg.Accounts, logger)
	catalogService := catalog.New(clk, logger)

	if cfg.AdminUsername != "" {
		if _, err := accountService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return nil, err
		}
	}
	if cfg.CatalogPath != "" {
		if err := catalogService.LoadFromFile(ctx, cfg.CatalogPath); err != nil {
			return nil, err
		}
	}

	handler := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		Accounts:      accountService,
		Catalog:       catalogService,
		SecureCookies: cfg.SecureCookies,
		Metrics:       cfg.Metrics,
	})

	return &Backend{
		Clock:    clk,
		Random:   rnd,
		Accounts: accountService,
		Catalog:  catalogService,
		Handler:  handler,
	}, nil
}
