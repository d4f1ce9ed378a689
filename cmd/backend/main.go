// Command backend serves an in-memory stand-in for the game backend API, so
// the portal can be developed and demoed without the real service.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcoot/gameportal/internal/config"
	"github.com/mcoot/gameportal/internal/factory"
	"github.com/mcoot/gameportal/internal/httpserver"
	"github.com/mcoot/gameportal/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := config.NewLogger(os.Stdout, cfg.Logging)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := factory.NewBackend(ctx, factory.BackendConfig{
		CatalogPath:   cfg.Emulator.CatalogPath,
		AdminUsername: cfg.Emulator.AdminUsername,
		AdminEmail:    cfg.Emulator.AdminEmail,
		AdminPassword: cfg.Emulator.AdminPassword,
		SecureCookies: cfg.Emulator.SecureCookies,
		Logger:        logger,
		Metrics:       metrics.New(),
	})
	if err != nil {
		logger.Error("failed to create backend", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serverConfig := httpserver.DefaultConfig()
	serverConfig.Host = cfg.Emulator.Host
	serverConfig.Port = cfg.Emulator.Port
	server := httpserver.New(backend.Handler, serverConfig, logger)

	go sweepSessions(ctx, backend, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("backend started",
		slog.String("addr", server.Addr()),
		slog.Int("games", backend.Catalog.Len()),
	)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("backend stopped")
}

const sessionSweepInterval = 10 * time.Minute

// sweepSessions drops expired sessions until ctx is done
func sweepSessions(ctx context.Context, backend *factory.Backend, logger *slog.Logger) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := backend.Accounts.CleanExpiredSessions(); n > 0 {
				logger.Debug("expired sessions removed", slog.Int("count", n))
			}
		}
	}
}
