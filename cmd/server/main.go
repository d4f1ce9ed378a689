package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mcoot/gameportal/internal/config"
	"github.com/mcoot/gameportal/internal/factory"
	"github.com/mcoot/gameportal/internal/httpserver"
	"github.com/mcoot/gameportal/internal/portal"
	redisstorage "github.com/mcoot/gameportal/internal/storage/redis"
	"github.com/mcoot/gameportal/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := config.NewLogger(os.Stdout, cfg.Logging)
	slog.SetDefault(logger)

	portalCfg := portal.DefaultConfig()
	portalCfg.BaseURL = cfg.Backend.URL
	portalCfg.Timeout = cfg.Backend.Timeout

	factoryCfg := factory.Config{
		Portal:      portalCfg,
		Logger:      logger,
		StorageType: cfg.Storage.Type,
	}
	if cfg.Storage.Type == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Storage.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Hangman is unavailable without words, but the catalog still works.
	// With shared storage another instance may already have saved the list.
	if err := app.DictionaryService.LoadFromFile(context.Background(), cfg.Hangman.DictionaryPath); err != nil {
		if storeErr := app.DictionaryService.LoadFromStorage(context.Background()); storeErr != nil {
			logger.Warn("could not load dictionary",
				slog.String("path", cfg.Hangman.DictionaryPath),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("dictionary loaded from storage", slog.Int("words", app.DictionaryService.WordCount()))
		}
	}

	router := web.NewRouter(web.RouterConfig{
		Logger:        logger,
		Client:        app.Client,
		Guard:         app.Guard,
		Hangman:       app.HangmanService,
		Metrics:       app.Metrics,
		StaticDir:     findStaticDir(),
		SecureCookies: cfg.HTTP.SecureCookies,
	})

	serverConfig := httpserver.DefaultConfig()
	serverConfig.Host = cfg.HTTP.Host
	serverConfig.Port = cfg.HTTP.Port
	server := httpserver.New(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("portal started",
		slog.String("addr", server.Addr()),
		slog.String("backend", portalCfg.BaseURL),
		slog.String("storage", cfg.Storage.Type),
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

	if closer, ok := app.Storage.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}
	logger.Info("portal stopped")
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	candidates := []string{
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	return "internal/web/static"
}
