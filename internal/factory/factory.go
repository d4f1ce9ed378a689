package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/gameportal/internal/dependencies/clock"
	"github.com/mcoot/gameportal/internal/dependencies/random"
	"github.com/mcoot/gameportal/internal/guard"
	"github.com/mcoot/gameportal/internal/metrics"
	"github.com/mcoot/gameportal/internal/portal"
	"github.com/mcoot/gameportal/internal/services/dictionary"
	"github.com/mcoot/gameportal/internal/services/hangman"
	"github.com/mcoot/gameportal/internal/storage"
	"github.com/mcoot/gameportal/internal/storage/memory"
	redisstorage "github.com/mcoot/gameportal/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired portal components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Observability
	Metrics *metrics.Registry

	// Backend access
	Client *portal.Client
	Guard  *guard.Guard

	// Services
	DictionaryService *dictionary.Service
	HangmanService    *hangman.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Portal configures the backend API client.
	// If zero value, defaults to portal.DefaultConfig()
	Portal portal.Config
	// Hangman holds hangman rules (optional)
	Hangman hangman.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	portalCfg := cfg.Portal
	if portalCfg.BaseURL == "" {
		portalCfg = portal.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), portalCfg, cfg.Hangman, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	portalCfg portal.Config,
	hangmanCfg hangman.Config,
	logger *slog.Logger,
) (*App, error) {
	reg := metrics.New()

	client, err := portal.New(portalCfg,
		portal.WithLogger(logger),
		portal.WithMetrics(reg),
	)
	if err != nil {
		return nil, err
	}

	g := guard.New(guard.DefaultTable(), client,
		guard.WithLogger(logger),
		guard.WithMetrics(reg),
	)

	dictService := dictionary.New(store, logger)
	hangmanService := hangman.New(store, dictService, clk, rnd, hangmanCfg, logger)
	hangmanService.SetMetrics(reg)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		Metrics:           reg,
		Client:            client,
		Guard:             g,
		DictionaryService: dictService,
		HangmanService:    hangmanService,
	}, nil
}
