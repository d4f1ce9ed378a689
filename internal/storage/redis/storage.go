package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Hangman operations

func (s *Storage) SaveHangmanGame(ctx context.Context, game *model.HangmanGame) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, hangmanKey(game.ID), data, s.cfg.HangmanTTL).Err()
}

func (s *Storage) GetHangmanGame(ctx context.Context, id model.HangmanID) (*model.HangmanGame, error) {
	data, err := s.client.Get(ctx, hangmanKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrHangmanNotFound
		}
		return nil, err
	}

	var game model.HangmanGame
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteHangmanGame(ctx context.Context, id model.HangmanID) error {
	return s.client.Del(ctx, hangmanKey(id)).Err()
}

// Active game index

func (s *Storage) SetActiveHangmanGame(ctx context.Context, owner string, id model.HangmanID) error {
	return s.client.Set(ctx, activeHangmanKey(owner), string(id), s.cfg.HangmanTTL).Err()
}

func (s *Storage) GetActiveHangmanGame(ctx context.Context, owner string) (model.HangmanID, error) {
	id, err := s.client.Get(ctx, activeHangmanKey(owner)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrNoActiveGame
		}
		return "", err
	}
	return model.HangmanID(id), nil
}

func (s *Storage) ClearActiveHangmanGame(ctx context.Context, owner string) error {
	return s.client.Del(ctx, activeHangmanKey(owner)).Err()
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	key := dictionaryKey()

	// Check if dictionary exists
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrDictionaryNotLoaded
	}

	return s.client.SMembers(ctx, key).Result()
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	key := dictionaryKey()

	// Delete existing dictionary and add new words atomically
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)

	if len(words) > 0 {
		members := make([]any, len(words))
		for i, w := range words {
			members[i] = w
		}
		pipe.SAdd(ctx, key, members...)
	}

	_, err := pipe.Exec(ctx)
	return err
}
