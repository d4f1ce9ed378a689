package hangman

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mcoot/gameportal/internal/dependencies/clock"
	"github.com/mcoot/gameportal/internal/dependencies/random"
	"github.com/mcoot/gameportal/internal/metrics"
	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/services/dictionary"
	"github.com/mcoot/gameportal/internal/storage"
)

// Config holds hangman rules
type Config struct {
	MaxMisses int
}

// DefaultConfig returns the classic six-miss rules
func DefaultConfig() Config {
	return Config{MaxMisses: model.DefaultMaxMisses}
}

// GuessResult describes the outcome of one guess
type GuessResult struct {
	Game   *model.HangmanGame
	Letter rune
	Hit    bool
}

// Service runs hangman games. Each owner has at most one active game.
type Service struct {
	storage    storage.Storage
	dictionary *dictionary.Service
	clock      clock.Clock
	random     random.Random
	cfg        Config
	logger     *slog.Logger
	metrics    *metrics.Registry

	// mu serialises read-modify-write cycles on stored games
	mu sync.Mutex
}

// New creates a new hangman Service
func New(
	storage storage.Storage,
	dictionary *dictionary.Service,
	clock clock.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) *Service {
	if cfg.MaxMisses <= 0 {
		cfg.MaxMisses = DefaultConfig().MaxMisses
	}
	return &Service{
		storage:    storage,
		dictionary: dictionary,
		clock:      clock,
		random:     random,
		cfg:        cfg,
		logger:     logger,
	}
}

// SetMetrics records finished games in m
func (s *Service) SetMetrics(m *metrics.Registry) {
	s.metrics = m
}

// Start begins a new game for the owner, abandoning any game still in progress
func (s *Service) Start(ctx context.Context, owner string) (*model.HangmanGame, error) {
	word, err := s.dictionary.RandomWord(s.random)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.abandonActive(ctx, owner); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	game := &model.HangmanGame{
		ID:        model.HangmanID(s.random.ID()),
		Owner:     owner,
		Word:      word,
		MaxMisses: s.cfg.MaxMisses,
		Status:    model.HangmanInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SaveHangmanGame(ctx, game); err != nil {
		return nil, err
	}
	if err := s.storage.SetActiveHangmanGame(ctx, owner, game.ID); err != nil {
		return nil, err
	}

	s.logger.Info("hangman game started",
		slog.String("game_id", string(game.ID)),
		slog.String("owner", owner),
		slog.Int("length", len([]rune(word))),
	)
	return game, nil
}

// Current returns the owner's active game
func (s *Service) Current(ctx context.Context, owner string) (*model.HangmanGame, error) {
	id, err := s.storage.GetActiveHangmanGame(ctx, owner)
	if err != nil {
		return nil, err
	}
	game, err := s.storage.GetHangmanGame(ctx, id)
	if errors.Is(err, model.ErrHangmanNotFound) {
		// The game expired but the index did not; treat as no game
		_ = s.storage.ClearActiveHangmanGame(ctx, owner)
		return nil, model.ErrNoActiveGame
	}
	return game, err
}

// Get returns a game, checking that it belongs to the owner
func (s *Service) Get(ctx context.Context, id model.HangmanID, owner string) (*model.HangmanGame, error) {
	game, err := s.storage.GetHangmanGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.Owner != owner {
		return nil, model.ErrNotGameOwner
	}
	return game, nil
}

// Guess applies one letter guess to the game
func (s *Service) Guess(ctx context.Context, id model.HangmanID, owner, input string) (*GuessResult, error) {
	letter, err := model.ParseLetter(input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game, err := s.Get(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	// Validate game state
	if game.IsOver() {
		return nil, model.ErrGameOver
	}
	if game.HasGuessed(letter) {
		return nil, model.ErrAlreadyGuessed
	}

	hit := game.Contains(letter)
	game.Guesses = append(game.Guesses, letter)
	if !hit {
		game.Misses++
	}

	switch {
	case game.Solved():
		game.Status = model.HangmanWon
	case game.Misses >= game.MaxMisses:
		game.Status = model.HangmanLost
	}
	game.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveHangmanGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsOver() {
		s.metrics.RecordHangmanFinished(string(game.Status))
		s.logger.Info("hangman game finished",
			slog.String("game_id", string(game.ID)),
			slog.String("status", string(game.Status)),
			slog.Int("misses", game.Misses),
		)
	}

	return &GuessResult{Game: game, Letter: letter, Hit: hit}, nil
}

// Abandon gives up the game and clears it as the owner's active game
func (s *Service) Abandon(ctx context.Context, id model.HangmanID, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, err := s.Get(ctx, id, owner)
	if err != nil {
		return err
	}
	if err := s.finishAbandoned(ctx, game); err != nil {
		return err
	}
	return s.storage.ClearActiveHangmanGame(ctx, owner)
}

// abandonActive marks the owner's in-progress game as abandoned, if any
func (s *Service) abandonActive(ctx context.Context, owner string) error {
	id, err := s.storage.GetActiveHangmanGame(ctx, owner)
	if errors.Is(err, model.ErrNoActiveGame) {
		return nil
	}
	if err != nil {
		return err
	}

	game, err := s.storage.GetHangmanGame(ctx, id)
	if errors.Is(err, model.ErrHangmanNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.finishAbandoned(ctx, game)
}

func (s *Service) finishAbandoned(ctx context.Context, game *model.HangmanGame) error {
	if game.IsOver() {
		return nil
	}
	game.Status = model.HangmanAbandoned
	game.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveHangmanGame(ctx, game); err != nil {
		return err
	}
	s.metrics.RecordHangmanFinished(string(game.Status))
	return nil
}
