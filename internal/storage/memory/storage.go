package memory

import (
	"context"
	"sync"

	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	games           map[model.HangmanID]*model.HangmanGame
	activeGames     map[string]model.HangmanID
	dictionaryWords []string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:       make(map[model.HangmanID]*model.HangmanGame),
		activeGames: make(map[string]model.HangmanID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Hangman operations

func (s *Storage) SaveHangmanGame(ctx context.Context, game *model.HangmanGame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = cloneGame(game)
	return nil
}

func (s *Storage) GetHangmanGame(ctx context.Context, id model.HangmanID) (*model.HangmanGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrHangmanNotFound
	}
	return cloneGame(game), nil
}

func (s *Storage) DeleteHangmanGame(ctx context.Context, id model.HangmanID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

// Active game index

func (s *Storage) SetActiveHangmanGame(ctx context.Context, owner string, id model.HangmanID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeGames[owner] = id
	return nil
}

func (s *Storage) GetActiveHangmanGame(ctx context.Context, owner string) (model.HangmanID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.activeGames[owner]
	if !ok {
		return "", model.ErrNoActiveGame
	}
	return id, nil
}

func (s *Storage) ClearActiveHangmanGame(ctx context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.activeGames, owner)
	return nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dictionaryWords == nil {
		return nil, model.ErrDictionaryNotLoaded
	}
	words := make([]string, len(s.dictionaryWords))
	copy(words, s.dictionaryWords)
	return words, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dictionaryWords = make([]string, len(words))
	copy(s.dictionaryWords, words)
	return nil
}

// cloneGame copies a game so callers cannot mutate stored state in place
func cloneGame(g *model.HangmanGame) *model.HangmanGame {
	c := *g
	c.Guesses = append([]rune(nil), g.Guesses...)
	return &c
}
