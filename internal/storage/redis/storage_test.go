package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gameportal/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.HangmanTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Hangman tests

func (s *StorageSuite) TestSaveAndGetHangmanGame() {
	game := &model.HangmanGame{
		ID:        "game-1",
		Owner:     "7",
		Word:      "NIÑO",
		Guesses:   []rune{'Ñ', 'X'},
		Misses:    1,
		MaxMisses: model.DefaultMaxMisses,
		Status:    model.HangmanInProgress,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	err := s.storage.SaveHangmanGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetHangmanGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.Word, retrieved.Word)
	s.Equal(game.Guesses, retrieved.Guesses)
	s.Equal(game.Misses, retrieved.Misses)
	s.Equal(game.Status, retrieved.Status)
	s.True(game.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGetHangmanGameNotFound() {
	_, err := s.storage.GetHangmanGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrHangmanNotFound)
}

func (s *StorageSuite) TestDeleteHangmanGame() {
	_ = s.storage.SaveHangmanGame(s.ctx, &model.HangmanGame{ID: "game-1"})

	err := s.storage.DeleteHangmanGame(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetHangmanGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrHangmanNotFound)
}

func (s *StorageSuite) TestHangmanGameTTL() {
	_ = s.storage.SaveHangmanGame(s.ctx, &model.HangmanGame{ID: "game-1"})

	ttl := s.mini.TTL(hangmanKey("game-1"))
	s.True(ttl > 0, "Hangman game should have TTL")
}

func (s *StorageSuite) TestHangmanGameExpires() {
	_ = s.storage.SaveHangmanGame(s.ctx, &model.HangmanGame{ID: "game-1"})

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetHangmanGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrHangmanNotFound)
}

// Active game index tests

func (s *StorageSuite) TestActiveGameIndex() {
	_, err := s.storage.GetActiveHangmanGame(s.ctx, "7")
	s.ErrorIs(err, model.ErrNoActiveGame)

	s.Require().NoError(s.storage.SetActiveHangmanGame(s.ctx, "7", "game-1"))

	id, err := s.storage.GetActiveHangmanGame(s.ctx, "7")
	s.Require().NoError(err)
	s.Equal(model.HangmanID("game-1"), id)
	s.True(s.mini.TTL(activeHangmanKey("7")) > 0, "index should share the game TTL")

	s.Require().NoError(s.storage.ClearActiveHangmanGame(s.ctx, "7"))
	_, err = s.storage.GetActiveHangmanGame(s.ctx, "7")
	s.ErrorIs(err, model.ErrNoActiveGame)
}

// Dictionary tests

func (s *StorageSuite) TestDictionaryNotLoaded() {
	_, err := s.storage.GetDictionaryWords(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *StorageSuite) TestSaveAndGetDictionaryWords() {
	words := []string{"ZELDA", "HADES", "DOOM"}
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, words))

	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch(words, retrieved)
}

func (s *StorageSuite) TestSaveDictionaryWordsReplacesPrevious() {
	_ = s.storage.SaveDictionaryWords(s.ctx, []string{"TETRIS"})
	_ = s.storage.SaveDictionaryWords(s.ctx, []string{"SNAKE"})

	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"SNAKE"}, retrieved)
}
