package hangman

import (
	"context"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gameportal/internal/dependencies/mocks"
	"github.com/mcoot/gameportal/internal/metrics"
	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/services/dictionary"
	"github.com/mcoot/gameportal/internal/storage/memory"
	"github.com/mcoot/gameportal/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	metrics *metrics.Registry
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()

	dict := dictionary.New(s.storage, logger)
	// sorted: DOOM, HADES, NIÑO
	s.Require().NoError(dict.LoadWords([]string{"doom", "hades", "niño"}))

	s.service = New(s.storage, dict, s.clock, s.random, DefaultConfig(), logger)
	s.metrics = metrics.New()
	s.service.SetMetrics(s.metrics)
	s.ctx = context.Background()
}

// startWith starts a game whose secret word is the dictionary entry at index i
func (s *ServiceSuite) startWith(i int) *model.HangmanGame {
	s.random.QueueIntn(i)
	game, err := s.service.Start(s.ctx, "7")
	s.Require().NoError(err)
	return game
}

// Start tests

func (s *ServiceSuite) TestStartCreatesGame() {
	s.random.QueueID("game-1")
	game := s.startWith(0)

	s.Equal(model.HangmanID("game-1"), game.ID)
	s.Equal("DOOM", game.Word)
	s.Equal("7", game.Owner)
	s.Equal(model.HangmanInProgress, game.Status)
	s.Equal(model.DefaultMaxMisses, game.MaxMisses)
	s.Equal(s.clock.Now(), game.CreatedAt)
}

func (s *ServiceSuite) TestStartSetsActiveGame() {
	game := s.startWith(1)

	current, err := s.service.Current(s.ctx, "7")
	s.Require().NoError(err)
	s.Equal(game.ID, current.ID)
}

func (s *ServiceSuite) TestStartAbandonsPreviousGame() {
	first := s.startWith(0)
	second := s.startWith(1)
	s.NotEqual(first.ID, second.ID)

	old, err := s.storage.GetHangmanGame(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Equal(model.HangmanAbandoned, old.Status)

	current, err := s.service.Current(s.ctx, "7")
	s.Require().NoError(err)
	s.Equal(second.ID, current.ID)
}

func (s *ServiceSuite) TestStartFailsWithoutDictionary() {
	empty := New(s.storage, dictionary.New(s.storage, testutil.NopLogger()), s.clock, s.random, DefaultConfig(), testutil.NopLogger())
	_, err := empty.Start(s.ctx, "7")
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *ServiceSuite) TestCurrentWithoutGame() {
	_, err := s.service.Current(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrNoActiveGame)
}

// Guess tests

func (s *ServiceSuite) TestGuessHit() {
	game := s.startWith(0) // DOOM

	result, err := s.service.Guess(s.ctx, game.ID, "7", "o")
	s.Require().NoError(err)
	s.True(result.Hit)
	s.Equal('O', result.Letter)
	s.Equal("_ O O _", result.Game.Masked())
	s.Equal(0, result.Game.Misses)
}

func (s *ServiceSuite) TestGuessMiss() {
	game := s.startWith(0)

	result, err := s.service.Guess(s.ctx, game.ID, "7", "x")
	s.Require().NoError(err)
	s.False(result.Hit)
	s.Equal(1, result.Game.Misses)
	s.Equal(model.DefaultMaxMisses-1, result.Game.RemainingMisses())
}

func (s *ServiceSuite) TestGuessFoldsAccents() {
	game := s.startWith(1) // HADES

	result, err := s.service.Guess(s.ctx, game.ID, "7", "é")
	s.Require().NoError(err)
	s.True(result.Hit)
}

func (s *ServiceSuite) TestGuessEnyeIsDistinctFromN() {
	game := s.startWith(2) // NIÑO

	result, err := s.service.Guess(s.ctx, game.ID, "7", "ñ")
	s.Require().NoError(err)
	s.True(result.Hit)
	s.Equal("_ _ Ñ _", result.Game.Masked())
}

func (s *ServiceSuite) TestGuessWins() {
	game := s.startWith(0)

	for _, l := range []string{"d", "o"} {
		_, err := s.service.Guess(s.ctx, game.ID, "7", l)
		s.Require().NoError(err)
	}
	result, err := s.service.Guess(s.ctx, game.ID, "7", "m")
	s.Require().NoError(err)
	s.Equal(model.HangmanWon, result.Game.Status)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.HangmanFinished.WithLabelValues("won")))
}

func (s *ServiceSuite) TestGuessLoses() {
	game := s.startWith(0)

	var result *GuessResult
	var err error
	for _, l := range []string{"a", "b", "c", "e", "f", "g"} {
		result, err = s.service.Guess(s.ctx, game.ID, "7", l)
		s.Require().NoError(err)
	}
	s.Equal(model.HangmanLost, result.Game.Status)
	s.Equal("D O O M", result.Game.Masked())
	s.Equal(1.0, promtest.ToFloat64(s.metrics.HangmanFinished.WithLabelValues("lost")))

	_, err = s.service.Guess(s.ctx, game.ID, "7", "d")
	s.ErrorIs(err, model.ErrGameOver)
}

func (s *ServiceSuite) TestGuessRepeatedLetter() {
	game := s.startWith(0)

	_, err := s.service.Guess(s.ctx, game.ID, "7", "x")
	s.Require().NoError(err)

	_, err = s.service.Guess(s.ctx, game.ID, "7", "X")
	s.ErrorIs(err, model.ErrAlreadyGuessed)

	stored, _ := s.storage.GetHangmanGame(s.ctx, game.ID)
	s.Equal(1, stored.Misses, "repeated guess must not count as a miss")
}

func (s *ServiceSuite) TestGuessInvalidLetter() {
	game := s.startWith(0)

	_, err := s.service.Guess(s.ctx, game.ID, "7", "42")
	s.ErrorIs(err, model.ErrInvalidLetter)
}

func (s *ServiceSuite) TestGuessOtherOwner() {
	game := s.startWith(0)

	_, err := s.service.Guess(s.ctx, game.ID, "8", "d")
	s.ErrorIs(err, model.ErrNotGameOwner)
}

func (s *ServiceSuite) TestGuessUnknownGame() {
	_, err := s.service.Guess(s.ctx, "missing", "7", "d")
	s.ErrorIs(err, model.ErrHangmanNotFound)
}

func (s *ServiceSuite) TestGuessUpdatesTimestamp() {
	game := s.startWith(0)
	s.clock.Advance(time.Minute)

	result, err := s.service.Guess(s.ctx, game.ID, "7", "d")
	s.Require().NoError(err)
	s.Equal(game.CreatedAt.Add(time.Minute), result.Game.UpdatedAt)
}

// Abandon tests

func (s *ServiceSuite) TestAbandon() {
	game := s.startWith(0)

	err := s.service.Abandon(s.ctx, game.ID, "7")
	s.Require().NoError(err)

	stored, _ := s.storage.GetHangmanGame(s.ctx, game.ID)
	s.Equal(model.HangmanAbandoned, stored.Status)

	_, err = s.service.Current(s.ctx, "7")
	s.ErrorIs(err, model.ErrNoActiveGame)
}

func (s *ServiceSuite) TestAbandonOtherOwner() {
	game := s.startWith(0)

	err := s.service.Abandon(s.ctx, game.ID, "8")
	s.ErrorIs(err, model.ErrNotGameOwner)
}

func (s *ServiceSuite) TestCurrentClearsDanglingIndex() {
	game := s.startWith(0)
	_ = s.storage.DeleteHangmanGame(s.ctx, game.ID)

	_, err := s.service.Current(s.ctx, "7")
	s.ErrorIs(err, model.ErrNoActiveGame)

	_, err = s.storage.GetActiveHangmanGame(s.ctx, "7")
	s.ErrorIs(err, model.ErrNoActiveGame)
}
