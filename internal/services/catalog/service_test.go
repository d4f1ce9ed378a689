package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gameportal/internal/dependencies/mocks"
	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func ptr[T any](v T) *T {
	return &v
}

func fields(name string, year int) model.VideoGameFields {
	return model.VideoGameFields{
		Name:     ptr(name),
		Genre:    ptr("Puzzle"),
		Platform: ptr("Web"),
		Year:     ptr(year),
	}
}

func (s *ServiceSuite) TestCreateAssignsIDsAndDefaults() {
	id, err := s.service.Create(s.ctx, fields("Tetris", 1984))
	s.Require().NoError(err)
	s.Equal(model.VideoGameID(1), id)

	g, err := s.service.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("Tetris", g.Name)
	s.Require().NotNil(g.Description)
	s.Equal(model.DefaultDescription, *g.Description)
	s.Nil(g.ImagePath)
	s.Nil(g.WikipediaURL)
}

func (s *ServiceSuite) TestCreateRequiresMandatoryFields() {
	f := fields("Tetris", 1984)
	f.Year = nil

	_, err := s.service.Create(s.ctx, f)
	s.ErrorIs(err, model.ErrMissingFields)
	s.Equal(0, s.service.Len())
}

func (s *ServiceSuite) TestListIsOrderedByID() {
	for _, name := range []string{"C", "A", "B"} {
		_, err := s.service.Create(s.ctx, fields(name, 2000))
		s.Require().NoError(err)
	}

	games := s.service.List(s.ctx)
	s.Require().Len(games, 3)
	s.Equal([]string{"C", "A", "B"}, []string{games[0].Name, games[1].Name, games[2].Name})
}

func (s *ServiceSuite) TestListEmpty() {
	games := s.service.List(s.ctx)
	s.NotNil(games)
	s.Empty(games)
}

func (s *ServiceSuite) TestUpdateReplacesFields() {
	id, _ := s.service.Create(s.ctx, fields("Tetris", 1984))
	s.clock.Advance(time.Hour)

	f := fields("Tetris 99", 2019)
	f.WikipediaURL = ptr("https://es.wikipedia.org/wiki/Tetris_99")
	s.Require().NoError(s.service.Update(s.ctx, id, f))

	g, _ := s.service.Get(s.ctx, id)
	s.Equal("Tetris 99", g.Name)
	s.Equal(2019, g.Year)
	s.Equal("https://es.wikipedia.org/wiki/Tetris_99", *g.WikipediaURL)
	s.True(g.UpdatedAt.After(g.CreatedAt))
}

func (s *ServiceSuite) TestUpdateUnknownGame() {
	err := s.service.Update(s.ctx, 42, fields("Chess", 1500))
	s.ErrorIs(err, model.ErrVideoGameNotFound)
}

func (s *ServiceSuite) TestUpdatePartialPayloadRejected() {
	id, _ := s.service.Create(s.ctx, fields("Tetris", 1984))

	err := s.service.Update(s.ctx, id, model.VideoGameFields{Name: ptr("Chess")})
	s.ErrorIs(err, model.ErrMissingFields)
}

func (s *ServiceSuite) TestDelete() {
	id, _ := s.service.Create(s.ctx, fields("Tetris", 1984))

	s.Require().NoError(s.service.Delete(s.ctx, id))
	s.ErrorIs(s.service.Delete(s.ctx, id), model.ErrVideoGameNotFound)

	_, err := s.service.Get(s.ctx, id)
	s.ErrorIs(err, model.ErrVideoGameNotFound)
}

func (s *ServiceSuite) TestIDsAreNotReused() {
	id, _ := s.service.Create(s.ctx, fields("Tetris", 1984))
	_ = s.service.Delete(s.ctx, id)

	next, _ := s.service.Create(s.ctx, fields("Snake", 1997))
	s.Equal(id+1, next)
}

func (s *ServiceSuite) TestLoadFromFile() {
	s.Require().NoError(s.service.LoadFromFile(s.ctx, "../../../data/catalog.json"))

	games := s.service.List(s.ctx)
	s.Require().Len(games, 13)
	s.Equal("Hangman", games[0].Name)
	s.Equal("Pac-Man", games[12].Name)
}

func (s *ServiceSuite) TestLoadFromFileRejectsIncompleteEntries() {
	path := filepath.Join(s.T().TempDir(), "catalog.json")
	s.Require().NoError(os.WriteFile(path, []byte(`[{"nombre":"Chess"}]`), 0o600))

	err := s.service.LoadFromFile(s.ctx, path)
	s.ErrorIs(err, model.ErrMissingFields)
}

func (s *ServiceSuite) TestLoadFromFileMissing() {
	err := s.service.LoadFromFile(s.ctx, filepath.Join(s.T().TempDir(), "nope.json"))
	s.Error(err)
}
