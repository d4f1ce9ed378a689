package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/mcoot/gameportal/internal/dependencies/clock"
	"github.com/mcoot/gameportal/internal/model"
)

// Service is an in-memory game catalog
type Service struct {
	clock  clock.Clock
	logger *slog.Logger

	mu     sync.RWMutex
	nextID model.VideoGameID
	games  map[model.VideoGameID]*model.VideoGame
}

// New creates an empty catalog
func New(clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		clock:  clock,
		logger: logger,
		nextID: 1,
		games:  make(map[model.VideoGameID]*model.VideoGame),
	}
}

// List returns every game ordered by id
func (s *Service) List(_ context.Context) []model.VideoGame {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.VideoGame, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns a single game
func (s *Service) Get(_ context.Context, id model.VideoGameID) (*model.VideoGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return nil, model.ErrVideoGameNotFound
	}
	out := *g
	return &out, nil
}

// Create adds a game and returns its id
func (s *Service) Create(ctx context.Context, fields model.VideoGameFields) (model.VideoGameID, error) {
	if !fields.Complete() {
		return 0, model.ErrMissingFields
	}

	now := s.clock.Now()
	s.mu.Lock()
	g := &model.VideoGame{ID: s.nextID, CreatedAt: now}
	s.nextID++
	apply(g, fields, now)
	s.games[g.ID] = g
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "catalog game created",
		slog.Int64("game_id", int64(g.ID)),
		slog.String("name", g.Name),
	)
	return g.ID, nil
}

// Update replaces the fields of an existing game. Optional fields left out
// are reset, as on create.
func (s *Service) Update(ctx context.Context, id model.VideoGameID, fields model.VideoGameFields) error {
	if !fields.Complete() {
		return model.ErrMissingFields
	}

	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[id]
	if !ok {
		return model.ErrVideoGameNotFound
	}
	apply(g, fields, now)

	s.logger.DebugContext(ctx, "catalog game updated", slog.Int64("game_id", int64(id)))
	return nil
}

// Delete removes a game
func (s *Service) Delete(ctx context.Context, id model.VideoGameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[id]; !ok {
		return model.ErrVideoGameNotFound
	}
	delete(s.games, id)

	s.logger.DebugContext(ctx, "catalog game deleted", slog.Int64("game_id", int64(id)))
	return nil
}

// Len returns the number of games in the catalog
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

func apply(g *model.VideoGame, f model.VideoGameFields, now time.Time) {
	g.Name = *f.Name
	g.Genre = *f.Genre
	g.Platform = *f.Platform
	g.Year = *f.Year

	desc := model.DefaultDescription
	if f.Description != nil {
		desc = *f.Description
	}
	g.Description = &desc
	g.ImagePath = f.ImagePath
	g.WikipediaURL = f.WikipediaURL
	g.UpdatedAt = now
}

// Seed adds each entry in order. Entries missing mandatory fields are rejected.
func (s *Service) Seed(ctx context.Context, entries []model.VideoGameFields) error {
	for i, f := range entries {
		if _, err := s.Create(ctx, f); err != nil {
			return fmt.Errorf("seed entry %d: %w", i, err)
		}
	}
	return nil
}

// LoadFromFile seeds the catalog from a JSON array of games
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}

	var entries []model.VideoGameFields
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse catalog file: %w", err)
	}

	if err := s.Seed(ctx, entries); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "catalog loaded",
		slog.String("path", path),
		slog.Int("games", len(entries)),
	)
	return nil
}
