package factory

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/gameportal/internal/dependencies/mocks"
	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/portal"
	"github.com/mcoot/gameportal/internal/services/accounts"
	"github.com/mcoot/gameportal/internal/services/hangman"
	"github.com/mcoot/gameportal/internal/storage/memory"
	"github.com/mcoot/gameportal/internal/testutil"
)

// Credentials of the admin account every test backend starts with
const (
	TestAdminUsername = "admin"
	TestAdminPassword = "admin123"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies,
// talking to the backend at backendURL
func NewTestApp(backendURL string) (*TestApp, error) {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	portalCfg := portal.DefaultConfig()
	portalCfg.BaseURL = backendURL
	portalCfg.Timeout = 5 * time.Second

	app, err := newWithDependencies(store, mockClock, mockRandom, portalCfg, hangman.DefaultConfig(), testutil.NopLogger())
	if err != nil {
		return nil, err
	}

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}, nil
}

// TestWords is the dictionary loaded by LoadTestDictionary, in sorted order
var TestWords = []string{"DOOM", "HADES", "MINECRAFT", "NIÑO", "TETRIS"}

// LoadTestDictionary loads a small dictionary for testing. Queue an index on
// MockRandom to choose which of TestWords the next game uses.
func (t *TestApp) LoadTestDictionary() error {
	return t.DictionaryService.LoadWords([]string{"tetris", "doom", "niño", "hades", "minecraft"})
}

// TestBackend extends Backend with test-specific helpers
type TestBackend struct {
	*Backend

	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestBackend creates an emulated backend with mocked dependencies, a
// cheap password hash, the admin account and a three-game catalog
func NewTestBackend(ctx context.Context) (*TestBackend, error) {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	backend, err := newBackendWithDependencies(ctx, mockClock, mockRandom, BackendConfig{
		Accounts: accounts.Config{
			SessionDuration: 24 * time.Hour,
			BcryptCost:      bcrypt.MinCost,
		},
		AdminUsername: TestAdminUsername,
		AdminEmail:    "admin@portal.com",
		AdminPassword: TestAdminPassword,
		Logger:        testutil.NopLogger(),
	})
	if err != nil {
		return nil, err
	}

	if err := backend.Catalog.Seed(ctx, []model.VideoGameFields{
		testGame("Tetris", "Puzzle", "Web", 1984),
		testGame("DOOM", "Shooter", "PC", 1993),
		testGame("Hades", "Roguelike", "PC/Consola", 2020),
	}); err != nil {
		return nil, err
	}

	return &TestBackend{
		Backend:    backend,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}, nil
}

func testGame(name, genre, platform string, year int) model.VideoGameFields {
	return model.VideoGameFields{
		Name:     &name,
		Genre:    &genre,
		Platform: &platform,
		Year:     &year,
	}
}
