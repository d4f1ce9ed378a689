package storage

import (
	"context"

	"github.com/mcoot/gameportal/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Hangman operations
	SaveHangmanGame(ctx context.Context, game *model.HangmanGame) error
	GetHangmanGame(ctx context.Context, id model.HangmanID) (*model.HangmanGame, error)
	DeleteHangmanGame(ctx context.Context, id model.HangmanID) error

	// Active game index (one current game per owner)
	SetActiveHangmanGame(ctx context.Context, owner string, id model.HangmanID) error
	GetActiveHangmanGame(ctx context.Context, owner string) (model.HangmanID, error)
	ClearActiveHangmanGame(ctx context.Context, owner string) error

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}
