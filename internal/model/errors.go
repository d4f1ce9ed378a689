package model

import "errors"

// Common errors used across the application
var (
	// Hangman errors
	ErrHangmanNotFound = errors.New("hangman game not found")
	ErrNotGameOwner    = errors.New("game belongs to another user")
	ErrInvalidLetter   = errors.New("invalid letter")
	ErrAlreadyGuessed  = errors.New("letter already guessed")
	ErrGameOver        = errors.New("game is already over")
	ErrNoActiveGame    = errors.New("no active game")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
	ErrDictionaryEmpty     = errors.New("dictionary has no usable words")

	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrNotAdmin           = errors.New("admin privileges required")

	// Catalog errors
	ErrVideoGameNotFound = errors.New("video game not found")
	ErrMissingFields     = errors.New("missing required fields")
)
