package model

import (
	"strconv"
	"strings"
	"time"
)

// HangmanID uniquely identifies a hangman game
type HangmanID string

// HangmanStatus represents the lifecycle of a hangman game
type HangmanStatus string

const (
	HangmanInProgress HangmanStatus = "in_progress"
	HangmanWon        HangmanStatus = "won"
	HangmanLost       HangmanStatus = "lost"
	HangmanAbandoned  HangmanStatus = "abandoned"
)

// OwnerFromUserID keys hangman games by the backend's numeric user id
func OwnerFromUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// DefaultMaxMisses is the number of wrong guesses that loses a game
const DefaultMaxMisses = 6

// HangmanGame is a single word-guessing round owned by one backend user
type HangmanGame struct {
	ID        HangmanID     `json:"id"`
	Owner     string        `json:"owner"`
	Word      string        `json:"word"` // upper case, accents already folded
	Guesses   []rune        `json:"guesses"`
	Misses    int           `json:"misses"`
	MaxMisses int           `json:"max_misses"`
	Status    HangmanStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// HasGuessed reports whether the letter was already tried
func (g *HangmanGame) HasGuessed(letter rune) bool {
	for _, r := range g.Guesses {
		if r == letter {
			return true
		}
	}
	return false
}

// Contains reports whether the secret word contains the letter
func (g *HangmanGame) Contains(letter rune) bool {
	return strings.ContainsRune(g.Word, letter)
}

// Masked returns the word with unguessed letters replaced by underscores
func (g *HangmanGame) Masked() string {
	var b strings.Builder
	for i, r := range []rune(g.Word) {
		if i > 0 {
			b.WriteByte(' ')
		}
		if g.HasGuessed(r) || g.IsOver() {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Solved reports whether every letter of the word has been guessed
func (g *HangmanGame) Solved() bool {
	for _, r := range g.Word {
		if !g.HasGuessed(r) {
			return false
		}
	}
	return true
}

// RemainingMisses is how many more wrong guesses are allowed
func (g *HangmanGame) RemainingMisses() int {
	remaining := g.MaxMisses - g.Misses
	if remaining < 0 {
		return 0
	}
	return remaining
}

// WrongGuesses returns the guessed letters that are not in the word, in guess order
func (g *HangmanGame) WrongGuesses() []rune {
	var wrong []rune
	for _, r := range g.Guesses {
		if !g.Contains(r) {
			wrong = append(wrong, r)
		}
	}
	return wrong
}

// IsOver reports whether the game has reached a terminal status
func (g *HangmanGame) IsOver() bool {
	return g.Status != HangmanInProgress
}
