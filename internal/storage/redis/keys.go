package redis

import (
	"fmt"

	"github.com/mcoot/gameportal/internal/model"
)

// Key prefix for all portal data
const keyPrefix = "gameportal"

// hangmanKey returns the Redis key for a HangmanGame
func hangmanKey(id model.HangmanID) string {
	return fmt.Sprintf("%s:hangman:%s", keyPrefix, id)
}

// activeHangmanKey returns the Redis key for the owner -> active game index
func activeHangmanKey(owner string) string {
	return fmt.Sprintf("%s:idx:active_hangman:%s", keyPrefix, owner)
}

// dictionaryKey returns the Redis key for the dictionary word list
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}
