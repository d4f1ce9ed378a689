package model

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// FoldLetter upper-cases a letter and strips its diacritics so that Á and A
// match. Ñ is a letter of its own in Spanish and is kept.
func FoldLetter(r rune) rune {
	r = unicode.ToUpper(r)
	if r == 'Ñ' {
		return r
	}
	base, _ := utf8.DecodeRuneInString(norm.NFD.String(string(r)))
	if base == utf8.RuneError {
		return r
	}
	return base
}

// ParseLetter parses a single guessed letter from user input
func ParseLetter(input string) (rune, error) {
	runes := []rune(strings.TrimSpace(input))
	if len(runes) != 1 {
		return 0, ErrInvalidLetter
	}
	r := FoldLetter(runes[0])
	if !isGuessable(r) {
		return 0, ErrInvalidLetter
	}
	return r, nil
}

// NormalizeWord folds every letter of a dictionary word. It returns false if
// the word contains anything other than guessable letters.
func NormalizeWord(word string) (string, bool) {
	word = strings.TrimSpace(word)
	if word == "" {
		return "", false
	}
	var b strings.Builder
	for _, r := range word {
		f := FoldLetter(r)
		if !isGuessable(f) {
			return "", false
		}
		b.WriteRune(f)
	}
	return b.String(), true
}

func isGuessable(r rune) bool {
	return (r >= 'A' && r <= 'Z') || r == 'Ñ'
}
