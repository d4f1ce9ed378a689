package dictionary

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/mcoot/gameportal/internal/dependencies/random"
	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/storage"
)

// MinWordLength is the shortest word offered as a hangman secret
const MinWordLength = 4

// Service holds the word list that hangman secrets are drawn from
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu     sync.RWMutex
	words  []string
	loaded bool
}

// New creates a new DictionaryService
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// LoadFromStorage loads dictionary words from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadFromFile loads dictionary words from a file (one word per line).
// Blank lines and lines starting with # are skipped.
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := s.loadWords(words); err != nil {
		return err
	}

	// Save the normalized list so other instances can load from storage
	return s.storage.SaveDictionaryWords(ctx, s.snapshot())
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	return s.loadWords(words)
}

func (s *Service) loadWords(words []string) error {
	seen := make(map[string]struct{}, len(words))
	normalized := make([]string, 0, len(words))
	skipped := 0
	for _, word := range words {
		w, ok := model.NormalizeWord(word)
		if !ok || len([]rune(w)) < MinWordLength {
			skipped++
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		normalized = append(normalized, w)
	}
	if len(normalized) == 0 {
		return model.ErrDictionaryEmpty
	}
	sort.Strings(normalized)

	s.mu.Lock()
	s.words = normalized
	s.loaded = true
	s.mu.Unlock()

	if skipped > 0 {
		s.logger.Debug("dictionary skipped unusable words", slog.Int("skipped", skipped))
	}
	s.logger.Info("dictionary loaded", slog.Int("words", len(normalized)))
	return nil
}

// RandomWord picks a secret word using the given source of randomness
func (s *Service) RandomWord(rnd random.Random) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return "", model.ErrDictionaryNotLoaded
	}
	return s.words[rnd.Intn(len(s.words))], nil
}

// Contains checks if a word exists in the dictionary, ignoring case and accents
func (s *Service) Contains(word string) bool {
	w, ok := model.NormalizeWord(word)
	if !ok {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := sort.SearchStrings(s.words, w)
	return i < len(s.words) && s.words[i] == w
}

// IsLoaded returns whether the dictionary has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the dictionary
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

func (s *Service) snapshot() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	words := make([]string, len(s.words))
	copy(words, s.words)
	return words
}
