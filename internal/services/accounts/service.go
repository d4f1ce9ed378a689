package accounts

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/gameportal/internal/dependencies/clock"
	"github.com/mcoot/gameportal/internal/dependencies/random"
	"github.com/mcoot/gameportal/internal/model"
)

// Session represents a logged-in account
type Session struct {
	Token     string
	AccountID model.AccountID
	IsAdmin   bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Config holds configuration for the account service
type Config struct {
	SessionDuration time.Duration
	// BcryptCost is the work factor for password hashes
	BcryptCost int
}

// DefaultConfig returns default account configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
		BcryptCost:      bcrypt.DefaultCost,
	}
}

// Service keeps accounts and sessions in memory
type Service struct {
	clock  clock.Clock
	random random.Random
	logger *slog.Logger
	cfg    Config

	mu          sync.RWMutex
	nextID      model.AccountID
	accounts    map[model.AccountID]*model.Account
	byUsername  map[string]model.AccountID
	byEmail     map[string]model.AccountID
	credentials map[model.AccountID]*model.Credentials
	sessions    map[string]*Session
}

// New creates a new account service
func New(clock clock.Clock, random random.Random, cfg Config, logger *slog.Logger) *Service {
	defaults := DefaultConfig()
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = defaults.SessionDuration
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = defaults.BcryptCost
	}
	return &Service{
		clock:       clock,
		random:      random,
		logger:      logger,
		cfg:         cfg,
		nextID:      1,
		accounts:    make(map[model.AccountID]*model.Account),
		byUsername:  make(map[string]model.AccountID),
		byEmail:     make(map[string]model.AccountID),
		credentials: make(map[model.AccountID]*model.Credentials),
		sessions:    make(map[string]*Session),
	}
}

// Register creates a regular account
func (s *Service) Register(ctx context.Context, username, email, password string) (*model.Account, error) {
	return s.create(ctx, username, email, password, false)
}

// EnsureAdmin creates the admin account if no account with that username exists
func (s *Service) EnsureAdmin(ctx context.Context, username, email, password string) (*model.Account, error) {
	s.mu.RLock()
	id, ok := s.byUsername[usernameKey(username)]
	s.mu.RUnlock()
	if ok {
		return s.Get(id)
	}

	account, err := s.create(ctx, username, email, password, true)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "admin account created", slog.String("username", username))
	return account, nil
}

func (s *Service) create(ctx context.Context, username, email, password string, admin bool) (*model.Account, error) {
	// Hash before taking the lock; bcrypt is slow
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	userKey := usernameKey(username)
	emailKey := strings.ToLower(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[userKey]; exists {
		return nil, model.ErrAccountExists
	}
	if _, exists := s.byEmail[emailKey]; exists {
		return nil, model.ErrAccountExists
	}

	account := &model.Account{
		ID:        s.nextID,
		Username:  username,
		Email:     email,
		IsAdmin:   admin,
		CreatedAt: now,
	}
	s.nextID++

	s.accounts[account.ID] = account
	s.byUsername[userKey] = account.ID
	s.byEmail[emailKey] = account.ID
	s.credentials[account.ID] = &model.Credentials{
		AccountID:    account.ID,
		PasswordHash: string(hash),
		UpdatedAt:    now,
	}

	s.logger.DebugContext(ctx, "account registered",
		slog.Int64("account_id", int64(account.ID)),
		slog.String("username", username),
	)

	out := *account
	return &out, nil
}

// usernameKey folds case so "alice" and "ALICE" are the same account
func usernameKey(username string) string {
	return strings.ToLower(username)
}

// Get returns an account by id
func (s *Service) Get(id model.AccountID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	out := *account
	return &out, nil
}

// Login checks credentials and opens a session
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	s.mu.RLock()
	id, ok := s.byUsername[usernameKey(username)]
	var (
		account *model.Account
		creds   *model.Credentials
	)
	if ok {
		account = s.accounts[id]
		creds = s.credentials[id]
	}
	s.mu.RUnlock()

	if !ok {
		return nil, model.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	session := s.createSession(account)
	s.logger.DebugContext(ctx, "session opened", slog.Int64("account_id", int64(account.ID)))
	return session, nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	if token == "" {
		return nil, model.ErrInvalidSession
	}

	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, model.ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.InvalidateSession(token)
		return nil, model.ErrInvalidSession
	}

	out := *session
	return &out, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// SessionCount returns the number of open sessions
func (s *Service) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Service) createSession(account *model.Account) *Session {
	now := s.clock.Now()
	session := &Session{
		Token:     strings.ReplaceAll(s.random.ID(), "-", ""),
		AccountID: account.ID,
		IsAdmin:   account.IsAdmin,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	out := *session
	return &out
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() int {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}
