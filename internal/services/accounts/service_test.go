package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/gameportal/internal/dependencies/mocks"
	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.clock, s.random, Config{BcryptCost: bcrypt.MinCost}, testutil.NopLogger())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterAssignsSequentialIDs() {
	a, err := s.service.Register(s.ctx, "alice", "alice@example.com", "password123")
	s.Require().NoError(err)
	b, err := s.service.Register(s.ctx, "bob", "bob@example.com", "password123")
	s.Require().NoError(err)

	s.Equal(model.AccountID(1), a.ID)
	s.Equal(model.AccountID(2), b.ID)
	s.False(a.IsAdmin)
}

func (s *ServiceSuite) TestRegisterHashesPassword() {
	a, _ := s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	creds := s.service.credentials[a.ID]
	s.NotEqual("password123", creds.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte("password123")))
}

func (s *ServiceSuite) TestRegisterFailsIfUsernameExists() {
	_, _ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	_, err := s.service.Register(s.ctx, "alice", "other@example.com", "password456")
	s.ErrorIs(err, model.ErrAccountExists)
}

func (s *ServiceSuite) TestRegisterFailsIfUsernameDiffersOnlyInCase() {
	_, err := s.service.Register(s.ctx, "alice", "alice@example.com", "password123")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "ALICE", "other@example.com", "password456")
	s.ErrorIs(err, model.ErrAccountExists)
}

func (s *ServiceSuite) TestLoginIgnoresUsernameCase() {
	account, err := s.service.Register(s.ctx, "Alice", "alice@example.com", "password123")
	s.Require().NoError(err)

	session, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)
	s.Equal(account.ID, session.AccountID)
}

func (s *ServiceSuite) TestRegisterFailsIfEmailExists() {
	_, _ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	_, err := s.service.Register(s.ctx, "alicia", "ALICE@example.com", "password456")
	s.ErrorIs(err, model.ErrAccountExists)
}

// EnsureAdmin tests

func (s *ServiceSuite) TestEnsureAdminIsIdempotent() {
	first, err := s.service.EnsureAdmin(s.ctx, "admin", "admin@portal.com", "admin123")
	s.Require().NoError(err)
	s.True(first.IsAdmin)

	second, err := s.service.EnsureAdmin(s.ctx, "admin", "admin@portal.com", "admin123")
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_, _ = s.service.EnsureAdmin(s.ctx, "admin", "admin@portal.com", "admin123")
	s.random.QueueID("0b5e-77")

	session, err := s.service.Login(s.ctx, "admin", "admin123")
	s.Require().NoError(err)
	s.Equal("0b577", session.Token)
	s.True(session.IsAdmin)
	s.Equal(s.clock.Now().Add(24*time.Hour), session.ExpiresAt)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_, _ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")

	_, err := s.service.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownUser() {
	_, err := s.service.Login(s.ctx, "nobody", "password123")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

// Session tests

func (s *ServiceSuite) TestValidateSessionSucceeds() {
	a, _ := s.service.Register(s.ctx, "alice", "alice@example.com", "password123")
	session, _ := s.service.Login(s.ctx, "alice", "password123")

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(a.ID, validated.AccountID)
	s.False(validated.IsAdmin)
}

func (s *ServiceSuite) TestValidateSessionFailsWithInvalidToken() {
	_, err := s.service.ValidateSession("invalid-token")
	s.ErrorIs(err, model.ErrInvalidSession)

	_, err = s.service.ValidateSession("")
	s.ErrorIs(err, model.ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionFailsWhenExpired() {
	_, _ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")
	session, _ := s.service.Login(s.ctx, "alice", "password123")

	s.clock.Advance(25 * time.Hour)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, model.ErrInvalidSession)
	s.Equal(0, s.service.SessionCount())
}

func (s *ServiceSuite) TestInvalidateSessionRemovesSession() {
	_, _ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")
	session, _ := s.service.Login(s.ctx, "alice", "password123")

	s.service.InvalidateSession(session.Token)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, model.ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSessionNoopForUnknownToken() {
	s.NotPanics(func() {
		s.service.InvalidateSession("unknown-token")
	})
}

func (s *ServiceSuite) TestEachLoginOpensOwnSession() {
	_, _ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")
	first, _ := s.service.Login(s.ctx, "alice", "password123")
	second, _ := s.service.Login(s.ctx, "alice", "password123")

	s.NotEqual(first.Token, second.Token)
	s.Equal(2, s.service.SessionCount())
}

func (s *ServiceSuite) TestCleanExpiredSessionsRemovesExpired() {
	_, _ = s.service.Register(s.ctx, "alice", "alice@example.com", "password123")
	_, _ = s.service.Login(s.ctx, "alice", "password123")
	s.clock.Advance(12 * time.Hour)
	fresh, _ := s.service.Login(s.ctx, "alice", "password123")
	s.clock.Advance(13 * time.Hour)

	s.Equal(1, s.service.CleanExpiredSessions())

	_, err := s.service.ValidateSession(fresh.Token)
	s.NoError(err)
}
