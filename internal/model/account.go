package model

import "time"

// AccountID identifies a backend user account
type AccountID int64

// Account is a user of the game backend
type Account struct {
	ID        AccountID
	Username  string // login username (immutable)
	Email     string
	IsAdmin   bool
	CreatedAt time.Time
}

// Credentials are stored apart from the account so that the password hash
// never travels with session data
type Credentials struct {
	AccountID    AccountID
	PasswordHash string // bcrypt hash
	UpdatedAt    time.Time
}
