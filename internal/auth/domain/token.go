package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is a login session. Only the SHA-256 hash of the bearer token is stored.
type Token struct {
	ID        uuid.UUID
	TokenHash string
	UserID    uuid.UUID
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// IsUsable reports whether the token is neither revoked nor expired at now.
func (t *Token) IsUsable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

// LoginInput carries the credentials of a login request.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput carries the plain bearer token, shown to the caller once.
type LoginOutput struct {
	PlainToken string
	ExpiresAt  time.Time
}
