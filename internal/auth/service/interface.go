// Package service provides the hashing primitives behind login sessions.
package service

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	// HashPassword returns an Argon2id PHC string for plainPassword.
	HashPassword(plainPassword string) (string, error)

	// ComparePassword reports whether plainPassword matches passwordHash.
	// Malformed hashes compare as false.
	ComparePassword(plainPassword, passwordHash string) bool
}

// TokenService generates bearer tokens and the hashes stored for them.
type TokenService interface {
	// GenerateToken returns a random plain token and its SHA-256 hex hash.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken returns the SHA-256 hex hash of plainToken.
	HashToken(plainToken string) string
}
