// Package usecase defines user, membership and session operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/gatewayconsole/internal/auth/domain"
	tenantDomain "github.com/allisson/gatewayconsole/internal/tenant/domain"
)

// UserRepository defines persistence operations for users.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// Create stores a new user. Returns ErrUserAlreadyExists for a duplicate email.
	Create(ctx context.Context, user *authDomain.User) error

	// Get retrieves a user by ID. Returns ErrUserNotFound if not found.
	Get(ctx context.Context, userID uuid.UUID) (*authDomain.User, error)

	// GetByEmail retrieves a user by its normalized email. Returns ErrUserNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*authDomain.User, error)
}

// TenantUserRepository defines persistence operations for tenant memberships.
type TenantUserRepository interface {
	// Upsert creates the membership or replaces its roles.
	Upsert(ctx context.Context, tenantUser *authDomain.TenantUser) error

	// ListByUser returns every membership of a user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*authDomain.TenantUser, error)
}

// TokenRepository defines persistence operations for session tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *authDomain.Token) error

	// GetByTokenHash returns ErrTokenNotFound if no token has the hash.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error)

	// Revoke sets revoked_at on the token.
	Revoke(ctx context.Context, tokenID uuid.UUID, revokedAt time.Time) error
}

// TenantRepository is the tenant lookup used when granting memberships.
type TenantRepository interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*tenantDomain.Tenant, error)
}

// SessionUseCase logs users in and out and resolves bearer tokens into claims.
type SessionUseCase interface {
	// Login verifies the credentials and issues a bearer token. The plain token
	// is only returned once; only its hash is stored.
	//
	// Unknown emails and wrong passwords both return ErrInvalidCredentials.
	// Inactive users return ErrUserInactive.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.LoginOutput, error)

	// Authenticate resolves a token hash into the claims of its user.
	// Unknown, expired and revoked tokens return ErrInvalidCredentials.
	Authenticate(ctx context.Context, tokenHash string) (*authDomain.Claims, error)

	// Logout revokes the token. Revoking an already revoked token is a no-op.
	Logout(ctx context.Context, tokenHash string) error
}

// UserUseCase bootstraps users and their tenant roles.
type UserUseCase interface {
	CreateUser(ctx context.Context, input *authDomain.CreateUserInput) (*authDomain.User, error)
	SetTenantUser(ctx context.Context, input *authDomain.SetTenantUserInput) (*authDomain.TenantUser, error)
}
