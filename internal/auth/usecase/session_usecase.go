package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/gatewayconsole/internal/auth/domain"
	authService "github.com/allisson/gatewayconsole/internal/auth/service"
	"github.com/allisson/gatewayconsole/internal/config"
)

type sessionUseCase struct {
	config          *config.Config
	userRepo        UserRepository
	tenantUserRepo  TenantUserRepository
	tokenRepo       TokenRepository
	passwordService authService.PasswordService
	tokenService    authService.TokenService
	now             func() time.Time
}

// NewSessionUseCase creates a new SessionUseCase with the provided dependencies.
func NewSessionUseCase(
	config *config.Config,
	userRepo UserRepository,
	tenantUserRepo TenantUserRepository,
	tokenRepo TokenRepository,
	passwordService authService.PasswordService,
	tokenService authService.TokenService,
) SessionUseCase {
	return &sessionUseCase{
		config:          config,
		userRepo:        userRepo,
		tenantUserRepo:  tenantUserRepo,
		tokenRepo:       tokenRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Login checks the password before the active flag so an inactive account is
// only revealed to a caller that knows its password.
func (s *sessionUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.passwordService.ComparePassword(input.Password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, authDomain.ErrUserInactive
	}

	plainToken, tokenHash, err := s.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	token := &authDomain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: tokenHash,
		UserID:    user.ID,
		ExpiresAt: now.Add(s.config.AuthTokenExpiration),
		CreatedAt: now,
	}

	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &authDomain.LoginOutput{
		PlainToken: plainToken,
		ExpiresAt:  token.ExpiresAt,
	}, nil
}

func (s *sessionUseCase) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Claims, error) {
	token, err := s.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrTokenNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !token.IsUsable(s.now()) {
		return nil, authDomain.ErrInvalidCredentials
	}

	user, err := s.userRepo.Get(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, authDomain.ErrUserInactive
	}

	memberships, err := s.tenantUserRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return authDomain.NewClaims(user, memberships), nil
}

func (s *sessionUseCase) Logout(ctx context.Context, tokenHash string) error {
	token, err := s.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrTokenNotFound) {
			return authDomain.ErrInvalidCredentials
		}
		return err
	}

	if token.RevokedAt != nil {
		return nil
	}

	return s.tokenRepo.Revoke(ctx, token.ID, s.now())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
