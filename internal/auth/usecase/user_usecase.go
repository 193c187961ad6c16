package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/gatewayconsole/internal/auth/domain"
	authService "github.com/allisson/gatewayconsole/internal/auth/service"
	"github.com/allisson/gatewayconsole/internal/database"
)

type userUseCase struct {
	txManager       database.TxManager
	userRepo        UserRepository
	tenantUserRepo  TenantUserRepository
	tenantRepo      TenantRepository
	passwordService authService.PasswordService
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	tenantUserRepo TenantUserRepository,
	tenantRepo TenantRepository,
	passwordService authService.PasswordService,
) UserUseCase {
	return &userUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
		tenantUserRepo:  tenantUserRepo,
		tenantRepo:      tenantRepo,
		passwordService: passwordService,
	}
}

// CreateUser registers an active user with a hashed password.
func (u *userUseCase) CreateUser(
	ctx context.Context,
	input *authDomain.CreateUserInput,
) (*authDomain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := u.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &authDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        normalizeEmail(input.Email),
		PasswordHash: passwordHash,
		IsAdmin:      input.IsAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SetTenantUser grants roles within a tenant, replacing any previous roles.
func (u *userUseCase) SetTenantUser(
	ctx context.Context,
	input *authDomain.SetTenantUserInput,
) (*authDomain.TenantUser, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var tenantUser *authDomain.TenantUser
	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := u.tenantRepo.Get(ctx, input.TenantID); err != nil {
			return err
		}

		user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		tenantUser = &authDomain.TenantUser{
			TenantID:    input.TenantID,
			UserID:      user.ID,
			TenantRoles: input.TenantRoles,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return u.tenantUserRepo.Upsert(ctx, tenantUser)
	})
	if err != nil {
		return nil, err
	}

	return tenantUser, nil
}
