package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/gatewayconsole/internal/errors"
)

func TestCreateUserInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateUserInput
		wantErr bool
	}{
		{name: "valid", input: CreateUserInput{Email: "ops@example.com", Password: "Str0ng!Pass"}},
		{name: "missing email", input: CreateUserInput{Password: "Str0ng!Pass"}, wantErr: true},
		{name: "bad email", input: CreateUserInput{Email: "ops", Password: "Str0ng!Pass"}, wantErr: true},
		{name: "weak password", input: CreateUserInput{Email: "ops@example.com", Password: "password"}, wantErr: true},
		{name: "short password", input: CreateUserInput{Email: "ops@example.com", Password: "S0!a"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSetTenantUserInput_Validate(t *testing.T) {
	valid := SetTenantUserInput{TenantID: uuid.New(), Email: "ops@example.com"}
	assert.NoError(t, valid.Validate())

	noTenant := SetTenantUserInput{Email: "ops@example.com"}
	assert.ErrorIs(t, noTenant.Validate(), apperrors.ErrInvalidInput)

	noEmail := SetTenantUserInput{TenantID: uuid.New()}
	assert.ErrorIs(t, noEmail.Validate(), apperrors.ErrInvalidInput)
}
