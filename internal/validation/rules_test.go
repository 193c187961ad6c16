package validation

import (
	"testing"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/gatewayconsole/internal/errors"
)

func TestPasswordStrength(t *testing.T) {
	rule := PasswordStrength{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}

	tests := []struct {
		name     string
		password interface{}
		errMsg   string
	}{
		{name: "valid password", password: "SecurePass123!"},
		{name: "too short", password: "Sh0rt!", errMsg: "at least 8 characters"},
		{name: "missing uppercase", password: "securepass123!", errMsg: "uppercase letter"},
		{name: "missing lowercase", password: "SECUREPASS123!", errMsg: "lowercase letter"},
		{name: "missing number", password: "SecurePass!!", errMsg: "number"},
		{name: "missing special char", password: "SecurePass123", errMsg: "special character"},
		{name: "not a string", password: 12345678, errMsg: "must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Validate(tt.password)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestEUI64(t *testing.T) {
	assert.NoError(t, validation.Validate("0102030405060708", EUI64))
	assert.NoError(t, validation.Validate("a1b2c3d4e5f6a7b8", EUI64))
	assert.NoError(t, validation.Validate("A1B2C3D4E5F6A7B8", EUI64))
	assert.Error(t, validation.Validate("01020304050607", EUI64))
	assert.Error(t, validation.Validate("010203040506070g", EUI64))
	assert.Error(t, validation.Validate("gw-1", EUI64))
}

func TestEmail(t *testing.T) {
	assert.NoError(t, validation.Validate("admin@example.com", Email))
	assert.Error(t, validation.Validate("admin@", Email))
	assert.Error(t, validation.Validate("not-an-email", Email))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, validation.Validate("gateway", NotBlank))
	assert.Error(t, validation.Validate("   ", NotBlank))
}

func TestWrapValidationError(t *testing.T) {
	assert.Nil(t, WrapValidationError(nil))

	err := WrapValidationError(validation.Validate("x", EUI64))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "EUI-64")
}

func TestNotNilUUID(t *testing.T) {
	assert.NoError(t, validation.Validate(uuid.Must(uuid.NewV7()), NotNilUUID))
	assert.Error(t, validation.Validate(uuid.Nil, NotNilUUID))
}

func TestUUID(t *testing.T) {
	assert.NoError(t, validation.Validate("01950000-0000-7000-8000-000000000001", UUID))
	assert.NoError(t, validation.Validate("", UUID))
	assert.Error(t, validation.Validate("org-9", UUID))
}
