package dto

import (
	"sort"
	"time"

	authDomain "github.com/allisson/gatewayconsole/internal/auth/domain"
)

// LoginResponse contains the bearer token. It is only returned once.
type LoginResponse struct {
	Token     string    `json:"token"` //nolint:gosec // returned once on login
	ExpiresAt time.Time `json:"expires_at"`
}

// TenantRolesResponse lists the roles held in one tenant.
type TenantRolesResponse struct {
	TenantID string `json:"tenant_id"`
	authDomain.TenantRoles
}

// ClaimsResponse describes the current session.
type ClaimsResponse struct {
	UserID  string                `json:"user_id"`
	Email   string                `json:"email"`
	IsAdmin bool                  `json:"is_admin"`
	Tenants []TenantRolesResponse `json:"tenants"`
}

// MapClaimsToResponse converts claims to an API response with tenants sorted by ID.
func MapClaimsToResponse(claims *authDomain.Claims) ClaimsResponse {
	tenants := make([]TenantRolesResponse, 0, len(claims.Tenants))
	for tenantID, roles := range claims.Tenants {
		tenants = append(tenants, TenantRolesResponse{TenantID: tenantID.String(), TenantRoles: roles})
	}
	sort.Slice(tenants, func(i, j int) bool { return tenants[i].TenantID < tenants[j].TenantID })

	return ClaimsResponse{
		UserID:  claims.UserID.String(),
		Email:   claims.Email,
		IsAdmin: claims.Admin,
		Tenants: tenants,
	}
}
