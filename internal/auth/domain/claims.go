package domain

import (
	"github.com/google/uuid"
)

// Claims describe the authenticated actor of a request. A nil *Claims has no
// roles at all, so every method is safe on a nil receiver.
type Claims struct {
	UserID  uuid.UUID                 `json:"user_id"`
	Email   string                    `json:"email"`
	Admin   bool                      `json:"is_admin"`
	Tenants map[uuid.UUID]TenantRoles `json:"tenants"`
}

// NewClaims builds the claims of user from its tenant memberships.
func NewClaims(user *User, memberships []*TenantUser) *Claims {
	claims := &Claims{
		UserID:  user.ID,
		Email:   user.Email,
		Admin:   user.IsAdmin,
		Tenants: make(map[uuid.UUID]TenantRoles, len(memberships)),
	}
	for _, m := range memberships {
		claims.Tenants[m.TenantID] = m.TenantRoles
	}
	return claims
}

// ActorID returns the user id, or uuid.Nil for a nil receiver.
func (c *Claims) ActorID() uuid.UUID {
	if c == nil {
		return uuid.Nil
	}
	return c.UserID
}

func (c *Claims) IsAdmin() bool {
	return c != nil && c.Admin
}

func (c *Claims) IsTenantUser(tenantID uuid.UUID) bool {
	if c == nil {
		return false
	}
	_, ok := c.Tenants[tenantID]
	return ok
}

func (c *Claims) IsTenantAdmin(tenantID uuid.UUID) bool {
	return c != nil && c.Tenants[tenantID].IsAdmin
}

func (c *Claims) IsTenantDeviceAdmin(tenantID uuid.UUID) bool {
	return c != nil && c.Tenants[tenantID].IsDeviceAdmin
}

func (c *Claims) IsTenantGatewayAdmin(tenantID uuid.UUID) bool {
	return c != nil && c.Tenants[tenantID].IsGatewayAdmin
}
