// Package authz decides what the current actor may do with tenant owned
// resources. Every function is pure and safe to call with a nil session.
package authz

import "github.com/google/uuid"

// Session exposes the role claims of the current actor.
type Session interface {
	IsAdmin() bool
	IsTenantAdmin(tenantID uuid.UUID) bool
	IsTenantGatewayAdmin(tenantID uuid.UUID) bool
}

// MemberSession is implemented by sessions that also know plain tenant membership.
type MemberSession interface {
	Session
	IsTenantUser(tenantID uuid.UUID) bool
}

// CanEditGateway reports whether the session may modify gateways owned by tenantID.
// Global admins may edit any gateway; tenant admins and tenant gateway admins
// may edit gateways of their own tenant only.
func CanEditGateway(session Session, tenantID uuid.UUID) bool {
	if session == nil {
		return false
	}
	return session.IsAdmin() ||
		session.IsTenantAdmin(tenantID) ||
		session.IsTenantGatewayAdmin(tenantID)
}

// CanCreateGateway reports whether the session may add gateways to tenantID.
func CanCreateGateway(session Session, tenantID uuid.UUID) bool {
	return CanEditGateway(session, tenantID)
}

// CanViewGateway reports whether the session may read gateways owned by tenantID.
func CanViewGateway(session Session, tenantID uuid.UUID) bool {
	if CanEditGateway(session, tenantID) {
		return true
	}
	if member, ok := session.(MemberSession); ok {
		return member.IsTenantUser(tenantID)
	}
	return false
}
