// Package http provides the session endpoints and the authentication middleware.
package http

import (
	"context"

	authDomain "github.com/allisson/gatewayconsole/internal/auth/domain"
)

type claimsKey struct{}

type tokenHashKey struct{}

// WithClaims stores the claims of the authenticated user in the context.
func WithClaims(ctx context.Context, claims *authDomain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves the claims stored by AuthenticationMiddleware.
// Returns (nil, false) when the request is not authenticated.
func GetClaims(ctx context.Context) (*authDomain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*authDomain.Claims)
	return claims, ok && claims != nil
}

// WithTokenHash stores the hash of the bearer token used by the request.
func WithTokenHash(ctx context.Context, tokenHash string) context.Context {
	return context.WithValue(ctx, tokenHashKey{}, tokenHash)
}

// GetTokenHash retrieves the bearer token hash stored by AuthenticationMiddleware.
func GetTokenHash(ctx context.Context) (string, bool) {
	tokenHash, ok := ctx.Value(tokenHashKey{}).(string)
	return tokenHash, ok && tokenHash != ""
}
