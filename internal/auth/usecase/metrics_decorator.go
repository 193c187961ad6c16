package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/gatewayconsole/internal/auth/domain"
	"github.com/allisson/gatewayconsole/internal/metrics"
)

const metricsDomain = "sessions"

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *sessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusOf(err)
	s.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	s.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Login records metrics for login attempts.
func (s *sessionUseCaseWithMetrics) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	start := time.Now()
	output, err := s.next.Login(ctx, input)
	s.record(ctx, "login", start, err)
	return output, err
}

// Authenticate records metrics for token resolution.
func (s *sessionUseCaseWithMetrics) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Claims, error) {
	start := time.Now()
	claims, err := s.next.Authenticate(ctx, tokenHash)
	s.record(ctx, "authenticate", start, err)
	return claims, err
}

// Logout records metrics for token revocation.
func (s *sessionUseCaseWithMetrics) Logout(ctx context.Context, tokenHash string) error {
	start := time.Now()
	err := s.next.Logout(ctx, tokenHash)
	s.record(ctx, "logout", start, err)
	return err
}
