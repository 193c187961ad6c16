package console

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/allisson/gatewayconsole/internal/authz"
	gatewayDomain "github.com/allisson/gatewayconsole/internal/gateway/domain"
)

// GatewayBackend is the gateway service as seen by the console.
type GatewayBackend interface {
	Get(ctx context.Context, session authz.Session, gatewayID string) (*gatewayDomain.Gateway, error)
	Update(
		ctx context.Context,
		session authz.Session,
		req *gatewayDomain.UpdateGatewayRequest,
	) (*gatewayDomain.Gateway, error)
}

// AsyncGatewayStore dispatches every update on its own goroutine. Updates are
// detached from the caller's cancellation and bounded by the store timeout.
type AsyncGatewayStore struct {
	backend GatewayBackend
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// NewAsyncGatewayStore creates a store. A non-positive timeout disables the bound.
func NewAsyncGatewayStore(backend GatewayBackend, timeout time.Duration, logger *slog.Logger) *AsyncGatewayStore {
	return &AsyncGatewayStore{
		backend: backend,
		timeout: timeout,
		logger:  logger,
	}
}

// For returns a GatewayStore that acts as session and reports failures to
// notifier.
func (s *AsyncGatewayStore) For(session authz.Session, notifier Notifier) GatewayStore {
	return &sessionStore{store: s, session: session, notifier: notifier}
}

// Wait blocks until every dispatched update has settled.
func (s *AsyncGatewayStore) Wait() {
	s.wg.Wait()
}

func (s *AsyncGatewayStore) dispatch(
	ctx context.Context,
	session authz.Session,
	notifier Notifier,
	req *gatewayDomain.UpdateGatewayRequest,
	onSuccess func(),
) <-chan struct{} {
	settled := make(chan struct{})
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		defer close(settled)

		updateCtx, cancel := s.updateContext(ctx)
		defer cancel()

		start := time.Now()
		_, err := s.backend.Update(updateCtx, session, req)
		if err != nil {
			s.logger.Warn("gateway update failed",
				slog.String("gateway_id", requestGatewayID(req)),
				slog.Duration("duration", time.Since(start)),
				slog.Any("error", err),
			)
			if notifier != nil {
				notifier.Notify(updateCtx, err)
			}
			return
		}

		s.logger.Info("gateway updated",
			slog.String("gateway_id", requestGatewayID(req)),
			slog.Duration("duration", time.Since(start)),
		)
		if onSuccess != nil {
			onSuccess()
		}
	}()

	return settled
}

func (s *AsyncGatewayStore) updateContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if s.timeout <= 0 {
		return context.WithCancel(detached)
	}
	return context.WithTimeout(detached, s.timeout)
}

func requestGatewayID(req *gatewayDomain.UpdateGatewayRequest) string {
	if req == nil || req.Gateway == nil {
		return ""
	}
	return req.Gateway.ID
}

type sessionStore struct {
	store    *AsyncGatewayStore
	session  authz.Session
	notifier Notifier
}

func (s *sessionStore) Update(
	ctx context.Context,
	req *gatewayDomain.UpdateGatewayRequest,
	onSuccess func(),
) <-chan struct{} {
	return s.store.dispatch(ctx, s.session, s.notifier, req, onSuccess)
}
