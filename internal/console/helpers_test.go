package console

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/gatewayconsole/internal/auth/domain"
	"github.com/allisson/gatewayconsole/internal/authz"
	gatewayDomain "github.com/allisson/gatewayconsole/internal/gateway/domain"
)

var (
	org9 = uuid.MustParse("0195a2b4-0000-7000-8000-000000000009")
	org4 = uuid.MustParse("0195a2b4-0000-7000-8000-000000000004")
)

const gw1 = "0102030405060708"

func newTestGateway(tenantID uuid.UUID) *gatewayDomain.Gateway {
	return &gatewayDomain.Gateway{
		ID:                gw1,
		TenantID:          tenantID,
		Name:              "Rooftop",
		StatsIntervalSecs: 30,
		Tags:              map[string]string{},
		Properties:        map[string]string{},
	}
}

func tenantAdminOf(tenantID uuid.UUID) *authDomain.Claims {
	return &authDomain.Claims{
		UserID:  uuid.Must(uuid.NewV7()),
		Email:   "admin@example.com",
		Tenants: map[uuid.UUID]authDomain.TenantRoles{tenantID: {IsAdmin: true}},
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type mockGatewayBackend struct {
	mock.Mock
}

func newMockGatewayBackend(t *testing.T) *mockGatewayBackend {
	m := &mockGatewayBackend{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockGatewayBackend) Get(
	ctx context.Context,
	session authz.Session,
	gatewayID string,
) (*gatewayDomain.Gateway, error) {
	args := m.Called(ctx, session, gatewayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gatewayDomain.Gateway), args.Error(1)
}

func (m *mockGatewayBackend) Update(
	ctx context.Context,
	session authz.Session,
	req *gatewayDomain.UpdateGatewayRequest,
) (*gatewayDomain.Gateway, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gatewayDomain.Gateway), args.Error(1)
}

// recordingStore settles every update immediately with a fixed outcome.
type recordingStore struct {
	mu       sync.Mutex
	requests []*gatewayDomain.UpdateGatewayRequest
	fail     bool
}

func (s *recordingStore) Update(
	ctx context.Context,
	req *gatewayDomain.UpdateGatewayRequest,
	onSuccess func(),
) <-chan struct{} {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if !s.fail {
		onSuccess()
	}
	settled := make(chan struct{})
	close(settled)
	return settled
}

// recordingNavigator records every navigation.
type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

// recordingNotifier records every reported failure.
type recordingNotifier struct {
	mu   sync.Mutex
	errs []error
}

func (n *recordingNotifier) Notify(ctx context.Context, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errs = append(n.errs, err)
}

func (n *recordingNotifier) Errors() []error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]error(nil), n.errs...)
}
