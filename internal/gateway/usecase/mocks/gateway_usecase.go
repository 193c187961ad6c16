// Package mocks provides testify mocks of the gateway use case.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/gatewayconsole/internal/authz"
	gatewayDomain "github.com/allisson/gatewayconsole/internal/gateway/domain"
)

// MockGatewayUseCase is a mock implementation of GatewayUseCase.
type MockGatewayUseCase struct {
	mock.Mock
}

// NewMockGatewayUseCase creates a mock whose expectations are asserted on test cleanup.
func NewMockGatewayUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockGatewayUseCase {
	m := &MockGatewayUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockGatewayUseCase) Create(
	ctx context.Context,
	session authz.Session,
	gateway *gatewayDomain.Gateway,
) (*gatewayDomain.Gateway, error) {
	args := m.Called(ctx, session, gateway)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gatewayDomain.Gateway), args.Error(1)
}

func (m *MockGatewayUseCase) Get(
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

func (m *MockGatewayUseCase) List(
	ctx context.Context,
	session authz.Session,
	tenantID uuid.UUID,
	offset, limit int,
) ([]*gatewayDomain.Gateway, error) {
	args := m.Called(ctx, session, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*gatewayDomain.Gateway), args.Error(1)
}

func (m *MockGatewayUseCase) Update(
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
