package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/gatewayconsole/internal/auth/domain"
	apperrors "github.com/allisson/gatewayconsole/internal/errors"
	gatewayDomain "github.com/allisson/gatewayconsole/internal/gateway/domain"
	outboxDomain "github.com/allisson/gatewayconsole/internal/outbox/domain"
	tenantDomain "github.com/allisson/gatewayconsole/internal/tenant/domain"
)

type fixture struct {
	tx          *inlineTxManager
	gatewayRepo *mockGatewayRepository
	tenantRepo  *mockTenantRepository
	outboxRepo  *mockOutboxRepository
	uc          GatewayUseCase
}

func newFixture() *fixture {
	f := &fixture{
		tx:          &inlineTxManager{},
		gatewayRepo: &mockGatewayRepository{},
		tenantRepo:  &mockTenantRepository{},
		outboxRepo:  &mockOutboxRepository{},
	}
	f.uc = NewGatewayUseCase(f.tx, f.gatewayRepo, f.tenantRepo, f.outboxRepo)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.gatewayRepo.AssertExpectations(t)
	f.tenantRepo.AssertExpectations(t)
	f.outboxRepo.AssertExpectations(t)
}

func storedGateway(tenantID uuid.UUID) *gatewayDomain.Gateway {
	created := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	return &gatewayDomain.Gateway{
		ID:                "0102030405060708",
		TenantID:          tenantID,
		Name:              "gw-1",
		Description:       "roof",
		Location:          gatewayDomain.Location{Latitude: 52.1, Longitude: 4.3},
		StatsIntervalSecs: 30,
		Tags:              map[string]string{"site": "north"},
		Properties:        map[string]string{},
		CreatedAt:         created,
		UpdatedAt:         created,
	}
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(event *outboxDomain.OutboxEvent) bool {
		return event.EventType == eventType && event.Status == outboxDomain.OutboxEventStatusPending
	})
}

func TestGatewayUseCase_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.Must(uuid.NewV7())

	t.Run("Success_FullReplaceOfEditableFields", func(t *testing.T) {
		f := newFixture()
		stored := storedGateway(tenantID)
		session := gatewayAdmin(tenantID)

		edited := *stored
		edited.Name = "gw-1 renamed"
		edited.Description = ""
		edited.Location = gatewayDomain.Location{Latitude: 10, Longitude: 20, Altitude: 30}
		edited.StatsIntervalSecs = 60
		edited.Tags = map[string]string{"site": "south"}
		edited.Properties = map[string]string{"model": "outdoor"}
		edited.CreatedAt = time.Time{}

		var published *outboxDomain.OutboxEvent
		f.gatewayRepo.On("Get", mock.Anything, "0102030405060708").Return(stored, nil).Once()
		f.gatewayRepo.On("Update", mock.Anything, mock.MatchedBy(func(gw *gatewayDomain.Gateway) bool {
			return gw.Name == "gw-1 renamed" &&
				gw.Description == "" &&
				gw.Location.Altitude == 30 &&
				gw.StatsIntervalSecs == 60 &&
				gw.Tags["site"] == "south" &&
				gw.Properties["model"] == "outdoor" &&
				gw.CreatedAt.Equal(time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)) &&
				!gw.UpdatedAt.Equal(gw.CreatedAt)
		})).Return(nil).Once()
		f.outboxRepo.On("Create", mock.Anything, eventOfType(gatewayDomain.EventGatewayUpdated)).
			Run(func(args mock.Arguments) { published = args.Get(1).(*outboxDomain.OutboxEvent) }).
			Return(nil).Once()

		updated, err := f.uc.Update(ctx, session, &gatewayDomain.UpdateGatewayRequest{Gateway: &edited})

		require.NoError(t, err)
		assert.Equal(t, "gw-1 renamed", updated.Name)
		assert.Equal(t, 1, f.tx.calls)
		f.assertExpectations(t)

		var payload gatewayDomain.GatewayEvent
		require.NoError(t, json.Unmarshal([]byte(published.Payload), &payload))
		assert.Equal(t, "0102030405060708", payload.GatewayID)
		assert.Equal(t, tenantID, payload.TenantID)
		assert.Equal(t, session.UserID, payload.UserID)
	})

	t.Run("Success_UppercaseIDIsNormalized", func(t *testing.T) {
		f := newFixture()
		stored := storedGateway(tenantID)
		stored.ID = "0a0b0c0d0e0f1011"

		edited := *stored
		edited.ID = "0A0B0C0D0E0F1011"

		f.gatewayRepo.On("Get", mock.Anything, "0a0b0c0d0e0f1011").Return(stored, nil).Once()
		f.gatewayRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
		f.outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.uc.Update(ctx, &authDomain.Claims{Admin: true}, &gatewayDomain.UpdateGatewayRequest{Gateway: &edited})
		require.NoError(t, err)
		f.assertExpectations(t)
	})

	t.Run("Error_PermissionDeniedOnStoredTenant", func(t *testing.T) {
		f := newFixture()
		otherTenant := uuid.Must(uuid.NewV7())
		stored := storedGateway(tenantID)

		// the submitted snapshot claims a tenant the session administers
		edited := *stored
		edited.TenantID = otherTenant

		f.gatewayRepo.On("Get", mock.Anything, stored.ID).Return(stored, nil).Once()

		updated, err := f.uc.Update(ctx, tenantAdmin(otherTenant), &gatewayDomain.UpdateGatewayRequest{Gateway: &edited})

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, gatewayDomain.ErrPermissionDenied)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		f.gatewayRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.outboxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_PlainMemberCannotEdit", func(t *testing.T) {
		f := newFixture()
		stored := storedGateway(tenantID)
		edited := *stored

		f.gatewayRepo.On("Get", mock.Anything, stored.ID).Return(stored, nil).Once()

		_, err := f.uc.Update(ctx, tenantMember(tenantID), &gatewayDomain.UpdateGatewayRequest{Gateway: &edited})
		assert.ErrorIs(t, err, gatewayDomain.ErrPermissionDenied)
	})

	t.Run("Error_NilSession", func(t *testing.T) {
		f := newFixture()
		stored := storedGateway(tenantID)
		edited := *stored

		f.gatewayRepo.On("Get", mock.Anything, stored.ID).Return(stored, nil).Once()

		_, err := f.uc.Update(ctx, nil, &gatewayDomain.UpdateGatewayRequest{Gateway: &edited})
		assert.ErrorIs(t, err, gatewayDomain.ErrPermissionDenied)
	})

	t.Run("Error_TenantChangeNotAllowed", func(t *testing.T) {
		f := newFixture()
		stored := storedGateway(tenantID)
		edited := *stored
		edited.TenantID = uuid.Must(uuid.NewV7())

		f.gatewayRepo.On("Get", mock.Anything, stored.ID).Return(stored, nil).Once()

		_, err := f.uc.Update(ctx, &authDomain.Claims{Admin: true}, &gatewayDomain.UpdateGatewayRequest{Gateway: &edited})

		assert.ErrorIs(t, err, gatewayDomain.ErrTenantChangeNotAllowed)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		f.gatewayRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Error_GatewayNotFound", func(t *testing.T) {
		f := newFixture()
		edited := storedGateway(tenantID)

		f.gatewayRepo.On("Get", mock.Anything, edited.ID).Return(nil, gatewayDomain.ErrGatewayNotFound).Once()

		_, err := f.uc.Update(ctx, &authDomain.Claims{Admin: true}, &gatewayDomain.UpdateGatewayRequest{Gateway: edited})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Error_InvalidRequest", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.Update(ctx, &authDomain.Claims{Admin: true}, &gatewayDomain.UpdateGatewayRequest{})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Zero(t, f.tx.calls)
	})

	t.Run("Error_OutboxFailureFailsUpdate", func(t *testing.T) {
		f := newFixture()
		stored := storedGateway(tenantID)
		edited := *stored

		f.gatewayRepo.On("Get", mock.Anything, stored.ID).Return(stored, nil).Once()
		f.gatewayRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
		f.outboxRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		updated, err := f.uc.Update(ctx, &authDomain.Claims{Admin: true}, &gatewayDomain.UpdateGatewayRequest{Gateway: &edited})

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestGatewayUseCase_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.Must(uuid.NewV7())

	newGateway := func() *gatewayDomain.Gateway {
		return &gatewayDomain.Gateway{ID: "0102030405060708", TenantID: tenantID, Name: "gw-1"}
	}

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		tenant := &tenantDomain.Tenant{ID: tenantID, CanHaveGateways: true, MaxGatewayCount: 2}

		f.tenantRepo.On("Get", mock.Anything, tenantID).Return(tenant, nil).Once()
		f.gatewayRepo.On("CountByTenant", mock.Anything, tenantID).Return(1, nil).Once()
		f.gatewayRepo.On("Create", mock.Anything, mock.MatchedBy(func(gw *gatewayDomain.Gateway) bool {
			return gw.StatsIntervalSecs == gatewayDomain.DefaultStatsIntervalSecs &&
				gw.Tags != nil && !gw.CreatedAt.IsZero()
		})).Return(nil).Once()
		f.outboxRepo.On("Create", mock.Anything, eventOfType(gatewayDomain.EventGatewayCreated)).Return(nil).Once()

		created, err := f.uc.Create(ctx, tenantAdmin(tenantID), newGateway())

		require.NoError(t, err)
		assert.Equal(t, "0102030405060708", created.ID)
		f.assertExpectations(t)
	})

	t.Run("Error_PermissionDenied", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.Create(ctx, tenantMember(tenantID), newGateway())

		assert.ErrorIs(t, err, gatewayDomain.ErrPermissionDenied)
		assert.Zero(t, f.tx.calls)
	})

	t.Run("Error_TenantCannotHaveGateways", func(t *testing.T) {
		f := newFixture()
		f.tenantRepo.On("Get", mock.Anything, tenantID).
			Return(&tenantDomain.Tenant{ID: tenantID, CanHaveGateways: false}, nil).Once()

		_, err := f.uc.Create(ctx, &authDomain.Claims{Admin: true}, newGateway())

		assert.ErrorIs(t, err, gatewayDomain.ErrTenantCannotHaveGateways)
		f.gatewayRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_MaxGatewayCountReached", func(t *testing.T) {
		f := newFixture()
		f.tenantRepo.On("Get", mock.Anything, tenantID).
			Return(&tenantDomain.Tenant{ID: tenantID, CanHaveGateways: true, MaxGatewayCount: 2}, nil).Once()
		f.gatewayRepo.On("CountByTenant", mock.Anything, tenantID).Return(2, nil).Once()

		_, err := f.uc.Create(ctx, &authDomain.Claims{Admin: true}, newGateway())

		assert.ErrorIs(t, err, gatewayDomain.ErrMaxGatewayCountReached)
	})

	t.Run("Error_TenantNotFound", func(t *testing.T) {
		f := newFixture()
		f.tenantRepo.On("Get", mock.Anything, tenantID).Return(nil, tenantDomain.ErrTenantNotFound).Once()

		_, err := f.uc.Create(ctx, &authDomain.Claims{Admin: true}, newGateway())

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Error_InvalidGateway", func(t *testing.T) {
		f := newFixture()
		gw := newGateway()
		gw.ID = "not-an-eui"

		_, err := f.uc.Create(ctx, &authDomain.Claims{Admin: true}, gw)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestGatewayUseCase_Get(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.Must(uuid.NewV7())

	t.Run("Success_MemberCanView", func(t *testing.T) {
		f := newFixture()
		stored := storedGateway(tenantID)
		f.gatewayRepo.On("Get", ctx, stored.ID).Return(stored, nil).Once()

		gw, err := f.uc.Get(ctx, tenantMember(tenantID), stored.ID)

		require.NoError(t, err)
		assert.Equal(t, stored, gw)
	})

	t.Run("Error_OtherTenant", func(t *testing.T) {
		f := newFixture()
		stored := storedGateway(tenantID)
		f.gatewayRepo.On("Get", ctx, stored.ID).Return(stored, nil).Once()

		gw, err := f.uc.Get(ctx, tenantAdmin(uuid.Must(uuid.NewV7())), stored.ID)

		assert.Nil(t, gw)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		f := newFixture()
		f.gatewayRepo.On("Get", ctx, "0102030405060708").Return(nil, gatewayDomain.ErrGatewayNotFound).Once()

		_, err := f.uc.Get(ctx, &authDomain.Claims{Admin: true}, "0102030405060708")

		assert.ErrorIs(t, err, gatewayDomain.ErrGatewayNotFound)
	})
}

func TestGatewayUseCase_List(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		gateways := []*gatewayDomain.Gateway{storedGateway(tenantID)}
		f.gatewayRepo.On("ListByTenant", ctx, tenantID, 0, 10).Return(gateways, nil).Once()

		result, err := f.uc.List(ctx, tenantMember(tenantID), tenantID, 0, 10)

		require.NoError(t, err)
		assert.Len(t, result, 1)
	})

	t.Run("Error_NotMember", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.List(ctx, tenantMember(uuid.Must(uuid.NewV7())), tenantID, 0, 10)

		assert.ErrorIs(t, err, gatewayDomain.ErrPermissionDenied)
		f.gatewayRepo.AssertNotCalled(t, "ListByTenant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
