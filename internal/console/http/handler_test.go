package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	authDomain "github.com/allisson/gatewayconsole/internal/auth/domain"
	authHTTP "github.com/allisson/gatewayconsole/internal/auth/http"
	"github.com/allisson/gatewayconsole/internal/authz"
	"github.com/allisson/gatewayconsole/internal/console"
	"github.com/allisson/gatewayconsole/internal/console/http/dto"
	gatewayDomain "github.com/allisson/gatewayconsole/internal/gateway/domain"
	usecaseMocks "github.com/allisson/gatewayconsole/internal/gateway/usecase/mocks"
)

var (
	org9 = uuid.MustParse("0195a2b4-0000-7000-8000-000000000009")
	org4 = uuid.MustParse("0195a2b4-0000-7000-8000-000000000004")
)

const (
	gw1      = "0102030405060708"
	editPath = "/v1/console/gateways/" + gw1 + "/edit"
)

const formBody = `{
	"id":"0102030405060708",
	"tenant_id":"0195a2b4-0000-7000-8000-000000000009",
	"name":"Updated",
	"location":{"latitude":52.37,"longitude":4.89,"altitude":12},
	"stats_interval_secs":30,
	"tags":{"env":"prod"}
}`

func init() {
	gin.SetMode(gin.TestMode)
}

func tenantAdminOf(tenantID uuid.UUID) *authDomain.Claims {
	return &authDomain.Claims{
		UserID:  uuid.Must(uuid.NewV7()),
		Tenants: map[uuid.UUID]authDomain.TenantRoles{tenantID: {IsAdmin: true}},
	}
}

func storedGateway() *gatewayDomain.Gateway {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &gatewayDomain.Gateway{
		ID:                gw1,
		TenantID:          org9,
		Name:              "Rooftop",
		StatsIntervalSecs: 30,
		Tags:              map[string]string{"env": "prod"},
		Properties:        map[string]string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

type testEnv struct {
	router  *gin.Engine
	backend *usecaseMocks.MockGatewayUseCase
	store   *console.AsyncGatewayStore
}

func newTestEnv(t *testing.T, claims *authDomain.Claims) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := usecaseMocks.NewMockGatewayUseCase(t)
	store := console.NewAsyncGatewayStore(backend, time.Second, logger)
	handler := NewConsoleHandler(backend, store, logger)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if claims != nil {
			c.Request = c.Request.WithContext(authHTTP.WithClaims(c.Request.Context(), claims))
		}
		c.Next()
	})
	router.GET("/v1/console/gateways/:gateway_id/edit", handler.EditFormHandler)
	router.POST("/v1/console/gateways/:gateway_id/edit", handler.SubmitEditHandler)

	t.Cleanup(store.Wait)
	return &testEnv{router: router, backend: backend, store: store}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestConsoleHandler_EditForm(t *testing.T) {
	t.Run("EnabledForTenantAdmin", func(t *testing.T) {
		claims := tenantAdminOf(org9)
		env := newTestEnv(t, claims)
		env.backend.On("Get", mock.Anything, claims, gw1).Return(storedGateway(), nil).Once()

		w := env.do(http.MethodGet, editPath, "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.EditFormResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Disabled)
		assert.True(t, resp.Update)
		assert.Equal(t, gw1, resp.InitialValues.ID)
		assert.Equal(t, org9.String(), resp.InitialValues.TenantID)
		assert.Equal(t, "Rooftop", resp.InitialValues.Name)
	})

	t.Run("DisabledForAdminOfAnotherTenant", func(t *testing.T) {
		claims := tenantAdminOf(org4)
		env := newTestEnv(t, claims)
		env.backend.On("Get", mock.Anything, claims, gw1).Return(storedGateway(), nil).Once()

		w := env.do(http.MethodGet, editPath, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"disabled":true`)
		assert.Contains(t, w.Body.String(), `"update":true`)
	})

	t.Run("UppercaseIDIsNormalized", func(t *testing.T) {
		claims := &authDomain.Claims{Admin: true}
		env := newTestEnv(t, claims)
		env.backend.On("Get", mock.Anything, claims, "0a0b0c0d0e0f0102").Return(storedGateway(), nil).Once()

		w := env.do(http.MethodGet, "/v1/console/gateways/0A0B0C0D0E0F0102/edit", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		claims := &authDomain.Claims{Admin: true}
		env := newTestEnv(t, claims)
		env.backend.On("Get", mock.Anything, claims, gw1).Return(nil, gatewayDomain.ErrGatewayNotFound).Once()

		w := env.do(http.MethodGet, editPath, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ForbiddenWithoutSession", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.backend.On("Get", mock.Anything, authz.Session(nil), gw1).
			Return(nil, gatewayDomain.ErrPermissionDenied).Once()

		w := env.do(http.MethodGet, editPath, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestConsoleHandler_SubmitEdit(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("RedirectsToDetailPage", func(t *testing.T) {
		claims := tenantAdminOf(org9)
		env := newTestEnv(t, claims)

		updated := storedGateway()
		updated.Name = "Updated"
		env.backend.On("Update", mock.Anything, claims, mock.MatchedBy(func(req *gatewayDomain.UpdateGatewayRequest) bool {
			gw := req.Gateway
			return gw.ID == gw1 && gw.TenantID == org9 && gw.Name == "Updated" && gw.Tags["env"] == "prod"
		})).Return(updated, nil).Once()

		w := env.do(http.MethodPost, editPath, formBody)

		wantPath := "/tenants/" + org9.String() + "/gateways/" + gw1
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, wantPath, w.Header().Get("Location"))
		assert.JSONEq(t, `{"redirect":"`+wantPath+`"}`, w.Body.String())
	})

	t.Run("BackendFailureIsReported", func(t *testing.T) {
		claims := tenantAdminOf(org4)
		env := newTestEnv(t, claims)
		env.backend.On("Update", mock.Anything, claims, mock.Anything).
			Return(nil, gatewayDomain.ErrPermissionDenied).Once()

		w := env.do(http.MethodPost, editPath, formBody)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Location"))
	})

	t.Run("TenantChangeIsReported", func(t *testing.T) {
		claims := &authDomain.Claims{Admin: true}
		env := newTestEnv(t, claims)
		env.backend.On("Update", mock.Anything, claims, mock.Anything).
			Return(nil, gatewayDomain.ErrTenantChangeNotAllowed).Once()

		w := env.do(http.MethodPost, editPath, formBody)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("UnexpectedFailureIsInternal", func(t *testing.T) {
		claims := &authDomain.Claims{Admin: true}
		env := newTestEnv(t, claims)
		env.backend.On("Update", mock.Anything, claims, mock.Anything).Return(nil, assert.AnError).Once()

		w := env.do(http.MethodPost, editPath, formBody)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		env := newTestEnv(t, &authDomain.Claims{Admin: true})
		w := env.do(http.MethodPost, editPath, `{"id":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("InvalidForm", func(t *testing.T) {
		env := newTestEnv(t, &authDomain.Claims{Admin: true})
		w := env.do(http.MethodPost, editPath, `{"id":"0102030405060708","tenant_id":"org-9","name":""}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "validation_error")
	})

	t.Run("PathMismatch", func(t *testing.T) {
		env := newTestEnv(t, &authDomain.Claims{Admin: true})
		w := env.do(http.MethodPost, "/v1/console/gateways/0a0b0c0d0e0f0102/edit", formBody)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "does not match the path")
	})
}
