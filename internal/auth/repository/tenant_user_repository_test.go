package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/gatewayconsole/internal/auth/domain"
	"github.com/allisson/gatewayconsole/internal/testutil"
)

var tenantUserColumns = []string{
	"tenant_id", "user_id", "is_admin", "is_device_admin", "is_gateway_admin", "created_at", "updated_at",
}

func newTestTenantUser() *authDomain.TenantUser {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &authDomain.TenantUser{
		TenantID:    uuid.Must(uuid.NewV7()),
		UserID:      uuid.Must(uuid.NewV7()),
		TenantRoles: authDomain.TenantRoles{IsGatewayAdmin: true},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestPostgreSQLTenantUserRepository(t *testing.T) {
	tu := newTestTenantUser()

	t.Run("Upsert", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectExec(`INSERT INTO tenant_users (.+) ON CONFLICT \(tenant_id, user_id\) DO UPDATE`).
			WithArgs(tu.TenantID, tu.UserID, false, false, true, tu.CreatedAt, tu.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewPostgreSQLTenantUserRepository(db).Upsert(context.Background(), tu))
	})

	t.Run("UpsertError", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectExec(`INSERT INTO tenant_users`).WillReturnError(assert.AnError)

		err := NewPostgreSQLTenantUserRepository(db).Upsert(context.Background(), tu)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("ListByUser", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`SELECT (.+) FROM tenant_users WHERE user_id = \$1`).
			WithArgs(tu.UserID).
			WillReturnRows(sqlmock.NewRows(tenantUserColumns).AddRow(
				tu.TenantID.String(), tu.UserID.String(), false, false, true, tu.CreatedAt, tu.UpdatedAt,
			))

		memberships, err := NewPostgreSQLTenantUserRepository(db).ListByUser(context.Background(), tu.UserID)
		require.NoError(t, err)
		require.Len(t, memberships, 1)
		assert.Equal(t, tu, memberships[0])
	})

	t.Run("ListByUserEmpty", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`SELECT (.+) FROM tenant_users`).
			WillReturnRows(sqlmock.NewRows(tenantUserColumns))

		memberships, err := NewPostgreSQLTenantUserRepository(db).ListByUser(context.Background(), tu.UserID)
		require.NoError(t, err)
		assert.Empty(t, memberships)
		assert.NotNil(t, memberships)
	})
}

func TestMySQLTenantUserRepository(t *testing.T) {
	tu := newTestTenantUser()
	tenantID, _ := tu.TenantID.MarshalBinary()
	userID, _ := tu.UserID.MarshalBinary()

	t.Run("Upsert", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectExec(`INSERT INTO tenant_users (.+) ON DUPLICATE KEY UPDATE`).
			WithArgs(tenantID, userID, false, false, true, tu.CreatedAt, tu.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewMySQLTenantUserRepository(db).Upsert(context.Background(), tu))
	})

	t.Run("ListByUser", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`SELECT (.+) FROM tenant_users WHERE user_id = \?`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(tenantUserColumns).AddRow(
				tenantID, userID, false, false, true, tu.CreatedAt, tu.UpdatedAt,
			))

		memberships, err := NewMySQLTenantUserRepository(db).ListByUser(context.Background(), tu.UserID)
		require.NoError(t, err)
		require.Len(t, memberships, 1)
		assert.Equal(t, tu, memberships[0])
	})
}
