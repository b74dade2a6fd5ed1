package database_test

import (
	"context"
	"database/sql"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/controlhoras/hours-backend/pkg/database"
	"github.com/controlhoras/hours-backend/pkg/errors"
	"github.com/controlhoras/hours-backend/pkg/testutil"
)

func TestMapPQError(t *testing.T) {
	tests := []struct {
		name   string
		err    *pq.Error
		code   string
		status int
	}{
		{
			name:   "delete referenced employee",
			err:    &pq.Error{Code: "23503", Message: `update or delete on table "employees" violates foreign key constraint`, Constraint: "time_entries_employee_id_fkey"},
			code:   "EMPLOYEE_IN_USE",
			status: http.StatusConflict,
		},
		{
			name:   "insert with unknown employee",
			err:    &pq.Error{Code: "23503", Message: `insert or update on table "time_entries" violates foreign key constraint`, Constraint: "time_entries_employee_id_fkey"},
			code:   "INVALID_REFERENCE",
			status: http.StatusBadRequest,
		},
		{
			name:   "unique",
			err:    &pq.Error{Code: "23505", Table: "employees"},
			code:   "DUPLICATE",
			status: http.StatusConflict,
		},
		{
			name:   "day type check",
			err:    &pq.Error{Code: "23514", Constraint: "time_entries_day_type_valid"},
			code:   "VALIDATION_ERROR",
			status: http.StatusBadRequest,
		},
		{
			name:   "not null",
			err:    &pq.Error{Code: "23502", Column: "date"},
			code:   "VALIDATION_ERROR",
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := database.MapPQError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, appErr.StatusCode)
		})
	}
}

func TestMapPQError_Unhandled(t *testing.T) {
	assert.Nil(t, database.MapPQError(stderrors.New("boom")))
	assert.Nil(t, database.MapPQError(&pq.Error{Code: "40001"}))
}

func TestMapError(t *testing.T) {
	assert.NoError(t, database.MapError(nil, "employee", "x"))
	assert.True(t, errors.IsNotFound(database.MapError(sql.ErrNoRows, "employee", "x")))

	err := database.MapError(stderrors.New("connection reset"), "employee", "failed to list employees")
	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
	assert.Equal(t, "failed to list employees", appErr.Message)

	inUse := errors.EmployeeInUse()
	assert.Same(t, inUse, database.MapError(inUse, "employee", "x"))
}

func TestTransaction_Commit(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	mockDB.ExpectBegin()
	mockDB.ExpectExec("DELETE FROM time_entries").WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectCommit()

	err := mockDB.DB.Transaction(context.Background(), func(ctx context.Context) error {
		_, err := mockDB.DB.Q(ctx).ExecContext(ctx, "DELETE FROM time_entries WHERE id = $1", "te-1")
		return err
	})

	require.NoError(t, err)
	mockDB.ExpectationsWereMet(t)
}

func TestTransaction_RollbackOnError(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	mockDB.ExpectBegin()
	mockDB.ExpectRollback()

	want := errors.NotFound("employee")
	err := mockDB.DB.Transaction(context.Background(), func(ctx context.Context) error {
		return want
	})

	assert.Equal(t, want, err)
	mockDB.ExpectationsWereMet(t)
}

func TestTransaction_NestedReusesOuter(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	mockDB.ExpectBegin()
	mockDB.ExpectCommit()

	calls := 0
	err := mockDB.DB.Transaction(context.Background(), func(ctx context.Context) error {
		return mockDB.DB.Transaction(ctx, func(inner context.Context) error {
			calls++
			assert.Equal(t, mockDB.DB.Q(ctx), mockDB.DB.Q(inner))
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	mockDB.ExpectationsWereMet(t)
}

func TestQ_WithoutTransaction(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	assert.Equal(t, database.Querier(mockDB.Raw), mockDB.DB.Q(context.Background()))
}

func TestSchema(t *testing.T) {
	schema := database.Schema()
	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS employees")
	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS time_entries")
	assert.Contains(t, schema, "ON DELETE RESTRICT")
}
