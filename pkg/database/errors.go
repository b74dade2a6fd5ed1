package database

import (
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/lib/pq"

	"github.com/controlhoras/hours-backend/pkg/errors"
)

// Postgres error codes handled by MapPQError
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// MapPQError converts a PostgreSQL error to an AppError with meaningful messages.
// Returns nil if the error is not a pq.Error or the code is not handled.
func MapPQError(err error) *errors.AppError {
	var pqErr *pq.Error
	if !stderrors.As(err, &pqErr) {
		return nil
	}

	switch string(pqErr.Code) {
	case codeCheckViolation:
		return mapCheckConstraint(pqErr)

	case codeUniqueViolation:
		return errors.Duplicate(resourceForTable(pqErr.Table)).WithCause(err)

	case codeForeignKeyViolation:
		// Deleting a parent row reports "update or delete on table ..."
		if strings.HasPrefix(pqErr.Message, "update or delete") {
			if strings.Contains(pqErr.Constraint, "employee") {
				return errors.EmployeeInUse().WithCause(err)
			}
			return errors.Conflict("record is still referenced").WithCause(err)
		}
		if strings.Contains(pqErr.Constraint, "employee") {
			return errors.InvalidReference("employee").WithCause(err)
		}
		return errors.BadRequest("referenced record does not exist").WithCause(err)

	case codeNotNullViolation:
		col := pqErr.Column
		if col == "" {
			col = "required field"
		}
		return errors.Validation(map[string]string{
			col: "must not be empty",
		})

	default:
		return nil
	}
}

// MapError maps driver errors to AppErrors. sql.ErrNoRows becomes a not found
// error for resource; unmapped errors become an internal error with message.
func MapError(err error, resource, message string) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NotFound(resource)
	}
	if appErr := MapPQError(err); appErr != nil {
		return appErr
	}
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return errors.Internal(message).WithCause(err)
}

// mapCheckConstraint maps specific CHECK constraint names to user-friendly messages.
func mapCheckConstraint(pqErr *pq.Error) *errors.AppError {
	constraint := pqErr.Constraint

	switch {
	case strings.Contains(constraint, "day_type_valid"):
		return errors.Validation(map[string]string{
			"day_type": "must be one of: Unjustified Absence, Justified Absence, Suspension, Vacation, Holiday, Rest, Work",
		})

	case strings.Contains(constraint, "first_name"):
		return errors.Validation(map[string]string{"first_name": "must not be blank"})

	case strings.Contains(constraint, "last_name"):
		return errors.Validation(map[string]string{"last_name": "must not be blank"})

	default:
		return errors.BadRequest("data validation failed: " + constraint)
	}
}

func resourceForTable(table string) string {
	switch table {
	case "employees":
		return "employee"
	case "time_entries":
		return "time_entry"
	default:
		return "record"
	}
}
