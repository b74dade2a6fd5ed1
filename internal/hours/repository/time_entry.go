package repository

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/pkg/database"
	"github.com/controlhoras/hours-backend/pkg/errors"
)

const timeEntrySelect = `
	SELECT t.id, t.employee_id, CONCAT(e.first_name, ' ', e.last_name) AS employee_name,
	       t.date, t.entry_time, t.exit_time, t.day_type, t.worked_on_holiday, t.created_at
	FROM time_entries t
	JOIN employees e ON e.id = t.employee_id
`

// TimeEntryRepository handles time entry persistence
type TimeEntryRepository struct {
	db *database.DB
}

// NewTimeEntryRepository creates a new time entry repository
func NewTimeEntryRepository(db *database.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

// CreateMany inserts all entries in one transaction. IDs are assigned where missing.
func (r *TimeEntryRepository) CreateMany(ctx context.Context, entries []*domain.TimeEntry) error {
	query := `
		INSERT INTO time_entries (id, employee_id, date, entry_time, exit_time, day_type, worked_on_holiday)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	return r.db.Transaction(ctx, func(ctx context.Context) error {
		for _, e := range entries {
			if e.ID == "" {
				e.ID = uuid.New().String()
			}

			err := r.db.Q(ctx).QueryRowxContext(ctx, query,
				e.ID, e.EmployeeID, e.Date, e.EntryTime, e.ExitTime, e.DayType, e.WorkedOnHoliday,
			).Scan(&e.CreatedAt)
			if err != nil {
				return database.MapError(err, "time_entry", "failed to create time entry")
			}
		}
		return nil
	})
}

// GetByID gets a time entry with the employee's display name
func (r *TimeEntryRepository) GetByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	var entry domain.TimeEntry

	if err := sqlx.GetContext(ctx, r.db.Q(ctx), &entry, timeEntrySelect+` WHERE t.id = $1`, id); err != nil {
		return nil, database.MapError(err, "time_entry", "failed to get time entry")
	}

	return &entry, nil
}

// List returns the entries matching filter, joined with the employee's
// display name, ordered by date and entry time.
func (r *TimeEntryRepository) List(ctx context.Context, filter domain.ReportFilter) ([]domain.TimeEntry, error) {
	whereClause := " WHERE 1=1"
	args := []interface{}{}
	argNum := 1

	if filter.EmployeeID != nil {
		whereClause += " AND t.employee_id = $" + strconv.Itoa(argNum)
		args = append(args, *filter.EmployeeID)
		argNum++
	}
	if filter.StartDate != nil {
		whereClause += " AND t.date >= $" + strconv.Itoa(argNum)
		args = append(args, *filter.StartDate)
		argNum++
	}
	if filter.EndDate != nil {
		whereClause += " AND t.date <= $" + strconv.Itoa(argNum)
		args = append(args, *filter.EndDate)
	}

	query := timeEntrySelect + whereClause + `
		ORDER BY t.date ASC, t.entry_time ASC NULLS FIRST, t.created_at ASC
	`

	entries := make([]domain.TimeEntry, 0)
	if err := sqlx.SelectContext(ctx, r.db.Q(ctx), &entries, query, args...); err != nil {
		return nil, database.MapError(err, "time_entry", "failed to list time entries")
	}

	return entries, nil
}

// Delete removes a single time entry
func (r *TimeEntryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Q(ctx).ExecContext(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return database.MapError(err, "time_entry", "failed to delete time entry")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Internal("failed to delete time entry").WithCause(err)
	}
	if rows == 0 {
		return errors.NotFound("time_entry")
	}

	return nil
}
