package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/pkg/database"
	"github.com/controlhoras/hours-backend/pkg/errors"
)

const employeeColumns = `id, first_name, last_name, created_at, updated_at`

// EmployeeRepository handles employee persistence
type EmployeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *database.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create inserts emp, assigning an ID when it has none
func (r *EmployeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	if emp.ID == "" {
		emp.ID = uuid.New().String()
	}

	query := `
		INSERT INTO employees (id, first_name, last_name)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err := r.db.Q(ctx).QueryRowxContext(ctx, query, emp.ID, emp.FirstName, emp.LastName).
		Scan(&emp.CreatedAt, &emp.UpdatedAt)
	return database.MapError(err, "employee", "failed to create employee")
}

// GetByID gets an employee by ID
func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	var emp domain.Employee

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.db.Q(ctx), &emp, query, id); err != nil {
		return nil, database.MapError(err, "employee", "failed to get employee")
	}

	return &emp, nil
}

// List returns every employee ordered by last name, then first name
func (r *EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	employees := make([]domain.Employee, 0)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY last_name, first_name, id`
	if err := sqlx.SelectContext(ctx, r.db.Q(ctx), &employees, query); err != nil {
		return nil, database.MapError(err, "employee", "failed to list employees")
	}

	return employees, nil
}

// Update stores new names for emp
func (r *EmployeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := r.db.Q(ctx).QueryRowxContext(ctx, query, emp.ID, emp.FirstName, emp.LastName).
		Scan(&emp.CreatedAt, &emp.UpdatedAt)
	return database.MapError(err, "employee", "failed to update employee")
}

// Delete removes an employee. It fails with a conflict while time entries
// still reference the employee.
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Q(ctx).ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return database.MapError(err, "employee", "failed to delete employee")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Internal("failed to delete employee").WithCause(err)
	}
	if rows == 0 {
		return errors.NotFound("employee")
	}

	return nil
}
