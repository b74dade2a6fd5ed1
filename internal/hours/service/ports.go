package service

import (
	"context"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
)

// EmployeeStore persists employees. Implemented by repository.EmployeeRepository.
type EmployeeStore interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id string) error
}

// TimeEntryStore persists time entries. Implemented by repository.TimeEntryRepository.
type TimeEntryStore interface {
	CreateMany(ctx context.Context, entries []*domain.TimeEntry) error
	GetByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	List(ctx context.Context, filter domain.ReportFilter) ([]domain.TimeEntry, error)
	Delete(ctx context.Context, id string) error
}

// Transactor runs fn inside a database transaction carried by its context.
// Implemented by database.DB.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
