package service

import (
	"context"
	"strings"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/internal/hours/events"
	"github.com/controlhoras/hours-backend/pkg/errors"
	"github.com/controlhoras/hours-backend/pkg/i18n"
	"github.com/controlhoras/hours-backend/pkg/logger"
)

const maxNameLength = 100

// EmployeeInput carries the editable fields of an employee
type EmployeeInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

// EmployeeService handles employee business logic
type EmployeeService struct {
	employees EmployeeStore
	publisher *events.HoursEventPublisher
	logger    *logger.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employees EmployeeStore, publisher *events.HoursEventPublisher, log *logger.Logger) *EmployeeService {
	return &EmployeeService{
		employees: employees,
		publisher: publisher,
		logger:    log.WithComponent("employee_service"),
	}
}

// Create creates a new employee
func (s *EmployeeService) Create(ctx context.Context, input EmployeeInput) (*domain.Employee, error) {
	emp := &domain.Employee{}
	if err := applyEmployeeInput(ctx, emp, input); err != nil {
		return nil, err
	}

	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, err
	}

	s.publisher.EmployeeCreated(ctx, emp)

	logger.FromContext(ctx, s.logger).Info().
		Str("employee_id", emp.ID).
		Msg("employee created")

	return emp, nil
}

// Get gets an employee by ID
func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

// List lists employees ordered by last name, then first name
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.List(ctx)
}

// Update replaces the names of an existing employee
func (s *EmployeeService) Update(ctx context.Context, id string, input EmployeeInput) (*domain.Employee, error) {
	emp := &domain.Employee{ID: id}
	if err := applyEmployeeInput(ctx, emp, input); err != nil {
		return nil, err
	}

	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, err
	}

	s.publisher.EmployeeUpdated(ctx, emp)

	logger.FromContext(ctx, s.logger).Info().
		Str("employee_id", emp.ID).
		Msg("employee updated")

	return emp, nil
}

// Delete deletes an employee with no recorded time entries
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.EmployeeDeleted(ctx, id)

	logger.FromContext(ctx, s.logger).Info().
		Str("employee_id", id).
		Msg("employee deleted")

	return nil
}

// applyEmployeeInput trims names and checks them before they reach the database
func applyEmployeeInput(ctx context.Context, emp *domain.Employee, input EmployeeInput) error {
	l := i18n.LocalizerFromContext(ctx)
	details := make(map[string]string)

	emp.FirstName = strings.TrimSpace(input.FirstName)
	emp.LastName = strings.TrimSpace(input.LastName)

	checkName := func(field, value string) {
		switch {
		case value == "":
			details[field] = l.T("validation.required")
		case len([]rune(value)) > maxNameLength:
			details[field] = l.T("validation.max", map[string]string{"param": "100"})
		}
	}
	checkName("first_name", emp.FirstName)
	checkName("last_name", emp.LastName)

	if len(details) > 0 {
		return errors.Validation(details)
	}
	return nil
}
