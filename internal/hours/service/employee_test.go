package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/internal/hours/events"
	"github.com/controlhoras/hours-backend/internal/hours/service"
	"github.com/controlhoras/hours-backend/pkg/errors"
	"github.com/controlhoras/hours-backend/pkg/i18n"
	"github.com/controlhoras/hours-backend/pkg/logger"
	"github.com/controlhoras/hours-backend/pkg/messaging"
	"github.com/controlhoras/hours-backend/pkg/testutil"
)

func newEmployeeService(store *testutil.MemoryEmployees) (*service.EmployeeService, *testutil.MockPublisher) {
	pub := testutil.NewMockPublisher()
	return service.NewEmployeeService(store, events.NewHoursEventPublisher(pub, logger.Nop()), logger.Nop()), pub
}

func TestEmployeeService_Create(t *testing.T) {
	svc, pub := newEmployeeService(testutil.NewMemoryEmployees())

	emp, err := svc.Create(context.Background(), service.EmployeeInput{FirstName: "  Ana ", LastName: "Pérez"})
	require.NoError(t, err)

	assert.NotEmpty(t, emp.ID)
	assert.Equal(t, "Ana", emp.FirstName)

	event, ok := pub.Find(messaging.EventEmployeeCreated)
	require.True(t, ok)
	assert.Equal(t, messaging.EmployeeCreatedEvent{EmployeeID: emp.ID, Name: "Ana Pérez"}, event.Payload)
}

func TestEmployeeService_Create_Validation(t *testing.T) {
	svc, pub := newEmployeeService(testutil.NewMemoryEmployees())
	ctx := i18n.WithLocale(context.Background(), "es")

	_, err := svc.Create(ctx, service.EmployeeInput{FirstName: " ", LastName: strings.Repeat("x", 101)})

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "Este campo es obligatorio", appErr.Details["first_name"])
	assert.Equal(t, "Debe tener como máximo 100 caracteres", appErr.Details["last_name"])
	pub.AssertNoEventsPublished(t)
}

func TestEmployeeService_PublishFailureDoesNotFail(t *testing.T) {
	svc, pub := newEmployeeService(testutil.NewMemoryEmployees())
	pub.Err = assert.AnError

	_, err := svc.Create(context.Background(), service.EmployeeInput{FirstName: "Ana", LastName: "Pérez"})
	assert.NoError(t, err)
}

func TestEmployeeService_UpdateAndGet(t *testing.T) {
	store := testutil.NewMemoryEmployees(domain.Employee{ID: "e1", FirstName: "Ana", LastName: "Pérez"})
	svc, pub := newEmployeeService(store)
	ctx := context.Background()

	_, err := svc.Update(ctx, "e1", service.EmployeeInput{FirstName: "Ana", LastName: "Gómez"})
	require.NoError(t, err)
	pub.AssertEventPublished(t, messaging.EventEmployeeUpdated)

	emp, err := svc.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Gómez", emp.LastName)

	_, err = svc.Update(ctx, "missing", service.EmployeeInput{FirstName: "A", LastName: "B"})
	assert.True(t, errors.IsNotFound(err))
}

func TestEmployeeService_List(t *testing.T) {
	store := testutil.NewMemoryEmployees(
		domain.Employee{ID: "e1", FirstName: "Ana", LastName: "Pérez"},
		domain.Employee{ID: "e2", FirstName: "Luis", LastName: "Alvarez"},
	)
	svc, _ := newEmployeeService(store)

	employees, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "e2", employees[0].ID)
}

func TestEmployeeService_Delete(t *testing.T) {
	store := testutil.NewMemoryEmployees(
		domain.Employee{ID: "e1", FirstName: "Ana", LastName: "Pérez"},
		domain.Employee{ID: "e2", FirstName: "Luis", LastName: "Alvarez"},
	)
	store.InUse["e2"] = true
	svc, pub := newEmployeeService(store)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "e1"))
	event, ok := pub.Find(messaging.EventEmployeeDeleted)
	require.True(t, ok)
	assert.Equal(t, messaging.EmployeeDeletedEvent{EmployeeID: "e1"}, event.Payload)

	pub.Reset()
	err := svc.Delete(ctx, "e2")
	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "EMPLOYEE_IN_USE", appErr.Code)
	pub.AssertNoEventsPublished(t)
}
