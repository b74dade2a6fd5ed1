package testutil

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/pkg/errors"
)

// MemoryEmployees is an in-memory employee store for service and handler tests
type MemoryEmployees struct {
	mu    sync.Mutex
	byID  map[string]domain.Employee
	seq   int
	InUse map[string]bool
	Err   error
}

// NewMemoryEmployees seeds a store with emps
func NewMemoryEmployees(emps ...domain.Employee) *MemoryEmployees {
	f := &MemoryEmployees{byID: make(map[string]domain.Employee), InUse: make(map[string]bool)}
	for _, e := range emps {
		f.byID[e.ID] = e
	}
	return f
}

func (f *MemoryEmployees) Create(_ context.Context, emp *domain.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	emp.ID = "emp-" + strconv.Itoa(f.seq)
	f.byID[emp.ID] = *emp
	return nil
}

func (f *MemoryEmployees) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	emp, ok := f.byID[id]
	if !ok {
		return nil, errors.NotFound("employee")
	}
	return &emp, nil
}

func (f *MemoryEmployees) List(_ context.Context) ([]domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]domain.Employee, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (f *MemoryEmployees) Update(_ context.Context, emp *domain.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[emp.ID]; !ok {
		return errors.NotFound("employee")
	}
	f.byID[emp.ID] = *emp
	return nil
}

func (f *MemoryEmployees) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return errors.NotFound("employee")
	}
	if f.InUse[id] {
		return errors.EmployeeInUse()
	}
	delete(f.byID, id)
	return nil
}

// MemoryTimeEntries is an in-memory time entry store. List filters like the
// SQL repository and orders rows by date.
type MemoryTimeEntries struct {
	mu        sync.Mutex
	Rows      []domain.TimeEntry
	seq       int
	Err       error
	LastQuery *domain.ReportFilter
}

func (f *MemoryTimeEntries) CreateMany(_ context.Context, entries []*domain.TimeEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	for _, e := range entries {
		f.seq++
		e.ID = "te-" + strconv.Itoa(f.seq)
		f.Rows = append(f.Rows, *e)
	}
	return nil
}

func (f *MemoryTimeEntries) GetByID(_ context.Context, id string) (*domain.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.Rows {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, errors.NotFound("time_entry")
}

func (f *MemoryTimeEntries) List(_ context.Context, filter domain.ReportFilter) ([]domain.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastQuery = &filter

	out := make([]domain.TimeEntry, 0)
	for _, r := range f.Rows {
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.StartDate != nil && r.Date.Before(filter.StartDate.Time) {
			continue
		}
		if filter.EndDate != nil && r.Date.After(filter.EndDate.Time) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	return out, nil
}

func (f *MemoryTimeEntries) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.Rows {
		if r.ID == id {
			f.Rows = append(f.Rows[:i], f.Rows[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("time_entry")
}

// PassthroughTx runs fn directly and counts calls
type PassthroughTx struct {
	Calls int
}

func (f *PassthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.Calls++
	return fn(ctx)
}
