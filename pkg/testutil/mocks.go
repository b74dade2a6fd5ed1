package testutil

import (
	"context"
	"database/sql/driver"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/controlhoras/hours-backend/pkg/database"
	"github.com/controlhoras/hours-backend/pkg/logger"
)

// MockDB wraps sqlmock for easier testing
type MockDB struct {
	DB   *database.DB
	Raw  *sqlx.DB
	Mock sqlmock.Sqlmock
}

// NewMockDB creates a mock database for repository unit tests. The
// connection is closed when the test finishes.
//
//	mockDB := testutil.NewMockDB(t)
//	mockDB.ExpectQuery("SELECT id").WillReturnRows(...)
//	repo := repository.NewEmployeeRepository(mockDB.DB)
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	raw := sqlx.NewDb(db, "postgres")
	t.Cleanup(func() { _ = raw.Close() })

	return &MockDB{
		DB:   database.Wrap(raw, logger.Nop()),
		Raw:  raw,
		Mock: mock,
	}
}

// ExpectQuery sets up an expected query matched literally
func (m *MockDB) ExpectQuery(query string) *sqlmock.ExpectedQuery {
	return m.Mock.ExpectQuery(regexp.QuoteMeta(query))
}

// ExpectExec sets up an expected exec matched literally
func (m *MockDB) ExpectExec(query string) *sqlmock.ExpectedExec {
	return m.Mock.ExpectExec(regexp.QuoteMeta(query))
}

// ExpectBegin sets up an expected transaction begin
func (m *MockDB) ExpectBegin() *sqlmock.ExpectedBegin {
	return m.Mock.ExpectBegin()
}

// ExpectCommit sets up an expected commit
func (m *MockDB) ExpectCommit() *sqlmock.ExpectedCommit {
	return m.Mock.ExpectCommit()
}

// ExpectRollback sets up an expected rollback
func (m *MockDB) ExpectRollback() *sqlmock.ExpectedRollback {
	return m.Mock.ExpectRollback()
}

// ExpectationsWereMet verifies all expectations were met
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	if err := m.Mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// MockRows creates a new mock rows object
func MockRows(columns ...string) *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

// AnyTime is a matcher for any time.Time value
type AnyTime struct{}

// Match satisfies the sqlmock.Argument interface
func (a AnyTime) Match(v driver.Value) bool {
	_, ok := v.(time.Time)
	return ok
}

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// AnyUUID is a matcher for any UUID string
type AnyUUID struct{}

// Match satisfies the sqlmock.Argument interface
func (a AnyUUID) Match(v driver.Value) bool {
	s, ok := v.(string)
	return ok && uuidPattern.MatchString(s)
}

// MockPublisher records published events. It is safe for concurrent use.
type MockPublisher struct {
	mu              sync.Mutex
	PublishedEvents []PublishedEvent
	Err             error
}

// PublishedEvent represents an event that was published
type PublishedEvent struct {
	Type    string
	Payload interface{}
}

// NewMockPublisher creates a new mock publisher
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		PublishedEvents: make([]PublishedEvent, 0),
	}
}

// Publish records an event for later verification and returns m.Err
func (m *MockPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishedEvents = append(m.PublishedEvents, PublishedEvent{
		Type:    eventType,
		Payload: payload,
	})
	return m.Err
}

// Events returns a copy of the recorded events
func (m *MockPublisher) Events() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]PublishedEvent, len(m.PublishedEvents))
	copy(out, m.PublishedEvents)
	return out
}

// Find returns the first recorded event of eventType
func (m *MockPublisher) Find(eventType string) (PublishedEvent, bool) {
	for _, e := range m.Events() {
		if e.Type == eventType {
			return e, true
		}
	}
	return PublishedEvent{}, false
}

// AssertEventPublished checks if an event of the given type was published
func (m *MockPublisher) AssertEventPublished(t *testing.T, eventType string) {
	t.Helper()
	if _, ok := m.Find(eventType); !ok {
		t.Errorf("expected event %q to be published, but it wasn't", eventType)
	}
}

// AssertNoEventsPublished checks that no events were published
func (m *MockPublisher) AssertNoEventsPublished(t *testing.T) {
	t.Helper()
	if events := m.Events(); len(events) > 0 {
		t.Errorf("expected no events, but got %d: %+v", len(events), events)
	}
}

// Reset clears all published events
func (m *MockPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishedEvents = make([]PublishedEvent, 0)
}
