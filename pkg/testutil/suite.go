package testutil

import (
	"context"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/controlhoras/hours-backend/pkg/database"
	"github.com/controlhoras/hours-backend/pkg/logger"
)

var (
	// Global test container (shared across all integration tests)
	globalContainer *PostgresContainer
	containerOnce   sync.Once
	containerErr    error
)

// IntegrationSuite provides a base for integration tests with real PostgreSQL
type IntegrationSuite struct {
	Container *PostgresContainer
	DB        *database.DB
	Fixtures  *FixtureFactory
	Logger    *logger.Logger
}

// NewIntegrationSuite starts (or reuses) the shared container and applies
// the schema. Call it from TestMain.
//
//	var suite *testutil.IntegrationSuite
//
//	func TestMain(m *testing.M) {
//	    ctx := context.Background()
//	    var err error
//	    suite, err = testutil.NewIntegrationSuite(ctx)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer testutil.TerminateContainer(ctx)
//	    os.Exit(m.Run())
//	}
//
//	func TestSomething(t *testing.T) {
//	    ctx := context.Background()
//	    suite.Reset(t, ctx)
//	    emp := suite.Fixtures.InsertEmployee(t, ctx, suite.DB)
//	}
func NewIntegrationSuite(ctx context.Context) (*IntegrationSuite, error) {
	container, err := getOrCreateContainer(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewWithWriter("test", io.Discard)
	db, err := database.NewWithDSN(container.DSN, log)
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &IntegrationSuite{
		Container: container,
		DB:        db,
		Fixtures:  NewFixtureFactory(),
		Logger:    log,
	}, nil
}

// getOrCreateContainer returns the shared test container
func getOrCreateContainer(ctx context.Context) (*PostgresContainer, error) {
	containerOnce.Do(func() {
		globalContainer, containerErr = NewPostgresContainer(ctx, DefaultPostgresConfig())
	})

	return globalContainer, containerErr
}

// Reset empties every table so a test starts from a clean database
func (s *IntegrationSuite) Reset(t *testing.T, ctx context.Context) {
	t.Helper()

	if _, err := s.DB.ExecContext(ctx, `TRUNCATE time_entries, employees`); err != nil {
		t.Fatalf("failed to reset database: %v", err)
	}
}

// Cleanup closes the suite's database connection
func (s *IntegrationSuite) Cleanup(ctx context.Context) error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// TerminateContainer stops the shared container
func TerminateContainer(ctx context.Context) {
	if globalContainer != nil {
		_ = globalContainer.Terminate(ctx)
	}
}

// IsCI reports whether the tests run in a CI environment
func IsCI() bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}
