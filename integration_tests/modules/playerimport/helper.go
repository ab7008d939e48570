package playerimportintegrationtests

import (
	"context"
	"log"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	importservice "github.com/rosterhq/roster-import/app/modules/playerimport/application"
	importdb "github.com/rosterhq/roster-import/app/modules/playerimport/infrastructure/repositories"
	"github.com/rosterhq/roster-import/integration_tests/testutils"
)

// Global variables for the test environment, initialized once.
var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

// TestDeps holds dependencies needed by individual tests.
type TestDeps struct {
	Ctx       context.Context
	Repo      importdb.Repository
	BunDB     *bun.DB
	Service   importservice.Service
	Generator *testutils.TestDataGenerator
}

func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()

	testEnvOnce.Do(func() {
		log.Println("Initializing player import test environment...")
		env, err := testutils.NewTestEnvironment(t)
		if err != nil {
			testEnvErr = err
			log.Printf("Failed to set up test environment: %v", err)
		} else {
			log.Println("Player import test environment initialized successfully.")
			testEnv = env
		}
	})

	if testEnvErr != nil {
		t.Fatalf("Player import test environment initialization failed: %v", testEnvErr)
	}

	if testEnv == nil {
		t.Fatalf("Player import test environment not initialized")
	}

	return testEnv
}

func SetupTestImportService(t *testing.T) TestDeps {
	t.Helper()

	env := GetTestEnv(t)

	// Reset environment for clean state
	resetCtx, resetCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer resetCancel()
	if err := env.Reset(resetCtx); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	repo := importdb.NewRepository(env.DB)

	testLogger := slog.New(slog.NewTextHandler(testWriter{t: t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	noOpTracer := noop.NewTracerProvider().Tracer("test_import_service")

	service := importservice.NewImportService(
		repo,
		testLogger,
		nil, // metrics not needed for these tests
		noOpTracer,
		env.DB,
		importservice.Limits{},
	)

	return TestDeps{
		Ctx:       env.Ctx,
		Repo:      repo,
		BunDB:     env.DB,
		Service:   service,
		Generator: testutils.NewTestDataGenerator(),
	}
}

// testWriter wraps a testing.T to implement io.Writer for slog
type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (n int, err error) {
	tw.t.Log(string(p))
	return len(p), nil
}
