package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"

	musicmigrations "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/music-backend/config"
	"github.com/Black-And-White-Club/music-backend/db/bundb"
	"github.com/Black-And-White-Club/music-backend/integration_tests/containers"
)

// TestEnvironment holds all resources needed for integration testing
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	DB            *bun.DB
	Config        *config.Config
}

// NewTestEnvironment starts Postgres, connects through the pgx stdlib driver and
// applies the music migrations.
func NewTestEnvironment() (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())

	env := &TestEnvironment{
		Ctx:           ctx,
		CancelContext: cancel,
	}

	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}
	env.PgContainer = pgContainer

	sqlDB, err := sql.Open("pgx", pgConnStr)
	if err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to open sql DB connection: %w", err)
	}
	env.DB = bundb.BunDB(sqlDB)

	group, err := musicmigrations.Apply(ctx, env.DB)
	if err != nil {
		env.Cleanup()
		return nil, err
	}
	log.Printf("Applied music migrations: %s", group)

	env.Config = &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverPostgres, DSN: pgConnStr},
		HTTP: config.HTTPConfig{
			AllowedOrigins:  []string{"http://localhost:5173"},
			ShutdownTimeout: 5 * time.Second,
		},
		Observability: config.ObservabilityConfig{Environment: "test", LogLevel: "error"},
	}

	return env, nil
}

// Reset empties every music table and restarts the id sequences.
func (env *TestEnvironment) Reset(ctx context.Context) error {
	return CleanMusicIntegrationTables(ctx, env.DB)
}

// CheckContainerHealth verifies that the container is running and responsive
func (env *TestEnvironment) CheckContainerHealth() error {
	ctx, cancel := context.WithTimeout(env.Ctx, 10*time.Second)
	defer cancel()

	if env.PgContainer != nil {
		state, err := env.PgContainer.State(ctx)
		if err != nil || !state.Running {
			return fmt.Errorf("PostgreSQL container not healthy: err=%v", err)
		}
	}

	if env.DB != nil {
		var result int
		if err := env.DB.NewSelect().ColumnExpr("1").Scan(ctx, &result); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
	}
	return nil
}

// Cleanup tears down all resources created for testing
func (env *TestEnvironment) Cleanup() {
	log.Println("Cleaning up test environment...")
	if env.CancelContext != nil {
		env.CancelContext()
	}
	if env.DB != nil {
		env.DB.Close()
		log.Println("DB connection closed.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating Postgres container: %v", err)
		} else {
			log.Println("PostgreSQL container terminated.")
		}
	}
	log.Println("Cleanup complete.")
}
