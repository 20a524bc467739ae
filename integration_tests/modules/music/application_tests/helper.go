// integration_tests/modules/music/application_tests/helper.go
package musicintegrationtests

import (
	"context"
	"io"
	"log/slog"
	"testing"

	musicservice "github.com/Black-And-White-Club/music-backend/app/modules/music/application"
	musicmetrics "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/metrics"
	musicdb "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories"
	"github.com/Black-And-White-Club/music-backend/integration_tests/testutils"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

// testEnv is the shared test environment managed by TestMain.
var testEnv *testutils.TestEnvironment

// TestDeps holds dependencies needed by individual tests.
type TestDeps struct {
	Ctx     context.Context
	BunDB   *bun.DB
	Service musicservice.Service
	Data    *testutils.TestDataGenerator
}

// SetupTestMusicService empties the music tables and returns a service bound to the shared database.
func SetupTestMusicService(t *testing.T) TestDeps {
	t.Helper()

	if err := testEnv.CheckContainerHealth(); err != nil {
		t.Fatalf("test environment unhealthy: %v", err)
	}
	if err := testEnv.Reset(testEnv.Ctx); err != nil {
		t.Fatalf("failed to reset music tables: %v", err)
	}

	db := testEnv.DB
	service := musicservice.NewMusicService(
		musicdb.NewBandRepository(db),
		musicdb.NewMusicianRepository(db),
		musicdb.NewMembershipRepository(db),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		musicmetrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
		db,
	)

	data := testutils.NewTestDataGenerator()
	t.Logf("data generator seed: %d", data.Seed())

	return TestDeps{
		Ctx:     testEnv.Ctx,
		BunDB:   db,
		Service: service,
		Data:    data,
	}
}

func createBand(t *testing.T, deps TestDeps) *musicdb.Band {
	t.Helper()
	band, err := deps.Service.CreateBand(deps.Ctx, deps.Data.GenerateBand())
	if err != nil {
		t.Fatalf("failed to create band: %v", err)
	}
	return band
}

func createMusician(t *testing.T, deps TestDeps) *musicdb.Musician {
	t.Helper()
	musician, err := deps.Service.CreateMusician(deps.Ctx, deps.Data.GenerateMusician())
	if err != nil {
		t.Fatalf("failed to create musician: %v", err)
	}
	return musician
}

func join(t *testing.T, deps TestDeps, bandID, musicianID int64) *musicdb.Membership {
	t.Helper()
	m, err := deps.Service.CreateMembership(deps.Ctx, musicservice.MembershipCreate{
		BandID:     bandID,
		MusicianID: musicianID,
		Instrument: deps.Data.GenerateInstrument(),
	})
	if err != nil {
		t.Fatalf("failed to create membership: %v", err)
	}
	return m
}

func countRows(t *testing.T, deps TestDeps, table string) int {
	t.Helper()
	n, err := testutils.CountRows(deps.Ctx, deps.BunDB, table)
	if err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
