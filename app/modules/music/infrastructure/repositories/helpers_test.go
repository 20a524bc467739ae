package musicdb_test

import (
	"context"
	"fmt"
	"testing"

	musicdb "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories"
	musicmigrations "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/music-backend/config"
	"github.com/Black-And-White-Club/music-backend/db/bundb"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// newTestDB opens a private in-memory sqlite database with the music migrations applied.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	ctx := context.Background()

	db, err := bundb.NewDB(ctx, config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name()),
	}, nil, false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migrator := migrate.NewMigrator(db, musicmigrations.Migrations)
	require.NoError(t, migrator.Init(ctx))
	_, err = migrator.Migrate(ctx)
	require.NoError(t, err)

	return db
}

type fixtures struct {
	bands       musicdb.BandRepository
	musicians   musicdb.MusicianRepository
	memberships musicdb.MembershipRepository
}

func newFixtures(db bun.IDB) fixtures {
	return fixtures{
		bands:       musicdb.NewBandRepository(db),
		musicians:   musicdb.NewMusicianRepository(db),
		memberships: musicdb.NewMembershipRepository(db),
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func int64Ptr(v int64) *int64 { return &v }
