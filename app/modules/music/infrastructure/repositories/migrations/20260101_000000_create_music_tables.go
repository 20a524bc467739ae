package musicmigrations

import (
	"context"
	"fmt"

	musicdb "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(CreateMusicTables, DropMusicTables)
}

// CreateMusicTables creates bands, musicians and band_memberships with their indexes.
// Memberships reference both owners without ON DELETE CASCADE; the service purges them.
func CreateMusicTables(ctx context.Context, db *bun.DB) error {
	fmt.Println("Creating music tables...")

	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewCreateTable().
			Model((*musicdb.Band)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create bands table: %w", err)
		}

		if _, err := tx.NewCreateTable().
			Model((*musicdb.Musician)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create musicians table: %w", err)
		}

		if _, err := tx.NewCreateTable().
			Model((*musicdb.Membership)(nil)).
			IfNotExists().
			ForeignKey(`("band_id") REFERENCES "bands" ("id")`).
			ForeignKey(`("musician_id") REFERENCES "musicians" ("id")`).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create band_memberships table: %w", err)
		}

		indexes := []struct {
			model  any
			name   string
			column string
		}{
			{(*musicdb.Band)(nil), "idx_bands_genre", "genre"},
			{(*musicdb.Musician)(nil), "idx_musicians_name", "name"},
			{(*musicdb.Membership)(nil), "idx_band_memberships_band_id", "band_id"},
			{(*musicdb.Membership)(nil), "idx_band_memberships_musician_id", "musician_id"},
		}
		for _, idx := range indexes {
			if _, err := tx.NewCreateIndex().
				Model(idx.model).
				Index(idx.name).
				Column(idx.column).
				IfNotExists().
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.name, err)
			}
		}

		fmt.Println("Music tables created successfully!")
		return nil
	})
}

// DropMusicTables drops the music tables, dependents first.
func DropMusicTables(ctx context.Context, db *bun.DB) error {
	fmt.Println("Dropping music tables...")

	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range []any{
			(*musicdb.Membership)(nil),
			(*musicdb.Musician)(nil),
			(*musicdb.Band)(nil),
		} {
			if _, err := tx.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop table: %w", err)
			}
		}
		return nil
	})
}
