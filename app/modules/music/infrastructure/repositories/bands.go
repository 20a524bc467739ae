package musicdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	musicdomain "github.com/Black-And-White-Club/music-backend/app/modules/music/domain"
	"github.com/uptrace/bun"
)

// BandImpl implements BandRepository using Bun ORM.
type BandImpl struct {
	store *Store[Band]
}

// NewBandRepository creates a new band repository.
func NewBandRepository(db bun.IDB) BandRepository {
	return &BandImpl{store: NewStore[Band](db, "band")}
}

func (r *BandImpl) GetByID(ctx context.Context, db bun.IDB, id int64) (*Band, error) {
	return r.store.Get(ctx, db, id, RelMembershipsMusician)
}

func (r *BandImpl) GetByName(ctx context.Context, db bun.IDB, name string) (*Band, error) {
	db = r.store.resolveDB(db)
	band := new(Band)
	err := db.NewSelect().
		Model(band).
		Where("?TableAlias.name = ?", name).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get band by name: %w", err)
	}
	return band, nil
}

func (r *BandImpl) List(ctx context.Context, db bun.IDB, genre *musicdomain.Genre, offset, limit int) ([]Band, int, error) {
	return r.store.List(ctx, db, ListOptions{
		Offset:    offset,
		Limit:     limit,
		Relations: []string{RelMembershipsMusician},
		Apply: func(q *bun.SelectQuery) *bun.SelectQuery {
			if genre != nil {
				q = q.Where("?TableAlias.genre = ?", *genre)
			}
			return q
		},
	})
}

func (r *BandImpl) Create(ctx context.Context, db bun.IDB, band *Band) error {
	return r.store.Insert(ctx, db, band)
}

func (r *BandImpl) Update(ctx context.Context, db bun.IDB, band *Band, columns ...string) error {
	return r.store.Update(ctx, db, band, columns...)
}

func (r *BandImpl) Delete(ctx context.Context, db bun.IDB, band *Band) error {
	return r.store.Delete(ctx, db, band)
}

func (r *BandImpl) Exists(ctx context.Context, db bun.IDB, id int64) (bool, error) {
	return r.store.Exists(ctx, db, id)
}
