package musicdb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// MembershipImpl implements MembershipRepository using Bun ORM.
type MembershipImpl struct {
	store *Store[Membership]
}

// NewMembershipRepository creates a new band membership repository.
func NewMembershipRepository(db bun.IDB) MembershipRepository {
	return &MembershipImpl{store: NewStore[Membership](db, "band membership")}
}

func (r *MembershipImpl) GetByID(ctx context.Context, db bun.IDB, id int64) (*Membership, error) {
	return r.store.Get(ctx, db, id, RelMusician)
}

func (r *MembershipImpl) List(ctx context.Context, db bun.IDB, filter MembershipFilter, offset, limit int) ([]Membership, int, error) {
	return r.store.List(ctx, db, ListOptions{
		Offset:    offset,
		Limit:     limit,
		Relations: []string{RelMusician},
		Apply: func(q *bun.SelectQuery) *bun.SelectQuery {
			if filter.BandID != nil {
				q = q.Where("?TableAlias.band_id = ?", *filter.BandID)
			}
			if filter.MusicianID != nil {
				q = q.Where("?TableAlias.musician_id = ?", *filter.MusicianID)
			}
			return q
		},
	})
}

func (r *MembershipImpl) MusicianIDsByBand(ctx context.Context, db bun.IDB, bandID int64) ([]int64, error) {
	db = r.store.resolveDB(db)
	var ids []int64
	err := db.NewSelect().
		Model((*Membership)(nil)).
		Distinct().
		Column("musician_id").
		Where("band_id = ?", bandID).
		Order("musician_id").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get musician ids for band %d: %w", bandID, err)
	}
	return ids, nil
}

func (r *MembershipImpl) Create(ctx context.Context, db bun.IDB, membership *Membership) error {
	return r.store.Insert(ctx, db, membership)
}

func (r *MembershipImpl) Update(ctx context.Context, db bun.IDB, membership *Membership, columns ...string) error {
	return r.store.Update(ctx, db, membership, columns...)
}

func (r *MembershipImpl) Delete(ctx context.Context, db bun.IDB, membership *Membership) error {
	return r.store.Delete(ctx, db, membership)
}

func (r *MembershipImpl) DeleteByBand(ctx context.Context, db bun.IDB, bandID int64) (int64, error) {
	return r.store.DeleteWhere(ctx, db, func(q *bun.DeleteQuery) *bun.DeleteQuery {
		return q.Where("band_id = ?", bandID)
	})
}

func (r *MembershipImpl) DeleteByMusician(ctx context.Context, db bun.IDB, musicianID int64) (int64, error) {
	return r.store.DeleteWhere(ctx, db, func(q *bun.DeleteQuery) *bun.DeleteQuery {
		return q.Where("musician_id = ?", musicianID)
	})
}
