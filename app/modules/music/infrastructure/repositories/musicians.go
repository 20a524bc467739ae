package musicdb

import (
	"context"

	"github.com/uptrace/bun"
)

// MusicianImpl implements MusicianRepository using Bun ORM.
type MusicianImpl struct {
	store *Store[Musician]
}

// NewMusicianRepository creates a new musician repository.
func NewMusicianRepository(db bun.IDB) MusicianRepository {
	return &MusicianImpl{store: NewStore[Musician](db, "musician")}
}

func (r *MusicianImpl) GetByID(ctx context.Context, db bun.IDB, id int64) (*Musician, error) {
	return r.store.Get(ctx, db, id)
}

func (r *MusicianImpl) List(ctx context.Context, db bun.IDB, offset, limit int) ([]Musician, int, error) {
	return r.store.List(ctx, db, ListOptions{Offset: offset, Limit: limit})
}

func (r *MusicianImpl) ListByIDs(ctx context.Context, db bun.IDB, ids []int64, offset, limit int) ([]Musician, int, error) {
	if len(ids) == 0 {
		return []Musician{}, 0, nil
	}
	return r.store.List(ctx, db, ListOptions{
		Offset: offset,
		Limit:  limit,
		Apply: func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id IN (?)", bun.In(ids))
		},
	})
}

func (r *MusicianImpl) Create(ctx context.Context, db bun.IDB, musician *Musician) error {
	return r.store.Insert(ctx, db, musician)
}

func (r *MusicianImpl) Update(ctx context.Context, db bun.IDB, musician *Musician, columns ...string) error {
	return r.store.Update(ctx, db, musician, columns...)
}

func (r *MusicianImpl) Delete(ctx context.Context, db bun.IDB, musician *Musician) error {
	return r.store.Delete(ctx, db, musician)
}

func (r *MusicianImpl) Exists(ctx context.Context, db bun.IDB, id int64) (bool, error) {
	return r.store.Exists(ctx, db, id)
}
