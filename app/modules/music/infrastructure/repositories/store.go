package musicdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// DefaultListLimit is applied when ListOptions.Limit is not positive.
const DefaultListLimit = 100

// ListOptions controls a paginated List call.
type ListOptions struct {
	Offset    int
	Limit     int
	Relations []string
	// Apply adds entity specific predicates to the select query.
	Apply func(q *bun.SelectQuery) *bun.SelectQuery
}

// Store implements the operations shared by every music entity over a bun model.
// Each call takes the bun.IDB to run on so the caller controls the transaction.
type Store[T any] struct {
	db   bun.IDB
	name string
}

// NewStore creates a Store; name is used in error messages.
func NewStore[T any](db bun.IDB, name string) *Store[T] {
	return &Store[T]{db: db, name: name}
}

// resolveDB returns the provided db handle, falling back to the store's
// default connection if db is nil.
func (s *Store[T]) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return s.db
	}
	return db
}

// Get returns the row with the given id or ErrNotFound.
func (s *Store[T]) Get(ctx context.Context, db bun.IDB, id int64, relations ...string) (*T, error) {
	db = s.resolveDB(db)
	model := new(T)
	q := db.NewSelect().Model(model).Where("?TableAlias.id = ?", id)
	for _, rel := range relations {
		q = q.Relation(rel)
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s %d: %w", s.name, id, err)
	}
	return model, nil
}

// Find is Get with absence reported as (nil, nil).
func (s *Store[T]) Find(ctx context.Context, db bun.IDB, id int64, relations ...string) (*T, error) {
	model, err := s.Get(ctx, db, id, relations...)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return model, err
}

// Exists reports whether a row with the given id exists.
func (s *Store[T]) Exists(ctx context.Context, db bun.IDB, id int64) (bool, error) {
	db = s.resolveDB(db)
	exists, err := db.NewSelect().Model((*T)(nil)).Where("?TableAlias.id = ?", id).Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check %s %d exists: %w", s.name, id, err)
	}
	return exists, nil
}

// List returns one page of rows ordered by id together with the total number of matching rows.
func (s *Store[T]) List(ctx context.Context, db bun.IDB, opts ListOptions) ([]T, int, error) {
	db = s.resolveDB(db)
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows := make([]T, 0)
	q := db.NewSelect().Model(&rows)
	if opts.Apply != nil {
		q = opts.Apply(q)
	}
	for _, rel := range opts.Relations {
		q = q.Relation(rel)
	}

	total, err := q.
		OrderExpr("?TableAlias.id ASC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, 0, fmt.Errorf("failed to list %s: %w", s.name, err)
	}
	return rows, total, nil
}

// Insert writes a new row; generated columns are scanned back into model.
func (s *Store[T]) Insert(ctx context.Context, db bun.IDB, model *T) error {
	db = s.resolveDB(db)
	if _, err := db.NewInsert().Model(model).Returning("*").Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert %s: %w", s.name, classifyWriteError(err))
	}
	return nil
}

// Update writes the given columns of model, matched by primary key.
func (s *Store[T]) Update(ctx context.Context, db bun.IDB, model *T, columns ...string) error {
	db = s.resolveDB(db)
	q := db.NewUpdate().Model(model).WherePK()
	if len(columns) > 0 {
		q = q.Column(columns...)
	}
	res, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", s.name, classifyWriteError(err))
	}
	return checkAffected(res)
}

// Delete removes model by primary key. Dependents must be removed first.
func (s *Store[T]) Delete(ctx context.Context, db bun.IDB, model *T) error {
	db = s.resolveDB(db)
	res, err := db.NewDelete().Model(model).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", s.name, err)
	}
	return checkAffected(res)
}

// DeleteWhere removes every row matched by where and returns how many were removed.
func (s *Store[T]) DeleteWhere(ctx context.Context, db bun.IDB, where func(q *bun.DeleteQuery) *bun.DeleteQuery) (int64, error) {
	db = s.resolveDB(db)
	res, err := where(db.NewDelete().Model((*T)(nil))).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s: %w", s.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

func checkAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
