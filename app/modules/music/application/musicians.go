package musicservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	musicdb "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories"
	"github.com/Black-And-White-Club/music-backend/pkg/results"
	"github.com/uptrace/bun"
)

const musicianEntity = "Musician"

func (s *MusicService) CreateMusician(ctx context.Context, in MusicianCreate) (*musicdb.Musician, error) {
	return execute(s, ctx, "CreateMusician", in.Name, func(ctx context.Context, db bun.IDB) (results.OperationResult[*musicdb.Musician, error], error) {
		return s.createMusicianLogic(ctx, db, in)
	})
}

func (s *MusicService) createMusicianLogic(ctx context.Context, db bun.IDB, in MusicianCreate) (results.OperationResult[*musicdb.Musician, error], error) {
	if err := in.validate(); err != nil {
		return results.FailureResult[*musicdb.Musician, error](err), nil
	}

	musician := &musicdb.Musician{Name: in.Name}
	if err := s.musicians.Create(ctx, db, musician); err != nil {
		return results.OperationResult[*musicdb.Musician, error]{}, fmt.Errorf("failed to create musician: %w", err)
	}
	return results.SuccessResult[*musicdb.Musician, error](musician), nil
}

func (s *MusicService) GetMusician(ctx context.Context, id int64) (*musicdb.Musician, error) {
	return execute(s, ctx, "GetMusician", strconv.FormatInt(id, 10), func(ctx context.Context, db bun.IDB) (results.OperationResult[*musicdb.Musician, error], error) {
		return s.getMusicianLogic(ctx, db, id)
	})
}

func (s *MusicService) getMusicianLogic(ctx context.Context, db bun.IDB, id int64) (results.OperationResult[*musicdb.Musician, error], error) {
	musician, err := s.musicians.GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, musicdb.ErrNotFound) {
			return results.FailureResult[*musicdb.Musician, error](notFound(musicianEntity, id)), nil
		}
		return results.OperationResult[*musicdb.Musician, error]{}, fmt.Errorf("failed to get musician: %w", err)
	}
	return results.SuccessResult[*musicdb.Musician, error](musician), nil
}

// ListMusicians returns a page of musicians. With a band filter only the
// musicians holding a membership in that band are returned, each once.
func (s *MusicService) ListMusicians(ctx context.Context, params ListMusiciansParams) (*MusicianList, error) {
	return execute(s, ctx, "ListMusicians", "", func(ctx context.Context, db bun.IDB) (results.OperationResult[*MusicianList, error], error) {
		return s.listMusiciansLogic(ctx, db, params)
	})
}

func (s *MusicService) listMusiciansLogic(ctx context.Context, db bun.IDB, params ListMusiciansParams) (results.OperationResult[*MusicianList, error], error) {
	page, err := params.Page.normalize()
	if err != nil {
		return results.FailureResult[*MusicianList, error](err), nil
	}

	if params.BandID == nil {
		musicians, total, err := s.musicians.List(ctx, db, page.Skip, page.Limit)
		if err != nil {
			return results.OperationResult[*MusicianList, error]{}, fmt.Errorf("failed to list musicians: %w", err)
		}
		return results.SuccessResult[*MusicianList, error](&MusicianList{Items: musicians, Total: total}), nil
	}

	ids, err := s.memberships.MusicianIDsByBand(ctx, db, *params.BandID)
	if err != nil {
		return results.OperationResult[*MusicianList, error]{}, fmt.Errorf("failed to resolve band members: %w", err)
	}
	if len(ids) == 0 {
		return results.SuccessResult[*MusicianList, error](&MusicianList{Items: []musicdb.Musician{}}), nil
	}

	musicians, total, err := s.musicians.ListByIDs(ctx, db, ids, page.Skip, page.Limit)
	if err != nil {
		return results.OperationResult[*MusicianList, error]{}, fmt.Errorf("failed to list band members: %w", err)
	}
	return results.SuccessResult[*MusicianList, error](&MusicianList{Items: musicians, Total: total}), nil
}

func (s *MusicService) UpdateMusician(ctx context.Context, id int64, update musicdb.MusicianUpdate) (*musicdb.Musician, error) {
	return execute(s, ctx, "UpdateMusician", strconv.FormatInt(id, 10), func(ctx context.Context, db bun.IDB) (results.OperationResult[*musicdb.Musician, error], error) {
		return s.updateMusicianLogic(ctx, db, id, update)
	})
}

func (s *MusicService) updateMusicianLogic(ctx context.Context, db bun.IDB, id int64, update musicdb.MusicianUpdate) (results.OperationResult[*musicdb.Musician, error], error) {
	if err := validateMusicianUpdate(update); err != nil {
		return results.FailureResult[*musicdb.Musician, error](err), nil
	}

	musician, err := s.musicians.GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, musicdb.ErrNotFound) {
			return results.FailureResult[*musicdb.Musician, error](notFound(musicianEntity, id)), nil
		}
		return results.OperationResult[*musicdb.Musician, error]{}, fmt.Errorf("failed to load musician: %w", err)
	}
	if update.IsEmpty() {
		return results.SuccessResult[*musicdb.Musician, error](musician), nil
	}

	columns := update.Apply(musician)
	musician.UpdatedAt = now()
	columns = append(columns, "updated_at")

	if err := s.musicians.Update(ctx, db, musician, columns...); err != nil {
		if errors.Is(err, musicdb.ErrNoRowsAffected) {
			return results.FailureResult[*musicdb.Musician, error](notFound(musicianEntity, id)), nil
		}
		return results.OperationResult[*musicdb.Musician, error]{}, fmt.Errorf("failed to update musician: %w", err)
	}
	return results.SuccessResult[*musicdb.Musician, error](musician), nil
}

// DeleteMusician removes the musician and all of their memberships in one transaction.
func (s *MusicService) DeleteMusician(ctx context.Context, id int64) error {
	_, err := execute(s, ctx, "DeleteMusician", strconv.FormatInt(id, 10), func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
		return s.deleteMusicianLogic(ctx, db, id)
	})
	return err
}

func (s *MusicService) deleteMusicianLogic(ctx context.Context, db bun.IDB, id int64) (results.OperationResult[struct{}, error], error) {
	exists, err := s.musicians.Exists(ctx, db, id)
	if err != nil {
		return results.OperationResult[struct{}, error]{}, fmt.Errorf("failed to load musician: %w", err)
	}
	if !exists {
		return results.FailureResult[struct{}, error](notFound(musicianEntity, id)), nil
	}

	if err := s.purgeDependents(ctx, db, entityMusician, id); err != nil {
		return results.OperationResult[struct{}, error]{}, err
	}

	if err := s.musicians.Delete(ctx, db, &musicdb.Musician{ID: id}); err != nil {
		if errors.Is(err, musicdb.ErrNoRowsAffected) {
			return results.FailureResult[struct{}, error](notFound(musicianEntity, id)), nil
		}
		return results.OperationResult[struct{}, error]{}, fmt.Errorf("failed to delete musician: %w", err)
	}
	return results.SuccessResult[struct{}, error](struct{}{}), nil
}
