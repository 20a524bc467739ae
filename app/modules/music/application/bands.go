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

const bandEntity = "Band"

// CreateBand persists a new band. The name must be unique; the storage
// constraint decides when a concurrent insert races the pre-check.
func (s *MusicService) CreateBand(ctx context.Context, in BandCreate) (*musicdb.Band, error) {
	return execute(s, ctx, "CreateBand", in.Name, func(ctx context.Context, db bun.IDB) (results.OperationResult[*musicdb.Band, error], error) {
		return s.createBandLogic(ctx, db, in)
	})
}

func (s *MusicService) createBandLogic(ctx context.Context, db bun.IDB, in BandCreate) (results.OperationResult[*musicdb.Band, error], error) {
	if err := in.validate(); err != nil {
		return results.FailureResult[*musicdb.Band, error](err), nil
	}

	failure, err := s.checkBandNameFree(ctx, db, in.Name, 0)
	if err != nil {
		return results.OperationResult[*musicdb.Band, error]{}, err
	}
	if failure != nil {
		return results.FailureResult[*musicdb.Band, error](failure), nil
	}

	band := &musicdb.Band{
		Name:       in.Name,
		Genre:      in.Genre,
		FormedYear: in.FormedYear,
		Country:    in.Country,
	}
	if err := s.bands.Create(ctx, db, band); err != nil {
		if errors.Is(err, musicdb.ErrUniqueViolation) {
			return results.FailureResult[*musicdb.Band, error](s.duplicateBandName(ctx, in.Name)), nil
		}
		return results.OperationResult[*musicdb.Band, error]{}, fmt.Errorf("failed to create band: %w", err)
	}
	band.Memberships = []*musicdb.Membership{}

	return results.SuccessResult[*musicdb.Band, error](band), nil
}

// GetBand returns a band with its memberships and their musicians.
func (s *MusicService) GetBand(ctx context.Context, id int64) (*musicdb.Band, error) {
	return execute(s, ctx, "GetBand", strconv.FormatInt(id, 10), func(ctx context.Context, db bun.IDB) (results.OperationResult[*musicdb.Band, error], error) {
		return s.getBandLogic(ctx, db, id)
	})
}

func (s *MusicService) getBandLogic(ctx context.Context, db bun.IDB, id int64) (results.OperationResult[*musicdb.Band, error], error) {
	band, err := s.bands.GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, musicdb.ErrNotFound) {
			return results.FailureResult[*musicdb.Band, error](notFound(bandEntity, id)), nil
		}
		return results.OperationResult[*musicdb.Band, error]{}, fmt.Errorf("failed to get band: %w", err)
	}
	return results.SuccessResult[*musicdb.Band, error](band), nil
}

// ListBands returns a page of bands, optionally restricted to one genre.
func (s *MusicService) ListBands(ctx context.Context, params ListBandsParams) (*BandList, error) {
	return execute(s, ctx, "ListBands", "", func(ctx context.Context, db bun.IDB) (results.OperationResult[*BandList, error], error) {
		return s.listBandsLogic(ctx, db, params)
	})
}

func (s *MusicService) listBandsLogic(ctx context.Context, db bun.IDB, params ListBandsParams) (results.OperationResult[*BandList, error], error) {
	page, err := params.Page.normalize()
	if err != nil {
		return results.FailureResult[*BandList, error](err), nil
	}
	if params.Genre != nil {
		if err := validateGenre(*params.Genre); err != nil {
			return results.FailureResult[*BandList, error](err), nil
		}
	}

	bands, total, err := s.bands.List(ctx, db, params.Genre, page.Skip, page.Limit)
	if err != nil {
		return results.OperationResult[*BandList, error]{}, fmt.Errorf("failed to list bands: %w", err)
	}
	return results.SuccessResult[*BandList, error](&BandList{Items: bands, Total: total}), nil
}

// UpdateBand applies the supplied fields only. An empty update writes nothing
// and leaves updated_at untouched.
func (s *MusicService) UpdateBand(ctx context.Context, id int64, update musicdb.BandUpdate) (*musicdb.Band, error) {
	return execute(s, ctx, "UpdateBand", strconv.FormatInt(id, 10), func(ctx context.Context, db bun.IDB) (results.OperationResult[*musicdb.Band, error], error) {
		return s.updateBandLogic(ctx, db, id, update)
	})
}

func (s *MusicService) updateBandLogic(ctx context.Context, db bun.IDB, id int64, update musicdb.BandUpdate) (results.OperationResult[*musicdb.Band, error], error) {
	if err := validateBandUpdate(update); err != nil {
		return results.FailureResult[*musicdb.Band, error](err), nil
	}

	band, err := s.bands.GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, musicdb.ErrNotFound) {
			return results.FailureResult[*musicdb.Band, error](notFound(bandEntity, id)), nil
		}
		return results.OperationResult[*musicdb.Band, error]{}, fmt.Errorf("failed to load band: %w", err)
	}

	if update.IsEmpty() {
		return results.SuccessResult[*musicdb.Band, error](band), nil
	}

	if name, ok := update.Name.Get(); ok && name != band.Name {
		failure, err := s.checkBandNameFree(ctx, db, name, id)
		if err != nil {
			return results.OperationResult[*musicdb.Band, error]{}, err
		}
		if failure != nil {
			return results.FailureResult[*musicdb.Band, error](failure), nil
		}
	}

	columns := update.Apply(band)
	band.UpdatedAt = now()
	columns = append(columns, "updated_at")

	if err := s.bands.Update(ctx, db, band, columns...); err != nil {
		switch {
		case errors.Is(err, musicdb.ErrUniqueViolation):
			return results.FailureResult[*musicdb.Band, error](s.duplicateBandName(ctx, band.Name)), nil
		case errors.Is(err, musicdb.ErrNoRowsAffected):
			return results.FailureResult[*musicdb.Band, error](notFound(bandEntity, id)), nil
		}
		return results.OperationResult[*musicdb.Band, error]{}, fmt.Errorf("failed to update band: %w", err)
	}

	refreshed, err := s.bands.GetByID(ctx, db, id)
	if err != nil {
		return results.OperationResult[*musicdb.Band, error]{}, fmt.Errorf("failed to reload band: %w", err)
	}
	return results.SuccessResult[*musicdb.Band, error](refreshed), nil
}

// DeleteBand removes the band and every membership referencing it in one transaction.
func (s *MusicService) DeleteBand(ctx context.Context, id int64) error {
	_, err := execute(s, ctx, "DeleteBand", strconv.FormatInt(id, 10), func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
		return s.deleteBandLogic(ctx, db, id)
	})
	return err
}

func (s *MusicService) deleteBandLogic(ctx context.Context, db bun.IDB, id int64) (results.OperationResult[struct{}, error], error) {
	exists, err := s.bands.Exists(ctx, db, id)
	if err != nil {
		return results.OperationResult[struct{}, error]{}, fmt.Errorf("failed to load band: %w", err)
	}
	if !exists {
		return results.FailureResult[struct{}, error](notFound(bandEntity, id)), nil
	}

	if err := s.purgeDependents(ctx, db, entityBand, id); err != nil {
		return results.OperationResult[struct{}, error]{}, err
	}

	if err := s.bands.Delete(ctx, db, &musicdb.Band{ID: id}); err != nil {
		if errors.Is(err, musicdb.ErrNoRowsAffected) {
			return results.FailureResult[struct{}, error](notFound(bandEntity, id)), nil
		}
		return results.OperationResult[struct{}, error]{}, fmt.Errorf("failed to delete band: %w", err)
	}
	return results.SuccessResult[struct{}, error](struct{}{}), nil
}

// checkBandNameFree returns a conflict when another band already uses name.
// exceptID excludes the band being renamed.
func (s *MusicService) checkBandNameFree(ctx context.Context, db bun.IDB, name string, exceptID int64) (*ConflictError, error) {
	existing, err := s.bands.GetByName(ctx, db, name)
	if err != nil {
		if errors.Is(err, musicdb.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check band name: %w", err)
	}
	if existing.ID == exceptID {
		return nil, nil
	}
	return s.duplicateBandName(ctx, name), nil
}

func (s *MusicService) duplicateBandName(ctx context.Context, name string) *ConflictError {
	return s.conflict(ctx, bandEntity, fmt.Sprintf("Band with name %q already exists", name))
}
