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

const membershipEntity = "Band membership"

// CreateMembership links a musician to a band. Both sides must exist; a
// duplicate pair is rejected by the storage constraint and reported as a conflict.
func (s *MusicService) CreateMembership(ctx context.Context, in MembershipCreate) (*musicdb.Membership, error) {
	identifier := fmt.Sprintf("%d:%d", in.BandID, in.MusicianID)
	return execute(s, ctx, "CreateMembership", identifier, func(ctx context.Context, db bun.IDB) (results.OperationResult[*musicdb.Membership, error], error) {
		return s.createMembershipLogic(ctx, db, in)
	})
}

func (s *MusicService) createMembershipLogic(ctx context.Context, db bun.IDB, in MembershipCreate) (results.OperationResult[*musicdb.Membership, error], error) {
	if err := in.validate(); err != nil {
		return results.FailureResult[*musicdb.Membership, error](err), nil
	}

	bandExists, err := s.bands.Exists(ctx, db, in.BandID)
	if err != nil {
		return results.OperationResult[*musicdb.Membership, error]{}, fmt.Errorf("failed to check band: %w", err)
	}
	if !bandExists {
		return results.FailureResult[*musicdb.Membership, error](notFound(bandEntity, in.BandID)), nil
	}

	musicianExists, err := s.musicians.Exists(ctx, db, in.MusicianID)
	if err != nil {
		return results.OperationResult[*musicdb.Membership, error]{}, fmt.Errorf("failed to check musician: %w", err)
	}
	if !musicianExists {
		return results.FailureResult[*musicdb.Membership, error](notFound(musicianEntity, in.MusicianID)), nil
	}

	membership := &musicdb.Membership{
		BandID:     in.BandID,
		MusicianID: in.MusicianID,
		Instrument: in.Instrument,
	}
	if err := s.memberships.Create(ctx, db, membership); err != nil {
		if errors.Is(err, musicdb.ErrUniqueViolation) {
			detail := fmt.Sprintf("Musician %d is already a member of band %d", in.MusicianID, in.BandID)
			return results.FailureResult[*musicdb.Membership, error](s.conflict(ctx, membershipEntity, detail)), nil
		}
		return results.OperationResult[*musicdb.Membership, error]{}, fmt.Errorf("failed to create membership: %w", err)
	}

	created, err := s.memberships.GetByID(ctx, db, membership.ID)
	if err != nil {
		return results.OperationResult[*musicdb.Membership, error]{}, fmt.Errorf("failed to reload membership: %w", err)
	}
	return results.SuccessResult[*musicdb.Membership, error](created), nil
}

func (s *MusicService) GetMembership(ctx context.Context, id int64) (*musicdb.Membership, error) {
	return execute(s, ctx, "GetMembership", strconv.FormatInt(id, 10), func(ctx context.Context, db bun.IDB) (results.OperationResult[*musicdb.Membership, error], error) {
		return s.getMembershipLogic(ctx, db, id)
	})
}

func (s *MusicService) getMembershipLogic(ctx context.Context, db bun.IDB, id int64) (results.OperationResult[*musicdb.Membership, error], error) {
	membership, err := s.memberships.GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, musicdb.ErrNotFound) {
			return results.FailureResult[*musicdb.Membership, error](notFound(membershipEntity, id)), nil
		}
		return results.OperationResult[*musicdb.Membership, error]{}, fmt.Errorf("failed to get membership: %w", err)
	}
	return results.SuccessResult[*musicdb.Membership, error](membership), nil
}

func (s *MusicService) ListMemberships(ctx context.Context, params ListMembershipsParams) (*MembershipList, error) {
	return execute(s, ctx, "ListMemberships", "", func(ctx context.Context, db bun.IDB) (results.OperationResult[*MembershipList, error], error) {
		return s.listMembershipsLogic(ctx, db, params)
	})
}

func (s *MusicService) listMembershipsLogic(ctx context.Context, db bun.IDB, params ListMembershipsParams) (results.OperationResult[*MembershipList, error], error) {
	page, err := params.Page.normalize()
	if err != nil {
		return results.FailureResult[*MembershipList, error](err), nil
	}

	filter := musicdb.MembershipFilter{BandID: params.BandID, MusicianID: params.MusicianID}
	memberships, total, err := s.memberships.List(ctx, db, filter, page.Skip, page.Limit)
	if err != nil {
		return results.OperationResult[*MembershipList, error]{}, fmt.Errorf("failed to list memberships: %w", err)
	}
	return results.SuccessResult[*MembershipList, error](&MembershipList{Items: memberships, Total: total}), nil
}

// UpdateMembership changes the instrument of an existing membership.
func (s *MusicService) UpdateMembership(ctx context.Context, id int64, update musicdb.MembershipUpdate) (*musicdb.Membership, error) {
	return execute(s, ctx, "UpdateMembership", strconv.FormatInt(id, 10), func(ctx context.Context, db bun.IDB) (results.OperationResult[*musicdb.Membership, error], error) {
		return s.updateMembershipLogic(ctx, db, id, update)
	})
}

func (s *MusicService) updateMembershipLogic(ctx context.Context, db bun.IDB, id int64, update musicdb.MembershipUpdate) (results.OperationResult[*musicdb.Membership, error], error) {
	if err := validateMembershipUpdate(update); err != nil {
		return results.FailureResult[*musicdb.Membership, error](err), nil
	}

	membership, err := s.memberships.GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, musicdb.ErrNotFound) {
			return results.FailureResult[*musicdb.Membership, error](notFound(membershipEntity, id)), nil
		}
		return results.OperationResult[*musicdb.Membership, error]{}, fmt.Errorf("failed to load membership: %w", err)
	}
	if update.IsEmpty() {
		return results.SuccessResult[*musicdb.Membership, error](membership), nil
	}

	columns := update.Apply(membership)
	membership.UpdatedAt = now()
	columns = append(columns, "updated_at")

	if err := s.memberships.Update(ctx, db, membership, columns...); err != nil {
		if errors.Is(err, musicdb.ErrNoRowsAffected) {
			return results.FailureResult[*musicdb.Membership, error](notFound(membershipEntity, id)), nil
		}
		return results.OperationResult[*musicdb.Membership, error]{}, fmt.Errorf("failed to update membership: %w", err)
	}
	return results.SuccessResult[*musicdb.Membership, error](membership), nil
}

func (s *MusicService) DeleteMembership(ctx context.Context, id int64) error {
	_, err := execute(s, ctx, "DeleteMembership", strconv.FormatInt(id, 10), func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
		return s.deleteMembershipLogic(ctx, db, id)
	})
	return err
}

func (s *MusicService) deleteMembershipLogic(ctx context.Context, db bun.IDB, id int64) (results.OperationResult[struct{}, error], error) {
	if err := s.purgeDependents(ctx, db, entityMembership, id); err != nil {
		return results.OperationResult[struct{}, error]{}, err
	}

	if err := s.memberships.Delete(ctx, db, &musicdb.Membership{ID: id}); err != nil {
		if errors.Is(err, musicdb.ErrNoRowsAffected) {
			return results.FailureResult[struct{}, error](notFound(membershipEntity, id)), nil
		}
		return results.OperationResult[struct{}, error]{}, fmt.Errorf("failed to delete membership: %w", err)
	}
	return results.SuccessResult[struct{}, error](struct{}{}), nil
}
