package musicservice

import (
	"context"

	musicdomain "github.com/Black-And-White-Club/music-backend/app/modules/music/domain"
	musicdb "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Shared call trace
// ------------------------

type callTrace struct {
	steps []string
}

func (c *callTrace) record(step string) {
	c.steps = append(c.steps, step)
}

func (c *callTrace) Trace() []string {
	out := make([]string, len(c.steps))
	copy(out, c.steps)
	return out
}

// ------------------------
// Fake Band Repo
// ------------------------

type FakeBandRepo struct {
	*callTrace

	GetByIDFunc   func(ctx context.Context, db bun.IDB, id int64) (*musicdb.Band, error)
	GetByNameFunc func(ctx context.Context, db bun.IDB, name string) (*musicdb.Band, error)
	ListFunc      func(ctx context.Context, db bun.IDB, genre *musicdomain.Genre, offset, limit int) ([]musicdb.Band, int, error)
	CreateFunc    func(ctx context.Context, db bun.IDB, band *musicdb.Band) error
	UpdateFunc    func(ctx context.Context, db bun.IDB, band *musicdb.Band, columns ...string) error
	DeleteFunc    func(ctx context.Context, db bun.IDB, band *musicdb.Band) error
	ExistsFunc    func(ctx context.Context, db bun.IDB, id int64) (bool, error)
}

func (f *FakeBandRepo) GetByID(ctx context.Context, db bun.IDB, id int64) (*musicdb.Band, error) {
	f.record("Bands.GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, musicdb.ErrNotFound
}

func (f *FakeBandRepo) GetByName(ctx context.Context, db bun.IDB, name string) (*musicdb.Band, error) {
	f.record("Bands.GetByName")
	if f.GetByNameFunc != nil {
		return f.GetByNameFunc(ctx, db, name)
	}
	return nil, musicdb.ErrNotFound
}

func (f *FakeBandRepo) List(ctx context.Context, db bun.IDB, genre *musicdomain.Genre, offset, limit int) ([]musicdb.Band, int, error) {
	f.record("Bands.List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db, genre, offset, limit)
	}
	return []musicdb.Band{}, 0, nil
}

func (f *FakeBandRepo) Create(ctx context.Context, db bun.IDB, band *musicdb.Band) error {
	f.record("Bands.Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, band)
	}
	return nil
}

func (f *FakeBandRepo) Update(ctx context.Context, db bun.IDB, band *musicdb.Band, columns ...string) error {
	f.record("Bands.Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, band, columns...)
	}
	return nil
}

func (f *FakeBandRepo) Delete(ctx context.Context, db bun.IDB, band *musicdb.Band) error {
	f.record("Bands.Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, band)
	}
	return nil
}

func (f *FakeBandRepo) Exists(ctx context.Context, db bun.IDB, id int64) (bool, error) {
	f.record("Bands.Exists")
	if f.ExistsFunc != nil {
		return f.ExistsFunc(ctx, db, id)
	}
	return false, nil
}

// ------------------------
// Fake Musician Repo
// ------------------------

type FakeMusicianRepo struct {
	*callTrace

	GetByIDFunc   func(ctx context.Context, db bun.IDB, id int64) (*musicdb.Musician, error)
	ListFunc      func(ctx context.Context, db bun.IDB, offset, limit int) ([]musicdb.Musician, int, error)
	ListByIDsFunc func(ctx context.Context, db bun.IDB, ids []int64, offset, limit int) ([]musicdb.Musician, int, error)
	CreateFunc    func(ctx context.Context, db bun.IDB, musician *musicdb.Musician) error
	UpdateFunc    func(ctx context.Context, db bun.IDB, musician *musicdb.Musician, columns ...string) error
	DeleteFunc    func(ctx context.Context, db bun.IDB, musician *musicdb.Musician) error
	ExistsFunc    func(ctx context.Context, db bun.IDB, id int64) (bool, error)
}

func (f *FakeMusicianRepo) GetByID(ctx context.Context, db bun.IDB, id int64) (*musicdb.Musician, error) {
	f.record("Musicians.GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, musicdb.ErrNotFound
}

func (f *FakeMusicianRepo) List(ctx context.Context, db bun.IDB, offset, limit int) ([]musicdb.Musician, int, error) {
	f.record("Musicians.List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db, offset, limit)
	}
	return []musicdb.Musician{}, 0, nil
}

func (f *FakeMusicianRepo) ListByIDs(ctx context.Context, db bun.IDB, ids []int64, offset, limit int) ([]musicdb.Musician, int, error) {
	f.record("Musicians.ListByIDs")
	if f.ListByIDsFunc != nil {
		return f.ListByIDsFunc(ctx, db, ids, offset, limit)
	}
	return []musicdb.Musician{}, 0, nil
}

func (f *FakeMusicianRepo) Create(ctx context.Context, db bun.IDB, musician *musicdb.Musician) error {
	f.record("Musicians.Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, musician)
	}
	return nil
}

func (f *FakeMusicianRepo) Update(ctx context.Context, db bun.IDB, musician *musicdb.Musician, columns ...string) error {
	f.record("Musicians.Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, musician, columns...)
	}
	return nil
}

func (f *FakeMusicianRepo) Delete(ctx context.Context, db bun.IDB, musician *musicdb.Musician) error {
	f.record("Musicians.Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, musician)
	}
	return nil
}

func (f *FakeMusicianRepo) Exists(ctx context.Context, db bun.IDB, id int64) (bool, error) {
	f.record("Musicians.Exists")
	if f.ExistsFunc != nil {
		return f.ExistsFunc(ctx, db, id)
	}
	return false, nil
}

// ------------------------
// Fake Membership Repo
// ------------------------

type FakeMembershipRepo struct {
	*callTrace

	GetByIDFunc           func(ctx context.Context, db bun.IDB, id int64) (*musicdb.Membership, error)
	ListFunc              func(ctx context.Context, db bun.IDB, filter musicdb.MembershipFilter, offset, limit int) ([]musicdb.Membership, int, error)
	MusicianIDsByBandFunc func(ctx context.Context, db bun.IDB, bandID int64) ([]int64, error)
	CreateFunc            func(ctx context.Context, db bun.IDB, membership *musicdb.Membership) error
	UpdateFunc            func(ctx context.Context, db bun.IDB, membership *musicdb.Membership, columns ...string) error
	DeleteFunc            func(ctx context.Context, db bun.IDB, membership *musicdb.Membership) error
	DeleteByBandFunc      func(ctx context.Context, db bun.IDB, bandID int64) (int64, error)
	DeleteByMusicianFunc  func(ctx context.Context, db bun.IDB, musicianID int64) (int64, error)
}

func (f *FakeMembershipRepo) GetByID(ctx context.Context, db bun.IDB, id int64) (*musicdb.Membership, error) {
	f.record("Memberships.GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, musicdb.ErrNotFound
}

func (f *FakeMembershipRepo) List(ctx context.Context, db bun.IDB, filter musicdb.MembershipFilter, offset, limit int) ([]musicdb.Membership, int, error) {
	f.record("Memberships.List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db, filter, offset, limit)
	}
	return []musicdb.Membership{}, 0, nil
}

func (f *FakeMembershipRepo) MusicianIDsByBand(ctx context.Context, db bun.IDB, bandID int64) ([]int64, error) {
	f.record("Memberships.MusicianIDsByBand")
	if f.MusicianIDsByBandFunc != nil {
		return f.MusicianIDsByBandFunc(ctx, db, bandID)
	}
	return nil, nil
}

func (f *FakeMembershipRepo) Create(ctx context.Context, db bun.IDB, membership *musicdb.Membership) error {
	f.record("Memberships.Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, membership)
	}
	return nil
}

func (f *FakeMembershipRepo) Update(ctx context.Context, db bun.IDB, membership *musicdb.Membership, columns ...string) error {
	f.record("Memberships.Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, membership, columns...)
	}
	return nil
}

func (f *FakeMembershipRepo) Delete(ctx context.Context, db bun.IDB, membership *musicdb.Membership) error {
	f.record("Memberships.Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, membership)
	}
	return nil
}

func (f *FakeMembershipRepo) DeleteByBand(ctx context.Context, db bun.IDB, bandID int64) (int64, error) {
	f.record("Memberships.DeleteByBand")
	if f.DeleteByBandFunc != nil {
		return f.DeleteByBandFunc(ctx, db, bandID)
	}
	return 0, nil
}

func (f *FakeMembershipRepo) DeleteByMusician(ctx context.Context, db bun.IDB, musicianID int64) (int64, error) {
	f.record("Memberships.DeleteByMusician")
	if f.DeleteByMusicianFunc != nil {
		return f.DeleteByMusicianFunc(ctx, db, musicianID)
	}
	return 0, nil
}

// fakeRepos shares one call trace across the three fakes so tests can assert ordering.
type fakeRepos struct {
	trace       *callTrace
	bands       *FakeBandRepo
	musicians   *FakeMusicianRepo
	memberships *FakeMembershipRepo
}

func newFakeRepos() *fakeRepos {
	t := &callTrace{steps: []string{}}
	return &fakeRepos{
		trace:       t,
		bands:       &FakeBandRepo{callTrace: t},
		musicians:   &FakeMusicianRepo{callTrace: t},
		memberships: &FakeMembershipRepo{callTrace: t},
	}
}

// Ensure the fakes actually satisfy the interfaces
var (
	_ musicdb.BandRepository       = (*FakeBandRepo)(nil)
	_ musicdb.MusicianRepository   = (*FakeMusicianRepo)(nil)
	_ musicdb.MembershipRepository = (*FakeMembershipRepo)(nil)
)
