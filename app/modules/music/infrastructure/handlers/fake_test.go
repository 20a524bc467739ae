package musichandlers

import (
	"context"
	"sync"

	musicservice "github.com/Black-And-White-Club/music-backend/app/modules/music/application"
	musicdb "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories"
)

// FakeMusicService is a programmable musicservice.Service that records the calls it receives.
type FakeMusicService struct {
	mu    sync.Mutex
	trace []string

	CreateBandFunc func(ctx context.Context, in musicservice.BandCreate) (*musicdb.Band, error)
	GetBandFunc    func(ctx context.Context, id int64) (*musicdb.Band, error)
	ListBandsFunc  func(ctx context.Context, params musicservice.ListBandsParams) (*musicservice.BandList, error)
	UpdateBandFunc func(ctx context.Context, id int64, update musicdb.BandUpdate) (*musicdb.Band, error)
	DeleteBandFunc func(ctx context.Context, id int64) error

	CreateMusicianFunc func(ctx context.Context, in musicservice.MusicianCreate) (*musicdb.Musician, error)
	GetMusicianFunc    func(ctx context.Context, id int64) (*musicdb.Musician, error)
	ListMusiciansFunc  func(ctx context.Context, params musicservice.ListMusiciansParams) (*musicservice.MusicianList, error)
	UpdateMusicianFunc func(ctx context.Context, id int64, update musicdb.MusicianUpdate) (*musicdb.Musician, error)
	DeleteMusicianFunc func(ctx context.Context, id int64) error

	CreateMembershipFunc func(ctx context.Context, in musicservice.MembershipCreate) (*musicdb.Membership, error)
	GetMembershipFunc    func(ctx context.Context, id int64) (*musicdb.Membership, error)
	ListMembershipsFunc  func(ctx context.Context, params musicservice.ListMembershipsParams) (*musicservice.MembershipList, error)
	UpdateMembershipFunc func(ctx context.Context, id int64, update musicdb.MembershipUpdate) (*musicdb.Membership, error)
	DeleteMembershipFunc func(ctx context.Context, id int64) error
}

func (f *FakeMusicService) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeMusicService) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeMusicService) CreateBand(ctx context.Context, in musicservice.BandCreate) (*musicdb.Band, error) {
	f.record("CreateBand")
	if f.CreateBandFunc != nil {
		return f.CreateBandFunc(ctx, in)
	}
	return &musicdb.Band{ID: 1, Name: in.Name, Genre: in.Genre}, nil
}

func (f *FakeMusicService) GetBand(ctx context.Context, id int64) (*musicdb.Band, error) {
	f.record("GetBand")
	if f.GetBandFunc != nil {
		return f.GetBandFunc(ctx, id)
	}
	return &musicdb.Band{ID: id}, nil
}

func (f *FakeMusicService) ListBands(ctx context.Context, params musicservice.ListBandsParams) (*musicservice.BandList, error) {
	f.record("ListBands")
	if f.ListBandsFunc != nil {
		return f.ListBandsFunc(ctx, params)
	}
	return &musicservice.BandList{}, nil
}

func (f *FakeMusicService) UpdateBand(ctx context.Context, id int64, update musicdb.BandUpdate) (*musicdb.Band, error) {
	f.record("UpdateBand")
	if f.UpdateBandFunc != nil {
		return f.UpdateBandFunc(ctx, id, update)
	}
	return &musicdb.Band{ID: id}, nil
}

func (f *FakeMusicService) DeleteBand(ctx context.Context, id int64) error {
	f.record("DeleteBand")
	if f.DeleteBandFunc != nil {
		return f.DeleteBandFunc(ctx, id)
	}
	return nil
}

func (f *FakeMusicService) CreateMusician(ctx context.Context, in musicservice.MusicianCreate) (*musicdb.Musician, error) {
	f.record("CreateMusician")
	if f.CreateMusicianFunc != nil {
		return f.CreateMusicianFunc(ctx, in)
	}
	return &musicdb.Musician{ID: 1, Name: in.Name}, nil
}

func (f *FakeMusicService) GetMusician(ctx context.Context, id int64) (*musicdb.Musician, error) {
	f.record("GetMusician")
	if f.GetMusicianFunc != nil {
		return f.GetMusicianFunc(ctx, id)
	}
	return &musicdb.Musician{ID: id}, nil
}

func (f *FakeMusicService) ListMusicians(ctx context.Context, params musicservice.ListMusiciansParams) (*musicservice.MusicianList, error) {
	f.record("ListMusicians")
	if f.ListMusiciansFunc != nil {
		return f.ListMusiciansFunc(ctx, params)
	}
	return &musicservice.MusicianList{}, nil
}

func (f *FakeMusicService) UpdateMusician(ctx context.Context, id int64, update musicdb.MusicianUpdate) (*musicdb.Musician, error) {
	f.record("UpdateMusician")
	if f.UpdateMusicianFunc != nil {
		return f.UpdateMusicianFunc(ctx, id, update)
	}
	return &musicdb.Musician{ID: id}, nil
}

func (f *FakeMusicService) DeleteMusician(ctx context.Context, id int64) error {
	f.record("DeleteMusician")
	if f.DeleteMusicianFunc != nil {
		return f.DeleteMusicianFunc(ctx, id)
	}
	return nil
}

func (f *FakeMusicService) CreateMembership(ctx context.Context, in musicservice.MembershipCreate) (*musicdb.Membership, error) {
	f.record("CreateMembership")
	if f.CreateMembershipFunc != nil {
		return f.CreateMembershipFunc(ctx, in)
	}
	return &musicdb.Membership{ID: 1, BandID: in.BandID, MusicianID: in.MusicianID, Instrument: in.Instrument}, nil
}

func (f *FakeMusicService) GetMembership(ctx context.Context, id int64) (*musicdb.Membership, error) {
	f.record("GetMembership")
	if f.GetMembershipFunc != nil {
		return f.GetMembershipFunc(ctx, id)
	}
	return &musicdb.Membership{ID: id}, nil
}

func (f *FakeMusicService) ListMemberships(ctx context.Context, params musicservice.ListMembershipsParams) (*musicservice.MembershipList, error) {
	f.record("ListMemberships")
	if f.ListMembershipsFunc != nil {
		return f.ListMembershipsFunc(ctx, params)
	}
	return &musicservice.MembershipList{}, nil
}

func (f *FakeMusicService) UpdateMembership(ctx context.Context, id int64, update musicdb.MembershipUpdate) (*musicdb.Membership, error) {
	f.record("UpdateMembership")
	if f.UpdateMembershipFunc != nil {
		return f.UpdateMembershipFunc(ctx, id, update)
	}
	return &musicdb.Membership{ID: id}, nil
}

func (f *FakeMusicService) DeleteMembership(ctx context.Context, id int64) error {
	f.record("DeleteMembership")
	if f.DeleteMembershipFunc != nil {
		return f.DeleteMembershipFunc(ctx, id)
	}
	return nil
}

var _ musicservice.Service = (*FakeMusicService)(nil)
