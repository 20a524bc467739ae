package musicservice

import (
	"context"

	musicdomain "github.com/Black-And-White-Club/music-backend/app/modules/music/domain"
	musicdb "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories"
)

// Service defines the music domain operations. Each call runs in its own transaction.
//
// Expected outcomes are returned as errors matching ErrNotFound, ErrConflict or
// ErrInvalidArgument; any other error is an infrastructure failure.
type Service interface {
	CreateBand(ctx context.Context, in BandCreate) (*musicdb.Band, error)
	GetBand(ctx context.Context, id int64) (*musicdb.Band, error)
	ListBands(ctx context.Context, params ListBandsParams) (*BandList, error)
	UpdateBand(ctx context.Context, id int64, update musicdb.BandUpdate) (*musicdb.Band, error)
	DeleteBand(ctx context.Context, id int64) error

	CreateMusician(ctx context.Context, in MusicianCreate) (*musicdb.Musician, error)
	GetMusician(ctx context.Context, id int64) (*musicdb.Musician, error)
	ListMusicians(ctx context.Context, params ListMusiciansParams) (*MusicianList, error)
	UpdateMusician(ctx context.Context, id int64, update musicdb.MusicianUpdate) (*musicdb.Musician, error)
	DeleteMusician(ctx context.Context, id int64) error

	CreateMembership(ctx context.Context, in MembershipCreate) (*musicdb.Membership, error)
	GetMembership(ctx context.Context, id int64) (*musicdb.Membership, error)
	ListMemberships(ctx context.Context, params ListMembershipsParams) (*MembershipList, error)
	UpdateMembership(ctx context.Context, id int64, update musicdb.MembershipUpdate) (*musicdb.Membership, error)
	DeleteMembership(ctx context.Context, id int64) error
}

// BandCreate is the validated field set for a new band.
type BandCreate struct {
	Name       string
	Genre      musicdomain.Genre
	FormedYear *int
	Country    *string
}

type MusicianCreate struct {
	Name string
}

type MembershipCreate struct {
	BandID     int64
	MusicianID int64
	Instrument musicdomain.Instrument
}

// Page is skip/limit pagination. A zero Limit selects DefaultLimit.
type Page struct {
	Skip  int
	Limit int
}

type ListBandsParams struct {
	Page
	Genre *musicdomain.Genre
}

type ListMusiciansParams struct {
	Page
	BandID *int64
}

type ListMembershipsParams struct {
	Page
	BandID     *int64
	MusicianID *int64
}

type BandList struct {
	Items []musicdb.Band
	Total int
}

type MusicianList struct {
	Items []musicdb.Musician
	Total int
}

type MembershipList struct {
	Items []musicdb.Membership
	Total int
}
