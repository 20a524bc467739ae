package musicdb

import (
	"context"

	musicdomain "github.com/Black-And-White-Club/music-backend/app/modules/music/domain"
	"github.com/uptrace/bun"
)

// BandRepository defines the contract for band persistence.
type BandRepository interface {
	// GetByID retrieves a band with its memberships and their musicians.
	GetByID(ctx context.Context, db bun.IDB, id int64) (*Band, error)

	// GetByName retrieves a band by exact, case-sensitive name.
	GetByName(ctx context.Context, db bun.IDB, name string) (*Band, error)

	// List returns a page of bands, optionally restricted to one genre.
	List(ctx context.Context, db bun.IDB, genre *musicdomain.Genre, offset, limit int) ([]Band, int, error)

	Create(ctx context.Context, db bun.IDB, band *Band) error
	Update(ctx context.Context, db bun.IDB, band *Band, columns ...string) error
	Delete(ctx context.Context, db bun.IDB, band *Band) error
	Exists(ctx context.Context, db bun.IDB, id int64) (bool, error)
}

// MusicianRepository defines the contract for musician persistence.
type MusicianRepository interface {
	GetByID(ctx context.Context, db bun.IDB, id int64) (*Musician, error)
	List(ctx context.Context, db bun.IDB, offset, limit int) ([]Musician, int, error)

	// ListByIDs returns a page of the musicians whose id is in ids.
	ListByIDs(ctx context.Context, db bun.IDB, ids []int64, offset, limit int) ([]Musician, int, error)

	Create(ctx context.Context, db bun.IDB, musician *Musician) error
	Update(ctx context.Context, db bun.IDB, musician *Musician, columns ...string) error
	Delete(ctx context.Context, db bun.IDB, musician *Musician) error
	Exists(ctx context.Context, db bun.IDB, id int64) (bool, error)
}

// MembershipFilter restricts a membership listing. Nil fields do not filter.
type MembershipFilter struct {
	BandID     *int64
	MusicianID *int64
}

// MembershipRepository defines the contract for band membership persistence.
type MembershipRepository interface {
	// GetByID retrieves a membership with its musician.
	GetByID(ctx context.Context, db bun.IDB, id int64) (*Membership, error)
	List(ctx context.Context, db bun.IDB, filter MembershipFilter, offset, limit int) ([]Membership, int, error)

	// MusicianIDsByBand returns the distinct ids of musicians holding a membership in the band.
	MusicianIDsByBand(ctx context.Context, db bun.IDB, bandID int64) ([]int64, error)

	// Create inserts a membership. A duplicate (band, musician) pair returns ErrUniqueViolation.
	Create(ctx context.Context, db bun.IDB, membership *Membership) error
	Update(ctx context.Context, db bun.IDB, membership *Membership, columns ...string) error
	Delete(ctx context.Context, db bun.IDB, membership *Membership) error

	// DeleteByBand removes every membership of the band and returns the count removed.
	DeleteByBand(ctx context.Context, db bun.IDB, bandID int64) (int64, error)

	// DeleteByMusician removes every membership of the musician and returns the count removed.
	DeleteByMusician(ctx context.Context, db bun.IDB, musicianID int64) (int64, error)
}
