package musicdb

import (
	"context"
	"time"

	musicdomain "github.com/Black-And-White-Club/music-backend/app/modules/music/domain"
	"github.com/uptrace/bun"
)

// Band is a music band. Memberships are a back-reference only; the storage
// layer does not cascade deletes to them.
type Band struct {
	bun.BaseModel `bun:"table:bands,alias:b"`
	ID            int64             `bun:"id,pk,autoincrement" json:"id"`
	Name          string            `bun:"name,notnull,unique" json:"name"`
	Genre         musicdomain.Genre `bun:"genre,type:varchar(20),notnull" json:"genre"`
	FormedYear    *int              `bun:"formed_year" json:"formed_year"`
	Country       *string           `bun:"country" json:"country"`
	CreatedAt     time.Time         `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     *time.Time        `bun:"updated_at,nullzero" json:"updated_at"`

	// ORM relationships
	Memberships []*Membership `bun:"rel:has-many,join:id=band_id" json:"memberships"`
}

// Musician is a person who can hold memberships in any number of bands.
type Musician struct {
	bun.BaseModel `bun:"table:musicians,alias:m"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Name          string     `bun:"name,notnull" json:"name"`
	CreatedAt     time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero" json:"updated_at"`

	// ORM relationships
	Memberships []*Membership `bun:"rel:has-many,join:id=musician_id" json:"-"`
}

// Membership links a musician to a band with the instrument they play there.
// A musician holds at most one membership per band.
type Membership struct {
	bun.BaseModel `bun:"table:band_memberships,alias:bm"`
	ID            int64                  `bun:"id,pk,autoincrement" json:"id"`
	BandID        int64                  `bun:"band_id,notnull,unique:band_musician_uc" json:"band_id"`
	MusicianID    int64                  `bun:"musician_id,notnull,unique:band_musician_uc" json:"musician_id"`
	Instrument    musicdomain.Instrument `bun:"instrument,type:varchar(20),notnull" json:"instrument"`
	CreatedAt     time.Time              `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     *time.Time             `bun:"updated_at,nullzero" json:"updated_at"`

	// ORM relationships
	Band     *Band     `bun:"rel:belongs-to,join:band_id=id" json:"-"`
	Musician *Musician `bun:"rel:belongs-to,join:musician_id=id" json:"musician,omitempty"`
}

// Relation paths used when eager loading.
const (
	RelMemberships         = "Memberships"
	RelMembershipsMusician = "Memberships.Musician"
	RelMusician            = "Musician"
)

var (
	_ bun.BeforeAppendModelHook = (*Band)(nil)
	_ bun.BeforeAppendModelHook = (*Musician)(nil)
	_ bun.BeforeAppendModelHook = (*Membership)(nil)
)

// BeforeAppendModel stamps created_at on insert.
func (b *Band) BeforeAppendModel(_ context.Context, query bun.Query) error {
	stampCreated(query, &b.CreatedAt)
	return nil
}

func (m *Musician) BeforeAppendModel(_ context.Context, query bun.Query) error {
	stampCreated(query, &m.CreatedAt)
	return nil
}

func (m *Membership) BeforeAppendModel(_ context.Context, query bun.Query) error {
	stampCreated(query, &m.CreatedAt)
	return nil
}

func stampCreated(query bun.Query, createdAt *time.Time) {
	if _, ok := query.(*bun.InsertQuery); ok && createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}
