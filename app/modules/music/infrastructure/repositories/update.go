package musicdb

import (
	musicdomain "github.com/Black-And-White-Club/music-backend/app/modules/music/domain"
	"github.com/Black-And-White-Club/music-backend/pkg/patch"
)

// BandUpdate is a sparse update of a band. Only supplied fields are written.
type BandUpdate struct {
	Name       patch.Field[string]            `json:"name"`
	Genre      patch.Field[musicdomain.Genre] `json:"genre"`
	FormedYear patch.Field[int]               `json:"formed_year"`
	Country    patch.Field[string]            `json:"country"`
}

// IsEmpty reports whether no field was supplied.
func (u BandUpdate) IsEmpty() bool {
	return !u.Name.Set && !u.Genre.Set && !u.FormedYear.Set && !u.Country.Set
}

// Apply merges the supplied fields into b and returns the columns it touched.
// Nullable columns accept an explicit null; required columns ignore one.
func (u BandUpdate) Apply(b *Band) []string {
	var cols []string
	if v, ok := u.Name.Get(); ok {
		b.Name = v
		cols = append(cols, "name")
	}
	if v, ok := u.Genre.Get(); ok {
		b.Genre = v
		cols = append(cols, "genre")
	}
	if u.FormedYear.Set {
		b.FormedYear = u.FormedYear.Ptr()
		cols = append(cols, "formed_year")
	}
	if u.Country.Set {
		b.Country = u.Country.Ptr()
		cols = append(cols, "country")
	}
	return cols
}

// MusicianUpdate is a sparse update of a musician.
type MusicianUpdate struct {
	Name patch.Field[string] `json:"name"`
}

func (u MusicianUpdate) IsEmpty() bool {
	return !u.Name.Set
}

func (u MusicianUpdate) Apply(m *Musician) []string {
	if v, ok := u.Name.Get(); ok {
		m.Name = v
		return []string{"name"}
	}
	return nil
}

// MembershipUpdate is a sparse update of a band membership. The band and
// musician of a membership are fixed; only the instrument may change.
type MembershipUpdate struct {
	Instrument patch.Field[musicdomain.Instrument] `json:"instrument"`
}

func (u MembershipUpdate) IsEmpty() bool {
	return !u.Instrument.Set
}

func (u MembershipUpdate) Apply(m *Membership) []string {
	if v, ok := u.Instrument.Get(); ok {
		m.Instrument = v
		return []string{"instrument"}
	}
	return nil
}
