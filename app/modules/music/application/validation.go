package musicservice

import (
	"fmt"
	"strings"

	musicdomain "github.com/Black-And-White-Club/music-backend/app/modules/music/domain"
	musicdb "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000

	minFormedYear = 1000
	maxFormedYear = 9999
)

// normalize applies the default limit and checks the bounds.
func (p Page) normalize() (Page, error) {
	if p.Skip < 0 {
		return p, invalid("skip", "must be greater than or equal to 0")
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return p, invalid("limit", fmt.Sprintf("must be between 1 and %d", MaxLimit))
	}
	return p, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name", "must not be blank")
	}
	return nil
}

func validateGenre(g musicdomain.Genre) error {
	if !g.IsValid() {
		return invalid("genre", fmt.Sprintf("unknown genre %q", g))
	}
	return nil
}

func validateInstrument(i musicdomain.Instrument) error {
	if !i.IsValid() {
		return invalid("instrument", fmt.Sprintf("unknown instrument %q", i))
	}
	return nil
}

func validateFormedYear(year *int) error {
	if year != nil && (*year < minFormedYear || *year > maxFormedYear) {
		return invalid("formed_year", fmt.Sprintf("must be between %d and %d", minFormedYear, maxFormedYear))
	}
	return nil
}

func (in BandCreate) validate() error {
	if err := validateName(in.Name); err != nil {
		return err
	}
	if err := validateGenre(in.Genre); err != nil {
		return err
	}
	return validateFormedYear(in.FormedYear)
}

func (in MusicianCreate) validate() error {
	return validateName(in.Name)
}

func (in MembershipCreate) validate() error {
	return validateInstrument(in.Instrument)
}

// validateBandUpdate rejects nulls for required columns and bad values for supplied ones.
func validateBandUpdate(u musicdb.BandUpdate) error {
	if u.Name.Set {
		if u.Name.Null {
			return invalid("name", "must not be null")
		}
		if err := validateName(u.Name.Value); err != nil {
			return err
		}
	}
	if u.Genre.Set {
		if u.Genre.Null {
			return invalid("genre", "must not be null")
		}
		if err := validateGenre(u.Genre.Value); err != nil {
			return err
		}
	}
	return validateFormedYear(u.FormedYear.Ptr())
}

func validateMusicianUpdate(u musicdb.MusicianUpdate) error {
	if !u.Name.Set {
		return nil
	}
	if u.Name.Null {
		return invalid("name", "must not be null")
	}
	return validateName(u.Name.Value)
}

func validateMembershipUpdate(u musicdb.MembershipUpdate) error {
	if !u.Instrument.Set {
		return nil
	}
	if u.Instrument.Null {
		return invalid("instrument", "must not be null")
	}
	return validateInstrument(u.Instrument.Value)
}
