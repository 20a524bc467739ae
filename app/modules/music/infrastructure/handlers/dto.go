package musichandlers

import (
	"time"

	musicservice "github.com/Black-And-White-Club/music-backend/app/modules/music/application"
	musicdomain "github.com/Black-And-White-Club/music-backend/app/modules/music/domain"
	musicdb "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories"
)

// --- Requests ---

type BandCreateRequest struct {
	Name       string  `json:"name" validate:"required,notblank"`
	Genre      string  `json:"genre" validate:"required,genre"`
	FormedYear *int    `json:"formed_year" validate:"omitempty,min=1000,max=9999"`
	Country    *string `json:"country"`
}

func (r BandCreateRequest) toInput() musicservice.BandCreate {
	return musicservice.BandCreate{
		Name:       r.Name,
		Genre:      musicdomain.Genre(r.Genre),
		FormedYear: r.FormedYear,
		Country:    r.Country,
	}
}

type MusicianCreateRequest struct {
	Name string `json:"name" validate:"required,notblank"`
}

type MembershipCreateRequest struct {
	BandID     int64  `json:"band_id" validate:"required,gt=0"`
	MusicianID int64  `json:"musician_id" validate:"required,gt=0"`
	Instrument string `json:"instrument" validate:"required,instrument"`
}

func (r MembershipCreateRequest) toInput() musicservice.MembershipCreate {
	return musicservice.MembershipCreate{
		BandID:     r.BandID,
		MusicianID: r.MusicianID,
		Instrument: musicdomain.Instrument(r.Instrument),
	}
}

// --- Responses ---

type MusicianResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type MembershipResponse struct {
	ID         int64             `json:"id"`
	BandID     int64             `json:"band_id"`
	MusicianID int64             `json:"musician_id"`
	Instrument string            `json:"instrument"`
	Musician   *MusicianResponse `json:"musician,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  *time.Time        `json:"updated_at"`
}

type BandResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Genre       string               `json:"genre"`
	FormedYear  *int                 `json:"formed_year"`
	Country     *string              `json:"country"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   *time.Time           `json:"updated_at"`
	Memberships []MembershipResponse `json:"memberships"`
}

func toMusicianResponse(m *musicdb.Musician) MusicianResponse {
	return MusicianResponse{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toMembershipResponse(m *musicdb.Membership) MembershipResponse {
	resp := MembershipResponse{
		ID:         m.ID,
		BandID:     m.BandID,
		MusicianID: m.MusicianID,
		Instrument: m.Instrument.String(),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.Musician != nil {
		mr := toMusicianResponse(m.Musician)
		resp.Musician = &mr
	}
	return resp
}

func toBandResponse(b *musicdb.Band) BandResponse {
	resp := BandResponse{
		ID:          b.ID,
		Name:        b.Name,
		Genre:       b.Genre.String(),
		FormedYear:  b.FormedYear,
		Country:     b.Country,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		Memberships: make([]MembershipResponse, 0, len(b.Memberships)),
	}
	for _, m := range b.Memberships {
		resp.Memberships = append(resp.Memberships, toMembershipResponse(m))
	}
	return resp
}
