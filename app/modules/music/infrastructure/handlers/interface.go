package musichandlers

import "net/http"

// Handlers serves the music HTTP endpoints.
type Handlers interface {
	CreateBand(w http.ResponseWriter, r *http.Request)
	ListBands(w http.ResponseWriter, r *http.Request)
	GetBand(w http.ResponseWriter, r *http.Request)
	UpdateBand(w http.ResponseWriter, r *http.Request)
	DeleteBand(w http.ResponseWriter, r *http.Request)

	CreateMusician(w http.ResponseWriter, r *http.Request)
	ListMusicians(w http.ResponseWriter, r *http.Request)
	GetMusician(w http.ResponseWriter, r *http.Request)
	UpdateMusician(w http.ResponseWriter, r *http.Request)
	DeleteMusician(w http.ResponseWriter, r *http.Request)

	CreateMembership(w http.ResponseWriter, r *http.Request)
	ListMemberships(w http.ResponseWriter, r *http.Request)
	GetMembership(w http.ResponseWriter, r *http.Request)
	UpdateMembership(w http.ResponseWriter, r *http.Request)
	DeleteMembership(w http.ResponseWriter, r *http.Request)
}
