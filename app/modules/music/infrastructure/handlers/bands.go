package musichandlers

import (
	"net/http"
	"strconv"

	musicservice "github.com/Black-And-White-Club/music-backend/app/modules/music/application"
	musicdomain "github.com/Black-And-White-Club/music-backend/app/modules/music/domain"
	musicdb "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories"
)

// CreateBand handles POST /bands. Success is 200 with the created band.
func (h *MusicHandlers) CreateBand(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "http.CreateBand")
	defer span.End()

	var req BandCreateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	band, err := h.service.CreateBand(r.Context(), req.toInput())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBandResponse(band))
}

// ListBands handles GET /bands?skip&limit&genre.
func (h *MusicHandlers) ListBands(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "http.ListBands")
	defer span.End()

	page, err := pageFromQuery(r)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	params := musicservice.ListBandsParams{Page: page}
	if raw := r.URL.Query().Get("genre"); raw != "" {
		genre := musicdomain.Genre(raw)
		params.Genre = &genre
	}

	list, err := h.service.ListBands(r.Context(), params)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	out := make([]BandResponse, 0, len(list.Items))
	for i := range list.Items {
		out = append(out, toBandResponse(&list.Items[i]))
	}
	w.Header().Set(TotalCountHeader, strconv.Itoa(list.Total))
	writeJSON(w, http.StatusOK, out)
}

// GetBand handles GET /bands/{bandID}.
func (h *MusicHandlers) GetBand(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "http.GetBand")
	defer span.End()

	id, ok := pathID(w, r, "bandID")
	if !ok {
		return
	}

	band, err := h.service.GetBand(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBandResponse(band))
}

// UpdateBand handles PATCH /bands/{bandID}. Omitted keys are left untouched.
func (h *MusicHandlers) UpdateBand(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "http.UpdateBand")
	defer span.End()

	id, ok := pathID(w, r, "bandID")
	if !ok {
		return
	}
	var update musicdb.BandUpdate
	if !decodeBody(w, r, &update) {
		return
	}

	band, err := h.service.UpdateBand(r.Context(), id, update)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBandResponse(band))
}

// DeleteBand handles DELETE /bands/{bandID}.
func (h *MusicHandlers) DeleteBand(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "http.DeleteBand")
	defer span.End()

	id, ok := pathID(w, r, "bandID")
	if !ok {
		return
	}

	if err := h.service.DeleteBand(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Band deleted successfully"})
}
