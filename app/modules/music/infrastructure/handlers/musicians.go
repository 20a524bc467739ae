package musichandlers

import (
	"net/http"
	"strconv"

	musicservice "github.com/Black-And-White-Club/music-backend/app/modules/music/application"
	musicdb "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories"
)

func (h *MusicHandlers) CreateMusician(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "http.CreateMusician")
	defer span.End()

	var req MusicianCreateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	musician, err := h.service.CreateMusician(r.Context(), musicservice.MusicianCreate{Name: req.Name})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMusicianResponse(musician))
}

// ListMusicians handles GET /musicians?skip&limit&band_id.
func (h *MusicHandlers) ListMusicians(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "http.ListMusicians")
	defer span.End()

	page, err := pageFromQuery(r)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	bandID, err := queryInt(r, "band_id")
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	list, err := h.service.ListMusicians(r.Context(), musicservice.ListMusiciansParams{Page: page, BandID: bandID})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	out := make([]MusicianResponse, 0, len(list.Items))
	for i := range list.Items {
		out = append(out, toMusicianResponse(&list.Items[i]))
	}
	w.Header().Set(TotalCountHeader, strconv.Itoa(list.Total))
	writeJSON(w, http.StatusOK, out)
}

func (h *MusicHandlers) GetMusician(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "http.GetMusician")
	defer span.End()

	id, ok := pathID(w, r, "musicianID")
	if !ok {
		return
	}

	musician, err := h.service.GetMusician(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMusicianResponse(musician))
}

func (h *MusicHandlers) UpdateMusician(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "http.UpdateMusician")
	defer span.End()

	id, ok := pathID(w, r, "musicianID")
	if !ok {
		return
	}
	var update musicdb.MusicianUpdate
	if !decodeBody(w, r, &update) {
		return
	}

	musician, err := h.service.UpdateMusician(r.Context(), id, update)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMusicianResponse(musician))
}

func (h *MusicHandlers) DeleteMusician(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "http.DeleteMusician")
	defer span.End()

	id, ok := pathID(w, r, "musicianID")
	if !ok {
		return
	}

	if err := h.service.DeleteMusician(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Musician deleted successfully"})
}
