package musichandlers

import (
	"net/http"
	"strconv"

	musicservice "github.com/Black-And-White-Club/music-backend/app/modules/music/application"
	musicdb "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories"
)

func (h *MusicHandlers) CreateMembership(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "http.CreateMembership")
	defer span.End()

	var req MembershipCreateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	membership, err := h.service.CreateMembership(r.Context(), req.toInput())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMembershipResponse(membership))
}

// ListMemberships handles GET /memberships?skip&limit&band_id&musician_id.
func (h *MusicHandlers) ListMemberships(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "http.ListMemberships")
	defer span.End()

	page, err := pageFromQuery(r)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	params := musicservice.ListMembershipsParams{Page: page}
	if params.BandID, err = queryInt(r, "band_id"); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if params.MusicianID, err = queryInt(r, "musician_id"); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	list, err := h.service.ListMemberships(r.Context(), params)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	out := make([]MembershipResponse, 0, len(list.Items))
	for i := range list.Items {
		out = append(out, toMembershipResponse(&list.Items[i]))
	}
	w.Header().Set(TotalCountHeader, strconv.Itoa(list.Total))
	writeJSON(w, http.StatusOK, out)
}

func (h *MusicHandlers) GetMembership(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "http.GetMembership")
	defer span.End()

	id, ok := pathID(w, r, "membershipID")
	if !ok {
		return
	}

	membership, err := h.service.GetMembership(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMembershipResponse(membership))
}

// UpdateMembership handles PATCH /memberships/{membershipID}; only the instrument may change.
func (h *MusicHandlers) UpdateMembership(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "http.UpdateMembership")
	defer span.End()

	id, ok := pathID(w, r, "membershipID")
	if !ok {
		return
	}
	var update musicdb.MembershipUpdate
	if !decodeBody(w, r, &update) {
		return
	}

	membership, err := h.service.UpdateMembership(r.Context(), id, update)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMembershipResponse(membership))
}

func (h *MusicHandlers) DeleteMembership(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "http.DeleteMembership")
	defer span.End()

	id, ok := pathID(w, r, "membershipID")
	if !ok {
		return
	}

	if err := h.service.DeleteMembership(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Band membership deleted successfully"})
}
