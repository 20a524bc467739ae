package musichandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	musicservice "github.com/Black-And-White-Club/music-backend/app/modules/music/application"
	"github.com/Black-And-White-Club/music-backend/pkg/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/trace"
)

// TotalCountHeader carries the unpaginated row count on list responses.
const TotalCountHeader = "X-Total-Count"

const maxBodyBytes = 1 << 20

// MusicHandlers implements the Handlers interface.
type MusicHandlers struct {
	service  musicservice.Service
	logger   *slog.Logger
	tracer   trace.Tracer
	validate *validator.Validate
}

// NewMusicHandlers creates a new MusicHandlers instance.
func NewMusicHandlers(
	service musicservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &MusicHandlers{
		service:  service,
		logger:   logger,
		tracer:   tracer,
		validate: NewValidator(),
	}
}

// errorResponse is the body of every non-validation error.
type errorResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeServiceError maps service errors to status codes. Unexpected errors are
// logged and hidden behind a generic 500.
func (h *MusicHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, musicservice.ErrNotFound):
		writeDetail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, musicservice.ErrConflict):
		writeDetail(w, http.StatusConflict, err.Error())
	case errors.Is(err, musicservice.ErrInvalidArgument):
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("method", r.Method),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeBody reads a JSON body into dst and writes a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// decodeAndValidate decodes dst and runs struct validation, writing 400/422 on failure.
func (h *MusicHandlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !decodeBody(w, r, dst) {
		return false
	}
	if details := ValidateRequest(h.validate, dst); len(details) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
			Detail: "Invalid request data",
			Errors: details,
		})
		return false
	}
	return true
}

// pathID parses a positive int64 URL parameter, writing 422 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid %s %q", name, raw))
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &v, nil
}

// pageFromQuery reads skip and limit. An absent limit defaults to 100; an
// explicit 0 is rejected like any other out of range value.
func pageFromQuery(r *http.Request) (musicservice.Page, error) {
	page := musicservice.Page{Limit: musicservice.DefaultLimit}
	skip, err := queryInt(r, "skip")
	if err != nil {
		return page, err
	}
	if skip != nil {
		if *skip < 0 {
			return page, fmt.Errorf("skip must be greater than or equal to 0")
		}
		page.Skip = int(*skip)
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return page, err
	}
	if limit != nil {
		if *limit < 1 || *limit > musicservice.MaxLimit {
			return page, fmt.Errorf("limit must be between 1 and %d", musicservice.MaxLimit)
		}
		page.Limit = int(*limit)
	}
	return page, nil
}

func (h *MusicHandlers) startSpan(r *http.Request, name string) (*http.Request, trace.Span) {
	if h.tracer == nil {
		return r, trace.SpanFromContext(r.Context())
	}
	ctx, span := h.tracer.Start(r.Context(), name)
	return r.WithContext(ctx), span
}
