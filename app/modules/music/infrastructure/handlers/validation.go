package musichandlers

import (
	"errors"
	"reflect"
	"strings"

	musicdomain "github.com/Black-And-White-Club/music-backend/app/modules/music/domain"
	"github.com/go-playground/validator/v10"
)

// ValidationError describes one rejected request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ValidationErrorResponse is returned with 422 when a request body fails validation.
type ValidationErrorResponse struct {
	Detail string            `json:"detail"`
	Errors []ValidationError `json:"errors"`
}

// NewValidator returns a validator that reports json field names and knows the
// music enums as the "genre" and "instrument" tags.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return musicdomain.Genre(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("instrument", func(fl validator.FieldLevel) bool {
		return musicdomain.Instrument(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// ValidateRequest runs struct validation and flattens the failures.
func ValidateRequest(v *validator.Validate, obj any) []ValidationError {
	err := v.Struct(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ValidationError{{Message: err.Error(), Type: "invalid"}}
	}

	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: errorMessage(fe),
			Type:    fe.Tag(),
		})
	}
	return out
}

func errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "notblank":
		return "Value must not be blank"
	case "min", "gte":
		return "Value must be greater than or equal to " + fe.Param()
	case "max", "lte":
		return "Value must be less than or equal to " + fe.Param()
	case "gt":
		return "Value must be greater than " + fe.Param()
	case "genre":
		return "Value must be one of " + joinGenres()
	case "instrument":
		return "Value must be one of " + joinInstruments()
	default:
		return "Invalid value"
	}
}

func joinGenres() string {
	parts := make([]string, 0, len(musicdomain.Genres()))
	for _, g := range musicdomain.Genres() {
		parts = append(parts, g.String())
	}
	return strings.Join(parts, ", ")
}

func joinInstruments() string {
	parts := make([]string, 0, len(musicdomain.Instruments()))
	for _, i := range musicdomain.Instruments() {
		parts = append(parts, i.String())
	}
	return strings.Join(parts, ", ")
}
