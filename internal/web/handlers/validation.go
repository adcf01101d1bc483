package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/LYYYYL/AddressValidator/internal/logging"
	"github.com/LYYYYL/AddressValidator/internal/pipeline"
	"github.com/LYYYYL/AddressValidator/internal/validation"
)

// DefaultCountry is used when a request omits country_code
const DefaultCountry = "SG"

// maxBodyBytes bounds the request body of a single validation
const maxBodyBytes = 1 << 20

// AddressValidator runs the validation pipeline for a country
type AddressValidator interface {
	Validate(ctx context.Context, raw, country string, seed map[string]any) (*validation.Context, error)
}

// ValidationRequest is the body of POST /validation/
type ValidationRequest struct {
	Address     string         `json:"address" validate:"required"`
	CountryCode string         `json:"country_code" validate:"omitempty,len=2,alpha"`
	SeedFields  map[string]any `json:"seed_fields"`
}

// ValidationResponse is the result of a validation run
type ValidationResponse struct {
	RawAddress        string                    `json:"raw_address"`
	ParsedAddress     *validation.ParsedAddress `json:"parsed_address"`
	PropertyType      *string                   `json:"property_type"`
	ValidateStatus    validation.Status         `json:"validate_status"`
	StatusDescription string                    `json:"status_description"`
	ValidatedAt       time.Time                 `json:"validated_at"`
	FinalContext      *validation.Context       `json:"final_context"`
}

// UnsupportedCountryResponse is returned for a country without a pipeline
type UnsupportedCountryResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error"`
}

// ValidationHandler serves the address validation endpoint
type ValidationHandler struct {
	validator AddressValidator
	validate  *validator.Validate
	log       *zap.Logger
}

// NewValidationHandler creates the handler
func NewValidationHandler(v AddressValidator, log *zap.Logger) *ValidationHandler {
	return &ValidationHandler{
		validator: v,
		validate:  validator.New(),
		log:       logging.OrNop(log),
	}
}

// Validate validates one address
func (h *ValidationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error("validation panicked", zap.Any("panic", rec), zap.Stack("stack"))
			writeError(w, http.StatusInternalServerError, fmt.Sprint(rec))
		}
	}()

	var req ValidationRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON request: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, describeValidation(err))
		return
	}

	country := strings.ToUpper(req.CountryCode)
	if country == "" {
		country = DefaultCountry
	}

	vc, err := h.validator.Validate(r.Context(), req.Address, country, req.SeedFields)
	if err != nil {
		var unsupported *pipeline.UnsupportedCountryError
		if errors.As(err, &unsupported) {
			writeJSON(w, http.StatusUnprocessableEntity, UnsupportedCountryResponse{Valid: false, Error: err.Error()})
			return
		}
		h.log.Error("validation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, NewValidationResponse(vc))
}

// NewValidationResponse flattens a finished context into the API response
func NewValidationResponse(vc *validation.Context) ValidationResponse {
	resp := ValidationResponse{
		RawAddress:        vc.RawAddress,
		ParsedAddress:     vc.Parsed,
		ValidateStatus:    vc.Status,
		StatusDescription: vc.Status.Description(),
		ValidatedAt:       vc.ValidatedAt,
		FinalContext:      vc,
	}
	if vc.PropertyType != "" {
		pt := vc.PropertyType
		resp.PropertyType = &pt
	}
	return resp
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", jsonName(fe.Field())))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", jsonName(fe.Field()), fe.ActualTag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func jsonName(field string) string {
	switch field {
	case "Address":
		return "address"
	case "CountryCode":
		return "country_code"
	case "SeedFields":
		return "seed_fields"
	}
	return field
}
