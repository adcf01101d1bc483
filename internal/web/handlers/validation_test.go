package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/LYYYYL/AddressValidator/internal/pipeline"
	"github.com/LYYYYL/AddressValidator/internal/validation"
)

type validatorFunc func(ctx context.Context, raw, country string, seed map[string]any) (*validation.Context, error)

func (f validatorFunc) Validate(ctx context.Context, raw, country string, seed map[string]any) (*validation.Context, error) {
	return f(ctx, raw, country, seed)
}

func post(t *testing.T, h *ValidationHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/validation/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Validate(rr, req)
	return rr
}

func TestValidateOK(t *testing.T) {
	var gotCountry string
	var gotSeed map[string]any
	h := NewValidationHandler(validatorFunc(func(_ context.Context, raw, country string, seed map[string]any) (*validation.Context, error) {
		gotCountry, gotSeed = country, seed
		vc := validation.NewContext(raw, seed)
		parsed := validation.NewParsedAddress("288E", "Jurong East Street 21", "12-34", "605288", "")
		vc.Parsed = &parsed
		vc.PropertyType = "HDB Blocks"
		vc.ValidatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		return vc, nil
	}), zaptest.NewLogger(t))

	rr := post(t, h, `{"address":"288E Jurong East Street 21, #12-34, Singapore 605288","seed_fields":{"city":"Singapore"}}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "SG", gotCountry, "country defaults to SG")
	assert.Equal(t, "Singapore", gotSeed["city"])

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "288E Jurong East Street 21, #12-34, Singapore 605288", body["raw_address"])
	assert.Equal(t, "VALID", body["validate_status"])
	assert.Equal(t, "HDB Blocks", body["property_type"])
	assert.Equal(t, "2026-01-02T03:04:05Z", body["validated_at"])
	parsed := body["parsed_address"].(map[string]any)
	assert.Equal(t, "288E", parsed["house_number"])
	assert.Nil(t, parsed["building"])
	assert.Contains(t, body, "final_context")
}

func TestValidateNoPropertyType(t *testing.T) {
	h := NewValidationHandler(validatorFunc(func(_ context.Context, raw, _ string, _ map[string]any) (*validation.Context, error) {
		vc := validation.NewContext(raw, nil)
		vc.Fail(validation.StatusInvalidPostalCode)
		return vc, nil
	}), nil)

	rr := post(t, h, `{"address":"10 Anson Road","country_code":"sg"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp ValidationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Nil(t, resp.PropertyType)
	assert.Nil(t, resp.ParsedAddress)
	assert.Equal(t, validation.StatusInvalidPostalCode, resp.ValidateStatus)
	assert.Equal(t, "Invalid postal code", resp.StatusDescription)
}

func TestValidateBadRequests(t *testing.T) {
	h := NewValidationHandler(validatorFunc(func(context.Context, string, string, map[string]any) (*validation.Context, error) {
		t.Fatal("validator must not run for bad requests")
		return nil, nil
	}), nil)

	tests := []struct {
		name   string
		body   string
		detail string
	}{
		{"malformed json", `{"address":`, "Invalid JSON request"},
		{"missing address", `{"country_code":"SG"}`, "address is required"},
		{"bad country", `{"address":"x","country_code":"SGP"}`, "country_code is invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Contains(t, resp.Detail, tt.detail)
		})
	}
}

func TestValidateUnsupportedCountry(t *testing.T) {
	h := NewValidationHandler(validatorFunc(func(_ context.Context, _, country string, _ map[string]any) (*validation.Context, error) {
		return nil, &pipeline.UnsupportedCountryError{Country: country}
	}), nil)

	rr := post(t, h, `{"address":"1 Main Street","country_code":"zz"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.JSONEq(t, `{"valid":false,"error":"Unsupported country: ZZ"}`, rr.Body.String())
}

func TestValidateInternalErrors(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		h := NewValidationHandler(validatorFunc(func(context.Context, string, string, map[string]any) (*validation.Context, error) {
			return nil, errors.New("registry unavailable")
		}), zaptest.NewLogger(t))
		rr := post(t, h, `{"address":"x"}`)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"detail":"registry unavailable"}`, rr.Body.String())
	})

	t.Run("panic", func(t *testing.T) {
		h := NewValidationHandler(validatorFunc(func(context.Context, string, string, map[string]any) (*validation.Context, error) {
			panic("step exploded")
		}), zaptest.NewLogger(t))
		rr := post(t, h, `{"address":"x"}`)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"detail":"step exploded"}`, rr.Body.String())
	})
}

func TestHealthy(t *testing.T) {
	rr := httptest.NewRecorder()
	(&HealthHandler{}).Healthy(rr, httptest.NewRequest(http.MethodGet, "/healthy", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
