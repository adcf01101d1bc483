package validation

import (
	"encoding/json"
	"strings"

	"github.com/LYYYYL/AddressValidator/internal/search"
)

// ParsedAddress holds the components extracted from a Singapore address.
// An empty field means the component is absent; present fields are always trimmed.
type ParsedAddress struct {
	BlockNumber  string // "288E", "70"
	StreetName   string // "Jurong East Street 21"
	UnitNumber   string // "12-34", "3/14D"
	PostalCode   string // "605288"
	BuildingName string // "MyTower"
}

// NewParsedAddress trims every component; blank values become absent
func NewParsedAddress(block, street, unit, postcode, building string) ParsedAddress {
	return ParsedAddress{
		BlockNumber:  strings.TrimSpace(block),
		StreetName:   strings.TrimSpace(street),
		UnitNumber:   strings.TrimSpace(unit),
		PostalCode:   strings.TrimSpace(postcode),
		BuildingName: strings.TrimSpace(building),
	}
}

type parsedAddressJSON struct {
	BlockNumber  *string `json:"house_number"`
	StreetName   *string `json:"road"`
	UnitNumber   *string `json:"unit"`
	PostalCode   *string `json:"postcode"`
	BuildingName *string `json:"building"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// MarshalJSON encodes absent components as null
func (p ParsedAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(parsedAddressJSON{
		BlockNumber:  optional(p.BlockNumber),
		StreetName:   optional(p.StreetName),
		UnitNumber:   optional(p.UnitNumber),
		PostalCode:   optional(p.PostalCode),
		BuildingName: optional(p.BuildingName),
	})
}

// UnmarshalJSON accepts null or missing components as absent
func (p *ParsedAddress) UnmarshalJSON(data []byte) error {
	var raw parsedAddressJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = NewParsedAddress(value(raw.BlockNumber), value(raw.StreetName), value(raw.UnitNumber), value(raw.PostalCode), value(raw.BuildingName))
	return nil
}

// Status is the outcome carried by a validation context.
// Service statuses from search.ResponseStatus are forwarded with the same value.
type Status string

const (
	StatusValid                   Status = "VALID"
	StatusInvalidPostalCode       Status = "INVALID_POSTAL_CODE"
	StatusStreetNameMissing       Status = "STREET_NAME_MISSING"
	StatusUnitNumberMissing       Status = "UNIT_NUMBER_MISSING"
	StatusBlockNumberMismatch     Status = "BLOCK_NUMBER_MISMATCH"
	StatusNoMatch                 Status = "NO_MATCH"
	StatusAddressPostcodeMismatch Status = "ADDRESS_POSTCODE_MISMATCH"
	StatusParseFailed             Status = "PARSE_FAILED"
	StatusUnsupportedCountry      Status = "UNSUPPORTED_COUNTRY"

	StatusNotFound        = Status(search.StatusNotFound)
	StatusError           = Status(search.StatusError)
	StatusTimeout         = Status(search.StatusTimeout)
	StatusInvalidResponse = Status(search.StatusInvalidResponse)
	StatusRateLimited     = Status(search.StatusRateLimited)
)

var statusDescriptions = map[Status]string{
	StatusValid:                   "Valid",
	StatusInvalidPostalCode:       "Invalid postal code",
	StatusStreetNameMissing:       "Street name missing",
	StatusUnitNumberMissing:       "Unit number missing",
	StatusBlockNumberMismatch:     "Block number mismatch",
	StatusNoMatch:                 "No matching address found",
	StatusAddressPostcodeMismatch: "Block/Street and postal code do not match",
	StatusParseFailed:             "Address could not be parsed",
	StatusUnsupportedCountry:      "Unsupported country",
	StatusNotFound:                "Not found",
	StatusError:                   "Lookup service error",
	StatusTimeout:                 "Timeout occurred",
	StatusInvalidResponse:         "Invalid lookup response",
	StatusRateLimited:             "Rate limited by lookup service",
}

// FromSearch forwards a lookup status verbatim
func FromSearch(s search.ResponseStatus) Status {
	return Status(s)
}

// Description returns a human readable message for the status
func (s Status) Description() string {
	if d, ok := statusDescriptions[s]; ok {
		return d
	}
	return string(s)
}

// IsValid reports whether the status is VALID
func (s Status) IsValid() bool {
	return s == StatusValid
}

// IsServiceFailure reports whether the status was forwarded from a lookup service
func (s Status) IsServiceFailure() bool {
	switch s {
	case StatusNotFound, StatusError, StatusTimeout, StatusInvalidResponse, StatusRateLimited:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
