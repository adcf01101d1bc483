// Package libpostal parses addresses with the libpostal CRF model.
// Build with -tags libpostal (and libpostal installed) to enable it; otherwise every
// call returns ErrUnavailable.
package libpostal

import (
	"errors"
	"strings"

	"github.com/LYYYYL/AddressValidator/internal/validation"
)

// ErrUnavailable is returned when the binary was built without libpostal
var ErrUnavailable = errors.New("libpostal support not compiled in (build with -tags libpostal)")

// Parse labels raw with libpostal and maps the labels onto a ParsedAddress
func Parse(raw string) (validation.ParsedAddress, error) {
	components, err := parseComponents(raw)
	if err != nil {
		return validation.ParsedAddress{}, err
	}
	return ToParsed(components), nil
}

// Expand returns libpostal's normalized variants of raw
func Expand(raw string) ([]string, error) {
	return expandAddress(raw)
}

// ToParsed maps libpostal labels onto address components.
// Repeated labels keep the first value. libpostal lowercases its output, so
// block suffixes are upper-cased ("288e" -> "288E") and names title-cased.
func ToParsed(components []Component) validation.ParsedAddress {
	byLabel := make(map[string]string, len(components))
	for _, c := range components {
		if _, seen := byLabel[c.Label]; !seen {
			byLabel[c.Label] = strings.TrimSpace(c.Value)
		}
	}

	return validation.NewParsedAddress(
		strings.ToUpper(byLabel["house_number"]),
		titleCase(byLabel["road"]),
		byLabel["unit"],
		byLabel["postcode"],
		titleCase(byLabel["house"]),
	)
}

// Component is one labeled span of a parsed address
type Component struct {
	Label string
	Value string
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
