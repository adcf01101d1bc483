package batch

import (
	"github.com/LYYYYL/AddressValidator/internal/validation"
)

// UnknownPropertyType marks a row whose categories could not be determined
const UnknownPropertyType = "UNKNOWN"

// Row is the display form of a finished validation
type Row struct {
	RawAddress   string
	BlockNumber  string
	StreetName   string
	UnitNumber   string
	PostalCode   string
	PropertyType string
	Status       validation.Status
}

// MapContext flattens vc for display. Error and timeout rows show no parsed fields;
// postcode mismatches show "-" as property type.
func MapContext(vc *validation.Context) Row {
	row := Row{RawAddress: vc.RawAddress, Status: vc.Status}

	switch vc.Status {
	case validation.StatusError, validation.StatusTimeout:
		return row
	}

	p := vc.ParsedOrEmpty()
	row.BlockNumber = p.BlockNumber
	row.StreetName = p.StreetName
	row.UnitNumber = p.UnitNumber
	row.PostalCode = p.PostalCode

	switch vc.Status {
	case validation.StatusAddressPostcodeMismatch, validation.StatusInvalidPostalCode:
		row.PropertyType = "-"
	default:
		if types := vc.PropertyTypes(); len(types) > 0 {
			row.PropertyType = types[0]
		}
	}
	return row
}
