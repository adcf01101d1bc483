package steps

import (
	"context"
	"slices"
	"strings"

	"github.com/LYYYYL/AddressValidator/internal/search"
	"github.com/LYYYYL/AddressValidator/internal/validation"
)

// PostalFormatStep requires a postal code of exactly six digits
type PostalFormatStep struct{}

func (PostalFormatStep) Name() string { return "postal_format" }

func (PostalFormatStep) Apply(_ context.Context, vc *validation.Context) *validation.Context {
	if !validPostalCode(vc.ParsedOrEmpty().PostalCode) {
		vc.Fail(validation.StatusInvalidPostalCode)
	}
	return vc
}

func validPostalCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// PostalLookupStep looks the parsed postal code up in the postal search service
type PostalLookupStep struct {
	Searcher search.PostalSearcher
}

func (PostalLookupStep) Name() string { return "postal_lookup" }

// Apply stores the lookup. NOT_FOUND means the postal code does not exist; any other
// service failure is forwarded as is.
func (s PostalLookupStep) Apply(ctx context.Context, vc *validation.Context) *validation.Context {
	if vc.PostalLookup == nil {
		vc.PostalLookup = s.Searcher.Search(ctx, vc.ParsedOrEmpty().PostalCode)
	}

	res := vc.PostalLookup
	switch {
	case res.Status == search.StatusNotFound:
		vc.Fail(validation.StatusInvalidPostalCode)
	case res.Status != search.StatusOK:
		vc.Fail(validation.FromSearch(res.Status))
	case len(res.Records) == 0:
		vc.Fail(validation.StatusNoMatch)
	}
	return vc
}

// PostalCrossCheckStep searches by block, street and building and requires the
// parsed postal code to be among the postal codes found
type PostalCrossCheckStep struct {
	Searcher search.PostalSearcher
}

func (PostalCrossCheckStep) Name() string { return "postal_cross_check" }

func (s PostalCrossCheckStep) Apply(ctx context.Context, vc *validation.Context) *validation.Context {
	parsed := vc.ParsedOrEmpty()

	if vc.AddressLookup == nil {
		vc.AddressLookup = s.Searcher.Search(ctx, CrossCheckQuery(parsed))
	}

	res := vc.AddressLookup
	switch {
	case res.Status != search.StatusOK:
		vc.Fail(validation.FromSearch(res.Status))
	case len(res.Records) == 0:
		vc.Fail(validation.StatusNoMatch)
	case !slices.Contains(res.PostalCodes(), parsed.PostalCode):
		vc.Fail(validation.StatusAddressPostcodeMismatch)
	}
	return vc
}

// CrossCheckQuery is "<block> <street> <building>" without the postal code
func CrossCheckQuery(p validation.ParsedAddress) string {
	return strings.TrimSpace(p.BlockNumber + " " + p.StreetName + " " + p.BuildingName)
}
