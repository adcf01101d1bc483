package steps

import (
	"context"
	"slices"
	"strings"

	"github.com/LYYYYL/AddressValidator/internal/config"
	"github.com/LYYYYL/AddressValidator/internal/search"
	"github.com/LYYYYL/AddressValidator/internal/validation"
)

// Category lookup parameters for Singapore
const (
	categoryCountry = "singapore"
	categoryState   = 0
	categoryLimit   = 0
)

// CategorySearchStep looks up the property categories listed for the address and
// keeps those not matched by the exclusion rules
type CategorySearchStep struct {
	Searcher search.CategorySearcher
	Rules    config.Rules
}

func (CategorySearchStep) Name() string { return "category_search" }

func (s CategorySearchStep) Apply(ctx context.Context, vc *validation.Context) *validation.Context {
	if vc.CategoryLookup == nil {
		block, street, postcode := queryParts(vc)
		if block == "" && street == "" && postcode == "" {
			return vc
		}
		query := block + ", " + street + ", " + postcode
		vc.CategoryLookup = s.Searcher.Search(ctx, query, categoryCountry, categoryState, categoryLimit)
	}

	res := vc.CategoryLookup
	if res.Status != search.StatusOK {
		vc.Fail(validation.FromSearch(res.Status))
		return vc
	}

	kept := FilterCategories(res.Items, s.Rules)
	if len(kept) == 0 {
		if s.Rules.EmptyCategoryPolicy == config.EmptyCategoryFail {
			vc.Fail(validation.StatusNoMatch)
		}
		return vc
	}

	vc.Categories = kept
	vc.PropertyType = kept[0].Category
	return vc
}

// queryParts prefers the first postal lookup record and falls back to the parsed address
func queryParts(vc *validation.Context) (string, string, string) {
	if vc.PostalLookup != nil && len(vc.PostalLookup.Records) > 0 {
		rec := vc.PostalLookup.Records[0]
		return dropSentinel(rec.BlockNumber), dropSentinel(rec.StreetName), dropSentinel(rec.PostalCode)
	}
	p := vc.ParsedOrEmpty()
	return p.BlockNumber, p.StreetName, p.PostalCode
}

func dropSentinel(s string) string {
	s = strings.TrimSpace(s)
	if s == search.NilBlock {
		return ""
	}
	return s
}

// FilterCategories drops items whose category equals an exact exclusion or contains a
// substring exclusion. Order is preserved.
func FilterCategories(items []search.CategoryItem, rules config.Rules) []search.CategoryItem {
	kept := make([]search.CategoryItem, 0, len(items))
	for _, item := range items {
		if slices.Contains(rules.ExactExclusions, item.Category) {
			continue
		}
		if slices.ContainsFunc(rules.SubstringExclusions, func(sub string) bool {
			return strings.Contains(item.Category, sub)
		}) {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}
