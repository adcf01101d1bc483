package steps

import (
	"context"
	"slices"
	"strings"
	"unicode"

	"github.com/LYYYYL/AddressValidator/internal/config"
	"github.com/LYYYYL/AddressValidator/internal/validation"
)

// MissingStreetStep fails when no street name was parsed
type MissingStreetStep struct{}

func (MissingStreetStep) Name() string { return "missing_street" }

func (MissingStreetStep) Apply(_ context.Context, vc *validation.Context) *validation.Context {
	if vc.ParsedOrEmpty().StreetName == "" {
		vc.Fail(validation.StatusStreetNameMissing)
	}
	return vc
}

// BlockNumberMatchStep compares the parsed block number with the blocks returned by
// the postal lookup
type BlockNumberMatchStep struct {
	StripTrailingAlpha bool
}

func (BlockNumberMatchStep) Name() string { return "block_number_match" }

func (s BlockNumberMatchStep) Apply(_ context.Context, vc *validation.Context) *validation.Context {
	var sources []string
	if vc.PostalLookup != nil {
		sources = vc.PostalLookup.BlockNumbers()
	}
	if !s.Match(vc.ParsedOrEmpty().BlockNumber, sources) {
		vc.Fail(validation.StatusBlockNumberMismatch)
	}
	return vc
}

// Match reports whether block is among sources after both sides are trimmed, upper-cased
// and optionally stripped of one trailing letter. An empty block matches an empty source.
func (s BlockNumberMatchStep) Match(block string, sources []string) bool {
	want := s.normalizeBlock(block)
	return slices.ContainsFunc(sources, func(src string) bool {
		return s.normalizeBlock(src) == want
	})
}

func (s BlockNumberMatchStep) normalizeBlock(block string) string {
	block = strings.ToUpper(strings.TrimSpace(block))
	if s.StripTrailingAlpha && block != "" {
		last := rune(block[len(block)-1])
		if unicode.IsLetter(last) {
			block = block[:len(block)-1]
		}
	}
	return block
}

// MissingUnitStep fails when the property categories call for a unit number and none
// was parsed. Without categories the requirement is unknown and the step passes.
type MissingUnitStep struct {
	Rules config.Rules
}

func (MissingUnitStep) Name() string { return "missing_unit" }

func (s MissingUnitStep) Apply(_ context.Context, vc *validation.Context) *validation.Context {
	types := vc.PropertyTypes()
	if len(types) == 0 {
		return vc
	}
	if s.RequiresUnit(types) && vc.ParsedOrEmpty().UnitNumber == "" {
		vc.Fail(validation.StatusUnitNumberMissing)
	}
	return vc
}

// RequiresUnit applies the configured whitelist or blacklist to the property types
func (s MissingUnitStep) RequiresUnit(types []string) bool {
	switch s.Rules.UnitRequirementMode {
	case config.UnitModeBlacklist:
		return slices.ContainsFunc(types, func(t string) bool {
			return !slices.Contains(s.Rules.TypesNotRequiringUnit, t)
		})
	default:
		return slices.ContainsFunc(types, func(t string) bool {
			return slices.Contains(s.Rules.TypesRequiringUnit, t)
		})
	}
}
