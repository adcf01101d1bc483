// Package steps holds the individual validation and enrichment steps that make up a
// country pipeline. Each type implements validation.Step.
package steps

import (
	"context"

	"github.com/LYYYYL/AddressValidator/internal/validation"
)

// Parser turns a raw address into components
type Parser interface {
	Parse(raw string) validation.ParsedAddress
}

// ParseStep runs the heuristic parser on the raw address
type ParseStep struct {
	Parser Parser
}

func (ParseStep) Name() string { return "parse" }

// Apply stores the parsed address. An already parsed context is left alone.
func (s ParseStep) Apply(_ context.Context, vc *validation.Context) *validation.Context {
	if vc.Parsed != nil {
		return vc
	}
	parsed := s.Parser.Parse(vc.RawAddress)
	vc.Parsed = &parsed
	return vc
}

// LibpostalParseStep parses with libpostal. Parse is normally libpostal.Parse.
type LibpostalParseStep struct {
	Parse func(raw string) (validation.ParsedAddress, error)
}

func (LibpostalParseStep) Name() string { return "libpostal_parse" }

// Apply stores the parsed address, or fails with PARSE_FAILED when libpostal errors
func (s LibpostalParseStep) Apply(_ context.Context, vc *validation.Context) *validation.Context {
	if vc.Parsed != nil {
		return vc
	}
	parsed, err := s.Parse(vc.RawAddress)
	if err != nil {
		vc.Fail(validation.StatusParseFailed)
		return vc
	}
	vc.Parsed = &parsed
	return vc
}
