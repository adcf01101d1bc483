package validation

import (
	"context"
	"time"

	"github.com/LYYYYL/AddressValidator/internal/search"
)

// Context is the working record threaded through a validation pipeline.
// Pointer and slice fields are nil until the step that computes them has run.
type Context struct {
	RawAddress  string         `json:"raw_address"`
	Status      Status         `json:"validate_status"`
	Seed        map[string]any `json:"seed_fields,omitempty"`
	ValidatedAt time.Time      `json:"validated_at"`

	Parsed *ParsedAddress `json:"parsed_address"`

	// Postal-code lookup results
	PostalLookup *search.PostalResult `json:"postal_lookup,omitempty"`
	// Address lookup used by the address/postal cross-check
	AddressLookup *search.PostalResult `json:"address_lookup,omitempty"`

	// Raw property-category response and its filtered survivors
	CategoryLookup *search.CategoryResult `json:"category_lookup,omitempty"`
	Categories     []search.CategoryItem  `json:"categories,omitempty"`
	PropertyType   string                 `json:"property_type,omitempty"`
}

// NewContext starts a context for raw with status VALID and a copy of the seed fields
func NewContext(raw string, seed map[string]any) *Context {
	vc := &Context{RawAddress: raw, Status: StatusValid}
	if len(seed) > 0 {
		vc.Seed = make(map[string]any, len(seed))
		for k, v := range seed {
			vc.Seed[k] = v
		}
	}
	return vc
}

// Fail records a failure status. A context that already failed keeps its first status.
func (vc *Context) Fail(s Status) {
	if vc.Status == StatusValid || vc.Status == "" {
		vc.Status = s
	}
}

// Valid reports whether no step has failed yet
func (vc *Context) Valid() bool {
	return vc.Status.IsValid()
}

// ParsedOrEmpty returns the parsed address, or an empty one if parsing has not run
func (vc *Context) ParsedOrEmpty() ParsedAddress {
	if vc.Parsed == nil {
		return ParsedAddress{}
	}
	return *vc.Parsed
}

// PropertyTypes returns the distinct non-empty categories of the filtered results, in order
func (vc *Context) PropertyTypes() []string {
	seen := make(map[string]struct{}, len(vc.Categories))
	var types []string
	for _, item := range vc.Categories {
		if item.Category == "" {
			continue
		}
		if _, dup := seen[item.Category]; dup {
			continue
		}
		seen[item.Category] = struct{}{}
		types = append(types, item.Category)
	}
	return types
}

// Step is one validation or enrichment operation.
// Apply reads and writes vc and returns it; it may set a failure status but never clears one.
type Step interface {
	Name() string
	Apply(ctx context.Context, vc *Context) *Context
}

type stepFunc struct {
	name string
	fn   func(ctx context.Context, vc *Context) *Context
}

func (s stepFunc) Name() string { return s.name }

func (s stepFunc) Apply(ctx context.Context, vc *Context) *Context { return s.fn(ctx, vc) }

// StepFunc wraps a function as a named Step
func StepFunc(name string, fn func(ctx context.Context, vc *Context) *Context) Step {
	return stepFunc{name: name, fn: fn}
}
