// Package countries registers the validation pipeline of every supported country.
package countries

import (
	"github.com/LYYYYL/AddressValidator/internal/config"
	"github.com/LYYYYL/AddressValidator/internal/debug"
	"github.com/LYYYYL/AddressValidator/internal/libpostal"
	"github.com/LYYYYL/AddressValidator/internal/pipeline"
	"github.com/LYYYYL/AddressValidator/internal/search"
	"github.com/LYYYYL/AddressValidator/internal/steps"
	"github.com/LYYYYL/AddressValidator/internal/validation"
)

// Singapore is the country code of the Singapore pipeline
const Singapore = "SG"

// Deps are the collaborators shared by the country pipelines
type Deps struct {
	Postal   search.PostalSearcher
	Category search.CategorySearcher
	Rules    config.Rules
	// Parser is config.ParserHeuristic (default) or config.ParserLibpostal
	Parser string
	Tracer debug.Tracer
}

// RegisterAll registers every country pipeline. Calling it again re-registers the
// same countries, replacing the previous pipelines.
func RegisterAll(reg *pipeline.Registry, deps Deps) {
	reg.Register(Singapore, SingaporePipeline(deps))
}

// SingaporePipeline builds the Singapore step list
func SingaporePipeline(deps Deps) pipeline.Pipeline {
	return pipeline.NewBuilder().
		Then(parseStep(deps)).
		Then(steps.PostalFormatStep{}).
		Then(steps.PostalLookupStep{Searcher: deps.Postal}).
		Then(steps.CategorySearchStep{Searcher: deps.Category, Rules: deps.Rules}).
		Then(steps.MissingStreetStep{}).
		Then(steps.BlockNumberMatchStep{StripTrailingAlpha: deps.Rules.StripTrailingAlpha}).
		Then(steps.PostalCrossCheckStep{Searcher: deps.Postal}).
		Then(steps.MissingUnitStep{Rules: deps.Rules}).
		Build()
}

func parseStep(deps Deps) validation.Step {
	if deps.Parser == config.ParserLibpostal {
		return steps.LibpostalParseStep{Parse: libpostal.Parse}
	}
	parser := validation.NewAddressParser()
	parser.SetTracer(deps.Tracer)
	return steps.ParseStep{Parser: parser}
}
