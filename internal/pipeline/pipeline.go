// Package pipeline runs ordered validation steps against a context and selects the
// step list by country.
package pipeline

import (
	"context"
	"time"

	"github.com/LYYYYL/AddressValidator/internal/validation"
)

// Pipeline is an ordered list of steps
type Pipeline struct {
	Steps []validation.Step
}

// StepObserver is told about every step that ran
type StepObserver func(step validation.Step, elapsed time.Duration, vc *validation.Context)

// Builder assembles a Pipeline
type Builder struct {
	steps []validation.Step
}

// NewBuilder starts an empty pipeline
func NewBuilder() *Builder {
	return &Builder{}
}

// Then appends steps
func (b *Builder) Then(steps ...validation.Step) *Builder {
	b.steps = append(b.steps, steps...)
	return b
}

// Build returns the pipeline; later calls to Then do not affect it
func (b *Builder) Build() Pipeline {
	steps := make([]validation.Step, len(b.steps))
	copy(steps, b.steps)
	return Pipeline{Steps: steps}
}

// Names lists the step names in order
func (p Pipeline) Names() []string {
	names := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		names[i] = s.Name()
	}
	return names
}

// Run applies the steps in order and stops after the first one that leaves the
// context in a non-VALID state. observe may be nil.
func (p Pipeline) Run(ctx context.Context, vc *validation.Context, observe StepObserver) *validation.Context {
	for _, step := range p.Steps {
		if !vc.Valid() {
			break
		}
		start := time.Now()
		vc = step.Apply(ctx, vc)
		if observe != nil {
			observe(step, time.Since(start), vc)
		}
	}
	return vc
}
