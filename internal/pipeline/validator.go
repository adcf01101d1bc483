package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/LYYYYL/AddressValidator/internal/logging"
	"github.com/LYYYYL/AddressValidator/internal/telemetry"
	"github.com/LYYYYL/AddressValidator/internal/validation"
)

// Config holds the collaborators of a Validator
type Config struct {
	Registry *Registry
	Logger   *zap.Logger
	Metrics  *telemetry.Metrics
}

// Validator validates raw addresses with the pipeline registered for their country
type Validator struct {
	registry *Registry
	log      *zap.Logger
	metrics  *telemetry.Metrics
}

// NewValidator creates a validator. A nil registry is replaced by an empty one.
func NewValidator(cfg Config) *Validator {
	registry := cfg.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	return &Validator{
		registry: registry,
		log:      logging.OrNop(cfg.Logger).Named("pipeline"),
		metrics:  cfg.Metrics,
	}
}

// Registry returns the registry the validator reads from
func (v *Validator) Registry() *Registry {
	return v.registry
}

// Validate runs the country's pipeline over raw. seed is copied into the context.
// A country without a pipeline yields *UnsupportedCountryError and no context.
func (v *Validator) Validate(ctx context.Context, raw, country string, seed map[string]any) (*validation.Context, error) {
	country = normalizeCountry(country)

	p, ok := v.registry.Lookup(country)
	if !ok {
		v.log.Warn("unsupported country", zap.String("country", country))
		v.metrics.ObserveValidation(country, string(validation.StatusUnsupportedCountry))
		return nil, &UnsupportedCountryError{Country: country}
	}

	start := time.Now()
	vc := p.Run(ctx, validation.NewContext(raw, seed), v.observeStep)
	vc.ValidatedAt = time.Now().UTC()

	v.metrics.ObserveValidation(country, string(vc.Status))
	fields := []zap.Field{
		zap.String("country", country),
		zap.String("raw_address", raw),
		zap.String("status", string(vc.Status)),
		zap.Duration("elapsed", time.Since(start)),
	}
	if vc.Status.IsServiceFailure() {
		v.log.Warn("address lookup failed", fields...)
	} else {
		v.log.Info("address validated", fields...)
	}
	return vc, nil
}

func (v *Validator) observeStep(step validation.Step, elapsed time.Duration, vc *validation.Context) {
	v.metrics.ObserveStep(step.Name(), elapsed)
	v.log.Debug("step completed",
		zap.String("step", step.Name()),
		zap.String("status", string(vc.Status)),
		zap.Duration("elapsed", elapsed),
	)
}
