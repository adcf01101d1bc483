package countries

import (
	"go.uber.org/zap"

	"github.com/LYYYYL/AddressValidator/internal/config"
	"github.com/LYYYYL/AddressValidator/internal/debug"
	"github.com/LYYYYL/AddressValidator/internal/onemap"
	"github.com/LYYYYL/AddressValidator/internal/pipeline"
	"github.com/LYYYYL/AddressValidator/internal/search"
	"github.com/LYYYYL/AddressValidator/internal/streetdir"
	"github.com/LYYYYL/AddressValidator/internal/telemetry"
)

// DepsFromSettings builds the OneMap and StreetDirectory clients described by s
func DepsFromSettings(s config.Settings, log *zap.Logger, metrics *telemetry.Metrics) Deps {
	policy := search.RetryPolicy{
		MaxAttempts: s.RetryMaxAttempts,
		BaseDelay:   s.RetryBaseDelay,
		MaxDelay:    s.RetryMaxDelay,
	}

	postal := onemap.New(
		onemap.WithBaseURL(s.OneMapBaseURL),
		onemap.WithToken(s.OneMapToken),
		onemap.WithTimeout(s.OneMapTimeout),
		onemap.WithRetryPolicy(policy),
		onemap.WithRateLimit(s.OneMapRPS, 1),
		onemap.WithLogger(log),
		onemap.WithMetrics(metrics),
	)
	category := streetdir.New(
		streetdir.WithBaseURL(s.StreetDirURL),
		streetdir.WithTimeout(s.StreetDirTimeout),
		streetdir.WithRetryPolicy(policy),
		streetdir.WithRateLimit(s.StreetDirRPS, 1),
		streetdir.WithLogger(log),
		streetdir.WithMetrics(metrics),
	)

	return Deps{
		Postal:   postal,
		Category: category,
		Rules:    s.Rules,
		Parser:   s.AddressParser,
		Tracer:   debug.NewTracer(s.DebugParse, log),
	}
}

// NewValidator wires clients, registers every country and returns the validator
func NewValidator(s config.Settings, log *zap.Logger, metrics *telemetry.Metrics) *pipeline.Validator {
	registry := pipeline.NewRegistry()
	RegisterAll(registry, DepsFromSettings(s, log, metrics))
	return pipeline.NewValidator(pipeline.Config{
		Registry: registry,
		Logger:   log,
		Metrics:  metrics,
	})
}
