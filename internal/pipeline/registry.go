package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// UnsupportedCountryError is returned for a country without a registered pipeline
type UnsupportedCountryError struct {
	Country string
}

func (e *UnsupportedCountryError) Error() string {
	return fmt.Sprintf("Unsupported country: %s", e.Country)
}

// Registry maps country codes to pipelines.
// Registering a country again replaces its pipeline.
type Registry struct {
	mu        sync.RWMutex
	pipelines map[string]Pipeline
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{pipelines: make(map[string]Pipeline)}
}

// Register sets the pipeline for country
func (r *Registry) Register(country string, p Pipeline) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pipelines[normalizeCountry(country)] = p
}

// Lookup returns the pipeline for country
func (r *Registry) Lookup(country string) (Pipeline, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pipelines[normalizeCountry(country)]
	return p, ok
}

// Countries lists the registered country codes, sorted
func (r *Registry) Countries() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.pipelines))
	for code := range r.pipelines {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func normalizeCountry(country string) string {
	return strings.ToUpper(strings.TrimSpace(country))
}
