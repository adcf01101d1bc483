package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics()

	m.ObserveValidation("SG", "VALID")
	m.ObserveValidation("SG", "VALID")
	m.ObserveValidation("SG", "UNIT_NUMBER_MISSING")
	m.ObserveLookup("onemap", "OK", 20*time.Millisecond)
	m.ObserveStep("parse", time.Millisecond)
	m.ObserveHTTP("POST", "/validation/", "200", 5*time.Millisecond)
	done := m.InFlight()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.validationsTotal.WithLabelValues("SG", "VALID")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.validationsTotal.WithLabelValues("SG", "UNIT_NUMBER_MISSING")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookupsTotal.WithLabelValues("onemap", "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/validation/", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpInFlight))

	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveValidation("SG", "VALID")
	m.ObserveStep("parse", time.Millisecond)
	m.ObserveLookup("onemap", "OK", time.Millisecond)
	m.ObserveHTTP("GET", "/healthy", "200", time.Millisecond)
	m.InFlight()()
}

func TestSeparateRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()
	a.ObserveValidation("SG", "VALID")

	assert.Equal(t, 0.0, testutil.ToFloat64(b.validationsTotal.WithLabelValues("SG", "VALID")))
}
