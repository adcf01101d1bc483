package debug

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Tracer writes stage-by-stage debug output when enabled.
// A zero Tracer is disabled and safe to use.
type Tracer struct {
	enabled bool
	log     *zap.Logger
}

// NewTracer creates a tracer writing to log. A nil logger disables output.
func NewTracer(enabled bool, log *zap.Logger) Tracer {
	if log == nil {
		return Tracer{}
	}
	return Tracer{enabled: enabled, log: log.Named("debug")}
}

// Enabled reports whether output is written
func (t Tracer) Enabled() bool {
	return t.enabled && t.log != nil
}

// Header marks the start of a traced operation
func (t Tracer) Header(operation string) {
	if t.Enabled() {
		t.log.Debug("=== DEBUG START ===", zap.String("operation", operation))
	}
}

// Footer marks the end of a traced operation
func (t Tracer) Footer(operation string) {
	if t.Enabled() {
		t.log.Debug("=== DEBUG END ===", zap.String("operation", operation))
	}
}

// Output writes a formatted debug line
func (t Tracer) Output(format string, args ...interface{}) {
	if t.Enabled() {
		t.log.Debug(fmt.Sprintf(format, args...))
	}
}

// Timing measures an operation and logs its duration when the returned func is called
func (t Tracer) Timing(operation string) func() {
	if !t.Enabled() {
		return func() {}
	}

	start := time.Now()
	t.Output("Starting: %s", operation)

	return func() {
		t.log.Debug("Completed", zap.String("operation", operation), zap.Duration("took", time.Since(start)))
	}
}
