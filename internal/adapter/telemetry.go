package adapter

import (
	"log/slog"
	"time"
)

// Telemetry opens timing spans around compilation phases. The returned
// function closes the span.
type Telemetry interface {
	Span(name, filename, phase string) func()
}

// SlogTelemetry reports span durations through a slog logger at debug level.
type SlogTelemetry struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewSlogTelemetry builds a SlogTelemetry. A nil logger uses slog.Default.
func NewSlogTelemetry(logger *slog.Logger) *SlogTelemetry {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogTelemetry{logger: logger, now: time.Now}
}

// Span logs the phase duration when the returned function is called.
func (t *SlogTelemetry) Span(name, filename, phase string) func() {
	start := t.now()

	return func() {
		t.logger.Debug("phase finished",
			"module", name,
			"filename", filename,
			"phase", phase,
			"duration", t.now().Sub(start),
		)
	}
}
