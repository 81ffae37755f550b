package adapter

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlogTelemetry_Span(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	telemetry := NewSlogTelemetry(logger)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{start, start.Add(25 * time.Millisecond)}
	telemetry.now = func() time.Time {
		next := ticks[0]
		ticks = ticks[1:]

		return next
	}

	end := telemetry.Span("pkg.mod", "lib/pkg/mod.py", "compile")
	assert.Empty(t, buf.String())

	end()

	out := buf.String()
	assert.Contains(t, out, "phase finished")
	assert.Contains(t, out, "module=pkg.mod")
	assert.Contains(t, out, "phase=compile")
	assert.Contains(t, out, "duration=25ms")
}
