package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, "licence-policy", cfg.ServiceName)
	require.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	require.Equal(t, 1.0, cfg.SampleRate)
	require.False(t, cfg.Enabled)
	require.True(t, cfg.Insecure)
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(config.OTelConfig{Enabled: true, Endpoint: "collector:4317", ServiceName: "policyctl"})
	assert.True(t, cfg.Enabled)
	assert.False(t, cfg.Insecure)
	assert.Equal(t, "collector:4317", cfg.OTLPEndpoint)
	assert.Equal(t, "policyctl", cfg.ServiceName)

	cfg = ConfigFrom(config.OTelConfig{})
	assert.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	assert.Equal(t, "licence-policy", cfg.ServiceName)
}

func TestNewProviderDisabled(t *testing.T) {
	p, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, p)
	require.NotNil(t, p.Tracer())
	require.NotNil(t, p.Meter())

	// Disabled providers still accept every call.
	ctx, finish := p.TrackOperation(context.Background(), "test.operation", attribute.String("k", "v"))
	require.NotNil(t, ctx)
	finish(errors.New("boom"))

	p.RecordRequest(ctx)
	p.RecordError(ctx, errors.New("x"))
	p.RecordDuration(ctx, time.Millisecond)

	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProviderNilConfig(t *testing.T) {
	p, err := New(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, p.config.Enabled)
}

func TestNewProviderEnabled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.OTLPEndpoint = "127.0.0.1:1"

	// Exporters connect lazily, so construction succeeds without a collector.
	p, err := New(ctx, cfg)
	if err != nil {
		t.Logf("provider creation failed (acceptable in sandboxed test env): %v", err)
		return
	}
	require.NotNil(t, p.tracerProvider)
	require.NotNil(t, p.meterProvider)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancelShutdown()
	require.NoError(t, p.Shutdown(shutdownCtx))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("WARN", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown", "code", "abc")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"code":"abc"`)

	buf.Reset()
	NewLogger("INFO", "text", &buf).Info("plain", "k", "v")
	assert.Contains(t, buf.String(), "msg=plain k=v")
}
