package observability

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"Error":   slog.LevelError,
		"error":   slog.LevelError,
		"info+2":  slog.Level(2),
		"warning": slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "json", slog.LevelInfo).Info("run finished", "read", 3)
	assert.Contains(t, buf.String(), `"msg":"run finished"`)
	assert.Contains(t, buf.String(), `"read":3`)

	buf.Reset()
	newLogger(&buf, "text", slog.LevelInfo).Info("run finished", "read", 3)
	assert.Contains(t, buf.String(), "msg=\"run finished\" read=3")
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "text", slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestMetrics_RegisterOnFreshRegistry(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(m.RowsRead))
	require.NoError(t, reg.Register(m.EntitiesExported))

	m.RowsRead.Add(2)
	m.EntitiesExported.WithLabelValues("csv").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RowsRead))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EntitiesExported.WithLabelValues("csv")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.EntitiesExported.WithLabelValues("kml")))
}
