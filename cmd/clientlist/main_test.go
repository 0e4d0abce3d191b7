package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/kismet-analyzer/internal/adapter/kismetdb"
	"github.com/couchcryptid/kismet-analyzer/internal/cli"
	"github.com/couchcryptid/kismet-analyzer/internal/config"
	"github.com/couchcryptid/kismet-analyzer/internal/domain"
	"github.com/couchcryptid/kismet-analyzer/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRuntime(stdout io.Writer) *cli.Runtime {
	return &cli.Runtime{
		Config:  &config.Config{ShutdownTimeout: time.Second},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: observability.NewMetricsForTesting(),
		Stdout:  stdout,
	}
}

func writeCapture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drive.kismet")
	devices := []kismetdb.FixtureDevice{
		{Key: "k1", Type: domain.TypeAccessPoint, Payload: []byte(`{
			"kismet.device.base.macaddr": "AA:00",
			"kismet.device.base.name": "HomeNet",
			"dot11.device": {"dot11.device.associated_client_map": {"33:33": "a", "11:11": "b"}}
		}`)},
		{Key: "k2", Type: domain.TypeAccessPoint, Payload: []byte(`{
			"kismet.device.base.macaddr": "BB:00",
			"kismet.device.base.name": "HomeNet-5G",
			"dot11.device": {"dot11.device.associated_client_map": {"22:22": "c", "11:11": "d"}}
		}`)},
		{Key: "k3", Type: domain.TypeAccessPoint, Payload: []byte(`{
			"kismet.device.base.macaddr": "CC:00",
			"kismet.device.base.name": "OfficeNet",
			"dot11.device": {"dot11.device.associated_client_map": {"99:99": "e"}}
		}`)},
		{Key: "k4", Type: domain.TypeAccessPoint, Payload: []byte(`{
			"kismet.device.base.macaddr": "DD:00",
			"kismet.device.base.name": "HomeLab"
		}`)},
	}
	require.NoError(t, kismetdb.WriteFixture(context.Background(), path, devices))
	return path
}

func TestRun_PrintsSortedUnion(t *testing.T) {
	in := writeCapture(t)
	var stdout bytes.Buffer

	require.NoError(t, run(context.Background(), testRuntime(&stdout), []string{"-in", in, "-ssid", "Home"}))

	assert.Equal(t, "11:11\n22:22\n33:33\n", stdout.String())
}

func TestRun_NoMatch(t *testing.T) {
	in := writeCapture(t)
	var stdout bytes.Buffer

	require.NoError(t, run(context.Background(), testRuntime(&stdout), []string{"-in", in, "-ssid", "Cafe"}))

	assert.Empty(t, stdout.String())
}

func TestRun_RequiresSSID(t *testing.T) {
	err := run(context.Background(), testRuntime(io.Discard), []string{"-in", "drive.kismet"})
	assert.ErrorIs(t, err, cli.ErrUsage)
}

func TestRun_InvalidPattern(t *testing.T) {
	err := run(context.Background(), testRuntime(io.Discard), []string{"-in", "drive.kismet", "-ssid", "[Home"})
	assert.ErrorIs(t, err, domain.ErrInvalidPattern)
}
