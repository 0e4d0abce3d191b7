package kismetdb

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/kismet-analyzer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTestCapture(t *testing.T, devices ...FixtureDevice) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.kismet")
	require.NoError(t, WriteFixture(context.Background(), path, devices))
	return path
}

func readAll(t *testing.T, src *Source) []domain.Row {
	t.Helper()
	var rows []domain.Row
	for {
		row, err := src.Next(context.Background())
		if err == io.EOF {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

var testDevices = []FixtureDevice{
	{Key: "k1", MAC: "AA:00", Type: domain.TypeAccessPoint, Payload: []byte(`{"kismet.device.base.macaddr":"AA:00"}`)},
	{Key: "k2", MAC: "BB:00", Type: "Wi-Fi Client", Payload: []byte(`{"kismet.device.base.macaddr":"BB:00"}`)},
	{Key: "k3", MAC: "CC:00", Type: domain.TypeAccessPoint, Payload: []byte(`not json`)},
	{Key: "k4", MAC: "DD:00", Type: "BTLE"},
}

func TestSource_SelectAll(t *testing.T) {
	path := writeTestCapture(t, testDevices...)

	src, err := Open(context.Background(), path, SelectAll, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	rows := readAll(t, src)

	require.Len(t, rows, 4)
	assert.Equal(t, []string{"k1", "k2", "k3", "k4"}, []string{rows[0].Key, rows[1].Key, rows[2].Key, rows[3].Key})
	assert.Equal(t, domain.TypeAccessPoint, rows[0].Type)
	assert.JSONEq(t, `{"kismet.device.base.macaddr":"AA:00"}`, string(rows[0].Payload))
	assert.Equal(t, []byte("not json"), rows[2].Payload)
	assert.Empty(t, rows[3].Payload)
}

func TestSource_SelectAccessPoints(t *testing.T) {
	path := writeTestCapture(t, testDevices...)

	src, err := Open(context.Background(), path, SelectAccessPoints, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	rows := readAll(t, src)

	require.Len(t, rows, 2)
	assert.Equal(t, "k1", rows[0].Key)
	assert.Equal(t, "k3", rows[1].Key)
}

func TestSource_EOFIsSticky(t *testing.T) {
	path := writeTestCapture(t)

	src, err := Open(context.Background(), path, SelectAll, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	_, err = src.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	_, err = src.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestSource_CancelledContext(t *testing.T) {
	path := writeTestCapture(t, testDevices...)

	src, err := Open(context.Background(), path, SelectAll, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.kismet")

	_, err := Open(context.Background(), path, SelectAll, discardLogger())

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "open", srcErr.Op)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, path)
}

func TestOpen_NotACaptureDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.kismet")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := Open(context.Background(), path, SelectAll, discardLogger())

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "query", srcErr.Op)
	assert.Contains(t, err.Error(), "kismet db query")
}

func TestWriteFixture_RefusesExistingFile(t *testing.T) {
	path := writeTestCapture(t)

	err := WriteFixture(context.Background(), path, testDevices)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestSelectQuery(t *testing.T) {
	q, args := selectQuery("sqlite", SelectAll)
	assert.Equal(t, "SELECT devkey, type, device FROM devices", q)
	assert.Empty(t, args)

	q, args = selectQuery("sqlite", SelectAccessPoints)
	assert.Equal(t, "SELECT devkey, type, device FROM devices WHERE type = ?", q)
	assert.Equal(t, []any{domain.TypeAccessPoint}, args)

	q, _ = selectQuery("postgres", SelectAccessPoints)
	assert.Equal(t, "SELECT devkey, type, device FROM devices WHERE type = $1", q)
}

func TestDriverFor(t *testing.T) {
	assert.Equal(t, "sqlite", driverFor("capture.kismet"))
	assert.Equal(t, "sqlite", driverFor("/var/log/kismet/Kismet-20240426.kismet"))
	assert.Equal(t, "postgres", driverFor("postgres://kismet@localhost/captures"))
	assert.Equal(t, "postgres", driverFor("postgresql://kismet@localhost/captures"))
}

func TestSliceSource(t *testing.T) {
	src := NewSliceSource(domain.Row{Key: "a"}, domain.Row{Key: "b"})
	ctx := context.Background()

	r, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", r.Key)
	r, err = src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", r.Key)
	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, src.Close())
}
