package csvexport

import (
	"bytes"
	"errors"
	"testing"

	"github.com/couchcryptid/kismet-analyzer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAccessPoints(t *testing.T) {
	aps := []domain.AccessPoint{
		{SSID: "HomeNet", Encryption: "WPA2 WPA2-PSK", Radio: domain.Radio{MAC: "AA:BB:CC:DD:EE:FF"}},
		{SSID: "Cafe;Guest", Encryption: "Open", Radio: domain.Radio{MAC: "11:22:33:44:55:66"}},
	}
	var buf bytes.Buffer

	n, err := WriteAccessPoints(&buf, aps)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t,
		"MAC-Address;SSID;Encryption\n"+
			"AA:BB:CC:DD:EE:FF;HomeNet;WPA2 WPA2-PSK\n"+
			"11:22:33:44:55:66;\"Cafe;Guest\";Open\n",
		buf.String())
}

func TestWriteAccessPoints_Empty(t *testing.T) {
	var buf bytes.Buffer

	n, err := WriteAccessPoints(&buf, nil)
	require.NoError(t, err)

	assert.Zero(t, n)
	assert.Equal(t, "MAC-Address;SSID;Encryption\n", buf.String())
}

func TestWriteDevices(t *testing.T) {
	devs := []domain.Device{{
		Name:       "Pixel",
		CommonName: "Pixel 7",
		PhyName:    "IEEE802.11",
		Type:       "Wi-Fi Client",
		Radio: domain.Radio{
			MAC:          "AA:BB:CC:DD:EE:FF",
			Frequency:    "2437000",
			Channel:      "6",
			Manufacturer: "Google",
		},
	}}
	var buf bytes.Buffer

	n, err := WriteDevices(&buf, devs)
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.Equal(t,
		"MAC-Address;TYPE;NAME;COMMONNAME;PHYNAME;Frequency;Channel;Manufacturer\n"+
			"AA:BB:CC:DD:EE:FF;Wi-Fi Client;Pixel;Pixel 7;IEEE802.11;2437000;6;Google\n",
		buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteDevices_WriterError(t *testing.T) {
	_, err := WriteDevices(failingWriter{}, []domain.Device{{Name: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
