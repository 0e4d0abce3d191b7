package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAccessPoint(t *testing.T) {
	rec := mustParse(t, accessPointJSON)

	ap := BuildAccessPoint(rec, false)

	want := AccessPoint{
		SSID:       "HomeNet",
		Encryption: "WPA2 WPA2-PSK AES-CCMP",
		Radio: Radio{
			MAC:          testMAC,
			Location:     Location{Lon: "13.404954", Lat: "52.520008", Alt: "34.5"},
			Frequency:    "2437000",
			Channel:      "6",
			Manufacturer: "AVM GmbH",
		},
		Clients: NewClientSet(testClientOne, testClientTwo),
	}
	if diff := cmp.Diff(want, ap); diff != "" {
		t.Fatalf("access point mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, KindAccessPoint, ap.Kind())
}

func TestBuildAccessPoint_EmptyRecord(t *testing.T) {
	ap := BuildAccessPoint(RawRecord{}, true)

	assert.Empty(t, ap.SSID)
	assert.Empty(t, ap.MAC)
	assert.Equal(t, ZeroLocation(), ap.Location)
	assert.NotNil(t, ap.Clients)
	assert.Empty(t, ap.Clients)
}

func TestBuildDevice(t *testing.T) {
	rec := mustParse(t, accessPointJSON)

	dev := BuildDevice(rec, true)

	assert.Equal(t, "HomeNet", dev.Name)
	assert.Equal(t, "HomeNet", dev.CommonName)
	assert.Equal(t, "IEEE802.11", dev.PhyName)
	assert.Equal(t, TypeAccessPoint, dev.Type)
	assert.Equal(t, testMAC, dev.MAC)
	assert.Equal(t, Location{Lon: "13.405", Lat: "52.52", Alt: "36"}, dev.Location)
	assert.Equal(t, KindDevice, dev.Kind())
}

func TestBuildDevice_NoSSIDFallback(t *testing.T) {
	rec := mustParse(t, `{"kismet.device.base.macaddr": "AA:BB", "kismet.device.base.type": "BTLE"}`)

	dev := BuildDevice(rec, false)

	assert.Empty(t, dev.Name)
	assert.Equal(t, "BTLE", dev.Type)
}

func TestBuilders_AgreeOnCommonFields(t *testing.T) {
	payloads := []string{
		accessPointJSON,
		`{}`,
		`{"kismet.device.base.macaddr": "AA", "kismet.device.base.channel": "11",
		  "kismet.device.base.location": {"kismet.common.location.max_loc": {"kismet.common.location.geopoint": [1, 2]}}}`,
	}

	for _, p := range payloads {
		rec := mustParse(t, p)
		for _, strongest := range []bool{false, true} {
			ap := BuildAccessPoint(rec, strongest)
			dev := BuildDevice(rec, strongest)
			assert.Equal(t, ap.Common(), dev.Common())
		}
	}
}

func TestAccessPoint_JSON(t *testing.T) {
	ap := BuildAccessPoint(mustParse(t, accessPointJSON), false)

	data, err := json.Marshal(ap)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "HomeNet", got["ssid"])
	assert.Equal(t, testMAC, got["mac"])
	assert.Equal(t, []any{testClientOne, testClientTwo}, got["clients"])
	assert.Equal(t, map[string]any{"lon": "13.404954", "lat": "52.520008", "alt": "34.5"}, got["location"])
}

func TestEntities(t *testing.T) {
	aps := []AccessPoint{{SSID: "a"}, {SSID: "b"}}

	out := Entities(aps)

	require.Len(t, out, 2)
	assert.Equal(t, KindAccessPoint, out[0].Kind())
	assert.Equal(t, "b", out[1].(AccessPoint).SSID)
}
