// Package domain normalizes Kismet capture records into typed entities.
//
// # Data Source
//
// Kismet writes one row per discovered device into the "devices" table of its
// SQLite log (a ".kismet" file). The "device" column holds the full tracked
// device as a JSON object, and the "type" column holds the declared device type
// ("Wi-Fi AP", "Wi-Fi Client", "BTLE", ...). This package only ever sees the
// decoded JSON; selecting rows is the job of the kismetdb adapter.
//
// # Record Conventions
//
// Keys are fully qualified and contain dots themselves:
//
//	kismet.device.base.macaddr        "AA:BB:CC:DD:EE:FF"
//	kismet.device.base.crypt          "WPA2 WPA2-PSK AES-CCMP"
//	kismet.device.base.frequency      2437000        (number, kHz)
//	kismet.device.base.channel        "6"
//	kismet.device.base.location       { avg_loc, max_loc, ... }
//	dot11.device                      { advertised_ssid_map, last_beaconed_ssid, associated_client_map, ... }
//
// Lookups therefore take a sequence of keys rather than a dotted path. Any key
// may be missing at any depth; absence is normal and yields an empty value.
//
// Numbers are decoded as json.Number so extracted values keep the exact text
// Kismet wrote ("2437000", "52.520008").
//
// Location samples:
//
//	kismet.common.location.avg_loc    arithmetic mean of all samples
//	kismet.common.location.max_loc    sample taken at the strongest signal
//
// Each sample carries scalar "lon", "lat" and "alt" fields, or only a
// two-element "geopoint". The geopoint is read as [lat, lon]; this is the order
// the scanner output has been observed to use and is kept as-is.
//
// Advertised SSIDs:
//
//	dot11.device.advertised_ssid_map is an array in current Kismet releases and
//	an object keyed by SSID hash in older ones. The first entry is index 0 for
//	arrays and the lexically smallest key for objects.
package domain
