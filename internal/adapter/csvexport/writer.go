// Package csvexport writes normalized entities as semicolon separated CSV.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/couchcryptid/kismet-analyzer/internal/domain"
)

// Delimiter separates columns in every file this package writes.
const Delimiter = ';'

var (
	accessPointHeader = []string{"MAC-Address", "SSID", "Encryption"}
	deviceHeader      = []string{"MAC-Address", "TYPE", "NAME", "COMMONNAME", "PHYNAME", "Frequency", "Channel", "Manufacturer"}
)

// WriteAccessPoints writes a header followed by one row per access point and
// returns the number of entity rows written.
func WriteAccessPoints(w io.Writer, aps []domain.AccessPoint) (int, error) {
	return write(w, accessPointHeader, len(aps), func(i int) []string {
		ap := aps[i]
		return []string{ap.MAC, ap.SSID, ap.Encryption}
	})
}

// WriteDevices writes a header followed by one row per device and returns the
// number of entity rows written.
func WriteDevices(w io.Writer, devs []domain.Device) (int, error) {
	return write(w, deviceHeader, len(devs), func(i int) []string {
		d := devs[i]
		return []string{d.MAC, d.Type, d.Name, d.CommonName, d.PhyName, d.Frequency, d.Channel, d.Manufacturer}
	})
}

func write(w io.Writer, header []string, n int, row func(int) []string) (int, error) {
	cw := csv.NewWriter(w)
	cw.Comma = Delimiter

	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}
	written := 0
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return written, fmt.Errorf("write csv row %d: %w", i, err)
		}
		written++
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return written, fmt.Errorf("flush csv: %w", err)
	}
	return written, nil
}
