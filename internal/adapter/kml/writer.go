// Package kml writes normalized entities as KML placemarks for display in
// Google Earth and similar viewers.
package kml

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/kismet-analyzer/internal/domain"
	gokml "github.com/twpayne/go-kml/v3"
)

var (
	green  = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}
	orange = color.RGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}
	red    = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	yellow = color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}
)

// NetworkColor maps an encryption string to the pin colour of its access
// point. The first matching rule wins.
func NetworkColor(encryption string) color.RGBA {
	switch {
	case strings.Contains(encryption, "WPA"):
		return green
	case strings.Contains(encryption, "WEP"):
		return orange
	case strings.Contains(encryption, "Open"):
		return red
	default:
		return yellow
	}
}

// WriteAccessPoints writes one placemark per access point, named by SSID and
// described by its encryption, into a document titled title.
func WriteAccessPoints(w io.Writer, title string, aps []domain.AccessPoint) (int, error) {
	placemarks := make([]gokml.Element, 0, len(aps))
	for _, ap := range aps {
		placemarks = append(placemarks, placemark(ap.SSID, ap.Encryption, ap.Location, NetworkColor(ap.Encryption)))
	}
	return write(w, title, placemarks)
}

// WriteDevices writes one yellow placemark per device into a document titled
// title.
func WriteDevices(w io.Writer, title string, devs []domain.Device) (int, error) {
	placemarks := make([]gokml.Element, 0, len(devs))
	for _, d := range devs {
		placemarks = append(placemarks, placemark(d.Name, DeviceDescription(d), d.Location, yellow))
	}
	return write(w, title, placemarks)
}

// DeviceDescription renders the multi-line placemark description of a device.
func DeviceDescription(d domain.Device) string {
	return fmt.Sprintf("MAC: %s\nName: %s\nCommonname: %s\nPhyName: %s\nManufacturer: %s\nType: %s\nFrequency: %s\nChannel: %s",
		d.MAC, d.Name, d.CommonName, d.PhyName, d.Manufacturer, d.Type, d.Frequency, d.Channel)
}

// Coordinate converts a textual location into KML coordinates. Components
// that do not parse as numbers become 0.
func Coordinate(loc domain.Location) gokml.Coordinate {
	return gokml.Coordinate{
		Lon: parseFloat(loc.Lon),
		Lat: parseFloat(loc.Lat),
		Alt: parseFloat(loc.Alt),
	}
}

func placemark(name, description string, loc domain.Location, c color.Color) gokml.Element {
	return gokml.Placemark(
		gokml.Name(name),
		gokml.Description(description),
		gokml.Style(
			gokml.IconStyle(gokml.Color(c)),
		),
		gokml.Point(
			gokml.Coordinates(Coordinate(loc)),
		),
	)
}

func write(w io.Writer, title string, placemarks []gokml.Element) (int, error) {
	children := append([]gokml.Element{gokml.Name(title)}, placemarks...)
	doc := gokml.KML(gokml.Document(children...))
	if err := doc.WriteIndent(w, "", "  "); err != nil {
		return 0, fmt.Errorf("write kml: %w", err)
	}
	return len(placemarks), nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
