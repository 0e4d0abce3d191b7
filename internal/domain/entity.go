package domain

// Kind tags the entity variants produced by the builders.
type Kind string

const (
	KindAccessPoint Kind = "access_point"
	KindDevice      Kind = "device"
)

// Entity is a normalized capture record. The set of implementations is closed
// to AccessPoint and Device.
type Entity interface {
	Kind() Kind
	Common() Radio
	entity()
}

// Radio holds the fields every entity variant extracts the same way.
type Radio struct {
	MAC          string   `json:"mac"`
	Location     Location `json:"location"`
	Frequency    string   `json:"frequency"`
	Channel      string   `json:"channel"`
	Manufacturer string   `json:"manufacturer"`
}

// ExtractRadio runs the shared extractor set.
func ExtractRadio(r RawRecord, useStrongest bool) Radio {
	return Radio{
		MAC:          MAC(r),
		Location:     ResolveLocation(r, useStrongest),
		Frequency:    Frequency(r),
		Channel:      Channel(r),
		Manufacturer: Manufacturer(r),
	}
}

// AccessPoint is a record whose declared type is a Wi-Fi access point.
type AccessPoint struct {
	SSID       string `json:"ssid"`
	Encryption string `json:"encryption"`
	Radio
	Clients ClientSet `json:"clients"`
}

func (AccessPoint) Kind() Kind      { return KindAccessPoint }
func (a AccessPoint) Common() Radio { return a.Radio }
func (AccessPoint) entity()         {}

// Device is any discovered record regardless of its declared type.
type Device struct {
	Name       string `json:"name"`
	CommonName string `json:"commonname"`
	PhyName    string `json:"phyname"`
	Type       string `json:"type"`
	Radio
}

func (Device) Kind() Kind      { return KindDevice }
func (d Device) Common() Radio { return d.Radio }
func (Device) entity()         {}

// BuildAccessPoint normalizes a record into an AccessPoint. It never fails;
// callers select access point rows before building.
func BuildAccessPoint(r RawRecord, useStrongest bool) AccessPoint {
	return AccessPoint{
		SSID:       ResolveSSID(r),
		Encryption: Encryption(r),
		Radio:      ExtractRadio(r, useStrongest),
		Clients:    AssociatedClients(r),
	}
}

// BuildDevice normalizes any record into a Device.
func BuildDevice(r RawRecord, useStrongest bool) Device {
	return Device{
		Name:       Name(r),
		CommonName: CommonName(r),
		PhyName:    PhyName(r),
		Type:       Type(r),
		Radio:      ExtractRadio(r, useStrongest),
	}
}

// Entities widens a typed slice to a slice of Entity.
func Entities[T Entity](items []T) []Entity {
	out := make([]Entity, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
