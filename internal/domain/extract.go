package domain

// Extractor maps a record to one normalized string, or "" when the key path
// is absent at any level.
type Extractor func(RawRecord) string

// baseField extracts a top-level kismet.device.base.* scalar.
func baseField(key string) Extractor {
	return func(r RawRecord) string {
		return r.String(key)
	}
}

// Field extractors.
var (
	MAC          = baseField(KeyBaseMAC)
	Encryption   = baseField(KeyBaseCrypt)
	Frequency    = baseField(KeyBaseFrequency)
	Channel      = baseField(KeyBaseChannel)
	Manufacturer = baseField(KeyBaseManufacturer)
	Name         = baseField(KeyBaseName)
	CommonName   = baseField(KeyBaseCommonName)
	PhyName      = baseField(KeyBasePhyName)
	Type         = baseField(KeyBaseType)
)
