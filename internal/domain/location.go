package domain

// Location is a coordinate triple kept in Kismet's textual form.
// All three fields are always populated.
type Location struct {
	Lon string `json:"lon"`
	Lat string `json:"lat"`
	Alt string `json:"alt"`
}

// ZeroLocation is the location used when no sample can be resolved.
func ZeroLocation() Location {
	return Location{Lon: "0", Lat: "0", Alt: "0"}
}

// ResolveLocation selects the strongest-signal sample when useStrongest is
// set and the average sample otherwise. A missing sample yields ZeroLocation.
func ResolveLocation(r RawRecord, useStrongest bool) Location {
	key := KeyAvgLoc
	if useStrongest {
		key = KeyMaxLoc
	}
	sample, ok := r.Object(KeyBaseLocation, key)
	if !ok {
		return ZeroLocation()
	}
	return locationFromSample(sample)
}

// locationFromSample prefers the scalar lon/lat/alt fields and falls back to
// the [lat, lon] geopoint when any scalar is missing. An empty string counts
// as missing.
func locationFromSample(sample RawRecord) Location {
	lon, hasLon := nonEmptyScalar(sample, KeyLon)
	lat, hasLat := nonEmptyScalar(sample, KeyLat)
	alt, hasAlt := nonEmptyScalar(sample, KeyAlt)
	if hasLon && hasLat && hasAlt {
		return Location{Lon: lon, Lat: lat, Alt: alt}
	}

	gLat, gLon, ok := geopoint(sample)
	if !ok {
		return ZeroLocation()
	}
	loc := Location{Lon: gLon, Lat: gLat, Alt: "0"}
	if hasAlt {
		loc.Alt = alt
	}
	return loc
}

func geopoint(sample RawRecord) (lat, lon string, ok bool) {
	v, found := sample.Lookup(KeyGeopoint)
	if !found {
		return "", "", false
	}
	pair, isSlice := v.([]any)
	if !isSlice || len(pair) != 2 {
		return "", "", false
	}
	lat, okLat := scalarString(pair[0])
	lon, okLon := scalarString(pair[1])
	if !okLat || !okLon || lat == "" || lon == "" {
		return "", "", false
	}
	return lat, lon, true
}

func nonEmptyScalar(sample RawRecord, key string) (string, bool) {
	v, ok := sample.Scalar(key)
	return v, ok && v != ""
}
