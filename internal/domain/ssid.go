package domain

import "sort"

// ResolveSSID returns the network name of a record. Sources are tried in a
// fixed order and the first non-empty one wins:
//
//  1. kismet.device.base.name
//  2. the ssid of the first advertised SSID entry
//  3. dot11.device.last_beaconed_ssid
//  4. the MAC address
func ResolveSSID(r RawRecord) string {
	if name := Name(r); name != "" {
		return name
	}
	if ssid := firstAdvertisedSSID(r); ssid != "" {
		return ssid
	}
	if ssid := r.String(KeyDot11Device, KeyLastBeaconedSSID); ssid != "" {
		return ssid
	}
	return MAC(r)
}

func firstAdvertisedSSID(r RawRecord) string {
	v, ok := r.Lookup(KeyDot11Device, KeyAdvertisedSSIDMap)
	if !ok {
		return ""
	}

	var first any
	switch entries := v.(type) {
	case []any:
		if len(entries) == 0 {
			return ""
		}
		first = entries[0]
	case map[string]any:
		if len(entries) == 0 {
			return ""
		}
		keys := make([]string, 0, len(entries))
		for k := range entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		first = entries[keys[0]]
	default:
		return ""
	}

	entry, ok := asObject(first)
	if !ok {
		return ""
	}
	return RawRecord(entry).String(KeyAdvertisedSSID)
}
