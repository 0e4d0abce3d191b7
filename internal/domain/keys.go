package domain

// Kismet record keys.
const (
	KeyBaseMAC          = "kismet.device.base.macaddr"
	KeyBaseCrypt        = "kismet.device.base.crypt"
	KeyBaseFrequency    = "kismet.device.base.frequency"
	KeyBaseChannel      = "kismet.device.base.channel"
	KeyBaseManufacturer = "kismet.device.base.manuf"
	KeyBaseName         = "kismet.device.base.name"
	KeyBaseCommonName   = "kismet.device.base.commonname"
	KeyBasePhyName      = "kismet.device.base.phyname"
	KeyBaseType         = "kismet.device.base.type"
	KeyBaseLocation     = "kismet.device.base.location"

	KeyAvgLoc   = "kismet.common.location.avg_loc"
	KeyMaxLoc   = "kismet.common.location.max_loc"
	KeyLon      = "kismet.common.location.lon"
	KeyLat      = "kismet.common.location.lat"
	KeyAlt      = "kismet.common.location.alt"
	KeyGeopoint = "kismet.common.location.geopoint"

	KeyDot11Device         = "dot11.device"
	KeyAdvertisedSSIDMap   = "dot11.device.advertised_ssid_map"
	KeyAdvertisedSSID      = "dot11.advertisedssid.ssid"
	KeyLastBeaconedSSID    = "dot11.device.last_beaconed_ssid"
	KeyAssociatedClientMap = "dot11.device.associated_client_map"
)

// TypeAccessPoint is the declared device type of Wi-Fi access points.
const TypeAccessPoint = "Wi-Fi AP"
