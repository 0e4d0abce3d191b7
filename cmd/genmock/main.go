// Command genmock writes a synthetic Kismet capture for local runs and test
// fixtures. Records are generated deterministically from -seed and cover the
// record shapes the analyzer handles: scalar and geopoint locations, SSID
// fallbacks, associated clients and a malformed payload.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/drive.kismet -aps 25 -clients 60
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"

	"github.com/couchcryptid/kismet-analyzer/internal/adapter/kismetdb"
	"github.com/couchcryptid/kismet-analyzer/internal/domain"
)

// Base coordinates of the generated drive (Berlin Mitte).
const (
	baseLat = 52.520008
	baseLon = 13.404954
)

var (
	encryptions = []string{"WPA2 WPA2-PSK AES-CCMP", "WPA3 WPA3-SAE", "WEP", "Open", ""}
	vendors     = []string{"AVM GmbH", "TP-Link", "Ubiquiti", "Apple", "Samsung", "Unknown"}
	clientTypes = []string{"Wi-Fi Client", "Wi-Fi Bridged", "Wi-Fi Device"}
	channels    = []struct {
		channel   string
		frequency int
	}{{"1", 2412000}, {"6", 2437000}, {"11", 2462000}, {"36", 5180000}, {"44", 5220000}}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the generated .kismet capture")
	aps := flag.Int("aps", 20, "number of access points")
	clients := flag.Int("clients", 50, "number of client devices")
	seed := flag.Uint64("seed", 20240426, "random seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *aps < 1 || *clients < 0 {
		return fmt.Errorf("-aps must be positive and -clients non-negative")
	}

	rng := rand.New(rand.NewPCG(*seed, *seed>>1))
	devices, err := generate(rng, *aps, *clients)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	if err := kismetdb.WriteFixture(context.Background(), *out, devices); err != nil {
		return err
	}
	log.Printf("wrote %d devices to %s", len(devices), *out)

	printStats(devices)
	return nil
}

func generate(rng *rand.Rand, numAPs, numClients int) ([]kismetdb.FixtureDevice, error) {
	apMACs := make([]string, numAPs)
	for i := range apMACs {
		apMACs[i] = mac(0x00, i)
	}

	associations := make(map[string]map[string]string, numAPs)
	var devices []kismetdb.FixtureDevice

	for i := 0; i < numClients; i++ {
		m := mac(0x02, i)
		typ := clientTypes[rng.IntN(len(clientTypes))]
		rec := baseRecord(rng, m, typ, fmt.Sprintf("client-%03d", i))
		if typ == "Wi-Fi Client" {
			ap := apMACs[rng.IntN(numAPs)]
			if associations[ap] == nil {
				associations[ap] = map[string]string{}
			}
			associations[ap][m] = fmt.Sprintf("kismet.device.base.key-%s", m)
		}
		dev, err := fixture(m, typ, rec)
		if err != nil {
			return nil, err
		}
		devices = append(devices, dev)
	}

	for i, m := range apMACs {
		rec := baseRecord(rng, m, domain.TypeAccessPoint, apName(rng, i))
		rec[domain.KeyBaseCrypt] = encryptions[rng.IntN(len(encryptions))]
		rec[domain.KeyDot11Device] = map[string]any{
			domain.KeyLastBeaconedSSID: fmt.Sprintf("Beacon-%03d", i),
			domain.KeyAdvertisedSSIDMap: []any{
				map[string]any{domain.KeyAdvertisedSSID: fmt.Sprintf("Advertised-%03d", i)},
			},
			domain.KeyAssociatedClientMap: associations[m],
		}
		dev, err := fixture(m, domain.TypeAccessPoint, rec)
		if err != nil {
			return nil, err
		}
		devices = append(devices, dev)
	}

	devices = append(devices, kismetdb.FixtureDevice{
		Key:     "malformed",
		MAC:     "FF:FF:FF:FF:FF:FF",
		Type:    domain.TypeAccessPoint,
		Payload: []byte(`{"kismet.device.base.macaddr": "FF:FF:FF:FF:FF:FF",`),
	})
	return devices, nil
}

// apName leaves some names empty so the SSID fallback chain is exercised.
func apName(rng *rand.Rand, i int) string {
	if rng.IntN(4) == 0 {
		return ""
	}
	prefixes := []string{"HomeNet", "OfficeNet", "Cafe", "FRITZ!Box"}
	return fmt.Sprintf("%s-%03d", prefixes[rng.IntN(len(prefixes))], i)
}

func baseRecord(rng *rand.Rand, m, typ, name string) map[string]any {
	ch := channels[rng.IntN(len(channels))]
	rec := map[string]any{
		domain.KeyBaseMAC:          m,
		domain.KeyBaseName:         name,
		domain.KeyBaseCommonName:   name,
		domain.KeyBasePhyName:      "IEEE802.11",
		domain.KeyBaseType:         typ,
		domain.KeyBaseChannel:      ch.channel,
		domain.KeyBaseFrequency:    ch.frequency,
		domain.KeyBaseManufacturer: vendors[rng.IntN(len(vendors))],
	}
	// One in five records carries no location at all.
	if rng.IntN(5) > 0 {
		rec[domain.KeyBaseLocation] = map[string]any{
			domain.KeyAvgLoc: locationSample(rng, true),
			domain.KeyMaxLoc: locationSample(rng, rng.IntN(2) == 0),
		}
	}
	return rec
}

// locationSample emits scalar fields when scalar is set and only the
// [lat, lon] geopoint otherwise.
func locationSample(rng *rand.Rand, scalar bool) map[string]any {
	lat := baseLat + (rng.Float64()-0.5)*0.02
	lon := baseLon + (rng.Float64()-0.5)*0.02
	if !scalar {
		return map[string]any{domain.KeyGeopoint: []float64{lat, lon}}
	}
	return map[string]any{
		domain.KeyLat:      lat,
		domain.KeyLon:      lon,
		domain.KeyAlt:      30 + rng.Float64()*20,
		domain.KeyGeopoint: []float64{lat, lon},
	}
}

func fixture(m, typ string, rec map[string]any) (kismetdb.FixtureDevice, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return kismetdb.FixtureDevice{}, fmt.Errorf("marshal %s: %w", m, err)
	}
	return kismetdb.FixtureDevice{
		Key:     "key-" + m,
		PhyName: "IEEE802.11",
		MAC:     m,
		Type:    typ,
		Payload: payload,
	}, nil
}

func mac(prefix byte, i int) string {
	return fmt.Sprintf("%02X:00:00:00:%02X:%02X", prefix, (i>>8)&0xff, i&0xff)
}

// printStats normalizes the generated rows with the domain package so the
// numbers match what the analyzer commands will report.
func printStats(devices []kismetdb.FixtureDevice) {
	typeCounts := map[string]int{}
	encCounts := map[string]int{}
	clients := domain.NewClientSet()
	dropped := 0

	for _, d := range devices {
		rec, err := domain.ParseRecord(d.Payload)
		if err != nil {
			dropped++
			continue
		}
		dev := domain.BuildDevice(rec, false)
		typeCounts[dev.Type]++
		if d.Type == domain.TypeAccessPoint {
			ap := domain.BuildAccessPoint(rec, false)
			encCounts[ap.Encryption]++
			clients.Add(ap.Clients)
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Rows: %d (dropped: %d)\n", len(devices), dropped)
	for _, k := range sortedKeys(typeCounts) {
		fmt.Printf("Type %q: %d\n", k, typeCounts[k])
	}
	for _, k := range sortedKeys(encCounts) {
		fmt.Printf("Encryption %q: %d\n", k, encCounts[k])
	}
	fmt.Printf("Associated clients: %d\n", len(clients))
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
