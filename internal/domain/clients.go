package domain

import (
	"encoding/json"
	"sort"
)

// ClientSet is a set of client MAC addresses.
type ClientSet map[string]struct{}

// NewClientSet builds a set from the given MACs, collapsing duplicates.
func NewClientSet(macs ...string) ClientSet {
	s := make(ClientSet, len(macs))
	for _, m := range macs {
		s[m] = struct{}{}
	}
	return s
}

// Contains reports whether mac is in the set.
func (s ClientSet) Contains(mac string) bool {
	_, ok := s[mac]
	return ok
}

// Add merges other into s.
func (s ClientSet) Add(other ClientSet) {
	for m := range other {
		s[m] = struct{}{}
	}
}

// Sorted returns the members in lexical order.
func (s ClientSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s ClientSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// AssociatedClients returns the MACs keyed in dot11.device.associated_client_map.
// A missing node yields an empty set.
func AssociatedClients(r RawRecord) ClientSet {
	clients, ok := r.Object(KeyDot11Device, KeyAssociatedClientMap)
	if !ok {
		return ClientSet{}
	}
	s := make(ClientSet, len(clients))
	for mac := range clients {
		s[mac] = struct{}{}
	}
	return s
}
