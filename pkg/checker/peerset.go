package checker

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PeerSet is the configured allow-list of peer ASes. It keeps the
// configuration order (threshold lists are positional) and a per-ASN
// threshold pair resolved once at construction time.
type PeerSet struct {
	order      []uint32
	thresholds map[uint32]Thresholds
}

// ParsePeerList parses a comma-separated list of AS numbers, preserving
// order.
func ParsePeerList(list string) ([]uint32, error) {
	parts := strings.Split(list, ",")
	asns := make([]uint32, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		asn, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("peer ASN %q: %w", part, err)
		}
		asns = append(asns, uint32(asn))
	}
	return asns, nil
}

// NewPeerSet builds the set from the configured peer ASNs and the positional
// warning/critical range lists. Duplicate ASNs keep their first position and
// thresholds.
func NewPeerSet(asns []uint32, warningList, criticalList string) (*PeerSet, error) {
	warnSpecs, err := ParseThresholdList(warningList, len(asns))
	if err != nil {
		return nil, fmt.Errorf("peer warning thresholds: %w", err)
	}
	critSpecs, err := ParseThresholdList(criticalList, len(asns))
	if err != nil {
		return nil, fmt.Errorf("peer critical thresholds: %w", err)
	}

	s := &PeerSet{thresholds: make(map[uint32]Thresholds, len(asns))}
	for i, asn := range asns {
		if _, dup := s.thresholds[asn]; dup {
			continue
		}
		t, err := NewThresholds(warnSpecs[i], critSpecs[i])
		if err != nil {
			return nil, fmt.Errorf("peer AS%d: %w", asn, err)
		}
		s.order = append(s.order, asn)
		s.thresholds[asn] = t
	}
	return s, nil
}

// Contains reports whether an ASN is a configured peer.
func (s *PeerSet) Contains(asn uint32) bool {
	_, ok := s.thresholds[asn]
	return ok
}

// Len returns the number of configured peers.
func (s *PeerSet) Len() int {
	return len(s.order)
}

// Configured returns the peers in configuration order.
func (s *PeerSet) Configured() []uint32 {
	out := make([]uint32, len(s.order))
	copy(out, s.order)
	return out
}

// Sorted returns the peers in ascending AS-number order, for display.
func (s *PeerSet) Sorted() []uint32 {
	out := s.Configured()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Thresholds returns the threshold pair configured for a peer. Unknown peers
// get an unset pair.
func (s *PeerSet) Thresholds(asn uint32) Thresholds {
	return s.thresholds[asn]
}
