// Package checker validates looking-glass announcements for one prefix
// against an expected origin AS and peer set, and grades the resulting path
// counts against configured thresholds.
package checker

import (
	"strconv"
	"strings"

	"github.com/hervehildenbrand/check-bgp-prefix/pkg/models"
)

// Result holds the classification of every observation in one snapshot.
// The three findings are disjoint: an observation is a valid path, an
// unexpected peering, or a fishy announcement.
type Result struct {
	// PathCounts counts valid announcements per configured peer, across all
	// collectors. Every configured peer has an entry, observed or not.
	PathCounts map[uint32]int

	// FishyAnnouncements maps the AS captured from a path that does not
	// terminate at the origin to the collectors where it was seen.
	FishyAnnouncements map[uint32]map[string]bool

	// UnexpectedPeers maps valid-looking peers outside the configured set
	// to the collectors where they were seen.
	UnexpectedPeers map[uint32]map[string]bool
}

// Classify runs a single pass over the snapshot and tallies every
// observation. The result is owned by the caller; classifying the same
// snapshot twice yields identical results.
func Classify(origin uint32, peers *PeerSet, collectors []models.RouteCollector) *Result {
	res := &Result{
		PathCounts:         make(map[uint32]int, peers.Len()),
		FishyAnnouncements: make(map[uint32]map[string]bool),
		UnexpectedPeers:    make(map[uint32]map[string]bool),
	}
	for _, asn := range peers.Configured() {
		res.PathCounts[asn] = 0
	}
	for _, rc := range collectors {
		for _, obs := range rc.Observations {
			res.classify(origin, peers, rc.Name, obs.ASPath)
		}
	}
	return res
}

// classify tokenizes one AS-path and files it under exactly one finding.
func (r *Result) classify(origin uint32, peers *PeerSet, collector, path string) {
	tokens := splitASPath(path)
	if len(tokens) == 0 {
		// Empty or unparsable path, skipped.
		return
	}

	// Strip the maximal trailing run of the origin AS.
	end := len(tokens)
	for end > 0 && tokens[end-1] == origin {
		end--
	}

	if end < len(tokens) && end > 0 {
		// The path terminates at the origin; the hop in front of the origin
		// run is the announcing peer.
		peer := tokens[end-1]
		if !peers.Contains(peer) {
			addCollector(r.UnexpectedPeers, peer, collector)
			return
		}
		r.PathCounts[peer]++
		return
	}

	// No distinct peer in front of an origin run: either the path does not
	// terminate at the origin, or it consists only of the origin itself.
	// Capture the hop before the final token (allowing one trailing origin),
	// or the sole token of a one-hop path.
	fishy := tokens[0]
	if len(tokens) >= 2 {
		fishy = tokens[len(tokens)-2]
	}
	addCollector(r.FishyAnnouncements, fishy, collector)
}

// TotalPaths sums the valid path counts over the configured peers only.
func (r *Result) TotalPaths(peers *PeerSet) int {
	total := 0
	for _, asn := range peers.Configured() {
		total += r.PathCounts[asn]
	}
	return total
}

// splitASPath tokenizes a space-separated AS-path into AS numbers. A path
// containing anything but AS numbers yields nil and the observation is
// dropped.
func splitASPath(path string) []uint32 {
	fields := strings.Fields(path)
	if len(fields) == 0 {
		return nil
	}
	tokens := make([]uint32, 0, len(fields))
	for _, field := range fields {
		asn, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return nil
		}
		tokens = append(tokens, uint32(asn))
	}
	return tokens
}

func addCollector(m map[uint32]map[string]bool, asn uint32, collector string) {
	if m[asn] == nil {
		m[asn] = make(map[string]bool)
	}
	m[asn][collector] = true
}
