package checker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olorin/nagiosplugin"
)

// messageDelimiter joins the verdict's message fragments.
const messageDelimiter = ", "

// PerfSample is one named performance value with its threshold pair, for the
// reporting collaborator to render.
type PerfSample struct {
	Label      string
	Value      int
	Thresholds Thresholds
}

// Verdict is the final outcome of one check run: the merged status, the
// ordered message fragments and the performance samples.
type Verdict struct {
	Status   nagiosplugin.Status
	Messages []string
	Perf     []PerfSample
}

// Message returns the composed status line.
func (v *Verdict) Message() string {
	return strings.Join(v.Messages, messageDelimiter)
}

// severity ranks statuses for the merge. CRITICAL dominates everything and
// UNKNOWN ranks below WARNING.
var severity = map[nagiosplugin.Status]int{
	nagiosplugin.OK:       0,
	nagiosplugin.UNKNOWN:  1,
	nagiosplugin.WARNING:  2,
	nagiosplugin.CRITICAL: 3,
}

func worse(a, b nagiosplugin.Status) nagiosplugin.Status {
	if severity[b] > severity[a] {
		return b
	}
	return a
}

// Compose merges the classification findings and threshold evaluations into
// one verdict. Fragment order: fishy announcements, unexpected peers,
// per-peer threshold breaches, total breach, then the always-present path
// count summary.
func Compose(res *Result, peers *PeerSet, total Thresholds) *Verdict {
	v := &Verdict{Status: nagiosplugin.OK}

	for _, asn := range sortedKeys(res.FishyAnnouncements) {
		v.add(nagiosplugin.CRITICAL,
			fmt.Sprintf("fishy announcement from AS%d at %s", asn, joinCollectors(res.FishyAnnouncements[asn])))
	}
	for _, asn := range sortedKeys(res.UnexpectedPeers) {
		v.add(nagiosplugin.CRITICAL,
			fmt.Sprintf("unexpected peer AS%d at %s", asn, joinCollectors(res.UnexpectedPeers[asn])))
	}

	for _, asn := range peers.Configured() {
		t := peers.Thresholds(asn)
		if t.Unset() {
			continue
		}
		if st := t.Evaluate(res.PathCounts[asn]); st != nagiosplugin.OK {
			v.add(st, fmt.Sprintf("path count AS%d=%d", asn, res.PathCounts[asn]))
		}
	}

	totalPaths := res.TotalPaths(peers)
	if st := total.Evaluate(totalPaths); st != nagiosplugin.OK {
		v.add(st, fmt.Sprintf("total path count=%d", totalPaths))
	}

	summary := make([]string, 0, peers.Len())
	for _, asn := range peers.Sorted() {
		summary = append(summary, fmt.Sprintf("%d via AS%d", res.PathCounts[asn], asn))
	}
	v.Messages = append(v.Messages, strings.Join(summary, messageDelimiter))

	for _, asn := range peers.Configured() {
		v.Perf = append(v.Perf, PerfSample{
			Label:      fmt.Sprintf("AS%d", asn),
			Value:      res.PathCounts[asn],
			Thresholds: peers.Thresholds(asn),
		})
	}
	v.Perf = append(v.Perf, PerfSample{Label: "total", Value: totalPaths, Thresholds: total})

	return v
}

func (v *Verdict) add(st nagiosplugin.Status, msg string) {
	v.Status = worse(v.Status, st)
	v.Messages = append(v.Messages, msg)
}

func sortedKeys(m map[uint32]map[string]bool) []uint32 {
	keys := make([]uint32, 0, len(m))
	for asn := range m {
		keys = append(keys, asn)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// joinCollectors lists the distinct collector names in sorted order.
func joinCollectors(set map[string]bool) string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
