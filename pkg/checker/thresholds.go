package checker

import (
	"fmt"
	"strings"

	"github.com/olorin/nagiosplugin"
)

// Thresholds is the warning/critical range pair applied to one counted
// value. Either range may be unset.
type Thresholds struct {
	Warning  *nagiosplugin.Range
	Critical *nagiosplugin.Range

	// Original range specs, kept for performance-data rendering.
	WarningSpec  string
	CriticalSpec string
}

// NewThresholds parses a warning and a critical range spec in the
// conventional monitoring range syntax ("10", "5:", "~:20", "5:10", "@5:10").
// Empty specs leave the corresponding range unset.
func NewThresholds(warningSpec, criticalSpec string) (Thresholds, error) {
	t := Thresholds{WarningSpec: warningSpec, CriticalSpec: criticalSpec}
	if warningSpec != "" {
		r, err := nagiosplugin.ParseRange(warningSpec)
		if err != nil {
			return Thresholds{}, fmt.Errorf("warning range %q: %w", warningSpec, err)
		}
		t.Warning = r
	}
	if criticalSpec != "" {
		r, err := nagiosplugin.ParseRange(criticalSpec)
		if err != nil {
			return Thresholds{}, fmt.Errorf("critical range %q: %w", criticalSpec, err)
		}
		t.Critical = r
	}
	return t, nil
}

// Unset reports whether neither range is configured.
func (t Thresholds) Unset() bool {
	return t.Warning == nil && t.Critical == nil
}

// Evaluate grades a count against the pair: outside the critical range is
// CRITICAL, outside the warning range is WARNING, otherwise OK. Unset ranges
// never raise.
func (t Thresholds) Evaluate(count int) nagiosplugin.Status {
	if t.Critical != nil && t.Critical.Check(float64(count)) {
		return nagiosplugin.CRITICAL
	}
	if t.Warning != nil && t.Warning.Check(float64(count)) {
		return nagiosplugin.WARNING
	}
	return nagiosplugin.OK
}

// ParseThresholdList splits a comma-separated list of range specs that is
// positionally aligned with the configured peer list. Empty elements are
// unset; a list shorter than the peer list leaves the remaining peers unset,
// a longer one is a configuration error.
func ParseThresholdList(list string, peerCount int) ([]string, error) {
	specs := make([]string, peerCount)
	if list == "" {
		return specs, nil
	}
	parts := strings.Split(list, ",")
	if len(parts) > peerCount {
		return nil, fmt.Errorf("%d threshold ranges configured for %d peers", len(parts), peerCount)
	}
	for i, part := range parts {
		specs[i] = strings.TrimSpace(part)
	}
	return specs, nil
}
