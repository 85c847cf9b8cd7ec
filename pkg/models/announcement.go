// Package models defines the data structures for one looking-glass snapshot.
package models

import "time"

// RouteCollector is one RIS vantage point and the announcements it currently
// holds for the queried prefix.
type RouteCollector struct {
	Name         string // e.g., "rrc00"
	Location     string // e.g., "Amsterdam, Netherlands"
	Observations []PeerObservation
}

// PeerObservation is a single announcement as seen by one collector peer.
type PeerObservation struct {
	Peer        string // peer IP address
	Prefix      string // announced prefix
	ASPath      string // space-separated AS numbers, origin last
	LastUpdated time.Time
}
