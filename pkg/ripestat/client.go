// Package ripestat queries the RIPE Stat looking-glass data call.
package ripestat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hervehildenbrand/check-bgp-prefix/pkg/models"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the looking-glass endpoint of the RIPE Stat Data API.
	DefaultBaseURL = "https://stat.ripe.net/data/looking-glass/data.json"

	// DefaultTimeout bounds the single fetch; there are no retries.
	DefaultTimeout = 10 * time.Second

	// lastUpdatedLayout is the timestamp format used by the data call.
	lastUpdatedLayout = "2006-01-02T15:04:05"
)

// lgResponse is the top-level envelope of a RIPE Stat data call.
type lgResponse struct {
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
	Data       struct {
		RRCs []lgCollector `json:"rrcs"`
	} `json:"data"`
}

// lgCollector is one route collector entry in the looking-glass data.
type lgCollector struct {
	RRC      string   `json:"rrc"`
	Location string   `json:"location"`
	Peers    []lgPeer `json:"peers"`
}

// lgPeer is one peer announcement within a collector. RIPE Stat encodes
// numeric fields as strings here.
type lgPeer struct {
	Peer        string `json:"peer"`
	Prefix      string `json:"prefix"`
	ASPath      string `json:"as_path"`
	ASNOrigin   string `json:"asn_origin"`
	LastUpdated string `json:"last_updated"`
}

// Client fetches looking-glass snapshots over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

// NewClient creates a looking-glass client. An empty baseURL selects
// DefaultBaseURL, a zero timeout selects DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, log *zap.SugaredLogger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// LookingGlass queries the looking-glass for one prefix and returns the
// route collectors currently holding announcements for it.
func (c *Client) LookingGlass(ctx context.Context, prefix string) ([]models.RouteCollector, error) {
	query := c.baseURL + "?resource=" + url.QueryEscape(prefix)
	c.log.Debugw("querying looking glass", "url", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, query, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("looking-glass fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("looking-glass fetch: unexpected HTTP status %s", resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return nil, fmt.Errorf("unexpected content type %q", ct)
	}

	var lg lgResponse
	if err := json.NewDecoder(resp.Body).Decode(&lg); err != nil {
		return nil, fmt.Errorf("decode looking-glass response: %w", err)
	}
	if lg.Status != "ok" {
		return nil, fmt.Errorf("looking-glass reported status %q", lg.Status)
	}

	collectors := make([]models.RouteCollector, 0, len(lg.Data.RRCs))
	for _, rrc := range lg.Data.RRCs {
		rc := models.RouteCollector{
			Name:         rrc.RRC,
			Location:     rrc.Location,
			Observations: make([]models.PeerObservation, 0, len(rrc.Peers)),
		}
		for _, peer := range rrc.Peers {
			// Timestamp is informational only; a parse failure leaves it zero.
			updated, _ := time.Parse(lastUpdatedLayout, peer.LastUpdated)
			rc.Observations = append(rc.Observations, models.PeerObservation{
				Peer:        peer.Peer,
				Prefix:      peer.Prefix,
				ASPath:      peer.ASPath,
				LastUpdated: updated,
			})
		}
		c.log.Debugw("collector snapshot", "collector", rc.Name, "observations", len(rc.Observations))
		collectors = append(collectors, rc)
	}

	return collectors, nil
}
