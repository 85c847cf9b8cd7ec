package checker

import (
	"strings"
	"testing"

	"github.com/hervehildenbrand/check-bgp-prefix/pkg/models"
	"github.com/olorin/nagiosplugin"
)

func TestCompose_AllOK(t *testing.T) {
	peers, err := NewPeerSet([]uint32{65020, 65010}, "1:,1:", "")
	if err != nil {
		t.Fatalf("NewPeerSet failed: %v", err)
	}
	res := Classify(65001, peers, []models.RouteCollector{
		snapshot("rrc00", "65010 65001", "65020 65001", "65020 65001"),
	})
	total, _ := NewThresholds("1:", "")

	v := Compose(res, peers, total)

	if v.Status != nagiosplugin.OK {
		t.Errorf("Expected OK, got %v", v.Status)
	}
	if len(v.Messages) != 1 {
		t.Fatalf("Expected only the summary message, got %v", v.Messages)
	}
	// Summary sorted by AS number regardless of configuration order.
	if v.Messages[0] != "1 via AS65010, 2 via AS65020" {
		t.Errorf("Summary: got %q", v.Messages[0])
	}
}

func TestCompose_MessageOrder(t *testing.T) {
	peers, err := NewPeerSet([]uint32{65010, 65020}, "5:10,", "")
	if err != nil {
		t.Fatalf("NewPeerSet failed: %v", err)
	}
	res := Classify(65001, peers, []models.RouteCollector{
		snapshot("rrc00", "65010 65002", "65099 65001", "65010 65001", "65010 65001", "65010 65001"),
		snapshot("rrc01", "65003 65002"),
	})
	total, _ := NewThresholds("", "10:")

	v := Compose(res, peers, total)

	if v.Status != nagiosplugin.CRITICAL {
		t.Errorf("Expected CRITICAL, got %v", v.Status)
	}

	expected := []string{
		"fishy announcement from AS65003 at rrc01",
		"fishy announcement from AS65010 at rrc00",
		"unexpected peer AS65099 at rrc00",
		"path count AS65010=3",
		"total path count=3",
		"3 via AS65010, 0 via AS65020",
	}
	// The summary itself is joined with the fragment delimiter, so compare
	// the full composed line.
	if got, want := v.Message(), strings.Join(expected, ", "); got != want {
		t.Errorf("Composed message:\n got %q\nwant %q", got, want)
	}
}

func TestCompose_PeerWarningOnly(t *testing.T) {
	peers, err := NewPeerSet([]uint32{65010}, "5:10", "")
	if err != nil {
		t.Fatalf("NewPeerSet failed: %v", err)
	}
	res := Classify(65001, peers, []models.RouteCollector{
		snapshot("rrc00", "65010 65001", "65010 65001", "65010 65001"),
	})

	v := Compose(res, peers, Thresholds{})

	if v.Status != nagiosplugin.WARNING {
		t.Errorf("Expected WARNING, got %v", v.Status)
	}
	if v.Messages[0] != "path count AS65010=3" {
		t.Errorf("Breach message: got %q", v.Messages[0])
	}
	for _, msg := range v.Messages {
		if strings.Contains(msg, "total") {
			t.Errorf("Unset total thresholds produced a message: %q", msg)
		}
	}
}

func TestCompose_UnsetPeerThresholdsSkipped(t *testing.T) {
	peers := newTestPeerSet(t, 65010)
	res := Classify(65001, peers, nil)

	v := Compose(res, peers, Thresholds{})

	if v.Status != nagiosplugin.OK {
		t.Errorf("Expected OK with all thresholds unset, got %v", v.Status)
	}
	if len(v.Messages) != 1 || v.Messages[0] != "0 via AS65010" {
		t.Errorf("Expected bare summary, got %v", v.Messages)
	}
}

func TestCompose_PerfSamples(t *testing.T) {
	peers, err := NewPeerSet([]uint32{65020, 65010}, "5:10,", ",2:")
	if err != nil {
		t.Fatalf("NewPeerSet failed: %v", err)
	}
	res := Classify(65001, peers, []models.RouteCollector{
		snapshot("rrc00", "65010 65001"),
	})
	total, _ := NewThresholds("1:", "0:")

	v := Compose(res, peers, total)

	if len(v.Perf) != 3 {
		t.Fatalf("Expected 3 perf samples, got %d", len(v.Perf))
	}
	// Peer samples follow configuration order, total comes last.
	if v.Perf[0].Label != "AS65020" || v.Perf[0].Value != 0 || v.Perf[0].Thresholds.WarningSpec != "5:10" {
		t.Errorf("Sample 0: %+v", v.Perf[0])
	}
	if v.Perf[1].Label != "AS65010" || v.Perf[1].Value != 1 || v.Perf[1].Thresholds.CriticalSpec != "2:" {
		t.Errorf("Sample 1: %+v", v.Perf[1])
	}
	if v.Perf[2].Label != "total" || v.Perf[2].Value != 1 || v.Perf[2].Thresholds.WarningSpec != "1:" {
		t.Errorf("Sample 2: %+v", v.Perf[2])
	}
}

func TestWorse(t *testing.T) {
	tests := []struct {
		name     string
		a, b     nagiosplugin.Status
		expected nagiosplugin.Status
	}{
		{"critical beats warning", nagiosplugin.WARNING, nagiosplugin.CRITICAL, nagiosplugin.CRITICAL},
		{"warning beats unknown", nagiosplugin.UNKNOWN, nagiosplugin.WARNING, nagiosplugin.WARNING},
		{"unknown beats ok", nagiosplugin.OK, nagiosplugin.UNKNOWN, nagiosplugin.UNKNOWN},
		{"equal", nagiosplugin.OK, nagiosplugin.OK, nagiosplugin.OK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := worse(tt.a, tt.b); got != tt.expected {
				t.Errorf("worse(%v, %v): expected %v, got %v", tt.a, tt.b, tt.expected, got)
			}
			if got := worse(tt.b, tt.a); got != tt.expected {
				t.Errorf("worse(%v, %v): expected %v, got %v", tt.b, tt.a, tt.expected, got)
			}
		})
	}
}
