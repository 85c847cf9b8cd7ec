// check-bgp-prefix - monitoring check that validates BGP announcements for
// an IP prefix against an expected origin AS and peer set, using the RIPE
// Stat looking glass.
//
// Usage:
//
//	check-bgp-prefix --asn 1205 --prefix 140.78.0.0/16 --peers 1853,6939 \
//	    --peer-warning 5:,10: --critical 20:
//
// Environment variables with the CHECK_BGP_ prefix mirror the flags, e.g.
// CHECK_BGP_PREFIX, CHECK_BGP_PEERS.
//
// Exit codes follow the monitoring plugin convention: 0=OK, 1=WARNING,
// 2=CRITICAL, 3=UNKNOWN.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/hervehildenbrand/check-bgp-prefix/pkg/checker"
	"github.com/hervehildenbrand/check-bgp-prefix/pkg/ripestat"
	"github.com/olorin/nagiosplugin"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	pflag.Uint32("asn", 0, "Origin AS number the prefix must be announced by (required)")
	pflag.String("prefix", "", "IP prefix to check (required)")
	pflag.String("peers", "", "Comma-separated expected peer AS numbers (required)")
	pflag.String("peer-warning", "", "Comma-separated warning ranges, aligned with --peers")
	pflag.String("peer-critical", "", "Comma-separated critical ranges, aligned with --peers")
	pflag.String("warning", "", "Warning range for the total path count")
	pflag.String("critical", "", "Critical range for the total path count")
	pflag.Duration("timeout", ripestat.DefaultTimeout, "Looking-glass fetch timeout")
	pflag.String("url", ripestat.DefaultBaseURL, "Looking-glass endpoint")
	pflag.BoolP("verbose", "v", false, "Log debug detail to stderr")
	pflag.Parse()

	check := nagiosplugin.NewCheck()
	defer check.Finish()

	viper.SetEnvPrefix("CHECK_BGP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		check.Unknownf("bind flags: %v", err)
	}

	log := newLogger(viper.GetBool("verbose"))
	defer log.Sync()

	origin := viper.GetUint32("asn")
	prefix := viper.GetString("prefix")
	if origin == 0 || prefix == "" || viper.GetString("peers") == "" {
		check.Unknownf("--asn, --prefix and --peers are required")
	}

	peerASNs, err := checker.ParsePeerList(viper.GetString("peers"))
	if err != nil {
		check.Unknownf("invalid --peers: %v", err)
	}
	peers, err := checker.NewPeerSet(peerASNs, viper.GetString("peer-warning"), viper.GetString("peer-critical"))
	if err != nil {
		check.Unknownf("invalid peer thresholds: %v", err)
	}
	total, err := checker.NewThresholds(viper.GetString("warning"), viper.GetString("critical"))
	if err != nil {
		check.Unknownf("invalid total thresholds: %v", err)
	}

	timeout := viper.GetDuration("timeout")
	client := ripestat.NewClient(viper.GetString("url"), timeout, log)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	collectors, err := client.LookingGlass(ctx, prefix)
	if err != nil {
		check.Unknownf("looking-glass query for %s failed: %v", prefix, err)
	}
	log.Debugw("snapshot fetched", "prefix", prefix, "collectors", len(collectors))

	result := checker.Classify(origin, peers, collectors)
	verdict := checker.Compose(result, peers, total)

	check.AddResult(verdict.Status, verdict.Message()+" | "+perfLine(verdict.Perf))
}

// newLogger builds a stderr-only logger; stdout belongs to the plugin line.
func newLogger(verbose bool) *zap.SugaredLogger {
	level := zapcore.ErrorLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return zap.Must(cfg.Build()).Sugar()
}

// perfLine renders the performance samples in the plugin convention
// label=value;warn;crit;min. Rendered here because the warn/crit fields
// carry full range specs like "5:10".
func perfLine(samples []checker.PerfSample) string {
	parts := make([]string, 0, len(samples))
	for _, s := range samples {
		parts = append(parts, fmt.Sprintf("%s=%d;%s;%s;0",
			s.Label, s.Value, s.Thresholds.WarningSpec, s.Thresholds.CriticalSpec))
	}
	return strings.Join(parts, " ")
}
