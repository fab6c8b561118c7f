// Package collector orchestrates the probe set for a domain and assembles
// the final intelligence record. A collection never fails as a whole:
// probe errors are embedded in the record and total probe failure still
// yields a complete record with default scores.
package collector

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khanhnv2901/scope-intel/internal/intel"
	"github.com/khanhnv2901/scope-intel/internal/probe"
	"github.com/khanhnv2901/scope-intel/internal/scoring"
	"github.com/khanhnv2901/scope-intel/internal/shared/constants"
)

// State tracks a single collection's lifecycle. There is no failed
// terminal state: every collection completes.
type State string

const (
	StateNotStarted    State = "not_started"
	StateProbesRunning State = "probes_running"
	StateAggregating   State = "aggregating"
	StateComplete      State = "complete"
)

// Config carries collection-level settings. Zero values fall back to the
// defaults in shared/constants.
type Config struct {
	ProbeTimeout       time.Duration
	PortDialTimeout    time.Duration
	CollectionDeadline time.Duration
	ShodanAPIKey       string
	NameServers        []string
	ExposureFeed       probe.ExposureFeed
}

// Collector runs the probe set concurrently against a domain. It holds no
// state shared across collections, so one Collector may serve concurrent
// Collect calls for different domains.
type Collector struct {
	probes   []probe.Probe
	deadline time.Duration
	logger   *zap.SugaredLogger
}

// New wires the full probe set from cfg.
func New(cfg Config, logger *zap.SugaredLogger) *Collector {
	timeout := cfg.ProbeTimeout
	if timeout <= 0 {
		timeout = constants.DefaultProbeTimeout
	}
	deadline := cfg.CollectionDeadline
	if deadline <= 0 {
		deadline = constants.DefaultCollectionDeadline
	}
	feed := cfg.ExposureFeed
	if feed == nil {
		feed = &probe.SimulatedExposureFeed{}
	}

	probes := []probe.Probe{
		&probe.RegistryProbe{Timeout: timeout, Logger: logger},
		&probe.TLSProbe{Timeout: timeout, Logger: logger},
		&probe.DNSSecurityProbe{Timeout: timeout, Logger: logger, NameServer: cfg.NameServers},
		&probe.HTTPHeaderProbe{Timeout: timeout, Logger: logger},
		&probe.PortScanProbe{DialTimeout: cfg.PortDialTimeout, Logger: logger},
		&probe.ThreatFeedProbe{APIKey: cfg.ShodanAPIKey, Timeout: timeout, Logger: logger},
		&probe.DarkWebExposureProbe{Feed: feed},
	}

	return &Collector{probes: probes, deadline: deadline, logger: logger}
}

// NewWithProbes builds a collector over an explicit probe set, used by
// tests and callers that substitute probes.
func NewWithProbes(probes []probe.Probe, deadline time.Duration, logger *zap.SugaredLogger) *Collector {
	if deadline <= 0 {
		deadline = constants.DefaultCollectionDeadline
	}
	return &Collector{probes: probes, deadline: deadline, logger: logger}
}

// Collect normalizes the domain, fans the probe set out concurrently,
// waits for every probe outcome (success or embedded error), then computes
// the score set. It always returns a complete record.
func (c *Collector) Collect(ctx context.Context, rawDomain string) *intel.Record {
	domain := intel.NormalizeDomain(rawDomain)

	rec := &intel.Record{
		Domain:              domain,
		CollectionTimestamp: time.Now().UTC(),
	}

	state := StateNotStarted
	if c.logger != nil {
		c.logger.Infow("starting intelligence collection", "domain", domain, "state", state)
	}

	collectCtx, cancel := context.WithTimeout(ctx, c.deadline)
	defer cancel()

	state = StateProbesRunning
	if c.logger != nil {
		c.logger.Debugw("dispatching probes", "domain", domain, "state", state, "probes", len(c.probes))
	}
	g, gctx := errgroup.WithContext(collectCtx)
	for _, p := range c.probes {
		p := p
		g.Go(func() error {
			start := time.Now()
			// Probes write disjoint record sections, so no locking is
			// needed; failures stay inside the section.
			p.Collect(gctx, domain, rec)
			if c.logger != nil {
				c.logger.Debugw("probe finished", "probe", p.Name(), "domain", domain,
					"duration_ms", time.Since(start).Seconds()*1000)
			}
			return nil
		})
	}
	_ = g.Wait()

	state = StateAggregating
	if c.logger != nil {
		c.logger.Debugw("aggregating probe results", "domain", domain, "state", state)
	}
	rec.Scores = scoring.ComputeScores(rec)

	state = StateComplete
	if c.logger != nil {
		c.logger.Infow("completed intelligence collection", "domain", domain, "state", state,
			"ssl_score", rec.Scores.SSLScore, "reputation_score", rec.Scores.ReputationScore)
	}

	return rec
}
