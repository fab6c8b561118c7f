package probe

import (
	"context"
	"math/rand"
	"time"

	"github.com/khanhnv2901/scope-intel/internal/intel"
)

// ExposureFeed is the pluggable dark-web signal source. Production
// deployments swap in a real feed behind this contract; the reference
// implementation below is a stand-in simulator.
type ExposureFeed interface {
	CheckExposure(ctx context.Context, domain string) intel.DarkWebExposure
}

// DarkWebExposureProbe adapts an ExposureFeed into the probe contract.
type DarkWebExposureProbe struct {
	Feed ExposureFeed
}

func (p *DarkWebExposureProbe) Collect(ctx context.Context, domain string, rec *intel.Record) {
	exposure := intel.DarkWebExposure{
		ExposureTypes: []string{},
		BreachData:    []intel.BreachRecord{},
		LastChecked:   time.Now().UTC(),
	}

	if p.Feed != nil {
		exposure = p.Feed.CheckExposure(ctx, domain)
	}
	rec.DarkWebExposure = &exposure
}

func (p *DarkWebExposureProbe) Name() string {
	return "probe dark-web"
}

// SimulatedExposureFeed is a placeholder signal source with randomized
// outcomes. It exists so the aggregator and risk models can be exercised
// end to end before a real exposure feed is integrated.
type SimulatedExposureFeed struct {
	Rand *rand.Rand // optional deterministic source for tests
}

func (f *SimulatedExposureFeed) CheckExposure(ctx context.Context, domain string) intel.DarkWebExposure {
	rng := f.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	exposure := intel.DarkWebExposure{
		ExposureTypes: []string{},
		BreachData:    []intel.BreachRecord{},
		LastChecked:   time.Now().UTC(),
	}

	switch p := rng.Float64(); {
	case p > 0.7:
		exposure.ExposureTypes = []string{"email_credentials", "domain_credentials"}
	case p > 0.4:
		exposure.ExposureTypes = []string{"email_credentials"}
	}

	if len(exposure.ExposureTypes) > 0 {
		exposure.Exposed = true
		exposure.BreachData = []intel.BreachRecord{
			{
				Type:   "credentials",
				Source: "pastebin",
				Date:   "2024-01-15",
				Count:  10 + rng.Intn(991),
			},
		}
	}

	return exposure
}
