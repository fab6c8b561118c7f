package probe

import (
	"context"
	"time"

	"github.com/khanhnv2901/scope-intel/internal/intel"
	"github.com/khanhnv2901/scope-intel/internal/shared/constants"
)

// Probe is the contract shared by every intelligence source: given a
// normalized domain, fill the probe's section of the record within its
// timeout budget. Failures are recorded as structured errors on the
// section and never escape the probe boundary.
type Probe interface {
	// Collect inspects the domain and writes this probe's section of rec.
	Collect(ctx context.Context, domain string, rec *intel.Record)

	// Name returns the name of this probe (e.g., "probe dns", "probe tls")
	Name() string
}

func effectiveTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return constants.DefaultProbeTimeout
	}
	return d
}
