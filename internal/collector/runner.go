package collector

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/khanhnv2901/scope-intel/internal/intel"
	"github.com/khanhnv2901/scope-intel/internal/shared/constants"
)

// Runner executes collections for multiple domains with bounded
// concurrency and a global rate limit, so batch runs do not hammer
// resolvers or registries.
type Runner struct {
	Concurrency int // maximum concurrent domain collections
	RateLimit   int // collections started per second (global)
}

// Run collects intelligence for every domain and returns the records in
// input order. Individual collections never fail; a canceled context
// simply yields records whose probes report timeout errors.
func (r *Runner) Run(ctx context.Context, domains []string, c *Collector) []*intel.Record {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrency
	}
	rateLimit := r.RateLimit
	if rateLimit <= 0 {
		rateLimit = constants.DefaultRateLimit
	}

	limiter := rate.NewLimiter(rate.Limit(rateLimit), rateLimit)

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	records := make([]*intel.Record, len(domains))

	for i, domain := range domains {
		wg.Add(1)
		go func(idx int, d string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			_ = limiter.Wait(ctx)

			records[idx] = c.Collect(ctx, d)
		}(i, domain)
	}

	wg.Wait()
	return records
}
