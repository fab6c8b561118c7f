package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/khanhnv2901/scope-intel/internal/intel"
	"github.com/khanhnv2901/scope-intel/internal/shared/constants"
)

const shodanDomainEndpoint = "https://api.shodan.io/dns/domain/"

// ThreatFeedProbe queries the Shodan DNS API for subdomains, tags and raw
// records associated with the domain. Without an API key it records an
// explicit not-configured result instead of contacting the feed.
type ThreatFeedProbe struct {
	APIKey  string
	Timeout time.Duration
	Logger  *zap.SugaredLogger

	// BaseURL overrides the feed endpoint, used by tests.
	BaseURL string
}

type shodanDomainResponse struct {
	Subdomains []string                 `json:"subdomains"`
	Tags       []string                 `json:"tags"`
	Data       []map[string]interface{} `json:"data"`
}

func (p *ThreatFeedProbe) Collect(ctx context.Context, domain string, rec *intel.Record) {
	data := &intel.ShodanData{
		Subdomains: []string{},
		Tags:       []string{},
		Data:       []map[string]interface{}{},
	}
	rec.ShodanData = data

	if p.APIKey == "" {
		data.Error = "Shodan API key not provided"
		return
	}

	base := p.BaseURL
	if base == "" {
		base = shodanDomainEndpoint
	}
	endpoint := base + url.PathEscape(domain) + "?key=" + url.QueryEscape(p.APIKey)

	reqCtx, cancel := context.WithTimeout(ctx, effectiveTimeout(p.Timeout))
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		data.Error = err.Error()
		return
	}
	req.Header.Set("User-Agent", constants.UserAgent)

	client := &http.Client{Timeout: effectiveTimeout(p.Timeout)}
	resp, err := client.Do(req)
	if err != nil {
		if p.Logger != nil {
			p.Logger.Warnf("threat feed lookup failed for %s: %v", domain, err)
		}
		data.Error = err.Error()
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		data.Error = fmt.Sprintf("Shodan API error: %d", resp.StatusCode)
		return
	}

	var parsed shodanDomainResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		data.Error = fmt.Sprintf("invalid feed response: %v", err)
		return
	}

	if parsed.Subdomains != nil {
		data.Subdomains = parsed.Subdomains
	}
	if parsed.Tags != nil {
		data.Tags = parsed.Tags
	}
	if parsed.Data != nil {
		data.Data = parsed.Data
	}
}

func (p *ThreatFeedProbe) Name() string {
	return "probe threat-feed"
}
