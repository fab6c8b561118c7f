package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/khanhnv2901/scope-intel/internal/intel"
	"github.com/khanhnv2901/scope-intel/internal/shared/constants"
)

// HTTPHeaderProbe fetches the domain over HTTPS (falling back to HTTP)
// and records the security-relevant response headers. Redirects are
// followed; only a failure on both schemes is a top-level error.
type HTTPHeaderProbe struct {
	Timeout time.Duration
	Logger  *zap.SugaredLogger

	// Schemes overrides the default https-then-http order, used by tests
	// pointing the probe at a local server.
	Schemes []string

	// HostPort overrides the target host:port, used by tests.
	HostPort string
}

func (p *HTTPHeaderProbe) Collect(ctx context.Context, domain string, rec *intel.Record) {
	result := &intel.HTTPHeaders{}
	rec.HTTPHeaders = result

	client := &http.Client{Timeout: effectiveTimeout(p.Timeout)}

	schemes := p.Schemes
	if len(schemes) == 0 {
		schemes = []string{"https", "http"}
	}
	host := p.HostPort
	if host == "" {
		host = domain
	}

	for _, scheme := range schemes {
		url := fmt.Sprintf("%s://%s", scheme, host)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			continue
		}
		req.Header.Set("User-Agent", constants.UserAgent)

		resp, err := client.Do(req)
		if err != nil {
			if p.Logger != nil {
				p.Logger.Warnf("could not connect to %s: %v", url, err)
			}
			continue
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		result.URL = url
		result.StatusCode = resp.StatusCode
		result.SecurityHeaders = extractSecurityHeaders(resp.Header)
		result.AllHeaders = flattenHeaders(resp.Header)
		return
	}

	result.Error = "could not connect to domain"
}

func extractSecurityHeaders(headers http.Header) intel.SecurityHeaders {
	return intel.SecurityHeaders{
		StrictTransportSecurity: headers.Get("Strict-Transport-Security"),
		ContentSecurityPolicy:   headers.Get("Content-Security-Policy"),
		XFrameOptions:           headers.Get("X-Frame-Options"),
		XContentTypeOptions:     headers.Get("X-Content-Type-Options"),
		XXSSProtection:          headers.Get("X-XSS-Protection"),
		ReferrerPolicy:          headers.Get("Referrer-Policy"),
		PermissionsPolicy:       headers.Get("Permissions-Policy"),
		CacheControl:            headers.Get("Cache-Control"),
		Server:                  headers.Get("Server"),
		XPoweredBy:              headers.Get("X-Powered-By"),
	}
}

func flattenHeaders(headers http.Header) map[string]string {
	flat := make(map[string]string, len(headers))
	for name, values := range headers {
		flat[name] = strings.Join(values, ", ")
	}
	return flat
}

func (p *HTTPHeaderProbe) Name() string {
	return "probe http-headers"
}
