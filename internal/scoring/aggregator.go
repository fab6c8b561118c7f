// Package scoring converts an assembled intelligence record into the five
// normalized sub-scores. All rules are deterministic and reproducible from
// the record alone; a missing or errored section contributes its documented
// default.
package scoring

import (
	"strings"
	"time"

	"github.com/khanhnv2901/scope-intel/internal/intel"
)

// riskyPorts carry a 15-point penalty each when found open.
var riskyPorts = map[int]bool{
	21: true, 23: true, 25: true, 110: true, 143: true,
	3306: true, 3389: true, 5432: true,
}

// expectedPorts carry no penalty when open.
var expectedPorts = map[int]bool{80: true, 443: true, 993: true, 995: true}

// creationDateLayouts covers the date formats registries commonly return.
var creationDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
}

// ComputeScores derives the ScoreSet for a record. It is pure and safe to
// call concurrently across records.
func ComputeScores(rec *intel.Record) intel.ScoreSet {
	return ComputeScoresAt(rec, time.Now())
}

// ComputeScoresAt is ComputeScores with an explicit "now" for the
// registration-age rule, so tests can pin time.
func ComputeScoresAt(rec *intel.Record, now time.Time) intel.ScoreSet {
	return intel.ScoreSet{
		SSLScore:         sslScore(rec.SSLInfo),
		DNSEmailScore:    dnsEmailScore(rec.DNSInfo),
		HTTPHeadersScore: httpHeadersScore(rec.HTTPHeaders),
		OpenPortsScore:   openPortsScore(rec.PortScan),
		ReputationScore:  reputationScore(rec.BasicInfo, rec.DarkWebExposure, now),
	}
}

// sslScore: 0 for an invalid or missing certificate; otherwise base 80,
// cipher bonus applied before the expiry penalty, then clamped.
func sslScore(info *intel.SSLInfo) int {
	if info == nil || !info.CertificateValid {
		return 0
	}

	score := 80

	cipher := info.CipherSuite
	switch {
	case strings.Contains(cipher, "_GCM_") || strings.Contains(cipher, "CHACHA20"):
		score += 10
	case strings.Contains(cipher, "ECDHE"):
		score += 5
	}

	if info.DaysUntilExpiry < 30 {
		score -= 20
	} else if info.DaysUntilExpiry < 90 {
		score -= 10
	}

	return clamp(score)
}

func dnsEmailScore(info *intel.DNSInfo) int {
	if info == nil {
		return 0
	}

	score := 0
	if info.SPFRecord != "" {
		score += 30
	}
	if info.DMARCRecord != "" {
		score += 40
	}
	if len(info.MXRecords) > 0 {
		score += 20
	}
	if len(info.ARecords) > 0 {
		score += 10
	}
	return score
}

func httpHeadersScore(result *intel.HTTPHeaders) int {
	if result == nil {
		return 0
	}

	headers := result.SecurityHeaders
	score := 0
	if headers.StrictTransportSecurity != "" {
		score += 20
	}
	if headers.ContentSecurityPolicy != "" {
		score += 20
	}
	if headers.XFrameOptions != "" {
		score += 15
	}
	if headers.XContentTypeOptions != "" {
		score += 15
	}
	if headers.XXSSProtection != "" {
		score += 15
	}
	if headers.ReferrerPolicy != "" {
		score += 15
	}
	return score
}

func openPortsScore(scan *intel.PortScan) int {
	score := 100
	if scan == nil {
		return score
	}

	for _, port := range scan.OpenPorts {
		switch {
		case riskyPorts[port]:
			score -= 15
		case !expectedPorts[port]:
			score -= 5
		}
	}

	if score < 0 {
		score = 0
	}
	return score
}

// reputationScore: base 50, registration-age bonus, dark-web penalty.
// Unparseable creation dates silently skip the bonus.
func reputationScore(info *intel.BasicInfo, exposure *intel.DarkWebExposure, now time.Time) int {
	score := 50

	if info != nil && info.CreationDate != "" {
		if created, ok := parseCreationDate(info.CreationDate); ok {
			ageYears := now.Sub(created).Hours() / 24 / 365
			if ageYears > 5 {
				score += 20
			} else if ageYears > 2 {
				score += 10
			}
		}
	}

	if exposure != nil && exposure.Exposed {
		score -= 30
	}

	return clamp(score)
}

func parseCreationDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	// Registries sometimes append a timezone note after the date.
	if fields := strings.Fields(value); len(fields) > 1 && !strings.Contains(fields[0], ":") {
		value = fields[0]
	}
	for _, layout := range creationDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
