package risk

import (
	"math"
	"strings"
	"time"
)

// Baseline risk weights; they sum to exactly 1.0.
const (
	weightNetwork    = 0.25
	weightEndpoint   = 0.20
	weightCloud      = 0.15
	weightCompliance = 0.20
	weightDataBreach = 0.20
)

// Endpoint and cloud posture are supplied by questionnaires outside this
// engine; until those land the legacy defaults apply.
const (
	defaultEndpointRisk = 35
	defaultCloudRisk    = 25
)

// noBreachSentinel is the literal clients use to report a clean history.
const noBreachSentinel = "None reported"

// BaselineAttributes are the plain client/vendor attributes consumed by
// the legacy weighted-risk calculator.
type BaselineAttributes struct {
	SecurityTools       []string
	SecurityGaps        string // comma-separated gap items
	ComplianceStandards []string
	LastAuditDate       *time.Time
	KnownDataBreaches   string
}

// BaselineScores holds the per-dimension scores feeding the weighted sum.
type BaselineScores struct {
	Network    float64
	Endpoint   float64
	Cloud      float64
	Compliance float64
	DataBreach float64
}

// Profile is the outcome of one assessment. It is never mutated after
// creation; re-assessment produces a new Profile.
type Profile struct {
	OverallScore    float64        `json:"overall_score"`
	RiskLevel       Level          `json:"risk_level"`
	Scores          BaselineScores `json:"-"`
	Recommendations []string       `json:"recommendations"`
	RiskFactors     []string       `json:"risk_factors,omitempty"`
}

// NetworkRisk scores network posture: base 50, minus 5 per deployed
// security tool, plus 10 per listed gap.
func NetworkRisk(securityTools []string, gaps string) float64 {
	score := 50 - 5*len(securityTools)
	if gaps != "" {
		score += 10 * len(strings.Split(gaps, ","))
	}
	return clampScore(float64(score))
}

// ComplianceRisk scores compliance posture. No adopted standards scores a
// flat 80; otherwise base 30 plus 20 when the last audit is older than a
// year.
func ComplianceRisk(standards []string, lastAudit *time.Time, now time.Time) float64 {
	if len(standards) == 0 {
		return 80
	}
	score := 30.0
	if lastAudit != nil && now.Sub(*lastAudit) > 365*24*time.Hour {
		score += 20
	}
	return clampScore(score)
}

// BreachRisk scores breach history: 20 for no reported breaches, 70
// otherwise.
func BreachRisk(breaches string) float64 {
	if breaches == "" || breaches == noBreachSentinel {
		return 20
	}
	return 70
}

// OverallRisk combines the dimension scores with the fixed weights,
// rounded to two decimal places.
func OverallRisk(s BaselineScores) float64 {
	total := s.Network*weightNetwork +
		s.Endpoint*weightEndpoint +
		s.Cloud*weightCloud +
		s.Compliance*weightCompliance +
		s.DataBreach*weightDataBreach
	return math.Round(total*100) / 100
}

// Baseline runs the full legacy calculation over vendor attributes and
// returns an immutable Profile.
func Baseline(attrs BaselineAttributes, now time.Time) Profile {
	scores := BaselineScores{
		Network:    NetworkRisk(attrs.SecurityTools, attrs.SecurityGaps),
		Endpoint:   defaultEndpointRisk,
		Cloud:      defaultCloudRisk,
		Compliance: ComplianceRisk(attrs.ComplianceStandards, attrs.LastAuditDate, now),
		DataBreach: BreachRisk(attrs.KnownDataBreaches),
	}

	overall := OverallRisk(scores)

	return Profile{
		OverallScore:    overall,
		RiskLevel:       LevelForScore(overall),
		Scores:          scores,
		Recommendations: baselineRecommendations(scores),
		RiskFactors:     baselineRiskFactors(attrs, scores),
	}
}

func baselineRecommendations(scores BaselineScores) []string {
	recs := []string{}
	if scores.Network >= 50 {
		recs = append(recs, "Close identified network security gaps and expand tooling coverage")
	}
	if scores.Compliance >= 50 {
		recs = append(recs, "Adopt a recognized compliance framework and schedule an annual audit")
	}
	if scores.DataBreach >= 50 {
		recs = append(recs, "Review incident response plan and validate breach remediation")
	}
	recs = append(recs, "Enable MFA for all users", "Conduct quarterly security assessments")
	return recs
}

func baselineRiskFactors(attrs BaselineAttributes, scores BaselineScores) []string {
	factors := []string{}
	if attrs.SecurityGaps != "" {
		factors = append(factors, "Reported security gaps: "+attrs.SecurityGaps)
	}
	if len(attrs.ComplianceStandards) == 0 {
		factors = append(factors, "No compliance standards adopted")
	}
	if scores.DataBreach > 20 {
		factors = append(factors, "Known data breach history")
	}
	return factors
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
