package risk

import (
	"strings"
	"testing"
	"time"
)

var baselineNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func TestNetworkRisk(t *testing.T) {
	tests := []struct {
		name  string
		tools []string
		gaps  string
		want  float64
	}{
		{"no_posture", nil, "", 50},
		{"tooling_reduces", []string{"firewall", "edr", "ids"}, "", 35},
		{"gaps_increase", nil, "no segmentation,flat network", 70},
		{"tools_and_gaps", []string{"firewall"}, "legacy vpn", 55},
		{"clamped_low", []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NetworkRisk(tt.tools, tt.gaps); got != tt.want {
				t.Errorf("NetworkRisk(%v, %q) = %v, want %v", tt.tools, tt.gaps, got, tt.want)
			}
		})
	}
}

func TestComplianceRisk(t *testing.T) {
	recent := baselineNow.AddDate(0, -3, 0)
	stale := baselineNow.AddDate(-2, 0, 0)

	if got := ComplianceRisk(nil, nil, baselineNow); got != 80 {
		t.Errorf("Expected 80 with no standards, got %v", got)
	}
	if got := ComplianceRisk([]string{"ISO 27001"}, &recent, baselineNow); got != 30 {
		t.Errorf("Expected 30 with a recent audit, got %v", got)
	}
	if got := ComplianceRisk([]string{"ISO 27001"}, &stale, baselineNow); got != 50 {
		t.Errorf("Expected 50 with a stale audit, got %v", got)
	}
	if got := ComplianceRisk([]string{"SOC 2"}, nil, baselineNow); got != 30 {
		t.Errorf("Expected 30 with standards but no audit date, got %v", got)
	}
}

func TestBreachRisk(t *testing.T) {
	if got := BreachRisk("None reported"); got != 20 {
		t.Errorf("Expected 20 for the no-breach sentinel, got %v", got)
	}
	if got := BreachRisk(""); got != 20 {
		t.Errorf("Expected 20 for an empty breach history, got %v", got)
	}
	if got := BreachRisk("2023 credential leak"); got != 70 {
		t.Errorf("Expected 70 with breach history, got %v", got)
	}
}

func TestOverallRisk_WeightedSum(t *testing.T) {
	scores := BaselineScores{
		Network:    40,
		Endpoint:   35,
		Cloud:      25,
		Compliance: 30,
		DataBreach: 20,
	}
	// 40*.25 + 35*.20 + 25*.15 + 30*.20 + 20*.20 = 30.75
	if got := OverallRisk(scores); got != 30.75 {
		t.Errorf("OverallRisk() = %v, want 30.75", got)
	}
}

func TestBaseline_StrongPosture(t *testing.T) {
	audit := baselineNow.AddDate(0, -1, 0)
	profile := Baseline(BaselineAttributes{
		SecurityTools:       []string{"firewall", "edr"},
		ComplianceStandards: []string{"ISO 27001"},
		LastAuditDate:       &audit,
		KnownDataBreaches:   "None reported",
	}, baselineNow)

	// Network 40, Endpoint 35, Cloud 25, Compliance 30, DataBreach 20.
	if profile.OverallScore != 30.75 {
		t.Errorf("Expected overall 30.75, got %v", profile.OverallScore)
	}
	if profile.RiskLevel != LevelMedium {
		t.Errorf("Expected Medium level, got %v", profile.RiskLevel)
	}
	if len(profile.RiskFactors) != 0 {
		t.Errorf("Expected no risk factors, got %v", profile.RiskFactors)
	}
}

func TestBaseline_WeakPosture(t *testing.T) {
	profile := Baseline(BaselineAttributes{
		SecurityGaps:      "no segmentation,flat network",
		KnownDataBreaches: "2023 ransomware incident",
	}, baselineNow)

	// Network 70, Endpoint 35, Cloud 25, Compliance 80, DataBreach 70.
	if profile.OverallScore != 58.25 {
		t.Errorf("Expected overall 58.25, got %v", profile.OverallScore)
	}
	if profile.RiskLevel != LevelMedium {
		t.Errorf("Expected Medium level, got %v", profile.RiskLevel)
	}

	wantFactors := []string{
		"Reported security gaps: no segmentation,flat network",
		"No compliance standards adopted",
		"Known data breach history",
	}
	if len(profile.RiskFactors) != len(wantFactors) {
		t.Fatalf("Expected %d risk factors, got %d: %v", len(wantFactors), len(profile.RiskFactors), profile.RiskFactors)
	}
	for i, want := range wantFactors {
		if profile.RiskFactors[i] != want {
			t.Errorf("RiskFactors[%d] = %q, want %q", i, profile.RiskFactors[i], want)
		}
	}
}

func TestBaseline_Recommendations(t *testing.T) {
	profile := Baseline(BaselineAttributes{
		SecurityGaps:      "flat network",
		KnownDataBreaches: "2024 leak",
	}, baselineNow)

	joined := strings.Join(profile.Recommendations, "\n")
	for _, want := range []string{
		"network security gaps",
		"compliance framework",
		"incident response plan",
		"Enable MFA for all users",
		"Conduct quarterly security assessments",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected a recommendation mentioning %q, got %v", want, profile.Recommendations)
		}
	}
}

func TestBaseline_StaticRecommendationsAlwaysPresent(t *testing.T) {
	audit := baselineNow.AddDate(0, -1, 0)
	profile := Baseline(BaselineAttributes{
		SecurityTools:       []string{"firewall", "edr", "siem"},
		ComplianceStandards: []string{"SOC 2"},
		LastAuditDate:       &audit,
		KnownDataBreaches:   "None reported",
	}, baselineNow)

	if len(profile.Recommendations) != 2 {
		t.Fatalf("Expected only the two static recommendations, got %v", profile.Recommendations)
	}
	if profile.Recommendations[0] != "Enable MFA for all users" {
		t.Errorf("Unexpected first recommendation: %q", profile.Recommendations[0])
	}
}
