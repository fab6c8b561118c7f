package risk

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/khanhnv2901/scope-intel/internal/intel"
)

// VendorContext is the caller-supplied vendor profile consumed by the
// advanced risk model. It is read-only input.
type VendorContext struct {
	Industry             string
	EmployeeCount        string // bucket, e.g. "1-50", "51-200", "201-1000", "1000+"
	DataProcessed        []string
	ComplianceFrameworks []string
	Country              string
	Region               string
	AlternativeVendors   int
	RevenueBucket        string
}

// SubAssessment is one independent advanced sub-score with its triggered
// risk factors and a level from the shared classifier.
type SubAssessment struct {
	Score       float64  `json:"score"`
	RiskLevel   Level    `json:"risk_level"`
	RiskFactors []string `json:"risk_factors"`
}

// MLAssessment extends a sub-assessment with a confidence value in [0,1].
type MLAssessment struct {
	SubAssessment
	Confidence float64 `json:"confidence"`
}

// Assessment is the combined advanced risk output.
type Assessment struct {
	Behavioral      SubAssessment    `json:"behavioral"`
	Geopolitical    SubAssessment    `json:"geopolitical"`
	SupplyChain     SubAssessment    `json:"supply_chain"`
	MLEnhanced      MLAssessment     `json:"ml_enhanced"`
	OverallScore    float64          `json:"overall_score"`
	OverallLevel    Level            `json:"overall_level"`
	Recommendations []Recommendation `json:"recommendations"`
}

// highValueIndustries attract more capable adversaries.
var highValueIndustries = map[string]bool{
	"finance": true, "banking": true, "healthcare": true,
	"technology": true, "government": true, "energy": true,
}

// criticalDependencyIndustries are sectors whose outage cascades into
// dependent supply chains.
var criticalDependencyIndustries = map[string]bool{
	"energy": true, "finance": true, "banking": true, "healthcare": true,
	"telecommunications": true, "logistics": true, "manufacturing": true,
}

// countryRisk is the fixed geopolitical lookup table, keyed by country name.
var countryRisk = map[string]int{
	"united states":  20,
	"canada":         20,
	"united kingdom": 25,
	"germany":        25,
	"france":         25,
	"netherlands":    25,
	"japan":          25,
	"australia":      25,
	"singapore":      30,
	"india":          40,
	"brazil":         40,
	"china":          70,
	"iran":           75,
	"russia":         80,
	"north korea":    90,
}

// defaultCountryRisk applies to countries absent from the table.
const defaultCountryRisk = 35

// highRiskCountries trigger the behavioral country contribution.
var highRiskCountries = map[string]bool{
	"china": true, "iran": true, "russia": true, "north korea": true, "belarus": true,
}

// unstableRegions add the geopolitical instability contribution.
var unstableRegions = map[string]bool{
	"eastern europe": true, "middle east": true,
	"north africa": true, "central asia": true,
}

// smallRevenueBuckets flag vendors with limited operational budget.
var smallRevenueBuckets = map[string]bool{
	"<1m": true, "under 1m": true, "0-1m": true,
}

// ML feature weights; fixed linear combination, not a learned model.
const (
	mlWeightSmallCompany      = 0.25
	mlWeightHighValueIndustry = 0.20
	mlWeightSensitiveData     = 0.15
	mlWeightMissingCompliance = 0.25
	mlWeightDarkWebExposure   = 0.15
)

// Model produces the four advanced sub-assessments plus recommendations.
// The jitter and confidence of the ML-enhanced score are intentionally
// non-deterministic stand-ins pending a real model integration.
type Model struct {
	rng *rand.Rand
}

// NewModel returns a model with a time-seeded random source.
func NewModel() *Model {
	return NewModelWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewModelWithRand pins the random source, for reproducible tests.
func NewModelWithRand(rng *rand.Rand) *Model {
	return &Model{rng: rng}
}

// Assess runs all four sub-models over the vendor context and the optional
// intelligence record. It never fails on missing context; absent fields
// simply contribute nothing.
func (m *Model) Assess(vendor VendorContext, rec *intel.Record) Assessment {
	behavioral := m.behavioralRisk(vendor, rec)
	geopolitical := m.geopoliticalRisk(vendor)
	supplyChain := m.supplyChainRisk(vendor)
	mlEnhanced := m.mlEnhancedRisk(vendor, rec)

	overall := roundTwo((behavioral.Score + geopolitical.Score + supplyChain.Score + mlEnhanced.Score) / 4)

	return Assessment{
		Behavioral:      behavioral,
		Geopolitical:    geopolitical,
		SupplyChain:     supplyChain,
		MLEnhanced:      mlEnhanced,
		OverallScore:    overall,
		OverallLevel:    LevelForScore(overall),
		Recommendations: GenerateRecommendations(behavioral.Score, geopolitical.Score, supplyChain.Score),
	}
}

// behavioralRisk: base 50 plus company-size, industry, sensitive-data,
// compliance-gap and country contributions.
func (m *Model) behavioralRisk(vendor VendorContext, rec *intel.Record) SubAssessment {
	score := 50.0
	factors := []string{}

	switch normalizeKey(vendor.EmployeeCount) {
	case "1-50":
		score += 15
		factors = append(factors, "Small company size may indicate limited security resources")
	case "51-200":
		score += 8
		factors = append(factors, "Mid-size company with constrained security staffing")
	}

	if highValueIndustries[normalizeKey(vendor.Industry)] {
		score += 10
		factors = append(factors, fmt.Sprintf("High-value target industry: %s", vendor.Industry))
	}

	if n := len(vendor.DataProcessed); n > 0 {
		score += float64(n * 8)
		factors = append(factors, fmt.Sprintf("Processes %d sensitive data categories", n))
	}

	if len(vendor.ComplianceFrameworks) == 0 {
		score += 20
		factors = append(factors, "No compliance frameworks adopted")
	}

	if highRiskCountries[normalizeKey(vendor.Country)] {
		score += 25
		factors = append(factors, fmt.Sprintf("Operates from high-risk country: %s", vendor.Country))
	}

	if recExposed(rec) {
		factors = append(factors, "Dark web exposure detected for vendor domain")
	}

	return newSubAssessment(score, factors)
}

// geopoliticalRisk: base 30 plus the country lookup and the unstable
// region contribution.
func (m *Model) geopoliticalRisk(vendor VendorContext) SubAssessment {
	score := 30.0
	factors := []string{}

	country := normalizeKey(vendor.Country)
	if country != "" {
		contribution, known := countryRisk[country]
		if !known {
			contribution = defaultCountryRisk
		}
		score += float64(contribution)
		factors = append(factors, fmt.Sprintf("Country risk contribution for %s: %d", vendor.Country, contribution))
	}

	if unstableRegions[normalizeKey(vendor.Region)] {
		score += 15
		factors = append(factors, fmt.Sprintf("Region flagged as geopolitically unstable: %s", vendor.Region))
	}

	return newSubAssessment(score, factors)
}

// supplyChainRisk: base 40 plus critical-dependency, limited-alternatives
// and small-revenue contributions.
func (m *Model) supplyChainRisk(vendor VendorContext) SubAssessment {
	score := 40.0
	factors := []string{}

	if criticalDependencyIndustries[normalizeKey(vendor.Industry)] {
		score += 20
		factors = append(factors, fmt.Sprintf("Critical-dependency industry: %s", vendor.Industry))
	}

	if vendor.AlternativeVendors < 2 {
		score += 15
		factors = append(factors, "Fewer than two known alternative vendors")
	}

	if smallRevenueBuckets[normalizeKey(vendor.RevenueBucket)] {
		score += 10
		factors = append(factors, "Small revenue bucket may limit security investment")
	}

	return newSubAssessment(score, factors)
}

// mlEnhancedRisk: fixed five-feature linear combination scaled to 100,
// plus a small random jitter and a pseudo-random confidence in [0.7,0.95].
func (m *Model) mlEnhancedRisk(vendor VendorContext, rec *intel.Record) MLAssessment {
	factors := []string{}

	smallCompany := 0.0
	if normalizeKey(vendor.EmployeeCount) == "1-50" {
		smallCompany = 1
		factors = append(factors, "Feature: small company")
	}

	highValue := 0.0
	if highValueIndustries[normalizeKey(vendor.Industry)] {
		highValue = 1
		factors = append(factors, "Feature: high-value industry")
	}

	sensitiveData := math.Min(float64(len(vendor.DataProcessed))/5, 1)
	if sensitiveData > 0 {
		factors = append(factors, fmt.Sprintf("Feature: %d sensitive data categories", len(vendor.DataProcessed)))
	}

	missingCompliance := 0.0
	if len(vendor.ComplianceFrameworks) == 0 {
		missingCompliance = 1
		factors = append(factors, "Feature: missing compliance frameworks")
	}

	exposed := 0.0
	if recExposed(rec) {
		exposed = 1
		factors = append(factors, "Feature: dark web exposure")
	}

	combined := smallCompany*mlWeightSmallCompany +
		highValue*mlWeightHighValueIndustry +
		sensitiveData*mlWeightSensitiveData +
		missingCompliance*mlWeightMissingCompliance +
		exposed*mlWeightDarkWebExposure

	jitter := m.rng.Float64()*10 - 5
	score := combined*100 + jitter
	confidence := 0.7 + m.rng.Float64()*0.25

	return MLAssessment{
		SubAssessment: newSubAssessment(score, factors),
		Confidence:    confidence,
	}
}

func recExposed(rec *intel.Record) bool {
	return rec != nil && rec.DarkWebExposure != nil && rec.DarkWebExposure.Exposed
}

func newSubAssessment(score float64, factors []string) SubAssessment {
	score = clampScore(roundTwo(score))
	return SubAssessment{
		Score:       score,
		RiskLevel:   LevelForScore(score),
		RiskFactors: factors,
	}
}

func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func roundTwo(value float64) float64 {
	return math.Round(value*100) / 100
}
