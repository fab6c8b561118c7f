package risk

// Recommendation is a fixed guidance bundle triggered by an elevated
// advanced sub-score.
type Recommendation struct {
	Category string   `json:"category"`
	Priority string   `json:"priority"`
	Headline string   `json:"headline"`
	Actions  []string `json:"actions"`
}

// Thresholds above which each sub-score triggers its bundle.
const (
	behavioralRecThreshold   = 60
	geopoliticalRecThreshold = 70
	supplyChainRecThreshold  = 50
)

// GenerateRecommendations maps sub-score thresholds to their fixed
// recommendation bundles.
func GenerateRecommendations(behavioral, geopolitical, supplyChain float64) []Recommendation {
	recs := []Recommendation{}

	if behavioral > behavioralRecThreshold {
		recs = append(recs, Recommendation{
			Category: "behavioral",
			Priority: "high",
			Headline: "Strengthen vendor security posture oversight",
			Actions: []string{
				"Request evidence of security program maturity",
				"Require adoption of a recognized compliance framework",
				"Schedule a joint security review within 90 days",
			},
		})
	}

	if geopolitical > geopoliticalRecThreshold {
		recs = append(recs, Recommendation{
			Category: "geopolitical",
			Priority: "high",
			Headline: "Mitigate jurisdictional and regional exposure",
			Actions: []string{
				"Review data residency and cross-border transfer agreements",
				"Establish contingency plans for regional service disruption",
				"Monitor sanctions and export-control developments",
			},
		})
	}

	if supplyChain > supplyChainRecThreshold {
		recs = append(recs, Recommendation{
			Category: "supply_chain",
			Priority: "medium",
			Headline: "Reduce single-vendor dependency",
			Actions: []string{
				"Identify and qualify at least one alternative vendor",
				"Negotiate exit and data-portability clauses",
				"Track vendor financial health quarterly",
			},
		})
	}

	return recs
}
