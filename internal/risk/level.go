package risk

// Level is the categorical risk bucket derived from a numeric score.
type Level string

const (
	LevelLow      Level = "Low"
	LevelMedium   Level = "Medium"
	LevelHigh     Level = "High"
	LevelCritical Level = "Critical"
)

// LevelForScore maps a score to its Level. The thresholds are shared
// verbatim by every risk layer: <30 Low, <60 Medium, <80 High, else
// Critical.
func LevelForScore(score float64) Level {
	switch {
	case score < 30:
		return LevelLow
	case score < 60:
		return LevelMedium
	case score < 80:
		return LevelHigh
	default:
		return LevelCritical
	}
}
