package risk

import "testing"

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Level
	}{
		{0, LevelLow},
		{29.99, LevelLow},
		{30, LevelMedium},
		{45.5, LevelMedium},
		{59.99, LevelMedium},
		{60, LevelHigh},
		{79.99, LevelHigh},
		{80, LevelCritical},
		{100, LevelCritical},
	}

	for _, tt := range tests {
		if got := LevelForScore(tt.score); got != tt.want {
			t.Errorf("LevelForScore(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
