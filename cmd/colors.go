package cmd

import (
	"github.com/fatih/color"

	"github.com/khanhnv2901/scope-intel/internal/risk"
)

var (
	colorGood  = color.New(color.FgGreen).SprintFunc()
	colorInfo  = color.New(color.FgCyan).SprintFunc()
	colorWarn  = color.New(color.FgYellow).SprintFunc()
	colorBad   = color.New(color.FgRed).SprintFunc()
	colorFatal = color.New(color.FgRed, color.Bold).SprintFunc()
)

func formatLevel(level risk.Level) string {
	switch level {
	case risk.LevelLow:
		return colorGood(string(level))
	case risk.LevelMedium:
		return colorWarn(string(level))
	case risk.LevelHigh:
		return colorBad(string(level))
	case risk.LevelCritical:
		return colorFatal(string(level))
	default:
		return string(level)
	}
}

// formatScore colors a 0-100 sub-score where higher is better.
func formatScore(score int) string {
	switch {
	case score >= 80:
		return colorGood(score)
	case score >= 50:
		return colorWarn(score)
	default:
		return colorBad(score)
	}
}
