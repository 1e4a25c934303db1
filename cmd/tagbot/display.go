package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/xaenox/tagbot/internal/tagger"
)

var (
	primaryColor   = color.New(color.FgYellow, color.Bold)
	secondaryColor = color.New(color.FgCyan)
	passColor      = color.New(color.FgGreen, color.Bold)
	failColor      = color.New(color.FgRed, color.Bold)
)

func printAnalysis(analysis tagger.Analysis, details bool) {
	fmt.Printf("🥇 Primary Tag:   %s\n", primaryColor.Sprint(analysis.Result.Primary))
	fmt.Printf("🥈 Secondary Tag: %s\n", secondaryColor.Sprint(analysis.Result.Secondary))

	if details {
		fmt.Printf("\nScores (%s strategy):\n", analysis.Strategy)
		for _, row := range analysis.Ranking {
			fmt.Printf("  %-16s %.1f\n", row.Category, row.Score)
		}
	}
}
