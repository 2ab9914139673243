package scoring

import (
	"fmt"
	"strings"

	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

// Summarize composes the one-paragraph summary for a result.
func Summarize(overall int, categories []models.AnalysisScoreSummary, recs []models.Recommendation) string {
	var parts []string

	switch {
	case overall >= 80:
		parts = append(parts, "Your content is well optimized for answer engines.")
	case overall >= 60:
		parts = append(parts, "Your content is moderately optimized for answer engines, with clear room for improvement.")
	default:
		parts = append(parts, "Your content needs significant work to be surfaced by answer engines.")
	}

	if len(categories) > 0 {
		best, worst := categories[0], categories[0]
		for _, c := range categories[1:] {
			if c.Score > best.Score {
				best = c
			}
			if c.Score < worst.Score {
				worst = c
			}
		}
		parts = append(parts, fmt.Sprintf("Your strongest area is %s (%d/100), while %s (%d/100) needs the most attention.",
			best.Category, best.Score, worst.Category, worst.Score))
	}

	critical := 0
	for _, r := range recs {
		if r.Type == models.RecommendationCritical {
			critical++
		}
	}
	switch critical {
	case 0:
		parts = append(parts, "Work through the recommendations below to keep improving your AEO performance.")
	case 1:
		parts = append(parts, "Start with the critical issue flagged below for the biggest gain.")
	default:
		parts = append(parts, fmt.Sprintf("Start with the %d critical issues flagged below for the biggest gains.", critical))
	}

	return strings.Join(parts, " ")
}
