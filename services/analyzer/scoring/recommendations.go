package scoring

import (
	"cmp"
	"slices"

	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

const (
	// weakScore is the score below which a factor gets an improvement recommendation.
	weakScore = 70
	// criticalScore separates critical recommendations from warnings.
	criticalScore = 50
	// strongScore is the score a factor needs to be called out as a strength.
	strongScore = 80

	minRecommendations = 3
)

type advice struct {
	title       string
	description string
	action      string
}

var improvements = map[string]advice{
	FactorQuestions: {
		title:       "Add Question-Based Content",
		description: "Answer engines look for content that directly answers the questions users ask.",
		action:      "Rewrite key headings as questions and follow each with a concise, direct answer. Consider adding an FAQ section.",
	},
	FactorStructured: {
		title:       "Add Structured Data Markup",
		description: "Schema.org markup helps answer engines understand what your page is about and extract answers from it.",
		action:      "Add JSON-LD markup such as FAQPage, HowTo or Article to describe the page content.",
	},
	FactorClarity: {
		title:       "Improve Content Clarity",
		description: "Long, dense paragraphs make it hard for answer engines to pull out a clear answer.",
		action:      "Break content into short paragraphs, use bulleted lists and add descriptive headings every few hundred words.",
	},
	FactorKeywords: {
		title:       "Broaden Semantic Keyword Coverage",
		description: "Content that covers related terms signals topical depth to answer engines.",
		action:      "Work related terms and synonyms for your main topic naturally into the content and meta tags.",
	},
	FactorFreshness: {
		title:       "Update Your Content",
		description: "Answer engines favor content that is current and clearly dated.",
		action:      "Refresh the content with current information and show a visible publication or last-updated date.",
	},
	FactorAuthority: {
		title:       "Strengthen Authority Signals",
		description: "Answer engines prefer content from sources that demonstrate expertise and cite evidence.",
		action:      "Add an author byline with credentials, cite your sources and link to authoritative references.",
	},
}

var strengths = map[string]advice{
	FactorQuestions: {
		title:       "Strong Question-Based Content",
		description: "Your content answers user questions directly, which is exactly what answer engines look for.",
	},
	FactorStructured: {
		title:       "Excellent Structured Data",
		description: "Your schema markup gives answer engines a clear picture of the page.",
	},
	FactorClarity: {
		title:       "Clear, Well-Organized Content",
		description: "Your content is easy to scan and answers are easy to extract.",
	},
	FactorKeywords: {
		title:       "Rich Semantic Coverage",
		description: "Your content covers the surrounding topic vocabulary well.",
	},
	FactorFreshness: {
		title:       "Fresh, Up-to-Date Content",
		description: "Your content is recent and clearly dated.",
	},
	FactorAuthority: {
		title:       "Strong Authority Signals",
		description: "Your content shows clear authorship and references trusted sources.",
	},
}

type fallback struct {
	// factor is the criterion this advice overlaps; empty when it overlaps none.
	factor string
	rec    models.Recommendation
}

// fallbacks fill the list up to minRecommendations, in this order.
var fallbacks = []fallback{
	{
		factor: FactorStructured,
		rec: models.Recommendation{
			Type:        models.RecommendationWarning,
			Title:       "Implement Schema Markup",
			Description: "Structured data is one of the most reliable ways to get content surfaced in AI-generated answers.",
			Action:      "Review your key pages and add the schema.org types that best describe them.",
		},
	},
	{
		factor: FactorFreshness,
		rec: models.Recommendation{
			Type:        models.RecommendationWarning,
			Title:       "Establish a Content Update Cadence",
			Description: "Regularly reviewed content stays accurate and keeps freshness signals strong.",
			Action:      "Schedule periodic reviews of important pages and update dates when content changes.",
		},
	},
	{
		rec: models.Recommendation{
			Type:        models.RecommendationWarning,
			Title:       "Write Answer-Ready Summaries",
			Description: "A short summary near the top of a page gives answer engines a ready-made answer to quote.",
			Action:      "Open each page with a two or three sentence summary that directly answers its main question.",
		},
	},
}

// Recommend builds recommendations from the two weakest and the single
// strongest factor, then pads with generic advice that no earlier
// recommendation already covers. It always returns at
// least three recommendations.
func Recommend(breakdown []models.ScoreBreakdown) []models.Recommendation {
	var recs []models.Recommendation
	covered := make(map[string]bool)

	ascending := slices.Clone(breakdown)
	slices.SortStableFunc(ascending, func(a, b models.ScoreBreakdown) int {
		return cmp.Compare(a.Score, b.Score)
	})

	for _, b := range ascending[:min(2, len(ascending))] {
		if b.Score >= weakScore {
			continue
		}
		tmpl, ok := improvements[b.Factor]
		if !ok {
			continue
		}
		recType := models.RecommendationWarning
		if b.Score < criticalScore {
			recType = models.RecommendationCritical
		}
		recs = append(recs, models.Recommendation{
			Type:        recType,
			Title:       tmpl.title,
			Description: tmpl.description,
			Action:      tmpl.action,
		})
		covered[b.Factor] = true
	}

	descending := slices.Clone(breakdown)
	slices.SortStableFunc(descending, func(a, b models.ScoreBreakdown) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if len(descending) > 0 && descending[0].Score >= strongScore {
		if tmpl, ok := strengths[descending[0].Factor]; ok {
			recs = append(recs, models.Recommendation{
				Type:        models.RecommendationPositive,
				Title:       tmpl.title,
				Description: tmpl.description,
				Action:      "Keep this up",
			})
			covered[descending[0].Factor] = true
		}
	}

	for _, fb := range fallbacks {
		if len(recs) >= minRecommendations {
			break
		}
		if fb.factor != "" && covered[fb.factor] {
			continue
		}
		recs = append(recs, fb.rec)
	}

	return recs
}
