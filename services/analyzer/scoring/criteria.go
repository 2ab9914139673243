// Package scoring computes AEO scores for fetched page content. Every
// function here is pure: the clock is passed in and nothing is shared
// between calls.
package scoring

import (
	"time"

	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

const (
	FactorQuestions  = "Question-Based Content"
	FactorStructured = "Structured Data"
	FactorClarity    = "Content Clarity"
	FactorKeywords   = "Semantic Keywords"
	FactorFreshness  = "Content Freshness"
	FactorAuthority  = "Authority Signals"
)

// Result is what a single scorer produces.
type Result struct {
	Score   int
	Example string
}

// ScoreFunc scores one criterion. now anchors every age computation.
type ScoreFunc func(c *models.WebsiteContent, now time.Time) Result

// Criterion binds a factor to its weight and scorer.
type Criterion struct {
	Factor  string
	Weight  int
	Details string
	Score   ScoreFunc
}

// Criteria is the fixed, ordered criterion table. Weights sum to 100.
var Criteria = []Criterion{
	{
		Factor:  FactorQuestions,
		Weight:  20,
		Details: "Content framed around the questions people ask, including FAQ sections and question-and-answer pairs.",
		Score:   scoreQuestions,
	},
	{
		Factor:  FactorStructured,
		Weight:  20,
		Details: "Schema.org JSON-LD markup that tells answer engines what the page is about.",
		Score:   scoreStructuredData,
	},
	{
		Factor:  FactorClarity,
		Weight:  15,
		Details: "Paragraph length, lists and heading density that make answers easy to extract.",
		Score:   scoreClarity,
	},
	{
		Factor:  FactorKeywords,
		Weight:  15,
		Details: "Coverage of related topic terms that signals semantic relevance.",
		Score:   scoreKeywords,
	},
	{
		Factor:  FactorFreshness,
		Weight:  15,
		Details: "How recently the content was published or updated.",
		Score:   scoreFreshness,
	},
	{
		Factor:  FactorAuthority,
		Weight:  15,
		Details: "Author attribution, citations and links to authoritative sources.",
		Score:   scoreAuthority,
	},
}

// TotalWeight sums the weights of all criteria.
func TotalWeight() int {
	total := 0
	for _, c := range Criteria {
		total += c.Weight
	}
	return total
}

// Score runs every criterion against the content and returns a fresh
// breakdown in criterion order.
func Score(c *models.WebsiteContent, now time.Time) []models.ScoreBreakdown {
	breakdown := make([]models.ScoreBreakdown, 0, len(Criteria))
	for _, criterion := range Criteria {
		result := criterion.Score(c, now)
		breakdown = append(breakdown, models.ScoreBreakdown{
			Factor:  criterion.Factor,
			Score:   clamp(result.Score),
			Weight:  criterion.Weight,
			Details: criterion.Details,
			Example: result.Example,
		})
	}
	return breakdown
}
