package scoring

import (
	"math"
	"time"

	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

const (
	CategoryContentQuality = "Content Quality"
	CategoryStructure      = "Structure"
	CategoryUserIntent     = "User Intent Match"
)

// categoryFactors maps each summary category to the factors it averages.
var categoryFactors = []struct {
	category string
	factors  []string
}{
	{CategoryContentQuality, []string{FactorQuestions, FactorClarity, FactorAuthority}},
	{CategoryStructure, []string{FactorStructured, FactorKeywords}},
	{CategoryUserIntent, []string{FactorQuestions, FactorKeywords, FactorFreshness}},
}

// Engine runs the full scoring pipeline against an injected clock.
type Engine struct {
	now func() time.Time
}

func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Evaluate scores content and, when competitor is non-nil, compares it
// against the competitor's page. Each call works on freshly built
// breakdowns, so repeated calls on identical input return identical results.
func (e *Engine) Evaluate(content, competitor *models.WebsiteContent, opts models.AnalysisOptions) *models.AnalysisResult {
	now := e.now()

	breakdown := Score(content, now)
	breakdown = adjustForIndustry(breakdown, opts.Industry)
	breakdown = adjustForFocus(breakdown, opts.ContentFocus)
	if opts.Advanced() {
		breakdown = adjustAdvanced(breakdown, content)
	}
	if competitor != nil {
		breakdown = compareCompetitor(breakdown, Score(competitor, now))
	}

	overall := OverallScore(breakdown)
	categories := CategoryScores(breakdown)
	recommendations := Recommend(breakdown)

	return &models.AnalysisResult{
		URL:             content.URL,
		OverallScore:    overall,
		Summary:         Summarize(overall, categories, recommendations),
		Scores:          categories,
		Breakdown:       breakdown,
		Recommendations: recommendations,
	}
}

// OverallScore is the weight-normalized average of the breakdown, rounded.
func OverallScore(breakdown []models.ScoreBreakdown) int {
	weighted, total := 0, 0
	for _, b := range breakdown {
		weighted += b.Score * b.Weight
		total += b.Weight
	}
	if total == 0 {
		return 0
	}
	return clamp(int(math.Round(float64(weighted) / float64(total))))
}

// CategoryScores averages each category's factors by name.
func CategoryScores(breakdown []models.ScoreBreakdown) []models.AnalysisScoreSummary {
	scores := make([]models.AnalysisScoreSummary, 0, len(categoryFactors))
	for _, cat := range categoryFactors {
		sum, n := 0, 0
		for _, factor := range cat.factors {
			if i := factorIndex(breakdown, factor); i >= 0 {
				sum += breakdown[i].Score
				n++
			}
		}
		score := 0
		if n > 0 {
			score = int(math.Round(float64(sum) / float64(n)))
		}
		scores = append(scores, models.AnalysisScoreSummary{Category: cat.category, Score: score})
	}
	return scores
}
