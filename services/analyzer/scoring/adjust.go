package scoring

import (
	"slices"

	"github.com/PuerkitoBio/goquery"

	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

const (
	// competitorGap is how far apart two scores must be before the
	// comparison moves either of them.
	competitorGap   = 15
	competitorShift = 5

	competitorAhead  = " Your competitor performs better in this area."
	competitorBehind = " You outperform your competitor in this area."
)

type adjustment struct {
	factor string
	delta  int
}

var industryAdjustments = map[models.Industry][]adjustment{
	models.IndustryECommerce:  {{FactorStructured, 10}, {FactorKeywords, 5}},
	models.IndustryHealthcare: {{FactorAuthority, 15}, {FactorFreshness, 5}},
	models.IndustryFinance:    {{FactorAuthority, 10}, {FactorFreshness, 10}},
	models.IndustryEducation:  {{FactorClarity, 10}, {FactorQuestions, 5}},
	models.IndustryTechnology: {{FactorFreshness, 10}, {FactorStructured, 5}},
}

var focusAdjustments = map[models.ContentFocus][]adjustment{
	models.FocusEducational:   {{FactorClarity, 10}, {FactorQuestions, 5}},
	models.FocusInformational: {{FactorQuestions, 10}, {FactorKeywords, 5}},
	models.FocusTransactional: {{FactorStructured, 10}, {FactorKeywords, 5}},
	models.FocusNews:          {{FactorFreshness, 15}},
	models.FocusHowTo:         {{FactorStructured, 5}, {FactorClarity, 10}},
}

// applyAdjustments returns a copy of breakdown with each delta added to its
// factor and the result clamped.
func applyAdjustments(breakdown []models.ScoreBreakdown, adjustments []adjustment) []models.ScoreBreakdown {
	out := slices.Clone(breakdown)
	for _, adj := range adjustments {
		if i := factorIndex(out, adj.factor); i >= 0 {
			out[i].Score = clamp(out[i].Score + adj.delta)
		}
	}
	return out
}

func adjustForIndustry(breakdown []models.ScoreBreakdown, industry models.Industry) []models.ScoreBreakdown {
	return applyAdjustments(breakdown, industryAdjustments[industry])
}

func adjustForFocus(breakdown []models.ScoreBreakdown, focus models.ContentFocus) []models.ScoreBreakdown {
	return applyAdjustments(breakdown, focusAdjustments[focus])
}

// adjustAdvanced rewards a clean heading hierarchy, well described images
// and a strong set of authority links.
func adjustAdvanced(breakdown []models.ScoreBreakdown, c *models.WebsiteContent) []models.ScoreBreakdown {
	var adjustments []adjustment

	if len(c.Headers["h1"]) == 1 && len(c.Headers["h2"]) > 1 {
		adjustments = append(adjustments, adjustment{FactorClarity, 5})
	}

	images := parseDocument(c.HTML).Find("img")
	if total := images.Length(); total > 0 {
		withAlt := images.FilterFunction(func(_ int, s *goquery.Selection) bool {
			alt, ok := s.Attr("alt")
			return ok && collapse(alt) != ""
		}).Length()
		if float64(withAlt)/float64(total) > 0.8 {
			adjustments = append(adjustments, adjustment{FactorClarity, 5})
		}
	}

	if len(authorityLinks(c.Links)) >= 3 {
		adjustments = append(adjustments, adjustment{FactorAuthority, 10})
	}

	return applyAdjustments(breakdown, adjustments)
}

// compareCompetitor nudges each factor by the gap to the competitor's
// score for the same factor.
func compareCompetitor(breakdown, competitor []models.ScoreBreakdown) []models.ScoreBreakdown {
	out := slices.Clone(breakdown)
	for i := range out {
		j := factorIndex(competitor, out[i].Factor)
		if j < 0 {
			continue
		}
		theirs := competitor[j]

		switch diff := theirs.Score - out[i].Score; {
		case diff > competitorGap:
			out[i].Score = clamp(out[i].Score - competitorShift)
			out[i].Details += competitorAhead
			if out[i].Example == "" {
				out[i].Example = theirs.Example
			}
		case -diff > competitorGap:
			out[i].Score = clamp(out[i].Score + competitorShift)
			out[i].Details += competitorBehind
		}
	}
	return out
}

func factorIndex(breakdown []models.ScoreBreakdown, factor string) int {
	return slices.IndexFunc(breakdown, func(b models.ScoreBreakdown) bool {
		return b.Factor == factor
	})
}
