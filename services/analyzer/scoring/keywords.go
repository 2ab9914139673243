package scoring

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

type termGroup struct {
	name  string
	terms []string
}

var keywordGroups = []termGroup{
	{"SEO", []string{"seo", "search", "ranking", "keyword", "optimization", "serp", "backlink", "indexing", "crawl", "metadata"}},
	{"Marketing", []string{"marketing", "brand", "audience", "campaign", "conversion", "engagement", "content", "strategy", "funnel", "customer"}},
	{"Technology", []string{"software", "platform", "data", "cloud", "api", "ai", "automation", "algorithm", "integration", "analytics"}},
	{"Business", []string{"business", "revenue", "growth", "market", "roi", "investment", "enterprise", "sales", "management", "performance"}},
	{"E-commerce", []string{"product", "shop", "cart", "checkout", "price", "shipping", "order", "discount", "store", "payment"}},
}

// minGroupTerms is how many distinct terms a group needs to count as matched.
const minGroupTerms = 3

var termPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp)
	for _, g := range keywordGroups {
		for _, term := range g.terms {
			patterns[term] = wordPattern(term)
		}
	}
	return patterns
}()

func scoreKeywords(c *models.WebsiteContent, _ time.Time) Result {
	score := 40

	matchedGroups := 0
	occurrences := 0
	var best termGroup
	var bestTerms []string

	for _, g := range keywordGroups {
		var found []string
		for _, term := range g.terms {
			n := len(termPatterns[term].FindAllStringIndex(c.Text, -1))
			if n > 0 {
				found = append(found, term)
				occurrences += n
			}
		}
		if len(found) >= minGroupTerms {
			matchedGroups++
		}
		if len(found) > len(bestTerms) {
			best, bestTerms = g, found
		}
	}

	score += countBonus(matchedGroups, [2]int{3, 25}, [2]int{2, 15}, [2]int{1, 10})
	score += countBonus(occurrences, [2]int{20, 25}, [2]int{10, 15}, [2]int{5, 10})

	metaKeywords := strings.TrimSpace(c.Meta["keywords"])
	if len(metaKeywords) > 10 {
		score += 10
	}

	score = clamp(score)

	var example string
	switch {
	case metaKeywords != "":
		example = fmt.Sprintf("Meta keywords: %q", truncate(metaKeywords, 150))
	case len(bestTerms) > 0:
		example = fmt.Sprintf("%s terms: %s", best.name, strings.Join(bestTerms, ", "))
	case strings.TrimSpace(c.Title) != "":
		example = fmt.Sprintf("Title: %q", truncate(c.Title, 100))
	case score >= 70:
		example = "Strong semantic keyword coverage"
	default:
		example = "Limited semantic keyword coverage"
	}

	return Result{Score: score, Example: example}
}
