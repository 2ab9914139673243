package scoring

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	headingLevels    = []string{"h1", "h2", "h3", "h4"}
	paragraphBreak   = regexp.MustCompile(`\n\s*\n`)
	sentenceBoundary = regexp.MustCompile(`[.!?]+\s+`)
	whitespace       = regexp.MustCompile(`\s+`)
)

func clamp(score int) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}

// countBonus returns the bonus for the first tier whose threshold n reaches.
// tiers are ordered from the highest threshold down.
func countBonus(n int, tiers ...[2]int) int {
	for _, tier := range tiers {
		if n >= tier[0] {
			return tier[1]
		}
	}
	return 0
}

// parseDocument never fails on malformed markup; an unreadable document
// is treated as empty.
func parseDocument(html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}
	return doc
}

func paragraphs(text string) []string {
	var out []string
	for _, p := range paragraphBreak.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func sentences(text string) []string {
	var out []string
	for _, s := range sentenceBoundary.Split(text, -1) {
		if s = collapse(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

func truncate(s string, limit int) string {
	s = collapse(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit])) + "..."
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = `"` + item + `"`
	}
	return strings.Join(quoted, ", ")
}

// wordPattern matches term as a whole word, case-insensitively.
func wordPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
}
