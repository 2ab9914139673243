package scoring

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

// minParagraphLength is the shortest paragraph worth quoting as an example.
const minParagraphLength = 40

func scoreClarity(c *models.WebsiteContent, _ time.Time) Result {
	score := 50
	doc := parseDocument(c.HTML)

	paras := paragraphs(c.Text)
	if len(paras) > 0 {
		total := 0
		for _, p := range paras {
			total += utf8.RuneCountInString(p)
		}
		avg := total / len(paras)
		switch {
		case avg < 400:
			score += 15
		case avg < 800:
			score += 10
		case avg < 1200:
			score += 5
		}
	}

	items := listItems(doc)
	if len(items) > 0 {
		score += 10
	}

	headingCount := 0
	for _, level := range headingLevels {
		headingCount += len(c.Headers[level])
	}
	if textLen := utf8.RuneCountInString(c.Text); textLen > 0 {
		ratio := float64(headingCount) / (float64(textLen) / 1000)
		switch {
		case ratio > 2 && ratio < 10:
			score += 15
		case ratio > 0.5:
			score += 10
		}
	}

	if doc.Find("strong, b, em, i").Length() > 0 {
		score += 10
	}

	score = clamp(score)
	return Result{Score: score, Example: clarityExample(c, items, paras, score)}
}

func listItems(doc *goquery.Document) []string {
	var items []string
	doc.Find("ul > li, ol > li").Each(func(_ int, s *goquery.Selection) {
		if text := collapse(s.Text()); text != "" {
			items = append(items, text)
		}
	})
	return items
}

func clarityExample(c *models.WebsiteContent, items, paras []string, score int) string {
	if len(items) > 0 {
		sample := make([]string, 0, 3)
		for _, item := range items {
			if len(sample) == 3 {
				break
			}
			sample = append(sample, truncate(item, 60))
		}
		return "List items: " + quoteList(sample)
	}

	if h1 := c.Headers["h1"]; len(h1) > 0 {
		chain := fmt.Sprintf("Heading structure: H1 %q", truncate(h1[0], 80))
		if h2 := c.Headers["h2"]; len(h2) > 0 {
			chain += fmt.Sprintf(" > H2 %q", truncate(h2[0], 80))
		}
		return chain
	}

	shortest := ""
	for _, p := range paras {
		n := utf8.RuneCountInString(p)
		if n >= minParagraphLength && (shortest == "" || n < utf8.RuneCountInString(shortest)) {
			shortest = p
		}
	}
	if shortest != "" {
		return fmt.Sprintf("Concise paragraph: %q", truncate(shortest, 150))
	}

	switch {
	case score >= 80:
		return "Content is clearly structured and easy to extract"
	case score >= 60:
		return "Content structure is reasonable but could be clearer"
	default:
		return "Content lacks clear structure"
	}
}
