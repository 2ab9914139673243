package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

// minAnswerLength is the shortest line accepted as the answer to a question line.
const minAnswerLength = 20

func scoreQuestions(c *models.WebsiteContent, _ time.Time) Result {
	score := 50

	headerQuestions := questionHeaders(c.Headers)
	score += countBonus(len(headerQuestions), [2]int{6, 15}, [2]int{3, 10}, [2]int{1, 5})

	faqSchema := hasSchemaType(c.Schema, "FAQPage")
	if faqSchema {
		score += 20
	}

	lower := strings.ToLower(c.Text)
	if strings.Contains(lower, "faq") || strings.Contains(lower, "frequently asked questions") {
		score += 10
	}

	pairs := questionAnswerPairs(c.Text)
	score += countBonus(len(pairs), [2]int{6, 15}, [2]int{3, 10}, [2]int{1, 5})

	var example string
	switch {
	case len(headerQuestions) > 0:
		example = fmt.Sprintf("Header question: %q", truncate(headerQuestions[0], 150))
	case len(pairs) > 0:
		example = fmt.Sprintf("Q&A pair: %q", truncate(pairs[0], 150))
	case faqSchema:
		example = "FAQ schema markup detected"
	default:
		example = "No question-based content found"
	}

	return Result{Score: clamp(score), Example: example}
}

func questionHeaders(headers map[string][]string) []string {
	var questions []string
	for _, level := range headingLevels {
		for _, h := range headers[level] {
			if h = strings.TrimSpace(h); strings.HasSuffix(h, "?") {
				questions = append(questions, h)
			}
		}
	}
	return questions
}

// questionAnswerPairs returns every line ending in "?" whose next non-empty
// line is long enough to read as an answer.
func questionAnswerPairs(text string) []string {
	lines := strings.Split(text, "\n")
	var questions []string
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasSuffix(line, "?") {
			continue
		}
		for _, next := range lines[i+1:] {
			next = strings.TrimSpace(next)
			if next == "" {
				continue
			}
			if len(next) > minAnswerLength {
				questions = append(questions, line)
			}
			break
		}
	}
	return questions
}
