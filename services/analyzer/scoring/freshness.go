package scoring

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

type freshnessTerm struct {
	name    string
	pattern *regexp.Regexp
}

const (
	day            = 24 * time.Hour
	exampleDateFmt = "January 2, 2006"
)

var (
	// March 4, 2026 / Mar. 4th 2026
	monthDayYear = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`)
	// 03/04/2026, month first
	numericDate = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)

	monthsByPrefix = map[string]time.Month{
		"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
		"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
		"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
	}

	freshnessTerms = []freshnessTerm{
		{"new", regexp.MustCompile(`(?i)\bnew\b`)},
		{"update", regexp.MustCompile(`(?i)\bupdated?\b`)},
		{"recent", regexp.MustCompile(`(?i)\brecent(?:ly)?\b`)},
		{"latest", regexp.MustCompile(`(?i)\blatest\b`)},
		{"now", regexp.MustCompile(`(?i)\bnow\b`)},
		{"today", regexp.MustCompile(`(?i)\btoday\b`)},
	}
)

func scoreFreshness(c *models.WebsiteContent, now time.Time) Result {
	anchor, fromHeader, found := freshnessAnchor(c, now)

	score := 40
	if found {
		age := now.Sub(anchor)
		switch {
		case age < 30*day:
			score = 90
		case age < 90*day:
			score = 80
		case age < 180*day:
			score = 70
		case age < 365*day:
			score = 60
		}
	}

	matched, firstMatch := freshnessMatches(c.Text, now)
	score += countBonus(matched, [2]int{4, 10}, [2]int{2, 5})

	var example string
	switch {
	case found:
		example = "Most recent date: " + anchor.Format(exampleDateFmt)
		if fromHeader {
			example += " (from Last-Modified header)"
		}
	case firstMatch != "":
		example = fmt.Sprintf("Freshness indicator: %q", firstMatch)
	default:
		example = "No date indicators found"
	}

	return Result{Score: clamp(score), Example: example}
}

// freshnessAnchor picks the most recent date among Last-Modified and the
// dates written in the text. Dates more than a day ahead of now are ignored.
func freshnessAnchor(c *models.WebsiteContent, now time.Time) (anchor time.Time, fromHeader, found bool) {
	limit := now.Add(day)
	consider := func(t time.Time, header bool) {
		if t.After(limit) {
			return
		}
		if !found || t.After(anchor) {
			anchor, fromHeader, found = t, header, true
		}
	}

	for _, t := range contentDates(c.Text) {
		consider(t, false)
	}
	if c.LastModified != nil {
		consider(*c.LastModified, true)
	}
	return anchor, fromHeader, found
}

func contentDates(text string) []time.Time {
	var dates []time.Time

	for _, m := range monthDayYear.FindAllStringSubmatch(text, -1) {
		month := monthsByPrefix[strings.ToLower(m[1][:3])]
		if t, ok := makeDate(m[3], month, m[2]); ok {
			dates = append(dates, t)
		}
	}

	for _, m := range numericDate.FindAllStringSubmatch(text, -1) {
		month, err := strconv.Atoi(m[1])
		if err != nil || month < 1 || month > 12 {
			continue
		}
		if t, ok := makeDate(m[3], time.Month(month), m[2]); ok {
			dates = append(dates, t)
		}
	}

	return dates
}

// makeDate rejects days that time.Date would roll into the next month.
func makeDate(year string, month time.Month, dayOfMonth string) (time.Time, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(dayOfMonth)
	if err != nil || d < 1 {
		return time.Time{}, false
	}
	t := time.Date(y, month, d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

// freshnessMatches counts the distinct freshness terms in text, the current
// year included, and returns a snippet around the earliest match.
func freshnessMatches(text string, now time.Time) (int, string) {
	patterns := append(slices.Clip(freshnessTerms),
		freshnessTerm{"current year", regexp.MustCompile(`\b` + strconv.Itoa(now.Year()) + `\b`)})

	matched := 0
	firstPos := -1
	for _, term := range patterns {
		loc := term.pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		matched++
		if firstPos < 0 || loc[0] < firstPos {
			firstPos = loc[0]
		}
	}

	if firstPos < 0 {
		return 0, ""
	}
	return matched, snippet(text, firstPos, 40)
}

// snippet returns up to radius bytes either side of pos, widened to rune
// boundaries.
func snippet(text string, pos, radius int) string {
	start := max(pos-radius, 0)
	end := min(pos+radius, len(text))
	for start > 0 && !isRuneStart(text[start]) {
		start--
	}
	for end < len(text) && !isRuneStart(text[end]) {
		end++
	}
	return collapse(text[start:end])
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
