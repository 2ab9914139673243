package scoring

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestScorers_EmptyContent(t *testing.T) {
	empty := &models.WebsiteContent{}

	expected := map[string]Result{
		FactorQuestions:  {Score: 50, Example: "No question-based content found"},
		FactorStructured: {Score: 30, Example: "No structured data found"},
		FactorClarity:    {Score: 50, Example: "Content lacks clear structure"},
		FactorKeywords:   {Score: 40, Example: "Limited semantic keyword coverage"},
		FactorFreshness:  {Score: 40, Example: "No date indicators found"},
		FactorAuthority:  {Score: 40, Example: "No clear authority signals found"},
	}

	for _, criterion := range Criteria {
		t.Run(criterion.Factor, func(t *testing.T) {
			result := criterion.Score(empty, testNow)
			assert.Equal(t, expected[criterion.Factor], result)
		})
	}
}

func TestScorers_StayInRange(t *testing.T) {
	lastModified := testNow.Add(-48 * time.Hour)
	rich := &models.WebsiteContent{
		URL:   "https://example.com",
		Title: "Everything about coffee",
		HTML: `<ul><li>a</li></ul><strong>x</strong><p class="byline">By Jo</p><cite>Ref</cite>` +
			strings.Repeat(`<img src="a.png" alt="cup">`, 3),
		Text: strings.Repeat("What is SEO?\nSEO search ranking keyword optimization serp backlink indexing crawl metadata.\n\n", 20) +
			"FAQ. Frequently asked questions. New, updated, recent, latest, now, today, 2026. " +
			"Marketing brand audience. Software platform data. " +
			"Professor and expert researcher. Certified specialist. Scientist with years of experience. " +
			"Source: journal. March 10, 2026.",
		Meta: map[string]string{"keywords": "coffee, beans, roasting, grinding", "author": "Jo"},
		Headers: map[string][]string{
			"h1": {"What is coffee?"},
			"h2": {"Why roast?", "How to brew?", "When to drink?", "Where to buy?", "Who grows it?", "Which beans?"},
		},
		Links: []string{
			"https://en.wikipedia.org/wiki/Coffee", "https://www.cdc.gov/a", "https://mit.edu/b",
			"https://nature.com/c", "https://reuters.com/d", "https://who.int/e",
		},
		Schema: []map[string]any{
			{"@type": "FAQPage"}, {"@type": "HowTo"}, {"@type": "Article"}, {"@type": "Organization"},
			{"@type": "WebSite"}, {"@type": []any{"Person", "Product"}},
		},
		LastModified: &lastModified,
	}

	for _, content := range []*models.WebsiteContent{{}, rich} {
		for _, b := range Score(content, testNow) {
			assert.GreaterOrEqual(t, b.Score, 0, b.Factor)
			assert.LessOrEqual(t, b.Score, 100, b.Factor)
		}
	}

	for _, b := range Score(rich, testNow) {
		assert.Equal(t, 100, b.Score, b.Factor)
	}
}

func TestScoreQuestions(t *testing.T) {
	t.Run("single header question", func(t *testing.T) {
		content := &models.WebsiteContent{
			Text:    "Why does coffee go stale?",
			Headers: map[string][]string{"h1": {"Why does coffee go stale?"}},
		}

		result := scoreQuestions(content, testNow)

		assert.Equal(t, 55, result.Score)
		assert.Equal(t, `Header question: "Why does coffee go stale?"`, result.Example)
	})

	t.Run("question and answer pairs", func(t *testing.T) {
		content := &models.WebsiteContent{
			Text: "How long do beans last?\n\nRoasted beans stay fresh for about two weeks.\n\n" +
				"Should I freeze coffee?\nOnly if you will not use it within a month.\n\n" +
				"Is it ok?\nYes.",
		}

		result := scoreQuestions(content, testNow)

		assert.Equal(t, 55, result.Score)
		assert.Equal(t, `Q&A pair: "How long do beans last?"`, result.Example)
	})

	t.Run("faq schema nested in graph", func(t *testing.T) {
		content := &models.WebsiteContent{
			Text: "Frequently Asked Questions",
			Schema: []map[string]any{
				{"@graph": []any{map[string]any{"@type": "FAQPage"}}},
			},
		}

		result := scoreQuestions(content, testNow)

		assert.Equal(t, 80, result.Score)
		assert.Equal(t, "FAQ schema markup detected", result.Example)
	})

	t.Run("header question tiers", func(t *testing.T) {
		questions := []string{"A?", "B?", "C?", "D?", "E?", "F?"}
		tests := []struct {
			count int
			want  int
		}{{0, 50}, {2, 55}, {3, 60}, {5, 60}, {6, 65}}

		for _, tt := range tests {
			content := &models.WebsiteContent{Headers: map[string][]string{"h2": questions[:tt.count]}}
			assert.Equal(t, tt.want, scoreQuestions(content, testNow).Score, "%d questions", tt.count)
		}
	})
}

func TestScoreStructuredData(t *testing.T) {
	t.Run("faq page with sample question", func(t *testing.T) {
		content := &models.WebsiteContent{
			Schema: []map[string]any{
				{"@type": "FAQPage", "mainEntity": []any{map[string]any{"name": "What is AEO?"}}},
			},
		}

		result := scoreStructuredData(content, testNow)

		assert.GreaterOrEqual(t, result.Score, 65)
		assert.Equal(t, 65, result.Score)
		assert.Contains(t, result.Example, "Type: FAQPage")
		assert.Contains(t, result.Example, `Sample question: "What is AEO?"`)
	})

	t.Run("named article", func(t *testing.T) {
		content := &models.WebsiteContent{
			Schema: []map[string]any{{"@type": "Article", "name": "Storing Coffee"}},
		}

		result := scoreStructuredData(content, testNow)

		assert.Equal(t, 55, result.Score)
		assert.Equal(t, `Type: Article, Name: "Storing Coffee"`, result.Example)
	})

	t.Run("graph container lists types", func(t *testing.T) {
		content := &models.WebsiteContent{
			Schema: []map[string]any{{
				"@context": "https://schema.org",
				"@graph": []any{
					map[string]any{"@type": "Organization"},
					map[string]any{"@type": "WebSite"},
					map[string]any{"@type": "BreadcrumbList"},
					map[string]any{"@type": "Recipe"},
				},
			}},
		}

		result := scoreStructuredData(content, testNow)

		// 40 base, 4 types +10, 3 relevant +15
		assert.Equal(t, 65, result.Score)
		assert.Equal(t, "Type: Organization", result.Example)
	})

	t.Run("faq page inside graph container", func(t *testing.T) {
		content := &models.WebsiteContent{
			Schema: []map[string]any{{
				"@context": "https://schema.org",
				"@graph": []any{
					map[string]any{
						"@type": "FAQPage",
						"name":  "Coffee FAQ",
						"mainEntity": []any{
							map[string]any{"@type": "Question", "name": "How long do beans stay fresh?"},
						},
					},
					map[string]any{"@type": "WebSite"},
				},
			}},
		}

		result := scoreStructuredData(content, testNow)

		assert.Equal(t, `Type: FAQPage, Name: "Coffee FAQ", Sample question: "How long do beans stay fresh?"`, result.Example)
	})

	t.Run("schema without types", func(t *testing.T) {
		content := &models.WebsiteContent{Schema: []map[string]any{{"name": "untyped"}}}

		result := scoreStructuredData(content, testNow)

		assert.Equal(t, 40, result.Score)
		assert.Equal(t, "No structured data found", result.Example)
	})
}

func TestScoreClarity(t *testing.T) {
	t.Run("well structured page", func(t *testing.T) {
		content := &models.WebsiteContent{
			HTML: `<ul><li>Grind fresh</li><li>Store airtight</li><li>Use within two weeks</li><li>Enjoy</li></ul>` +
				`<p><strong>Tip:</strong> buy whole beans.</p>`,
			Text:    strings.Repeat("a", 300),
			Headers: map[string][]string{"h1": {"Coffee"}, "h2": {"Storage"}},
		}

		result := scoreClarity(content, testNow)

		assert.Equal(t, 100, result.Score)
		assert.Equal(t, `List items: "Grind fresh", "Store airtight", "Use within two weeks"`, result.Example)
	})

	t.Run("heading chain example", func(t *testing.T) {
		content := &models.WebsiteContent{
			Text:    strings.Repeat("word ", 200),
			Headers: map[string][]string{"h1": {"Coffee guide"}, "h2": {"Storage", "Brewing"}},
		}

		result := scoreClarity(content, testNow)

		// one 999 char paragraph +5, 3 headings per 1000 chars +15
		assert.Equal(t, 70, result.Score)
		assert.Equal(t, `Heading structure: H1 "Coffee guide" > H2 "Storage"`, result.Example)
	})

	t.Run("shortest non trivial paragraph", func(t *testing.T) {
		content := &models.WebsiteContent{
			Text: "Short one.\n\n" +
				"This paragraph is long enough to be quoted as an example.\n\n" +
				strings.Repeat("A much longer paragraph about coffee storage. ", 5),
		}

		result := scoreClarity(content, testNow)

		assert.Equal(t, `Concise paragraph: "This paragraph is long enough to be quoted as an example."`, result.Example)
	})

	t.Run("long paragraphs earn less", func(t *testing.T) {
		tests := []struct {
			length int
			want   int
		}{{399, 65}, {799, 60}, {1199, 55}, {1500, 50}}

		for _, tt := range tests {
			content := &models.WebsiteContent{Text: strings.Repeat("x", tt.length)}
			assert.Equal(t, tt.want, scoreClarity(content, testNow).Score, "length %d", tt.length)
		}
	})
}

func TestScoreKeywords(t *testing.T) {
	text := "SEO and search ranking depend on keyword optimization."

	t.Run("single matched group", func(t *testing.T) {
		result := scoreKeywords(&models.WebsiteContent{Text: text}, testNow)

		assert.Equal(t, 60, result.Score)
		assert.Equal(t, "SEO terms: seo, search, ranking, keyword, optimization", result.Example)
	})

	t.Run("meta keywords", func(t *testing.T) {
		content := &models.WebsiteContent{
			Text: text,
			Meta: map[string]string{"keywords": "coffee, storage, freshness"},
		}

		result := scoreKeywords(content, testNow)

		assert.Equal(t, 70, result.Score)
		assert.Equal(t, `Meta keywords: "coffee, storage, freshness"`, result.Example)
	})

	t.Run("whole words only", func(t *testing.T) {
		result := scoreKeywords(&models.WebsiteContent{Text: "Researching datasets said brandy"}, testNow)

		assert.Equal(t, 40, result.Score)
	})

	t.Run("title fallback", func(t *testing.T) {
		result := scoreKeywords(&models.WebsiteContent{Title: "Coffee Storage"}, testNow)

		assert.Equal(t, `Title: "Coffee Storage"`, result.Example)
	})

	t.Run("many groups and occurrences", func(t *testing.T) {
		content := &models.WebsiteContent{
			Text: strings.Repeat("seo search ranking marketing brand audience software platform data ", 3),
		}

		result := scoreKeywords(content, testNow)

		// 3 groups +25, 27 occurrences +25
		assert.Equal(t, 90, result.Score)
	})
}

func TestScoreFreshness(t *testing.T) {
	t.Run("no dates", func(t *testing.T) {
		result := scoreFreshness(&models.WebsiteContent{Text: "Coffee tastes best fresh."}, testNow)

		assert.Equal(t, 40, result.Score)
		assert.Equal(t, "No date indicators found", result.Example)
	})

	t.Run("last modified header", func(t *testing.T) {
		lastModified := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
		content := &models.WebsiteContent{LastModified: &lastModified, Text: "Published January 10, 2025."}

		result := scoreFreshness(content, testNow)

		assert.Equal(t, 90, result.Score)
		assert.Equal(t, "Most recent date: March 5, 2026 (from Last-Modified header)", result.Example)
	})

	t.Run("content date ages", func(t *testing.T) {
		tests := []struct {
			text string
			want int
		}{
			{"Posted Jan 20, 2026", 80},
			{"Posted October 1st, 2025", 70},
			{"Posted Apr. 2, 2025", 60},
			{"Posted 01/05/2024", 40},
			{"Posted 02/20/2026", 90},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.want, scoreFreshness(&models.WebsiteContent{Text: tt.text}, testNow).Score, tt.text)
		}
	})

	t.Run("most recent content date wins", func(t *testing.T) {
		content := &models.WebsiteContent{Text: "Written June 1, 2025. Revised January 10, 2026."}

		result := scoreFreshness(content, testNow)

		assert.Equal(t, "Most recent date: January 10, 2026", result.Example)
	})

	t.Run("future and impossible dates ignored", func(t *testing.T) {
		content := &models.WebsiteContent{Text: "Event on December 1, 2027 and 02/30/2025"}

		result := scoreFreshness(content, testNow)

		assert.Equal(t, 40, result.Score)
	})

	t.Run("freshness terms", func(t *testing.T) {
		result := scoreFreshness(&models.WebsiteContent{Text: "Our latest update is new today"}, testNow)

		assert.Equal(t, 50, result.Score)
		assert.Equal(t, `Freshness indicator: "Our latest update is new today"`, result.Example)
	})

	t.Run("current year counts as a term", func(t *testing.T) {
		result := scoreFreshness(&models.WebsiteContent{Text: "The 2026 guide, recently revised"}, testNow)

		assert.Equal(t, 45, result.Score)
	})
}

func TestScoreAuthority(t *testing.T) {
	t.Run("strong signals", func(t *testing.T) {
		content := &models.WebsiteContent{
			HTML: `<p class="byline">By Dr. Jane Roe</p><cite>Journal of Coffee Science</cite>`,
			Text: "Jane Roe is a coffee researcher with a PhD in food science. She has 12 years of experience.",
			Links: []string{
				"https://en.wikipedia.org/wiki/Coffee",
				"https://www.cdc.gov/caffeine",
				"https://news.harvard.edu/coffee",
				"https://example.com/blog",
			},
		}

		result := scoreAuthority(content, testNow)

		assert.Equal(t, 90, result.Score)
		assert.Equal(t, "Author: By Dr. Jane Roe", result.Example)
	})

	t.Run("author from schema", func(t *testing.T) {
		content := &models.WebsiteContent{
			Schema: []map[string]any{
				{"@type": "Article", "author": map[string]any{"@type": "Person", "name": "Sam Lee"}},
			},
		}

		result := scoreAuthority(content, testNow)

		assert.Equal(t, 55, result.Score)
		assert.Equal(t, "Author: Sam Lee", result.Example)
	})

	t.Run("citation text", func(t *testing.T) {
		content := &models.WebsiteContent{Text: "Source: National Coffee Association report"}

		result := scoreAuthority(content, testNow)

		assert.Equal(t, 55, result.Score)
		assert.Equal(t, `Citation: "National Coffee Association report"`, result.Example)
	})

	t.Run("authority link example", func(t *testing.T) {
		content := &models.WebsiteContent{Links: []string{"https://www.nih.gov/news"}}

		result := scoreAuthority(content, testNow)

		assert.Equal(t, 50, result.Score)
		assert.Equal(t, "Authority link: https://www.nih.gov/news", result.Example)
	})
}

func TestIsAuthorityHost(t *testing.T) {
	tests := map[string]bool{
		"en.wikipedia.org": true,
		"www.nasa.gov":     true,
		"data.gov.uk":      true,
		"cs.stanford.edu":  true,
		"bbc.co.uk":        true,
		"notwikipedia.org": false,
		"example.com":      false,
		"":                 false,
	}

	for host, want := range tests {
		assert.Equal(t, want, isAuthorityHost(host), host)
	}
}

func TestSchemaHelpers(t *testing.T) {
	schema := []map[string]any{
		{"@type": []any{"Article", "NewsArticle"}},
		{"@graph": []any{map[string]any{"@type": "Article"}, map[string]any{"@type": "Person"}, "junk"}},
	}

	require.Len(t, schemaNodes(schema), 4)
	assert.Equal(t, []string{"Article", "NewsArticle", "Person"}, schemaTypes(schema))
	assert.True(t, hasSchemaType(schema, "Person"))
	assert.False(t, hasSchemaType(schema, "FAQPage"))
}
