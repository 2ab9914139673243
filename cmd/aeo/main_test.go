package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

const sitePage = `<!DOCTYPE html>
<html>
<head>
	<title>Cold Brew Guide</title>
	<meta name="keywords" content="cold brew, coffee, brewing guide">
	<script type="application/ld+json">{"@type": "HowTo", "name": "Make cold brew"}</script>
</head>
<body>
	<h1>How do you make cold brew?</h1>
	<p>Steep coarse ground coffee in cold water for twelve to eighteen hours, then strain it.</p>
	<h2>Which beans work best?</h2>
	<ul><li>Medium roast</li><li>Dark roast</li><li>Single origin</li></ul>
	<a href="https://en.wikipedia.org/wiki/Cold_brew_coffee">Cold brew on Wikipedia</a>
</body>
</html>`

func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(sitePage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	site := newSite(t)

	stdout, _, err := execute(t, "analyze", site.URL+"/guide", "--json", "--log-level", "error")
	require.NoError(t, err)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))

	assert.Equal(t, site.URL+"/guide", result.URL)
	require.Len(t, result.Breakdown, 6)
	assert.Equal(t, "Question-Based Content", result.Breakdown[0].Factor)
	assert.Contains(t, result.Breakdown[1].Example, "HowTo")
	assert.GreaterOrEqual(t, len(result.Recommendations), 3)
	assert.NotEmpty(t, result.Summary)
}

func TestAnalyzeCommand_Table(t *testing.T) {
	site := newSite(t)

	stdout, _, err := execute(t, "analyze", site.URL, "--industry", "technology", "--depth", "advanced")
	require.NoError(t, err)

	assert.Contains(t, stdout, "AEO analysis for "+site.URL)
	assert.Contains(t, stdout, "Overall score:")
	for _, factor := range []string{
		"Question-Based Content", "Structured Data", "Content Clarity",
		"Semantic Keywords", "Content Freshness", "Authority Signals",
	} {
		assert.Contains(t, stdout, factor)
	}
	assert.Contains(t, stdout, "RECOMMENDATION")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(stdout), "."), "summary is printed last")
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	site := newSite(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing url", args: []string{"analyze"}, wantErr: "accepts 1 arg(s)"},
		{name: "unknown industry", args: []string{"analyze", site.URL, "--industry", "mining"}, wantErr: "unsupported industry"},
		{name: "unsupported scheme", args: []string{"analyze", "ftp://example.com"}, wantErr: "unsupported scheme"},
		{name: "upstream 404", args: []string{"analyze", site.URL + "/missing"}, wantErr: "404 Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, append(tt.args, "--log-level", "error")...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "aeo dev\n", stdout)
}

func TestRenderResult(t *testing.T) {
	var out bytes.Buffer
	renderResult(&out, &models.AnalysisResult{
		URL:          "https://example.com",
		OverallScore: 58,
		Summary:      "Your content needs significant work to be surfaced by answer engines.",
		Scores:       []models.AnalysisScoreSummary{{Category: "Structure", Score: 41}},
		Breakdown: []models.ScoreBreakdown{
			{Factor: "Structured Data", Score: 30, Weight: 20, Example: "No structured data found"},
		},
		Recommendations: []models.Recommendation{
			{Type: models.RecommendationCritical, Title: "Add Structured Data Markup", Action: "Add JSON-LD"},
		},
	})

	rendered := out.String()
	assert.Contains(t, rendered, "Overall score: 58/100 (Structure 41/100)")
	assert.Contains(t, rendered, "No structured data found")
	assert.Contains(t, rendered, "Add Structured Data Markup")
	assert.Contains(t, rendered, "Add JSON-LD")
}
