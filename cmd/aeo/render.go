package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

const exampleWidth = 60

var recommendationColors = map[models.RecommendationType]text.Colors{
	models.RecommendationCritical: {text.FgRed},
	models.RecommendationWarning:  {text.FgYellow},
	models.RecommendationPositive: {text.FgGreen},
}

// renderResult prints the breakdown and recommendation tables followed by the summary
func renderResult(w io.Writer, result *models.AnalysisResult) {
	fmt.Fprintf(w, "AEO analysis for %s\n", result.URL)

	categories := make([]string, len(result.Scores))
	for i, s := range result.Scores {
		categories[i] = fmt.Sprintf("%s %d/100", s.Category, s.Score)
	}
	fmt.Fprintf(w, "Overall score: %d/100 (%s)\n\n", result.OverallScore, strings.Join(categories, ", "))

	breakdown := table.NewWriter()
	breakdown.SetOutputMirror(w)
	breakdown.SetStyle(table.StyleLight)
	breakdown.AppendHeader(table.Row{"Factor", "Score", "Weight", "Example"})
	for _, b := range result.Breakdown {
		breakdown.AppendRow(table.Row{b.Factor, b.Score, b.Weight, b.Example})
	}
	breakdown.AppendFooter(table.Row{"Overall", result.OverallScore, 100, ""})
	breakdown.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Score", Align: text.AlignRight},
		{Name: "Weight", Align: text.AlignRight},
		{Name: "Example", WidthMax: exampleWidth},
	})
	breakdown.Render()
	fmt.Fprintln(w)

	recs := table.NewWriter()
	recs.SetOutputMirror(w)
	recs.SetStyle(table.StyleLight)
	recs.AppendHeader(table.Row{"Type", "Recommendation", "Action"})
	for _, r := range result.Recommendations {
		kind := string(r.Type)
		if colors, ok := recommendationColors[r.Type]; ok && text.ANSICodesSupported {
			kind = colors.Sprint(kind)
		}
		recs.AppendRow(table.Row{kind, r.Title, r.Action})
	}
	recs.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Action", WidthMax: exampleWidth},
	})
	recs.Render()
	fmt.Fprintln(w)

	fmt.Fprintln(w, result.Summary)
}
