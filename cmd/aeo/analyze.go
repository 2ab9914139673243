package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/RuvinSL/aeo-analyzer/pkg/httpclient"
	"github.com/RuvinSL/aeo-analyzer/pkg/logger"
	"github.com/RuvinSL/aeo-analyzer/pkg/metrics"
	"github.com/RuvinSL/aeo-analyzer/pkg/models"
	"github.com/RuvinSL/aeo-analyzer/services/analyzer/core"
	"github.com/RuvinSL/aeo-analyzer/services/analyzer/scoring"
)

type analyzeFlags struct {
	competitor string
	industry   string
	focus      string
	depth      string
	asJSON     bool
	timeout    time.Duration
}

func newAnalyzeCmd() *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyze a page and print its AEO score",
		Example: `  aeo analyze example.com
  aeo analyze https://example.com/guide --industry technology --focus how-to --depth advanced
  aeo analyze example.com --competitor rival.example --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.competitor, "competitor", "", "competitor URL to compare against")
	cmd.Flags().StringVar(&flags.industry, "industry", "", "industry: e-commerce, healthcare, finance, education, technology")
	cmd.Flags().StringVar(&flags.focus, "focus", "", "content focus: educational, informational, transactional, news, how-to")
	cmd.Flags().StringVar(&flags.depth, "depth", string(models.DepthStandard), "analysis depth: standard, advanced")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "print the raw result as JSON")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 30*time.Second, "timeout for fetching each page")

	return cmd
}

func runAnalyze(cmd *cobra.Command, url string, flags analyzeFlags) error {
	levelName, _ := cmd.Flags().GetString("log-level")
	log := logger.NewWithWriter("aeo", logger.ParseLevel(levelName), cmd.ErrOrStderr())

	opts := models.AnalysisOptions{
		CompetitorURL: flags.competitor,
		Industry:      models.Industry(flags.industry),
		ContentFocus:  models.ContentFocus(flags.focus),
		AnalysisDepth: models.AnalysisDepth(flags.depth),
	}

	fetcher := core.NewContentFetcher(httpclient.New(flags.timeout, log), log)
	analyzer := core.NewAnalyzer(fetcher, scoring.NewEngine(nil), log, metrics.Nop{})

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*flags.timeout)
	defer cancel()

	result, err := analyzer.Analyze(ctx, url, opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if flags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	renderResult(out, result)
	return nil
}
