package core

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/RuvinSL/aeo-analyzer/pkg/interfaces"
	"github.com/RuvinSL/aeo-analyzer/pkg/logger"
	"github.com/RuvinSL/aeo-analyzer/pkg/models"
	"github.com/RuvinSL/aeo-analyzer/services/analyzer/scoring"
)

type Analyzer struct {
	fetcher interfaces.ContentFetcher
	engine  *scoring.Engine
	logger  interfaces.Logger
	metrics interfaces.MetricsCollector
}

func NewAnalyzer(
	fetcher interfaces.ContentFetcher,
	engine *scoring.Engine,
	logger interfaces.Logger,
	metrics interfaces.MetricsCollector,
) *Analyzer {
	if engine == nil {
		engine = scoring.NewEngine(nil)
	}
	return &Analyzer{
		fetcher: fetcher,
		engine:  engine,
		logger:  logger,
		metrics: metrics,
	}
}

// Analyze fetches the page (and the competitor page, if requested) and scores it.
// Only a failure on the primary page is returned; a competitor that cannot be
// fetched just drops the comparison.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string, opts models.AnalysisOptions) (*models.AnalysisResult, error) {
	start := time.Now()
	log := logger.WithContext(ctx, a.logger)

	pageURL, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	competitorURL := ""
	if opts.CompetitorURL != "" {
		if competitorURL, err = NormalizeURL(opts.CompetitorURL); err != nil {
			return nil, fmt.Errorf("competitor: %w", err)
		}
	}

	log.Info("Starting AEO analysis", "url", pageURL, "competitor", competitorURL,
		"industry", opts.Industry, "content_focus", opts.ContentFocus, "depth", opts.AnalysisDepth)

	var content, competitor *models.WebsiteContent

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		content, err = a.fetcher.Fetch(gctx, pageURL)
		return err
	})
	if competitorURL != "" {
		g.Go(func() error {
			c, err := a.fetcher.Fetch(gctx, competitorURL)
			if err != nil {
				logger.WithError(log, err).Warn("Skipping competitor comparison", "competitor", competitorURL)
				return nil
			}
			competitor = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.WithError(log, err).Error("Failed to fetch web page", "url", pageURL)
		a.metrics.RecordAnalysis(false, time.Since(start).Seconds())
		return nil, err
	}

	result := a.engine.Evaluate(content, competitor, opts)

	a.metrics.RecordAnalysis(true, time.Since(start).Seconds())
	a.metrics.RecordScores(result.OverallScore, result.Breakdown)

	log.Info("AEO analysis completed",
		"url", pageURL,
		"duration", time.Since(start),
		"overall_score", result.OverallScore,
		"recommendations", len(result.Recommendations),
	)

	return result, nil
}

// NormalizeURL trims the input and adds https:// when no scheme is given.
// Only absolute http(s) URLs with a host are accepted.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: url is required", models.ErrInvalidInput)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: malformed url %q", models.ErrInvalidInput, raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", models.ErrInvalidInput, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: url %q has no host", models.ErrInvalidInput, raw)
	}

	return u.String(), nil
}

var _ interfaces.Analyzer = (*Analyzer)(nil)
