package interfaces

import (
	"context"

	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

// Analyzer defines the contract for AEO analysis of a page
type Analyzer interface {
	Analyze(ctx context.Context, url string, opts models.AnalysisOptions) (*models.AnalysisResult, error)
}

// ContentFetcher retrieves a page and extracts the facts the scorers need
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (*models.WebsiteContent, error)
}

// HTTPClient defines the contract for HTTP operations
type HTTPClient interface {
	Get(ctx context.Context, url string) (*models.HTTPResponse, error)
}

// AnalysisStore keeps finished analyses for reuse within the freshness window.
// Implementations must be safe for concurrent use.
type AnalysisStore interface {
	Save(ctx context.Context, result *models.AnalysisResult) (*models.Analysis, error)
	FindRecent(ctx context.Context, url string) (*models.Analysis, bool, error)
	Get(ctx context.Context, id string) (*models.Analysis, bool, error)
	List(ctx context.Context, limit int) ([]models.Analysis, error)
	CheckHealth(ctx context.Context) error
}

// Logger defines the contract for logging operations
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	RecordRequest(method, path string, statusCode int, duration float64)
	RecordAnalysis(success bool, duration float64)
	RecordCacheLookup(hit bool)
	RecordScores(overall int, breakdown []models.ScoreBreakdown)
}

// HealthChecker defines the contract for health check operations
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}
