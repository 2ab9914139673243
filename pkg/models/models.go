package models

import (
	"net/http"
	"strings"
	"time"
)

// AnalysisRequest is the body of an analyze call.
type AnalysisRequest struct {
	URL           string        `json:"url" validate:"required,url"`
	CompetitorURL string        `json:"competitorUrl,omitempty"`
	Industry      Industry      `json:"industry,omitempty"`
	ContentFocus  ContentFocus  `json:"contentFocus,omitempty"`
	AnalysisDepth AnalysisDepth `json:"analysisDepth,omitempty"`
}

// Options extracts the scoring options carried by the request.
func (r AnalysisRequest) Options() AnalysisOptions {
	return AnalysisOptions{
		CompetitorURL: strings.TrimSpace(r.CompetitorURL),
		Industry:      r.Industry,
		ContentFocus:  r.ContentFocus,
		AnalysisDepth: r.AnalysisDepth,
	}
}

// WebsiteContent is the snapshot of a fetched page the scorers work on.
// It is built once per analysis and never mutated afterwards.
type WebsiteContent struct {
	URL          string
	Title        string
	HTML         string
	Text         string
	Meta         map[string]string
	Headers      map[string][]string // h1..h4
	Links        []string
	Schema       []map[string]any
	LastModified *time.Time
}

// ScoreBreakdown is the result for one criterion.
type ScoreBreakdown struct {
	Factor  string `json:"factor"`
	Score   int    `json:"score"`
	Weight  int    `json:"weight"`
	Details string `json:"details"`
	Example string `json:"example,omitempty"`
}

// AnalysisScoreSummary is an aggregated category score.
type AnalysisScoreSummary struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
}

type RecommendationType string

const (
	RecommendationPositive RecommendationType = "positive"
	RecommendationWarning  RecommendationType = "warning"
	RecommendationCritical RecommendationType = "critical"
)

type Recommendation struct {
	Type        RecommendationType `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Action      string             `json:"action"`
}

// AnalysisResult represents the complete analysis result
type AnalysisResult struct {
	URL             string                 `json:"url"`
	OverallScore    int                    `json:"overallScore"`
	Summary         string                 `json:"summary"`
	Scores          []AnalysisScoreSummary `json:"scores"`
	Breakdown       []ScoreBreakdown       `json:"breakdown"`
	Recommendations []Recommendation       `json:"recommendations"`
}

type HTTPResponse struct {
	StatusCode int
	Status     string
	Body       []byte
	Headers    http.Header
}

type ErrorResponse struct {
	Error      string    `json:"error"`
	StatusCode int       `json:"status_code"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// AnalysisList is the body returned when listing stored analyses.
type AnalysisList struct {
	Analyses []Analysis `json:"analyses"`
	Count    int        `json:"count"`
}
