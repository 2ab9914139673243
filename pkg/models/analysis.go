package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Analysis is the persisted form of an AnalysisResult. Nested values are
// stored as JSON strings so any key-value backend can hold the record as-is.
type Analysis struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	OverallScore    int    `json:"overallScore"`
	Summary         string `json:"summary"`
	CategoryScores  string `json:"categoryScores"`
	ScoreBreakdown  string `json:"scoreBreakdown"`
	Recommendations string `json:"recommendations"`
	CreatedAt       string `json:"createdAt"`
}

// NewAnalysis flattens a result into a storable record.
func NewAnalysis(id string, result *AnalysisResult, createdAt time.Time) (*Analysis, error) {
	scores, err := json.Marshal(result.Scores)
	if err != nil {
		return nil, fmt.Errorf("failed to encode category scores: %w", err)
	}
	breakdown, err := json.Marshal(result.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("failed to encode score breakdown: %w", err)
	}
	recommendations, err := json.Marshal(result.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("failed to encode recommendations: %w", err)
	}

	return &Analysis{
		ID:              id,
		URL:             result.URL,
		OverallScore:    result.OverallScore,
		Summary:         result.Summary,
		CategoryScores:  string(scores),
		ScoreBreakdown:  string(breakdown),
		Recommendations: string(recommendations),
		CreatedAt:       createdAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

// CreatedTime parses CreatedAt.
func (a *Analysis) CreatedTime() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, a.CreatedAt)
}

// Result decodes the record back into an AnalysisResult.
func (a *Analysis) Result() (*AnalysisResult, error) {
	result := &AnalysisResult{
		URL:          a.URL,
		OverallScore: a.OverallScore,
		Summary:      a.Summary,
	}

	if err := json.Unmarshal([]byte(a.CategoryScores), &result.Scores); err != nil {
		return nil, fmt.Errorf("failed to decode category scores: %w", err)
	}
	if err := json.Unmarshal([]byte(a.ScoreBreakdown), &result.Breakdown); err != nil {
		return nil, fmt.Errorf("failed to decode score breakdown: %w", err)
	}
	if err := json.Unmarshal([]byte(a.Recommendations), &result.Recommendations); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}

	return result, nil
}
