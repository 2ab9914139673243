package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RuvinSL/aeo-analyzer/pkg/interfaces"
	"github.com/RuvinSL/aeo-analyzer/pkg/mocks"
	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

// TestLogger implements the Logger interface for testing
type TestLogger struct {
	InfoCalls  []LogCall
	ErrorCalls []LogCall
	DebugCalls []LogCall
	WarnCalls  []LogCall
	WithArgs   []any
}

type LogCall struct {
	Message string
	Args    []any
}

func (t *TestLogger) Info(msg string, args ...any) {
	t.InfoCalls = append(t.InfoCalls, LogCall{Message: msg, Args: args})
}

func (t *TestLogger) Debug(msg string, args ...any) {
	t.DebugCalls = append(t.DebugCalls, LogCall{Message: msg, Args: args})
}

func (t *TestLogger) Error(msg string, args ...any) {
	t.ErrorCalls = append(t.ErrorCalls, LogCall{Message: msg, Args: args})
}

func (t *TestLogger) Warn(msg string, args ...any) {
	t.WarnCalls = append(t.WarnCalls, LogCall{Message: msg, Args: args})
}

func (t *TestLogger) With(args ...any) interfaces.Logger {
	t.WithArgs = append(t.WithArgs, args...)
	return t
}

// errorAttrs returns the values of every "error" attribute attached through With.
func (t *TestLogger) errorAttrs() []string {
	var out []string
	for _, arg := range t.WithArgs {
		if attr, ok := arg.(slog.Attr); ok && attr.Key == "error" {
			out = append(out, attr.Value.String())
		}
	}
	return out
}

func (t *TestLogger) messages(calls []LogCall) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Message
	}
	return out
}

type handlerDeps struct {
	analyzer *mocks.MockAnalyzer
	store    *mocks.MockAnalysisStore
	metrics  *mocks.MockMetricsCollector
	logger   *TestLogger
}

func newTestHandler(t *testing.T) (*AnalyzerHandler, handlerDeps) {
	ctrl := gomock.NewController(t)
	deps := handlerDeps{
		analyzer: mocks.NewMockAnalyzer(ctrl),
		store:    mocks.NewMockAnalysisStore(ctrl),
		metrics:  mocks.NewMockMetricsCollector(ctrl),
		logger:   &TestLogger{},
	}
	return NewAnalyzerHandler(deps.analyzer, deps.store, deps.metrics, deps.logger), deps
}

func testResult(url string) *models.AnalysisResult {
	return &models.AnalysisResult{
		URL:          url,
		OverallScore: 72,
		Summary:      "Your content is moderately optimized for answer engines, with clear room for improvement.",
		Scores:       []models.AnalysisScoreSummary{{Category: "Structure", Score: 60}},
		Breakdown: []models.ScoreBreakdown{
			{Factor: "Structured Data", Score: 60, Weight: 20, Details: "Schema.org markup"},
		},
		Recommendations: []models.Recommendation{
			{Type: models.RecommendationWarning, Title: "Add Structured Data Markup", Description: "d", Action: "a"},
		},
	}
}

func storedRecord(t *testing.T, id string, result *models.AnalysisResult) *models.Analysis {
	t.Helper()
	record, err := models.NewAnalysis(id, result, time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return record
}

func postAnalyze(h *AnalyzerHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Analyze(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestAnalyzerHandler_Analyze_CacheMiss(t *testing.T) {
	h, deps := newTestHandler(t)
	result := testResult("https://example.com")

	gomock.InOrder(
		deps.store.EXPECT().FindRecent(gomock.Any(), "https://example.com").Return(nil, false, nil),
		deps.metrics.EXPECT().RecordCacheLookup(false),
		deps.analyzer.EXPECT().Analyze(gomock.Any(), "https://example.com", models.AnalysisOptions{}).Return(result, nil),
		deps.store.EXPECT().Save(gomock.Any(), result).Return(storedRecord(t, "id-1", result), nil),
	)

	w := postAnalyze(h, `{"url": "example.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, "id-1", w.Header().Get("X-Analysis-ID"))

	var got models.AnalysisResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, *result, got)
}

func TestAnalyzerHandler_Analyze_CacheHit(t *testing.T) {
	h, deps := newTestHandler(t)
	result := testResult("https://example.com")

	deps.store.EXPECT().FindRecent(gomock.Any(), "https://example.com").Return(storedRecord(t, "id-7", result), true, nil)
	deps.metrics.EXPECT().RecordCacheLookup(true)

	w := postAnalyze(h, `{"url": "https://example.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, "id-7", w.Header().Get("X-Analysis-ID"))

	var got models.AnalysisResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, *result, got)
}

func TestAnalyzerHandler_Analyze_OptionsBypassCache(t *testing.T) {
	h, deps := newTestHandler(t)
	result := testResult("https://example.com")
	opts := models.AnalysisOptions{
		CompetitorURL: "https://rival.example",
		Industry:      models.IndustryFinance,
		ContentFocus:  models.FocusNews,
		AnalysisDepth: models.DepthAdvanced,
	}

	deps.analyzer.EXPECT().Analyze(gomock.Any(), "https://example.com", opts).Return(result, nil)

	w := postAnalyze(h, `{
		"url": "https://example.com",
		"competitorUrl": " https://rival.example ",
		"industry": "finance",
		"contentFocus": "news",
		"analysisDepth": "advanced"
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "BYPASS", w.Header().Get("X-Cache"))
	assert.Empty(t, w.Header().Get("X-Analysis-ID"))
}

func TestAnalyzerHandler_Analyze_StoreErrorsAreNotFatal(t *testing.T) {
	h, deps := newTestHandler(t)
	result := testResult("https://example.com")

	deps.store.EXPECT().FindRecent(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("redis down"))
	deps.metrics.EXPECT().RecordCacheLookup(false)
	deps.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any()).Return(result, nil)
	deps.store.EXPECT().Save(gomock.Any(), result).Return(nil, errors.New("redis down"))

	w := postAnalyze(h, `{"url": "https://example.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, []string{"Failed to read analysis cache", "Failed to store analysis"}, deps.logger.messages(deps.logger.WarnCalls))
	assert.Equal(t, []string{"redis down", "redis down"}, deps.logger.errorAttrs())
}

func TestAnalyzerHandler_Analyze_UndecodableCacheEntry(t *testing.T) {
	h, deps := newTestHandler(t)
	result := testResult("https://example.com")
	broken := &models.Analysis{ID: "bad", URL: "https://example.com", ScoreBreakdown: "{"}

	deps.store.EXPECT().FindRecent(gomock.Any(), gomock.Any()).Return(broken, true, nil)
	deps.metrics.EXPECT().RecordCacheLookup(false)
	deps.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any()).Return(result, nil)
	deps.store.EXPECT().Save(gomock.Any(), result).Return(storedRecord(t, "id-2", result), nil)

	w := postAnalyze(h, `{"url": "https://example.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
}

func TestAnalyzerHandler_Analyze_BadRequests(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{name: "malformed json", body: `{"url":`, wantError: "Invalid request format"},
		{name: "missing url", body: `{}`, wantError: "Invalid URL"},
		{name: "unsupported scheme", body: `{"url": "ftp://example.com"}`, wantError: "Invalid URL"},
		{name: "unknown industry", body: `{"url": "https://example.com", "industry": "mining"}`, wantError: "Invalid analysis options"},
		{name: "unknown depth", body: `{"url": "https://example.com", "analysisDepth": "deep"}`, wantError: "Invalid analysis options"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)

			w := postAnalyze(h, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestAnalyzerHandler_Analyze_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantError   string
		wantDetails string
	}{
		{
			name:        "upstream status",
			err:         &models.FetchError{URL: "https://example.com", StatusCode: 404, Status: "404 Not Found"},
			wantStatus:  http.StatusBadGateway,
			wantError:   "Failed to fetch URL",
			wantDetails: "404 Not Found",
		},
		{
			name:       "timeout",
			err:        fmt.Errorf("failed to fetch URL: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantError:  "Analysis timeout",
		},
		{
			name:        "invalid competitor",
			err:         fmt.Errorf("competitor: %w: unsupported scheme", models.ErrInvalidInput),
			wantStatus:  http.StatusBadRequest,
			wantError:   "Invalid analysis request",
			wantDetails: "competitor: invalid input: unsupported scheme",
		},
		{
			name:       "anything else",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to analyze URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(t)
			deps.store.EXPECT().FindRecent(gomock.Any(), gomock.Any()).Return(nil, false, nil)
			deps.metrics.EXPECT().RecordCacheLookup(false)
			deps.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.err)

			w := postAnalyze(h, `{"url": "https://example.com"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Equal(t, tt.wantDetails, resp.Details)
			assert.Equal(t, []string{"Analysis failed"}, deps.logger.messages(deps.logger.ErrorCalls))
		})
	}
}

func TestAnalyzerHandler_List(t *testing.T) {
	result := testResult("https://example.com")
	records := []models.Analysis{*storedRecord(t, "b", result), *storedRecord(t, "a", result)}

	tests := []struct {
		name      string
		query     string
		wantLimit int
	}{
		{name: "default limit", query: "", wantLimit: 10},
		{name: "explicit limit", query: "?limit=25", wantLimit: 25},
		{name: "capped limit", query: "?limit=1000", wantLimit: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(t)
			deps.store.EXPECT().List(gomock.Any(), tt.wantLimit).Return(records, nil)

			req := httptest.NewRequest(http.MethodGet, "/api/analyses"+tt.query, nil)
			w := httptest.NewRecorder()
			h.List(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			var got models.AnalysisList
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.Equal(t, 2, got.Count)
			assert.Equal(t, records, got.Analyses)
		})
	}
}

func TestAnalyzerHandler_List_InvalidLimit(t *testing.T) {
	for _, query := range []string{"?limit=0", "?limit=-3", "?limit=ten"} {
		t.Run(query, func(t *testing.T) {
			h, _ := newTestHandler(t)

			req := httptest.NewRequest(http.MethodGet, "/api/analyses"+query, nil)
			w := httptest.NewRecorder()
			h.List(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAnalyzerHandler_List_StoreError(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.store.EXPECT().List(gomock.Any(), 10).Return(nil, errors.New("redis down"))

	req := httptest.NewRequest(http.MethodGet, "/api/analyses", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAnalyzerHandler_Get(t *testing.T) {
	result := testResult("https://example.com")
	record := storedRecord(t, "abc", result)

	tests := []struct {
		name       string
		setup      func(*mocks.MockAnalysisStore)
		wantStatus int
	}{
		{
			name: "found",
			setup: func(s *mocks.MockAnalysisStore) {
				s.EXPECT().Get(gomock.Any(), "abc").Return(record, true, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "missing",
			setup: func(s *mocks.MockAnalysisStore) {
				s.EXPECT().Get(gomock.Any(), "abc").Return(nil, false, nil)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "store error",
			setup: func(s *mocks.MockAnalysisStore) {
				s.EXPECT().Get(gomock.Any(), "abc").Return(nil, false, errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(t)
			tt.setup(deps.store)

			router := mux.NewRouter()
			router.HandleFunc("/api/analyses/{id}", h.Get).Methods(http.MethodGet)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analyses/abc", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				var got models.Analysis
				require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
				assert.Equal(t, *record, got)
			}
		})
	}
}
