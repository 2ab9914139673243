package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/RuvinSL/aeo-analyzer/pkg/interfaces"
	"github.com/RuvinSL/aeo-analyzer/pkg/logger"
	"github.com/RuvinSL/aeo-analyzer/pkg/models"
	"github.com/RuvinSL/aeo-analyzer/services/analyzer/core"
)

const (
	cacheHeader      = "X-Cache"
	analysisIDHeader = "X-Analysis-ID"

	defaultListLimit = 10
	maxListLimit     = 100

	// maxRequestBody caps the analyze request body (1MB)
	maxRequestBody = 1 << 20
)

// AnalyzerHandler handles analyzer service requests
type AnalyzerHandler struct {
	analyzer interfaces.Analyzer
	store    interfaces.AnalysisStore
	metrics  interfaces.MetricsCollector
	logger   interfaces.Logger
}

func NewAnalyzerHandler(
	analyzer interfaces.Analyzer,
	store interfaces.AnalysisStore,
	metrics interfaces.MetricsCollector,
	logger interfaces.Logger,
) *AnalyzerHandler {
	return &AnalyzerHandler{
		analyzer: analyzer,
		store:    store,
		metrics:  metrics,
		logger:   logger,
	}
}

// Analyze scores the requested page. Requests without options are served
// from the store when a fresh analysis of the same URL exists.
func (h *AnalyzerHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.WithContext(ctx, h.logger)

	var req models.AnalysisRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		log.Warn("Failed to parse request", "error", err)
		h.sendError(w, "Invalid request format", err.Error(), http.StatusBadRequest)
		return
	}

	pageURL, err := core.NormalizeURL(req.URL)
	if err != nil {
		h.sendError(w, "Invalid URL", err.Error(), http.StatusBadRequest)
		return
	}

	opts := req.Options()
	if err := opts.Validate(); err != nil {
		h.sendError(w, "Invalid analysis options", err.Error(), http.StatusBadRequest)
		return
	}

	log.Info("Processing analysis request", "url", pageURL, "default_options", opts.IsDefault())

	if opts.IsDefault() {
		if result, id, ok := h.cached(ctx, log, pageURL); ok {
			w.Header().Set(cacheHeader, "HIT")
			w.Header().Set(analysisIDHeader, id)
			h.sendJSON(w, http.StatusOK, result)
			return
		}
	}

	result, err := h.analyzer.Analyze(ctx, pageURL, opts)
	if err != nil {
		logger.WithError(log, err).Error("Analysis failed", "url", pageURL)
		h.sendAnalysisError(w, err)
		return
	}

	if opts.IsDefault() {
		w.Header().Set(cacheHeader, "MISS")
		if record, err := h.store.Save(ctx, result); err != nil {
			logger.WithError(log, err).Warn("Failed to store analysis", "url", pageURL)
		} else {
			w.Header().Set(analysisIDHeader, record.ID)
		}
	} else {
		w.Header().Set(cacheHeader, "BYPASS")
	}

	log.Info("Analysis completed successfully",
		"url", pageURL,
		"overall_score", result.OverallScore,
	)

	h.sendJSON(w, http.StatusOK, result)
}

// cached looks up a fresh stored analysis. Store failures count as a miss.
func (h *AnalyzerHandler) cached(ctx context.Context, log interfaces.Logger, url string) (*models.AnalysisResult, string, bool) {
	record, found, err := h.store.FindRecent(ctx, url)
	if err != nil {
		logger.WithError(log, err).Warn("Failed to read analysis cache", "url", url)
		h.metrics.RecordCacheLookup(false)
		return nil, "", false
	}
	if !found {
		h.metrics.RecordCacheLookup(false)
		return nil, "", false
	}

	result, err := record.Result()
	if err != nil {
		log.Warn("Discarding undecodable cached analysis", "id", record.ID, "error", err)
		h.metrics.RecordCacheLookup(false)
		return nil, "", false
	}

	log.Debug("Serving cached analysis", "url", url, "id", record.ID, "created_at", record.CreatedAt)
	h.metrics.RecordCacheLookup(true)
	return result, record.ID, true
}

// List returns the most recent analyses, newest first.
func (h *AnalyzerHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.sendError(w, "Invalid limit", "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxListLimit)
	}

	analyses, err := h.store.List(r.Context(), limit)
	if err != nil {
		logger.WithError(logger.WithContext(r.Context(), h.logger), err).Error("Failed to list analyses")
		h.sendError(w, "Failed to list analyses", "", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, http.StatusOK, models.AnalysisList{Analyses: analyses, Count: len(analyses)})
}

// Get returns one stored analysis by id.
func (h *AnalyzerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	record, found, err := h.store.Get(r.Context(), id)
	if err != nil {
		logger.WithError(logger.WithContext(r.Context(), h.logger), err).Error("Failed to load analysis", "id", id)
		h.sendError(w, "Failed to load analysis", "", http.StatusInternalServerError)
		return
	}
	if !found {
		h.sendError(w, "Analysis not found", id, http.StatusNotFound)
		return
	}

	h.sendJSON(w, http.StatusOK, record)
}

func (h *AnalyzerHandler) sendAnalysisError(w http.ResponseWriter, err error) {
	var fetchErr *models.FetchError

	switch {
	case errors.Is(err, models.ErrInvalidInput):
		h.sendError(w, "Invalid analysis request", err.Error(), http.StatusBadRequest)
	case errors.As(err, &fetchErr):
		h.sendError(w, "Failed to fetch URL", fetchErr.Status, http.StatusBadGateway)
	case errors.Is(err, context.DeadlineExceeded):
		h.sendError(w, "Analysis timeout", "", http.StatusGatewayTimeout)
	default:
		h.sendError(w, "Failed to analyze URL", "", http.StatusInternalServerError)
	}
}

func (h *AnalyzerHandler) sendJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

// sendError sends an error response
func (h *AnalyzerHandler) sendError(w http.ResponseWriter, message, details string, statusCode int) {
	h.sendJSON(w, statusCode, models.ErrorResponse{
		Error:      message,
		StatusCode: statusCode,
		Details:    details,
		Timestamp:  time.Now(),
	})
}
