package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RuvinSL/aeo-analyzer/pkg/interfaces"
	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

// MemoryStore keeps analyses in process memory, oldest first.
// Only the newest retain records are kept.
type MemoryStore struct {
	mu       sync.RWMutex
	records  []models.Analysis
	freshFor time.Duration
	retain   int
	now      func() time.Time
}

// NewMemoryStore creates a store that serves cached analyses for freshFor.
// A nil clock means time.Now.
func NewMemoryStore(freshFor time.Duration, retain int, now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		freshFor: freshFor,
		retain:   retain,
		now:      now,
	}
}

func (s *MemoryStore) Save(_ context.Context, result *models.AnalysisResult) (*models.Analysis, error) {
	record, err := models.NewAnalysis(uuid.NewString(), result, s.now())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, *record)
	if s.retain > 0 && len(s.records) > s.retain {
		s.records = append([]models.Analysis(nil), s.records[len(s.records)-s.retain:]...)
	}

	return record, nil
}

// FindRecent returns the newest analysis of url created within the freshness window.
func (s *MemoryStore) FindRecent(_ context.Context, url string) (*models.Analysis, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	for i := len(s.records) - 1; i >= 0; i-- {
		record := s.records[i]
		if record.URL != url {
			continue
		}
		if !isFresh(record, now, s.freshFor) {
			return nil, false, nil
		}
		return &record, true, nil
	}

	return nil, false, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Analysis, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.records {
		if s.records[i].ID == id {
			record := s.records[i]
			return &record, true, nil
		}
	}
	return nil, false, nil
}

// List returns up to limit analyses, newest first.
func (s *MemoryStore) List(_ context.Context, limit int) ([]models.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.records) {
		limit = len(s.records)
	}

	out := make([]models.Analysis, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

func (s *MemoryStore) CheckHealth(context.Context) error {
	return nil
}

// isFresh reports whether record was created less than freshFor before now.
func isFresh(record models.Analysis, now time.Time, freshFor time.Duration) bool {
	created, err := record.CreatedTime()
	if err != nil {
		return false
	}
	return now.Sub(created) < freshFor
}

var _ interfaces.AnalysisStore = (*MemoryStore)(nil)
