package mocks

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/RuvinSL/aeo-analyzer/pkg/interfaces"
)

var (
	_ interfaces.Analyzer         = (*MockAnalyzer)(nil)
	_ interfaces.ContentFetcher   = (*MockContentFetcher)(nil)
	_ interfaces.HTTPClient       = (*MockHTTPClient)(nil)
	_ interfaces.AnalysisStore    = (*MockAnalysisStore)(nil)
	_ interfaces.Logger           = (*MockLogger)(nil)
	_ interfaces.MetricsCollector = (*MockMetricsCollector)(nil)
	_ interfaces.HealthChecker    = (*MockHealthChecker)(nil)
)

func TestMockLogger_VariadicArgs(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := NewMockLogger(ctrl)

	log.EXPECT().Warn("cache miss", "url", "https://example.com")
	log.EXPECT().With("error", gomock.Any()).Return(log)

	log.Warn("cache miss", "url", "https://example.com")
	assert.Equal(t, log, log.With("error", "boom"))
}
