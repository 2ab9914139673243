package models

import "fmt"

type Industry string

const (
	IndustryECommerce  Industry = "e-commerce"
	IndustryHealthcare Industry = "healthcare"
	IndustryFinance    Industry = "finance"
	IndustryEducation  Industry = "education"
	IndustryTechnology Industry = "technology"
)

type ContentFocus string

const (
	FocusEducational   ContentFocus = "educational"
	FocusInformational ContentFocus = "informational"
	FocusTransactional ContentFocus = "transactional"
	FocusNews          ContentFocus = "news"
	FocusHowTo         ContentFocus = "how-to"
)

type AnalysisDepth string

const (
	DepthStandard AnalysisDepth = "standard"
	DepthAdvanced AnalysisDepth = "advanced"
)

// AnalysisOptions tune how a page is scored. The zero value is a standard analysis.
type AnalysisOptions struct {
	CompetitorURL string        `json:"competitorUrl,omitempty"`
	Industry      Industry      `json:"industry,omitempty"`
	ContentFocus  ContentFocus  `json:"contentFocus,omitempty"`
	AnalysisDepth AnalysisDepth `json:"analysisDepth,omitempty"`
}

// Validate rejects unknown enum values. Empty values are allowed.
func (o AnalysisOptions) Validate() error {
	switch o.Industry {
	case "", IndustryECommerce, IndustryHealthcare, IndustryFinance, IndustryEducation, IndustryTechnology:
	default:
		return fmt.Errorf("%w: unsupported industry %q", ErrInvalidInput, o.Industry)
	}

	switch o.ContentFocus {
	case "", FocusEducational, FocusInformational, FocusTransactional, FocusNews, FocusHowTo:
	default:
		return fmt.Errorf("%w: unsupported content focus %q", ErrInvalidInput, o.ContentFocus)
	}

	switch o.AnalysisDepth {
	case "", DepthStandard, DepthAdvanced:
	default:
		return fmt.Errorf("%w: unsupported analysis depth %q", ErrInvalidInput, o.AnalysisDepth)
	}

	return nil
}

// Advanced reports whether advanced-mode checks are requested.
func (o AnalysisOptions) Advanced() bool {
	return o.AnalysisDepth == DepthAdvanced
}

// IsDefault reports whether the options leave scoring untouched, which makes
// the result reusable for any later plain request on the same URL.
func (o AnalysisOptions) IsDefault() bool {
	return o.CompetitorURL == "" &&
		o.Industry == "" &&
		o.ContentFocus == "" &&
		!o.Advanced()
}
