package generation

import (
	"errors"

	"github.com/apresai/adgenius/internal/answers"
	"github.com/apresai/adgenius/internal/creative"
	"github.com/apresai/adgenius/internal/insight"
)

// Source labels which path produced the data.
type Source string

const (
	SourceClaude           Source = "claude"
	SourceClaudeEnhanced   Source = "claude_enhanced"
	SourceFallback         Source = "fallback"
	SourceEnhancedFallback Source = "enhanced_fallback_with_product_name"
)

// Origin maps the source onto the two result origins.
func (s Source) Origin() creative.Origin {
	switch s {
	case SourceClaude, SourceClaudeEnhanced:
		return creative.OriginClaude
	default:
		return creative.OriginFallback
	}
}

func successSource(s insight.Signals) Source {
	if s.Enhanced {
		return SourceClaudeEnhanced
	}
	return SourceClaude
}

func fallbackSource(s insight.Signals) Source {
	if s.Enhanced {
		return SourceEnhancedFallback
	}
	return SourceFallback
}

// Response is the envelope returned to every caller.
type Response struct {
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Fallback  bool              `json:"fallback,omitempty"`
	Data      *creative.Result  `json:"data"`
	Source    Source            `json:"source"`
	AttemptID string            `json:"attempt_id"`
	Context   GenerationContext `json:"generation_context"`

	attempt *Attempt
}

// GenerationContext summarizes the insights the data was built from.
type GenerationContext struct {
	ProductName     string              `json:"product_name"`
	Category        string              `json:"category"`
	Involvement     string              `json:"involvement"`
	Approach        string              `json:"approach"`
	Triggers        []string            `json:"triggers"`
	BrandColors     answers.BrandColors `json:"brand_colors"`
	HasProductImage bool                `json:"has_product_image"`
}

func newGenerationContext(r answers.Record, s insight.Signals) GenerationContext {
	involvement := "low"
	if s.HighInvolvement {
		involvement = "high"
	}
	return GenerationContext{
		ProductName:     s.ProductName,
		Category:        string(s.Category),
		Involvement:     involvement,
		Approach:        string(insight.SelectStrategy(s).Approach),
		Triggers:        s.TriggerNames(),
		BrandColors:     r.Colors(),
		HasProductImage: r.HasProductImage(),
	}
}

// Attempt returns the attempt behind the response, or nil for responses that
// were decoded rather than generated.
func (r *Response) Attempt() *Attempt {
	return r.attempt
}

// MarkRendered moves the attempt to its final state once the caller has
// presented the response.
func (r *Response) MarkRendered() error {
	if r.attempt == nil {
		return errors.New("response has no attempt")
	}
	return r.attempt.MarkRendered()
}
