// Package generation runs one answer-to-prompt generation attempt: derive
// insights, try the remote model, and fall back to the rule-based generator on
// any failure. Callers always receive a complete Response.
package generation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/apresai/adgenius/internal/answers"
	"github.com/apresai/adgenius/internal/creative"
	"github.com/apresai/adgenius/internal/insight"
	"github.com/apresai/adgenius/internal/progress"
)

var tracer = otel.Tracer("adgenius-generation")

// Options tune a Service. The zero value is usable.
type Options struct {
	Request creative.RequestOptions
	// Timeout bounds the remote call. Zero means no deadline beyond the caller's.
	Timeout    time.Duration
	OnProgress progress.Callback
}

// Service orchestrates generation attempts.
type Service struct {
	gen  creative.Generator
	opts Options
	log  *slog.Logger
}

// NewService creates a Service. gen may be nil, in which case every attempt
// falls back with a configuration error.
func NewService(gen creative.Generator, logger *slog.Logger, opts Options) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{gen: gen, opts: opts, log: logger}
}

// Generate runs one attempt. It never returns an error: remote failures are
// reported inside the fallback Response.
func (s *Service) Generate(ctx context.Context, r answers.Record) *Response {
	ctx, span := tracer.Start(ctx, "generation.generate")
	defer span.End()

	attempt := newAttempt(s.opts.OnProgress)
	signals := insight.Extract(r)
	strategy := insight.SelectStrategy(signals)
	genCtx := newGenerationContext(r, signals)

	span.SetAttributes(
		attribute.String("attempt.id", attempt.ID),
		attribute.String("insight.category", string(signals.Category)),
		attribute.String("strategy.approach", string(strategy.Approach)),
		attribute.Bool("answers.enhanced", signals.Enhanced),
	)

	s.advance(ctx, attempt, progress.StageRequesting, "Requesting generation")

	req := creative.BuildRequest(r, signals, strategy, s.opts.Request)
	result, err := s.remote(ctx, req)
	if err == nil {
		attempt.source = successSource(signals)
		s.advance(ctx, attempt, progress.StageSucceeded, "Generation complete")
		s.log.InfoContext(ctx, "Generation succeeded",
			"attempt_id", attempt.ID,
			"source", attempt.source,
			"category", signals.Category,
		)
		return &Response{
			Success:   true,
			Data:      result,
			Source:    attempt.source,
			AttemptID: attempt.ID,
			Context:   genCtx,
			attempt:   attempt,
		}
	}

	return s.fallback(ctx, span, attempt, signals, strategy, genCtx, err)
}

// FallbackFor produces a fallback response without contacting the provider,
// for requests that failed before a generation request could be built.
func (s *Service) FallbackFor(ctx context.Context, r answers.Record, cause error) *Response {
	ctx, span := tracer.Start(ctx, "generation.fallback")
	defer span.End()

	attempt := newAttempt(s.opts.OnProgress)
	signals := insight.Extract(r)
	strategy := insight.SelectStrategy(signals)
	s.advance(ctx, attempt, progress.StageRequesting, "Requesting generation")
	return s.fallback(ctx, span, attempt, signals, strategy, newGenerationContext(r, signals), cause)
}

func (s *Service) fallback(ctx context.Context, span trace.Span, attempt *Attempt, signals insight.Signals, strategy insight.Strategy, genCtx GenerationContext, err error) *Response {
	kind := Classify(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, string(kind))
	span.SetAttributes(attribute.String("error.kind", string(kind)))

	attempt.source = fallbackSource(signals)
	attempt.err = err
	s.advance(ctx, attempt, progress.StageFallenBack, "Using rule-based fallback")
	s.log.WarnContext(ctx, "Remote generation failed, using fallback",
		"attempt_id", attempt.ID,
		"error_kind", kind,
		"error", err,
	)

	return &Response{
		Success:   false,
		Error:     err.Error(),
		Fallback:  true,
		Data:      creative.Fallback(signals, strategy),
		Source:    attempt.source,
		AttemptID: attempt.ID,
		Context:   genCtx,
		attempt:   attempt,
	}
}

// advance moves the attempt forward. A rejected transition does not change the
// response the caller gets, so it is logged rather than returned.
func (s *Service) advance(ctx context.Context, attempt *Attempt, to progress.Stage, msg string) {
	if err := attempt.advance(to, msg); err != nil {
		s.log.ErrorContext(ctx, "Attempt state", "attempt_id", attempt.ID, "error", err)
	}
}

func (s *Service) remote(ctx context.Context, req creative.Request) (*creative.Result, error) {
	if s.gen == nil {
		return nil, creative.ErrMissingCredential
	}

	ctx, span := tracer.Start(ctx, "remote.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("model", req.Model),
		attribute.Int64("max_tokens", req.MaxTokens),
	)

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := s.gen.Generate(ctx, req)
	span.SetAttributes(attribute.Int64("duration_ms", time.Since(start).Milliseconds()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return res, nil
}
