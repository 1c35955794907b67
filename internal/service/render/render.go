package render

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/YaredDejene/kidase-presentation/internal/domain"
	"github.com/YaredDejene/kidase-presentation/internal/engine"
	"github.com/YaredDejene/kidase-presentation/pkg/ctxutil"
)

// BatchResult is the outcome of one presentation in a batch. Exactly one of
// Result and Err is set.
type BatchResult struct {
	PresentationID string
	Result         *domain.RenderResult
	Err            error
}

// Render loads and renders one presentation. Slide failures are reported in
// the result; an error means nothing was rendered.
func (s *Service) Render(ctx context.Context, in RenderInput) (*domain.RenderResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := s.runContext(ctx, in.PresentationID)
	defer cancel()

	start := time.Now()
	snap, err := s.LoadSnapshot(ctx, in.PresentationID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	res, err := engine.Render(snap, in.Context)
	elapsed := time.Since(start)
	s.metrics.observe(res, elapsed)
	if err != nil {
		s.log.ErrorContext(ctx, "render failed", append(ctxutil.LogAttrs(ctx), slog.String("error", err.Error()))...)
		return nil, fmt.Errorf("render presentation %s: %w", in.PresentationID, err)
	}

	s.logResult(ctx, res, elapsed)
	return res, nil
}

// RenderMany renders several presentations concurrently, at most
// cfg.Concurrency at a time. Results keep the order of the input ids (or of
// ListActive when none are given).
//
// Without FailFast every presentation is attempted and its error is kept in
// its BatchResult. With FailFast the first presentation that errors or has
// slide failures cancels the rest and is returned as the error.
func (s *Service) RenderMany(ctx context.Context, in BatchInput) ([]BatchResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ids := in.PresentationIDs
	if len(ids) == 0 {
		active, err := s.presentations.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("list active presentations: %w", err)
		}
		for _, p := range active {
			ids = append(ids, p.ID)
		}
	}

	results := make([]BatchResult, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	if s.cfg.Concurrency > 0 {
		g.SetLimit(s.cfg.Concurrency)
	}

	for i, id := range ids {
		g.Go(func() error {
			res, err := s.Render(gctx, RenderInput{PresentationID: id, Context: in.Context})
			results[i] = BatchResult{PresentationID: id, Result: res, Err: err}
			if !s.cfg.FailFast {
				return nil
			}
			if err != nil {
				return err
			}
			if len(res.Failures) > 0 {
				return fmt.Errorf("presentation %s: %d slide failures: %w", id, len(res.Failures), res.Failures[0])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Explain loads one presentation and reports how every dynamic slide's rule
// is chosen, without assembling content.
func (s *Service) Explain(ctx context.Context, in RenderInput) (*engine.Explanation, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := s.runContext(ctx, in.PresentationID)
	defer cancel()

	snap, err := s.LoadSnapshot(ctx, in.PresentationID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	out, err := engine.Explain(snap, in.Context)
	if err != nil {
		return nil, fmt.Errorf("explain presentation %s: %w", in.PresentationID, err)
	}
	return out, nil
}

// runContext attaches a run id, unless the caller already set one, and the
// presentation id used in log lines, and applies the render timeout.
func (s *Service) runContext(ctx context.Context, presentationID string) (context.Context, context.CancelFunc) {
	if _, ok := ctxutil.RunIDFromCtx(ctx); !ok {
		ctx = ctxutil.WithRunID(ctx, uuid.New())
	}
	ctx = ctxutil.WithPresentationID(ctx, presentationID)
	if s.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.Timeout)
}

func (s *Service) logResult(ctx context.Context, res *domain.RenderResult, elapsed time.Duration) {
	attrs := ctxutil.LogAttrs(ctx)

	for _, f := range res.Failures {
		s.log.WarnContext(ctx, "slide failed", append(attrs,
			slog.String("slide_id", f.SlideID),
			slog.String("rule_id", f.RuleID),
			slog.String("template_id", f.TemplateID),
			slog.String("error", f.Err.Error()),
		)...)
	}
	for _, w := range res.Warnings {
		s.log.DebugContext(ctx, "render warning", append(attrs, slog.String("warning", w.String()))...)
	}

	s.log.InfoContext(ctx, "presentation rendered", append(attrs,
		slog.Int("slides", len(res.Slides)),
		slog.Int("failures", len(res.Failures)),
		slog.Int("warnings", len(res.Warnings)),
		slog.Duration("elapsed", elapsed),
	)...)
}
