// Package engine renders a presentation snapshot. It is the composition
// root of rule matching, priority resolution, gitsawe lookup, template
// resolution and content assembly. Rendering is a pure function of the
// snapshot and the context: it performs no I/O and holds no state.
package engine

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/YaredDejene/kidase-presentation/internal/assemble"
	"github.com/YaredDejene/kidase-presentation/internal/domain"
	"github.com/YaredDejene/kidase-presentation/internal/layout"
	"github.com/YaredDejene/kidase-presentation/internal/lookup"
	"github.com/YaredDejene/kidase-presentation/internal/rules"
)

// prepared holds the indexes built once per snapshot.
type prepared struct {
	snap      *domain.Snapshot
	lib       *rules.Library
	index     *lookup.Index
	templates *layout.Resolver
	vars      assemble.Variables
	warnings  []domain.Warning
}

func prepare(snap *domain.Snapshot) (*prepared, error) {
	if snap == nil {
		return nil, domain.NewValidationError("snapshot", "required")
	}
	templates := layout.NewResolver(snap.Templates)
	if err := templates.CheckPresentation(snap.Presentation); err != nil {
		return nil, err
	}
	lib, warnings := rules.Compile(snap.Rules)
	return &prepared{
		snap:      snap,
		lib:       lib,
		index:     lookup.New(snap.Gitsawes, snap.Verses),
		templates: templates,
		vars:      assemble.NewVariables(snap.Variables),
		warnings:  warnings,
	}, nil
}

// renderable returns the enabled slides of the presentation in render order.
func (p *prepared) renderable() []domain.Slide {
	out := make([]domain.Slide, 0, len(p.snap.Slides))
	for _, s := range p.snap.Slides {
		if s.IsDisabled || s.PresentationID != p.snap.Presentation.ID {
			continue
		}
		out = append(out, s)
	}
	slices.SortStableFunc(out, func(a, b domain.Slide) int {
		if c := cmp.Compare(a.SlideOrder, b.SlideOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Render resolves and assembles every enabled slide of the snapshot's
// presentation.
//
// A presentation-level problem (missing template, more languages than the
// template carries) is returned as an error before any slide is rendered.
// Slide-level NotFound, TemplateMismatch and validation problems are
// collected in RenderResult.Failures and do not affect sibling slides.
// ErrAmbiguousRule aborts the whole render.
func Render(snap *domain.Snapshot, ctx rules.Context) (*domain.RenderResult, error) {
	p, err := prepare(snap)
	if err != nil {
		return nil, err
	}

	pres := snap.Presentation
	result := &domain.RenderResult{
		PresentationID: pres.ID,
		Languages:      slices.Clone(pres.LanguageMap),
		Slides:         []domain.RenderedSlide{},
		Warnings:       slices.Clone(p.warnings),
	}

	for _, s := range p.renderable() {
		rendered, warnings, err := p.renderSlide(s, ctx)
		result.Warnings = append(result.Warnings, warnings...)
		if err != nil {
			var se *domain.SlideError
			if !errors.As(err, &se) {
				return nil, err
			}
			result.Failures = append(result.Failures, se)
			continue
		}
		result.Slides = append(result.Slides, rendered)
	}

	if result.Warnings == nil {
		result.Warnings = []domain.Warning{}
	}
	return result, nil
}

func (p *prepared) renderSlide(s domain.Slide, ctx rules.Context) (domain.RenderedSlide, []domain.Warning, error) {
	pres := p.snap.Presentation
	fail := func(ruleID, templateID string, err error) error {
		return &domain.SlideError{SlideID: s.ID, RuleID: ruleID, TemplateID: templateID, Err: err}
	}

	blocks, err := domain.ParseSlideBlocks(s.BlocksJSON, pres.LanguageMap, pres.Slots())
	if err != nil {
		if !errors.Is(err, domain.ErrValidation) {
			err = fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		return domain.RenderedSlide{}, nil, fail("", "", err)
	}
	kind := blocks.KindFor(s.IsDynamic)

	var warnings []domain.Warning
	var winner *rules.Candidate
	if s.IsDynamic {
		res, err := rules.Resolve(p.lib, s, ctx, p.index.Priority)
		if err != nil {
			return domain.RenderedSlide{}, nil, fmt.Errorf("slide %s: %w", s.ID, err)
		}
		winner = res.Winner
		warnings = append(warnings, danglingWarnings(s.ID, res)...)
	}
	ruleID := ""
	if winner != nil {
		ruleID = winner.Rule.ID
	}

	templateID, overrideWarnings := p.templates.Effective(pres, s)
	warnings = append(warnings, overrideWarnings...)
	lay, err := p.templates.Layout(templateID, kind, len(pres.LanguageMap))
	if err != nil {
		return domain.RenderedSlide{}, warnings, fail(ruleID, templateID, err)
	}

	var resolved *domain.ResolvedContent
	if winner != nil {
		rc, err := p.index.Resolve(winner.Rule, lookup.Mode{
			Verses:  blocks.VerseSequenced(kind),
			Require: blocks.Dynamic.RequireVerses,
		})
		if err != nil {
			return domain.RenderedSlide{}, warnings, fail(ruleID, templateID, err)
		}
		resolved = &rc
	}

	rendered, assembleWarnings := assemble.Assemble(assemble.Input{
		Slide:            s,
		Blocks:           blocks,
		Kind:             kind,
		Layout:           lay,
		Resolved:         resolved,
		Variables:        p.vars,
		LanguageMap:      pres.LanguageMap,
		LanguageSlots:    pres.Slots(),
		LanguageSettings: pres.LanguageSettings,
	})
	return rendered, append(warnings, assembleWarnings...), nil
}

// danglingWarnings reports losing candidates that point at a missing
// gitsawe. A dangling winner is reported as a slide failure instead.
func danglingWarnings(slideID string, res rules.Resolution) []domain.Warning {
	var out []domain.Warning
	for i, c := range res.Candidates {
		if i == 0 || !c.Dangling {
			continue
		}
		out = append(out, domain.Warning{
			Code:    domain.WarningDanglingCandidate,
			SlideID: slideID,
			RuleID:  c.Rule.ID,
			Detail:  fmt.Sprintf("gitsawe %q not found", c.Rule.GitsaweID),
		})
	}
	return out
}
