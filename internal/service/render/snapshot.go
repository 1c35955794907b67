package render

import (
	"context"
	"fmt"
	"slices"

	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

// LoadSnapshot reads every input of one presentation inside a single
// read transaction. The engine never fetches, so anything a rule or slide
// may reference is loaded here: the presentation template and slide
// overrides, variables, rules of the presentation and its slides, the
// gitsawes those rules point at and the verses of their segments.
// Rules pointing at a missing gitsawe are kept; the engine reports them.
func (s *Service) LoadSnapshot(ctx context.Context, presentationID string) (*domain.Snapshot, error) {
	var snap domain.Snapshot

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := s.presentations.GetByID(ctx, presentationID)
		if err != nil {
			return fmt.Errorf("get presentation: %w", err)
		}
		snap.Presentation = *p

		slides, err := s.presentations.ListSlides(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("list slides: %w", err)
		}
		snap.Slides = slides

		templateIDs := []string{p.TemplateID}
		slideIDs := make([]string, 0, len(slides))
		for _, sl := range slides {
			slideIDs = append(slideIDs, sl.ID)
			if sl.TemplateOverrideID != "" {
				templateIDs = append(templateIDs, sl.TemplateOverrideID)
			}
		}

		if snap.Templates, err = s.templates.GetByIDs(ctx, distinct(templateIDs)); err != nil {
			return fmt.Errorf("get templates: %w", err)
		}
		if snap.Variables, err = s.presentations.ListVariables(ctx, p.ID, p.Slots()); err != nil {
			return fmt.Errorf("list variables: %w", err)
		}
		if snap.Rules, err = s.rules.ListForPresentation(ctx, p.ID, slideIDs); err != nil {
			return fmt.Errorf("list rules: %w", err)
		}

		gitsaweIDs := make([]string, 0, len(snap.Rules))
		for _, r := range snap.Rules {
			if r.GitsaweID != "" {
				gitsaweIDs = append(gitsaweIDs, r.GitsaweID)
			}
		}
		if snap.Gitsawes, err = s.gitsawes.GetByIDs(ctx, distinct(gitsaweIDs)); err != nil {
			return fmt.Errorf("get gitsawes: %w", err)
		}

		segments := make([]string, 0, len(snap.Gitsawes))
		for _, g := range snap.Gitsawes {
			segments = append(segments, g.SegmentID())
		}
		if snap.Verses, err = s.gitsawes.ListVersesBySegments(ctx, distinct(segments)); err != nil {
			return fmt.Errorf("list verses: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &snap, nil
}

// distinct returns the sorted non-empty unique values of ids.
func distinct(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
