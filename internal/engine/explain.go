package engine

import (
	"time"

	"github.com/YaredDejene/kidase-presentation/internal/domain"
	"github.com/YaredDejene/kidase-presentation/internal/rules"
)

// Candidate is one ranked rule in an explanation.
type Candidate struct {
	RuleID    string    `json:"ruleId"`
	RuleName  string    `json:"ruleName,omitempty"`
	GitsaweID string    `json:"gitsaweId"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
	Dangling  bool      `json:"dangling,omitempty"`
}

// SlideExplanation describes how one dynamic slide's rule was chosen.
type SlideExplanation struct {
	SlideID    string           `json:"slideId"`
	SlideOrder int              `json:"slideOrder"`
	Scope      domain.RuleScope `json:"scope,omitempty"`
	Candidates []Candidate      `json:"candidates"`
	Winner     string           `json:"winner,omitempty"`
}

// Explanation is the rule resolution trace of a presentation.
type Explanation struct {
	PresentationID string             `json:"presentationId"`
	Context        map[string]any     `json:"context"`
	Slides         []SlideExplanation `json:"slides"`
	Warnings       []domain.Warning   `json:"warnings"`
}

// Explain runs rule resolution for every enabled dynamic slide without
// assembling content. Candidates appear in the order Render ranks them.
func Explain(snap *domain.Snapshot, ctx rules.Context) (*Explanation, error) {
	p, err := prepare(snap)
	if err != nil {
		return nil, err
	}

	out := &Explanation{
		PresentationID: snap.Presentation.ID,
		Context:        ctx.Map(),
		Slides:         []SlideExplanation{},
		Warnings:       append([]domain.Warning{}, p.warnings...),
	}

	for _, s := range p.renderable() {
		if !s.IsDynamic {
			continue
		}
		res, err := rules.Resolve(p.lib, s, ctx, p.index.Priority)
		if err != nil {
			return nil, err
		}

		se := SlideExplanation{
			SlideID:    s.ID,
			SlideOrder: s.SlideOrder,
			Scope:      res.Scope,
			Candidates: make([]Candidate, 0, len(res.Candidates)),
		}
		for _, c := range res.Candidates {
			se.Candidates = append(se.Candidates, Candidate{
				RuleID:    c.Rule.ID,
				RuleName:  c.Rule.Name,
				GitsaweID: c.Rule.GitsaweID,
				Priority:  c.Priority,
				CreatedAt: c.Rule.CreatedAt,
				Dangling:  c.Dangling,
			})
		}
		if res.Winner != nil {
			se.Winner = res.Winner.Rule.ID
		}
		out.Slides = append(out.Slides, se)
		out.Warnings = append(out.Warnings, danglingWarnings(s.ID, res)...)
	}

	return out, nil
}
