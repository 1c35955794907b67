package rules

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

// PriorityFunc returns the priority of a gitsawe and whether it exists.
type PriorityFunc func(gitsaweID string) (int, bool)

// Candidate is a matched rule paired with the priority of the gitsawe it
// selects. Dangling candidates reference a gitsawe that does not exist.
type Candidate struct {
	Rule     domain.RuleDefinition
	Priority int
	Dangling bool
}

// Resolution is the outcome of resolving one slide.
type Resolution struct {
	// Scope is the scope whose rules produced the candidates, or "" when
	// neither scope matched.
	Scope      domain.RuleScope
	Candidates []Candidate
	Winner     *Candidate
}

// compareCandidates is the single definition of rule precedence:
//  1. resolvable gitsawe before dangling reference
//  2. lower gitsawe priority first
//  3. later created_at first
//  4. lexicographically smaller rule id first
func compareCandidates(a, b Candidate) int {
	if a.Dangling != b.Dangling {
		if a.Dangling {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
		return c
	}
	if c := b.Rule.CreatedAt.Compare(a.Rule.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.Rule.ID, b.Rule.ID)
}

// Rank orders matched rules by precedence. It returns ErrAmbiguousRule if
// the first two candidates compare equal, which can only happen when the
// same rule id appears twice.
func Rank(matched []domain.RuleDefinition, priorityOf PriorityFunc) ([]Candidate, error) {
	candidates := make([]Candidate, 0, len(matched))
	for _, r := range matched {
		c := Candidate{Rule: r}
		p, ok := priorityOf(r.GitsaweID)
		if r.GitsaweID == "" || !ok {
			c.Dangling = true
		} else {
			c.Priority = p
		}
		candidates = append(candidates, c)
	}

	slices.SortStableFunc(candidates, compareCandidates)

	if len(candidates) > 1 && compareCandidates(candidates[0], candidates[1]) == 0 {
		return nil, fmt.Errorf("rule %s: %w", candidates[0].Rule.ID, domain.ErrAmbiguousRule)
	}
	return candidates, nil
}

// Resolve picks the winning rule for a slide. Slide-scoped rules are asked
// first; presentation-scoped rules are consulted only when no slide-scoped
// rule matches. A nil Winner means the slide keeps its authored content.
func Resolve(lib *Library, slide domain.Slide, ctx Context, priorityOf PriorityFunc) (Resolution, error) {
	targets := []Target{
		SlideTarget(slide.ID),
		PresentationTarget(slide.PresentationID),
	}

	for _, t := range targets {
		matched := lib.Match(t, ctx)
		if len(matched) == 0 {
			continue
		}
		ranked, err := Rank(matched, priorityOf)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Scope: t.Scope, Candidates: ranked, Winner: &ranked[0]}, nil
	}

	return Resolution{}, nil
}
