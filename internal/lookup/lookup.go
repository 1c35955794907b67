// Package lookup resolves a winning rule to its gitsawe and, for
// verse-sequenced slides, the ordered verses of the gitsawe's segment.
package lookup

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

// Mode controls verse expansion for one slide.
type Mode struct {
	// Verses requests the verses of the gitsawe's segment.
	Verses bool
	// Require turns an empty verse set into ErrNotFound.
	Require bool
}

// Index is a read-only view over gitsawe and verse reference data.
// It is safe for concurrent use.
type Index struct {
	gitsawes map[string]domain.Gitsawe
	segments map[string][]domain.Verse
}

// New indexes gitsawes by id and verses by segment. Verses within a segment
// are ordered by verse order, then id.
func New(gitsawes []domain.Gitsawe, verses []domain.Verse) *Index {
	idx := &Index{
		gitsawes: make(map[string]domain.Gitsawe, len(gitsawes)),
		segments: make(map[string][]domain.Verse),
	}
	for _, g := range gitsawes {
		idx.gitsawes[g.ID] = g
	}
	for _, v := range verses {
		idx.segments[v.SegmentID] = append(idx.segments[v.SegmentID], v)
	}
	for seg := range idx.segments {
		slices.SortStableFunc(idx.segments[seg], func(a, b domain.Verse) int {
			if c := cmp.Compare(a.VerseOrder, b.VerseOrder); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
	}
	return idx
}

// Priority reports the priority of a gitsawe. It satisfies rules.PriorityFunc.
func (ix *Index) Priority(gitsaweID string) (int, bool) {
	g, ok := ix.gitsawes[gitsaweID]
	if !ok {
		return 0, false
	}
	return g.Priority, true
}

// Gitsawe returns a gitsawe by id.
func (ix *Index) Gitsawe(id string) (domain.Gitsawe, error) {
	g, ok := ix.gitsawes[id]
	if !ok {
		return domain.Gitsawe{}, fmt.Errorf("gitsawe %q: %w", id, domain.ErrNotFound)
	}
	return g, nil
}

// Verses returns a copy of the ordered verses of a segment.
func (ix *Index) Verses(segmentID string) []domain.Verse {
	return slices.Clone(ix.segments[segmentID])
}

// Resolve fetches the gitsawe a rule points at. A dangling or empty
// reference is ErrNotFound. With mode.Verses the segment's verses are
// attached; an empty segment is valid unless mode.Require is set.
func (ix *Index) Resolve(rule domain.RuleDefinition, mode Mode) (domain.ResolvedContent, error) {
	if rule.GitsaweID == "" {
		return domain.ResolvedContent{}, fmt.Errorf("rule %s has no gitsawe: %w", rule.ID, domain.ErrNotFound)
	}
	g, err := ix.Gitsawe(rule.GitsaweID)
	if err != nil {
		return domain.ResolvedContent{}, fmt.Errorf("rule %s: %w", rule.ID, err)
	}

	out := domain.ResolvedContent{RuleID: rule.ID, Gitsawe: g}
	if !mode.Verses {
		return out, nil
	}

	out.Verses = ix.Verses(g.SegmentID())
	if len(out.Verses) == 0 && mode.Require {
		return domain.ResolvedContent{}, fmt.Errorf("segment %q of gitsawe %s has no verses: %w",
			g.SegmentID(), g.ID, domain.ErrNotFound)
	}
	return out, nil
}
