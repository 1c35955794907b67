package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

func TestCompile_InvalidRulesAreWarnedAndSkipped(t *testing.T) {
	t.Parallel()

	defs := []domain.RuleDefinition{
		{ID: "bad-json", Scope: domain.RuleScopeSlide, SlideID: "s1", RuleJSON: `{`, IsEnabled: true},
		{ID: "no-slide", Scope: domain.RuleScopeSlide, RuleJSON: `{}`, IsEnabled: true},
		{ID: "no-presentation", Scope: domain.RuleScopePresentation, RuleJSON: `{}`, IsEnabled: true},
		{ID: "bad-scope", Scope: "deck", SlideID: "s1", RuleJSON: `{}`, IsEnabled: true},
		{ID: "slide-and-presentation", Scope: domain.RuleScopeSlide, SlideID: "s1", PresentationID: "p1", RuleJSON: `{}`, IsEnabled: true},
		{ID: "presentation-and-slide", Scope: domain.RuleScopePresentation, PresentationID: "p1", SlideID: "s1", RuleJSON: `{}`, IsEnabled: true},
		{ID: "ok", Scope: domain.RuleScopeSlide, SlideID: "s1", RuleJSON: `{}`, IsEnabled: true},
		{ID: "disabled-bad", Scope: domain.RuleScopeSlide, SlideID: "s1", RuleJSON: `{`, IsEnabled: false},
	}

	lib, warnings := Compile(defs)

	require.Len(t, warnings, 6)
	for _, w := range warnings {
		assert.Equal(t, domain.WarningInvalidRule, w.Code)
	}
	assert.Equal(t, "slide-and-presentation", warnings[4].RuleID)
	assert.Equal(t, "presentation-and-slide", warnings[5].RuleID)
	assert.Equal(t, 1, lib.Len())
}

func TestMatch_FiltersByScopeAndTarget(t *testing.T) {
	t.Parallel()

	lib, _ := Compile([]domain.RuleDefinition{
		{ID: "s1-lent", Scope: domain.RuleScopeSlide, SlideID: "s1", RuleJSON: `{"season":"lent"}`, IsEnabled: true},
		{ID: "s1-tsige", Scope: domain.RuleScopeSlide, SlideID: "s1", RuleJSON: `{"season":"tsige"}`, IsEnabled: true},
		{ID: "s2-tsige", Scope: domain.RuleScopeSlide, SlideID: "s2", RuleJSON: `{"season":"tsige"}`, IsEnabled: true},
		{ID: "p1-any", Scope: domain.RuleScopePresentation, PresentationID: "p1", RuleJSON: `{}`, IsEnabled: true},
	})

	got := lib.Match(SlideTarget("s1"), tsige)
	require.Len(t, got, 1)
	assert.Equal(t, "s1-tsige", got[0].ID)

	got = lib.Match(PresentationTarget("p1"), tsige)
	require.Len(t, got, 1)
	assert.Equal(t, "p1-any", got[0].ID)

	assert.Empty(t, lib.Match(PresentationTarget("s1"), tsige), "slide id must not match presentation scope")
	assert.Empty(t, lib.Match(SlideTarget("unknown"), tsige))
}

func TestMatch_NilLibrary(t *testing.T) {
	t.Parallel()

	var lib *Library
	assert.Empty(t, lib.Match(SlideTarget("s1"), tsige))
}
