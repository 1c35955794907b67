package rules

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

// Target identifies what rules are asked about: a presentation or a slide.
type Target struct {
	Scope domain.RuleScope
	ID    string
}

// SlideTarget returns the slide-scope target for a slide id.
func SlideTarget(slideID string) Target {
	return Target{Scope: domain.RuleScopeSlide, ID: slideID}
}

// PresentationTarget returns the presentation-scope target for a presentation id.
func PresentationTarget(presentationID string) Target {
	return Target{Scope: domain.RuleScopePresentation, ID: presentationID}
}

type compiledRule struct {
	def  domain.RuleDefinition
	expr Expr
}

// Library is a compiled, read-only rule set. It is safe for concurrent use.
type Library struct {
	byTarget map[Target][]compiledRule
}

// Compile indexes the enabled rules by target and parses their predicates.
// Disabled rules are dropped. Rules whose scope is inconsistent with their
// target ids or whose predicate does not parse can never match; each is
// reported as an INVALID_RULE warning instead of failing the run.
func Compile(defs []domain.RuleDefinition) (*Library, []domain.Warning) {
	lib := &Library{byTarget: make(map[Target][]compiledRule)}
	var warnings []domain.Warning

	for _, def := range defs {
		if !def.IsEnabled {
			continue
		}
		if err := checkScope(def); err != nil {
			warnings = append(warnings, invalidRule(def, err))
			continue
		}
		expr, err := Parse(def.RuleJSON)
		if err != nil {
			warnings = append(warnings, invalidRule(def, err))
			continue
		}
		t := Target{Scope: def.Scope, ID: def.TargetID()}
		lib.byTarget[t] = append(lib.byTarget[t], compiledRule{def: def, expr: expr})
	}

	for t := range lib.byTarget {
		slices.SortStableFunc(lib.byTarget[t], func(a, b compiledRule) int {
			return cmp.Compare(a.def.ID, b.def.ID)
		})
	}

	return lib, warnings
}

// Match returns the enabled rules attached to target whose predicate holds
// for ctx. The order of the result carries no meaning; see Rank.
func (l *Library) Match(target Target, ctx Context) []domain.RuleDefinition {
	if l == nil {
		return nil
	}
	var out []domain.RuleDefinition
	for _, r := range l.byTarget[target] {
		if r.expr.Eval(ctx) {
			out = append(out, r.def)
		}
	}
	return out
}

// Len returns the number of compiled rules.
func (l *Library) Len() int {
	n := 0
	for _, rs := range l.byTarget {
		n += len(rs)
	}
	return n
}

func checkScope(def domain.RuleDefinition) error {
	switch def.Scope {
	case domain.RuleScopeSlide:
		if def.SlideID == "" {
			return fmt.Errorf("slide-scoped rule has no slide_id")
		}
		if def.PresentationID != "" {
			return fmt.Errorf("slide-scoped rule also names presentation %s", def.PresentationID)
		}
	case domain.RuleScopePresentation:
		if def.PresentationID == "" {
			return fmt.Errorf("presentation-scoped rule has no presentation_id")
		}
		if def.SlideID != "" {
			return fmt.Errorf("presentation-scoped rule also names slide %s", def.SlideID)
		}
	default:
		return fmt.Errorf("unknown scope %q", def.Scope)
	}
	return nil
}

func invalidRule(def domain.RuleDefinition, err error) domain.Warning {
	return domain.Warning{
		Code:    domain.WarningInvalidRule,
		SlideID: def.SlideID,
		RuleID:  def.ID,
		Detail:  err.Error(),
	}
}
