package assemble

import (
	"fmt"
	"regexp"

	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

var placeholderRe = regexp.MustCompile(`\{\{\s*([\p{L}\p{M}\p{N}_.-]+)\s*\}\}`)

// Variables is a presentation's variable table keyed by name.
type Variables struct {
	byName map[string]domain.Variable
}

// NewVariables indexes variables by name. When a name repeats, the first
// occurrence wins.
func NewVariables(vars []domain.Variable) Variables {
	v := Variables{byName: make(map[string]domain.Variable, len(vars))}
	for _, x := range vars {
		if _, dup := v.byName[x.Name]; !dup {
			v.byName[x.Name] = x
		}
	}
	return v
}

// Lookup returns the value of a variable for a language. A known variable
// with no value for lang yields "" and true.
func (v Variables) Lookup(name, lang string) (string, bool) {
	x, ok := v.byName[name]
	if !ok {
		return "", false
	}
	return x.Value(lang), true
}

// substituter replaces placeholders for one slide and reports each
// unresolved name once per language.
type substituter struct {
	vars     Variables
	slideID  string
	seen     map[string]bool
	warnings []domain.Warning
}

func newSubstituter(vars Variables, slideID string) *substituter {
	return &substituter{vars: vars, slideID: slideID, seen: make(map[string]bool)}
}

func (s *substituter) apply(text, lang string) string {
	if text == "" {
		return text
	}
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholderRe.FindStringSubmatch(match)[1]
		if val, ok := s.vars.Lookup(name, lang); ok {
			return val
		}
		key := name + "\x00" + lang
		if !s.seen[key] {
			s.seen[key] = true
			s.warnings = append(s.warnings, domain.Warning{
				Code:     domain.WarningUnresolvedVariable,
				SlideID:  s.slideID,
				Language: lang,
				Detail:   fmt.Sprintf("no variable named %q", name),
			})
		}
		return match
	})
}
