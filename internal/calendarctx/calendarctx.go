// Package calendarctx builds the immutable rule evaluation context for one
// render run from calendar facts, context files and operator overrides.
// It does not compute liturgical dates; callers supply them.
package calendarctx

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/YaredDejene/kidase-presentation/internal/rules"
)

// Facts are the calendar facts of a run.
type Facts struct {
	Date       time.Time
	Observance string
	Season     string
	// Extra holds any further named facts.
	Extra map[string]any
}

// Fields flattens the facts into context fields. A zero Date contributes no
// date fields.
func (f Facts) Fields() map[string]any {
	out := make(map[string]any, len(f.Extra)+7)
	for k, v := range f.Extra {
		out[k] = v
	}
	if !f.Date.IsZero() {
		out["date"] = f.Date.Format(rules.DateLayout)
		out["year"] = f.Date.Year()
		out["month"] = int(f.Date.Month())
		out["day"] = f.Date.Day()
		out["weekday"] = strings.ToLower(f.Date.Weekday().String())
	}
	if f.Observance != "" {
		out["observance"] = f.Observance
	}
	if f.Season != "" {
		out["season"] = f.Season
	}
	return out
}

// LoadFile reads a YAML mapping of context fields. Nested mappings are
// rejected because rule predicates address flat field names.
func LoadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read context file: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse context file %s: %w", path, err)
	}
	for k, v := range doc {
		switch t := v.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("context file %s: field %q must be a scalar", path, k)
		case time.Time:
			doc[k] = t.Format(rules.DateLayout)
		}
	}
	return doc, nil
}

// ParseOverrides parses key=value pairs. Values that read as booleans or
// numbers are typed accordingly; everything else stays a string.
func ParseOverrides(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, val, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("override %q: expected key=value", p)
		}
		out[key] = coerce(strings.TrimSpace(val))
	}
	return out, nil
}

func coerce(s string) any {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// Build layers facts, then each layer in order. Later layers win, so pass
// file values before command line overrides.
func Build(facts Facts, layers ...map[string]any) rules.Context {
	return rules.NewContext(facts.Fields(), layers...)
}
