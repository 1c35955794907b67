// Package rules selects the rule definition that supplies a dynamic slide's
// reading. It compiles rule_json predicates, matches them against an
// immutable evaluation context, and ranks the candidates deterministically.
package rules

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// DateLayout is the canonical form of date values in a Context.
const DateLayout = "2006-01-02"

// Context is the immutable set of facts rule predicates are evaluated
// against. The zero value is an empty context.
type Context struct {
	fields map[string]any
}

// NewContext copies facts and then each overrides layer in order; later
// layers win. Values are normalized: integers become float64 and
// time.Time becomes a YYYY-MM-DD string.
func NewContext(facts map[string]any, overrides ...map[string]any) Context {
	fields := make(map[string]any, len(facts))
	for k, v := range facts {
		fields[k] = normalize(v)
	}
	for _, layer := range overrides {
		for k, v := range layer {
			fields[k] = normalize(v)
		}
	}
	return Context{fields: fields}
}

// Lookup returns the value of a field and whether it is present.
func (c Context) Lookup(name string) (any, bool) {
	v, ok := c.fields[name]
	return v, ok
}

// Fields returns the field names in sorted order.
func (c Context) Fields() []string {
	return slices.Sorted(maps.Keys(c.fields))
}

// Map returns a copy of the context fields.
func (c Context) Map() map[string]any {
	return maps.Clone(c.fields)
}

func normalize(v any) any {
	switch t := v.(type) {
	case nil, string, bool, float64:
		return t
	case int:
		return float64(t)
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	case time.Time:
		return t.Format(DateLayout)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
