package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Expr is a compiled rule predicate.
type Expr interface {
	Eval(ctx Context) bool
}

type op string

const (
	opEq      op = "eq"
	opNe      op = "ne"
	opIn      op = "in"
	opNin     op = "nin"
	opGt      op = "gt"
	opGte     op = "gte"
	opLt      op = "lt"
	opLte     op = "lte"
	opBetween op = "between"
	opExists  op = "exists"
)

var errEmptyPredicate = errors.New("empty operator object")

type andExpr []Expr

func (e andExpr) Eval(ctx Context) bool {
	for _, x := range e {
		if !x.Eval(ctx) {
			return false
		}
	}
	return true
}

type orExpr []Expr

func (e orExpr) Eval(ctx Context) bool {
	for _, x := range e {
		if x.Eval(ctx) {
			return true
		}
	}
	return false
}

type notExpr struct{ inner Expr }

func (e notExpr) Eval(ctx Context) bool { return !e.inner.Eval(ctx) }

// fieldExpr compares one context field. A field absent from the context
// makes every operator except exists evaluate to false.
type fieldExpr struct {
	field    string
	op       op
	operands []any
}

func (e fieldExpr) Eval(ctx Context) bool {
	val, ok := ctx.Lookup(e.field)
	if e.op == opExists {
		return ok == e.operands[0].(bool)
	}
	if !ok {
		return false
	}

	switch e.op {
	case opEq:
		return equal(val, e.operands[0])
	case opNe:
		return !equal(val, e.operands[0])
	case opIn:
		return slices.ContainsFunc(e.operands, func(o any) bool { return equal(val, o) })
	case opNin:
		return !slices.ContainsFunc(e.operands, func(o any) bool { return equal(val, o) })
	case opGt:
		c, ok := compare(val, e.operands[0])
		return ok && c > 0
	case opGte:
		c, ok := compare(val, e.operands[0])
		return ok && c >= 0
	case opLt:
		c, ok := compare(val, e.operands[0])
		return ok && c < 0
	case opLte:
		c, ok := compare(val, e.operands[0])
		return ok && c <= 0
	case opBetween:
		lo, okLo := compare(val, e.operands[0])
		hi, okHi := compare(val, e.operands[1])
		return okLo && okHi && lo >= 0 && hi <= 0
	}
	return false
}

// Parse compiles rule_json into an expression tree.
//
// Objects combine their keys with AND. The keys "and" and "or" take arrays
// of sub-predicates, "not" takes one. Any other key names a context field:
// a scalar value means eq, an array means in, and an object lists
// operators (eq ne in nin gt gte lt lte between exists). An empty object
// matches every context.
func Parse(raw string) (Expr, error) {
	if strings.TrimSpace(raw) == "" {
		return andExpr{}, nil
	}
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("rule_json: %w", err)
	}
	return parseNode(doc, "$")
}

func parseNode(v any, path string) (Expr, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected object, got %T", path, v)
	}

	terms := make(andExpr, 0, len(obj))
	for _, key := range slices.Sorted(maps.Keys(obj)) {
		val := obj[key]
		sub := path + "." + key
		switch key {
		case "and", "or":
			list, ok := val.([]any)
			if !ok {
				return nil, fmt.Errorf("%s: expected array", sub)
			}
			children := make([]Expr, 0, len(list))
			for i, item := range list {
				child, err := parseNode(item, fmt.Sprintf("%s[%d]", sub, i))
				if err != nil {
					return nil, err
				}
				children = append(children, child)
			}
			if key == "and" {
				terms = append(terms, andExpr(children))
			} else {
				terms = append(terms, orExpr(children))
			}
		case "not":
			child, err := parseNode(val, sub)
			if err != nil {
				return nil, err
			}
			terms = append(terms, notExpr{inner: child})
		default:
			expr, err := parseField(key, val, sub)
			if err != nil {
				return nil, err
			}
			terms = append(terms, expr)
		}
	}

	if len(terms) == 1 {
		return terms[0], nil
	}
	return terms, nil
}

func parseField(field string, v any, path string) (Expr, error) {
	switch t := v.(type) {
	case nil:
		return nil, fmt.Errorf("%s: null is not a valid expected value", path)
	case []any:
		if err := checkScalars(t, path); err != nil {
			return nil, err
		}
		return fieldExpr{field: field, op: opIn, operands: t}, nil
	case map[string]any:
		if len(t) == 0 {
			return nil, fmt.Errorf("%s: %w", path, errEmptyPredicate)
		}
		terms := make(andExpr, 0, len(t))
		for _, name := range slices.Sorted(maps.Keys(t)) {
			expr, err := parseOperator(field, op(name), t[name], path+"."+name)
			if err != nil {
				return nil, err
			}
			terms = append(terms, expr)
		}
		if len(terms) == 1 {
			return terms[0], nil
		}
		return terms, nil
	default:
		return fieldExpr{field: field, op: opEq, operands: []any{t}}, nil
	}
}

func parseOperator(field string, o op, v any, path string) (Expr, error) {
	switch o {
	case opEq, opNe, opGt, opGte, opLt, opLte:
		if err := checkScalars([]any{v}, path); err != nil {
			return nil, err
		}
		return fieldExpr{field: field, op: o, operands: []any{v}}, nil
	case opIn, opNin:
		list, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("%s: expected array", path)
		}
		if err := checkScalars(list, path); err != nil {
			return nil, err
		}
		return fieldExpr{field: field, op: o, operands: list}, nil
	case opBetween:
		list, ok := v.([]any)
		if !ok || len(list) != 2 {
			return nil, fmt.Errorf("%s: expected [low, high]", path)
		}
		if err := checkScalars(list, path); err != nil {
			return nil, err
		}
		return fieldExpr{field: field, op: o, operands: list}, nil
	case opExists:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%s: expected boolean", path)
		}
		return fieldExpr{field: field, op: o, operands: []any{b}}, nil
	}
	return nil, fmt.Errorf("%s: unknown operator %q", path, string(o))
}

func checkScalars(values []any, path string) error {
	for _, v := range values {
		switch v.(type) {
		case string, float64, bool:
		default:
			return fmt.Errorf("%s: expected scalar, got %T", path, v)
		}
	}
	return nil
}

func equal(a, b any) bool {
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	}
	return false
}

// compare orders two values of the same type. Strings compare
// lexicographically, which orders YYYY-MM-DD dates correctly.
func compare(a, b any) (int, bool) {
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case float64:
		y, ok := b.(float64)
		if !ok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
