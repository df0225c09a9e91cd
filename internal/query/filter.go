package query

import (
	"regexp"
	"strings"
)

// Filter is a node of the compiled filter tree. The set of node types is
// closed: only types in this package implement it.
type Filter interface {
	isFilter()
}

// Eq matches documents whose field equals Value.
type Eq struct {
	Field string
	Value interface{}
}

// Ne matches documents whose field differs from Value.
type Ne struct {
	Field string
	Value interface{}
}

// In matches documents whose field equals one of Values.
type In struct {
	Field  string
	Values []interface{}
}

// Contains matches documents whose array field holds Value.
type Contains struct {
	Field string
	Value interface{}
}

// Match is a case-insensitive pattern match. Pattern must already be
// escaped with Escape when it originates from user input.
type Match struct {
	Field   string
	Pattern string
}

// Range bounds a field. Nil bounds are ignored.
type Range struct {
	Field string
	Gt    interface{}
	Gte   interface{}
	Lt    interface{}
	Lte   interface{}
}

// And is a conjunction. An empty And matches everything.
type And []Filter

// Or is a disjunction. An empty Or matches nothing.
type Or []Filter

// None matches nothing. It is the explicit empty-result signal.
type None struct{}

func (Eq) isFilter()       {}
func (Ne) isFilter()       {}
func (In) isFilter()       {}
func (Contains) isFilter() {}
func (Match) isFilter()    {}
func (Range) isFilter()    {}
func (And) isFilter()      {}
func (Or) isFilter()       {}
func (None) isFilter()     {}

// Escape trims a free-text term and quotes every pattern metacharacter.
func Escape(term string) string {
	return regexp.QuoteMeta(strings.TrimSpace(term))
}

// InStrings builds an In filter over string identifiers.
func InStrings(field string, values []string) Filter {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return In{Field: field, Values: out}
}

// IsNone reports whether f can never match.
func IsNone(f Filter) bool {
	_, ok := Simplify(f).(None)
	return ok
}

// Simplify flattens nested conjunctions and disjunctions and folds None
// through them. A nil result means "match everything".
func Simplify(f Filter) Filter {
	switch node := f.(type) {
	case nil:
		return nil
	case And:
		out := make(And, 0, len(node))
		for _, child := range node {
			s := Simplify(child)
			switch c := s.(type) {
			case nil:
				continue
			case None:
				return None{}
			case And:
				out = append(out, c...)
			default:
				out = append(out, s)
			}
		}
		switch len(out) {
		case 0:
			return nil
		case 1:
			return out[0]
		}
		return out
	case Or:
		out := make(Or, 0, len(node))
		for _, child := range node {
			s := Simplify(child)
			switch c := s.(type) {
			case nil:
				return nil
			case None:
				continue
			case Or:
				out = append(out, c...)
			default:
				out = append(out, s)
			}
		}
		switch len(out) {
		case 0:
			return None{}
		case 1:
			return out[0]
		}
		return out
	case In:
		if len(node.Values) == 0 {
			return None{}
		}
		return node
	default:
		return f
	}
}
