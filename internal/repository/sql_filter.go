package repository

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/alimovshaxzod89/SMS/internal/query"
)

// sqlBuilder renders filter trees into a WHERE fragment over the documents
// table. Arguments are numbered after the ones already collected.
type sqlBuilder struct {
	schema Schema
	args   []interface{}
}

func (b *sqlBuilder) arg(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// expr returns the SQL expression for a field, cast by its kind.
func (b *sqlBuilder) expr(field string) (string, error) {
	if field == query.FieldPrimaryID {
		return "id", nil
	}
	if err := validField(field); err != nil {
		return "", err
	}
	raw := fmt.Sprintf("(doc->>'%s')", field)
	switch b.schema.kind(field) {
	case KindNumber:
		return raw + "::numeric", nil
	case KindTime:
		return raw + "::timestamptz", nil
	case KindBool:
		return raw + "::boolean", nil
	}
	return raw, nil
}

// value converts a Go value to the parameter type matching field's kind.
func (b *sqlBuilder) value(field string, v interface{}) interface{} {
	if field == query.FieldPrimaryID {
		return fmt.Sprint(v)
	}
	switch b.schema.kind(field) {
	case KindNumber:
		if n, ok := query.AsNumber(v); ok {
			return n
		}
	case KindTime:
		if t, ok := query.AsTime(v); ok {
			return t.UTC()
		}
	case KindBool:
		if flag, ok := v.(bool); ok {
			return flag
		}
	}
	return fmt.Sprint(v)
}

func (b *sqlBuilder) build(f query.Filter) (string, error) {
	switch node := query.Simplify(f).(type) {
	case nil:
		return "TRUE", nil
	case query.None:
		return "FALSE", nil
	case query.And:
		return b.join(node, " AND ")
	case query.Or:
		return b.join(node, " OR ")
	case query.Eq:
		e, err := b.expr(node.Field)
		if err != nil {
			return "", err
		}
		if node.Value == nil {
			return e + " IS NULL", nil
		}
		return fmt.Sprintf("%s = %s", e, b.arg(b.value(node.Field, node.Value))), nil
	case query.Ne:
		e, err := b.expr(node.Field)
		if err != nil {
			return "", err
		}
		if node.Value == nil {
			return e + " IS NOT NULL", nil
		}
		return fmt.Sprintf("%s IS DISTINCT FROM %s", e, b.arg(b.value(node.Field, node.Value))), nil
	case query.In:
		return b.in(node)
	case query.Contains:
		if err := validField(node.Field); err != nil {
			return "", err
		}
		return fmt.Sprintf("doc->'%s' @> jsonb_build_array(%s::text)", node.Field, b.arg(fmt.Sprint(node.Value))), nil
	case query.Match:
		if node.Field == query.FieldPrimaryID {
			return "", fmt.Errorf("pattern match on %s", node.Field)
		}
		if err := validField(node.Field); err != nil {
			return "", err
		}
		return fmt.Sprintf("(doc->>'%s') ~* %s", node.Field, b.arg(node.Pattern)), nil
	case query.Range:
		return b.rng(node)
	}
	return "", fmt.Errorf("unsupported filter %T", f)
}

func (b *sqlBuilder) join(children []query.Filter, sep string) (string, error) {
	parts := make([]string, 0, len(children))
	for _, child := range children {
		s, err := b.build(child)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

func (b *sqlBuilder) in(node query.In) (string, error) {
	e, err := b.expr(node.Field)
	if err != nil {
		return "", err
	}
	if node.Field == query.FieldPrimaryID {
		ids := make([]string, len(node.Values))
		for i, v := range node.Values {
			ids[i] = fmt.Sprint(v)
		}
		return fmt.Sprintf("id = ANY(%s::uuid[])", b.arg(pq.StringArray(ids))), nil
	}
	if b.schema.kind(node.Field) == KindNumber {
		nums := make([]float64, 0, len(node.Values))
		for _, v := range node.Values {
			if n, ok := query.AsNumber(v); ok {
				nums = append(nums, n)
			}
		}
		return fmt.Sprintf("%s = ANY(%s::numeric[])", e, b.arg(pq.Float64Array(nums))), nil
	}
	values := make([]string, len(node.Values))
	for i, v := range node.Values {
		values[i] = fmt.Sprint(v)
	}
	return fmt.Sprintf("(doc->>'%s') = ANY(%s::text[])", node.Field, b.arg(pq.StringArray(values))), nil
}

func (b *sqlBuilder) rng(node query.Range) (string, error) {
	e, err := b.expr(node.Field)
	if err != nil {
		return "", err
	}
	var parts []string
	add := func(op string, bound interface{}) {
		if bound != nil {
			parts = append(parts, fmt.Sprintf("%s %s %s", e, op, b.arg(b.value(node.Field, bound))))
		}
	}
	add(">", node.Gt)
	add(">=", node.Gte)
	add("<", node.Lt)
	add("<=", node.Lte)
	if len(parts) == 0 {
		return e + " IS NOT NULL", nil
	}
	return "(" + strings.Join(parts, " AND ") + ")", nil
}

// orderBy renders sort fields. Missing values sort first ascending and
// last descending; insertion order breaks the remaining ties.
func (b *sqlBuilder) orderBy(sort []query.SortField) (string, error) {
	parts := make([]string, 0, len(sort)+1)
	for _, s := range sort {
		e, err := b.expr(s.Field)
		if err != nil {
			return "", err
		}
		if s.Desc {
			parts = append(parts, e+" DESC NULLS LAST")
		} else {
			parts = append(parts, e+" ASC NULLS FIRST")
		}
	}
	parts = append(parts, "seq ASC")
	return strings.Join(parts, ", "), nil
}
