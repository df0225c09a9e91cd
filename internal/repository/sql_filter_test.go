package repository

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alimovshaxzod89/SMS/internal/query"
)

func TestSQLBuilderBuild(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter query.Filter
		want   string
		args   []interface{}
	}{
		{name: "match all", filter: nil, want: "TRUE"},
		{name: "none", filter: query.And{query.Eq{Field: "a", Value: "x"}, query.None{}}, want: "FALSE"},
		{
			name:   "primary ids",
			filter: query.InStrings(query.FieldPrimaryID, []string{"a", "b"}),
			want:   "id = ANY($1::uuid[])",
			args:   []interface{}{pq.StringArray{"a", "b"}},
		},
		{
			name:   "text in",
			filter: query.InStrings("lessonId", []string{"l1"}),
			want:   "(doc->>'lessonId') = ANY($1::text[])",
			args:   []interface{}{pq.StringArray{"l1"}},
		},
		{
			name:   "array membership",
			filter: query.Contains{Field: "teachers", Value: "t1"},
			want:   "doc->'teachers' @> jsonb_build_array($1::text)",
			args:   []interface{}{"t1"},
		},
		{
			name:   "overlap window",
			filter: query.And{query.Range{Field: "startTime", Lt: start.Add(time.Hour)}, query.Range{Field: "endTime", Gt: start}},
			want:   "(((doc->>'startTime')::timestamptz < $1) AND ((doc->>'endTime')::timestamptz > $2))",
			args:   []interface{}{start.Add(time.Hour), start},
		},
		{
			name:   "numeric equality and exclusion",
			filter: query.And{query.Eq{Field: "level", Value: 2}, query.Ne{Field: query.FieldPrimaryID, Value: "x"}},
			want:   "((doc->>'level')::numeric = $1 AND id IS DISTINCT FROM $2)",
			args:   []interface{}{float64(2), "x"},
		},
		{
			name:   "search",
			filter: query.Or{query.Match{Field: "title", Pattern: `a\.b`}, query.Eq{Field: "classId", Value: nil}},
			want:   "((doc->>'title') ~* $1 OR (doc->>'classId') IS NULL)",
			args:   []interface{}{`a\.b`},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := &sqlBuilder{schema: DefaultSchema()}
			got, err := b.build(tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			if tc.args == nil {
				assert.Empty(t, b.args)
			} else {
				assert.Equal(t, tc.args, b.args)
			}
		})
	}
}

func TestSQLBuilderRejectsUnsafeFieldNames(t *testing.T) {
	b := &sqlBuilder{schema: DefaultSchema()}
	_, err := b.build(query.Eq{Field: "name'; DROP TABLE documents; --", Value: "x"})
	assert.Error(t, err)

	_, err = b.orderBy([]query.SortField{query.Asc("a b")})
	assert.Error(t, err)
}

func TestSQLBuilderOrderBy(t *testing.T) {
	b := &sqlBuilder{schema: DefaultSchema()}
	got, err := b.orderBy([]query.SortField{query.Asc("level"), query.Desc("name")})
	require.NoError(t, err)
	assert.Equal(t, "(doc->>'level')::numeric ASC NULLS FIRST, (doc->>'name') DESC NULLS LAST, seq ASC", got)

	got, err = b.orderBy(nil)
	require.NoError(t, err)
	assert.Equal(t, "seq ASC", got)
}
