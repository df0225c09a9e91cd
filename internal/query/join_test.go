package query_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/query"
)

type fallbackCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (f *fallbackCounter) ObserveJoinFallback(collection string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts == nil {
		f.counts = map[string]int{}
	}
	f.counts[collection]++
}

func TestResolveNestedRelations(t *testing.T) {
	s := newSchool(t)
	ctx := context.Background()
	obs := &fallbackCounter{}
	resolver := query.NewResolver(s.store, zap.NewNop(), 2, obs)

	rows, err := s.store.Find(ctx, "assignments", query.FindOptions{Sort: []query.SortField{query.Asc("dueDate")}})
	require.NoError(t, err)
	rows = resolver.Resolve(ctx, rows, []query.Relation{lessonJoin})
	require.Len(t, rows, 5)

	lesson, ok := rows[0]["lessonId"].(query.Document)
	require.True(t, ok)
	assert.Equal(t, "Math A", lesson["name"])
	assert.Equal(t, query.Document{"_id": s.math, "name": "Mathematics"}, lesson["subjectId"])

	teacher, ok := lesson["teacherId"].(query.Document)
	require.True(t, ok)
	assert.Equal(t, "Ann", teacher["name"])
	assert.Equal(t, "T-100", teacher["id"])
	assert.NotContains(t, teacher, "password")
	assert.NotContains(t, teacher, "email")

	// math-B references an unknown teacher.
	geometry := rows[2]["lessonId"].(query.Document)
	assert.Equal(t, query.Document{"id": "T-404"}, geometry["teacherId"])
	assert.Equal(t, 1, obs.counts["teachers"])
}

func TestResolvePreservesRowOrder(t *testing.T) {
	s := newSchool(t)
	ctx := context.Background()
	resolver := query.NewResolver(s.store, nil, 1, nil)

	rows, err := s.store.Find(ctx, "assignments", query.FindOptions{Sort: []query.SortField{query.Desc("dueDate")}})
	require.NoError(t, err)
	before := ids(rows)

	rows = resolver.Resolve(ctx, rows, []query.Relation{lessonJoin})
	assert.Equal(t, before, ids(rows))
}

func TestResolveManyDropsMissingMembers(t *testing.T) {
	s := newSchool(t)
	ctx := context.Background()
	resolver := query.NewResolver(s.store, nil, 4, nil)

	rows := []query.Document{{
		"_id":      "row",
		"teachers": []interface{}{"T-200", "T-missing", "T-100"},
	}, {
		"_id": "empty",
	}}
	rows = resolver.Resolve(ctx, rows, []query.Relation{{
		Field:      "teachers",
		Kind:       query.ExternalRef,
		Collection: "teachers",
		Fields:     []string{"name"},
		Many:       true,
	}})

	members, ok := rows[0]["teachers"].([]query.Document)
	require.True(t, ok)
	require.Len(t, members, 2)
	assert.Equal(t, "Bob", members[0]["name"])
	assert.Equal(t, "Ann", members[1]["name"])
	assert.NotContains(t, rows[1], "teachers")
}

func TestResolveDegradesToStubOnStoreFailure(t *testing.T) {
	s := newSchool(t)
	ctx := context.Background()
	failing := &failingStore{Store: s.store, collection: "lessons"}
	obs := &fallbackCounter{}
	resolver := query.NewResolver(failing, zap.NewNop(), 2, obs)

	rows, err := s.store.Find(ctx, "assignments", query.FindOptions{})
	require.NoError(t, err)
	rows = resolver.Resolve(ctx, rows, []query.Relation{lessonJoin})

	require.Len(t, rows, 5)
	for _, row := range rows {
		stub, ok := row["lessonId"].(query.Document)
		require.True(t, ok)
		assert.Len(t, stub, 1)
		assert.Contains(t, stub, "id")
	}
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 5, obs.counts["lessons"])
}

func TestResolveSkipsMissingAndMalformedReferences(t *testing.T) {
	s := newSchool(t)
	resolver := query.NewResolver(s.store, nil, 1, nil)

	rows := []query.Document{
		{"_id": "a", "classId": ""},
		{"_id": "b"},
		{"_id": "c", "classId": "not-a-uuid"},
		{"_id": "d", "classId": s.classB},
	}
	rows = resolver.Resolve(context.Background(), rows, []query.Relation{{
		Field: "classId", Kind: query.PrimaryRef, Collection: "classes", Fields: []string{"name"},
	}})

	assert.Equal(t, "", rows[0]["classId"])
	assert.NotContains(t, rows[1], "classId")
	assert.Equal(t, query.Document{"id": "not-a-uuid"}, rows[2]["classId"])
	assert.Equal(t, query.Document{"_id": s.classB, "name": "1-B"}, rows[3]["classId"])
}
