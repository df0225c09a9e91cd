package memstore

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alimovshaxzod89/SMS/internal/query"
)

func TestInsertAssignsIDAndTimestamps(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	store := New(WithClock(func() time.Time { return fixed }))

	doc, err := store.Insert(context.Background(), "grades", query.Document{"level": 1})
	require.NoError(t, err)
	assert.True(t, store.ValidID(doc.ID()))
	assert.Equal(t, fixed, doc[query.FieldCreatedAt])
	assert.Equal(t, fixed, doc[query.FieldUpdatedAt])
	assert.Equal(t, 1, store.Len("grades"))
}

func TestUniqueIndexFoldsCase(t *testing.T) {
	store := New(WithUniqueIndex("subjects", "name", true))
	ctx := context.Background()

	_, err := store.Insert(ctx, "subjects", query.Document{"name": "Math"})
	require.NoError(t, err)

	_, err = store.Insert(ctx, "subjects", query.Document{"name": "MATH"})
	require.Error(t, err)
	assert.True(t, query.IsDuplicate(err))
}

func TestUpdateMergesPatchAndKeepsOrder(t *testing.T) {
	store := New(WithUniqueIndex("grades", "level", false))
	ctx := context.Background()

	first, err := store.Insert(ctx, "grades", query.Document{"level": 1, "note": "a"})
	require.NoError(t, err)
	second, err := store.Insert(ctx, "grades", query.Document{"level": 2})
	require.NoError(t, err)

	updated, err := store.Update(ctx, "grades", first.ID(), query.Document{"note": "b"})
	require.NoError(t, err)
	assert.Equal(t, "b", updated["note"])
	assert.Equal(t, 1, updated["level"])

	_, err = store.Update(ctx, "grades", second.ID(), query.Document{"level": 1})
	assert.True(t, query.IsDuplicate(err))

	docs, err := store.Find(ctx, "grades", query.FindOptions{})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, first.ID(), docs[0].ID())
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	store := New()
	_, err := store.Delete(context.Background(), "grades", "3f1c9a4e-0a49-4a36-a6b4-0c2f1f5b2e11")
	assert.True(t, query.IsNotFound(err))
}

func TestFindFiltersSortsAndPages(t *testing.T) {
	store := New()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"Algebra quiz", "Biology lab", "algebra final", "Chemistry (a+b)"} {
		_, err := store.Insert(ctx, "exams", query.Document{
			"title":     title,
			"startTime": base.Add(time.Duration(i) * time.Hour),
			"tags":      []string{"t" + strings.ToLower(title[:1])},
		})
		require.NoError(t, err)
	}

	docs, err := store.Find(ctx, "exams", query.FindOptions{
		Filter: query.Match{Field: "title", Pattern: query.Escape("ALGEBRA")},
		Sort:   []query.SortField{query.Desc("startTime")},
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "algebra final", docs[0]["title"])

	docs, err = store.Find(ctx, "exams", query.FindOptions{
		Filter: query.Match{Field: "title", Pattern: query.Escape("(a+b)")},
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)

	docs, err = store.Find(ctx, "exams", query.FindOptions{
		Filter: query.Range{Field: "startTime", Gte: base.Add(time.Hour), Lt: base.Add(3 * time.Hour)},
		Sort:   []query.SortField{query.Asc("startTime")},
		Skip:   1,
		Limit:  5,
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "algebra final", docs[0]["title"])

	n, err := store.Count(ctx, "exams", query.Contains{Field: "tags", Value: "tb"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.Count(ctx, "exams", query.None{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProjectionAlwaysKeepsID(t *testing.T) {
	store := New()
	ctx := context.Background()
	doc, err := store.Insert(ctx, "teachers", query.Document{"id": "T1", "name": "Ann", "password": "secret"})
	require.NoError(t, err)

	docs, err := store.FindByIDs(ctx, "teachers", []string{doc.ID(), doc.ID()}, query.Projection{Include: []string{"name"}})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, query.Document{"_id": doc.ID(), "name": "Ann"}, docs[0])
}

func TestReturnedDocumentsAreCopies(t *testing.T) {
	store := New()
	ctx := context.Background()
	doc, err := store.Insert(ctx, "subjects", query.Document{"name": "Art", "teachers": []string{"a"}})
	require.NoError(t, err)

	doc["name"] = "mutated"
	docs, err := store.Find(ctx, "subjects", query.FindOptions{})
	require.NoError(t, err)
	docs[0]["teachers"].([]string)[0] = "b"

	again, err := store.Find(ctx, "subjects", query.FindOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Art", again[0]["name"])
	assert.Equal(t, []string{"a"}, again[0]["teachers"])
}

func TestCancelledContextIsUnavailable(t *testing.T) {
	store := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Find(ctx, "grades", query.FindOptions{})
	require.Error(t, err)
	var se *query.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, query.StoreUnavailable, se.Kind)
}

func TestLoadSeed(t *testing.T) {
	store := New()
	seed := `{
		"grades": [{"_id": "7b0e3f0e-5a8c-4d43-9f1e-0d7a4f1a9c01", "level": 1}],
		"teachers": [{"id": "T-1", "name": "Ann", "subjects": ["x"]}]
	}`
	n, err := store.Load(context.Background(), strings.NewReader(seed))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	docs, err := store.Find(context.Background(), "teachers", query.FindOptions{
		Filter: query.Contains{Field: "subjects", Value: "x"},
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)

	grades, err := store.Find(context.Background(), "grades", query.FindOptions{Filter: query.Eq{Field: "level", Value: 1}})
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, "7b0e3f0e-5a8c-4d43-9f1e-0d7a4f1a9c01", grades[0].ID())
}

func TestSearchPatternCacheIsBounded(t *testing.T) {
	ctx := context.Background()
	store := New()
	_, err := store.Insert(ctx, "subjects", query.Document{"name": "Math"})
	require.NoError(t, err)

	for i := 0; i < 3*maxCachedRegexes; i++ {
		term := query.Escape(fmt.Sprintf("term-%d", i))
		_, err := store.Count(ctx, "subjects", query.Match{Field: "name", Pattern: term})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(store.matcher.regexes), maxCachedRegexes)
	}

	n, err := store.Count(ctx, "subjects", query.Match{Field: "name", Pattern: "MAT"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
