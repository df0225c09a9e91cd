package query_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alimovshaxzod89/SMS/internal/query"
	"github.com/alimovshaxzod89/SMS/internal/query/memstore"
)

// school is a small data set: two classes, two subjects, two teachers,
// three lessons and five assignments.
type school struct {
	store    *memstore.Store
	classA   string
	classB   string
	math     string
	physics  string
	lessons  map[string]string
	assigned map[string]string
}

func newSchool(t *testing.T) *school {
	t.Helper()
	ctx := context.Background()
	s := &school{store: memstore.New(), lessons: map[string]string{}, assigned: map[string]string{}}

	insert := func(coll string, doc query.Document) string {
		out, err := s.store.Insert(ctx, coll, doc)
		require.NoError(t, err)
		return out.ID()
	}

	s.classA = insert("classes", query.Document{"name": "1-A"})
	s.classB = insert("classes", query.Document{"name": "1-B"})
	s.math = insert("subjects", query.Document{"name": "Mathematics"})
	s.physics = insert("subjects", query.Document{"name": "Physics"})
	insert("teachers", query.Document{"id": "T-100", "name": "Ann", "surname": "Lee", "email": "ann@school.test", "password": "hash"})
	insert("teachers", query.Document{"id": "T-200", "name": "Bob", "surname": "Ray", "email": "bob@school.test", "password": "hash"})

	s.lessons["math-A"] = insert("lessons", query.Document{"name": "Math A", "classId": s.classA, "subjectId": s.math, "teacherId": "T-100"})
	s.lessons["physics-A"] = insert("lessons", query.Document{"name": "Physics A", "classId": s.classA, "subjectId": s.physics, "teacherId": "T-200"})
	s.lessons["math-B"] = insert("lessons", query.Document{"name": "Math B", "classId": s.classB, "subjectId": s.math, "teacherId": "T-404"})

	due := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	add := func(key, title, lesson string, offset int) {
		s.assigned[key] = insert("assignments", query.Document{
			"title":     title,
			"lessonId":  s.lessons[lesson],
			"startDate": due.Add(-48 * time.Hour),
			"dueDate":   due.Add(time.Duration(offset) * time.Hour),
		})
	}
	add("algebra", "Algebra homework", "math-A", 1)
	add("optics", "Optics report", "physics-A", 2)
	add("geometry", "Geometry sheet", "math-B", 3)
	add("mathlab", "Mathematics lab", "physics-A", 4)
	add("essay", "Essay", "math-B", 5)
	return s
}

var lessonJoin = query.Relation{
	Field:      "lessonId",
	Kind:       query.PrimaryRef,
	Collection: "lessons",
	Fields:     []string{"name"},
	Nested: []query.Relation{
		{Field: "teacherId", Kind: query.ExternalRef, Collection: "teachers", Fields: []string{"name", "surname"}},
		{Field: "subjectId", Kind: query.PrimaryRef, Collection: "subjects", Fields: []string{"name"}},
		{Field: "classId", Kind: query.PrimaryRef, Collection: "classes", Fields: []string{"name"}},
	},
}

var assignmentSpec = query.FilterSpec{
	Via: &query.Via{
		Field:      "lessonId",
		Collection: "lessons",
		Params: []query.Param{
			{Name: "classId", Field: "classId", Kind: query.PrimaryRef, Noun: "class"},
			{Name: "teacherId", Field: "teacherId", Kind: query.ExternalRef, Noun: "teacher"},
		},
		Explicit: &query.Param{Name: "lessonId", Field: "lessonId", Kind: query.PrimaryRef, Noun: "lesson"},
	},
	Search: &query.SearchSpec{
		Fields: []string{"title"},
		Indirect: []query.IndirectMatch{{
			Path:  []query.Hop{{Field: "lessonId", Collection: "lessons"}, {Field: "subjectId", Collection: "subjects"}},
			Field: "name",
		}},
	},
}

func ids(docs []query.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID()
	}
	return out
}

// failingStore fails every read against one collection.
type failingStore struct {
	query.Store
	collection string
	calls      int
}

var errBoom = errors.New("boom")

func (f *failingStore) FindByIDs(ctx context.Context, coll string, ids []string, proj query.Projection) ([]query.Document, error) {
	if coll == f.collection {
		f.calls++
		return nil, &query.StoreError{Kind: query.StoreUnavailable, Collection: coll, Err: errBoom}
	}
	return f.Store.FindByIDs(ctx, coll, ids, proj)
}

func (f *failingStore) Find(ctx context.Context, coll string, opts query.FindOptions) ([]query.Document, error) {
	if coll == f.collection {
		return nil, &query.StoreError{Kind: query.StoreTimeout, Collection: coll, Err: errBoom}
	}
	return f.Store.Find(ctx, coll, opts)
}
