package query_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alimovshaxzod89/SMS/internal/query"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

func compileAndFind(t *testing.T, s *school, values query.Values) []string {
	t.Helper()
	ctx := context.Background()
	f, err := query.NewCompiler(s.store).Compile(ctx, assignmentSpec, values)
	require.NoError(t, err)
	docs, err := s.store.Find(ctx, "assignments", query.FindOptions{Filter: f})
	require.NoError(t, err)
	return ids(docs)
}

func TestCompileRejectsMalformedIdentifier(t *testing.T) {
	s := newSchool(t)
	_, err := query.NewCompiler(s.store).Compile(context.Background(), assignmentSpec, query.Values{"classId": "not-an-id"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrMalformedInput))
	assert.Equal(t, "Invalid class ID format", appErrors.FromError(err).Message)

	_, err = query.NewCompiler(s.store).Compile(context.Background(), assignmentSpec, query.Values{"lessonId": "123"})
	assert.Equal(t, "Invalid lesson ID format", appErrors.FromError(err).Message)
}

func TestCompileWithoutParametersMatchesAll(t *testing.T) {
	s := newSchool(t)
	f, err := query.NewCompiler(s.store).Compile(context.Background(), assignmentSpec, query.Values{"classId": "  "})
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestCompileRestrictsThroughLessons(t *testing.T) {
	s := newSchool(t)
	got := compileAndFind(t, s, query.Values{"classId": s.classA})
	assert.ElementsMatch(t, []string{s.assigned["algebra"], s.assigned["optics"], s.assigned["mathlab"]}, got)

	got = compileAndFind(t, s, query.Values{"teacherId": "T-100"})
	assert.Equal(t, []string{s.assigned["algebra"]}, got)
}

func TestCompileEmptyRestrictionIsNone(t *testing.T) {
	s := newSchool(t)
	f, err := query.NewCompiler(s.store).Compile(context.Background(), assignmentSpec, query.Values{"classId": uuid.NewString()})
	require.NoError(t, err)
	assert.Equal(t, query.None{}, f)

	f, err = query.NewCompiler(s.store).Compile(context.Background(), assignmentSpec, query.Values{"teacherId": "T-999", "search": "math"})
	require.NoError(t, err)
	assert.Equal(t, query.None{}, f)
}

func TestCompileIntersectsExplicitLesson(t *testing.T) {
	s := newSchool(t)

	got := compileAndFind(t, s, query.Values{"classId": s.classA, "lessonId": s.lessons["physics-A"]})
	assert.ElementsMatch(t, []string{s.assigned["optics"], s.assigned["mathlab"]}, got)

	f, err := query.NewCompiler(s.store).Compile(context.Background(), assignmentSpec,
		query.Values{"classId": s.classA, "lessonId": s.lessons["math-B"]})
	require.NoError(t, err)
	assert.True(t, query.IsNone(f))

	got = compileAndFind(t, s, query.Values{"lessonId": s.lessons["math-B"]})
	assert.ElementsMatch(t, []string{s.assigned["geometry"], s.assigned["essay"]}, got)
}

func TestSearchUnionsDirectAndIndirectBranches(t *testing.T) {
	s := newSchool(t)

	got := compileAndFind(t, s, query.Values{"search": "math"})
	assert.ElementsMatch(t, []string{
		s.assigned["algebra"],
		s.assigned["geometry"],
		s.assigned["essay"],
		s.assigned["mathlab"],
	}, got)

	got = compileAndFind(t, s, query.Values{"search": "MATH", "classId": s.classA})
	assert.ElementsMatch(t, []string{s.assigned["algebra"], s.assigned["mathlab"]}, got)
}

func TestSearchEscapesMetacharacters(t *testing.T) {
	s := newSchool(t)
	_, err := s.store.Insert(context.Background(), "assignments", query.Document{"title": "Ratio (a+b)"})
	require.NoError(t, err)

	got := compileAndFind(t, s, query.Values{"search": "(a+b)"})
	assert.Len(t, got, 1)

	got = compileAndFind(t, s, query.Values{"search": ".*"})
	assert.Empty(t, got)
}

func TestSearchResultIsSubsetOfRestriction(t *testing.T) {
	s := newSchool(t)
	restricted := compileAndFind(t, s, query.Values{"classId": s.classB})
	searched := compileAndFind(t, s, query.Values{"classId": s.classB, "search": "e"})

	assert.Subset(t, restricted, searched)
	seen := map[string]bool{}
	for _, id := range searched {
		assert.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}
}
