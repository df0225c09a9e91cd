package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/query"
)

func TestClassListJoinsGradeLevel(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	engine := query.NewEngine(store, zap.NewNop())
	grades := NewGradeService(engine, zap.NewNop())
	classes := NewClassService(engine, nil, zap.NewNop())

	grade, err := grades.Create(ctx, CreateGradeRequest{Level: 1})
	require.NoError(t, err)
	_, err = classes.Create(ctx, CreateClassRequest{Name: "1-A", GradeID: grade.ID(), Capacity: 30})
	require.NoError(t, err)

	result, err := classes.List(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.EqualValues(t, 1, result.Count)
	joined, ok := result.Data[0]["gradeId"].(query.Document)
	require.True(t, ok)
	level, _ := joined.Int("level")
	assert.EqualValues(t, 1, level)
}

func TestAssignmentDueDateMustFollowStart(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	svc := NewAssignmentService(s.engine, nil, zap.NewNop())

	_, err := svc.Create(ctx, CreateAssignmentRequest{
		Title:     "Essay",
		StartDate: "2030-05-02T09:00:00Z",
		DueDate:   "2030-05-02T09:00:00Z",
		LessonID:  s.lesson.ID(),
	})
	requireAppError(t, err, http.StatusBadRequest, "Due date must be after start date")
	assert.Equal(t, 0, s.store.Len(models.CollectionAssignments))
}

func TestAssignmentListByClassWithoutLessonsIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	svc := NewAssignmentService(s.engine, nil, zap.NewNop())
	_, err := svc.Create(ctx, CreateAssignmentRequest{
		Title: "Essay", StartDate: "2030-05-01", DueDate: "2030-05-08", LessonID: s.lesson.ID(),
	})
	require.NoError(t, err)

	result, err := svc.List(ctx, ListParams{Values: values("classId", uuid.NewString())})
	require.NoError(t, err)
	assert.EqualValues(t, 0, result.Count)
	assert.Empty(t, result.Data)
	assert.Equal(t, 0, result.TotalPages)
}

func TestLessonTeacherBecomesStubAfterDelete(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	teachers := NewTeacherService(s.engine, nil, zap.NewNop())
	lessons := NewLessonService(s.engine, nil, zap.NewNop())

	require.NoError(t, teachers.Delete(ctx, s.teacher.ID()))

	lesson, err := lessons.Get(ctx, s.lesson.ID())
	require.NoError(t, err)
	assert.Equal(t, query.Document{"id": "T1"}, lesson["teacherId"])
	subject, ok := lesson["subjectId"].(query.Document)
	require.True(t, ok)
	assert.Equal(t, "Math", subject["name"])
}

func TestAssignmentSearchMatchesSubjectName(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	svc := NewAssignmentService(s.engine, nil, zap.NewNop())
	for _, title := range []string{"Essay", "Reading log"} {
		_, err := svc.Create(ctx, CreateAssignmentRequest{
			Title: title, StartDate: "2030-05-01", DueDate: "2030-05-08", LessonID: s.lesson.ID(),
		})
		require.NoError(t, err)
	}

	bySubject, err := svc.List(ctx, ListParams{Values: values("search", "math")})
	require.NoError(t, err)
	assert.EqualValues(t, 2, bySubject.Count)

	byTitle, err := svc.List(ctx, ListParams{Values: values("search", "essay")})
	require.NoError(t, err)
	require.Len(t, byTitle.Data, 1)
	assert.Equal(t, "Essay", byTitle.Data[0]["title"])

	pattern, err := svc.List(ctx, ListParams{Values: values("search", ".*")})
	require.NoError(t, err)
	assert.EqualValues(t, 0, pattern.Count)

	restricted, err := svc.List(ctx, ListParams{Values: values("search", "math", "classId", uuid.NewString())})
	require.NoError(t, err)
	assert.EqualValues(t, 0, restricted.Count)
}

func TestListRejectsMalformedFilterAndPage(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	svc := NewLessonService(s.engine, nil, zap.NewNop())

	_, err := svc.List(ctx, ListParams{Values: values("classId", "not-a-uuid")})
	requireAppError(t, err, http.StatusBadRequest, "")

	_, err = svc.List(ctx, ListParams{Page: "two"})
	requireAppError(t, err, http.StatusBadRequest, "Invalid page parameter")

	result, err := svc.List(ctx, ListParams{Page: "-4", Limit: "500", Values: values("teacherId", "T1")})
	require.NoError(t, err)
	assert.Equal(t, 1, result.CurrentPage)
	require.Len(t, result.Data, 1)
	teacher, ok := result.Data[0]["teacherId"].(query.Document)
	require.True(t, ok)
	assert.Equal(t, "Jane", teacher["name"])
	assert.NotContains(t, teacher, "email")
}

func TestClassCreateChecksReferences(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	svc := NewClassService(s.engine, nil, zap.NewNop())

	_, err := svc.Create(ctx, CreateClassRequest{Name: "2B", GradeID: "bad", Capacity: 10})
	requireAppError(t, err, http.StatusBadRequest, "Invalid gradeId format")

	_, err = svc.Create(ctx, CreateClassRequest{Name: "2B", GradeID: uuid.NewString(), Capacity: 10})
	requireAppError(t, err, http.StatusNotFound, "Grade not found")

	_, err = svc.Create(ctx, CreateClassRequest{Name: "2B", GradeID: s.grade.ID(), Capacity: 0})
	requireAppError(t, err, http.StatusBadRequest, "Capacity must be a positive number")

	_, err = svc.Create(ctx, CreateClassRequest{Name: "2B", GradeID: s.grade.ID(), Capacity: 10, SupervisorID: uuid.NewString()})
	requireAppError(t, err, http.StatusNotFound, "Supervisor (teacher) not found")

	_, err = svc.Create(ctx, CreateClassRequest{Name: "1A", GradeID: s.grade.ID(), Capacity: 10})
	requireAppError(t, err, http.StatusBadRequest, "Class name already exists")
}

func TestClassCreateStoresSupervisorExternalID(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	svc := NewClassService(s.engine, nil, zap.NewNop())

	created, err := svc.Create(ctx, CreateClassRequest{
		Name:         "2B",
		GradeID:      s.grade.ID(),
		Capacity:     25,
		SupervisorID: s.teacher.ID(),
		Students:     []string{s.student.ID(), uuid.NewString(), s.student.ID()},
	})
	require.NoError(t, err)

	stored, err := query.FindByID(ctx, s.store, models.CollectionClasses, created.ID(), query.Projection{})
	require.NoError(t, err)
	assert.Equal(t, "T1", stored["supervisorId"])
	assert.Equal(t, []string{s.student.ID()}, stored.Strings("students"))

	supervisor, ok := created["supervisorId"].(query.Document)
	require.True(t, ok)
	assert.Equal(t, "jane@school.test", supervisor["email"])
	members, ok := created["students"].([]query.Document)
	require.True(t, ok)
	require.Len(t, members, 1)
	assert.Equal(t, "Kim", members[0]["name"])

	_, err = svc.Create(ctx, CreateClassRequest{Name: "2C", GradeID: s.grade.ID(), Capacity: 5, Students: []string{"oops"}})
	requireAppError(t, err, http.StatusBadRequest, "Invalid student ID format")
}

func TestUpdateRequiresFields(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	svc := NewClassService(s.engine, nil, zap.NewNop())

	_, err := svc.Update(ctx, s.class.ID(), UpdateClassRequest{})
	requireAppError(t, err, http.StatusBadRequest, "No fields to update")

	_, err = svc.Update(ctx, "nope", UpdateClassRequest{Name: strPtr("1B")})
	requireAppError(t, err, http.StatusBadRequest, "Invalid class ID format")

	_, err = svc.Update(ctx, uuid.NewString(), UpdateClassRequest{Name: strPtr("1B")})
	requireAppError(t, err, http.StatusNotFound, "Class not found")

	updated, err := svc.Update(ctx, s.class.ID(), UpdateClassRequest{Capacity: intPtr(35), SupervisorID: strPtr("")})
	require.NoError(t, err)
	capacity, _ := updated.Int("capacity")
	assert.EqualValues(t, 35, capacity)
	assert.Nil(t, updated["supervisorId"])
	assert.Equal(t, "1A", updated["name"])
}

func TestGradeRules(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	svc := NewGradeService(s.engine, zap.NewNop())

	_, err := svc.Create(ctx, CreateGradeRequest{Level: 0})
	requireAppError(t, err, http.StatusBadRequest, "Level must be a positive number")

	_, err = svc.Create(ctx, CreateGradeRequest{Level: 1})
	requireAppError(t, err, http.StatusBadRequest, "Grade level already exists")

	for _, level := range []int{3, 2} {
		_, err := svc.Create(ctx, CreateGradeRequest{Level: level})
		require.NoError(t, err)
	}
	result, err := svc.List(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, result.Data, 3)
	for i, want := range []int64{1, 2, 3} {
		level, _ := result.Data[i].Int("level")
		assert.Equal(t, want, level)
	}

	err = svc.Delete(ctx, uuid.NewString())
	requireAppError(t, err, http.StatusNotFound, "Grade not found")
}

func TestSubjectRules(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	svc := NewSubjectService(s.engine, nil, zap.NewNop())

	_, err := svc.Create(ctx, CreateSubjectRequest{Name: "MATH"})
	requireAppError(t, err, http.StatusBadRequest, "Subject name already exists")

	missing := uuid.NewString()
	_, err = svc.Create(ctx, CreateSubjectRequest{Name: "Physics", Teachers: []string{s.teacher.ID(), "bad", missing}})
	requireAppError(t, err, http.StatusBadRequest, "Invalid teacher IDs: bad, "+missing)

	created, err := svc.Create(ctx, CreateSubjectRequest{Name: "Physics", Teachers: []string{s.teacher.ID()}})
	require.NoError(t, err)
	members, ok := created["teachers"].([]query.Document)
	require.True(t, ok)
	require.Len(t, members, 1)
	assert.Equal(t, "Doe", members[0]["surname"])

	filtered, err := svc.List(ctx, ListParams{Values: values("teacherId", s.teacher.ID())})
	require.NoError(t, err)
	assert.EqualValues(t, 2, filtered.Count)
	assert.Equal(t, "Math", filtered.Data[0]["name"])
}

func TestLessonCreateReportsMissingReference(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	svc := NewLessonService(s.engine, nil, zap.NewNop())

	_, err := svc.Create(ctx, CreateLessonRequest{Name: "Algebra", SubjectID: uuid.NewString(), ClassID: s.class.ID(), TeacherID: "T1"})
	requireAppError(t, err, http.StatusNotFound, "Subject not found")

	_, err = svc.Create(ctx, CreateLessonRequest{Name: "Algebra", SubjectID: s.subject.ID(), ClassID: s.class.ID(), TeacherID: "T9"})
	requireAppError(t, err, http.StatusNotFound, "Teacher not found")

	created, err := svc.Create(ctx, CreateLessonRequest{Name: "Algebra", SubjectID: s.subject.ID(), ClassID: s.class.ID(), TeacherID: "T1"})
	require.NoError(t, err)
	teacher, ok := created["teacherId"].(query.Document)
	require.True(t, ok)
	assert.Equal(t, "+15550001", teacher["phone"])
}

func TestListRejectsPagePastOffsetRange(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	grades := NewGradeService(s.engine, zap.NewNop())

	_, err := grades.List(ctx, ListParams{Page: "92233720368547760", Limit: "100"})
	requireAppError(t, err, http.StatusBadRequest, "Invalid page parameter")

	result, err := grades.List(ctx, ListParams{Page: "2", Limit: "100"})
	require.NoError(t, err)
	assert.Empty(t, result.Data)
	assert.Equal(t, 2, result.CurrentPage)
}
