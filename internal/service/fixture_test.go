package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/query"
	"github.com/alimovshaxzod89/SMS/internal/query/memstore"
	"github.com/alimovshaxzod89/SMS/internal/repository"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

var testNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

const testPassword = "secret123"

// school is a small seeded data set: one grade, class, teacher, subject,
// lesson, parent and student wired to each other.
type school struct {
	store   *memstore.Store
	engine  *query.Engine
	grade   query.Document
	class   query.Document
	teacher query.Document
	subject query.Document
	lesson  query.Document
	parent  query.Document
	student query.Document
}

func newTestStore() *memstore.Store {
	opts := append(repository.DefaultSchema().MemoryOptions(), memstore.WithClock(func() time.Time { return testNow }))
	return memstore.New(opts...)
}

func seed(t *testing.T, store query.Store, collection string, doc query.Document) query.Document {
	t.Helper()
	created, err := store.Insert(context.Background(), collection, doc)
	require.NoError(t, err)
	return created
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newSchool(t *testing.T) *school {
	t.Helper()
	store := newTestStore()
	s := &school{store: store, engine: query.NewEngine(store, zap.NewNop())}
	password := hashed(t, testPassword)

	s.grade = seed(t, store, models.CollectionGrades, query.Document{"level": 1})
	s.teacher = seed(t, store, models.CollectionTeachers, query.Document{
		"id": "T1", "username": "jdoe", "password": password, "name": "Jane", "surname": "Doe",
		"email": "jane@school.test", "phone": "+15550001", "isActive": true,
	})
	s.class = seed(t, store, models.CollectionClasses, query.Document{
		"name": "1A", "capacity": 20, "gradeId": s.grade.ID(), "supervisorId": "T1",
	})
	s.subject = seed(t, store, models.CollectionSubjects, query.Document{
		"name": "Math", "teachers": []string{s.teacher.ID()},
	})
	s.lesson = seed(t, store, models.CollectionLessons, query.Document{
		"name": "Math 1A", "subjectId": s.subject.ID(), "classId": s.class.ID(), "teacherId": "T1",
	})
	s.parent = seed(t, store, models.CollectionParents, query.Document{
		"id": "P1", "username": "mdoe", "password": password, "name": "Mark", "surname": "Doe",
		"email": "mark@school.test", "phone": "+15550002",
	})
	s.student = seed(t, store, models.CollectionStudents, query.Document{
		"id": "S1", "username": "kid", "password": password, "name": "Kim", "surname": "Doe",
		"sex": "female", "classId": s.class.ID(), "gradeId": s.grade.ID(), "parentId": "P1",
	})
	return s
}

func requireAppError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, status, appErr.Status, "unexpected status for %v", err)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func strPtr(v string) *string {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func values(pairs ...string) query.Values {
	v := query.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		v[pairs[i]] = pairs[i+1]
	}
	return v
}
