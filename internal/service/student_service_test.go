package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/query"
)

func studentRequest(s *school, id, username string) CreateStudentRequest {
	return CreateStudentRequest{
		AccountFields: AccountFields{
			ID:       id,
			Username: username,
			Password: "password1",
			Name:     "Ada",
			Surname:  "Lovelace",
			Address:  "12 St James Square",
		},
		PersonalFields: PersonalFields{BloodType: "AB-", Birthday: "2015-12-10", Sex: "female"},
		GradeID:        s.grade.ID(),
		ClassID:        s.class.ID(),
		ParentID:       "P1",
	}
}

func TestStudentCreateJoinsPlacementAndParent(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	svc := NewStudentService(s.engine, nil, zap.NewNop())

	created, err := svc.Create(ctx, studentRequest(s, "S2", "ada"))
	require.NoError(t, err)
	assert.NotContains(t, created, query.FieldPassword)

	class, ok := created["classId"].(query.Document)
	require.True(t, ok)
	assert.Equal(t, "1A", class["name"])
	parent, ok := created["parentId"].(query.Document)
	require.True(t, ok)
	assert.Equal(t, "mark@school.test", parent["email"])
}

func TestStudentCreateChecksPlacement(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	svc := NewStudentService(s.engine, nil, zap.NewNop())

	req := studentRequest(s, "S2", "ada")
	req.GradeID = "one"
	_, err := svc.Create(ctx, req)
	requireAppError(t, err, http.StatusBadRequest, "Invalid grade ID format")

	req = studentRequest(s, "S2", "ada")
	req.ClassID = uuid.NewString()
	_, err = svc.Create(ctx, req)
	requireAppError(t, err, http.StatusNotFound, "Class not found")

	_, err = svc.Create(ctx, studentRequest(s, "S1", "ada"))
	requireAppError(t, err, http.StatusBadRequest, "Student ID already exists")
}

func TestStudentParentStubWhenParentMissing(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	svc := NewStudentService(s.engine, nil, zap.NewNop())

	req := studentRequest(s, "S2", "ada")
	req.ParentID = "P404"
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, query.Document{"id": "P404"}, created["parentId"])

	byParent, err := svc.List(ctx, ListParams{Values: values("parentId", "P1")})
	require.NoError(t, err)
	require.Len(t, byParent.Data, 1)
	assert.Equal(t, "S1", byParent.Data[0]["id"])
}

func TestStudentUpdateMovesClass(t *testing.T) {
	ctx := context.Background()
	s := newSchool(t)
	other := seed(t, s.store, "classes", query.Document{"name": "1B", "capacity": 20, "gradeId": s.grade.ID()})
	svc := NewStudentService(s.engine, nil, zap.NewNop())

	updated, err := svc.Update(ctx, s.student.ID(), UpdateStudentRequest{ClassID: strPtr(other.ID())})
	require.NoError(t, err)
	class, ok := updated["classId"].(query.Document)
	require.True(t, ok)
	assert.Equal(t, "1B", class["name"])

	_, err = svc.Update(ctx, s.student.ID(), UpdateStudentRequest{PersonalPatch: PersonalPatch{Sex: strPtr("other")}})
	requireAppError(t, err, http.StatusBadRequest, "")
}
