package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/query"
)

// CreateStudentRequest represents payload for enrolling students. ParentID
// is the parent's external identifier.
type CreateStudentRequest struct {
	AccountFields
	PersonalFields
	GradeID  string `json:"gradeId" validate:"required"`
	ClassID  string `json:"classId" validate:"required"`
	ParentID string `json:"parentId" validate:"required"`
}

// UpdateStudentRequest represents payload for updating students.
type UpdateStudentRequest struct {
	AccountPatch
	PersonalPatch
	GradeID  *string `json:"gradeId"`
	ClassID  *string `json:"classId"`
	ParentID *string `json:"parentId" validate:"omitempty,min=1"`
}

// StudentService orchestrates student operations.
type StudentService struct {
	docs      *documents
	validator *validator.Validate
}

// NewStudentService constructs a StudentService.
func NewStudentService(engine *query.Engine, validate *validator.Validate, logger *zap.Logger, opts ...ServiceOption) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	return &StudentService{docs: newDocuments(engine, studentResource, logger, opts...), validator: validate}
}

// List returns students filtered by class, grade or parent.
func (s *StudentService) List(ctx context.Context, params ListParams) (*query.ListResult, error) {
	return s.docs.list(ctx, params, nil)
}

// Get returns a student with class, grade and parent.
func (s *StudentService) Get(ctx context.Context, id string) (query.Document, error) {
	return s.docs.get(ctx, id)
}

// Create enrols a student into an existing grade and class.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (query.Document, error) {
	req.AccountFields.normalize()
	req.PersonalFields.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "student")
	}

	doc, err := req.AccountFields.document()
	if err != nil {
		return nil, err
	}
	if err := req.PersonalFields.apply(doc); err != nil {
		return nil, err
	}
	if err := s.setPlacement(ctx, doc, &req.GradeID, &req.ClassID); err != nil {
		return nil, err
	}
	doc["parentId"] = strings.TrimSpace(req.ParentID)
	return s.docs.insert(ctx, doc)
}

// Update modifies an existing student.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (query.Document, error) {
	req.AccountPatch.normalize()
	req.PersonalPatch.normalize()
	req.ParentID = trimmed(req.ParentID)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "student")
	}
	if !s.docs.store().ValidID(id) {
		return nil, query.MalformedID("student")
	}

	patch := query.Document{}
	if err := req.AccountPatch.apply(patch); err != nil {
		return nil, err
	}
	if err := req.PersonalPatch.apply(patch); err != nil {
		return nil, err
	}
	if err := s.setPlacement(ctx, patch, req.GradeID, req.ClassID); err != nil {
		return nil, err
	}
	setString(patch, "parentId", req.ParentID)
	return s.docs.update(ctx, id, patch)
}

// Delete removes a student. Classes keep the identifier in their roster.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	_, err := s.docs.remove(ctx, id)
	return err
}

func (s *StudentService) setPlacement(ctx context.Context, doc query.Document, gradeID, classID *string) error {
	if gradeID != nil {
		id := strings.TrimSpace(*gradeID)
		if _, err := s.docs.exists(ctx, models.CollectionGrades, id, "Invalid grade ID format", "Grade not found"); err != nil {
			return err
		}
		doc["gradeId"] = id
	}
	if classID != nil {
		id := strings.TrimSpace(*classID)
		if _, err := s.docs.exists(ctx, models.CollectionClasses, id, "Invalid class ID format", "Class not found"); err != nil {
			return err
		}
		doc["classId"] = id
	}
	return nil
}
