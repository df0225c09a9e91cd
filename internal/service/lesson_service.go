package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/query"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

// CreateLessonRequest captures fields for creating lessons. TeacherID is
// the teacher's external identifier.
type CreateLessonRequest struct {
	Name      string `json:"name" validate:"required"`
	SubjectID string `json:"subjectId" validate:"required"`
	ClassID   string `json:"classId" validate:"required"`
	TeacherID string `json:"teacherId" validate:"required"`
}

// UpdateLessonRequest modifies lesson fields.
type UpdateLessonRequest struct {
	Name      *string `json:"name"`
	SubjectID *string `json:"subjectId"`
	ClassID   *string `json:"classId"`
	TeacherID *string `json:"teacherId"`
}

// LessonService handles lesson workflows.
type LessonService struct {
	docs      *documents
	validator *validator.Validate
}

// NewLessonService creates a new lesson service.
func NewLessonService(engine *query.Engine, validate *validator.Validate, logger *zap.Logger, opts ...ServiceOption) *LessonService {
	if validate == nil {
		validate = NewValidator()
	}
	return &LessonService{docs: newDocuments(engine, lessonResource, logger, opts...), validator: validate}
}

// List returns lessons filtered by class, subject or teacher.
func (s *LessonService) List(ctx context.Context, params ListParams) (*query.ListResult, error) {
	return s.docs.list(ctx, params, nil)
}

// Get returns a lesson with its subject, class and teacher.
func (s *LessonService) Get(ctx context.Context, id string) (query.Document, error) {
	return s.docs.get(ctx, id)
}

// Create stores a lesson after checking every reference exists.
func (s *LessonService) Create(ctx context.Context, req CreateLessonRequest) (query.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "lesson")
	}
	doc := query.Document{"name": strings.TrimSpace(req.Name)}
	if err := s.setReferences(ctx, doc, &req.SubjectID, &req.ClassID, &req.TeacherID); err != nil {
		return nil, err
	}
	return s.docs.insert(ctx, doc)
}

// Update applies the supplied fields only.
func (s *LessonService) Update(ctx context.Context, id string, req UpdateLessonRequest) (query.Document, error) {
	if !s.docs.store().ValidID(id) {
		return nil, query.MalformedID("lesson")
	}
	patch := query.Document{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Lesson name is required")
		}
		patch["name"] = name
	}
	if err := s.setReferences(ctx, patch, req.SubjectID, req.ClassID, req.TeacherID); err != nil {
		return nil, err
	}
	return s.docs.update(ctx, id, patch)
}

// Delete removes a lesson. Exams and assignments keep their reference.
func (s *LessonService) Delete(ctx context.Context, id string) error {
	_, err := s.docs.remove(ctx, id)
	return err
}

// setReferences checks and copies each non-nil reference into doc.
func (s *LessonService) setReferences(ctx context.Context, doc query.Document, subjectID, classID, teacherID *string) error {
	if subjectID != nil {
		id := strings.TrimSpace(*subjectID)
		if _, err := s.docs.exists(ctx, models.CollectionSubjects, id, "Invalid subject ID format", "Subject not found"); err != nil {
			return err
		}
		doc["subjectId"] = id
	}
	if classID != nil {
		id := strings.TrimSpace(*classID)
		if _, err := s.docs.exists(ctx, models.CollectionClasses, id, "Invalid class ID format", "Class not found"); err != nil {
			return err
		}
		doc["classId"] = id
	}
	if teacherID != nil {
		id := strings.TrimSpace(*teacherID)
		if err := teacherExists(ctx, s.docs, id); err != nil {
			return err
		}
		doc["teacherId"] = id
	}
	return nil
}

// teacherExists looks a teacher up by external identifier.
func teacherExists(ctx context.Context, docs *documents, externalID string) error {
	if externalID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "Teacher ID is required")
	}
	_, err := query.FindOne(ctx, docs.store(), models.CollectionTeachers,
		query.Eq{Field: query.FieldExternalID, Value: externalID}, query.Fields(query.FieldExternalID))
	if err != nil {
		if query.IsNotFound(err) {
			return appErrors.Clone(appErrors.ErrReferenceNotFound, "Teacher not found")
		}
		return docs.logged(query.Translate(err, ""), "lookup")
	}
	return nil
}
