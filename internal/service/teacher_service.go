package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/query"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

const maxTeacherSubjects = 10

// CreateTeacherRequest represents payload for creating teachers.
type CreateTeacherRequest struct {
	AccountFields
	PersonalFields
	Subjects []string `json:"subjects"`
}

// UpdateTeacherRequest represents payload for updating teachers.
type UpdateTeacherRequest struct {
	AccountPatch
	PersonalPatch
	Subjects *[]string `json:"subjects"`
	IsActive *bool     `json:"isActive"`
}

// TeacherService orchestrates teacher operations.
type TeacherService struct {
	docs      *documents
	validator *validator.Validate
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(engine *query.Engine, validate *validator.Validate, logger *zap.Logger, opts ...ServiceOption) *TeacherService {
	if validate == nil {
		validate = NewValidator()
	}
	return &TeacherService{docs: newDocuments(engine, teacherResource, logger, opts...), validator: validate}
}

// List returns teachers filtered by subject and searched by name, surname or username.
func (s *TeacherService) List(ctx context.Context, params ListParams) (*query.ListResult, error) {
	return s.docs.list(ctx, params, nil)
}

// Get returns a teacher by primary identifier.
func (s *TeacherService) Get(ctx context.Context, id string) (query.Document, error) {
	return s.docs.get(ctx, id)
}

// Create registers a new teacher record. Teachers start active.
func (s *TeacherService) Create(ctx context.Context, req CreateTeacherRequest) (query.Document, error) {
	req.AccountFields.normalize()
	req.PersonalFields.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "teacher")
	}
	subjects, err := s.subjects(req.Subjects)
	if err != nil {
		return nil, err
	}

	doc, err := req.AccountFields.document()
	if err != nil {
		return nil, err
	}
	if err := req.PersonalFields.apply(doc); err != nil {
		return nil, err
	}
	doc["subjects"] = subjects
	doc["isActive"] = true
	return s.docs.insert(ctx, doc)
}

// Update modifies an existing teacher.
func (s *TeacherService) Update(ctx context.Context, id string, req UpdateTeacherRequest) (query.Document, error) {
	req.AccountPatch.normalize()
	req.PersonalPatch.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "teacher")
	}
	if !s.docs.store().ValidID(id) {
		return nil, query.MalformedID("teacher")
	}

	patch := query.Document{}
	if err := req.AccountPatch.apply(patch); err != nil {
		return nil, err
	}
	if err := req.PersonalPatch.apply(patch); err != nil {
		return nil, err
	}
	if req.Subjects != nil {
		subjects, err := s.subjects(*req.Subjects)
		if err != nil {
			return nil, err
		}
		patch["subjects"] = subjects
	}
	if req.IsActive != nil {
		patch["isActive"] = *req.IsActive
	}
	return s.docs.update(ctx, id, patch)
}

// Delete removes a teacher. Lessons and classes keep the external identifier.
func (s *TeacherService) Delete(ctx context.Context, id string) error {
	_, err := s.docs.remove(ctx, id)
	return err
}

func (s *TeacherService) subjects(ids []string) ([]string, error) {
	if len(ids) > maxTeacherSubjects {
		return nil, appErrors.Clone(appErrors.ErrValidation, "A teacher cannot have more than 10 subjects")
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !s.docs.store().ValidID(id) {
			return nil, query.MalformedID("subject")
		}
		out = append(out, id)
	}
	return out, nil
}
