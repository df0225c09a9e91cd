package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/query"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

// CreateSubjectRequest captures fields for creating subjects.
type CreateSubjectRequest struct {
	Name     string   `json:"name" validate:"required,max=100"`
	Teachers []string `json:"teachers"`
}

// UpdateSubjectRequest modifies subject fields.
type UpdateSubjectRequest struct {
	Name     *string   `json:"name" validate:"omitempty,max=100"`
	Teachers *[]string `json:"teachers"`
}

// SubjectService handles subject workflows.
type SubjectService struct {
	docs      *documents
	validator *validator.Validate
}

// NewSubjectService creates a new subject service.
func NewSubjectService(engine *query.Engine, validate *validator.Validate, logger *zap.Logger, opts ...ServiceOption) *SubjectService {
	if validate == nil {
		validate = NewValidator()
	}
	return &SubjectService{docs: newDocuments(engine, subjectResource, logger, opts...), validator: validate}
}

// List returns subjects ordered by name.
func (s *SubjectService) List(ctx context.Context, params ListParams) (*query.ListResult, error) {
	return s.docs.list(ctx, params, nil)
}

// Get returns a subject with its teachers.
func (s *SubjectService) Get(ctx context.Context, id string) (query.Document, error) {
	return s.docs.get(ctx, id)
}

// Create adds a subject whose name is unique regardless of case.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest) (query.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "subject")
	}
	teachers, err := s.teachers(ctx, req.Teachers)
	if err != nil {
		return nil, err
	}
	return s.docs.insert(ctx, query.Document{
		"name":     strings.TrimSpace(req.Name),
		"teachers": teachers,
	})
}

// Update applies the supplied fields only.
func (s *SubjectService) Update(ctx context.Context, id string, req UpdateSubjectRequest) (query.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "subject")
	}
	if !s.docs.store().ValidID(id) {
		return nil, query.MalformedID("subject")
	}
	patch := query.Document{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Subject name is required")
		}
		patch["name"] = name
	}
	if req.Teachers != nil {
		teachers, err := s.teachers(ctx, *req.Teachers)
		if err != nil {
			return nil, err
		}
		patch["teachers"] = teachers
	}
	return s.docs.update(ctx, id, patch)
}

// Delete removes a subject.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	_, err := s.docs.remove(ctx, id)
	return err
}

// teachers requires every identifier to be well formed and to exist. The
// error lists every offending identifier.
func (s *SubjectService) teachers(ctx context.Context, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if s.docs.store().ValidID(id) {
			valid = append(valid, id)
		}
	}
	known := make(map[string]struct{}, len(valid))
	if len(valid) > 0 {
		found, err := s.docs.store().FindByIDs(ctx, models.CollectionTeachers, valid, query.Fields(query.FieldPrimaryID))
		if err != nil {
			return nil, s.docs.logged(query.Translate(err, ""), "lookup")
		}
		for _, doc := range found {
			known[doc.ID()] = struct{}{}
		}
	}

	var invalid []string
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := known[id]; ok {
			out = append(out, id)
		} else {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("Invalid teacher IDs: %s", strings.Join(invalid, ", ")))
	}
	return out, nil
}
