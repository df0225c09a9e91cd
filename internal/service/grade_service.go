package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/query"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

// CreateGradeRequest captures fields for creating grades.
type CreateGradeRequest struct {
	Level int `json:"level"`
}

// UpdateGradeRequest modifies grade fields.
type UpdateGradeRequest struct {
	Level *int `json:"level"`
}

// GradeService handles grade workflows.
type GradeService struct {
	docs *documents
}

// NewGradeService creates a new grade service.
func NewGradeService(engine *query.Engine, logger *zap.Logger, opts ...ServiceOption) *GradeService {
	return &GradeService{docs: newDocuments(engine, gradeResource, logger, opts...)}
}

// List returns grades ordered by level.
func (s *GradeService) List(ctx context.Context, params ListParams) (*query.ListResult, error) {
	return s.docs.list(ctx, params, nil)
}

// Get returns a grade by identifier.
func (s *GradeService) Get(ctx context.Context, id string) (query.Document, error) {
	return s.docs.get(ctx, id)
}

// Create adds a grade with a unique positive level.
func (s *GradeService) Create(ctx context.Context, req CreateGradeRequest) (query.Document, error) {
	if err := checkLevel(req.Level); err != nil {
		return nil, err
	}
	return s.docs.insert(ctx, query.Document{"level": req.Level})
}

// Update changes the grade level.
func (s *GradeService) Update(ctx context.Context, id string, req UpdateGradeRequest) (query.Document, error) {
	patch := query.Document{}
	if req.Level != nil {
		if err := checkLevel(*req.Level); err != nil {
			return nil, err
		}
		patch["level"] = *req.Level
	}
	return s.docs.update(ctx, id, patch)
}

// Delete removes a grade. Classes and students keep their reference.
func (s *GradeService) Delete(ctx context.Context, id string) error {
	_, err := s.docs.remove(ctx, id)
	return err
}

func checkLevel(level int) error {
	if level < 1 {
		return appErrors.Clone(appErrors.ErrValidation, "Level must be a positive number")
	}
	return nil
}
