package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/query"
)

var childFields = []string{query.FieldExternalID, "name", "surname", "classId", "gradeId"}

// CreateParentRequest represents payload for registering parents.
type CreateParentRequest struct {
	AccountFields
}

// UpdateParentRequest represents payload for updating parents.
type UpdateParentRequest struct {
	AccountPatch
}

// ParentService orchestrates parent operations.
type ParentService struct {
	docs      *documents
	validator *validator.Validate
}

// NewParentService constructs a ParentService.
func NewParentService(engine *query.Engine, validate *validator.Validate, logger *zap.Logger, opts ...ServiceOption) *ParentService {
	if validate == nil {
		validate = NewValidator()
	}
	return &ParentService{docs: newDocuments(engine, parentResource, logger, opts...), validator: validate}
}

// List returns parents searched by name, surname or username.
func (s *ParentService) List(ctx context.Context, params ListParams) (*query.ListResult, error) {
	return s.docs.list(ctx, params, nil)
}

// Get returns a parent with the students naming them as parent.
func (s *ParentService) Get(ctx context.Context, id string) (query.Document, error) {
	doc, err := s.docs.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withChildren(ctx, doc), nil
}

// Create registers a parent.
func (s *ParentService) Create(ctx context.Context, req CreateParentRequest) (query.Document, error) {
	req.AccountFields.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "parent")
	}
	doc, err := req.AccountFields.document()
	if err != nil {
		return nil, err
	}
	created, err := s.docs.insert(ctx, doc)
	if err != nil {
		return nil, err
	}
	return s.withChildren(ctx, created), nil
}

// Update modifies an existing parent.
func (s *ParentService) Update(ctx context.Context, id string, req UpdateParentRequest) (query.Document, error) {
	req.AccountPatch.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "parent")
	}
	if !s.docs.store().ValidID(id) {
		return nil, query.MalformedID("parent")
	}
	patch := query.Document{}
	if err := req.AccountPatch.apply(patch); err != nil {
		return nil, err
	}
	updated, err := s.docs.update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return s.withChildren(ctx, updated), nil
}

// Delete removes a parent. Students keep the external identifier.
func (s *ParentService) Delete(ctx context.Context, id string) error {
	_, err := s.docs.remove(ctx, id)
	return err
}

// withChildren attaches the students referencing the parent. A failed
// lookup leaves the list empty.
func (s *ParentService) withChildren(ctx context.Context, parent query.Document) query.Document {
	children := []query.Document{}
	if externalID := parent.String(query.FieldExternalID); externalID != "" {
		found, err := s.docs.store().Find(ctx, models.CollectionStudents, query.FindOptions{
			Filter:     query.Eq{Field: "parentId", Value: externalID},
			Sort:       query.StableSort([]query.SortField{query.Asc("name"), query.Asc("surname")}),
			Projection: query.Fields(childFields...),
		})
		if err != nil {
			s.docs.logger.Warn("children lookup failed", zap.String("parent", externalID), zap.Error(err))
		} else if len(found) > 0 {
			children = s.docs.engine.Resolve(ctx, found, []query.Relation{primary("classId", models.CollectionClasses, "name")})
		}
	}
	parent["students"] = children
	return parent
}
