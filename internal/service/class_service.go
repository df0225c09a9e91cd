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

// CreateClassRequest captures fields for creating classes. SupervisorID is
// the teacher's primary identifier.
type CreateClassRequest struct {
	Name         string   `json:"name" validate:"required"`
	Capacity     int      `json:"capacity"`
	GradeID      string   `json:"gradeId" validate:"required"`
	SupervisorID string   `json:"supervisorId"`
	Students     []string `json:"students"`
}

// UpdateClassRequest modifies class fields. An empty supervisorId clears
// the supervisor.
type UpdateClassRequest struct {
	Name         *string   `json:"name"`
	Capacity     *int      `json:"capacity"`
	GradeID      *string   `json:"gradeId"`
	SupervisorID *string   `json:"supervisorId"`
	Students     *[]string `json:"students"`
}

// ClassService handles class workflows.
type ClassService struct {
	docs      *documents
	validator *validator.Validate
}

// NewClassService creates a new class service.
func NewClassService(engine *query.Engine, validate *validator.Validate, logger *zap.Logger, opts ...ServiceOption) *ClassService {
	if validate == nil {
		validate = NewValidator()
	}
	return &ClassService{docs: newDocuments(engine, classResource, logger, opts...), validator: validate}
}

// List returns classes filtered by grade or supervisor and searched by name.
func (s *ClassService) List(ctx context.Context, params ListParams) (*query.ListResult, error) {
	return s.docs.list(ctx, params, nil)
}

// Get returns a class with its grade, supervisor and students.
func (s *ClassService) Get(ctx context.Context, id string) (query.Document, error) {
	return s.docs.get(ctx, id)
}

// Create validates references and stores a new class.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest) (query.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "class")
	}
	if err := checkCapacity(req.Capacity); err != nil {
		return nil, err
	}

	doc := query.Document{
		"name":     strings.TrimSpace(req.Name),
		"capacity": req.Capacity,
	}
	if err := s.setGrade(ctx, doc, req.GradeID); err != nil {
		return nil, err
	}
	if err := s.setSupervisor(ctx, doc, req.SupervisorID); err != nil {
		return nil, err
	}
	students, err := s.students(ctx, req.Students)
	if err != nil {
		return nil, err
	}
	doc["students"] = students

	return s.docs.insert(ctx, doc)
}

// Update applies the supplied fields only.
func (s *ClassService) Update(ctx context.Context, id string, req UpdateClassRequest) (query.Document, error) {
	if !s.docs.store().ValidID(id) {
		return nil, query.MalformedID("class")
	}
	patch := query.Document{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Class name is required")
		}
		patch["name"] = name
	}
	if req.Capacity != nil {
		if err := checkCapacity(*req.Capacity); err != nil {
			return nil, err
		}
		patch["capacity"] = *req.Capacity
	}
	if req.GradeID != nil {
		if err := s.setGrade(ctx, patch, *req.GradeID); err != nil {
			return nil, err
		}
	}
	if req.SupervisorID != nil {
		if strings.TrimSpace(*req.SupervisorID) == "" {
			patch["supervisorId"] = nil
		} else if err := s.setSupervisor(ctx, patch, *req.SupervisorID); err != nil {
			return nil, err
		}
	}
	if req.Students != nil {
		students, err := s.students(ctx, *req.Students)
		if err != nil {
			return nil, err
		}
		patch["students"] = students
	}
	return s.docs.update(ctx, id, patch)
}

// Delete removes a class. Lessons and students keep their reference.
func (s *ClassService) Delete(ctx context.Context, id string) error {
	_, err := s.docs.remove(ctx, id)
	return err
}

func (s *ClassService) setGrade(ctx context.Context, doc query.Document, gradeID string) error {
	gradeID = strings.TrimSpace(gradeID)
	if _, err := s.docs.exists(ctx, models.CollectionGrades, gradeID, "Invalid gradeId format", "Grade not found"); err != nil {
		return err
	}
	doc["gradeId"] = gradeID
	return nil
}

// setSupervisor stores the external identifier of the teacher addressed by
// its primary identifier.
func (s *ClassService) setSupervisor(ctx context.Context, doc query.Document, supervisorID string) error {
	supervisorID = strings.TrimSpace(supervisorID)
	if supervisorID == "" {
		return nil
	}
	teacher, err := s.docs.exists(ctx, models.CollectionTeachers, supervisorID, "Invalid supervisorId format", "Supervisor (teacher) not found")
	if err != nil {
		return err
	}
	doc["supervisorId"] = teacher.String(query.FieldExternalID)
	return nil
}

// students rejects malformed identifiers and drops unknown ones, keeping
// the request order.
func (s *ClassService) students(ctx context.Context, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	for _, id := range ids {
		if !s.docs.store().ValidID(id) {
			return nil, query.MalformedID("student")
		}
	}
	found, err := s.docs.store().FindByIDs(ctx, models.CollectionStudents, ids, query.Fields(query.FieldPrimaryID))
	if err != nil {
		return nil, s.docs.logged(query.Translate(err, ""), "lookup")
	}
	known := make(map[string]struct{}, len(found))
	for _, doc := range found {
		known[doc.ID()] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; ok {
			out = append(out, id)
			delete(known, id)
		}
	}
	return out, nil
}

func checkCapacity(capacity int) error {
	if capacity < 1 {
		return appErrors.Clone(appErrors.ErrValidation, "Capacity must be a positive number")
	}
	return nil
}
