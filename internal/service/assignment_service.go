package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/query"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

// CreateAssignmentRequest captures fields for creating assignments.
type CreateAssignmentRequest struct {
	Title     string `json:"title" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	DueDate   string `json:"dueDate" validate:"required"`
	LessonID  string `json:"lessonId" validate:"required"`
}

// UpdateAssignmentRequest modifies assignment fields.
type UpdateAssignmentRequest struct {
	Title     *string `json:"title"`
	StartDate *string `json:"startDate"`
	DueDate   *string `json:"dueDate"`
	LessonID  *string `json:"lessonId"`
}

func (r UpdateAssignmentRequest) empty() bool {
	return r.Title == nil && r.StartDate == nil && r.DueDate == nil && r.LessonID == nil
}

// AssignmentService handles assignment workflows.
type AssignmentService struct {
	docs      *documents
	validator *validator.Validate
}

// NewAssignmentService creates a new assignment service.
func NewAssignmentService(engine *query.Engine, validate *validator.Validate, logger *zap.Logger, opts ...ServiceOption) *AssignmentService {
	if validate == nil {
		validate = NewValidator()
	}
	return &AssignmentService{docs: newDocuments(engine, assignmentResource, logger, opts...), validator: validate}
}

// List returns assignments restricted by class, teacher or lesson. The
// search term matches the title or the subject name of the lesson.
func (s *AssignmentService) List(ctx context.Context, params ListParams) (*query.ListResult, error) {
	return s.docs.list(ctx, params, nil)
}

// Get returns an assignment with its lesson, subject, class and teacher.
func (s *AssignmentService) Get(ctx context.Context, id string) (query.Document, error) {
	return s.docs.get(ctx, id)
}

// Create stores an assignment whose due date follows its start date.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (query.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "assignment")
	}
	lessonID := strings.TrimSpace(req.LessonID)
	if err := checkLesson(ctx, s.docs, lessonID); err != nil {
		return nil, err
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	if !due.After(start) {
		return nil, appErrors.BusinessRule("Due date must be after start date")
	}

	return s.docs.insert(ctx, query.Document{
		"title":     strings.TrimSpace(req.Title),
		"startDate": start,
		"dueDate":   due,
		"lessonId":  lessonID,
	})
}

// Update applies the supplied fields. Dates are checked against the stored
// values they are not replacing.
func (s *AssignmentService) Update(ctx context.Context, id string, req UpdateAssignmentRequest) (query.Document, error) {
	if !s.docs.store().ValidID(id) {
		return nil, query.MalformedID("assignment")
	}
	if req.empty() {
		return nil, appErrors.Malformed("No fields to update")
	}

	patch := query.Document{}
	if req.LessonID != nil {
		lessonID := strings.TrimSpace(*req.LessonID)
		if err := checkLesson(ctx, s.docs, lessonID); err != nil {
			return nil, err
		}
		patch["lessonId"] = lessonID
	}

	existing, err := s.docs.load(ctx, id)
	if err != nil {
		return nil, err
	}
	start, _ := existing.Time("startDate")
	due, _ := existing.Time("dueDate")
	if req.StartDate != nil {
		if start, err = parseDate(*req.StartDate); err != nil {
			return nil, err
		}
		patch["startDate"] = start
	}
	if req.DueDate != nil {
		if due, err = parseDate(*req.DueDate); err != nil {
			return nil, err
		}
		patch["dueDate"] = due
	}
	if !due.After(start) {
		return nil, appErrors.BusinessRule("Due date must be after start date")
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Assignment title is required")
		}
		patch["title"] = title
	}
	return s.docs.update(ctx, id, patch)
}

// Delete removes an assignment.
func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	_, err := s.docs.remove(ctx, id)
	return err
}
