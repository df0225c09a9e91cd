package service

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/query"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

const overlappingExamMessage = "An overlapping exam already exists for this lesson during the specified time"

// CreateExamRequest captures fields for scheduling exams.
type CreateExamRequest struct {
	Title     string `json:"title" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	LessonID  string `json:"lessonId" validate:"required"`
}

// UpdateExamRequest modifies exam fields.
type UpdateExamRequest struct {
	Title     *string `json:"title"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	LessonID  *string `json:"lessonId"`
}

func (r UpdateExamRequest) empty() bool {
	return r.Title == nil && r.StartTime == nil && r.EndTime == nil && r.LessonID == nil
}

// ExamService handles exam scheduling.
type ExamService struct {
	docs      *documents
	validator *validator.Validate
	locks     *lessonLocks
}

// lessonLocks serialises the overlap check and the write that follows it
// for exams of one lesson within this process.
type lessonLocks [32]sync.Mutex

func (l *lessonLocks) lock(lessonID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(lessonID))
	m := &l[h.Sum32()%uint32(len(l))]
	m.Lock()
	return m.Unlock
}

// NewExamService creates a new exam service.
func NewExamService(engine *query.Engine, validate *validator.Validate, logger *zap.Logger, opts ...ServiceOption) *ExamService {
	if validate == nil {
		validate = NewValidator()
	}
	return &ExamService{
		docs:      newDocuments(engine, examResource, logger, opts...),
		validator: validate,
		locks:     &lessonLocks{},
	}
}

// List returns exams restricted by class, teacher or lesson and searched by title.
func (s *ExamService) List(ctx context.Context, params ListParams) (*query.ListResult, error) {
	return s.docs.list(ctx, params, nil)
}

// Get returns an exam with its lesson, subject, class and teacher.
func (s *ExamService) Get(ctx context.Context, id string) (query.Document, error) {
	return s.docs.get(ctx, id)
}

// Create schedules an exam. The window must lie in the future and must not
// overlap another exam of the same lesson.
func (s *ExamService) Create(ctx context.Context, req CreateExamRequest) (query.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "exam")
	}
	lessonID := strings.TrimSpace(req.LessonID)
	if err := checkLesson(ctx, s.docs, lessonID); err != nil {
		return nil, err
	}
	start, err := parseDate(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndTime)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, appErrors.BusinessRule("End time must be after start time")
	}
	if start.Before(s.docs.now()) {
		return nil, appErrors.BusinessRule("Start time cannot be in the past")
	}
	unlock := s.locks.lock(lessonID)
	defer unlock()
	if err := s.checkOverlap(ctx, lessonID, start, end, ""); err != nil {
		return nil, err
	}

	return s.docs.insert(ctx, query.Document{
		"title":     strings.TrimSpace(req.Title),
		"startTime": start,
		"endTime":   end,
		"lessonId":  lessonID,
	})
}

// Update applies the supplied fields. The resulting window is checked
// against the other exams of the resulting lesson.
func (s *ExamService) Update(ctx context.Context, id string, req UpdateExamRequest) (query.Document, error) {
	if !s.docs.store().ValidID(id) {
		return nil, query.MalformedID("exam")
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
	start, _ := existing.Time("startTime")
	end, _ := existing.Time("endTime")
	if req.StartTime != nil {
		if start, err = parseDate(*req.StartTime); err != nil {
			return nil, err
		}
		if start.Before(s.docs.now()) {
			return nil, appErrors.BusinessRule("Start time cannot be in the past")
		}
		patch["startTime"] = start
	}
	if req.EndTime != nil {
		if end, err = parseDate(*req.EndTime); err != nil {
			return nil, err
		}
		patch["endTime"] = end
	}
	if !end.After(start) {
		return nil, appErrors.BusinessRule("End time must be after start time")
	}
	if req.StartTime != nil || req.EndTime != nil || req.LessonID != nil {
		lessonID := existing.String("lessonId")
		if v, ok := patch["lessonId"].(string); ok {
			lessonID = v
		}
		unlock := s.locks.lock(lessonID)
		defer unlock()
		if err := s.checkOverlap(ctx, lessonID, start, end, id); err != nil {
			return nil, err
		}
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Exam title is required")
		}
		patch["title"] = title
	}
	return s.docs.update(ctx, id, patch)
}

// Delete removes an exam.
func (s *ExamService) Delete(ctx context.Context, id string) error {
	_, err := s.docs.remove(ctx, id)
	return err
}

// checkOverlap rejects a window intersecting another exam of the lesson.
// Windows touching at an endpoint do not overlap.
func (s *ExamService) checkOverlap(ctx context.Context, lessonID string, start, end time.Time, exclude string) error {
	conds := query.And{
		query.Eq{Field: "lessonId", Value: lessonID},
		query.Range{Field: "startTime", Lt: end},
		query.Range{Field: "endTime", Gt: start},
	}
	if exclude != "" {
		conds = append(conds, query.Ne{Field: query.FieldPrimaryID, Value: exclude})
	}
	_, err := query.FindOne(ctx, s.docs.store(), models.CollectionExams, conds, query.Fields(query.FieldPrimaryID))
	switch {
	case err == nil:
		return appErrors.BusinessRule(overlappingExamMessage)
	case query.IsNotFound(err):
		return nil
	default:
		return s.docs.logged(query.Translate(err, ""), "overlap")
	}
}

// checkLesson requires a well-formed identifier of an existing lesson.
func checkLesson(ctx context.Context, docs *documents, lessonID string) error {
	_, err := docs.exists(ctx, models.CollectionLessons, lessonID, "Invalid lesson ID format", "Lesson not found")
	return err
}
