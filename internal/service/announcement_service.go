package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/query"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

// CreateAnnouncementRequest captures fields for publishing announcements.
type CreateAnnouncementRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required"`
	ClassID     string `json:"classId"`
}

// UpdateAnnouncementRequest modifies announcement fields. An empty classId
// makes the announcement school-wide.
type UpdateAnnouncementRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	ClassID     *string `json:"classId"`
}

// AnnouncementService handles announcement workflows.
type AnnouncementService struct {
	docs      *documents
	validator *validator.Validate
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(engine *query.Engine, validate *validator.Validate, logger *zap.Logger, opts ...ServiceOption) *AnnouncementService {
	if validate == nil {
		validate = NewValidator()
	}
	return &AnnouncementService{docs: newDocuments(engine, announcementResource, logger, opts...), validator: validate}
}

// List returns announcements filtered by class and by the calendar day in
// the "date" parameter.
func (s *AnnouncementService) List(ctx context.Context, params ListParams) (*query.ListResult, error) {
	var extra query.Filter
	if raw := params.Values.Get("date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, appErrors.Malformed("Invalid date format")
		}
		extra = query.Range{Field: "date", Gte: day, Lt: day.AddDate(0, 0, 1)}
	}
	return s.docs.list(ctx, params, extra)
}

// Get returns an announcement with its class.
func (s *AnnouncementService) Get(ctx context.Context, id string) (query.Document, error) {
	return s.docs.get(ctx, id)
}

// Create publishes an announcement, optionally scoped to a class.
func (s *AnnouncementService) Create(ctx context.Context, req CreateAnnouncementRequest) (query.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "announcement")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	doc := query.Document{
		"title":       strings.TrimSpace(req.Title),
		"description": strings.TrimSpace(req.Description),
		"date":        date,
	}
	if err := setClass(ctx, s.docs, doc, req.ClassID); err != nil {
		return nil, err
	}
	return s.docs.insert(ctx, doc)
}

// Update applies the supplied fields only.
func (s *AnnouncementService) Update(ctx context.Context, id string, req UpdateAnnouncementRequest) (query.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "announcement")
	}
	if !s.docs.store().ValidID(id) {
		return nil, query.MalformedID("announcement")
	}
	patch := query.Document{}
	if err := setRequired(patch, "title", req.Title, "Announcement title is required"); err != nil {
		return nil, err
	}
	if err := setRequired(patch, "description", req.Description, "Announcement description is required"); err != nil {
		return nil, err
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		patch["date"] = date
	}
	if req.ClassID != nil {
		if err := setClass(ctx, s.docs, patch, *req.ClassID); err != nil {
			return nil, err
		}
	}
	return s.docs.update(ctx, id, patch)
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	_, err := s.docs.remove(ctx, id)
	return err
}

// setClass stores an optional class reference. A blank value clears it.
func setClass(ctx context.Context, docs *documents, doc query.Document, classID string) error {
	classID = strings.TrimSpace(classID)
	if classID == "" {
		doc["classId"] = nil
		return nil
	}
	if _, err := docs.exists(ctx, models.CollectionClasses, classID, "Invalid class ID format", "Class not found"); err != nil {
		return err
	}
	doc["classId"] = classID
	return nil
}
