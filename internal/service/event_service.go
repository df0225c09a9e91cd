package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/query"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

// CreateEventRequest captures fields for calendar events.
type CreateEventRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	ClassID     string `json:"classId"`
}

// UpdateEventRequest modifies event fields.
type UpdateEventRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	ClassID     *string `json:"classId"`
}

func (r UpdateEventRequest) empty() bool {
	return r.Title == nil && r.Description == nil && r.StartTime == nil && r.EndTime == nil && r.ClassID == nil
}

// EventService handles calendar events.
type EventService struct {
	docs      *documents
	validator *validator.Validate
}

// NewEventService constructs the service.
func NewEventService(engine *query.Engine, validate *validator.Validate, logger *zap.Logger, opts ...ServiceOption) *EventService {
	if validate == nil {
		validate = NewValidator()
	}
	return &EventService{docs: newDocuments(engine, eventResource, logger, opts...), validator: validate}
}

// List returns events filtered by class. startDate and endDate keep the
// events whose window overlaps the requested range; a date-only endDate
// includes that whole day.
func (s *EventService) List(ctx context.Context, params ListParams) (*query.ListResult, error) {
	var extra query.And
	if raw := params.Values.Get("startDate"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			return nil, err
		}
		extra = append(extra, query.Range{Field: "endTime", Gt: from})
	}
	if raw := params.Values.Get("endDate"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			return nil, err
		}
		if len(raw) == len("2006-01-02") {
			to = to.AddDate(0, 0, 1)
		}
		extra = append(extra, query.Range{Field: "startTime", Lt: to})
	}
	return s.docs.list(ctx, params, extra)
}

// Get returns an event with its class.
func (s *EventService) Get(ctx context.Context, id string) (query.Document, error) {
	return s.docs.get(ctx, id)
}

// Create stores an event whose end follows its start.
func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (query.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "event")
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
	doc := query.Document{
		"title":       strings.TrimSpace(req.Title),
		"description": strings.TrimSpace(req.Description),
		"startTime":   start,
		"endTime":     end,
	}
	if err := setClass(ctx, s.docs, doc, req.ClassID); err != nil {
		return nil, err
	}
	return s.docs.insert(ctx, doc)
}

// Update applies the supplied fields. The resulting window must stay ordered.
func (s *EventService) Update(ctx context.Context, id string, req UpdateEventRequest) (query.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "event")
	}
	if !s.docs.store().ValidID(id) {
		return nil, query.MalformedID("event")
	}
	if req.empty() {
		return nil, appErrors.Malformed("No fields to update")
	}

	patch := query.Document{}
	if err := setRequired(patch, "title", req.Title, "Event title is required"); err != nil {
		return nil, err
	}
	if err := setRequired(patch, "description", req.Description, "Event description is required"); err != nil {
		return nil, err
	}
	if req.StartTime != nil || req.EndTime != nil {
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
	}
	if req.ClassID != nil {
		if err := setClass(ctx, s.docs, patch, *req.ClassID); err != nil {
			return nil, err
		}
	}
	return s.docs.update(ctx, id, patch)
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	_, err := s.docs.remove(ctx, id)
	return err
}
