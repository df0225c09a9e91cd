package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alimovshaxzod89/SMS/internal/service"
)

// EventHandler exposes event endpoints.
type EventHandler struct {
	events *service.EventService
}

// NewEventHandler constructs handler.
func NewEventHandler(events *service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// List godoc
// @Summary List events
// @Tags Events
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param classId query string false "Filter by class"
// @Param startDate query string false "Window start"
// @Param endDate query string false "Window end"
// @Param search query string false "Search by title"
// @Success 200 {object} response.Page
// @Failure 400 {object} response.Failure
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	result, err := h.events.List(c.Request.Context(), listParams(c))
	respondList(c, result, err)
}

// Get godoc
// @Summary Get event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	doc, err := h.events.Get(c.Request.Context(), c.Param("id"))
	respondDocument(c, http.StatusOK, doc, err)
}

// Create godoc
// @Summary Create event
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body service.CreateEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req service.CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.events.Create(c.Request.Context(), req)
	respondDocument(c, http.StatusCreated, doc, err)
}

// Update godoc
// @Summary Update event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body service.UpdateEventRequest true "Event payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	var req service.UpdateEventRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.events.Update(c.Request.Context(), c.Param("id"), req)
	respondDocument(c, http.StatusOK, doc, err)
}

// Delete godoc
// @Summary Delete event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	respondDeleted(c, h.events.Delete(c.Request.Context(), c.Param("id")))
}
