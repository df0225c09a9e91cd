package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alimovshaxzod89/SMS/internal/service"
)

// AnnouncementHandler exposes announcement endpoints.
type AnnouncementHandler struct {
	announcements *service.AnnouncementService
}

// NewAnnouncementHandler constructs handler.
func NewAnnouncementHandler(announcements *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

// List godoc
// @Summary List announcements
// @Tags Announcements
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param classId query string false "Filter by class"
// @Param date query string false "Day filter (YYYY-MM-DD)"
// @Param search query string false "Search by title"
// @Success 200 {object} response.Page
// @Failure 400 {object} response.Failure
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	result, err := h.announcements.List(c.Request.Context(), listParams(c))
	respondList(c, result, err)
}

// Get godoc
// @Summary Get announcement
// @Tags Announcements
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /announcements/{id} [get]
func (h *AnnouncementHandler) Get(c *gin.Context) {
	doc, err := h.announcements.Get(c.Request.Context(), c.Param("id"))
	respondDocument(c, http.StatusOK, doc, err)
}

// Create godoc
// @Summary Create announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Param payload body service.CreateAnnouncementRequest true "Announcement payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req service.CreateAnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.announcements.Create(c.Request.Context(), req)
	respondDocument(c, http.StatusCreated, doc, err)
}

// Update godoc
// @Summary Update announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Param payload body service.UpdateAnnouncementRequest true "Announcement payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *gin.Context) {
	var req service.UpdateAnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.announcements.Update(c.Request.Context(), c.Param("id"), req)
	respondDocument(c, http.StatusOK, doc, err)
}

// Delete godoc
// @Summary Delete announcement
// @Tags Announcements
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	respondDeleted(c, h.announcements.Delete(c.Request.Context(), c.Param("id")))
}
