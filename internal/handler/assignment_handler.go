package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alimovshaxzod89/SMS/internal/service"
)

// AssignmentHandler exposes assignment endpoints.
type AssignmentHandler struct {
	assignments *service.AssignmentService
}

// NewAssignmentHandler constructs handler.
func NewAssignmentHandler(assignments *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// List godoc
// @Summary List assignments
// @Tags Assignments
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param classId query string false "Filter by class"
// @Param teacherId query string false "Filter by teacher external id"
// @Param lessonId query string false "Filter by lesson"
// @Param search query string false "Search by title or subject name"
// @Success 200 {object} response.Page
// @Failure 400 {object} response.Failure
// @Router /assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	result, err := h.assignments.List(c.Request.Context(), listParams(c))
	respondList(c, result, err)
}

// Get godoc
// @Summary Get assignment
// @Tags Assignments
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /assignments/{id} [get]
func (h *AssignmentHandler) Get(c *gin.Context) {
	doc, err := h.assignments.Get(c.Request.Context(), c.Param("id"))
	respondDocument(c, http.StatusOK, doc, err)
}

// Create godoc
// @Summary Create assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body service.CreateAssignmentRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req service.CreateAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.assignments.Create(c.Request.Context(), req)
	respondDocument(c, http.StatusCreated, doc, err)
}

// Update godoc
// @Summary Update assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param payload body service.UpdateAssignmentRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) Update(c *gin.Context) {
	var req service.UpdateAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.assignments.Update(c.Request.Context(), c.Param("id"), req)
	respondDocument(c, http.StatusOK, doc, err)
}

// Delete godoc
// @Summary Delete assignment
// @Tags Assignments
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	respondDeleted(c, h.assignments.Delete(c.Request.Context(), c.Param("id")))
}
