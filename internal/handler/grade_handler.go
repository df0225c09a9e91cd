package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alimovshaxzod89/SMS/internal/service"
)

// GradeHandler exposes grade endpoints.
type GradeHandler struct {
	grades *service.GradeService
}

// NewGradeHandler constructs handler.
func NewGradeHandler(grades *service.GradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

// List godoc
// @Summary List grades
// @Tags Grades
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size (default 100)"
// @Success 200 {object} response.Page
// @Failure 400 {object} response.Failure
// @Router /grades [get]
func (h *GradeHandler) List(c *gin.Context) {
	result, err := h.grades.List(c.Request.Context(), listParams(c))
	respondList(c, result, err)
}

// Get godoc
// @Summary Get grade
// @Tags Grades
// @Produce json
// @Param id path string true "Grade ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Failure
// @Router /grades/{id} [get]
func (h *GradeHandler) Get(c *gin.Context) {
	doc, err := h.grades.Get(c.Request.Context(), c.Param("id"))
	respondDocument(c, http.StatusOK, doc, err)
}

// Create godoc
// @Summary Create grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.CreateGradeRequest true "Grade payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Router /grades [post]
func (h *GradeHandler) Create(c *gin.Context) {
	var req service.CreateGradeRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.grades.Create(c.Request.Context(), req)
	respondDocument(c, http.StatusCreated, doc, err)
}

// Update godoc
// @Summary Update grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param id path string true "Grade ID"
// @Param payload body service.UpdateGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /grades/{id} [put]
func (h *GradeHandler) Update(c *gin.Context) {
	var req service.UpdateGradeRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.grades.Update(c.Request.Context(), c.Param("id"), req)
	respondDocument(c, http.StatusOK, doc, err)
}

// Delete godoc
// @Summary Delete grade
// @Tags Grades
// @Produce json
// @Param id path string true "Grade ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Failure
// @Router /grades/{id} [delete]
func (h *GradeHandler) Delete(c *gin.Context) {
	respondDeleted(c, h.grades.Delete(c.Request.Context(), c.Param("id")))
}
