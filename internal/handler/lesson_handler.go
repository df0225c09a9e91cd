package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alimovshaxzod89/SMS/internal/service"
)

// LessonHandler exposes lesson endpoints.
type LessonHandler struct {
	lessons *service.LessonService
}

// NewLessonHandler constructs handler.
func NewLessonHandler(lessons *service.LessonService) *LessonHandler {
	return &LessonHandler{lessons: lessons}
}

// List godoc
// @Summary List lessons
// @Tags Lessons
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param classId query string false "Filter by class"
// @Param subjectId query string false "Filter by subject"
// @Param teacherId query string false "Filter by teacher external id"
// @Param search query string false "Search by name"
// @Success 200 {object} response.Page
// @Failure 400 {object} response.Failure
// @Router /lessons [get]
func (h *LessonHandler) List(c *gin.Context) {
	result, err := h.lessons.List(c.Request.Context(), listParams(c))
	respondList(c, result, err)
}

// Get godoc
// @Summary Get lesson
// @Tags Lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /lessons/{id} [get]
func (h *LessonHandler) Get(c *gin.Context) {
	doc, err := h.lessons.Get(c.Request.Context(), c.Param("id"))
	respondDocument(c, http.StatusOK, doc, err)
}

// Create godoc
// @Summary Create lesson
// @Tags Lessons
// @Accept json
// @Produce json
// @Param payload body service.CreateLessonRequest true "Lesson payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /lessons [post]
func (h *LessonHandler) Create(c *gin.Context) {
	var req service.CreateLessonRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.lessons.Create(c.Request.Context(), req)
	respondDocument(c, http.StatusCreated, doc, err)
}

// Update godoc
// @Summary Update lesson
// @Tags Lessons
// @Accept json
// @Produce json
// @Param id path string true "Lesson ID"
// @Param payload body service.UpdateLessonRequest true "Lesson payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /lessons/{id} [put]
func (h *LessonHandler) Update(c *gin.Context) {
	var req service.UpdateLessonRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.lessons.Update(c.Request.Context(), c.Param("id"), req)
	respondDocument(c, http.StatusOK, doc, err)
}

// Delete godoc
// @Summary Delete lesson
// @Tags Lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /lessons/{id} [delete]
func (h *LessonHandler) Delete(c *gin.Context) {
	respondDeleted(c, h.lessons.Delete(c.Request.Context(), c.Param("id")))
}
