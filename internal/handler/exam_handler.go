package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alimovshaxzod89/SMS/internal/service"
	"github.com/alimovshaxzod89/SMS/pkg/response"
)

// ExamHandler exposes exam endpoints.
type ExamHandler struct {
	exams  *service.ExamService
	export *service.ExportService
}

// NewExamHandler constructs handler.
func NewExamHandler(exams *service.ExamService, export *service.ExportService) *ExamHandler {
	return &ExamHandler{exams: exams, export: export}
}

// List godoc
// @Summary List exams
// @Tags Exams
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param classId query string false "Filter by class"
// @Param teacherId query string false "Filter by teacher external id"
// @Param lessonId query string false "Filter by lesson"
// @Param search query string false "Search by title"
// @Success 200 {object} response.Page
// @Failure 400 {object} response.Failure
// @Router /exams [get]
func (h *ExamHandler) List(c *gin.Context) {
	result, err := h.exams.List(c.Request.Context(), listParams(c))
	respondList(c, result, err)
}

// Get godoc
// @Summary Get exam
// @Tags Exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /exams/{id} [get]
func (h *ExamHandler) Get(c *gin.Context) {
	doc, err := h.exams.Get(c.Request.Context(), c.Param("id"))
	respondDocument(c, http.StatusOK, doc, err)
}

// Create godoc
// @Summary Create exam
// @Tags Exams
// @Accept json
// @Produce json
// @Param payload body service.CreateExamRequest true "Exam payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /exams [post]
func (h *ExamHandler) Create(c *gin.Context) {
	var req service.CreateExamRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.exams.Create(c.Request.Context(), req)
	respondDocument(c, http.StatusCreated, doc, err)
}

// Update godoc
// @Summary Update exam
// @Tags Exams
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param payload body service.UpdateExamRequest true "Exam payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /exams/{id} [put]
func (h *ExamHandler) Update(c *gin.Context) {
	var req service.UpdateExamRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.exams.Update(c.Request.Context(), c.Param("id"), req)
	respondDocument(c, http.StatusOK, doc, err)
}

// Delete godoc
// @Summary Delete exam
// @Tags Exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /exams/{id} [delete]
func (h *ExamHandler) Delete(c *gin.Context) {
	respondDeleted(c, h.exams.Delete(c.Request.Context(), c.Param("id")))
}

// Export godoc
// @Summary Export exam timetable
// @Tags Exams
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Param classId query string false "Filter by class"
// @Param teacherId query string false "Filter by teacher external id"
// @Param lessonId query string false "Filter by lesson"
// @Param search query string false "Search by title"
// @Success 200 {file} file
// @Failure 400 {object} response.Failure
// @Router /exams/export [get]
func (h *ExamHandler) Export(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	params := listParams(c)
	delete(params.Values, "format")
	result, err := h.export.Exams(c.Request.Context(), format, params.Values)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
