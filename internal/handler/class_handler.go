package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alimovshaxzod89/SMS/internal/service"
)

// ClassHandler exposes class endpoints.
type ClassHandler struct {
	classes *service.ClassService
}

// NewClassHandler constructs handler.
func NewClassHandler(classes *service.ClassService) *ClassHandler {
	return &ClassHandler{classes: classes}
}

// List godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param gradeId query string false "Filter by grade"
// @Param supervisorId query string false "Filter by supervisor external id"
// @Param search query string false "Search by name"
// @Success 200 {object} response.Page
// @Failure 400 {object} response.Failure
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	result, err := h.classes.List(c.Request.Context(), listParams(c))
	respondList(c, result, err)
}

// Get godoc
// @Summary Get class
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	doc, err := h.classes.Get(c.Request.Context(), c.Param("id"))
	respondDocument(c, http.StatusOK, doc, err)
}

// Create godoc
// @Summary Create class
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body service.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req service.CreateClassRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.classes.Create(c.Request.Context(), req)
	respondDocument(c, http.StatusCreated, doc, err)
}

// Update godoc
// @Summary Update class
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body service.UpdateClassRequest true "Class payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /classes/{id} [put]
func (h *ClassHandler) Update(c *gin.Context) {
	var req service.UpdateClassRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.classes.Update(c.Request.Context(), c.Param("id"), req)
	respondDocument(c, http.StatusOK, doc, err)
}

// Delete godoc
// @Summary Delete class
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /classes/{id} [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
	respondDeleted(c, h.classes.Delete(c.Request.Context(), c.Param("id")))
}
