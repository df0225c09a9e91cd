package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alimovshaxzod89/SMS/internal/service"
)

// ParentHandler exposes parent endpoints.
type ParentHandler struct {
	parents *service.ParentService
}

// NewParentHandler constructs handler.
func NewParentHandler(parents *service.ParentService) *ParentHandler {
	return &ParentHandler{parents: parents}
}

// List godoc
// @Summary List parents
// @Tags Parents
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search by name, surname or username"
// @Success 200 {object} response.Page
// @Failure 400 {object} response.Failure
// @Router /parents [get]
func (h *ParentHandler) List(c *gin.Context) {
	result, err := h.parents.List(c.Request.Context(), listParams(c))
	respondList(c, result, err)
}

// Get godoc
// @Summary Get parent
// @Tags Parents
// @Produce json
// @Param id path string true "Parent ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /parents/{id} [get]
func (h *ParentHandler) Get(c *gin.Context) {
	doc, err := h.parents.Get(c.Request.Context(), c.Param("id"))
	respondDocument(c, http.StatusOK, doc, err)
}

// Create godoc
// @Summary Create parent
// @Tags Parents
// @Accept json
// @Produce json
// @Param payload body service.CreateParentRequest true "Parent payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /parents [post]
func (h *ParentHandler) Create(c *gin.Context) {
	var req service.CreateParentRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.parents.Create(c.Request.Context(), req)
	respondDocument(c, http.StatusCreated, doc, err)
}

// Update godoc
// @Summary Update parent
// @Tags Parents
// @Accept json
// @Produce json
// @Param id path string true "Parent ID"
// @Param payload body service.UpdateParentRequest true "Parent payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /parents/{id} [put]
func (h *ParentHandler) Update(c *gin.Context) {
	var req service.UpdateParentRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.parents.Update(c.Request.Context(), c.Param("id"), req)
	respondDocument(c, http.StatusOK, doc, err)
}

// Delete godoc
// @Summary Delete parent
// @Tags Parents
// @Produce json
// @Param id path string true "Parent ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Failure
// @Failure 404 {object} response.Failure
// @Router /parents/{id} [delete]
func (h *ParentHandler) Delete(c *gin.Context) {
	respondDeleted(c, h.parents.Delete(c.Request.Context(), c.Param("id")))
}
