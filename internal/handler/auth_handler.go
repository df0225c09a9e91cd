package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/service"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
	"github.com/alimovshaxzod89/SMS/pkg/response"
)

// TokenResponse carries a freshly issued token.
type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login godoc
// @Summary Authenticate user
// @Description Authenticate an admin, teacher, student or parent by username and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} response.Failure
// @Failure 401 {object} response.Failure
// @Failure 403 {object} response.Failure
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Me godoc
// @Summary Current user
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Failure
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	doc, err := h.service.Me(c.Request.Context(), claims)
	respondDocument(c, http.StatusOK, doc, err)
}

// UpdatePassword godoc
// @Summary Change password
// @Description Change the caller's password and receive a new token
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.UpdatePasswordRequest true "Password payload"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} response.Failure
// @Failure 401 {object} response.Failure
// @Router /auth/updatepassword [put]
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	token, err := h.service.UpdatePassword(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, TokenResponse{Success: true, Token: token})
}

// Logout godoc
// @Summary Logout current session
// @Description Invalidate the presented access token
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Failure
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	respondDeleted(c, h.service.Logout(c.Request.Context(), claims))
}

// LogoutAll godoc
// @Summary Logout everywhere
// @Description Invalidate every token issued to the caller so far
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Failure
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	respondDeleted(c, h.service.LogoutAll(c.Request.Context(), claims))
}
