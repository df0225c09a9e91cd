package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alimovshaxzod89/SMS/internal/models"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

type stubValidator map[string]*models.JWTClaims

func (s stubValidator) ValidateToken(ctx context.Context, token string) (*models.JWTClaims, error) {
	if token == "revoked" {
		return nil, appErrors.ErrTokenRevoked
	}
	claims, ok := s[token]
	if !ok {
		return nil, appErrors.ErrUnauthorized
	}
	return claims, nil
}

type recordedRequest struct {
	method, path string
	status       int
}

type recordingObserver struct {
	requests []recordedRequest
}

func (r *recordingObserver) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	r.requests = append(r.requests, recordedRequest{method: method, path: path, status: status})
}

func newProtectedRouter(allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator := stubValidator{
		"admin-token":   {UserID: models.AdminUserID, Role: models.RoleAdmin},
		"teacher-token": {UserID: "t-1", Role: models.RoleTeacher},
	}
	router := gin.New()
	router.Use(JWT(validator))
	router.PUT("/teachers/:id", RBAC(allowed...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": Claims(c).UserID})
	})
	return router
}

func call(router http.Handler, token, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Error
}

func TestJWTRequiresBearerToken(t *testing.T) {
	router := newProtectedRouter(string(models.RoleAdmin))

	rec := call(router, "", "/teachers/t-1")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, appErrors.ErrUnauthorized.Message, errorMessage(t, rec))

	rec = call(router, "revoked", "/teachers/t-1")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been invalidated. Please login again.", errorMessage(t, rec))

	rec = call(router, "admin-token", "/teachers/t-1")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRBACAllowsSelf(t *testing.T) {
	router := newProtectedRouter(string(models.RoleAdmin), Self)

	assert.Equal(t, http.StatusOK, call(router, "teacher-token", "/teachers/t-1").Code)

	rec := call(router, "teacher-token", "/teachers/t-2")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized to perform this action", errorMessage(t, rec))

	assert.Equal(t, http.StatusOK, call(router, "admin-token", "/teachers/t-2").Code)
}

func TestRBACWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/open", RequireRoles(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &recordingObserver{}
	router := gin.New()
	router.Use(Metrics(observer))
	router.GET("/lessons/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/lessons/abc", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	require.Len(t, observer.requests, 2)
	assert.Equal(t, recordedRequest{method: http.MethodGet, path: "/lessons/:id", status: http.StatusNoContent}, observer.requests[0])
	assert.Equal(t, "unmatched", observer.requests[1].path)
	assert.Equal(t, http.StatusNotFound, observer.requests[1].status)
}
