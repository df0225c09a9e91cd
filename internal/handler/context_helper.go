package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alimovshaxzod89/SMS/internal/middleware"
	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/query"
	"github.com/alimovshaxzod89/SMS/internal/service"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
	"github.com/alimovshaxzod89/SMS/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	return middleware.Claims(c)
}

// listParams copies the query string into ListParams. Repeated keys keep
// their first value.
func listParams(c *gin.Context) service.ListParams {
	raw := c.Request.URL.Query()
	values := make(query.Values, len(raw))
	for key, vals := range raw {
		if len(vals) > 0 {
			values[key] = vals[0]
		}
	}
	return service.ListParams{Page: c.Query("page"), Limit: c.Query("limit"), Values: values}
}

// bindJSON decodes the request body into dest. An empty body leaves dest
// zero-valued so partial updates can report "No fields to update".
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

func respondList(c *gin.Context, result *query.ListResult, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, result.Data, result.Count, result.TotalPages, result.CurrentPage)
}

func respondDocument(c *gin.Context, status int, doc query.Document, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, status, doc)
}

func respondDeleted(c *gin.Context, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c)
}
