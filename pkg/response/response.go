package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

// Envelope represents the common response contract for single records.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// Failure is the error contract.
type Failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// Page is the listing contract.
type Page struct {
	Success     bool        `json:"success"`
	Count       int64       `json:"count"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
	Data        interface{} `json:"data"`
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	noStore(c)
	c.JSON(status, Envelope{Success: true, Data: data})
}

// List sends a paginated listing.
func List(c *gin.Context, data interface{}, count int64, totalPages, currentPage int) {
	noStore(c)
	c.JSON(http.StatusOK, Page{
		Success:     true,
		Count:       count,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		Data:        data,
	})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Deleted responds with an empty data object.
func Deleted(c *gin.Context) {
	JSON(c, http.StatusOK, gin.H{})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	c.JSON(appErr.Status, Failure{Success: false, Error: appErr.Message, Code: appErr.Code})
}
