package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alimovshaxzod89/SMS/internal/service"
	"github.com/alimovshaxzod89/SMS/pkg/response"
)

// StatisticsHandler serves dashboard counters.
type StatisticsHandler struct {
	stats   *service.StatisticsService
	metrics *service.MetricsService
}

// NewStatisticsHandler constructs handler.
func NewStatisticsHandler(stats *service.StatisticsService, metrics *service.MetricsService) *StatisticsHandler {
	return &StatisticsHandler{stats: stats, metrics: metrics}
}

// Counts godoc
// @Summary Entity counts
// @Description Number of records per collection and students by sex
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Failure
// @Router /statistics/counts [get]
func (h *StatisticsHandler) Counts(c *gin.Context) {
	counts, err := h.stats.Counts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, counts)
}

// System godoc
// @Summary Process metrics snapshot
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /statistics/system [get]
func (h *StatisticsHandler) System(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot())
}
