package handlers

import (
	"net/http"

	"raidlog/api/dto"
	"raidlog/api/filters"
	aggregateservice "raidlog/api/services/aggregate"

	"github.com/gin-gonic/gin"
)

// Handler for the aggregation endpoint.
type AggregateHandler struct {
	service *aggregateservice.AggregateService
}

// Create a instance of the aggregate handler.
func NewAggregateHandler(service *aggregateservice.AggregateService) *AggregateHandler {
	return &AggregateHandler{service: service}
}

// GetGroupStats aggregates the damage and healing of caller defined
// player groups over a report.
func (h *AggregateHandler) GetGroupStats(c *gin.Context) {
	reportCode := c.Param("code")

	var request filters.AggregateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats, found, err := h.service.GetGroupStats(c.Request.Context(), reportCode, &request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't aggregate the report"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	c.JSON(http.StatusOK, dto.GroupStatsResponse{GroupStats: stats})
}
