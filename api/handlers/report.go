package handlers

import (
	"net/http"
	"strconv"

	"raidlog/api/filters"
	reportservice "raidlog/api/services/report"

	"github.com/gin-gonic/gin"
)

// Handler for the report endpoints.
type ReportHandler struct {
	service *reportservice.ReportService
}

// Create a instance of the report handler.
func NewReportHandler(service *reportservice.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// ProcessReport queues a report for ingestion and answers 202 with the
// code and the pending status.
func (h *ReportHandler) ProcessReport(c *gin.Context) {
	var request filters.ProcessReportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reportCode, err := request.ExtractReportCode()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.service.StartIngestion(reportCode)

	c.JSON(http.StatusAccepted, gin.H{
		"report_code": reportCode,
		"status":      "pending",
	})
}

// GetIngestionStatus returns the last known status of a report code.
func (h *ReportHandler) GetIngestionStatus(c *gin.Context) {
	reportCode := c.Param("code")

	status, err := h.service.GetIngestionStatus(c.Request.Context(), reportCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't read the ingestion status"})
		return
	}
	if status == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No ingestion found for this report code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report_code": reportCode,
		"status":      status,
	})
}

// GetReports returns a page of ingested reports.
func (h *ReportHandler) GetReports(c *gin.Context) {
	var query filters.ListReportsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reports, err := h.service.GetReports(query.Limit, query.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't list the reports"})
		return
	}

	c.JSON(http.StatusOK, reports)
}

// GetDetailedReport returns a report with the fights and players.
func (h *ReportHandler) GetDetailedReport(c *gin.Context) {
	reportCode := c.Param("code")

	report, err := h.service.GetDetailedReport(reportCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't get the report"})
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetFightEvents returns the merged event timeline of one fight.
func (h *ReportHandler) GetFightEvents(c *gin.Context) {
	reportCode := c.Param("code")

	wclFightID, err := strconv.Atoi(c.Param("fightId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The fight id must be a number"})
		return
	}

	var query filters.FightEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, found, err := h.service.GetFightEvents(reportCode, wclFightID, query.Kinds())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't get the fight events"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fight not found"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// DeleteReport removes a report and everything below it.
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	reportCode := c.Param("code")

	deleted, err := h.service.DeleteReport(reportCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't delete the report"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report_code": reportCode, "deleted": true})
}
