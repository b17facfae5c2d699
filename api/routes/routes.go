package routes

import (
	"raidlog/api/handlers"

	"github.com/gin-gonic/gin"
)

type Router struct {
	engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group("/api/v1"),
		engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.ReportHandler:
			r.registerReportHandler(handler)
		case *handlers.AggregateHandler:
			r.registerAggregateHandler(handler)
		}
	}
}

// Register the report handler.
func (r *Router) registerReportHandler(handler *handlers.ReportHandler) {
	reports := r.api.Group("/reports")
	{
		reports.POST("", handler.ProcessReport)
		reports.GET("", handler.GetReports)
		reports.GET("/:code/detailed", handler.GetDetailedReport)
		reports.GET("/:code/status", handler.GetIngestionStatus)
		reports.GET("/:code/fights/:fightId/events", handler.GetFightEvents)
		reports.DELETE("/:code", handler.DeleteReport)
	}
}

// Register the aggregate handler.
func (r *Router) registerAggregateHandler(handler *handlers.AggregateHandler) {
	reports := r.api.Group("/reports")
	{
		reports.POST("/:code/aggregate", handler.GetGroupStats)
	}
}

// Start the router.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
