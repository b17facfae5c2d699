package modules

import (
	"fmt"

	"raidlog/api/cache"
	"raidlog/api/dto"
	"raidlog/api/handlers"
	aggrepo "raidlog/api/repositories/aggregate"
	reportrepo "raidlog/api/repositories/report"
	aggregateservice "raidlog/api/services/aggregate"
	reportservice "raidlog/api/services/report"
	"raidlog/ingestion"
	"raidlog/pkg/redis"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Module containing the necessary handlers.
type Module struct {
	Router           *gin.Engine
	ReportHandler    *handlers.ReportHandler
	AggregateHandler *handlers.AggregateHandler
}

// Shared dependencies of every handler.
type ModuleDependencies struct {
	DB    *gorm.DB
	Redis *redis.RedisClient
	Queue *ingestion.Queue
}

// Create a new module with all the necessary handlers initialized.
func NewModule(deps *ModuleDependencies) (*Module, error) {
	router := gin.Default()

	// Initialize the repositories.
	reportRepository, err := reportrepo.NewReportRepository(deps.DB)
	if err != nil {
		return nil, fmt.Errorf("couldn't start the report repository: %v", err)
	}

	aggregateRepository, err := aggrepo.NewAggregateRepository(deps.DB)
	if err != nil {
		return nil, fmt.Errorf("couldn't start the aggregate repository: %v", err)
	}

	// Initialize the services.
	reportService := reportservice.NewReportService(&reportservice.ReportServiceDeps{
		Repository: reportRepository,
		Queue:      deps.Queue,
		Status:     deps.Redis,
	})

	aggregateService := aggregateservice.NewAggregateService(&aggregateservice.AggregateServiceDeps{
		Repository: aggregateRepository,
		MemCache:   cache.NewMemCache[map[string][]dto.PlayerGroupStats](),
		Redis:      deps.Redis,
	})

	// Initialize the handlers.
	reportHandler := handlers.NewReportHandler(reportService)
	aggregateHandler := handlers.NewAggregateHandler(aggregateService)

	// Return the module with all handlers.
	return &Module{
		Router:           router,
		ReportHandler:    reportHandler,
		AggregateHandler: aggregateHandler,
	}, nil
}
