package routes

import (
	"testing"

	"raidlog/api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter() *Router {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	return NewRouter(engine)
}

func TestNewRouter(t *testing.T) {
	router := setupTestRouter()

	assert.NotNil(t, router)
	assert.NotNil(t, router.engine)
	assert.NotNil(t, router.api)
}

func TestSetupRoutes(t *testing.T) {
	router := setupTestRouter()

	router.SetupRoutes(
		&handlers.ReportHandler{},
		&handlers.AggregateHandler{},
	)

	registered := make(map[string]bool)
	for _, route := range router.engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/v1/reports",
		"GET /api/v1/reports",
		"GET /api/v1/reports/:code/detailed",
		"GET /api/v1/reports/:code/status",
		"GET /api/v1/reports/:code/fights/:fightId/events",
		"DELETE /api/v1/reports/:code",
		"POST /api/v1/reports/:code/aggregate",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}
