package main

import (
	"log"
	"os"

	"raidlog/api/modules"
	"raidlog/api/routes"
	reportfetcher "raidlog/fetcher/data/report"
	"raidlog/fetcher/requests"
	"raidlog/ingestion"
	"raidlog/pkg/config"
	"raidlog/pkg/database"
	"raidlog/pkg/logger"
	"raidlog/pkg/redis"

	"github.com/joho/godotenv"
)

func main() {
	// Load the environment variables if not running on Docker.
	if os.Getenv("ENVIRONMENT") != "docker" {
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Error loading .env file")
		}
	}

	config.LoadEnv()

	// Connect to the database and run the migrations.
	db, err := database.NewConnection()
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Error running the migrations: %v", err)
	}

	redisClient := redis.GetClient()
	defer redisClient.Close()

	ingestLogger, err := logger.CreateLogger()
	if err != nil {
		log.Fatalf("Error creating the ingestion logger: %v", err)
	}

	// Wire the fetcher and the background ingestion queue.
	fetcher := reportfetcher.CreateReportFetcher(requests.NewClient())

	ingestionService := ingestion.NewService(&ingestion.ServiceDeps{
		Source: fetcher,
		DB:     db,
		Logger: ingestLogger,
	})

	queue := ingestion.NewQueue(&ingestion.QueueDeps{
		Service: ingestionService,
		Status:  redisClient,
	})

	// Create a module with all necessary handlers.
	module, err := modules.NewModule(&modules.ModuleDependencies{
		DB:    db,
		Redis: redisClient,
		Queue: queue,
	})
	if err != nil {
		log.Fatalf("Error creating the module: %v", err)
	}

	// Create a new router with the routes setup.
	router := routes.NewRouter(module.Router)
	router.SetupRoutes(
		module.ReportHandler,
		module.AggregateHandler,
	)

	// Start the server.
	router.Run(":8080")
}
