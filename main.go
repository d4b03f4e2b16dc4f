// main.go
package main

import (
	"log"

	"movie-ticket-booking/cmd"
	"movie-ticket-booking/internal/data/repository"
	"movie-ticket-booking/internal/queue"
	"movie-ticket-booking/internal/wire"
	"movie-ticket-booking/pkg/cache"
	"movie-ticket-booking/pkg/database"
	"movie-ticket-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Redis is optional; reads fall through to the database when it is down
	redisClient := cache.NewRedisClient(config.Redis)
	if redisClient == nil {
		logger.Warn("Redis unavailable, caching disabled")
	}
	cacheStore := cache.New(redisClient, config.Redis, logger)

	// Best-effort booking event publisher
	publisher := queue.NewPublisher(config.Queue.URL, logger)

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, cacheStore, publisher, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
