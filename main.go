// main.go
package main

import (
	"log"

	"hotel-reservation/cmd"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/internal/wire"
	"hotel-reservation/pkg/database"
	"hotel-reservation/pkg/events"
	"hotel-reservation/pkg/utils"

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

	// Optional availability cache (nil disables caching)
	cache := database.InitRedis(config.Redis, logger)
	if cache != nil {
		defer cache.Close()
	}

	// Optional event publisher (nil drops events)
	publisher := events.NewPublisher(config.AMQP, logger)
	defer publisher.Close()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, cache, publisher, utils.SystemClock{}, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
