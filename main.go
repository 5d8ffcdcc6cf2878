// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"taskturf/cmd"
	"taskturf/internal/data/repository"
	"taskturf/internal/outbox"
	"taskturf/internal/wire"
	"taskturf/pkg/database"
	"taskturf/pkg/mq"
	"taskturf/pkg/utils"

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Apply migrations
	if err := database.Migrate(ctx, db, config.App.MigrationsPath); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Start the outbox relay. Booking writes never depend on the broker, so
	// a missing broker only delays delivery.
	publisher, err := mq.NewPublisher(config.MQ.URL, config.MQ.Exchange)
	if err != nil {
		logger.Warn("Message broker unreachable, outbox relay disabled", zap.Error(err))
	} else {
		defer publisher.Close()
		relay := outbox.NewRelay(repos.Outbox, publisher, config.Outbox.PollInterval, config.Outbox.BatchSize, logger)
		go relay.Run(ctx)
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
