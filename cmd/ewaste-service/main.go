package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ewaste-lifecycle-service/internal/adapters/db"
	"ewaste-lifecycle-service/internal/adapters/httpapi"
	"ewaste-lifecycle-service/internal/adapters/redis"
	"ewaste-lifecycle-service/internal/adapters/scheduler"
	"ewaste-lifecycle-service/internal/app"
	"ewaste-lifecycle-service/internal/config"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	initLogging(cfg)

	log.Info().Msg("Starting E-Waste Lifecycle Service...")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runMigrations(cfg)

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbConn.Close()

	log.Info().Msg("Database connection established")

	// Create repositories
	repoFactory := db.NewRepositoryFactory(dbConn)
	itemRepo := repoFactory.GetItemRepository()
	pickupRepo := repoFactory.GetPickupRepository()
	vendorRepo := repoFactory.GetVendorRepository()
	userRepo := repoFactory.GetUserRepository()
	bidRepo := repoFactory.GetBidRepository()

	log.Info().Msg("Database repositories initialized")

	// Create Redis client for the auction expiry schedule
	redisClient := redis.NewClient(cfg)
	if err := redis.PingRedis(redisClient); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	log.Info().Msg("Redis connection established")

	// Create business services
	directoryService := app.NewDirectoryService(app.DirectoryServiceParams{
		VendorRepo: vendorRepo,
		UserRepo:   userRepo,
		Logger:     log.Logger,
	})
	auctionService := app.NewAuctionService(app.AuctionServiceParams{
		ItemRepo: itemRepo,
		UserRepo: userRepo,
		Logger:   log.Logger,
	})
	itemService := app.NewItemService(app.ItemServiceParams{
		ItemRepo: itemRepo,
		Auctions: auctionService,
		Logger:   log.Logger,
	})
	bidService := app.NewBidService(app.BidServiceParams{
		BidRepo:   bidRepo,
		ItemRepo:  itemRepo,
		Directory: directoryService,
		Logger:    log.Logger,
	})
	pickupService := app.NewPickupService(app.PickupServiceParams{
		ItemRepo:   itemRepo,
		PickupRepo: pickupRepo,
		Directory:  directoryService,
		OffsetDays: cfg.Pickup.OffsetDays,
		Logger:     log.Logger,
	})

	log.Info().Msg("Business services initialized")

	// Create auction scheduler
	auctionScheduler := scheduler.NewAuctionScheduler(scheduler.AuctionSchedulerParams{
		RedisClient: redisClient,
		Auctions:    auctionService,
		ItemRepo:    itemRepo,
		Logger:      log.Logger,
	})

	auctionScheduler.Start()
	log.Info().Msg("Auction scheduler started")

	auctionService.SetScheduler(auctionScheduler)

	handlers := httpapi.NewHandlers(httpapi.HandlersParams{
		Items:     itemService,
		Auctions:  auctionService,
		Bids:      bidService,
		Pickups:   pickupService,
		Directory: directoryService,
		Ping:      dbConn.Ping,
		Logger:    log.Logger,
	})

	apiServer := httpapi.NewServer(httpapi.ServerParams{
		Config:   cfg,
		Handlers: handlers,
		Logger:   log.Logger,
	})

	log.Info().Msg("HTTP server initialized")

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := apiServer.Start(); err != nil {
			log.Error().Err(err).Msg("Failed to start HTTP server")
			cancel()
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case <-ctx.Done():
		log.Info().Msg("Context cancelled")
	}

	// Graceful shutdown
	log.Info().Msg("Starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	auctionScheduler.Stop()
	log.Info().Msg("Auction scheduler stopped")

	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping HTTP server")
	}

	log.Info().Msg("Graceful shutdown completed")
}

func runMigrations(cfg *config.Config) {
	migration, err := migrate.New(cfg.Database.MigrationURL, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create migrate instance")
	}

	if err := migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	log.Info().Msg("Database migrated successfully")
}

func initLogging(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set log format
	if cfg.Logging.Format == "json" {
		// JSON format (default)
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Console format for development
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set global logger
	zerolog.DefaultContextLogger = &log.Logger
}
