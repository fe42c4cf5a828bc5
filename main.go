package main

import (
	"context"
	"log"

	"ticket-booking/cmd"
	"ticket-booking/internal/data/repository"
	"ticket-booking/internal/usecase"
	"ticket-booking/internal/wire"
	"ticket-booking/internal/worker"
	"ticket-booking/pkg/broker"
	"ticket-booking/pkg/database"
	"ticket-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("storage", config.App.Storage),
		zap.Int("rows", config.Theatre.Rows),
		zap.Int("cols", config.Theatre.Cols),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var repos *repository.Repository
	switch config.App.Storage {
	case "memory":
		repos = repository.NewMemoryRepository(logger)
		logger.Warn("Using in-memory storage, bookings are lost on restart")
	default:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := database.Migrate(config.Database); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}

		logger.Info("Database connected successfully")
		repos = repository.NewRepository(db, logger)
	}

	if config.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unavailable, seating cache disabled", zap.Error(err))
		} else {
			repos = repos.WithSeatingCache(rdb, config.Redis.SeatingKey, config.Redis.SeatingTTL, logger)
			logger.Info("Seating cache enabled", zap.String("addr", config.Redis.Addr))
		}
	}

	service, err := usecase.NewService(repos, config, logger)
	if err != nil {
		logger.Fatal("Failed to build services", zap.Error(err))
	}

	restored, err := service.Booking.RestoreSeating(ctx)
	if err != nil {
		logger.Fatal("Failed to restore seating from ledger", zap.Error(err))
	}
	logger.Info("Seating restored", zap.Int("seats", restored))

	var publisher *broker.Publisher
	if config.Broker.URL != "" {
		publisher, err = broker.NewPublisher(config.Broker.URL, config.Broker.TicketQueue, logger)
		if err != nil {
			logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}

		dispatcher := worker.NewTicketDispatcher(service.Booking, publisher, config.Broker.DispatchInterval, logger)
		go dispatcher.Run(ctx)
	}

	app := wire.Wiring(service, logger)

	cmd.APIServer(app.Router, config.App.Port, logger, func() {
		stop()
		if publisher != nil {
			if err := publisher.Close(); err != nil {
				logger.Warn("Failed to close RabbitMQ publisher", zap.Error(err))
			}
		}
	})
}
