package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tablier/resto-backoffice/config"
	"github.com/tablier/resto-backoffice/internal/audit"
	"github.com/tablier/resto-backoffice/internal/notify"
	"github.com/tablier/resto-backoffice/pkg/broker"
	"github.com/tablier/resto-backoffice/pkg/cache"
	"github.com/tablier/resto-backoffice/pkg/database/postgres"
	"github.com/tablier/resto-backoffice/pkg/logger"

	orderH "github.com/tablier/resto-backoffice/internal/order/handler"
	orderRepoPkg "github.com/tablier/resto-backoffice/internal/order/repository"
	orderUCPkg "github.com/tablier/resto-backoffice/internal/order/usecase"

	recipeRepoPkg "github.com/tablier/resto-backoffice/internal/recipe/repository"

	stockH "github.com/tablier/resto-backoffice/internal/stock/handler"
	stockRepoPkg "github.com/tablier/resto-backoffice/internal/stock/repository"
	stockUCPkg "github.com/tablier/resto-backoffice/internal/stock/usecase"

	paymentH "github.com/tablier/resto-backoffice/internal/payment/handler"
	paymentRepoPkg "github.com/tablier/resto-backoffice/internal/payment/repository"
	paymentUCPkg "github.com/tablier/resto-backoffice/internal/payment/usecase"

	registerH "github.com/tablier/resto-backoffice/internal/register/handler"
	registerRepoPkg "github.com/tablier/resto-backoffice/internal/register/repository"
	registerUCPkg "github.com/tablier/resto-backoffice/internal/register/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5. Initialize Kafka Producers (best-effort event sink)
	orderProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.OrderTopic,
	})
	defer orderProducer.Close()
	stockProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.StockTopic,
	})
	defer stockProducer.Close()
	notifier := notify.NewKafkaNotifier(orderProducer, stockProducer)
	appLogger.Info("Kafka event sink ready",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("order_topic", cfg.Kafka.OrderTopic),
		zap.String("stock_topic", cfg.Kafka.StockTopic))

	// 6. Initialize Repositories
	orderRepo := orderRepoPkg.NewPGRepository(db)
	stockRepo := stockRepoPkg.NewPGRepository(db)
	paymentRepo := paymentRepoPkg.NewPGRepository(db)
	registerRepo := registerRepoPkg.NewPGRepository(db)
	recipeResolver := recipeRepoPkg.NewPGResolver(db)

	// 7. Initialize UseCases
	stockUC := stockUCPkg.NewStockUseCase(stockRepo, redisClient, notifier, appLogger)
	decrementer := orderUCPkg.NewStockDecrementer(recipeResolver, stockUC, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, decrementer, notifier, appLogger)
	paymentUC := paymentUCPkg.NewPaymentUseCase(paymentRepo, orderRepo, appLogger)
	registerUC := registerUCPkg.NewRegisterUseCase(registerRepo, appLogger)

	// 8. Nightly stock drift audit
	auditJob := audit.NewStockAuditJob(stockRepo, appLogger)
	if err := auditJob.Start(cfg.Audit.Hour, cfg.Audit.Minute); err != nil {
		appLogger.Error("Could not schedule stock audit job", zap.Error(err))
	}
	defer auditJob.Stop()

	// 9. HTTP server
	app := fiber.New()
	app.Use(recover.New())

	api := app.Group("/api/v1")
	orderH.NewOrderHandler(orderUC, appLogger).RegisterRoutes(api)
	stockH.NewStockHandler(stockUC, appLogger).RegisterRoutes(api)
	paymentH.NewPaymentHandler(paymentUC, appLogger).RegisterRoutes(api)
	registerH.NewRegisterHandler(registerUC, appLogger).RegisterRoutes(api)

	appLogger.Info("Starting HTTP server", zap.String("port", cfg.Server.HTTPPort))
	go func() {
		if err := app.Listen(cfg.Server.HTTPPort); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("shutdown error", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
