package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"devlavka/internal/app/store/config"
	"devlavka/internal/app/store/entity"
	"devlavka/internal/app/store/handler"
	"devlavka/internal/app/store/infrastructure"
	"devlavka/internal/app/store/infrastructure/messaging"
	"devlavka/internal/app/store/infrastructure/webhook"
	"devlavka/internal/app/store/processor"
	"devlavka/internal/app/store/repository"
	"devlavka/internal/app/store/service"
	"devlavka/internal/app/store/util"
	"devlavka/pkg/logger"
)

const serviceName = "store-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init(serviceName, logLevel)

	// GORM управляет каталогом и заказами
	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	if err := db.AutoMigrate(&entity.Category{}, &entity.Product{}, &entity.Order{}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Отдельный pgx pool для таблицы пользователей
	pool, err := connectPool(context.Background(), cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create pgx pool")
	}
	defer pool.Close()

	redisClient, err := util.NewRedisClient(
		cfg.Redis.Address(),
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("address", cfg.Redis.Address()).Msg("Connected to Redis")

	// Kafka опциональна: без брокеров события просто не отправляются
	var publisher infrastructure.MessagePublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaProducer.Close()
		publisher = kafkaProducer
		logger.Info().Str("topic", cfg.Kafka.Topic).Msg("Initialized Kafka producer")
	}

	notifier := webhook.NewNotifier(cfg.Webhook.URL)
	if notifier.Enabled() {
		logger.Info().Str("url", cfg.Webhook.URL).Msg("Order webhook notifications enabled")
	} else {
		logger.Warn().Msg("WEBHOOK_URL is not set, order notifications disabled")
	}

	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(pool)

	jwtManager := util.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessDuration)

	authService := service.NewAuthService(userRepo, jwtManager)
	catalogService := service.NewCatalogService(categoryRepo, productRepo, redisClient)
	orderService := service.NewOrderService(orderRepo, notifier, publisher)

	// Ежедневный дайджест ожидающих заказов через webhook
	scheduler := processor.NewDigestScheduler(orderService)
	if notifier.Enabled() {
		if err := scheduler.Start(context.Background(), cfg.Webhook.DigestSchedule); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start digest scheduler")
		}
		defer scheduler.Stop()
	}

	authMiddleware := handler.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)

	router := handler.SetupRoutes(authHandler, catalogHandler, orderHandler, authMiddleware, cfg.CORS)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Store API")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Store API...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Store API stopped gracefully")
}

// connectDB открывает GORM соединение с повторными попытками.
// При запуске в Docker PostgreSQL может быть еще не готов.
func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else {
				pingErr := sqlDB.Ping()
				if pingErr != nil {
					err = pingErr
				} else {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(5)
					sqlDB.SetConnMaxLifetime(5 * time.Minute)
					sqlDB.SetConnMaxIdleTime(1 * time.Minute)
					return db, nil
				}
			}
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

// connectPool создает pgx connection pool для репозитория пользователей
func connectPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
