package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vitorsdevstuff/file-energy/internal/app"
	"github.com/vitorsdevstuff/file-energy/internal/config"
	"github.com/vitorsdevstuff/file-energy/internal/gateway/g2pay"
	"github.com/vitorsdevstuff/file-energy/internal/http/routes"
	"github.com/vitorsdevstuff/file-energy/internal/kafka"
	"github.com/vitorsdevstuff/file-energy/internal/metrics"
	"github.com/vitorsdevstuff/file-energy/internal/middleware"
	"github.com/vitorsdevstuff/file-energy/internal/pricing"
	"github.com/vitorsdevstuff/file-energy/internal/repository"
	"github.com/vitorsdevstuff/file-energy/internal/repository/postgres"
	"github.com/vitorsdevstuff/file-energy/internal/service"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log := initLogger()

	log.Infow("Payment service starting up...")

	cfg, err := config.LoadConfig(".env")
	if err != nil {
		log.Fatalw("Failed to load configuration", "error", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Warnw("JWT secret is not set, authenticated endpoints will reject all requests")
	}
	if cfg.G2Pay.BearerToken == "" || cfg.G2Pay.Password == "" {
		log.Warnw("G2Pay credentials are not fully configured")
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Подключаемся к базе данных
	pool, err := postgres.NewConnection(ctx, postgres.Config{
		DSN:      cfg.Database.DSN,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	}, log)
	if err != nil {
		log.Fatalw("Failed to connect to database", "error", err)
	}
	defer pool.Close()

	// Инициализируем Redis кеш
	redisCache, err := repository.NewRedisCacheRepository(
		cfg.Redis.Addr,
		cfg.Redis.Password,
		cfg.Redis.DB,
		log,
	)
	if err != nil {
		// Не фатально: без кеша каталог планов читается напрямую из БД
		log.Warnw("Failed to initialize Redis cache, continuing without caching", "error", err)
	} else {
		log.Infow("Redis cache initialized successfully")
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Errorw("Error closing Redis connection", "error", err)
			}
		}()
	}

	// Инициализируем репозитории
	userRepo := repository.NewPostgresUserRepository(pool, log)
	subscriptionRepo := repository.NewPostgresSubscriptionRepository(pool, log)
	invoiceRepo := repository.NewPostgresInvoiceRepository(pool, log)

	var planRepo repository.PlanRepository = repository.NewPostgresPlanRepository(pool, log)
	if redisCache != nil {
		planRepo = repository.NewCachedPlanRepository(planRepo, redisCache, log)
		log.Infow("Using cached plan repository")
	}

	// Инициализируем клиент G2Pay
	gatewayClient := g2pay.NewClient(g2pay.Config{
		CheckoutURL: cfg.G2Pay.CheckoutURL,
		MerchantKey: cfg.G2Pay.MerchantKey,
		Password:    cfg.G2Pay.Password,
		BearerToken: cfg.G2Pay.BearerToken,
	}, log)

	// Инициализируем Kafka Producer
	var producer kafka.Producer
	producer, err = kafka.NewKafkaProducer(cfg.Kafka.Brokers, log)
	if err != nil {
		log.Warnw("Failed to initialize Kafka producer, continuing without event publishing", "error", err)
		producer = kafka.NoOpProducer{}
	} else {
		log.Infow("Kafka producer initialized")
		defer func() {
			if err := producer.Close(); err != nil {
				log.Errorw("Error closing Kafka producer", "error", err)
			}
		}()
	}

	// Инициализируем метрики
	registry := prometheus.NewRegistry()
	paymentMetrics := metrics.NewPaymentMetrics(registry, log)

	systemMetrics := metrics.NewSystemMetrics(registry, log)
	systemMetrics.StartRecording(15 * time.Second)
	defer systemMetrics.Stop()

	// Инициализируем service layer
	resolver := pricing.NewResolver(log)
	checkoutService := service.NewCheckoutService(
		cfg.App.BaseURL, userRepo, planRepo, subscriptionRepo, resolver, gatewayClient, paymentMetrics, log,
	)
	webhookService := service.NewWebhookService(
		subscriptionRepo, planRepo, invoiceRepo, gatewayClient, producer, paymentMetrics, log,
	)

	// Инициализируем application (для HTTP)
	validator := &middleware.DefaultTokenValidator{
		Secret: []byte(cfg.Auth.JWTSecret),
	}
	application := app.NewApp(cfg, checkoutService, webhookService, registry, validator, log)

	router := gin.New()
	routes.SetupRoutes(router, application, log)

	httpServer := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Запускаем HTTP сервер в горутине
	go func() {
		log.Infow("Starting HTTP server", "port", cfg.App.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("Failed to start HTTP server", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infow("Shutdown signal received")

	// Даем 10 секунд на завершение текущих запросов
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	log.Infow("Shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	} else {
		log.Infow("HTTP server gracefully stopped")
	}

	log.Infow("Cleanup finished. Goodbye!")
}

// initLogger инициализирует новый логгер
func initLogger() *logger.Logger {
	return logger.New(logger.ParseLevel(os.Getenv("LOG_LEVEL")))
}
