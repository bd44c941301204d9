package app

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vitorsdevstuff/file-energy/internal/config"
	"github.com/vitorsdevstuff/file-energy/internal/http/handlers"
	"github.com/vitorsdevstuff/file-energy/internal/middleware"
	"github.com/vitorsdevstuff/file-energy/internal/service"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
)

// App представляет собой контейнер для всех компонентов приложения
type App struct {
	Config           *config.Config
	CheckoutHandler  *handlers.CheckoutHandler
	WebhookHandler   *handlers.WebhookHandler
	AuthMiddleware   *middleware.JWTMiddleware
	LoggerMiddleware gin.HandlerFunc
	Registry         *prometheus.Registry
	Logger           *logger.Logger
}

// NewApp создает и инициализирует новый экземпляр приложения
func NewApp(
	cfg *config.Config,
	checkoutService service.CheckoutService,
	webhookService service.WebhookService,
	registry *prometheus.Registry,
	validator middleware.TokenValidator,
	log *logger.Logger,
) *App {
	// Инициализируем обработчики HTTP
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, log)
	webhookHandler := handlers.NewWebhookHandler(webhookService, cfg.App.BaseURL, log)

	// Инициализируем middleware аутентификации
	authMiddleware := middleware.NewJWTMiddleware(validator, log)

	// Инициализируем middleware логирования
	loggerMiddleware := middleware.RequestLogger(log)

	return &App{
		Config:           cfg,
		CheckoutHandler:  checkoutHandler,
		WebhookHandler:   webhookHandler,
		AuthMiddleware:   authMiddleware,
		LoggerMiddleware: loggerMiddleware,
		Registry:         registry,
		Logger:           log,
	}
}
