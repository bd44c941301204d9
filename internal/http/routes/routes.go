package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitorsdevstuff/file-energy/internal/app"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
)

// SetupRoutes настраивает все маршруты API для Gin роутера
func SetupRoutes(router *gin.Engine, app *app.App, log *logger.Logger) {
	// Промежуточное ПО для всех запросов
	router.Use(app.LoggerMiddleware)
	router.Use(gin.Recovery())

	// Здоровье сервиса
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Метрики Prometheus
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	{
		// Публичные маршруты (без аутентификации)
		// Вебхуки шлюза: POST — асинхронные уведомления,
		// GET — синхронный возврат браузера со страницы оплаты
		api.POST("/webhooks/payment", app.WebhookHandler.HandlePaymentWebhook)
		api.GET("/webhooks/payment", app.WebhookHandler.HandlePaymentReturn)

		// Защищенные маршруты (требуют аутентификации)
		auth := api.Group("")
		auth.Use(app.AuthMiddleware.RequireAuth())

		// Оформление подписки
		auth.POST("/checkout", app.CheckoutHandler.CreateCheckout)
	}

	log.Infow("API routes successfully configured")
}
