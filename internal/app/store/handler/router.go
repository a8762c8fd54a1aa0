package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"devlavka/internal/app/store/config"
	"devlavka/pkg/logger"
	"devlavka/pkg/metrics"
)

// serviceName - метка сервиса для логов и метрик HTTP слоя
const serviceName = "store-api"

// SetupRoutes настраивает все маршруты приложения с использованием Gin.
// Публичная витрина и оформление заказа не требуют аутентификации,
// админские эндпоинты защищены bearer токеном.
func SetupRoutes(
	authHandler *AuthHandler,
	catalogHandler *CatalogHandler,
	orderHandler *OrderHandler,
	authMiddleware *AuthMiddleware,
	corsCfg config.CORSConfig,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsCfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Аутентификация
	auth := router.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.PATCH("/password", authHandler.ChangePassword)
		}
	}

	// Категории: /public открыт для витрины, остальное под токеном
	categories := router.Group("/categories")
	{
		categories.GET("/public", catalogHandler.GetPublicCategories)

		protected := categories.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.GET("", catalogHandler.GetAllCategories)
			protected.GET("/:id", catalogHandler.GetCategory)
			protected.POST("", catalogHandler.CreateCategory)
			protected.PATCH("/:id", catalogHandler.UpdateCategory)
			protected.DELETE("/:id", catalogHandler.DeleteCategory)
		}
	}

	// Товары: /public открыт для витрины, остальное под токеном
	products := router.Group("/products")
	{
		products.GET("/public", catalogHandler.GetPublicProducts)
		products.GET("/public/:id", catalogHandler.GetPublicProduct)

		protected := products.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.GET("", catalogHandler.GetAllProducts)
			protected.GET("/:id", catalogHandler.GetProduct)
			protected.POST("", catalogHandler.CreateProduct)
			protected.PATCH("/:id", catalogHandler.UpdateProduct)
			protected.PUT("/:id", catalogHandler.UpdateProduct)
			protected.DELETE("/:id", catalogHandler.DeleteProduct)
		}
	}

	// Заказы: оформление публичное, управление под токеном
	orders := router.Group("/orders")
	{
		orders.POST("", orderHandler.CreateOrder)

		protected := orders.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.GET("", orderHandler.GetAllOrders)
			protected.GET("/:id", orderHandler.GetOrder)
			protected.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
			protected.DELETE("/:id", orderHandler.DeleteOrder)
		}
	}

	return router
}
