package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ecomers/pkg/logger"
	"ecomers/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(
	catalogHandler *CatalogHandler,
	basketHandler *BasketHandler,
	orderHandler *OrderHandler,
	authHandler *AuthHandler,
	reviewHandler *ReviewHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов (ELK Stack)
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("storefront"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "storefront",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Аутентификация (публичные эндпоинты)
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	// Каталог: просмотр доступен без аутентификации
	catalog := router.Group("/catalog")
	{
		catalog.GET("/goods", catalogHandler.ListGoods)
		catalog.GET("/goods/:goods_id", catalogHandler.GetGoods)
		catalog.GET("/categories", catalogHandler.GetAllCategories)
		catalog.GET("/brands", catalogHandler.GetAllBrands)
	}

	// Отзывы: чтение публичное, создание только для авторизованных
	reviews := router.Group("/catalog/goods/:goods_id/reviews")
	{
		reviews.GET("", reviewHandler.ListReviews)
		reviews.POST("", authMiddleware.Authenticate(), reviewHandler.CreateReview)
	}

	// Корзина: просмотр доступен анонимно, мутации требуют аутентификации
	basket := router.Group("/basket")
	{
		basket.GET("", authMiddleware.OptionalAuthenticate(), basketHandler.GetBasket)

		protected := basket.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.POST("/goods/:goods_id", basketHandler.AddItem)
			protected.POST("/items/:item_id/increase", basketHandler.IncreaseItem)
			protected.POST("/items/:item_id/decrease", basketHandler.DecreaseItem)
			protected.DELETE("/items/:item_id", basketHandler.RemoveItem)
		}
	}

	// Заказы: только для авторизованных
	orders := router.Group("/orders")
	orders.Use(authMiddleware.Authenticate())
	{
		orders.POST("/checkout", orderHandler.Checkout)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:order_id", orderHandler.GetOrder)
	}

	// Админские операции над каталогом
	admin := router.Group("/admin/catalog")
	admin.Use(authMiddleware.Authenticate())
	admin.Use(authMiddleware.RequireRole("admin"))
	{
		admin.POST("/goods", catalogHandler.CreateGoods)
		admin.PUT("/goods/:id", catalogHandler.UpdateGoods)
		admin.DELETE("/goods/:id", catalogHandler.DeleteGoods)
		admin.POST("/categories", catalogHandler.CreateCategory)
		admin.PUT("/categories/:id", catalogHandler.UpdateCategory)
		admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)
		admin.POST("/brands", catalogHandler.CreateBrand)
		admin.PUT("/brands/:id", catalogHandler.UpdateBrand)
		admin.DELETE("/brands/:id", catalogHandler.DeleteBrand)
	}

	return router
}
