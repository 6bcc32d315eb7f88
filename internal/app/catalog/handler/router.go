package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dawnthivakar/e-com-product-catalog/pkg/logger"
	"github.com/dawnthivakar/e-com-product-catalog/pkg/metrics"
)

// SetupRoutes настраивает все маршруты Product Catalog Service
func SetupRoutes(productHandler *ProductHandler, reviewHandler *ReviewHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("product-catalog"))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "product-catalog",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	products := api.Group("/products")
	{
		// Чтение каталога публичное
		products.GET("", productHandler.GetAllProducts)
		products.GET("/:id", productHandler.GetProduct)

		// Создание и обновление для manager и admin, удаление только для admin
		products.POST("", authMiddleware.Authenticate(), authMiddleware.RequireRole("manager", "admin"), productHandler.CreateProduct)
		products.PUT("/:id", authMiddleware.Authenticate(), authMiddleware.RequireRole("manager", "admin"), productHandler.UpdateProduct)
		products.DELETE("/:id", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"), productHandler.DeleteProduct)
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("/product/:product_id", reviewHandler.GetReviewsByProduct)
		reviews.GET("/user/:user_id", reviewHandler.GetUserReviews)

		// Добавлять отзывы может любой аутентифицированный пользователь
		reviews.POST("", authMiddleware.Authenticate(), reviewHandler.AddReview)
	}

	return router
}
