package ecommerce_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/GOALLINNOOUT/backend/controllers/ecommerce/order_controller"
	"github.com/GOALLINNOOUT/backend/controllers/ecommerce/perfume_controller"
	"github.com/GOALLINNOOUT/backend/controllers/ecommerce/review_controller"
	"github.com/GOALLINNOOUT/backend/middleware"
)

func SetupStorefrontRoutes(router *gin.RouterGroup) {
	// Storefront routes (public, no auth required)
	perfumes := router.Group("/perfumes")
	{
		perfumes.GET("", perfume_controller.GetPerfumes)
		perfumes.GET("/:id", perfume_controller.GetPerfumeByID)
		perfumes.GET("/:id/reviews", review_controller.GetReviews)
	}

	orders := router.Group("/orders")
	{
		orders.POST("", middleware.OptionalAuth(), order_controller.CreateOrder)
		orders.GET("/mine", middleware.AuthMiddleware(), order_controller.GetMyOrders)
	}

	router.POST("/reviews", middleware.AuthMiddleware(), review_controller.CreateReview)
}
