package ecommerce_routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GOALLINNOOUT/backend/controllers/track_controller"
	"github.com/GOALLINNOOUT/backend/middleware"
)

func SetupTrackRoutes(router *gin.RouterGroup) {
	// Tracking routes (public, rate limited: they are hit by every visitor)
	limited := middleware.RateLimiter(120, time.Minute)

	session := router.Group("/session")
	{
		session.POST("/start", limited, middleware.OptionalAuth(), track_controller.StartSession)
		session.POST("/end", limited, track_controller.EndSession)
	}

	router.POST("/page-views", limited, middleware.OptionalAuth(), track_controller.RecordPageView)
	router.POST("/cart-actions", limited, track_controller.RecordCartAction)
	router.POST("/checkout-events", limited, middleware.OptionalAuth(), track_controller.RecordCheckoutEvent)
}
