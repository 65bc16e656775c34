package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/GOALLINNOOUT/backend/controllers/cms/order_controller"
)

func SetupOrderRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")

	orders.GET("", order_controller.GetOrders)
	orders.PUT("/:id/status", order_controller.UpdateOrderStatus)
}
