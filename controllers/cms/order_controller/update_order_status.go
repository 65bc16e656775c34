package order_controller

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/middleware"
	"github.com/GOALLINNOOUT/backend/models"
	"github.com/GOALLINNOOUT/backend/services"
)

// UpdateOrderStatus godoc
// @Summary Update order status (CMS)
// @Description Transitions an order to a new status and stamps the matching timestamp, which feeds fulfillment-time reporting
// @Tags Admin - Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} models.ApiResponse{data=models.Order}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/orders/{id}/status [put]
func UpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid status payload"))
		return
	}

	log.Printf("[admin.order-status] start id=%s status=%s", id, req.Status)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var order models.Order
	if err := config.ShopGorm.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
			return
		}
		log.Printf("[admin.order-status] ERROR fetch id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update order status"))
		return
	}

	now := time.Now()
	order.Status = req.Status
	switch req.Status {
	case models.OrderStatusShipped:
		if order.ShippedAt == nil {
			order.ShippedAt = &now
		}
	case models.OrderStatusDelivered:
		if order.DeliveredAt == nil {
			order.DeliveredAt = &now
		}
	case models.OrderStatusCancelled:
		if order.CancelledAt == nil {
			order.CancelledAt = &now
		}
	}

	if err := config.ShopGorm.WithContext(ctx).Save(&order).Error; err != nil {
		log.Printf("[admin.order-status] ERROR save id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update order status"))
		return
	}

	if adminID, ok := middleware.GetUserUUIDFromContext(c); ok {
		services.LogAdminAction(c, adminID, "order_status:"+req.Status+":"+id.String())
	}

	log.Printf("[admin.order-status] respond 200 id=%s status=%s", id, req.Status)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order status updated successfully", order))
}
