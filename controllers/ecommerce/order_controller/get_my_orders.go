package order_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/middleware"
	"github.com/GOALLINNOOUT/backend/models"
)

// GetMyOrders godoc
// @Summary List my orders
// @Description Returns the signed-in customer's orders, newest first. Guest orders placed with the same email are included
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=[]models.Order}
// @Failure 401 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /orders/mine [get]
func GetMyOrders(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Authentication required"))
		return
	}
	email, _ := middleware.GetUserEmailFromContext(c)

	log.Printf("[shop.my-orders] start user=%s", userID)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var orders []models.Order
	if err := config.ShopGorm.WithContext(ctx).
		Where("customer_user_id = ? OR user_id = ? OR customer_email = ?", userID, userID, email).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		log.Printf("[shop.my-orders] ERROR user=%s err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders"))
		return
	}

	log.Printf("[shop.my-orders] respond 200 user=%s orders=%d", userID, len(orders))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Orders retrieved successfully", orders))
}
