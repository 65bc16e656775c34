package order_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/middleware"
	"github.com/GOALLINNOOUT/backend/models"
	"github.com/GOALLINNOOUT/backend/services"
)

// CreateOrder godoc
// @Summary Create an order
// @Description Records a completed checkout: freezes the cart and customer snapshot, decrements stock and links the originating session
// @Tags Orders
// @Accept json
// @Produce json
// @Success 201 {object} models.ApiResponse{data=models.Order}
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /orders [post]
func CreateOrder(c *gin.Context) {
	log.Printf("[shop.order-create] start")

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order payload"))
		return
	}

	customer := req.Customer
	userID, authed := middleware.GetUserUUIDFromContext(c)
	if authed && customer.UserID == nil {
		idStr := userID.String()
		customer.UserID = &idStr
	}

	sessionID := req.SessionID
	if sessionID == nil {
		if resolved := middleware.ResolveSessionID(c); resolved != "" {
			sessionID = &resolved
		}
	}

	order := models.Order{
		Customer:    datatypes.NewJSONType(customer),
		Cart:        datatypes.NewJSONSlice(req.Cart),
		PaystackRef: req.PaystackRef,
		Amount:      req.Amount,
		DeliveryFee: req.DeliveryFee,
		GrandTotal:  req.GrandTotal,
		Status:      models.OrderStatusPaid,
		SessionID:   sessionID,
		Campaign:    req.Campaign,
	}
	if authed {
		order.UserID = &userID
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	err := config.ShopGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Stock is decremented with a floor guard so two concurrent
		// checkouts cannot oversell the last unit.
		for _, item := range req.Cart {
			result := tx.Model(&models.Perfume{}).
				Where("id = ? AND stock >= ?", item.ID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrCheckConstraintViolated
			}
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		if err == gorm.ErrCheckConstraintViolated {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "One or more items are out of stock"))
			return
		}
		log.Printf("[shop.order-create] ERROR err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create order"))
		return
	}

	if authed {
		services.LogUserAction(c, userID, "order")
	}

	log.Printf("[shop.order-create] respond 201 id=%s ref=%s", order.ID, order.PaystackRef)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Order created successfully", order))
}
