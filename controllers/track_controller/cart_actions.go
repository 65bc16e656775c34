package track_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/models"
	"github.com/GOALLINNOOUT/backend/services"
)

type recordCartActionRequest struct {
	SessionID string `json:"sessionId"`
	ProductID string `json:"productId" binding:"required"`
	Action    string `json:"action" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// RecordCartAction godoc
// @Summary Record a cart mutation
// @Description Logs an add / remove / update against the visitor's session. Requires an open session; closed or unknown sessions get status 440
// @Tags Tracking
// @Accept json
// @Produce json
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 440 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /cart-actions [post]
func RecordCartAction(c *gin.Context) {
	log.Printf("[track.cart-action] start")

	var req recordCartActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Product ID and action are required"))
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	sessionID, ok := requireOpenSession(c, req.SessionID)
	if !ok {
		return
	}

	action := models.CartActionLog{
		SessionID: sessionID,
		ProductID: productID,
		Action:    req.Action,
		Quantity:  req.Quantity,
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := config.ShopGorm.WithContext(ctx).Create(&action).Error; err != nil {
		if errors.Is(err, models.ErrInvalidAction) || errors.Is(err, models.ErrMissingAction) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
			return
		}
		log.Printf("[track.cart-action] ERROR create session=%s err=%v", sessionID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to record cart action"))
		return
	}

	if err := services.GetSessionService().Touch(ctx, sessionID); err != nil {
		log.Printf("[track.cart-action] failed to refresh session %s: %v", sessionID, err)
	}

	log.Printf("[track.cart-action] respond 201 session=%s action=%s product=%s", sessionID, req.Action, req.ProductID)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Cart action recorded", nil))
}
