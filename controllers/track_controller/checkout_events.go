package track_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/middleware"
	"github.com/GOALLINNOOUT/backend/models"
	"github.com/GOALLINNOOUT/backend/services"
)

type recordCheckoutEventRequest struct {
	SessionID string `json:"sessionId"`
}

// RecordCheckoutEvent godoc
// @Summary Record a checkout arrival
// @Description Marks that the visitor's session reached the checkout step. Requires an open session; closed or unknown sessions get status 440
// @Tags Tracking
// @Accept json
// @Produce json
// @Success 201 {object} models.ApiResponse
// @Failure 440 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /checkout-events [post]
func RecordCheckoutEvent(c *gin.Context) {
	log.Printf("[track.checkout-event] start")

	var req recordCheckoutEventRequest
	_ = c.ShouldBindJSON(&req)

	sessionID, ok := requireOpenSession(c, req.SessionID)
	if !ok {
		return
	}

	var userID *uuid.UUID
	if id, idOK := middleware.GetUserUUIDFromContext(c); idOK {
		userID = &id
	}

	event := models.CheckoutEventLog{
		SessionID: sessionID,
		UserID:    userID,
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := config.ShopGorm.WithContext(ctx).Create(&event).Error; err != nil {
		log.Printf("[track.checkout-event] ERROR create session=%s err=%v", sessionID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to record checkout event"))
		return
	}

	if err := services.GetSessionService().Touch(ctx, sessionID); err != nil {
		log.Printf("[track.checkout-event] failed to refresh session %s: %v", sessionID, err)
	}

	log.Printf("[track.checkout-event] respond 201 session=%s", sessionID)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Checkout event recorded", nil))
}
