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
	"github.com/GOALLINNOOUT/backend/utils"
)

type recordPageViewRequest struct {
	SessionID string `json:"sessionId"`
	Page      string `json:"page" binding:"required"`
	Referrer  string `json:"referrer"`
}

// RecordPageView godoc
// @Summary Record a page view
// @Description Explicit page-view ingestion for SPA route changes. Requires an open session; closed or unknown sessions get status 440
// @Tags Tracking
// @Accept json
// @Produce json
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 440 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /page-views [post]
func RecordPageView(c *gin.Context) {
	log.Printf("[track.page-view] start")

	var req recordPageViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Page is required"))
		return
	}

	sessionID, ok := requireOpenSession(c, req.SessionID)
	if !ok {
		return
	}

	var userID *uuid.UUID
	if id, idOK := middleware.GetUserUUIDFromContext(c); idOK {
		userID = &id
	}
	var email *string
	if e, emailOK := middleware.GetUserEmailFromContext(c); emailOK && e != "" {
		email = &e
	}

	userAgent := c.GetHeader("User-Agent")
	device := userAgent
	if device == "" {
		device = "Unknown"
	}

	view := models.PageViewLog{
		SessionID: sessionID,
		UserID:    userID,
		Email:     email,
		IP:        utils.GetClientIP(c),
		Device:    device,
		UserAgent: userAgent,
		Page:      req.Page,
		Referrer:  req.Referrer,
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := config.ShopGorm.WithContext(ctx).Create(&view).Error; err != nil {
		log.Printf("[track.page-view] ERROR create session=%s err=%v", sessionID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to record page view"))
		return
	}

	if err := services.GetSessionService().Touch(ctx, sessionID); err != nil {
		log.Printf("[track.page-view] failed to refresh session %s: %v", sessionID, err)
	}

	log.Printf("[track.page-view] respond 201 session=%s page=%s", sessionID, req.Page)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Page view recorded", nil))
}
