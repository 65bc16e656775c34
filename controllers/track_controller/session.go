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

type endSessionRequest struct {
	SessionID string `json:"sessionId"`
}

// StartSession godoc
// @Summary Start a browsing session
// @Description Returns an existing open session for the same visitor when one was started moments ago, otherwise creates a new one
// @Tags Tracking
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /session/start [post]
func StartSession(c *gin.Context) {
	log.Printf("[track.session-start] start")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var userID *uuid.UUID
	if id, ok := middleware.GetUserUUIDFromContext(c); ok {
		userID = &id
	}

	ip := utils.GetClientIP(c)
	device := c.GetHeader("User-Agent")
	if device == "" {
		device = "Unknown"
	}

	sessionID, err := services.GetSessionService().StartSession(ctx, userID, ip, device)
	if err != nil {
		log.Printf("[track.session-start] ERROR err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to start session"))
		return
	}

	c.SetCookie(middleware.SessionCookieName, sessionID, 7*24*60*60, "/", "", false, true)

	log.Printf("[track.session-start] respond 200 session=%s", sessionID)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Session started", gin.H{"sessionId": sessionID}))
}

// EndSession godoc
// @Summary End a browsing session
// @Description Marks the session closed. Ending an unknown or already-closed session is a no-op
// @Tags Tracking
// @Accept json
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /session/end [post]
func EndSession(c *gin.Context) {
	log.Printf("[track.session-end] start")

	var req endSessionRequest
	_ = c.ShouldBindJSON(&req)

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = middleware.ResolveSessionID(c)
	}
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Session ID is required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := services.GetSessionService().EndSession(ctx, sessionID); err != nil {
		log.Printf("[track.session-end] ERROR session=%s err=%v", sessionID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to end session"))
		return
	}

	log.Printf("[track.session-end] respond 200 session=%s", sessionID)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Session ended", nil))
}
