package track_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/middleware"
	"github.com/GOALLINNOOUT/backend/models"
	"github.com/GOALLINNOOUT/backend/services"
)

// StatusSessionExpired is returned by the strict ingestion endpoints when the
// referenced session is unknown or already closed. Clients treat it as a cue
// to start a fresh session and retry.
const StatusSessionExpired = 440

// requireOpenSession resolves the session id (explicit value, then cookie or
// header) and verifies it refers to an open session. On failure it writes the
// response and returns false.
func requireOpenSession(c *gin.Context, explicit string) (string, bool) {
	sessionID := explicit
	if sessionID == "" {
		sessionID = middleware.ResolveSessionID(c)
	}
	if sessionID == "" {
		c.JSON(StatusSessionExpired, models.ErrorResponse(c, "Session expired"))
		return "", false
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()
	open, err := services.GetSessionService().IsSessionOpen(ctx, sessionID)
	if err != nil {
		log.Printf("[track] ERROR session lookup session=%s err=%v", sessionID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to verify session"))
		return "", false
	}
	if !open {
		c.JSON(StatusSessionExpired, models.ErrorResponse(c, "Session expired"))
		return "", false
	}
	return sessionID, true
}
