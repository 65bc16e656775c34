package middleware

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/services"
)

// UpdateLastActivity refreshes session liveness on every request that carries
// a session id, so API-only traffic (SPA XHR calls) keeps its session alive
// even though the page-view logger never sees it. Upserts the session row to
// tolerate out-of-order event delivery; never blocks the request.
func UpdateLastActivity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if staticAssetPattern.MatchString(c.Request.URL.Path) {
			c.Next()
			return
		}

		sessionID := ResolveSessionID(c)
		if sessionID == "" {
			c.Next()
			return
		}

		ctx, cancel := config.WithTimeout()
		defer cancel()
		if err := services.GetSessionService().TouchOrCreate(ctx, sessionID); err != nil {
			// Don't block request on logging error
			log.Printf("[updateLastActivity] error for session %s: %v", sessionID, err)
		}

		c.Next()
	}
}
