package middleware

import (
	"log"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/models"
	"github.com/GOALLINNOOUT/backend/services"
	"github.com/GOALLINNOOUT/backend/utils"
)

// SessionCookieName carries the session token; the X-Session-Id header is
// accepted interchangeably for SPA-style clients.
const (
	SessionCookieName = "sessionId"
	SessionHeaderName = "X-Session-Id"

	sessionCookieMaxAge = 7 * 24 * 60 * 60 // seconds
)

var staticAssetPattern = regexp.MustCompile(`(?i)\.(js|css|png|jpg|jpeg|svg|webp|ico)$`)

// isPageLike reports whether a request counts as a page navigation: a safe
// read that is neither an API call nor a static asset.
func isPageLike(method, path string) bool {
	if method != "GET" {
		return false
	}
	if strings.HasPrefix(path, "/api") {
		return false
	}
	return !staticAssetPattern.MatchString(path)
}

// ResolveSessionID returns the session id from the cookie or header, if any.
func ResolveSessionID(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	return c.GetHeader(SessionHeaderName)
}

// resolveIdentity prefers an already-authenticated principal and falls back
// to decoding a bearer token. Decode failures mean an anonymous request.
func resolveIdentity(c *gin.Context) (*uuid.UUID, *string) {
	var userID *uuid.UUID
	var email *string

	if id, ok := GetUserUUIDFromContext(c); ok {
		userID = &id
	}
	if e, ok := GetUserEmailFromContext(c); ok && e != "" {
		email = &e
	}
	if email != nil {
		return userID, email
	}

	token, err := utils.ExtractTokenFromHeader(c.GetHeader("Authorization"))
	if err != nil {
		return userID, email
	}
	claims, err := utils.ValidateJWT(token)
	if err != nil {
		log.Printf("[pageViewLogger] JWT decode error: %v", err)
		return userID, email
	}
	if id, parseErr := uuid.Parse(claims.UserID); parseErr == nil {
		userID = &id
	}
	if claims.Email != "" {
		email = &claims.Email
	}
	return userID, email
}

// PageViewLogger records a page view for every page-like navigation and
// refreshes session liveness. Logging failures never abort the request.
func PageViewLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isPageLike(c.Request.Method, c.Request.URL.Path) {
			c.Next()
			return
		}

		sessionID := ResolveSessionID(c)
		if sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(SessionCookieName, sessionID, sessionCookieMaxAge, "/", "", false, true)
		}

		userID, email := resolveIdentity(c)
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
			Page:      c.Request.URL.Path,
			Referrer:  c.GetHeader("Referer"),
		}

		ctx, cancel := config.WithTimeout()
		defer cancel()
		if err := config.ShopGorm.WithContext(ctx).Create(&view).Error; err != nil {
			// Don't block request on logging error
			log.Printf("[pageViewLogger] error: %v", err)
			c.Next()
			return
		}

		if err := services.GetSessionService().Touch(ctx, sessionID); err != nil {
			log.Printf("[pageViewLogger] failed to refresh session %s: %v", sessionID, err)
		}

		c.Next()
	}
}
