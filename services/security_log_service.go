package services

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/utils"
)

// SecurityLogEntry is one audit-trail record.
type SecurityLogEntry struct {
	AdminID *uuid.UUID
	UserID  *uuid.UUID
	Action  string
	IP      string
	Device  string // composite signature, see utils.DeviceSignature
}

// WriteSecurityLog appends an audit record via the raw pgx pool.
func WriteSecurityLog(ctx context.Context, entry SecurityLogEntry) error {
	query := `
		INSERT INTO security_logs (
			id, admin_id, user_id, action, ip, device, timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var adminID, userID *string
	if entry.AdminID != nil {
		s := entry.AdminID.String()
		adminID = &s
	}
	if entry.UserID != nil {
		s := entry.UserID.String()
		userID = &s
	}

	_, err := config.ShopDB.Exec(ctx, query,
		uuid.Must(uuid.NewV7()).String(),
		adminID,
		userID,
		entry.Action,
		entry.IP,
		entry.Device,
		time.Now(),
	)
	return err
}

// LogAdminAction records an admin mutation. Failures are logged and swallowed:
// the audit trail is best-effort and must never fail the triggering request.
func LogAdminAction(c *gin.Context, adminID uuid.UUID, action string) {
	entry := SecurityLogEntry{
		AdminID: &adminID,
		Action:  action,
		IP:      utils.GetClientIP(c),
		Device:  utils.DeviceSignature(c.GetHeader("User-Agent")),
	}
	if err := WriteSecurityLog(c.Request.Context(), entry); err != nil {
		log.Printf("❌ Failed to log admin action %q: %v", action, err)
		return
	}
	log.Printf("✅ Security log: %s by admin %s", action, adminID)
}

// LogUserAction records a customer-side security event (login, order, ...).
func LogUserAction(c *gin.Context, userID uuid.UUID, action string) {
	entry := SecurityLogEntry{
		UserID: &userID,
		Action: action,
		IP:     utils.GetClientIP(c),
		Device: utils.DeviceSignature(c.GetHeader("User-Agent")),
	}
	if err := WriteSecurityLog(c.Request.Context(), entry); err != nil {
		log.Printf("❌ Failed to log user action %q: %v", action, err)
		return
	}
	log.Printf("✅ Security log: %s by user %s", action, userID)
}
