package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/models"
)

// startRecencyWindow is how far back StartSession looks for an existing open
// session before minting a new identifier. Duplicate start calls from a flaky
// client inside this window get the same session id back.
const startRecencyWindow = 2 * time.Minute

// SessionService tracks browsing sessions. All operations are fire-and-forget
// from the ingestion paths: callers log failures and move on.
type SessionService struct {
	db *gorm.DB
}

// NewSessionService creates a session service bound to the given store.
func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

// StartSession returns the id of an open session matching the same
// (identity, ip, device) started within the recency window, or creates a new
// session with a fresh identifier.
func (s *SessionService) StartSession(ctx context.Context, userID *uuid.UUID, ip, device string) (string, error) {
	recent := time.Now().Add(-startRecencyWindow)

	query := s.db.WithContext(ctx).
		Where("ip = ? AND device = ? AND end_time IS NULL AND start_time >= ?", ip, device, recent)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	} else {
		query = query.Where("user_id IS NULL")
	}

	var existing models.SessionLog
	err := query.First(&existing).Error
	if err == nil {
		log.Printf("[session] returning existing session %s", existing.SessionID)
		return existing.SessionID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	session := models.SessionLog{
		SessionID: uuid.NewString(),
		UserID:    userID,
		IP:        ip,
		Device:    device,
		StartTime: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return "", err
	}
	log.Printf("[session] created new session %s", session.SessionID)
	return session.SessionID, nil
}

// EndSession sets the end timestamp on the matching open session. Ending an
// already-closed or unknown session is a no-op, not an error.
func (s *SessionService) EndSession(ctx context.Context, sessionID string) error {
	result := s.db.WithContext(ctx).
		Model(&models.SessionLog{}).
		Where("session_id = ? AND end_time IS NULL", sessionID).
		Update("end_time", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		log.Printf("[session] no active session found for %s", sessionID)
	}
	return nil
}

// Touch refreshes last-activity on an existing session row. Missing rows are
// left alone; the strict ingestion endpoints treat them as expired instead.
func (s *SessionService) Touch(ctx context.Context, sessionID string) error {
	return s.db.WithContext(ctx).
		Model(&models.SessionLog{}).
		Where("session_id = ?", sessionID).
		Update("last_activity", time.Now()).Error
}

// TouchOrCreate refreshes last-activity, creating the session row when it is
// absent. Used by the passive liveness middleware, which tolerates
// out-of-order event delivery.
func (s *SessionService) TouchOrCreate(ctx context.Context, sessionID string) error {
	now := time.Now()
	result := s.db.WithContext(ctx).
		Model(&models.SessionLog{}).
		Where("session_id = ?", sessionID).
		Update("last_activity", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	session := models.SessionLog{
		SessionID:    sessionID,
		StartTime:    now,
		LastActivity: &now,
	}
	return s.db.WithContext(ctx).Create(&session).Error
}

// IsSessionOpen reports whether the session exists and has no end timestamp.
func (s *SessionService) IsSessionOpen(ctx context.Context, sessionID string) (bool, error) {
	var session models.SessionLog
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return session.IsOpen(), nil
}

// Global instance
var sessionService *SessionService

// GetSessionService returns the global session service bound to the shop DB.
func GetSessionService() *SessionService {
	if sessionService == nil {
		sessionService = NewSessionService(config.ShopGorm)
	}
	return sessionService
}
