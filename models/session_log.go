package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionLog records one span of browsing activity, identified by an opaque
// token independent of login state. A session is live while EndTime is unset
// and its last activity falls inside the inactivity window.
type SessionLog struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	SessionID    string     `json:"sessionId" gorm:"type:varchar(64);not null;index"`
	UserID       *uuid.UUID `json:"user,omitempty" gorm:"type:uuid;index"`
	IP           string     `json:"ip" gorm:"type:varchar(64)"`
	Device       string     `json:"device" gorm:"type:text"` // raw user-agent string
	StartTime    time.Time  `json:"startTime" gorm:"not null;index"`
	EndTime      *time.Time `json:"endTime,omitempty" gorm:"index"`
	LastActivity *time.Time `json:"lastActivity,omitempty" gorm:"index"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"autoCreateTime"`
}

func (SessionLog) TableName() string {
	return "session_logs"
}

func (s *SessionLog) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.Must(uuid.NewV7())
	}
	if s.SessionID == "" {
		return gorm.ErrInvalidData
	}
	return nil
}

// IsOpen reports whether the session has not been closed yet.
func (s *SessionLog) IsOpen() bool {
	return s.EndTime == nil
}

// EffectiveLastActivity is the liveness reference point: the stored
// last-activity timestamp, falling back to the start time.
func (s *SessionLog) EffectiveLastActivity() time.Time {
	if s.LastActivity != nil {
		return *s.LastActivity
	}
	return s.StartTime
}
