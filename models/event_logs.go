package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Append-only analytics event logs. Each record carries a session identifier
// that should correlate to a SessionLog row, but the correlation is not
// enforced: aggregation treats orphaned events as "unknown" rather than
// erroring.

var (
	ErrMissingSessionID = errors.New("session id is required")
	ErrMissingAction    = errors.New("action is required")
	ErrInvalidAction    = errors.New("invalid cart action")
)

const (
	CartActionAdd    = "add"
	CartActionRemove = "remove"
	CartActionUpdate = "update"
)

// PageViewLog is one qualifying navigation by a session.
type PageViewLog struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	SessionID string     `json:"sessionId" gorm:"type:varchar(64);not null;index"`
	UserID    *uuid.UUID `json:"user,omitempty" gorm:"type:uuid;index"`
	Email     *string    `json:"email,omitempty" gorm:"type:varchar(255);index"` // denormalized best-effort from bearer token
	IP        string     `json:"ip" gorm:"type:varchar(64);index"`
	Device    string     `json:"device" gorm:"type:text"`
	UserAgent string     `json:"userAgent" gorm:"type:text"`
	Page      string     `json:"page" gorm:"type:varchar(512);not null;index"`
	Referrer  string     `json:"referrer" gorm:"type:varchar(1024);default:''"`
	Timestamp time.Time  `json:"timestamp" gorm:"index"`
}

func (PageViewLog) TableName() string {
	return "page_view_logs"
}

func (p *PageViewLog) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	if p.SessionID == "" {
		return ErrMissingSessionID
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now()
	}
	return nil
}

// CartActionLog is one cart mutation (add / remove / update).
type CartActionLog struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SessionID string    `json:"sessionId" gorm:"type:varchar(64);not null;index"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	Action    string    `json:"action" gorm:"type:varchar(10);not null"`
	Quantity  int       `json:"quantity" gorm:"default:1"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}

func (CartActionLog) TableName() string {
	return "cart_action_logs"
}

func (c *CartActionLog) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV7())
	}
	if c.SessionID == "" {
		return ErrMissingSessionID
	}
	switch c.Action {
	case CartActionAdd, CartActionRemove, CartActionUpdate:
	case "":
		return ErrMissingAction
	default:
		return ErrInvalidAction
	}
	if c.Quantity == 0 {
		c.Quantity = 1
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}
	return nil
}

// CheckoutEventLog marks one arrival at the checkout step. It is a funnel
// marker, not a completed purchase.
type CheckoutEventLog struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	SessionID string     `json:"sessionId" gorm:"type:varchar(64);not null;index"`
	UserID    *uuid.UUID `json:"user,omitempty" gorm:"type:uuid;index"`
	Timestamp time.Time  `json:"timestamp" gorm:"index"`
}

func (CheckoutEventLog) TableName() string {
	return "checkout_event_logs"
}

func (c *CheckoutEventLog) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV7())
	}
	if c.SessionID == "" {
		return ErrMissingSessionID
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}
	return nil
}

// SecurityLog is the append-only audit trail of sensitive actions (login,
// logout, order, admin mutations). Device carries the composite signature
// "deviceType | OS version | browser version", which doubles as a secondary
// device-fingerprint source for analytics.
type SecurityLog struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	AdminID   *uuid.UUID `json:"admin,omitempty" gorm:"type:uuid;index"`
	UserID    *uuid.UUID `json:"user,omitempty" gorm:"type:uuid;index"`
	Action    string     `json:"action" gorm:"type:varchar(255);not null"`
	IP        string     `json:"ip" gorm:"type:varchar(64)"`
	Device    string     `json:"device" gorm:"type:text;index"`
	Timestamp time.Time  `json:"timestamp" gorm:"index"`
}

func (SecurityLog) TableName() string {
	return "security_logs"
}

func (s *SecurityLog) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.Must(uuid.NewV7())
	}
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now()
	}
	return nil
}
