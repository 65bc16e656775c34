package services

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/models"
)

const (
	// DefaultInactivityWindow is how long a session may stay quiet before the
	// sweeper closes it.
	DefaultInactivityWindow = 10 * time.Minute

	// DefaultSweepInterval is how often the sweeper runs.
	DefaultSweepInterval = 5 * time.Minute
)

// SweeperService closes stale sessions the ingestion path missed, keeping
// live-visitor counts accurate without per-request cost. Sweeps are idempotent
// and safe to overlap with concurrent ingestion: closing is guarded on
// end_time IS NULL and timestamps only move forward.
type SweeperService struct {
	db         *gorm.DB
	inactivity time.Duration
}

func NewSweeperService(db *gorm.DB, inactivity time.Duration) *SweeperService {
	if inactivity <= 0 {
		inactivity = DefaultInactivityWindow
	}
	return &SweeperService{db: db, inactivity: inactivity}
}

// Sweep closes every open session whose effective last activity is older than
// the inactivity window. Effective last activity is the latest of the stored
// last-activity timestamp, the newest page view for the session, and the start
// time. Returns the number of sessions closed.
func (s *SweeperService) Sweep(ctx context.Context) (int, error) {
	var open []models.SessionLog
	if err := s.db.WithContext(ctx).
		Where("end_time IS NULL").
		Find(&open).Error; err != nil {
		return 0, err
	}
	if len(open) == 0 {
		return 0, nil
	}

	sessionIDs := make([]string, 0, len(open))
	for _, session := range open {
		sessionIDs = append(sessionIDs, session.SessionID)
	}

	// Newest page view per open session. Fetched as plain rows and reduced
	// here: aggregate aliases over timestamp columns don't scan uniformly
	// across dialects.
	var views []models.PageViewLog
	if err := s.db.WithContext(ctx).
		Select("session_id", "timestamp").
		Where("session_id IN ?", sessionIDs).
		Find(&views).Error; err != nil {
		return 0, err
	}
	lastViewBySession := make(map[string]time.Time, len(open))
	for _, v := range views {
		if v.Timestamp.After(lastViewBySession[v.SessionID]) {
			lastViewBySession[v.SessionID] = v.Timestamp
		}
	}

	cutoff := time.Now().Add(-s.inactivity)
	closed := 0
	for _, session := range open {
		if session.StartTime.IsZero() {
			log.Printf("[sweeper] anomaly: session %s has no start time, skipping", session.SessionID)
			continue
		}

		effective := session.EffectiveLastActivity()
		if viewTS, ok := lastViewBySession[session.SessionID]; ok && viewTS.After(effective) {
			effective = viewTS
		}
		if !effective.Before(cutoff) {
			continue
		}

		updates := map[string]interface{}{"end_time": time.Now()}
		if session.LastActivity == nil {
			updates["last_activity"] = effective
		}
		result := s.db.WithContext(ctx).
			Model(&models.SessionLog{}).
			Where("id = ? AND end_time IS NULL", session.ID).
			Updates(updates)
		if result.Error != nil {
			log.Printf("[sweeper] failed to close session %s: %v", session.SessionID, result.Error)
			continue
		}
		closed += int(result.RowsAffected)
	}

	if closed > 0 {
		log.Printf("[sweeper] marked %d sessions as ended (inactive > %s)", closed, s.inactivity)
	}
	return closed, nil
}

// Run sweeps immediately, then on every tick until the context is cancelled.
func (s *SweeperService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	sweep := func() {
		sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if _, err := s.Sweep(sweepCtx); err != nil {
			log.Printf("[sweeper] error: %v", err)
		}
	}

	sweep()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("[sweeper] stopped")
			return
		case <-ticker.C:
			sweep()
		}
	}
}

// Global instance
var sweeperService *SweeperService

// GetSweeperService returns the global sweeper bound to the shop DB.
func GetSweeperService() *SweeperService {
	if sweeperService == nil {
		sweeperService = NewSweeperService(config.ShopGorm, DefaultInactivityWindow)
	}
	return sweeperService
}
