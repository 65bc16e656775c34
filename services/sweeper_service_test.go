package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GOALLINNOOUT/backend/models"
)

func insertOpenSession(t *testing.T, db *gorm.DB, sessionID string, start time.Time, lastActivity *time.Time) {
	t.Helper()
	session := models.SessionLog{
		SessionID:    sessionID,
		IP:           "1.2.3.4",
		Device:       "ua-test",
		StartTime:    start,
		LastActivity: lastActivity,
	}
	require.NoError(t, db.Create(&session).Error)
}

func sessionByID(t *testing.T, db *gorm.DB, sessionID string) models.SessionLog {
	t.Helper()
	var session models.SessionLog
	require.NoError(t, db.Where("session_id = ?", sessionID).First(&session).Error)
	return session
}

func TestSweepClosesOnlyInactiveSessions(t *testing.T) {
	db := openTestDB(t)
	sweeper := NewSweeperService(db, 10*time.Minute)
	now := time.Now()

	nineAgo := now.Add(-9 * time.Minute)
	elevenAgo := now.Add(-11 * time.Minute)
	insertOpenSession(t, db, "active", now.Add(-30*time.Minute), &nineAgo)
	insertOpenSession(t, db, "stale", now.Add(-30*time.Minute), &elevenAgo)

	closed, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, closed)

	require.Nil(t, sessionByID(t, db, "active").EndTime, "session active 9 minutes ago must stay open")
	require.NotNil(t, sessionByID(t, db, "stale").EndTime, "session quiet for 11 minutes must be closed")
}

func TestSweepCountsPageViewsAsActivity(t *testing.T) {
	db := openTestDB(t)
	sweeper := NewSweeperService(db, 10*time.Minute)
	now := time.Now()

	// Stored last activity is stale, but the newest of several page views
	// arrived 5 minutes ago
	fifteenAgo := now.Add(-15 * time.Minute)
	insertOpenSession(t, db, "viewing", now.Add(-30*time.Minute), &fifteenAgo)
	for _, age := range []time.Duration{25 * time.Minute, 12 * time.Minute, 5 * time.Minute} {
		view := models.PageViewLog{
			SessionID: "viewing",
			IP:        "1.2.3.4",
			Device:    "ua-test",
			Page:      "/perfumes",
			Timestamp: now.Add(-age),
		}
		require.NoError(t, db.Create(&view).Error)
	}

	closed, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, closed)
	require.Nil(t, sessionByID(t, db, "viewing").EndTime)
}

func TestSweepBackfillsLastActivity(t *testing.T) {
	db := openTestDB(t)
	sweeper := NewSweeperService(db, 10*time.Minute)
	start := time.Now().Add(-20 * time.Minute)

	insertOpenSession(t, db, "untouched", start, nil)

	closed, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, closed)

	session := sessionByID(t, db, "untouched")
	require.NotNil(t, session.EndTime)
	require.NotNil(t, session.LastActivity, "closing must backfill the missing last-activity timestamp")
	require.WithinDuration(t, start, *session.LastActivity, time.Second)
}

func TestSweepSkipsSessionsWithoutStartTime(t *testing.T) {
	db := openTestDB(t)
	sweeper := NewSweeperService(db, 10*time.Minute)

	insertOpenSession(t, db, "anomaly", time.Time{}, nil)

	closed, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, closed)
	require.Nil(t, sessionByID(t, db, "anomaly").EndTime, "rows without a start time are left for inspection")
}

func TestSweepIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	sweeper := NewSweeperService(db, 10*time.Minute)
	now := time.Now()

	elevenAgo := now.Add(-11 * time.Minute)
	insertOpenSession(t, db, "stale", now.Add(-30*time.Minute), &elevenAgo)

	closed, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, closed)

	closed, err = sweeper.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, closed, "a second sweep must not close anything new")
}
