package services

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/GOALLINNOOUT/backend/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.SessionLog{},
		&models.PageViewLog{},
		&models.CartActionLog{},
		&models.CheckoutEventLog{},
		&models.SecurityLog{},
	))
	return db
}

func TestStartSessionReusesRecentOpenSession(t *testing.T) {
	db := openTestDB(t)
	svc := NewSessionService(db)
	ctx := context.Background()

	first, err := svc.StartSession(ctx, nil, "1.2.3.4", "ua-a")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := svc.StartSession(ctx, nil, "1.2.3.4", "ua-a")
	require.NoError(t, err)
	require.Equal(t, first, second, "duplicate start inside the recency window must return the same session")

	var count int64
	require.NoError(t, db.Model(&models.SessionLog{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestStartSessionDistinguishesVisitors(t *testing.T) {
	db := openTestDB(t)
	svc := NewSessionService(db)
	ctx := context.Background()

	anon, err := svc.StartSession(ctx, nil, "1.2.3.4", "ua-a")
	require.NoError(t, err)

	otherIP, err := svc.StartSession(ctx, nil, "5.6.7.8", "ua-a")
	require.NoError(t, err)
	require.NotEqual(t, anon, otherIP)

	userID := uuid.New()
	signedIn, err := svc.StartSession(ctx, &userID, "1.2.3.4", "ua-a")
	require.NoError(t, err)
	require.NotEqual(t, anon, signedIn, "anonymous session must not be handed to a signed-in visitor")
}

func TestStartSessionIgnoresStaleOpenSession(t *testing.T) {
	db := openTestDB(t)
	svc := NewSessionService(db)
	ctx := context.Background()

	stale := models.SessionLog{
		SessionID: "stale-session",
		IP:        "1.2.3.4",
		Device:    "ua-a",
		StartTime: time.Now().Add(-3 * time.Minute),
	}
	require.NoError(t, db.Create(&stale).Error)

	fresh, err := svc.StartSession(ctx, nil, "1.2.3.4", "ua-a")
	require.NoError(t, err)
	require.NotEqual(t, "stale-session", fresh, "sessions older than the recency window must not be reused")
}

func TestEndSessionIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	svc := NewSessionService(db)
	ctx := context.Background()

	id, err := svc.StartSession(ctx, nil, "1.2.3.4", "ua-a")
	require.NoError(t, err)

	require.NoError(t, svc.EndSession(ctx, id))

	var session models.SessionLog
	require.NoError(t, db.Where("session_id = ?", id).First(&session).Error)
	require.NotNil(t, session.EndTime)
	require.False(t, session.EndTime.Before(session.StartTime))
	firstEnd := *session.EndTime

	// Second end is a no-op, not an error, and keeps the original timestamp
	require.NoError(t, svc.EndSession(ctx, id))
	require.NoError(t, db.Where("session_id = ?", id).First(&session).Error)
	require.Equal(t, firstEnd.Unix(), session.EndTime.Unix())

	require.NoError(t, svc.EndSession(ctx, "never-existed"))
}

func TestTouchOnlyUpdatesExistingRows(t *testing.T) {
	db := openTestDB(t)
	svc := NewSessionService(db)
	ctx := context.Background()

	require.NoError(t, svc.Touch(ctx, "unknown-session"))

	var count int64
	require.NoError(t, db.Model(&models.SessionLog{}).Count(&count).Error)
	require.EqualValues(t, 0, count, "Touch must not create rows")
}

func TestTouchOrCreateUpsertsSession(t *testing.T) {
	db := openTestDB(t)
	svc := NewSessionService(db)
	ctx := context.Background()

	require.NoError(t, svc.TouchOrCreate(ctx, "client-minted"))

	var session models.SessionLog
	require.NoError(t, db.Where("session_id = ?", "client-minted").First(&session).Error)
	require.False(t, session.StartTime.IsZero())
	require.NotNil(t, session.LastActivity)

	before := *session.LastActivity
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, svc.TouchOrCreate(ctx, "client-minted"))

	require.NoError(t, db.Where("session_id = ?", "client-minted").First(&session).Error)
	require.True(t, session.LastActivity.After(before) || session.LastActivity.Equal(before))

	var count int64
	require.NoError(t, db.Model(&models.SessionLog{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestIsSessionOpen(t *testing.T) {
	db := openTestDB(t)
	svc := NewSessionService(db)
	ctx := context.Background()

	id, err := svc.StartSession(ctx, nil, "1.2.3.4", "ua-a")
	require.NoError(t, err)

	open, err := svc.IsSessionOpen(ctx, id)
	require.NoError(t, err)
	require.True(t, open)

	require.NoError(t, svc.EndSession(ctx, id))
	open, err = svc.IsSessionOpen(ctx, id)
	require.NoError(t, err)
	require.False(t, open)

	open, err = svc.IsSessionOpen(ctx, "never-existed")
	require.NoError(t, err)
	require.False(t, open, "unknown sessions count as closed")
}
