package analytics_controller

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	live_stats_cache "github.com/GOALLINNOOUT/backend/cache"
	"github.com/GOALLINNOOUT/backend/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	live_stats_cache.Invalidate()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Perfume{},
		&models.Order{},
		&models.Review{},
		&models.SessionLog{},
		&models.PageViewLog{},
		&models.CartActionLog{},
		&models.CheckoutEventLog{},
		&models.SecurityLog{},
	))
	return db
}

func mustDay(t *testing.T, value string) time.Time {
	t.Helper()
	day, err := time.ParseInLocation("2006-01-02", value, time.Local)
	require.NoError(t, err)
	return day
}

func testRange(t *testing.T, start, end string) DateRange {
	t.Helper()
	return DateRange{
		Start: startOfDay(mustDay(t, start)),
		End:   endOfDay(mustDay(t, end)),
	}
}

func createUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	t.Helper()
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		Status:       "active",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

type orderSpec struct {
	email     string
	name      string
	state     string
	status    string
	total     float64
	created   time.Time
	cart      []models.OrderCartItem
	session   *string
	campaign  *string
	spend     *float64
	userID    *uuid.UUID
	delivered *time.Time
}

func createOrder(t *testing.T, db *gorm.DB, spec orderSpec) models.Order {
	t.Helper()
	if spec.name == "" {
		spec.name = "Customer"
	}
	order := models.Order{
		Customer: datatypes.NewJSONType(models.OrderCustomer{
			Name:    spec.name,
			Email:   spec.email,
			Phone:   "0800",
			Address: "12 Main St",
			State:   spec.state,
			Lga:     "Central",
		}),
		Cart:          datatypes.NewJSONSlice(spec.cart),
		PaystackRef:   "ref-" + uuid.NewString()[:8],
		Amount:        spec.total,
		GrandTotal:    spec.total,
		Status:        spec.status,
		PaidAt:        spec.created,
		CreatedAt:     spec.created,
		UserID:        spec.userID,
		SessionID:     spec.session,
		Campaign:      spec.campaign,
		CampaignSpend: spec.spend,
		DeliveredAt:   spec.delivered,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func createPageView(t *testing.T, db *gorm.DB, sessionID, page string, ts time.Time) {
	t.Helper()
	createPageViewFull(t, db, sessionID, page, "", "ua-test", ts, nil)
}

func createPageViewFull(t *testing.T, db *gorm.DB, sessionID, page, referrer, ua string, ts time.Time, email *string) {
	t.Helper()
	view := models.PageViewLog{
		SessionID: sessionID,
		Email:     email,
		// One address per session keeps the unique-visitor trend predictable
		IP:        "10.0.0." + sessionID,
		Device:    ua,
		UserAgent: ua,
		Page:      page,
		Referrer:  referrer,
		Timestamp: ts,
	}
	require.NoError(t, db.Create(&view).Error)
}
