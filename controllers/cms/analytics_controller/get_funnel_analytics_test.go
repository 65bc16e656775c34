package analytics_controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GOALLINNOOUT/backend/models"
)

func createCartAdd(t *testing.T, db *gorm.DB, sessionID string, product models.Perfume, ts time.Time) {
	t.Helper()
	action := models.CartActionLog{
		SessionID: sessionID,
		ProductID: product.ID,
		Action:    models.CartActionAdd,
		Quantity:  1,
		Timestamp: ts,
	}
	require.NoError(t, db.Create(&action).Error)
}

func TestComputeFunnelAnalyticsStagesAreIndependent(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-01", "2024-01-03")
	noon := mustDay(t, "2024-01-02").Add(12 * time.Hour)

	perfume := models.Perfume{Name: "Amber Noir", Description: "d", Price: 10, Stock: 5}
	require.NoError(t, db.Create(&perfume).Error)

	// Three sessions browsed
	createPageView(t, db, "s1", "/perfumes", noon)
	createPageView(t, db, "s2", "/perfumes", noon)
	createPageView(t, db, "s3", "/perfumes", noon)

	// Two added to cart, one repeatedly (distinct sessions, not events)
	createCartAdd(t, db, "s1", perfume, noon)
	twoUnits := models.CartActionLog{
		SessionID: "s1", ProductID: perfume.ID, Action: models.CartActionAdd,
		Quantity: 2, Timestamp: noon.Add(time.Minute),
	}
	require.NoError(t, db.Create(&twoUnits).Error)
	createCartAdd(t, db, "s2", perfume, noon)

	// One reached checkout
	checkout := models.CheckoutEventLog{SessionID: "s1", Timestamp: noon}
	require.NoError(t, db.Create(&checkout).Error)

	// A purchase from a session with no tracked events at all still counts
	untracked := "s9"
	createOrder(t, db, orderSpec{
		email: "ghost@example.com", status: models.OrderStatusPaid,
		total: 80, created: noon, session: &untracked,
	})

	got, err := ComputeFunnelAnalytics(context.Background(), db, rng)
	require.NoError(t, err)
	require.Len(t, got.Funnel, 4)

	require.Equal(t, 3, got.Funnel[0].Count, "visited")
	require.Equal(t, 2, got.Funnel[1].Count, "added to cart")
	require.Equal(t, 1, got.Funnel[2].Count, "reached checkout")
	require.Equal(t, 1, got.Funnel[3].Count, "purchased without earlier events")

	require.Len(t, got.TopCartProducts, 1)
	require.Equal(t, "Amber Noir", got.TopCartProducts[0].Name)
	require.Equal(t, 4, got.TopCartProducts[0].Count, "cart adds weighted by quantity: 1 + 2 + 1")
}

func TestComputeFunnelAnalyticsIgnoresSessionlessOrders(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-01", "2024-01-03")
	noon := mustDay(t, "2024-01-02").Add(12 * time.Hour)

	createOrder(t, db, orderSpec{
		email: "phone@example.com", status: models.OrderStatusPaid,
		total: 60, created: noon,
	})

	got, err := ComputeFunnelAnalytics(context.Background(), db, rng)
	require.NoError(t, err)
	require.Equal(t, 0, got.Funnel[3].Count, "orders without a session cannot be attributed to the funnel")
}

func TestComputeFunnelAnalyticsDelistedProduct(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-01", "2024-01-03")
	noon := mustDay(t, "2024-01-02").Add(12 * time.Hour)

	ghost := models.Perfume{Name: "Gone", Description: "d", Price: 10, Stock: 0}
	require.NoError(t, db.Create(&ghost).Error)
	createCartAdd(t, db, "s1", ghost, noon)
	require.NoError(t, db.Delete(&models.Perfume{}, "id = ?", ghost.ID).Error)

	got, err := ComputeFunnelAnalytics(context.Background(), db, rng)
	require.NoError(t, err)
	require.Len(t, got.TopCartProducts, 1)
	require.Equal(t, "Unknown product", got.TopCartProducts[0].Name)
}
