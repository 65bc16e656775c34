package analytics_controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GOALLINNOOUT/backend/models"
)

func TestComputeSalesAnalytics(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-01", "2024-01-03")

	createOrder(t, db, orderSpec{
		email: "a@example.com", status: models.OrderStatusPaid,
		total: 100, created: mustDay(t, "2024-01-01").Add(10 * time.Hour),
	})
	createOrder(t, db, orderSpec{
		email: "b@example.com", status: models.OrderStatusCancelled,
		total: 50, created: mustDay(t, "2024-01-02").Add(11 * time.Hour),
	})
	createOrder(t, db, orderSpec{
		email: "c@example.com", status: models.OrderStatusDelivered,
		total: 200, created: mustDay(t, "2024-01-03").Add(12 * time.Hour),
	})

	got, err := ComputeSalesAnalytics(context.Background(), db, rng)
	require.NoError(t, err)

	require.Equal(t, 2, got.TotalSales, "cancelled orders are not sales")
	require.InDelta(t, 300.0, got.TotalRevenue, 0.001)
	require.InDelta(t, 150.0, got.AvgOrderValue, 0.001)
	require.InDelta(t, 33.33, got.ReturnRate, 0.001, "1 cancelled of 3 total")

	// Dense series: one point per day, zero-filled
	require.Len(t, got.RevenueTrends, 3)
	require.Equal(t, "2024-01-01", got.RevenueTrends[0].Date)
	require.InDelta(t, 100.0, got.RevenueTrends[0].Revenue, 0.001)
	require.Equal(t, 0, got.RevenueTrends[1].Orders, "cancelled order day reads as zero")
	require.InDelta(t, 200.0, got.RevenueTrends[2].Revenue, 0.001)

	require.Equal(t, "2024-01-03", got.TopDays[0].Date)
}

func TestComputeSalesAnalyticsZeroFillsEmptyRange(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-02-01", "2024-02-07")

	got, err := ComputeSalesAnalytics(context.Background(), db, rng)
	require.NoError(t, err)

	require.Zero(t, got.TotalSales)
	require.Zero(t, got.TotalRevenue)
	require.Zero(t, got.ReturnRate)
	require.Len(t, got.RevenueTrends, 7)
	for _, point := range got.RevenueTrends {
		require.Zero(t, point.Revenue)
		require.Zero(t, point.Orders)
	}
}

func TestComputeSalesAnalyticsExcludesAdmins(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-01", "2024-01-03")
	admin := createUser(t, db, "Admin", "admin@velora.shop", models.RoleAdmin)

	createOrder(t, db, orderSpec{
		email: "shopper@example.com", status: models.OrderStatusPaid,
		total: 100, created: mustDay(t, "2024-01-01").Add(9 * time.Hour),
	})
	// Admin's own test order, matched on snapshot email
	createOrder(t, db, orderSpec{
		email: admin.Email, status: models.OrderStatusPaid,
		total: 999, created: mustDay(t, "2024-01-02").Add(9 * time.Hour),
	})
	// Admin order matched on the linked user id
	createOrder(t, db, orderSpec{
		email: "alias@example.com", status: models.OrderStatusPaid,
		total: 500, created: mustDay(t, "2024-01-02").Add(10 * time.Hour),
		userID: &admin.ID,
	})

	got, err := ComputeSalesAnalytics(context.Background(), db, rng)
	require.NoError(t, err)

	require.Equal(t, 1, got.TotalSales)
	require.InDelta(t, 100.0, got.TotalRevenue, 0.001)
}

func TestComputeSalesAnalyticsOutsideRangeIgnored(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-02", "2024-01-02")

	createOrder(t, db, orderSpec{
		email: "a@example.com", status: models.OrderStatusPaid,
		total: 100, created: mustDay(t, "2024-01-01").Add(23 * time.Hour),
	})
	createOrder(t, db, orderSpec{
		email: "b@example.com", status: models.OrderStatusPaid,
		total: 40, created: mustDay(t, "2024-01-02").Add(1 * time.Hour),
	})

	got, err := ComputeSalesAnalytics(context.Background(), db, rng)
	require.NoError(t, err)
	require.Equal(t, 1, got.TotalSales)
	require.InDelta(t, 40.0, got.TotalRevenue, 0.001)
	require.Len(t, got.RevenueTrends, 1)
}
