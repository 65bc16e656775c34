package analytics_controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GOALLINNOOUT/backend/models"
)

func TestComputeProductPerformance(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-01", "2024-01-31")
	noon := mustDay(t, "2024-01-10").Add(12 * time.Hour)

	bestseller := models.Perfume{Name: "Amber Noir", Description: "d", Price: 100, Stock: 20, Views: 50}
	slow := models.Perfume{Name: "Citrus Veil", Description: "d", Price: 80, Stock: 3, Views: 200}
	unsold := models.Perfume{Name: "Cedar Line", Description: "d", Price: 60, Stock: 10, Views: 500}
	for _, p := range []*models.Perfume{&bestseller, &slow, &unsold} {
		require.NoError(t, db.Create(p).Error)
	}

	createOrder(t, db, orderSpec{
		email: "a@example.com", status: models.OrderStatusPaid,
		total: 380, created: noon,
		cart: []models.OrderCartItem{
			{ID: bestseller.ID.String(), Name: bestseller.Name, Price: 100, Quantity: 3},
			{ID: slow.ID.String(), Name: slow.Name, Price: 80, Quantity: 1},
		},
	})
	createOrder(t, db, orderSpec{
		email: "b@example.com", status: models.OrderStatusDelivered,
		total: 200, created: noon.Add(time.Hour),
		cart: []models.OrderCartItem{
			{ID: bestseller.ID.String(), Name: bestseller.Name, Price: 100, Quantity: 2},
		},
	})
	// Cancelled orders don't count as sales
	createOrder(t, db, orderSpec{
		email: "c@example.com", status: models.OrderStatusCancelled,
		total: 800, created: noon.Add(2 * time.Hour),
		cart: []models.OrderCartItem{
			{ID: slow.ID.String(), Name: slow.Name, Price: 80, Quantity: 10},
		},
	})

	got, err := ComputeProductPerformance(context.Background(), db, rng)
	require.NoError(t, err)

	require.Equal(t, "Amber Noir", got.TopSelling[0].Name)
	require.Equal(t, 5, got.TopSelling[0].Quantity)
	require.InDelta(t, 500.0, got.TopSelling[0].Revenue, 0.001)
	require.NotNil(t, got.TopSelling[0].Stock)

	require.Equal(t, "Citrus Veil", got.LeastPerforming[0].Name)

	require.Equal(t, "Cedar Line", got.MostViewed[0].Name, "catalog views, not sales")

	// Conversion: bestseller 5 purchases / 50 views = 10%
	rates := make(map[string]*float64)
	for _, conv := range got.ConversionRates {
		rates[conv.Name] = conv.ConversionRate
	}
	require.NotNil(t, rates["Amber Noir"])
	require.InDelta(t, 10.0, *rates["Amber Noir"], 0.001)
	require.NotNil(t, rates["Cedar Line"])
	require.Zero(t, *rates["Cedar Line"])

	// Low stock alert at the threshold
	require.Len(t, got.StockAlerts, 1)
	require.Equal(t, "Citrus Veil", got.StockAlerts[0].Name)

	require.Len(t, got.StagnantProducts, 1)
	require.Equal(t, "Cedar Line", got.StagnantProducts[0].Name)
}

func TestComputeProductPerformanceDelistedProductKeepsSnapshot(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-01", "2024-01-31")
	noon := mustDay(t, "2024-01-10").Add(12 * time.Hour)

	ghost := models.Perfume{Name: "Gone", Description: "d", Price: 40, Stock: 1}
	require.NoError(t, db.Create(&ghost).Error)

	createOrder(t, db, orderSpec{
		email: "a@example.com", status: models.OrderStatusPaid,
		total: 40, created: noon,
		cart: []models.OrderCartItem{
			{ID: ghost.ID.String(), Name: "Gone", Price: 40, Quantity: 1},
		},
	})
	require.NoError(t, db.Delete(&models.Perfume{}, "id = ?", ghost.ID).Error)

	got, err := ComputeProductPerformance(context.Background(), db, rng)
	require.NoError(t, err)

	require.Len(t, got.TopSelling, 1)
	require.Equal(t, "Gone", got.TopSelling[0].Name, "order line keeps the snapshot name")
	require.Nil(t, got.TopSelling[0].Stock, "no live stock for a delisted product")
}
