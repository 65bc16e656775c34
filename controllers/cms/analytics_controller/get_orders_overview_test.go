package analytics_controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GOALLINNOOUT/backend/models"
)

func TestComputeOrdersOverview(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-01", "2024-01-05")

	// Delivered 2 days after payment
	paid1 := mustDay(t, "2024-01-01").Add(10 * time.Hour)
	delivered1 := paid1.Add(48 * time.Hour)
	createOrder(t, db, orderSpec{
		email: "a@example.com", status: models.OrderStatusDelivered,
		total: 100, created: paid1, delivered: &delivered1,
	})

	// Delivered 4 days after payment
	paid2 := mustDay(t, "2024-01-02").Add(10 * time.Hour)
	delivered2 := paid2.Add(96 * time.Hour)
	createOrder(t, db, orderSpec{
		email: "b@example.com", status: models.OrderStatusDelivered,
		total: 50, created: paid2, delivered: &delivered2,
	})

	createOrder(t, db, orderSpec{
		email: "c@example.com", status: models.OrderStatusCancelled,
		total: 70, created: mustDay(t, "2024-01-03").Add(10 * time.Hour),
	})
	createOrder(t, db, orderSpec{
		email: "d@example.com", status: models.OrderStatusReturned,
		total: 30, created: mustDay(t, "2024-01-03").Add(11 * time.Hour),
	})

	got, err := ComputeOrdersOverview(context.Background(), db, rng)
	require.NoError(t, err)

	require.Len(t, got.OrderTrends, 5)
	require.Equal(t, 2, got.OrderTrends[2].Orders)
	require.Equal(t, 0, got.OrderTrends[4].Orders)

	require.InDelta(t, 3.0, got.AvgFulfillmentTime, 0.001, "(2 + 4) / 2 days")
	require.EqualValues(t, 1, got.CancelledCount)
	require.EqualValues(t, 1, got.ReturnedCount)

	byStatus := make(map[string]int)
	for _, s := range got.StatusBreakdown {
		byStatus[s.Status] = s.Count
	}
	require.Equal(t, 2, byStatus[models.OrderStatusDelivered])
	require.Equal(t, 1, byStatus[models.OrderStatusCancelled])
	require.Equal(t, 1, byStatus[models.OrderStatusReturned])
}
