package analytics_controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GOALLINNOOUT/backend/models"
)

func TestComputeCustomerBehaviorNewVsReturning(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-01", "2024-01-31")

	lagos, abuja := "Lagos", "Abuja"
	loyal := models.User{Name: "Loyal", Email: "loyal@example.com", Role: models.RoleUser, State: &lagos}
	fresh := models.User{Name: "Fresh", Email: "fresh@example.com", Role: models.RoleUser, State: &abuja}
	for _, u := range []*models.User{&loyal, &fresh} {
		require.NoError(t, db.Create(u).Error)
	}

	// Returning: bought in December, buys again in January
	createOrder(t, db, orderSpec{
		email: "loyal@example.com", name: "Loyal", state: "Lagos", status: models.OrderStatusPaid,
		total: 120, created: mustDay(t, "2023-12-10").Add(10 * time.Hour),
	})
	createOrder(t, db, orderSpec{
		email: "loyal@example.com", name: "Loyal", state: "Lagos", status: models.OrderStatusPaid,
		total: 100, created: mustDay(t, "2024-01-05").Add(10 * time.Hour),
	})
	// New: first purchase inside the range
	createOrder(t, db, orderSpec{
		email: "fresh@example.com", name: "Fresh", state: "Abuja", status: models.OrderStatusPaid,
		total: 200, created: mustDay(t, "2024-01-10").Add(10 * time.Hour),
	})

	got, err := ComputeCustomerBehavior(context.Background(), db, rng)
	require.NoError(t, err)

	require.Equal(t, 1, got.NewCustomers)
	require.Equal(t, 1, got.ReturningCustomers)
	require.InDelta(t, 50.0, got.RetentionRate, 0.001, "1 of 2 lifetime customers reordered")

	require.Equal(t, "loyal@example.com", got.TopBuyers[0].Email, "ranked by lifetime spend, not in-range")
	require.Equal(t, "Loyal", got.TopBuyers[0].Name)
	require.InDelta(t, 220.0, got.TopBuyers[0].Spend, 0.001)

	// Lifetime value spans all time: (220 + 200) / 2 customers
	require.InDelta(t, 210.0, got.CustomerLifetimeValue, 0.001)
	require.InDelta(t, 220.0, got.TopCustomerLifetimeValue, 0.001)

	require.Len(t, got.Locations, 2)
}

func TestComputeCustomerBehaviorDeviceMixSharesSumTo100(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-01", "2024-01-03")
	noon := mustDay(t, "2024-01-02").Add(12 * time.Hour)

	phoneUser := createUser(t, db, "Phone", "phone@example.com", models.RoleUser)
	deskUser := createUser(t, db, "Desk", "desk@example.com", models.RoleUser)

	// One fingerprint from the security log composite...
	sec := models.SecurityLog{
		UserID:    &phoneUser.ID,
		Action:    "login",
		IP:        "1.2.3.4",
		Device:    "mobile | Android | Chrome",
		Timestamp: noon,
	}
	require.NoError(t, db.Create(&sec).Error)

	// ...and one from a page-view user agent
	createPageViewFull(t, db, "s1", "/",
		"", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/126.0", noon, &deskUser.Email)

	got, err := ComputeCustomerBehavior(context.Background(), db, rng)
	require.NoError(t, err)

	require.Len(t, got.Devices, 2)
	sum := 0.0
	for _, share := range got.Devices {
		sum += share.Percent
	}
	require.InDelta(t, 100.0, sum, 0.01)
}

func TestComputeCustomerBehaviorDeviceMixCountsUserOncePerCategory(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-01", "2024-01-03")
	noon := mustDay(t, "2024-01-02").Add(12 * time.Hour)

	phoneUser := createUser(t, db, "Phone", "phone@example.com", models.RoleUser)
	deskUser := createUser(t, db, "Desk", "desk@example.com", models.RoleUser)

	// Two mobile views by the same user collapse into one mobile tally
	mobileUA := "Mozilla/5.0 (Linux; Android 14; Pixel 8) Mobile Chrome/126.0"
	createPageViewFull(t, db, "s1", "/", "", mobileUA, noon, &phoneUser.Email)
	createPageViewFull(t, db, "s1", "/perfumes", "", mobileUA, noon.Add(time.Minute), &phoneUser.Email)

	createPageViewFull(t, db, "s2", "/",
		"", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/126.0", noon, &deskUser.Email)

	// Anonymous browsing has no user to attribute, so it never tallies
	createPageViewFull(t, db, "s3", "/", "", mobileUA, noon, nil)

	got, err := ComputeCustomerBehavior(context.Background(), db, rng)
	require.NoError(t, err)
	require.Len(t, got.Devices, 2)

	shares := make(map[string]float64)
	for _, share := range got.Devices {
		shares[share.Type] = share.Percent
	}
	require.InDelta(t, 50.0, shares["mobile"], 0.001, "repeat events on one device count the user once")
	require.InDelta(t, 50.0, shares["desktop"], 0.001)
}

func TestComputeCustomerBehaviorEmptyRange(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-03-01", "2024-03-07")

	got, err := ComputeCustomerBehavior(context.Background(), db, rng)
	require.NoError(t, err)

	require.Zero(t, got.NewCustomers)
	require.Zero(t, got.ReturningCustomers)
	require.Zero(t, got.RetentionRate)
	require.Empty(t, got.Devices)
	require.Empty(t, got.TopBuyers)
}
