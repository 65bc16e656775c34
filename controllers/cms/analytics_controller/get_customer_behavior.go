package analytics_controller

import (
	"context"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/models"
	"github.com/GOALLINNOOUT/backend/utils"
)

// ComputeCustomerBehavior builds the customer dashboard: acquisition vs
// retention, spend rankings, locations, device mix and live counts. Customers
// are keyed by snapshot email so guest checkouts count too.
func ComputeCustomerBehavior(ctx context.Context, db *gorm.DB, rng DateRange) (*models.CustomerBehavior, error) {
	ex, err := fetchAdminExclusions(ctx, db)
	if err != nil {
		return nil, err
	}

	// ================================
	// Lifetime order history per customer (all statuses)
	// ================================
	type lifetimeRow struct {
		CustomerEmail string
		Orders        int
		Total         float64
	}
	var lifetimes []lifetimeRow
	if err := excludeAdminOrders(db.WithContext(ctx).
		Model(&models.Order{}).
		Select("customer_email", "COUNT(*) AS orders", "SUM(grand_total) AS total"), ex).
		Group("customer_email").
		Scan(&lifetimes).Error; err != nil {
		return nil, err
	}
	lifetimeByEmail := make(map[string]lifetimeRow, len(lifetimes))
	for _, row := range lifetimes {
		lifetimeByEmail[row.CustomerEmail] = row
	}

	// ================================
	// New vs returning: each in-range order classified by its customer's
	// entire history, not just the queried window
	// ================================
	var rangeEmails []string
	if err := excludeAdminOrders(db.WithContext(ctx).
		Model(&models.Order{}).
		Where("created_at BETWEEN ? AND ?", rng.Start, rng.End), ex).
		Pluck("customer_email", &rangeEmails).Error; err != nil {
		return nil, err
	}
	newCustomers, returningCustomers := 0, 0
	for _, email := range rangeEmails {
		if lifetimeByEmail[email].Orders > 1 {
			returningCustomers++
		} else {
			newCustomers++
		}
	}

	retained := 0
	for _, row := range lifetimes {
		if row.Orders > 1 {
			retained++
		}
	}
	retentionRate := 0.0
	if len(lifetimes) > 0 {
		retentionRate = round2(float64(retained) / float64(len(lifetimes)) * 100)
	}

	// ================================
	// Customer directory: display names and locations
	// ================================
	var customers []models.User
	if err := db.WithContext(ctx).
		Select("name", "email", "state").
		Where("role = ?", models.RoleUser).
		Find(&customers).Error; err != nil {
		return nil, err
	}
	nameByEmail := make(map[string]string, len(customers))
	locations := make(map[string]int)
	for _, u := range customers {
		nameByEmail[u.Email] = u.Name
		if u.State != nil && *u.State != "" {
			locations[*u.State]++
		}
	}
	displayName := func(email string) string {
		if name, ok := nameByEmail[email]; ok && name != "" {
			return name
		}
		return email
	}

	// ================================
	// Spend rankings by lifetime spend
	// ================================
	topBuyers := []models.BuyerSpend{}
	avgPerCustomer := []models.BuyerSpend{}
	for _, row := range lifetimes {
		entry := models.BuyerSpend{
			Email: row.CustomerEmail,
			Name:  displayName(row.CustomerEmail),
			Spend: round2(row.Total),
		}
		topBuyers = append(topBuyers, entry)
		avgPerCustomer = append(avgPerCustomer, entry)
	}
	sort.SliceStable(topBuyers, func(i, j int) bool { return topBuyers[i].Spend > topBuyers[j].Spend })
	sort.SliceStable(avgPerCustomer, func(i, j int) bool { return avgPerCustomer[i].Spend > avgPerCustomer[j].Spend })
	if len(topBuyers) > 10 {
		topBuyers = topBuyers[:10]
	}

	// ================================
	// Lifetime value
	// ================================
	clv, topCLV := 0.0, 0.0
	if len(lifetimes) > 0 {
		sum := 0.0
		for _, row := range lifetimes {
			sum += row.Total
			if row.Total > topCLV {
				topCLV = row.Total
			}
		}
		clv = sum / float64(len(lifetimes))
	}
	averageSpend := clv

	// ================================
	// Device mix
	// ================================
	devices, err := computeDeviceMix(ctx, db, rng)
	if err != nil {
		return nil, err
	}

	// ================================
	// Live counts
	// ================================
	liveVisitors, liveCarts, err := fetchLiveCounts(ctx, db, ex)
	if err != nil {
		return nil, err
	}

	// Sort locations by count desc for a stable payload
	locationCounts := []models.StateCount{}
	for state, count := range locations {
		locationCounts = append(locationCounts, models.StateCount{State: state, Count: count})
	}
	sort.SliceStable(locationCounts, func(i, j int) bool {
		if locationCounts[i].Count != locationCounts[j].Count {
			return locationCounts[i].Count > locationCounts[j].Count
		}
		return locationCounts[i].State < locationCounts[j].State
	})

	return &models.CustomerBehavior{
		NewCustomers:             newCustomers,
		ReturningCustomers:       returningCustomers,
		TopBuyers:                topBuyers,
		RetentionRate:            retentionRate,
		Locations:                locationCounts,
		Devices:                  devices,
		CustomerLifetimeValue:    round2(clv),
		TopCustomerLifetimeValue: round2(topCLV),
		AverageSpend:             round2(averageSpend),
		AverageSpendPerCustomer:  avgPerCustomer,
		LiveVisitors:             liveVisitors,
		LiveCarts:                liveCarts,
	}, nil
}

// computeDeviceMix unions device categories per user from two fingerprint
// sources: the composite signature written to the security log and the raw
// user agent on page views. A user counts at most once per category no matter
// how many events they produced in it; percentages are shares of all
// (user, category) tallies, not of users.
func computeDeviceMix(ctx context.Context, db *gorm.DB, rng DateRange) ([]models.UsageShare, error) {
	var customers []models.User
	if err := db.WithContext(ctx).
		Select("id", "email").
		Where("role = ?", models.RoleUser).
		Find(&customers).Error; err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return []models.UsageShare{}, nil
	}
	userIDs := make([]uuid.UUID, 0, len(customers))
	userByEmail := make(map[string]uuid.UUID, len(customers))
	for _, u := range customers {
		userIDs = append(userIDs, u.ID)
		userByEmail[u.Email] = u.ID
	}

	categoriesByUser := make(map[uuid.UUID]map[string]struct{})
	record := func(userID uuid.UUID, category string) {
		if category == "" {
			return
		}
		if categoriesByUser[userID] == nil {
			categoriesByUser[userID] = make(map[string]struct{})
		}
		categoriesByUser[userID][category] = struct{}{}
	}

	var secLogs []models.SecurityLog
	if err := db.WithContext(ctx).
		Select("user_id", "device").
		Where("timestamp BETWEEN ? AND ?", rng.Start, rng.End).
		Where("device <> ''").
		Where("user_id IN ?", userIDs).
		Find(&secLogs).Error; err != nil {
		return nil, err
	}
	for _, entry := range secLogs {
		if entry.UserID == nil {
			continue
		}
		record(*entry.UserID, strings.TrimSpace(strings.SplitN(entry.Device, " | ", 2)[0]))
	}

	var views []models.PageViewLog
	if err := db.WithContext(ctx).
		Select("email", "user_agent").
		Where("timestamp BETWEEN ? AND ?", rng.Start, rng.End).
		Where("email IS NOT NULL").
		Where("user_agent <> ''").
		Find(&views).Error; err != nil {
		return nil, err
	}
	for _, v := range views {
		if v.Email == nil {
			continue
		}
		userID, known := userByEmail[*v.Email]
		if !known {
			continue
		}
		record(userID, utils.ParseDeviceType(v.UserAgent))
	}

	tallies := make(map[string]int)
	for _, set := range categoriesByUser {
		for category := range set {
			tallies[category]++
		}
	}
	return sharesFromTallies(tallies), nil
}

// sharesFromTallies converts category tallies to percentage shares.
func sharesFromTallies(tallies map[string]int) []models.UsageShare {
	total := 0
	for _, n := range tallies {
		total += n
	}
	shares := []models.UsageShare{}
	if total == 0 {
		return shares
	}
	for category, n := range tallies {
		shares = append(shares, models.UsageShare{
			Type:    category,
			Percent: round2(float64(n) / float64(total) * 100),
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].Percent != shares[j].Percent {
			return shares[i].Percent > shares[j].Percent
		}
		return shares[i].Type < shares[j].Type
	})
	return shares
}

// GetCustomerBehavior godoc
// @Summary Get customer behavior
// @Description Returns acquisition vs retention, top buyers, lifetime value, locations, device mix and live visitor counts
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} models.ApiResponse{data=models.CustomerBehavior}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/analytics/customers [get]
func GetCustomerBehavior(c *gin.Context) {
	log.Printf("[admin.analytics-customers] start")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	rng := parseDateRange(c)
	behavior, err := ComputeCustomerBehavior(ctx, config.ShopGorm, rng)
	if err != nil {
		log.Printf("[admin.analytics-customers] ERROR err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch customer behavior"))
		return
	}

	log.Printf("[admin.analytics-customers] respond 200 new=%d returning=%d", behavior.NewCustomers, behavior.ReturningCustomers)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Customer behavior retrieved successfully", behavior))
}
