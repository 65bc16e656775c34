package analytics_controller

import (
	"context"
	"log"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/models"
)

// ComputeOrdersOverview builds the operational orders dashboard: status
// breakdown, daily order trend and fulfillment speed. Fulfillment time is
// measured paid-to-delivered over delivered orders only.
func ComputeOrdersOverview(ctx context.Context, db *gorm.DB, rng DateRange) (*models.OrdersOverview, error) {
	ex, err := fetchAdminExclusions(ctx, db)
	if err != nil {
		return nil, err
	}

	// ================================
	// Orders in range
	// ================================
	var orders []models.Order
	if err := excludeAdminOrders(db.WithContext(ctx).
		Select("status", "created_at", "paid_at", "delivered_at").
		Where("created_at BETWEEN ? AND ?", rng.Start, rng.End), ex).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	// ================================
	// Status breakdown + dense trend
	// ================================
	statusCounts := make(map[string]int)
	ordersByDay := make(map[string]int)
	var cancelled, returned int64
	fulfillmentDaysTotal := 0.0
	deliveredCount := 0

	for _, o := range orders {
		statusCounts[o.Status]++
		ordersByDay[dayKey(o.CreatedAt)]++
		switch o.Status {
		case models.OrderStatusCancelled:
			cancelled++
		case models.OrderStatusReturned:
			returned++
		}
		if o.DeliveredAt != nil && o.DeliveredAt.After(o.PaidAt) {
			fulfillmentDaysTotal += o.DeliveredAt.Sub(o.PaidAt).Hours() / 24
			deliveredCount++
		}
	}

	breakdown := []models.StatusCount{}
	for status, count := range statusCounts {
		breakdown = append(breakdown, models.StatusCount{Status: status, Count: count})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Status < breakdown[j].Status
	})

	trends := []models.OrderTrendPoint{}
	for _, day := range eachDay(rng) {
		trends = append(trends, models.OrderTrendPoint{Date: day, Orders: ordersByDay[day]})
	}

	avgFulfillment := 0.0
	if deliveredCount > 0 {
		avgFulfillment = round2(fulfillmentDaysTotal / float64(deliveredCount))
	}

	return &models.OrdersOverview{
		StatusBreakdown:    breakdown,
		OrderTrends:        trends,
		AvgFulfillmentTime: avgFulfillment,
		CancelledCount:     cancelled,
		ReturnedCount:      returned,
	}, nil
}

// GetOrdersOverview godoc
// @Summary Get orders overview
// @Description Returns order status breakdown, daily order trends and average fulfillment time
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} models.ApiResponse{data=models.OrdersOverview}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/analytics/orders [get]
func GetOrdersOverview(c *gin.Context) {
	log.Printf("[admin.analytics-orders] start")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	rng := parseDateRange(c)
	overview, err := ComputeOrdersOverview(ctx, config.ShopGorm, rng)
	if err != nil {
		log.Printf("[admin.analytics-orders] ERROR err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders overview"))
		return
	}

	log.Printf("[admin.analytics-orders] respond 200 statuses=%d", len(overview.StatusBreakdown))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Orders overview retrieved successfully", overview))
}
