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

// ComputeSalesAnalytics builds the sales dashboard payload for the range.
// Revenue and sales count only fulfilled orders; the return rate is measured
// against every order in the range.
func ComputeSalesAnalytics(ctx context.Context, db *gorm.DB, rng DateRange) (*models.SalesAnalytics, error) {
	ex, err := fetchAdminExclusions(ctx, db)
	if err != nil {
		return nil, err
	}

	// ================================
	// Fulfilled orders in range
	// ================================
	var fulfilled []models.Order
	if err := excludeAdminOrders(db.WithContext(ctx).
		Select("created_at", "grand_total").
		Where("status IN ?", models.FulfilledStatuses).
		Where("created_at BETWEEN ? AND ?", rng.Start, rng.End), ex).
		Find(&fulfilled).Error; err != nil {
		return nil, err
	}

	// ================================
	// Totals for return rate
	// ================================
	var totalOrders, cancelledOrders int64
	if err := excludeAdminOrders(db.WithContext(ctx).
		Model(&models.Order{}).
		Where("created_at BETWEEN ? AND ?", rng.Start, rng.End), ex).
		Count(&totalOrders).Error; err != nil {
		return nil, err
	}
	if err := excludeAdminOrders(db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", models.OrderStatusCancelled).
		Where("created_at BETWEEN ? AND ?", rng.Start, rng.End), ex).
		Count(&cancelledOrders).Error; err != nil {
		return nil, err
	}

	// ================================
	// Dense daily revenue trend
	// ================================
	byDay := make(map[string]*models.RevenueTrendPoint)
	totalRevenue := 0.0
	for _, o := range fulfilled {
		totalRevenue += o.GrandTotal
		key := dayKey(o.CreatedAt)
		point, exists := byDay[key]
		if !exists {
			point = &models.RevenueTrendPoint{Date: key}
			byDay[key] = point
		}
		point.Revenue += o.GrandTotal
		point.Orders++
	}

	trends := []models.RevenueTrendPoint{}
	for _, day := range eachDay(rng) {
		if point, exists := byDay[day]; exists {
			trends = append(trends, *point)
		} else {
			trends = append(trends, models.RevenueTrendPoint{Date: day})
		}
	}

	// ================================
	// Top revenue days
	// ================================
	topDays := make([]models.RevenueTrendPoint, len(trends))
	copy(topDays, trends)
	sort.SliceStable(topDays, func(i, j int) bool { return topDays[i].Revenue > topDays[j].Revenue })
	if len(topDays) > 10 {
		topDays = topDays[:10]
	}

	totalSales := len(fulfilled)
	avgOrderValue := 0.0
	if totalSales > 0 {
		avgOrderValue = totalRevenue / float64(totalSales)
	}
	returnRate := 0.0
	if totalOrders > 0 {
		returnRate = float64(cancelledOrders) / float64(totalOrders) * 100
	}

	return &models.SalesAnalytics{
		TotalSales:    totalSales,
		TotalRevenue:  round2(totalRevenue),
		AvgOrderValue: round2(avgOrderValue),
		ReturnRate:    round2(returnRate),
		RevenueTrends: trends,
		TopDays:       topDays,
	}, nil
}

// GetSalesAnalytics godoc
// @Summary Get sales analytics
// @Description Returns revenue, sales count, average order value, return rate and daily revenue trends for the requested range
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} models.ApiResponse{data=models.SalesAnalytics}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/analytics/sales [get]
func GetSalesAnalytics(c *gin.Context) {
	log.Printf("[admin.analytics-sales] start")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	rng := parseDateRange(c)
	analytics, err := ComputeSalesAnalytics(ctx, config.ShopGorm, rng)
	if err != nil {
		log.Printf("[admin.analytics-sales] ERROR err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch sales analytics"))
		return
	}

	log.Printf("[admin.analytics-sales] respond 200 sales=%d revenue=%.2f", analytics.TotalSales, analytics.TotalRevenue)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Sales analytics retrieved successfully", analytics))
}
