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

// ComputeMarketingPerformance groups attributed fulfilled orders by campaign.
// ROI is revenue over spend as a percentage; campaigns with no recorded spend
// report zero ROI rather than dividing by zero.
func ComputeMarketingPerformance(ctx context.Context, db *gorm.DB, rng DateRange) (*models.MarketingPerformance, error) {
	ex, err := fetchAdminExclusions(ctx, db)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := excludeAdminOrders(db.WithContext(ctx).
		Select("campaign", "campaign_spend", "grand_total").
		Where("campaign IS NOT NULL AND campaign <> ''").
		Where("status IN ?", models.FulfilledStatuses).
		Where("created_at BETWEEN ? AND ?", rng.Start, rng.End), ex).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	// Spend is recorded per campaign, repeated on each attributed order, so
	// take the max rather than summing duplicates.
	byName := make(map[string]*models.CampaignStats)
	for _, o := range orders {
		name := *o.Campaign
		stats, exists := byName[name]
		if !exists {
			stats = &models.CampaignStats{Name: name}
			byName[name] = stats
		}
		stats.Conversions++
		stats.Revenue += o.GrandTotal
		if o.CampaignSpend != nil && *o.CampaignSpend > stats.Spend {
			stats.Spend = *o.CampaignSpend
		}
	}

	campaigns := []models.CampaignStats{}
	totalSpend, totalRevenue := 0.0, 0.0
	for _, stats := range byName {
		stats.Revenue = round2(stats.Revenue)
		if stats.Spend > 0 {
			stats.ROI = round2(stats.Revenue / stats.Spend * 100)
		}
		totalSpend += stats.Spend
		totalRevenue += stats.Revenue
		campaigns = append(campaigns, *stats)
	}
	sort.SliceStable(campaigns, func(i, j int) bool {
		if campaigns[i].Revenue != campaigns[j].Revenue {
			return campaigns[i].Revenue > campaigns[j].Revenue
		}
		return campaigns[i].Name < campaigns[j].Name
	})

	return &models.MarketingPerformance{
		Campaigns:    campaigns,
		TotalSpend:   round2(totalSpend),
		TotalRevenue: round2(totalRevenue),
	}, nil
}

// GetMarketingPerformance godoc
// @Summary Get marketing performance
// @Description Returns per-campaign conversions, revenue, spend and ROI for attributed orders
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} models.ApiResponse{data=models.MarketingPerformance}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/analytics/marketing [get]
func GetMarketingPerformance(c *gin.Context) {
	log.Printf("[admin.analytics-marketing] start")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	rng := parseDateRange(c)
	performance, err := ComputeMarketingPerformance(ctx, config.ShopGorm, rng)
	if err != nil {
		log.Printf("[admin.analytics-marketing] ERROR err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch marketing performance"))
		return
	}

	log.Printf("[admin.analytics-marketing] respond 200 campaigns=%d", len(performance.Campaigns))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Marketing performance retrieved successfully", performance))
}
