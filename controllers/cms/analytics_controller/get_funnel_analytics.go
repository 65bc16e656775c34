package analytics_controller

import (
	"context"
	"log"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/models"
)

// ComputeFunnelAnalytics counts distinct sessions per funnel stage. Stages
// are tallied independently: a purchase whose session never logged a page
// view still counts at the purchase stage.
func ComputeFunnelAnalytics(ctx context.Context, db *gorm.DB, rng DateRange) (*models.FunnelAnalytics, error) {
	ex, err := fetchAdminExclusions(ctx, db)
	if err != nil {
		return nil, err
	}

	// ================================
	// Stage tallies (distinct sessions)
	// ================================
	var visits int64
	if err := excludeAdminPageViews(db.WithContext(ctx).
		Model(&models.PageViewLog{}).
		Where("timestamp BETWEEN ? AND ?", rng.Start, rng.End), ex).
		Distinct("session_id").
		Count(&visits).Error; err != nil {
		return nil, err
	}

	var cartAdds int64
	if err := db.WithContext(ctx).
		Model(&models.CartActionLog{}).
		Where("action = ?", models.CartActionAdd).
		Where("timestamp BETWEEN ? AND ?", rng.Start, rng.End).
		Distinct("session_id").
		Count(&cartAdds).Error; err != nil {
		return nil, err
	}

	var checkouts int64
	checkoutQuery := db.WithContext(ctx).
		Model(&models.CheckoutEventLog{}).
		Where("timestamp BETWEEN ? AND ?", rng.Start, rng.End)
	if len(ex.IDs) > 0 {
		checkoutQuery = checkoutQuery.Where("(user_id IS NULL OR user_id NOT IN ?)", ex.IDs)
	}
	if err := checkoutQuery.Distinct("session_id").Count(&checkouts).Error; err != nil {
		return nil, err
	}

	var purchases int64
	if err := excludeAdminOrders(db.WithContext(ctx).
		Model(&models.Order{}).
		Where("session_id IS NOT NULL").
		Where("status IN ?", models.FulfilledStatuses).
		Where("created_at BETWEEN ? AND ?", rng.Start, rng.End), ex).
		Distinct("session_id").
		Count(&purchases).Error; err != nil {
		return nil, err
	}

	// ================================
	// Most carted products, weighted by quantity (missing quantity counts as 1)
	// ================================
	type cartRow struct {
		ProductID uuid.UUID
		Count     int
	}
	var cartRows []cartRow
	if err := db.WithContext(ctx).
		Model(&models.CartActionLog{}).
		Select("product_id", "SUM(CASE WHEN quantity < 1 THEN 1 ELSE quantity END) AS count").
		Where("action = ?", models.CartActionAdd).
		Where("timestamp BETWEEN ? AND ?", rng.Start, rng.End).
		Group("product_id").
		Scan(&cartRows).Error; err != nil {
		return nil, err
	}

	topCart := []models.CartProductCount{}
	if len(cartRows) > 0 {
		ids := make([]uuid.UUID, 0, len(cartRows))
		for _, row := range cartRows {
			ids = append(ids, row.ProductID)
		}
		var perfumes []models.Perfume
		if err := db.WithContext(ctx).
			Select("id", "name").
			Where("id IN ?", ids).
			Find(&perfumes).Error; err != nil {
			return nil, err
		}
		names := make(map[uuid.UUID]string, len(perfumes))
		for _, p := range perfumes {
			names[p.ID] = p.Name
		}
		for _, row := range cartRows {
			name, exists := names[row.ProductID]
			if !exists {
				name = "Unknown product"
			}
			topCart = append(topCart, models.CartProductCount{Name: name, Count: row.Count})
		}
		sort.SliceStable(topCart, func(i, j int) bool {
			if topCart[i].Count != topCart[j].Count {
				return topCart[i].Count > topCart[j].Count
			}
			return topCart[i].Name < topCart[j].Name
		})
		if len(topCart) > 10 {
			topCart = topCart[:10]
		}
	}

	return &models.FunnelAnalytics{
		Funnel: []models.FunnelStage{
			{Stage: "Visited", Count: int(visits)},
			{Stage: "Added to cart", Count: int(cartAdds)},
			{Stage: "Reached checkout", Count: int(checkouts)},
			{Stage: "Purchased", Count: int(purchases)},
		},
		TopCartProducts: topCart,
	}, nil
}

// GetFunnelAnalytics godoc
// @Summary Get funnel analytics
// @Description Returns distinct-session counts per funnel stage (visit, cart, checkout, purchase) and the most carted products
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} models.ApiResponse{data=models.FunnelAnalytics}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/analytics/funnel [get]
func GetFunnelAnalytics(c *gin.Context) {
	log.Printf("[admin.analytics-funnel] start")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	rng := parseDateRange(c)
	funnel, err := ComputeFunnelAnalytics(ctx, config.ShopGorm, rng)
	if err != nil {
		log.Printf("[admin.analytics-funnel] ERROR err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch funnel analytics"))
		return
	}

	log.Printf("[admin.analytics-funnel] respond 200 stages=%d", len(funnel.Funnel))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Funnel analytics retrieved successfully", funnel))
}
