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

const lowStockThreshold = 5

// ComputeProductPerformance aggregates cart lines of fulfilled orders in the
// range and joins them with the live catalog. Products that were sold but
// later delisted keep their order-line name and a nil stock.
func ComputeProductPerformance(ctx context.Context, db *gorm.DB, rng DateRange) (*models.ProductPerformance, error) {
	ex, err := fetchAdminExclusions(ctx, db)
	if err != nil {
		return nil, err
	}

	// ================================
	// Unpack cart lines from fulfilled orders
	// ================================
	var orders []models.Order
	if err := excludeAdminOrders(db.WithContext(ctx).
		Select("cart").
		Where("status IN ?", models.FulfilledStatuses).
		Where("created_at BETWEEN ? AND ?", rng.Start, rng.End), ex).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	sold := make(map[string]*models.ProductStat)
	for _, o := range orders {
		for _, item := range o.Cart {
			stat, exists := sold[item.ID]
			if !exists {
				stat = &models.ProductStat{ID: item.ID, Name: item.Name}
				sold[item.ID] = stat
			}
			stat.Quantity += item.Quantity
			stat.Revenue += item.Price * float64(item.Quantity)
		}
	}

	// ================================
	// Join with the catalog
	// ================================
	var catalog []models.Perfume
	if err := db.WithContext(ctx).
		Select("id", "name", "stock", "views").
		Find(&catalog).Error; err != nil {
		return nil, err
	}

	catalogByID := make(map[string]models.Perfume, len(catalog))
	for _, p := range catalog {
		catalogByID[p.ID.String()] = p
	}

	soldStats := []models.ProductStat{}
	for _, stat := range sold {
		stat.Revenue = round2(stat.Revenue)
		if p, exists := catalogByID[stat.ID]; exists {
			stock := p.Stock
			stat.Stock = &stock
			stat.Views = p.Views
			stat.Name = p.Name
		}
		soldStats = append(soldStats, *stat)
	}

	// ================================
	// Top / least sellers
	// ================================
	sort.SliceStable(soldStats, func(i, j int) bool { return soldStats[i].Quantity > soldStats[j].Quantity })
	topSelling := topN(soldStats, 10)

	least := make([]models.ProductStat, len(soldStats))
	copy(least, soldStats)
	sort.SliceStable(least, func(i, j int) bool { return least[i].Quantity < least[j].Quantity })
	leastPerforming := topN(least, 10)

	// ================================
	// Most viewed catalog products
	// ================================
	mostViewed := []models.ProductStat{}
	viewSorted := make([]models.Perfume, len(catalog))
	copy(viewSorted, catalog)
	sort.SliceStable(viewSorted, func(i, j int) bool { return viewSorted[i].Views > viewSorted[j].Views })
	for _, p := range viewSorted {
		if len(mostViewed) == 10 {
			break
		}
		stock := p.Stock
		stat := models.ProductStat{ID: p.ID.String(), Name: p.Name, Views: p.Views, Stock: &stock}
		if s, exists := sold[p.ID.String()]; exists {
			stat.Quantity = s.Quantity
			stat.Revenue = round2(s.Revenue)
		}
		mostViewed = append(mostViewed, stat)
	}

	// ================================
	// Conversion rates (purchases / views)
	// ================================
	conversions := []models.ProductConversion{}
	for _, p := range catalog {
		conv := models.ProductConversion{Name: p.Name}
		if p.Views > 0 {
			qty := 0
			if s, exists := sold[p.ID.String()]; exists {
				qty = s.Quantity
			}
			rate := round2(float64(qty) / float64(p.Views) * 100)
			conv.ConversionRate = &rate
		}
		conversions = append(conversions, conv)
	}

	// ================================
	// Stock alerts and stagnant products
	// ================================
	stockAlerts := []models.ProductStat{}
	stagnant := []models.ProductStat{}
	for _, p := range catalog {
		stock := p.Stock
		stat := models.ProductStat{ID: p.ID.String(), Name: p.Name, Views: p.Views, Stock: &stock}
		if p.Stock <= lowStockThreshold {
			stockAlerts = append(stockAlerts, stat)
		}
		if _, wasSold := sold[p.ID.String()]; !wasSold {
			stagnant = append(stagnant, stat)
		}
	}
	sort.SliceStable(stagnant, func(i, j int) bool { return stagnant[i].Views > stagnant[j].Views })

	return &models.ProductPerformance{
		TopSelling:       topSelling,
		LeastPerforming:  leastPerforming,
		MostViewed:       mostViewed,
		ConversionRates:  conversions,
		StockAlerts:      stockAlerts,
		StagnantProducts: stagnant,
	}, nil
}

func topN(stats []models.ProductStat, n int) []models.ProductStat {
	if len(stats) > n {
		return stats[:n]
	}
	return stats
}

// GetProductPerformance godoc
// @Summary Get product performance
// @Description Returns top and least sellers, most viewed products, conversion rates, low-stock alerts and stagnant products
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} models.ApiResponse{data=models.ProductPerformance}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/analytics/products [get]
func GetProductPerformance(c *gin.Context) {
	log.Printf("[admin.analytics-products] start")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	rng := parseDateRange(c)
	performance, err := ComputeProductPerformance(ctx, config.ShopGorm, rng)
	if err != nil {
		log.Printf("[admin.analytics-products] ERROR err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch product performance"))
		return
	}

	log.Printf("[admin.analytics-products] respond 200 topSelling=%d", len(performance.TopSelling))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product performance retrieved successfully", performance))
}
