package analytics_controller

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/models"
)

// ComputePageVisitsTrend returns the dense daily page-view series for the
// range, optionally narrowed to a single page path.
func ComputePageVisitsTrend(ctx context.Context, db *gorm.DB, rng DateRange, page string) ([]models.VisitTrendPoint, error) {
	ex, err := fetchAdminExclusions(ctx, db)
	if err != nil {
		return nil, err
	}

	query := excludeAdminPageViews(db.WithContext(ctx).
		Model(&models.PageViewLog{}).
		Select("timestamp").
		Where("timestamp BETWEEN ? AND ?", rng.Start, rng.End), ex)
	if page != "" {
		query = query.Where("page = ?", page)
	}

	var views []models.PageViewLog
	if err := query.Find(&views).Error; err != nil {
		return nil, err
	}

	byDay := make(map[string]int)
	for _, v := range views {
		byDay[dayKey(v.Timestamp)]++
	}

	trend := []models.VisitTrendPoint{}
	for _, day := range eachDay(rng) {
		trend = append(trend, models.VisitTrendPoint{Date: day, Visits: byDay[day]})
	}
	return trend, nil
}

// GetPageVisitsTrend godoc
// @Summary Get page visits trend
// @Description Returns the daily page-view counts for the range, optionally filtered to one page
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Param page query string false "Restrict to a single page path"
// @Success 200 {object} models.ApiResponse{data=[]models.VisitTrendPoint}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/analytics/page-visits-trend [get]
func GetPageVisitsTrend(c *gin.Context) {
	log.Printf("[admin.analytics-page-visits] start")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	rng := parseDateRange(c)
	trend, err := ComputePageVisitsTrend(ctx, config.ShopGorm, rng, c.Query("page"))
	if err != nil {
		log.Printf("[admin.analytics-page-visits] ERROR err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch page visits trend"))
		return
	}

	log.Printf("[admin.analytics-page-visits] respond 200 days=%d", len(trend))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Page visits trend retrieved successfully", trend))
}
