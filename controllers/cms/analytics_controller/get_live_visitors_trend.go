package analytics_controller

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	live_stats_cache "github.com/GOALLINNOOUT/backend/cache"
	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/models"
)

// liveTrendWindow is how far back the per-minute activity chart reaches.
const liveTrendWindow = 30 * time.Minute

// ComputeLiveVisitorsTrend returns per-minute counts of distinct sessions
// that logged a page view in each of the trailing minutes. Served from the
// short-TTL cache when fresh.
func ComputeLiveVisitorsTrend(ctx context.Context, db *gorm.DB) ([]models.LiveVisitorPoint, error) {
	if cached, ok := live_stats_cache.GetTrend(); ok {
		return cached, nil
	}

	ex, err := fetchAdminExclusions(ctx, db)
	if err != nil {
		return nil, err
	}

	since := time.Now().Add(-liveTrendWindow).Truncate(time.Minute)

	var views []models.PageViewLog
	if err := excludeAdminPageViews(db.WithContext(ctx).
		Select("session_id", "timestamp").
		Where("timestamp >= ?", since), ex).
		Find(&views).Error; err != nil {
		return nil, err
	}

	sessionsPerMinute := make(map[time.Time]map[string]bool)
	for _, v := range views {
		minute := v.Timestamp.Truncate(time.Minute)
		if sessionsPerMinute[minute] == nil {
			sessionsPerMinute[minute] = make(map[string]bool)
		}
		sessionsPerMinute[minute][v.SessionID] = true
	}

	trend := []models.LiveVisitorPoint{}
	end := time.Now().Truncate(time.Minute)
	for minute := since; !minute.After(end); minute = minute.Add(time.Minute) {
		trend = append(trend, models.LiveVisitorPoint{
			Minute: minute,
			Active: len(sessionsPerMinute[minute]),
		})
	}

	live_stats_cache.SetTrend(trend)
	return trend, nil
}

// GetLiveVisitorsTrend godoc
// @Summary Get live visitors trend
// @Description Returns per-minute active session counts for the trailing half hour
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=[]models.LiveVisitorPoint}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/analytics/live-visitors-trend [get]
func GetLiveVisitorsTrend(c *gin.Context) {
	log.Printf("[admin.analytics-live-visitors] start")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	trend, err := ComputeLiveVisitorsTrend(ctx, config.ShopGorm)
	if err != nil {
		log.Printf("[admin.analytics-live-visitors] ERROR err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch live visitors trend"))
		return
	}

	log.Printf("[admin.analytics-live-visitors] respond 200 minutes=%d", len(trend))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Live visitors trend retrieved successfully", trend))
}
