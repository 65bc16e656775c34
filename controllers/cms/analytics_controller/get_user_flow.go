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

// ComputeUserFlow tallies page-to-page transitions within sessions in the
// range. Reloads of the same page are not transitions.
func ComputeUserFlow(ctx context.Context, db *gorm.DB, rng DateRange) ([]models.PageTransition, error) {
	ex, err := fetchAdminExclusions(ctx, db)
	if err != nil {
		return nil, err
	}

	var views []models.PageViewLog
	if err := excludeAdminPageViews(db.WithContext(ctx).
		Select("session_id", "page", "timestamp").
		Where("timestamp BETWEEN ? AND ?", rng.Start, rng.End), ex).
		Order("session_id ASC, timestamp ASC").
		Find(&views).Error; err != nil {
		return nil, err
	}

	type edge struct{ from, to string }
	tallies := make(map[edge]int)
	var prevSession, prevPage string
	for _, v := range views {
		if v.SessionID == prevSession && v.Page != prevPage {
			tallies[edge{from: prevPage, to: v.Page}]++
		}
		prevSession, prevPage = v.SessionID, v.Page
	}

	flow := []models.PageTransition{}
	for e, count := range tallies {
		flow = append(flow, models.PageTransition{From: e.from, To: e.to, Count: count})
	}
	sort.SliceStable(flow, func(i, j int) bool {
		if flow[i].Count != flow[j].Count {
			return flow[i].Count > flow[j].Count
		}
		if flow[i].From != flow[j].From {
			return flow[i].From < flow[j].From
		}
		return flow[i].To < flow[j].To
	})
	if len(flow) > 10 {
		flow = flow[:10]
	}
	return flow, nil
}

// GetUserFlow godoc
// @Summary Get user flow
// @Description Returns the most common page-to-page transitions within sessions for the range
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} models.ApiResponse{data=[]models.PageTransition}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/analytics/userflow [get]
func GetUserFlow(c *gin.Context) {
	log.Printf("[admin.analytics-userflow] start")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	rng := parseDateRange(c)
	flow, err := ComputeUserFlow(ctx, config.ShopGorm, rng)
	if err != nil {
		log.Printf("[admin.analytics-userflow] ERROR err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch user flow"))
		return
	}

	log.Printf("[admin.analytics-userflow] respond 200 transitions=%d", len(flow))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "User flow retrieved successfully", flow))
}
