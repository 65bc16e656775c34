package analytics_controller

import (
	"context"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/models"
	"github.com/GOALLINNOOUT/backend/utils"
)

// ComputeTrafficEngagement builds the traffic dashboard from page views and
// sessions in the range. A bounce is a session with exactly one page view.
func ComputeTrafficEngagement(ctx context.Context, db *gorm.DB, rng DateRange) (*models.TrafficEngagement, error) {
	ex, err := fetchAdminExclusions(ctx, db)
	if err != nil {
		return nil, err
	}

	// ================================
	// Page views in range, session order preserved
	// ================================
	var views []models.PageViewLog
	if err := excludeAdminPageViews(db.WithContext(ctx).
		Select("session_id", "page", "referrer", "user_agent", "email", "ip", "timestamp").
		Where("timestamp BETWEEN ? AND ?", rng.Start, rng.End), ex).
		Order("timestamp ASC").
		Find(&views).Error; err != nil {
		return nil, err
	}

	// ================================
	// Dense daily visits trend (unique addresses per day)
	// ================================
	addrsByDay := make(map[string]map[string]struct{})
	for _, v := range views {
		day := dayKey(v.Timestamp)
		if addrsByDay[day] == nil {
			addrsByDay[day] = make(map[string]struct{})
		}
		addrsByDay[day][v.IP] = struct{}{}
	}
	trends := []models.VisitTrendPoint{}
	for _, day := range eachDay(rng) {
		trends = append(trends, models.VisitTrendPoint{Date: day, Visits: len(addrsByDay[day])})
	}

	// ================================
	// Per-session grouping
	// ================================
	type sessionViews struct {
		landing string
		exit    string
		count   int
		email   *string
	}
	bySession := make(map[string]*sessionViews)
	sessionOrder := []string{}
	referrers := make(map[string]int)
	pages := make(map[string]int)
	osTallies := make(map[string]int)

	for _, v := range views {
		sv, exists := bySession[v.SessionID]
		if !exists {
			sv = &sessionViews{landing: v.Page}
			bySession[v.SessionID] = sv
			sessionOrder = append(sessionOrder, v.SessionID)
		}
		sv.exit = v.Page
		sv.count++
		if sv.email == nil && v.Email != nil {
			sv.email = v.Email
		}
		referrers[utils.NormalizeReferrer(v.Referrer)]++
		pages[v.Page]++
		osTallies[utils.ParseOS(v.UserAgent)]++
	}

	landings := make(map[string]int)
	exits := make(map[string]int)
	bounced := 0
	perSession := []models.SessionPageViews{}
	for _, id := range sessionOrder {
		sv := bySession[id]
		landings[sv.landing]++
		exits[sv.exit]++
		if sv.count == 1 {
			bounced++
		}
		perSession = append(perSession, models.SessionPageViews{SessionID: id, PageViews: sv.count, Email: sv.email})
	}
	sort.SliceStable(perSession, func(i, j int) bool { return perSession[i].PageViews > perSession[j].PageViews })
	if len(perSession) > 10 {
		perSession = perSession[:10]
	}

	bounceRate := 0.0
	if len(bySession) > 0 {
		bounceRate = round2(float64(bounced) / float64(len(bySession)) * 100)
	}

	// ================================
	// OS mix also draws on the security log: the composite signature carries
	// the OS in its second segment
	// ================================
	var securityDevices []string
	secQuery := db.WithContext(ctx).
		Model(&models.SecurityLog{}).
		Where("timestamp BETWEEN ? AND ?", rng.Start, rng.End).
		Where("device LIKE ?", "% | %")
	if len(ex.IDs) > 0 {
		secQuery = secQuery.Where("(user_id IS NULL OR user_id NOT IN ?)", ex.IDs)
	}
	if err := secQuery.Pluck("device", &securityDevices).Error; err != nil {
		return nil, err
	}
	for _, composite := range securityDevices {
		parts := strings.Split(composite, " | ")
		if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
			osTallies[utils.ParseOS(parts[1])]++
		}
	}

	// ================================
	// Session durations
	// ================================
	var sessions []models.SessionLog
	if err := excludeAdminSessions(db.WithContext(ctx).
		Where("start_time BETWEEN ? AND ?", rng.Start, rng.End), ex).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	avgDuration := 0.0
	if len(sessions) > 0 {
		total := 0.0
		for _, s := range sessions {
			last := s.EffectiveLastActivity()
			if s.EndTime != nil {
				last = *s.EndTime
			}
			if last.After(s.StartTime) {
				total += last.Sub(s.StartTime).Minutes()
			}
		}
		avgDuration = round2(total / float64(len(sessions)))
	}

	return &models.TrafficEngagement{
		VisitsTrends:        trends,
		AvgSessionDuration:  avgDuration,
		BounceRate:          bounceRate,
		TopLandingPages:     topLandingPages(landings, 10),
		TopReferrers:        topReferrers(referrers, 10),
		TopExitPages:        topExitPages(exits, 10),
		PageViewsPerSession: perSession,
		TopMostViewedPages:  topPages(pages, 10),
		OSes:                sharesFromTallies(osTallies),
	}, nil
}

func topLandingPages(counts map[string]int, n int) []models.LandingPageCount {
	out := []models.LandingPageCount{}
	for page, visits := range counts {
		out = append(out, models.LandingPageCount{Page: page, Visits: visits})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Visits != out[j].Visits {
			return out[i].Visits > out[j].Visits
		}
		return out[i].Page < out[j].Page
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func topExitPages(counts map[string]int, n int) []models.ExitPageCount {
	out := []models.ExitPageCount{}
	for page, exits := range counts {
		out = append(out, models.ExitPageCount{Page: page, Exits: exits})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Exits != out[j].Exits {
			return out[i].Exits > out[j].Exits
		}
		return out[i].Page < out[j].Page
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func topPages(counts map[string]int, n int) []models.PageViewCount {
	out := []models.PageViewCount{}
	for page, views := range counts {
		out = append(out, models.PageViewCount{Page: page, Views: views})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Views != out[j].Views {
			return out[i].Views > out[j].Views
		}
		return out[i].Page < out[j].Page
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func topReferrers(counts map[string]int, n int) []models.ReferrerCount {
	out := []models.ReferrerCount{}
	for referrer, visits := range counts {
		out = append(out, models.ReferrerCount{Referrer: referrer, Visits: visits})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Visits != out[j].Visits {
			return out[i].Visits > out[j].Visits
		}
		return out[i].Referrer < out[j].Referrer
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// GetTrafficEngagement godoc
// @Summary Get traffic and engagement
// @Description Returns daily visit trends, session duration, bounce rate, landing / exit pages, referrers and OS mix
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} models.ApiResponse{data=models.TrafficEngagement}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/analytics/traffic [get]
func GetTrafficEngagement(c *gin.Context) {
	log.Printf("[admin.analytics-traffic] start")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	rng := parseDateRange(c)
	traffic, err := ComputeTrafficEngagement(ctx, config.ShopGorm, rng)
	if err != nil {
		log.Printf("[admin.analytics-traffic] ERROR err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch traffic analytics"))
		return
	}

	log.Printf("[admin.analytics-traffic] respond 200 days=%d bounce=%.1f%%", len(traffic.VisitsTrends), traffic.BounceRate)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Traffic analytics retrieved successfully", traffic))
}
