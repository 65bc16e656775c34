package analytics_controller

import (
	"context"
	"math"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GOALLINNOOUT/backend/models"
)

const dateLayout = "2006-01-02"

// defaultRangeDays is the trailing window used when the caller sends no
// explicit range: today plus the 29 days before it.
const defaultRangeDays = 29

// DateRange is a closed reporting window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// parseDateRange reads startDate / endDate query params (YYYY-MM-DD). Missing
// or malformed values fall back to the trailing default window.
func parseDateRange(c *gin.Context) DateRange {
	now := time.Now()
	start := startOfDay(now.AddDate(0, 0, -defaultRangeDays))
	end := endOfDay(now)

	if raw := c.Query("startDate"); raw != "" {
		if t, err := time.ParseInLocation(dateLayout, raw, time.Local); err == nil {
			start = startOfDay(t)
		}
	}
	if raw := c.Query("endDate"); raw != "" {
		if t, err := time.ParseInLocation(dateLayout, raw, time.Local); err == nil {
			end = endOfDay(t)
		}
	}
	if end.Before(start) {
		start, end = startOfDay(end), endOfDay(start)
	}
	return DateRange{Start: start, End: end}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// eachDay returns every YYYY-MM-DD key in the range, inclusive. Trend series
// are built over this list so charts get a dense, zero-filled axis.
func eachDay(rng DateRange) []string {
	days := []string{}
	for d := startOfDay(rng.Start); !d.After(rng.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dateLayout))
	}
	return days
}

func dayKey(t time.Time) string {
	return t.In(time.Local).Format(dateLayout)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ── Admin exclusion ──────────────────────────────────────────────────────────
// Staff browsing and test orders would skew every metric, so each report
// refetches the current admin set and subtracts it. Recomputed per call:
// promoting a user to admin must take effect on the next dashboard refresh.

type adminExclusions struct {
	IDs       []uuid.UUID
	IDStrings []string
	Emails    []string
}

func fetchAdminExclusions(ctx context.Context, db *gorm.DB) (adminExclusions, error) {
	var admins []models.User
	if err := db.WithContext(ctx).
		Select("id", "email").
		Where("role = ?", models.RoleAdmin).
		Find(&admins).Error; err != nil {
		return adminExclusions{}, err
	}

	ex := adminExclusions{}
	for _, a := range admins {
		ex.IDs = append(ex.IDs, a.ID)
		ex.IDStrings = append(ex.IDStrings, a.ID.String())
		ex.Emails = append(ex.Emails, a.Email)
	}
	return ex, nil
}

// excludeAdminOrders filters out orders placed by admin accounts, matching on
// the linked user, the snapshot user id and the snapshot email. NULL columns
// must stay included, hence the explicit IS NULL arms.
func excludeAdminOrders(q *gorm.DB, ex adminExclusions) *gorm.DB {
	if len(ex.IDs) > 0 {
		q = q.Where("(user_id IS NULL OR user_id NOT IN ?)", ex.IDs).
			Where("(customer_user_id IS NULL OR customer_user_id NOT IN ?)", ex.IDStrings)
	}
	if len(ex.Emails) > 0 {
		q = q.Where("customer_email NOT IN ?", ex.Emails)
	}
	return q
}

func excludeAdminPageViews(q *gorm.DB, ex adminExclusions) *gorm.DB {
	if len(ex.IDs) > 0 {
		q = q.Where("(user_id IS NULL OR user_id NOT IN ?)", ex.IDs)
	}
	if len(ex.Emails) > 0 {
		q = q.Where("(email IS NULL OR email NOT IN ?)", ex.Emails)
	}
	return q
}

func excludeAdminSessions(q *gorm.DB, ex adminExclusions) *gorm.DB {
	if len(ex.IDs) > 0 {
		q = q.Where("(user_id IS NULL OR user_id NOT IN ?)", ex.IDs)
	}
	return q
}
