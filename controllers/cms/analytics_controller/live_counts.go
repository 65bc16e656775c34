package analytics_controller

import (
	"context"
	"time"

	"gorm.io/gorm"

	live_stats_cache "github.com/GOALLINNOOUT/backend/cache"
	"github.com/GOALLINNOOUT/backend/models"
)

// liveWindow is the trailing window used for "right now" counts.
const liveWindow = 10 * time.Minute

// fetchLiveCounts returns the number of open sessions started in the trailing
// window and the number of distinct sessions that added to cart in it. Results
// are shared through a short-TTL cache since every dashboard tab polls them.
func fetchLiveCounts(ctx context.Context, db *gorm.DB, ex adminExclusions) (visitors, carts int64, err error) {
	if v, c, ok := live_stats_cache.GetLiveCounts(); ok {
		return v, c, nil
	}

	cutoff := time.Now().Add(-liveWindow)

	if err = excludeAdminSessions(db.WithContext(ctx).
		Model(&models.SessionLog{}).
		Where("start_time >= ? AND end_time IS NULL", cutoff), ex).
		Count(&visitors).Error; err != nil {
		return 0, 0, err
	}

	if err = db.WithContext(ctx).
		Model(&models.CartActionLog{}).
		Where("action = ? AND timestamp >= ?", models.CartActionAdd, cutoff).
		Distinct("session_id").
		Count(&carts).Error; err != nil {
		return 0, 0, err
	}

	live_stats_cache.SetLiveCounts(visitors, carts)
	return visitors, carts, nil
}
