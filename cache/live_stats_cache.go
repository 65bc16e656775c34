package live_stats_cache

import (
	"sync"
	"time"

	"github.com/GOALLINNOOUT/backend/models"
)

const TTL = 10 * time.Second

// ── Live visitors / live carts cache ─────────────────────────────────────────
// The live-stats endpoints are polled by every open dashboard tab; counting
// over a trailing window is cheap but not free, so results are shared for a
// few seconds.

type liveEntry struct {
	visitors  int64
	carts     int64
	fetchedAt time.Time
}

var (
	liveMu    sync.RWMutex
	liveCache *liveEntry
)

func GetLiveCounts() (visitors, carts int64, ok bool) {
	liveMu.RLock()
	defer liveMu.RUnlock()
	if liveCache != nil && time.Since(liveCache.fetchedAt) < TTL {
		return liveCache.visitors, liveCache.carts, true
	}
	return 0, 0, false
}

func SetLiveCounts(visitors, carts int64) {
	liveMu.Lock()
	defer liveMu.Unlock()
	liveCache = &liveEntry{visitors: visitors, carts: carts, fetchedAt: time.Now()}
}

// ── Live visitors trend cache ────────────────────────────────────────────────

type trendEntry struct {
	data      []models.LiveVisitorPoint
	fetchedAt time.Time
}

var (
	trendMu    sync.RWMutex
	trendCache *trendEntry
)

func GetTrend() ([]models.LiveVisitorPoint, bool) {
	trendMu.RLock()
	defer trendMu.RUnlock()
	if trendCache != nil && time.Since(trendCache.fetchedAt) < TTL {
		return trendCache.data, true
	}
	return nil, false
}

func SetTrend(data []models.LiveVisitorPoint) {
	trendMu.Lock()
	defer trendMu.Unlock()
	trendCache = &trendEntry{data: data, fetchedAt: time.Now()}
}

// ── Invalidate everything ────────────────────────────────────────────────────

func Invalidate() {
	liveMu.Lock()
	liveCache = nil
	liveMu.Unlock()

	trendMu.Lock()
	trendCache = nil
	trendMu.Unlock()
}
