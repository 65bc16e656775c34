package analytics_controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GOALLINNOOUT/backend/models"
)

func TestComputeTrafficEngagement(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-01", "2024-01-03")
	noon := mustDay(t, "2024-01-02").Add(12 * time.Hour)

	// Session s1: three pages, home -> catalog -> checkout
	createPageViewFull(t, db, "s1", "/", "https://www.google.com/", "ua", noon, nil)
	createPageView(t, db, "s1", "/perfumes", noon.Add(time.Minute))
	createPageView(t, db, "s1", "/checkout", noon.Add(2*time.Minute))

	// Session s2: bounce on the catalog page
	createPageViewFull(t, db, "s2", "/perfumes", "", "ua", noon.Add(time.Hour), nil)

	// Session durations: 30 and 10 minutes
	end1 := noon.Add(30 * time.Minute)
	end2 := noon.Add(70 * time.Minute)
	sessions := []models.SessionLog{
		{SessionID: "s1", StartTime: noon, EndTime: &end1},
		{SessionID: "s2", StartTime: noon.Add(time.Hour), EndTime: &end2},
	}
	for i := range sessions {
		require.NoError(t, db.Create(&sessions[i]).Error)
	}

	got, err := ComputeTrafficEngagement(context.Background(), db, rng)
	require.NoError(t, err)

	require.Len(t, got.VisitsTrends, 3, "dense series over the range")
	require.Equal(t, 0, got.VisitsTrends[0].Visits)
	require.Equal(t, 2, got.VisitsTrends[1].Visits, "two unique addresses, not four raw views")

	require.InDelta(t, 50.0, got.BounceRate, 0.001, "1 of 2 sessions bounced")
	require.InDelta(t, 20.0, got.AvgSessionDuration, 0.001, "(30 + 10) / 2 minutes")

	require.Equal(t, "/", got.TopLandingPages[0].Page)
	require.Equal(t, "/checkout", got.TopExitPages[0].Page)
	require.Equal(t, "/perfumes", got.TopMostViewedPages[0].Page)

	// Referrers are normalized: empty collapses to Direct
	require.Len(t, got.TopReferrers, 2)
	require.Equal(t, "Direct", got.TopReferrers[0].Referrer)
	require.Equal(t, 3, got.TopReferrers[0].Visits)
	require.Equal(t, "www.google.com", got.TopReferrers[1].Referrer)

	require.Equal(t, "s1", got.PageViewsPerSession[0].SessionID)
	require.Equal(t, 3, got.PageViewsPerSession[0].PageViews)
}

func TestComputeTrafficEngagementOSMixDrawsOnSecurityLog(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-01", "2024-01-03")
	noon := mustDay(t, "2024-01-02").Add(12 * time.Hour)

	// One OS signal arrives only through the security log composite
	sec := models.SecurityLog{
		Action:    "order",
		IP:        "1.2.3.4",
		Device:    "mobile | Android | Chrome",
		Timestamp: noon,
	}
	require.NoError(t, db.Create(&sec).Error)

	createPageViewFull(t, db, "s1", "/",
		"", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/126.0", noon, nil)

	got, err := ComputeTrafficEngagement(context.Background(), db, rng)
	require.NoError(t, err)
	require.Len(t, got.OSes, 2)

	shares := make(map[string]float64)
	for _, share := range got.OSes {
		shares[share.Type] = share.Percent
	}
	require.InDelta(t, 50.0, shares["Android"], 0.001, "security log composites feed the OS mix")
	require.InDelta(t, 50.0, shares["Windows"], 0.001)
}

func TestComputeTrafficEngagementExcludesAdminViews(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-01", "2024-01-03")
	noon := mustDay(t, "2024-01-02").Add(12 * time.Hour)
	admin := createUser(t, db, "Admin", "admin@velora.shop", models.RoleAdmin)

	createPageView(t, db, "visitor", "/perfumes", noon)
	createPageViewFull(t, db, "staff", "/perfumes", "", "ua", noon, &admin.Email)

	got, err := ComputeTrafficEngagement(context.Background(), db, rng)
	require.NoError(t, err)
	require.Equal(t, 1, got.VisitsTrends[1].Visits, "admin browsing is invisible to the report")
}
