package analytics_controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestComputeUserFlow(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-01", "2024-01-03")
	noon := mustDay(t, "2024-01-02").Add(12 * time.Hour)

	// Two sessions take the same path, a third reloads one page
	for i, session := range []string{"s1", "s2"} {
		base := noon.Add(time.Duration(i) * time.Hour)
		createPageView(t, db, session, "/", base)
		createPageView(t, db, session, "/perfumes", base.Add(time.Minute))
		createPageView(t, db, session, "/checkout", base.Add(2*time.Minute))
	}
	createPageView(t, db, "s3", "/perfumes", noon)
	createPageView(t, db, "s3", "/perfumes", noon.Add(time.Minute))

	got, err := ComputeUserFlow(context.Background(), db, rng)
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Equal(t, 2, got[0].Count)
	require.Equal(t, 2, got[1].Count)
	for _, tr := range got {
		require.NotEqual(t, tr.From, tr.To, "reloads are not transitions")
	}
}

func TestComputeUserFlowDoesNotCrossSessions(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-01", "2024-01-03")
	noon := mustDay(t, "2024-01-02").Add(12 * time.Hour)

	createPageView(t, db, "s1", "/a", noon)
	createPageView(t, db, "s2", "/b", noon.Add(time.Minute))

	got, err := ComputeUserFlow(context.Background(), db, rng)
	require.NoError(t, err)
	require.Empty(t, got, "consecutive views from different sessions are unrelated")
}

func TestComputePageVisitsTrendFiltersByPage(t *testing.T) {
	db := openTestDB(t)
	rng := testRange(t, "2024-01-01", "2024-01-03")
	noon := mustDay(t, "2024-01-02").Add(12 * time.Hour)

	createPageView(t, db, "s1", "/perfumes", noon)
	createPageView(t, db, "s1", "/checkout", noon.Add(time.Minute))
	createPageView(t, db, "s2", "/perfumes", noon.Add(time.Hour))

	all, err := ComputePageVisitsTrend(context.Background(), db, rng, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, 3, all[1].Visits)

	only, err := ComputePageVisitsTrend(context.Background(), db, rng, "/perfumes")
	require.NoError(t, err)
	require.Equal(t, 2, only[1].Visits)
}
