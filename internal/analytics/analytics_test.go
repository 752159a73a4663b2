package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repoforge-core/internal/domain/repo"
)

func daysAgo(n int) time.Time {
	return time.Now().Add(-time.Duration(n) * 24 * time.Hour)
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.Equal(t, Totals{}, totals)
}

func TestComputeTotals(t *testing.T) {
	records := []repo.Record{
		{Stars: 10, Forks: 2, Watchers: 5, Size: 100, OpenIssues: 3, Private: true},
		{Stars: 20, Forks: 4, Watchers: 7, Size: 300, OpenIssues: 1, Fork: true, Archived: true},
	}

	totals := ComputeTotals(records)

	assert.Equal(t, 2, totals.Repositories)
	assert.Equal(t, 30, totals.Stars)
	assert.Equal(t, 6, totals.Forks)
	assert.Equal(t, 12, totals.Watchers)
	assert.Equal(t, 400, totals.SizeKB)
	assert.Equal(t, 4, totals.OpenIssues)
	assert.Equal(t, 1, totals.Private)
	assert.Equal(t, 1, totals.Forked)
	assert.Equal(t, 1, totals.Archived)
}

func TestLanguageHistogram(t *testing.T) {
	records := []repo.Record{
		{Name: "a", Language: "Go"},
		{Name: "b", Language: "Rust"},
		{Name: "c", Language: "Go"},
		{Name: "d"}, // no language, excluded
		{Name: "e", Language: "Python"},
	}

	histogram := LanguageHistogram(records)

	require.Len(t, histogram, 3)
	assert.Equal(t, LanguageCount{Language: "Go", Count: 2}, histogram[0])
	// Ties keep first-seen order: Rust before Python.
	assert.Equal(t, LanguageCount{Language: "Rust", Count: 1}, histogram[1])
	assert.Equal(t, LanguageCount{Language: "Python", Count: 1}, histogram[2])
}

func TestTopByStars(t *testing.T) {
	records := []repo.Record{
		{Name: "low", Stars: 1},
		{Name: "high", Stars: 100},
		{Name: "mid", Stars: 50},
	}

	top := TopByStars(records, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "high", top[0].Name)
	assert.Equal(t, "mid", top[1].Name)

	// n beyond the input length returns everything sorted.
	all := TopByStars(records, 10)
	require.Len(t, all, 3)
	assert.Equal(t, "low", all[2].Name)

	// Input order is untouched.
	assert.Equal(t, "low", records[0].Name)
}

func TestMostRecentlyUpdated(t *testing.T) {
	records := []repo.Record{
		{Name: "old", UpdatedAt: daysAgo(100)},
		{Name: "fresh", UpdatedAt: daysAgo(1)},
		{Name: "stale", UpdatedAt: daysAgo(400)},
	}

	recent := MostRecentlyUpdated(records, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "fresh", recent[0].Name)
	assert.Equal(t, "old", recent[1].Name)
}

func TestComputeAveragesEmpty(t *testing.T) {
	averages := ComputeAverages(nil)
	assert.False(t, averages.HasData)
	assert.Zero(t, averages.Stars)
}

func TestComputeAverages(t *testing.T) {
	records := []repo.Record{
		{Stars: 10, Forks: 1, Watchers: 2, Size: 100, OpenIssues: 0},
		{Stars: 21, Forks: 2, Watchers: 4, Size: 200, OpenIssues: 3},
	}

	averages := ComputeAverages(records)

	assert.True(t, averages.HasData)
	assert.Equal(t, 16, averages.Stars) // 15.5 rounds up
	assert.Equal(t, 2, averages.Forks)
	assert.Equal(t, 3, averages.Watchers)
	assert.Equal(t, 150, averages.SizeKB)
	assert.Equal(t, 2, averages.OpenIssues)
}

func TestActivityBuckets(t *testing.T) {
	now := time.Now()
	records := []repo.Record{
		{Name: "hot", Stars: 50, UpdatedAt: daysAgo(2)},
		{Name: "quiet-but-recent", Stars: 1, UpdatedAt: daysAgo(3)},
		{Name: "popular-but-idle", Stars: 500, UpdatedAt: daysAgo(90)},
		{Name: "dead", Stars: 5, UpdatedAt: daysAgo(400)},
		{Name: "rising", Stars: 20, UpdatedAt: daysAgo(20)},
	}

	trending := activityBucketAt(records, BucketTrending, now)
	require.Len(t, trending, 2)
	assert.Equal(t, "hot", trending[0].Name)
	assert.Equal(t, "rising", trending[1].Name)

	abandoned := activityBucketAt(records, BucketAbandoned, now)
	require.Len(t, abandoned, 1)
	assert.Equal(t, "dead", abandoned[0].Name)

	active := activityBucketAt(records, BucketActive, now)
	require.Len(t, active, 2)

	// Unknown bucket names return the full input unchanged.
	unknown := activityBucketAt(records, "nonsense", now)
	assert.Equal(t, records, unknown)
}

func TestBuildReport(t *testing.T) {
	created := time.Date(2023, time.March, 10, 0, 0, 0, 0, time.UTC)
	records := []repo.Record{
		{Name: "a", Stars: 100, Language: "Go", CreatedAt: created, UpdatedAt: daysAgo(1)},
		{Name: "b", Stars: 50, Language: "Go", CreatedAt: created.AddDate(0, 1, 0), UpdatedAt: daysAgo(400)},
	}

	report := BuildReport(records)

	assert.Equal(t, 2, report.Overview.Repositories)
	require.Len(t, report.Languages, 1)
	assert.Equal(t, 2, report.Languages[0].Count)
	require.Len(t, report.TopByStars, 2)
	assert.Equal(t, "a", report.TopByStars[0].Name)
	assert.True(t, report.Averages.HasData)
	assert.Equal(t, 1, report.CreationTimeline["2023-03"])
	assert.Equal(t, 1, report.CreationTimeline["2023-04"])
	assert.Equal(t, 1, report.Trending)
	assert.Equal(t, 1, report.Abandoned)
	assert.Equal(t, 1, report.Active)
}
