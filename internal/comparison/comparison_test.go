package comparison

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repoforge-core/internal/domain/repo"
)

func sampleRecord(name string) repo.Record {
	return repo.Record{
		Name:      name,
		Language:  "Go",
		License:   &repo.License{Name: "MIT License"},
		Stars:     100,
		Forks:     10,
		Watchers:  20,
		Size:      500,
		Topics:    []string{"cli", "tooling"},
		CreatedAt: time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSimilarityScoreIdentical(t *testing.T) {
	a := sampleRecord("a")
	b := sampleRecord("b")
	assert.Equal(t, 100, SimilarityScore(a, b))
}

func TestSimilarityScoreSymmetric(t *testing.T) {
	a := sampleRecord("a")
	b := sampleRecord("b")
	b.Language = "Rust"
	b.Size = 900
	b.Topics = []string{"cli", "web"}
	b.Fork = true

	assert.Equal(t, SimilarityScore(a, b), SimilarityScore(b, a))
}

func TestSimilarityScoreDuplicateTopicsSymmetric(t *testing.T) {
	a := sampleRecord("a")
	b := sampleRecord("b")
	a.Topics = []string{"cli", "cli", "web"}
	b.Topics = []string{"cli"}

	// Duplicate topics on one side must not skew the overlap ratio.
	assert.Equal(t, SimilarityScore(a, b), SimilarityScore(b, a))

	result := CompareTwo(a, b)
	assert.Equal(t, []string{"cli"}, result.Topics.Common)
	assert.Equal(t, []string{"web"}, result.Topics.UniqueToA)
	assert.Empty(t, result.Topics.UniqueToB)
}

func TestSimilarityScoreStarsIgnoredSizeClose(t *testing.T) {
	a := sampleRecord("a")
	b := sampleRecord("b")
	a.Stars = 100
	b.Stars = 50
	b.Size = 450 // slightly apart, so the size component is partial

	score := SimilarityScore(a, b)
	assert.Greater(t, score, 80)
	assert.Less(t, score, 100)
}

func TestSimilarityScoreZeroSizes(t *testing.T) {
	a := sampleRecord("a")
	b := sampleRecord("b")
	a.Size = 0
	b.Size = 0

	// Both sizes zero contributes nothing, guarding the division.
	assert.Equal(t, 80, SimilarityScore(a, b))
}

func TestSimilarityScoreNoTopics(t *testing.T) {
	a := sampleRecord("a")
	b := sampleRecord("b")
	a.Topics = nil
	b.Topics = nil

	// Empty topic union contributes nothing.
	assert.Equal(t, 70, SimilarityScore(a, b))
}

func TestCompareTwo(t *testing.T) {
	a := sampleRecord("alpha")
	b := sampleRecord("beta")
	a.Stars = 100
	b.Stars = 50
	b.OpenIssues = 7
	b.Topics = []string{"cli", "web"}
	b.UpdatedAt = a.UpdatedAt.AddDate(0, 0, -10)

	result := CompareTwo(a, b)

	stars := result.Metrics["stars"]
	assert.Equal(t, 100, stars.A)
	assert.Equal(t, 50, stars.B)
	assert.Equal(t, 50, stars.Difference)
	assert.Equal(t, "alpha", stars.Winner)

	// For issues the "winner" is the side with more, not the better one.
	issues := result.Metrics["issues"]
	assert.Equal(t, "beta", issues.Winner)
	assert.Equal(t, -7, issues.Difference)

	assert.True(t, result.Language.Same)
	assert.True(t, result.License.Same)
	assert.True(t, result.Visibility.Same)

	assert.Equal(t, "beta", result.Updated.Older)
	assert.Equal(t, "alpha", result.Updated.MoreRecent)
	assert.Equal(t, 10, result.Updated.DifferenceDays)

	assert.Equal(t, []string{"cli"}, result.Topics.Common)
	assert.Equal(t, []string{"tooling"}, result.Topics.UniqueToA)
	assert.Equal(t, []string{"web"}, result.Topics.UniqueToB)

	assert.Equal(t, SimilarityScore(a, b), result.Similarity)
}

func TestCompareTwoMetricTie(t *testing.T) {
	a := sampleRecord("alpha")
	b := sampleRecord("beta")

	result := CompareTwo(a, b)
	assert.Equal(t, WinnerTie, result.Metrics["stars"].Winner)
}

func TestRankBestByStars(t *testing.T) {
	records := []repo.Record{
		{Name: "low", Stars: 5},
		{Name: "high", Stars: 500},
		{Name: "mid", Stars: 50},
	}

	ranking := RankBest(records, CriterionStars)

	assert.Equal(t, CriterionStars, ranking.Criterion)
	assert.Equal(t, RankedEntry{Rank: 1, Name: "high", Value: 500}, ranking.Best)
	require.Len(t, ranking.Entries, 3)
	assert.Equal(t, "mid", ranking.Entries[1].Name)
	assert.Equal(t, 3, ranking.Entries[2].Rank)
}

func TestRankBestByIssuesAscending(t *testing.T) {
	records := []repo.Record{
		{Name: "buggy", OpenIssues: 40},
		{Name: "clean", OpenIssues: 1},
		{Name: "middling", OpenIssues: 10},
	}

	ranking := RankBest(records, CriterionIssues)

	assert.Equal(t, "clean", ranking.Best.Name)
	assert.Equal(t, 1, ranking.Best.Value)
	assert.Equal(t, "buggy", ranking.Entries[2].Name)
}

func TestRankBestUnknownCriterionFallsBackToStars(t *testing.T) {
	records := []repo.Record{
		{Name: "a", Stars: 1},
		{Name: "b", Stars: 2},
	}

	ranking := RankBest(records, "bogus")

	assert.Equal(t, CriterionStars, ranking.Criterion)
	assert.Equal(t, "b", ranking.Best.Name)
}

func TestRankBestByRecency(t *testing.T) {
	records := []repo.Record{
		{Name: "old", UpdatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "new", UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	ranking := RankBest(records, CriterionRecency)
	assert.Equal(t, "new", ranking.Best.Name)
}

func TestCompareMultiple(t *testing.T) {
	records := []repo.Record{
		{Name: "a", Stars: 10, Forks: 1, Watchers: 3, Size: 100, OpenIssues: 5},
		{Name: "b", Stars: 20, Forks: 9, Watchers: 1, Size: 50, OpenIssues: 2},
		{Name: "c", Stars: 15, Forks: 4, Watchers: 7, Size: 500, OpenIssues: 8},
	}

	rankings := CompareMultiple(records)

	require.Len(t, rankings, 5)
	for _, criterion := range []string{"stars", "forks", "watchers", "size", "issues"} {
		ranking, ok := rankings[criterion]
		require.True(t, ok, "missing ranking for %s", criterion)
		require.Len(t, ranking.Entries, 3)
		assert.Equal(t, 1, ranking.Entries[0].Rank)
	}

	assert.Equal(t, "b", rankings["stars"].Entries[0].Name)
	assert.Equal(t, "c", rankings["size"].Entries[0].Name)
	// CompareMultiple ranks every metric descending by raw value,
	// including issues.
	assert.Equal(t, "c", rankings["issues"].Entries[0].Name)
}
