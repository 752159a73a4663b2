// Package analytics computes descriptive statistics over repository
// records supplied wholesale by the caller. Every function is a pure
// function of its input; nothing is fetched or cached here.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"repoforge-core/internal/domain/repo"
)

// Activity bucket names understood by ActivityBucket.
const (
	BucketTrending  = "trending"
	BucketAbandoned = "abandoned"
	BucketActive    = "active"
)

const (
	trendingMinStars = 10
	trendingWindow   = 30 * 24 * time.Hour
	abandonedAfter   = 365 * 24 * time.Hour
	activeWindow     = 7 * 24 * time.Hour
)

// Totals holds counts and sums over a record set.
type Totals struct {
	Repositories int `json:"repositories"`
	Stars        int `json:"stars"`
	Forks        int `json:"forks"`
	Watchers     int `json:"watchers"`
	SizeKB       int `json:"size_kb"`
	OpenIssues   int `json:"open_issues"`
	Private      int `json:"private"`
	Forked       int `json:"forked"`
	Archived     int `json:"archived"`
}

// ComputeTotals sums the count metrics and status flags over records.
// Empty input yields the zero value.
func ComputeTotals(records []repo.Record) Totals {
	var t Totals
	t.Repositories = len(records)
	for _, r := range records {
		t.Stars += r.Stars
		t.Forks += r.Forks
		t.Watchers += r.Watchers
		t.SizeKB += r.Size
		t.OpenIssues += r.OpenIssues
		if r.Private {
			t.Private++
		}
		if r.Fork {
			t.Forked++
		}
		if r.Archived {
			t.Archived++
		}
	}
	return t
}

// LanguageCount is one entry of the language histogram.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// LanguageHistogram counts records per primary language, descending by
// count with ties keeping first-seen order. Records without a language are
// left out of the histogram.
func LanguageHistogram(records []repo.Record) []LanguageCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		if r.Language == "" {
			continue
		}
		if _, seen := counts[r.Language]; !seen {
			order = append(order, r.Language)
		}
		counts[r.Language]++
	}

	histogram := make([]LanguageCount, 0, len(order))
	for _, language := range order {
		histogram = append(histogram, LanguageCount{Language: language, Count: counts[language]})
	}
	sort.SliceStable(histogram, func(i, j int) bool {
		return histogram[i].Count > histogram[j].Count
	})
	return histogram
}

// TopByStars returns the n records with the highest star counts,
// stable-sorted descending. When n exceeds the input length, all records
// are returned sorted.
func TopByStars(records []repo.Record, n int) []repo.Record {
	sorted := sortedCopy(records, func(a, b repo.Record) bool {
		return a.Stars > b.Stars
	})
	return limit(sorted, n)
}

// MostRecentlyUpdated returns the n most recently updated records,
// stable-sorted descending by update time.
func MostRecentlyUpdated(records []repo.Record, n int) []repo.Record {
	sorted := sortedCopy(records, func(a, b repo.Record) bool {
		return a.UpdatedAt.After(b.UpdatedAt)
	})
	return limit(sorted, n)
}

// Averages holds per-repository means rounded to the nearest integer.
// HasData is false for empty input; the numeric fields are then zero
// rather than NaN.
type Averages struct {
	HasData    bool `json:"has_data"`
	Stars      int  `json:"stars"`
	Forks      int  `json:"forks"`
	Watchers   int  `json:"watchers"`
	SizeKB     int  `json:"size_kb"`
	OpenIssues int  `json:"open_issues"`
}

// ComputeAverages computes the mean of each count metric. Division by zero
// is guarded explicitly: empty input returns the no-data sentinel.
func ComputeAverages(records []repo.Record) Averages {
	if len(records) == 0 {
		return Averages{}
	}

	starValues := make([]float64, len(records))
	forkValues := make([]float64, len(records))
	watcherValues := make([]float64, len(records))
	sizeValues := make([]float64, len(records))
	issueValues := make([]float64, len(records))
	for i, r := range records {
		starValues[i] = float64(r.Stars)
		forkValues[i] = float64(r.Forks)
		watcherValues[i] = float64(r.Watchers)
		sizeValues[i] = float64(r.Size)
		issueValues[i] = float64(r.OpenIssues)
	}

	return Averages{
		HasData:    true,
		Stars:      roundedMean(starValues),
		Forks:      roundedMean(forkValues),
		Watchers:   roundedMean(watcherValues),
		SizeKB:     roundedMean(sizeValues),
		OpenIssues: roundedMean(issueValues),
	}
}

// ActivityBucket partitions records by recency relative to the time of the
// call. Unknown bucket names return the input unchanged.
func ActivityBucket(records []repo.Record, bucket string) []repo.Record {
	return activityBucketAt(records, bucket, time.Now())
}

func activityBucketAt(records []repo.Record, bucket string, now time.Time) []repo.Record {
	switch bucket {
	case BucketTrending:
		var trending []repo.Record
		for _, r := range records {
			if r.Stars > trendingMinStars && now.Sub(r.UpdatedAt) <= trendingWindow {
				trending = append(trending, r)
			}
		}
		sort.SliceStable(trending, func(i, j int) bool {
			return trending[i].Stars > trending[j].Stars
		})
		return trending
	case BucketAbandoned:
		var abandoned []repo.Record
		for _, r := range records {
			if now.Sub(r.UpdatedAt) > abandonedAfter {
				abandoned = append(abandoned, r)
			}
		}
		return abandoned
	case BucketActive:
		var active []repo.Record
		for _, r := range records {
			if now.Sub(r.UpdatedAt) <= activeWindow {
				active = append(active, r)
			}
		}
		return active
	default:
		return records
	}
}

// Report aggregates all analytics over one record set.
type Report struct {
	Overview         Totals          `json:"overview"`
	Languages        []LanguageCount `json:"languages"`
	TopByStars       []repo.Record   `json:"top_by_stars"`
	RecentlyUpdated  []repo.Record   `json:"recently_updated"`
	Averages         Averages        `json:"averages"`
	CreationTimeline map[string]int  `json:"creation_timeline"`
	Trending         int             `json:"trending"`
	Abandoned        int             `json:"abandoned"`
	Active           int             `json:"active"`
}

// BuildReport produces the combined analytics report: overview totals,
// language histogram, top five by stars, five most recently updated,
// averages, a month-keyed creation timeline, and activity bucket counts.
func BuildReport(records []repo.Record) Report {
	timeline := make(map[string]int)
	for _, r := range records {
		if r.CreatedAt.IsZero() {
			continue
		}
		timeline[r.CreatedAt.Format("2006-01")]++
	}

	now := time.Now()
	return Report{
		Overview:         ComputeTotals(records),
		Languages:        LanguageHistogram(records),
		TopByStars:       TopByStars(records, 5),
		RecentlyUpdated:  MostRecentlyUpdated(records, 5),
		Averages:         ComputeAverages(records),
		CreationTimeline: timeline,
		Trending:         len(activityBucketAt(records, BucketTrending, now)),
		Abandoned:        len(activityBucketAt(records, BucketAbandoned, now)),
		Active:           len(activityBucketAt(records, BucketActive, now)),
	}
}

func sortedCopy(records []repo.Record, less func(a, b repo.Record) bool) []repo.Record {
	sorted := make([]repo.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func limit(records []repo.Record, n int) []repo.Record {
	if n < 0 {
		n = 0
	}
	if n > len(records) {
		n = len(records)
	}
	return records[:n]
}

func roundedMean(values []float64) int {
	mean, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return int(math.Round(mean))
}
