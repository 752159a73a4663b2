// Package comparison computes relational statistics between repository
// records: pairwise comparisons, a weighted similarity score, and metric
// rankings. All functions are pure.
package comparison

import (
	"math"
	"sort"

	"repoforge-core/internal/domain/repo"
)

// Ranking criteria understood by RankBest.
const (
	CriterionStars    = "stars"
	CriterionForks    = "forks"
	CriterionWatchers = "watchers"
	CriterionSize     = "size"
	CriterionIssues   = "issues"
	CriterionRecency  = "recency"
)

// Similarity weights. Topic overlap and size closeness scale within their
// weight; the rest are all-or-nothing.
const (
	languageWeight   = 20
	licenseWeight    = 10
	visibilityWeight = 10
	forkStatusWeight = 10
	topicsWeight     = 30
	sizeWeight       = 20
)

// WinnerTie marks a metric comparison where both sides hold the same value.
const WinnerTie = "tie"

// MetricComparison compares one numeric metric across two records. Winner
// names the record holding the larger value; for size and issues "winner"
// means "larger", not "better".
type MetricComparison struct {
	A          int    `json:"a"`
	B          int    `json:"b"`
	Difference int    `json:"difference"`
	Winner     string `json:"winner"`
}

// AttributeComparison compares one categorical attribute.
type AttributeComparison struct {
	A    string `json:"a"`
	B    string `json:"b"`
	Same bool   `json:"same"`
}

// TimestampComparison reports which record is older and the gap in days.
type TimestampComparison struct {
	Older          string `json:"older"`
	MoreRecent     string `json:"more_recent"`
	DifferenceDays int    `json:"difference_days"`
}

// TopicsComparison holds the shared and per-side topic sets.
type TopicsComparison struct {
	Common    []string `json:"common"`
	UniqueToA []string `json:"unique_to_a"`
	UniqueToB []string `json:"unique_to_b"`
}

// PairComparison is the full two-repository comparison result.
type PairComparison struct {
	Repositories [2]string                   `json:"repositories"`
	Metrics      map[string]MetricComparison `json:"metrics"`
	Language     AttributeComparison         `json:"language"`
	License      AttributeComparison         `json:"license"`
	Visibility   AttributeComparison         `json:"visibility"`
	Archived     AttributeComparison         `json:"archived"`
	Created      TimestampComparison         `json:"created"`
	Updated      TimestampComparison         `json:"updated"`
	Topics       TopicsComparison            `json:"topics"`
	Similarity   int                         `json:"similarity"`
}

// CompareTwo compares exactly two records across metrics, attributes,
// timestamps, and topics, and attaches the overall similarity score.
func CompareTwo(a, b repo.Record) PairComparison {
	return PairComparison{
		Repositories: [2]string{a.Name, b.Name},
		Metrics: map[string]MetricComparison{
			"stars":    compareMetric(a.Name, b.Name, a.Stars, b.Stars),
			"forks":    compareMetric(a.Name, b.Name, a.Forks, b.Forks),
			"watchers": compareMetric(a.Name, b.Name, a.Watchers, b.Watchers),
			"size":     compareMetric(a.Name, b.Name, a.Size, b.Size),
			"issues":   compareMetric(a.Name, b.Name, a.OpenIssues, b.OpenIssues),
		},
		Language:   compareAttribute(a.Language, b.Language),
		License:    compareAttribute(a.LicenseName(), b.LicenseName()),
		Visibility: compareAttribute(a.Visibility(), b.Visibility()),
		Archived:   compareAttribute(archivedLabel(a), archivedLabel(b)),
		Created:    compareTimestamps(a, b, true),
		Updated:    compareTimestamps(a, b, false),
		Topics:     compareTopics(a.Topics, b.Topics),
		Similarity: SimilarityScore(a, b),
	}
}

// SimilarityScore produces a weighted 0-100 score. Language, license,
// visibility, and fork-status matches are all-or-nothing; topic overlap
// scales with |common|/|union| (0 on an empty union); size closeness
// scales with 1 - |sizeA-sizeB|/mean(sizeA,sizeB), floored at 0 and
// defined as 0 when both sizes are 0. The score is symmetric.
func SimilarityScore(a, b repo.Record) int {
	score := 0.0
	if a.Language == b.Language {
		score += languageWeight
	}
	if a.LicenseName() == b.LicenseName() {
		score += licenseWeight
	}
	if a.Private == b.Private {
		score += visibilityWeight
	}
	if a.Fork == b.Fork {
		score += forkStatusWeight
	}

	topics := compareTopics(a.Topics, b.Topics)
	union := len(topics.Common) + len(topics.UniqueToA) + len(topics.UniqueToB)
	if union > 0 {
		score += topicsWeight * float64(len(topics.Common)) / float64(union)
	}

	if a.Size > 0 || b.Size > 0 {
		mean := float64(a.Size+b.Size) / 2
		closeness := 1 - math.Abs(float64(a.Size-b.Size))/mean
		if closeness > 0 {
			score += sizeWeight * closeness
		}
	}

	return int(math.Round(score))
}

// RankedEntry is one row of a ranking, 1-based.
type RankedEntry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Ranking is the result of ranking a record set by one criterion.
type Ranking struct {
	Criterion string        `json:"criterion"`
	Best      RankedEntry   `json:"best"`
	Entries   []RankedEntry `json:"entries"`
}

// RankBest sorts records descending by the named metric, except issues
// which sorts ascending (fewer open issues ranks better). Unrecognized
// criteria fall back to stars.
func RankBest(records []repo.Record, criterion string) Ranking {
	value, ascending := metricExtractor(criterion)
	if value == nil {
		criterion = CriterionStars
		value, ascending = metricExtractor(criterion)
	}

	sorted := make([]repo.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return value(sorted[i]) < value(sorted[j])
		}
		return value(sorted[i]) > value(sorted[j])
	})

	entries := make([]RankedEntry, len(sorted))
	for i, r := range sorted {
		entries[i] = RankedEntry{Rank: i + 1, Name: r.Name, Value: value(r)}
	}

	ranking := Ranking{Criterion: criterion, Entries: entries}
	if len(entries) > 0 {
		ranking.Best = entries[0]
	}
	return ranking
}

// CompareMultiple ranks every input record on each of the five count
// metrics, descending by raw value.
func CompareMultiple(records []repo.Record) map[string]Ranking {
	rankings := make(map[string]Ranking, 5)
	for _, criterion := range []string{
		CriterionStars, CriterionForks, CriterionWatchers, CriterionSize, CriterionIssues,
	} {
		value, _ := metricExtractor(criterion)
		sorted := make([]repo.Record, len(records))
		copy(sorted, records)
		sort.SliceStable(sorted, func(i, j int) bool {
			return value(sorted[i]) > value(sorted[j])
		})
		entries := make([]RankedEntry, len(sorted))
		for i, r := range sorted {
			entries[i] = RankedEntry{Rank: i + 1, Name: r.Name, Value: value(r)}
		}
		rankings[criterion] = Ranking{Criterion: criterion, Entries: entries}
	}
	return rankings
}

func metricExtractor(criterion string) (value func(repo.Record) int, ascending bool) {
	switch criterion {
	case CriterionStars:
		return func(r repo.Record) int { return r.Stars }, false
	case CriterionForks:
		return func(r repo.Record) int { return r.Forks }, false
	case CriterionWatchers:
		return func(r repo.Record) int { return r.Watchers }, false
	case CriterionSize:
		return func(r repo.Record) int { return r.Size }, false
	case CriterionIssues:
		return func(r repo.Record) int { return r.OpenIssues }, true
	case CriterionRecency:
		return func(r repo.Record) int { return int(r.UpdatedAt.Unix()) }, false
	default:
		return nil, false
	}
}

func compareMetric(nameA, nameB string, a, b int) MetricComparison {
	winner := WinnerTie
	if a > b {
		winner = nameA
	} else if b > a {
		winner = nameB
	}
	return MetricComparison{A: a, B: b, Difference: a - b, Winner: winner}
}

func compareAttribute(a, b string) AttributeComparison {
	return AttributeComparison{A: a, B: b, Same: a == b}
}

func archivedLabel(r repo.Record) string {
	if r.Archived {
		return "archived"
	}
	return "maintained"
}

func compareTimestamps(a, b repo.Record, created bool) TimestampComparison {
	timeA, timeB := a.UpdatedAt, b.UpdatedAt
	if created {
		timeA, timeB = a.CreatedAt, b.CreatedAt
	}

	older, moreRecent := a.Name, b.Name
	if timeB.Before(timeA) {
		older, moreRecent = b.Name, a.Name
	}
	days := int(math.Round(math.Abs(timeA.Sub(timeB).Hours()) / 24))
	return TimestampComparison{Older: older, MoreRecent: moreRecent, DifferenceDays: days}
}

func compareTopics(topicsA, topicsB []string) TopicsComparison {
	setA := make(map[string]bool, len(topicsA))
	for _, topic := range topicsA {
		setA[topic] = true
	}
	setB := make(map[string]bool, len(topicsB))
	for _, topic := range topicsB {
		setB[topic] = true
	}

	// Duplicates within one side must not inflate the sets; each topic
	// counts once, in first-seen order.
	result := TopicsComparison{
		Common:    []string{},
		UniqueToA: []string{},
		UniqueToB: []string{},
	}
	seen := make(map[string]bool, len(topicsA)+len(topicsB))
	for _, topic := range topicsA {
		if seen[topic] {
			continue
		}
		seen[topic] = true
		if setB[topic] {
			result.Common = append(result.Common, topic)
		} else {
			result.UniqueToA = append(result.UniqueToA, topic)
		}
	}
	for _, topic := range topicsB {
		if seen[topic] || setA[topic] {
			continue
		}
		seen[topic] = true
		result.UniqueToB = append(result.UniqueToB, topic)
	}
	return result
}
