package controllers

import (
	"math"
	"sort"
	"strings"
	"time"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func reverse[S ~[]E, E any](s S) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

type growthPoint struct {
	Month           string `json:"month"`
	NewUsers        int    `json:"new_users"`
	CumulativeUsers int    `json:"cumulative_users"`
}

// accumulateGrowth adds the running total to per-month signup counts. Months
// must already be in ascending order.
func accumulateGrowth(points []growthPoint) []growthPoint {
	sum := 0
	for i := range points {
		sum += points[i].NewUsers
		points[i].CumulativeUsers = sum
	}
	return points
}

// cohortObservable reports whether relative month monthOffset of a YYYY-MM
// cohort has already occurred. A future month must be reported as null, never
// as 0% retention.
func cohortObservable(cohort string, monthOffset int, now time.Time) bool {
	t, err := time.Parse("2006-01", cohort)
	if err != nil {
		return false
	}
	return !t.AddDate(0, monthOffset, 0).After(now)
}

// retentionPct is the retained share of a cohort rounded to the nearest
// integer percentage; 0 for an empty cohort.
func retentionPct(retained, cohortSize int) int {
	if cohortSize <= 0 {
		return 0
	}
	return int(math.Round(float64(retained) / float64(cohortSize) * 100))
}

type tierFeatureCount struct {
	Tier         string
	FeatureUsage string
	Count        int
}

type featureHeatmapEntry struct {
	Feature      string `json:"feature"`
	Free         int    `json:"free"`
	Starter      int    `json:"starter"`
	Professional int    `json:"professional"`
	Enterprise   int    `json:"enterprise"`
}

// buildFeatureHeatmap splits each comma-joined feature_usage string into
// individual tags, accumulates per-tier counts, and returns the top 10 tags
// by cross-tier total. Tags are trimmed and empties dropped.
func buildFeatureHeatmap(rows []tierFeatureCount) []featureHeatmapEntry {
	byFeature := map[string]*featureHeatmapEntry{}
	order := []string{}

	for _, row := range rows {
		for _, raw := range strings.Split(row.FeatureUsage, ",") {
			feature := strings.TrimSpace(raw)
			if feature == "" {
				continue
			}
			e, ok := byFeature[feature]
			if !ok {
				e = &featureHeatmapEntry{Feature: feature}
				byFeature[feature] = e
				order = append(order, feature)
			}
			switch row.Tier {
			case "free":
				e.Free += row.Count
			case "starter":
				e.Starter += row.Count
			case "professional":
				e.Professional += row.Count
			case "enterprise":
				e.Enterprise += row.Count
			}
		}
	}

	entries := make([]featureHeatmapEntry, 0, len(order))
	for _, feature := range order {
		entries = append(entries, *byFeature[feature])
	}
	total := func(e featureHeatmapEntry) int {
		return e.Free + e.Starter + e.Professional + e.Enterprise
	}
	sort.SliceStable(entries, func(i, j int) bool {
		ti, tj := total(entries[i]), total(entries[j])
		if ti != tj {
			return ti > tj
		}
		return entries[i].Feature < entries[j].Feature
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}
	return entries
}
