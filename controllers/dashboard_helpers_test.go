package controllers

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestAccumulateGrowth(t *testing.T) {
	c := qt.New(t)

	// 3 signups in 2024-01 and 2 in 2024-02 must cumulate to 3 then 5.
	got := accumulateGrowth([]growthPoint{
		{Month: "2024-01", NewUsers: 3},
		{Month: "2024-02", NewUsers: 2},
	})

	c.Assert(got, qt.DeepEquals, []growthPoint{
		{Month: "2024-01", NewUsers: 3, CumulativeUsers: 3},
		{Month: "2024-02", NewUsers: 2, CumulativeUsers: 5},
	})
}

func TestAccumulateGrowthEmpty(t *testing.T) {
	c := qt.New(t)

	c.Assert(accumulateGrowth([]growthPoint{}), qt.HasLen, 0)
}

func TestCohortObservable(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		cohort string
		offset int
		want   bool
	}{
		{name: "well in the past", cohort: "2025-01", offset: 3, want: true},
		{name: "lands this month", cohort: "2025-02", offset: 6, want: true},
		{name: "lands exactly on the first of this month", cohort: "2025-07", offset: 1, want: true},
		{name: "one month ahead", cohort: "2025-08", offset: 1, want: false},
		{name: "far ahead", cohort: "2025-06", offset: 6, want: false},
		{name: "unparseable cohort", cohort: "garbage", offset: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			c.Assert(cohortObservable(tt.cohort, tt.offset, now), qt.Equals, tt.want)
		})
	}
}

func TestRetentionPct(t *testing.T) {
	tests := []struct {
		name     string
		retained int
		size     int
		want     int
	}{
		{name: "full retention", retained: 10, size: 10, want: 100},
		{name: "none retained", retained: 0, size: 10, want: 0},
		{name: "rounds up", retained: 2, size: 3, want: 67},
		{name: "rounds down", retained: 1, size: 3, want: 33},
		{name: "half rounds up", retained: 1, size: 8, want: 13},
		{name: "empty cohort", retained: 0, size: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			c.Assert(retentionPct(tt.retained, tt.size), qt.Equals, tt.want)
		})
	}
}

func TestBuildFeatureHeatmapSplitsAndAccumulates(t *testing.T) {
	c := qt.New(t)

	got := buildFeatureHeatmap([]tierFeatureCount{
		{Tier: "free", FeatureUsage: "dashboard,reports", Count: 4},
		{Tier: "starter", FeatureUsage: "dashboard", Count: 2},
		{Tier: "enterprise", FeatureUsage: " reports , api ", Count: 1},
	})

	c.Assert(got, qt.DeepEquals, []featureHeatmapEntry{
		{Feature: "dashboard", Free: 4, Starter: 2},
		{Feature: "reports", Free: 4, Enterprise: 1},
		{Feature: "api", Enterprise: 1},
	})
}

func TestBuildFeatureHeatmapDropsEmptyTags(t *testing.T) {
	c := qt.New(t)

	got := buildFeatureHeatmap([]tierFeatureCount{
		{Tier: "free", FeatureUsage: "export,,  ,search", Count: 3},
	})

	c.Assert(got, qt.DeepEquals, []featureHeatmapEntry{
		{Feature: "export", Free: 3},
		{Feature: "search", Free: 3},
	})
}

func TestBuildFeatureHeatmapTopTen(t *testing.T) {
	c := qt.New(t)

	in := []tierFeatureCount{}
	features := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	for i, f := range features {
		in = append(in, tierFeatureCount{Tier: "professional", FeatureUsage: f, Count: len(features) - i})
	}

	got := buildFeatureHeatmap(in)

	c.Assert(got, qt.HasLen, 10)
	c.Assert(got[0].Feature, qt.Equals, "a")
	c.Assert(got[9].Feature, qt.Equals, "j")
}

func TestBuildFeatureHeatmapEmptyInput(t *testing.T) {
	c := qt.New(t)

	c.Assert(buildFeatureHeatmap(nil), qt.HasLen, 0)
}

func TestRound2(t *testing.T) {
	c := qt.New(t)

	c.Assert(round2(33.33333), qt.Equals, 33.33)
	c.Assert(round2(66.666), qt.Equals, 66.67)
	c.Assert(round2(0), qt.Equals, 0.0)
}

func TestReverse(t *testing.T) {
	c := qt.New(t)

	months := []monthlyRevenue{{Month: "2025-03"}, {Month: "2025-02"}, {Month: "2025-01"}}
	reverse(months)

	c.Assert(months[0].Month, qt.Equals, "2025-01")
	c.Assert(months[2].Month, qt.Equals, "2025-03")
}
