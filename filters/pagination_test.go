package filters_test

import (
	"math"
	"testing"

	qt "github.com/frankban/quicktest"

	"saasmetrics/backend/filters"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		limit      string
		maxLimit   int
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", page: "", limit: "", maxLimit: 500, wantPage: 1, wantLimit: 50, wantOffset: 0},
		{name: "explicit", page: "3", limit: "20", maxLimit: 500, wantPage: 3, wantLimit: 20, wantOffset: 40},
		{name: "non-numeric page", page: "abc", limit: "10", maxLimit: 500, wantPage: 1, wantLimit: 10, wantOffset: 0},
		{name: "zero page clamps", page: "0", limit: "10", maxLimit: 500, wantPage: 1, wantLimit: 10, wantOffset: 0},
		{name: "negative page clamps", page: "-4", limit: "10", maxLimit: 500, wantPage: 1, wantLimit: 10, wantOffset: 0},
		{name: "negative limit clamps", page: "2", limit: "-1", maxLimit: 500, wantPage: 2, wantLimit: 50, wantOffset: 50},
		{name: "limit capped", page: "1", limit: "9999", maxLimit: 500, wantPage: 1, wantLimit: 500, wantOffset: 0},
		{name: "no cap when zero", page: "1", limit: "9999", maxLimit: 0, wantPage: 1, wantLimit: 9999, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			page, limit, offset := filters.ParsePage(tt.page, tt.limit, tt.maxLimit)

			c.Assert(page, qt.Equals, tt.wantPage)
			c.Assert(limit, qt.Equals, tt.wantLimit)
			c.Assert(offset, qt.Equals, tt.wantOffset)
		})
	}
}

func TestParsePageHugePageDoesNotOverflow(t *testing.T) {
	c := qt.New(t)

	// An astronomically large page must clamp, never wrap into a negative
	// offset.
	page, limit, offset := filters.ParsePage("9223372036854775807", "500", 500)

	c.Assert(limit, qt.Equals, 500)
	c.Assert(page, qt.Equals, math.MaxInt/500)
	c.Assert(offset >= 0, qt.IsTrue)
	c.Assert(offset, qt.Equals, (page-1)*500)
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		total     int
		wantPages int
	}{
		{name: "exact multiple", limit: 50, total: 100, wantPages: 2},
		{name: "partial last page", limit: 50, total: 101, wantPages: 3},
		{name: "empty set", limit: 50, total: 0, wantPages: 0},
		{name: "single row", limit: 50, total: 1, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			p := filters.NewPagination(2, tt.limit, tt.total)

			c.Assert(p.Page, qt.Equals, 2)
			c.Assert(p.Limit, qt.Equals, tt.limit)
			c.Assert(p.Total, qt.Equals, tt.total)
			c.Assert(p.TotalPages, qt.Equals, tt.wantPages)
		})
	}
}
