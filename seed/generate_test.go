package seed_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"saasmetrics/backend/geo"
	"saasmetrics/backend/seed"
)

func testOptions() seed.Options {
	return seed.Options{
		Users: 50,
		Start: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Seed:  1,
	}
}

func TestGenerateDeterministic(t *testing.T) {
	c := qt.New(t)

	a := seed.Generate(testOptions())
	b := seed.Generate(testOptions())

	c.Assert(a, qt.DeepEquals, b)
}

func TestGenerateUserInvariants(t *testing.T) {
	c := qt.New(t)

	ds := seed.Generate(testOptions())

	c.Assert(ds.Users, qt.HasLen, 50)
	seen := map[string]bool{}
	for _, u := range ds.Users {
		c.Assert(seen[u.Email], qt.IsFalse, qt.Commentf("duplicate email %s", u.Email))
		seen[u.Email] = true

		c.Assert(u.SignupDate.Before(testOptions().Start), qt.IsFalse)
		c.Assert(u.SignupDate.After(testOptions().End), qt.IsFalse)

		_, known := geo.Lookup(u.Location)
		c.Assert(known, qt.IsTrue, qt.Commentf("unmappable location %q", u.Location))
	}
}

func TestGenerateRevenueInvariants(t *testing.T) {
	c := qt.New(t)

	ds := seed.Generate(testOptions())

	c.Assert(len(ds.Revenue) > 0, qt.IsTrue)
	for _, r := range ds.Revenue {
		if r.TransactionType == "refund" {
			c.Assert(r.Amount <= 0, qt.IsTrue, qt.Commentf("refund %d has positive amount %v", r.ID, r.Amount))
		} else {
			c.Assert(r.Amount >= 0, qt.IsTrue, qt.Commentf("transaction %d has negative amount %v", r.ID, r.Amount))
		}
		c.Assert(r.UserID >= 1, qt.IsTrue)
		c.Assert(r.UserID <= len(ds.Users), qt.IsTrue)
	}
}

func TestGenerateUsageInvariants(t *testing.T) {
	c := qt.New(t)

	ds := seed.Generate(testOptions())

	for _, u := range ds.Usage {
		c.Assert(u.SupportTicketsResolved <= u.SupportTicketsOpened, qt.IsTrue)
		c.Assert(u.LoginCount >= 0, qt.IsTrue)
		c.Assert(u.FeatureUsage, qt.Not(qt.Equals), "")
	}
}

func TestGenerateMarketingInvariants(t *testing.T) {
	c := qt.New(t)

	ds := seed.Generate(testOptions())

	for _, m := range ds.Marketing {
		c.Assert(m.Clicks <= m.Impressions, qt.IsTrue)
		if m.FunnelStage != "conversion" {
			c.Assert(m.Conversions, qt.Equals, 0)
		}
		if m.Conversions == 0 {
			c.Assert(m.ConversionValue, qt.Equals, 0.0)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	c := qt.New(t)

	dir := t.TempDir()
	ds := seed.Generate(testOptions())
	c.Assert(ds.WriteCSV(dir), qt.IsNil)

	for _, tbl := range seed.Tables {
		f, err := os.Open(filepath.Join(dir, tbl.Name+".csv"))
		c.Assert(err, qt.IsNil)
		rows, err := csv.NewReader(f).ReadAll()
		f.Close()
		c.Assert(err, qt.IsNil)

		c.Assert(rows[0], qt.DeepEquals, tbl.Columns)
		c.Assert(len(rows) > 1, qt.IsTrue, qt.Commentf("table %s is empty", tbl.Name))
		c.Assert(rows[1:], qt.DeepEquals, ds.Records(tbl.Name))
	}
}
