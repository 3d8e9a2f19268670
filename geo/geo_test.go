package geo_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"saasmetrics/backend/geo"
)

func TestLookupKnown(t *testing.T) {
	c := qt.New(t)

	coords, ok := geo.Lookup("New York, NY")

	c.Assert(ok, qt.IsTrue)
	c.Assert(coords, qt.Equals, geo.Coordinates{-74.0060, 40.7128})
}

func TestLookupUnknown(t *testing.T) {
	c := qt.New(t)

	_, ok := geo.Lookup("Atlantis")

	c.Assert(ok, qt.IsFalse)
}

func TestLocationsTableParses(t *testing.T) {
	c := qt.New(t)

	all := geo.Locations()

	c.Assert(len(all), qt.Equals, 35)
	// Every entry must resolve to real coordinates, never the zero value.
	zero := geo.Coordinates{}
	for _, loc := range all {
		coords, ok := geo.Lookup(loc)
		c.Assert(ok, qt.IsTrue)
		c.Assert(coords, qt.Not(qt.Equals), zero, qt.Commentf("location %q", loc))
	}
}
