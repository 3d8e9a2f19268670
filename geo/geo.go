// Package geo maps user location labels to map coordinates. The table is a
// static embedded YAML file; labels without an entry are dropped by callers
// rather than plotted at (0,0).
package geo

import (
	_ "embed"
	"log"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed locations.yaml
var locationsYAML []byte

// Coordinates is a [longitude, latitude] pair.
type Coordinates [2]float64

var coords map[string]Coordinates

func init() {
	if err := yaml.Unmarshal(locationsYAML, &coords); err != nil {
		log.Fatalf("geo: parse locations.yaml: %v", err)
	}
}

// Lookup returns the coordinates for a location label. ok is false for
// unknown labels.
func Lookup(location string) (c Coordinates, ok bool) {
	c, ok = coords[location]
	return c, ok
}

// Locations returns every known location label, sorted. Used by the seed
// generator so generated users land on mappable cities.
func Locations() []string {
	out := make([]string, 0, len(coords))
	for k := range coords {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
