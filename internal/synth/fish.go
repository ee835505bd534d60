// Package synth generates the course's synthetic datasets. Every
// generator takes an explicit seed and owns its own RNG, so repeated
// runs of a walkthrough reproduce the same data and no generator
// touches process-wide random state.
package synth

import (
	"math/rand"

	"ecostat/domain/core"
	"ecostat/domain/dataset"
)

// HabitatSpec describes one habitat's fish-length distribution
type HabitatSpec struct {
	Name   string
	Mean   float64 // cm
	StdDev float64 // cm
	N      int
}

// DefaultHabitats are the course's three habitats. River fish run
// larger, pond fish smaller; lake sits in between so the ANOVA has a
// real gradient to find.
func DefaultHabitats() []HabitatSpec {
	return []HabitatSpec{
		{Name: "river", Mean: 42.0, StdDev: 6.0, N: 60},
		{Name: "lake", Mean: 38.5, StdDev: 5.0, N: 60},
		{Name: "pond", Mean: 35.0, StdDev: 4.5, N: 60},
	}
}

// FishLengths generates per-habitat fish-length samples from normal
// distributions. Lengths are clamped to a small positive floor; a
// negative fish is a simulation artifact, not an observation.
func FishLengths(specs []HabitatSpec, seed int64) *dataset.Table {
	rng := rand.New(rand.NewSource(seed))

	table := &dataset.Table{
		ID:        core.DatasetID(core.NewID()),
		Name:      "fish_lengths",
		Seed:      seed,
		CreatedAt: core.Now(),
	}

	for _, spec := range specs {
		values := make([]float64, spec.N)
		for i := range values {
			v := spec.Mean + spec.StdDev*rng.NormFloat64()
			if v < 1.0 {
				v = 1.0
			}
			values[i] = v
		}
		table.Groups = append(table.Groups, dataset.Group{Name: spec.Name, Values: values})
	}

	return table
}
