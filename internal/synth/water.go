package synth

import (
	"math"
	"math/rand"

	"ecostat/domain/core"
	"ecostat/domain/dataset"
)

// Water-quality variable keys
const (
	VarPH              core.VariableKey = "ph"
	VarDissolvedOxygen core.VariableKey = "dissolved_oxygen"
	VarTurbidity       core.VariableKey = "turbidity"
	VarTemperature     core.VariableKey = "temperature"
)

// SiteSpec describes one monitoring site's water-quality profile
type SiteSpec struct {
	Name string
	N    int

	PHMean, PHStdDev     float64
	DOMean, DOStdDev     float64 // mg/L
	TurbLogMean          float64 // log NTU; turbidity is right-skewed
	TurbLogStdDev        float64
	TempMean, TempStdDev float64 // Celsius
}

// DefaultSites are the course's three monitoring sites: an upstream
// reference site, a midstream agricultural reach, and a downstream
// urban reach with noisier turbidity.
func DefaultSites() []SiteSpec {
	return []SiteSpec{
		{
			Name: "upstream", N: 60,
			PHMean: 7.4, PHStdDev: 0.20,
			DOMean: 9.2, DOStdDev: 0.7,
			TurbLogMean: 1.1, TurbLogStdDev: 0.35,
			TempMean: 14.0, TempStdDev: 1.5,
		},
		{
			Name: "midstream", N: 60,
			PHMean: 7.1, PHStdDev: 0.25,
			DOMean: 8.1, DOStdDev: 0.9,
			TurbLogMean: 1.8, TurbLogStdDev: 0.45,
			TempMean: 16.0, TempStdDev: 1.8,
		},
		{
			Name: "downstream", N: 60,
			PHMean: 6.8, PHStdDev: 0.35,
			DOMean: 6.9, DOStdDev: 1.1,
			TurbLogMean: 2.4, TurbLogStdDev: 0.60,
			TempMean: 18.5, TempStdDev: 2.2,
		},
	}
}

// WaterQualityTable holds the multi-site dataset in two shapes: one
// columnar table per site for correlation work, and per-variable group
// tables for the cross-site tests.
type WaterQualityTable struct {
	Sites   []dataset.Table // One columnar table per site
	BySite  map[core.VariableKey][]dataset.Group
	Pooled  *dataset.Table // All sites stacked, for whole-dataset summaries
	Seed    int64
	SiteIDs []string
}

// WaterQuality generates correlated multi-site readings. Within a site,
// warmer water carries less dissolved oxygen and higher turbidity tracks
// lower pH, giving the correlation walkthrough real structure.
func WaterQuality(specs []SiteSpec, seed int64) *WaterQualityTable {
	rng := rand.New(rand.NewSource(seed))

	out := &WaterQualityTable{
		BySite: map[core.VariableKey][]dataset.Group{},
		Seed:   seed,
	}

	var pooledPH, pooledDO, pooledTurb, pooledTemp []float64

	for _, spec := range specs {
		ph := make([]float64, spec.N)
		do := make([]float64, spec.N)
		turb := make([]float64, spec.N)
		temp := make([]float64, spec.N)

		for i := 0; i < spec.N; i++ {
			t := spec.TempMean + spec.TempStdDev*rng.NormFloat64()
			temp[i] = t

			// DO declines with temperature; residual noise keeps r < 1
			tempZ := (t - spec.TempMean) / spec.TempStdDev
			do[i] = spec.DOMean + spec.DOStdDev*(-0.6*tempZ+0.8*rng.NormFloat64())

			logTurb := spec.TurbLogMean + spec.TurbLogStdDev*rng.NormFloat64()
			turb[i] = math.Exp(logTurb)

			// Higher turbidity pulls pH down slightly
			turbZ := (logTurb - spec.TurbLogMean) / spec.TurbLogStdDev
			ph[i] = spec.PHMean + spec.PHStdDev*(-0.4*turbZ+0.9*rng.NormFloat64())
		}

		site := dataset.Table{
			ID:        core.DatasetID(core.NewID()),
			Name:      "water_quality_" + spec.Name,
			Seed:      seed,
			CreatedAt: core.Now(),
			Columns: []dataset.Column{
				{Key: VarPH, Values: ph},
				{Key: VarDissolvedOxygen, Values: do},
				{Key: VarTurbidity, Values: turb},
				{Key: VarTemperature, Values: temp},
			},
		}
		out.Sites = append(out.Sites, site)
		out.SiteIDs = append(out.SiteIDs, spec.Name)

		out.BySite[VarPH] = append(out.BySite[VarPH], dataset.Group{Name: spec.Name, Values: ph})
		out.BySite[VarDissolvedOxygen] = append(out.BySite[VarDissolvedOxygen], dataset.Group{Name: spec.Name, Values: do})
		out.BySite[VarTurbidity] = append(out.BySite[VarTurbidity], dataset.Group{Name: spec.Name, Values: turb})
		out.BySite[VarTemperature] = append(out.BySite[VarTemperature], dataset.Group{Name: spec.Name, Values: temp})

		pooledPH = append(pooledPH, ph...)
		pooledDO = append(pooledDO, do...)
		pooledTurb = append(pooledTurb, turb...)
		pooledTemp = append(pooledTemp, temp...)
	}

	out.Pooled = &dataset.Table{
		ID:        core.DatasetID(core.NewID()),
		Name:      "water_quality_all_sites",
		Seed:      seed,
		CreatedAt: core.Now(),
		Columns: []dataset.Column{
			{Key: VarPH, Values: pooledPH},
			{Key: VarDissolvedOxygen, Values: pooledDO},
			{Key: VarTurbidity, Values: pooledTurb},
			{Key: VarTemperature, Values: pooledTemp},
		},
	}

	return out
}
