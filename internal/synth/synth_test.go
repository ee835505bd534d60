package synth

import (
	"math"
	"testing"

	"ecostat/internal/describe"
	"ecostat/internal/infer"
)

func TestFishLengths_Shape(t *testing.T) {
	specs := DefaultHabitats()
	table := FishLengths(specs, 42)

	if len(table.Groups) != len(specs) {
		t.Fatalf("got %d groups, want %d", len(table.Groups), len(specs))
	}
	for i, g := range table.Groups {
		if g.Name != specs[i].Name {
			t.Errorf("group %d name = %s, want %s", i, g.Name, specs[i].Name)
		}
		if len(g.Values) != specs[i].N {
			t.Errorf("group %s has %d values, want %d", g.Name, len(g.Values), specs[i].N)
		}
		for _, v := range g.Values {
			if v < 1.0 {
				t.Errorf("group %s contains length %v below the 1.0 floor", g.Name, v)
			}
		}
	}
}

func TestFishLengths_MeansNearSpec(t *testing.T) {
	for _, spec := range DefaultHabitats() {
		table := FishLengths([]HabitatSpec{spec}, 42)
		summary, err := describe.Summarize(table.Groups[0].Values)
		if err != nil {
			t.Fatalf("Summarize failed: %v", err)
		}

		// Sampling error bound: 4 standard errors around the true mean
		tolerance := 4 * spec.StdDev / math.Sqrt(float64(spec.N))
		if math.Abs(summary.Mean-spec.Mean) > tolerance {
			t.Errorf("%s mean = %v, want within %v of %v", spec.Name, summary.Mean, tolerance, spec.Mean)
		}
	}
}

func TestFishLengths_Deterministic(t *testing.T) {
	a := FishLengths(DefaultHabitats(), 7)
	b := FishLengths(DefaultHabitats(), 7)
	c := FishLengths(DefaultHabitats(), 8)

	for i := range a.Groups {
		for j := range a.Groups[i].Values {
			if a.Groups[i].Values[j] != b.Groups[i].Values[j] {
				t.Fatalf("same seed produced different values at group %d index %d", i, j)
			}
		}
	}

	same := true
	for j := range a.Groups[0].Values {
		if a.Groups[0].Values[j] != c.Groups[0].Values[j] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical values")
	}
}

func TestWaterQuality_Shape(t *testing.T) {
	specs := DefaultSites()
	data := WaterQuality(specs, 42)

	if len(data.Sites) != 3 {
		t.Fatalf("got %d sites, want 3", len(data.Sites))
	}
	for _, site := range data.Sites {
		if len(site.Columns) != 4 {
			t.Errorf("site %s has %d columns, want 4", site.Name, len(site.Columns))
		}
		for _, col := range site.Columns {
			if len(col.Values) != 60 {
				t.Errorf("site %s column %s has %d values, want 60", site.Name, col.Key, len(col.Values))
			}
		}
	}

	for _, key := range []string{"ph", "dissolved_oxygen", "turbidity", "temperature"} {
		groups := data.BySite[VarPH]
		if key == "dissolved_oxygen" {
			groups = data.BySite[VarDissolvedOxygen]
		} else if key == "turbidity" {
			groups = data.BySite[VarTurbidity]
		} else if key == "temperature" {
			groups = data.BySite[VarTemperature]
		}
		if len(groups) != 3 {
			t.Errorf("BySite[%s] has %d groups, want 3", key, len(groups))
		}
	}

	if data.Pooled == nil {
		t.Fatal("pooled table missing")
	}
	for _, col := range data.Pooled.Columns {
		if len(col.Values) != 180 {
			t.Errorf("pooled column %s has %d values, want 180", col.Key, len(col.Values))
		}
	}
}

func TestWaterQuality_TurbidityRightSkewed(t *testing.T) {
	data := WaterQuality(DefaultSites(), 42)

	turb, ok := data.Pooled.ColumnData(VarTurbidity)
	if !ok {
		t.Fatal("pooled turbidity column missing")
	}
	for _, v := range turb {
		if v <= 0 {
			t.Fatalf("turbidity must be positive, got %v", v)
		}
	}
	if skew := describe.Skewness(turb); skew <= 0 {
		t.Errorf("lognormal turbidity skewness = %v, want > 0", skew)
	}
}

func TestWaterQuality_OxygenTemperatureNegativelyCorrelated(t *testing.T) {
	data := WaterQuality(DefaultSites(), 42)

	do, ok := data.Pooled.ColumnData(VarDissolvedOxygen)
	if !ok {
		t.Fatal("pooled dissolved oxygen column missing")
	}
	temp, ok := data.Pooled.ColumnData(VarTemperature)
	if !ok {
		t.Fatal("pooled temperature column missing")
	}

	result, err := infer.Pearson(VarDissolvedOxygen, do, VarTemperature, temp)
	if err != nil {
		t.Fatalf("Pearson failed: %v", err)
	}

	// Both the within-site coupling and the downstream warming gradient
	// push this negative
	if result.Coefficient >= 0 {
		t.Errorf("DO vs temperature r = %v, want negative", result.Coefficient)
	}
}

func TestWaterQuality_Deterministic(t *testing.T) {
	a := WaterQuality(DefaultSites(), 11)
	b := WaterQuality(DefaultSites(), 11)

	for i := range a.Sites {
		for j := range a.Sites[i].Columns {
			av := a.Sites[i].Columns[j].Values
			bv := b.Sites[i].Columns[j].Values
			for k := range av {
				if av[k] != bv[k] {
					t.Fatalf("same seed diverged at site %d column %d index %d", i, j, k)
				}
			}
		}
	}
}
