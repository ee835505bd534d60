package infer

import (
	"math"

	"ecostat/domain/dataset"
	domainstats "ecostat/domain/stats"
	"ecostat/internal/errors"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Centering options for Levene's test
const (
	CenterMean   = "mean"   // Classic Levene (1960)
	CenterMedian = "median" // Brown-Forsythe, robust to skew
)

// Levene tests equality of variances across groups by running a one-way
// F test on absolute deviations from each group's center. Median
// centering (Brown-Forsythe) is the better default for skewed
// environmental variables like turbidity.
func Levene(groups []dataset.Group, center string) (*domainstats.LeveneResult, error) {
	if len(groups) < 2 {
		return nil, errors.InvalidInput("Levene's test requires at least 2 groups")
	}
	if center != CenterMean && center != CenterMedian {
		return nil, errors.InvalidInput("center must be \"mean\" or \"median\"")
	}

	deviationGroups := make([]dataset.Group, len(groups))
	totalN := 0
	for i, g := range groups {
		if len(g.Values) < 2 {
			return nil, errors.InvalidInput("each group requires at least 2 observations")
		}

		var c float64
		var err error
		if center == CenterMedian {
			c, err = stats.Median(g.Values)
		} else {
			c, err = stats.Mean(g.Values)
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to compute group center")
		}

		devs := make([]float64, len(g.Values))
		for j, v := range g.Values {
			devs[j] = math.Abs(v - c)
		}
		deviationGroups[i] = dataset.Group{Name: g.Name, Values: devs}
		totalN += len(g.Values)
	}

	// Levene's W is the one-way ANOVA F statistic on the deviations
	anova, err := OneWayANOVA(deviationGroups)
	if err != nil {
		return nil, err
	}

	df1 := len(groups) - 1
	df2 := totalN - len(groups)
	fDist := distuv.F{D1: float64(df1), D2: float64(df2)}

	return &domainstats.LeveneResult{
		FStatistic: anova.FStatistic,
		PValue:     1 - fDist.CDF(anova.FStatistic),
		DF1:        df1,
		DF2:        df2,
		Center:     center,
	}, nil
}
