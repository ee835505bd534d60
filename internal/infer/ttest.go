package infer

import (
	"math"

	domainstats "ecostat/domain/stats"
	"ecostat/internal/describe"
	"ecostat/internal/errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// WelchTTest compares the means of two independent samples without
// assuming equal variances. This is the course default: Welch's variant
// stays valid when Levene's test rejects variance equality.
func WelchTTest(name1 string, x []float64, name2 string, y []float64, level float64) (*domainstats.TTestResult, error) {
	s1, s2, err := twoSampleSummaries(name1, x, name2, y, level)
	if err != nil {
		return nil, err
	}

	n1 := float64(s1.N)
	n2 := float64(s2.N)
	var1 := s1.StdDev * s1.StdDev
	var2 := s2.StdDev * s2.StdDev

	se := math.Sqrt(var1/n1 + var2/n2)
	if se == 0 {
		return nil, errors.InvalidInput("both samples have zero variance")
	}

	meanDiff := s1.Mean - s2.Mean
	tStat := meanDiff / se

	// Welch-Satterthwaite degrees of freedom
	df := math.Pow(var1/n1+var2/n2, 2) /
		(math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1))

	return finishTTest(tStat, df, meanDiff, se, level, false, s1, s2, var1, var2, n1, n2), nil
}

// PooledTTest compares two means under the equal-variance assumption
func PooledTTest(name1 string, x []float64, name2 string, y []float64, level float64) (*domainstats.TTestResult, error) {
	s1, s2, err := twoSampleSummaries(name1, x, name2, y, level)
	if err != nil {
		return nil, err
	}

	n1 := float64(s1.N)
	n2 := float64(s2.N)
	var1 := s1.StdDev * s1.StdDev
	var2 := s2.StdDev * s2.StdDev

	df := n1 + n2 - 2
	pooledVar := ((n1-1)*var1 + (n2-1)*var2) / df
	se := math.Sqrt(pooledVar * (1/n1 + 1/n2))
	if se == 0 {
		return nil, errors.InvalidInput("both samples have zero variance")
	}

	meanDiff := s1.Mean - s2.Mean
	tStat := meanDiff / se

	return finishTTest(tStat, df, meanDiff, se, level, true, s1, s2, var1, var2, n1, n2), nil
}

func twoSampleSummaries(name1 string, x []float64, name2 string, y []float64, level float64) (domainstats.GroupSummary, domainstats.GroupSummary, error) {
	var zero domainstats.GroupSummary
	if len(x) < 2 || len(y) < 2 {
		return zero, zero, errors.InvalidInput("t-test requires at least 2 observations per group")
	}
	if level <= 0 || level >= 1 {
		return zero, zero, errors.InvalidInput("confidence level must be strictly between 0 and 1")
	}

	sx, err := describe.Summarize(x)
	if err != nil {
		return zero, zero, err
	}
	sy, err := describe.Summarize(y)
	if err != nil {
		return zero, zero, err
	}

	return domainstats.GroupSummary{Name: name1, N: sx.N, Mean: sx.Mean, StdDev: sx.StdDev},
		domainstats.GroupSummary{Name: name2, N: sy.N, Mean: sy.Mean, StdDev: sy.StdDev},
		nil
}

func finishTTest(tStat, df, meanDiff, se, level float64, equalVariance bool, s1, s2 domainstats.GroupSummary, var1, var2, n1, n2 float64) *domainstats.TTestResult {
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue := 2 * tDist.Survival(math.Abs(tStat))
	if pValue > 1 {
		pValue = 1
	}

	tCrit := tDist.Quantile(1 - (1-level)/2)

	// Cohen's d with pooled standard deviation
	pooledSD := math.Sqrt(((n1-1)*var1 + (n2-1)*var2) / (n1 + n2 - 2))
	effectSize := 0.0
	if pooledSD > 0 {
		effectSize = meanDiff / pooledSD
	}

	return &domainstats.TTestResult{
		TStatistic: tStat,
		DF:         df,
		PValue:     pValue,
		MeanDiff:   meanDiff,
		EffectSize: effectSize,
		CI: domainstats.ConfidenceInterval{
			Lower:  meanDiff - tCrit*se,
			Upper:  meanDiff + tCrit*se,
			Level:  level,
			Method: "student-t",
		},
		EqualVariance: equalVariance,
		Groups:        [2]domainstats.GroupSummary{s1, s2},
	}
}
