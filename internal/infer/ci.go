// Package infer implements the inferential procedures of the course
// walkthroughs: confidence intervals, two-sample t-tests, one-way ANOVA,
// Levene's variance-equality test, normality checks and correlation.
package infer

import (
	"math"

	domainstats "ecostat/domain/stats"
	"ecostat/internal/describe"
	"ecostat/internal/errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// MeanCI computes a parametric Student-t confidence interval for the
// population mean
func MeanCI(data []float64, level float64) (domainstats.ConfidenceInterval, error) {
	if len(data) < 2 {
		return domainstats.ConfidenceInterval{}, errors.InvalidInput("mean CI requires at least 2 observations")
	}
	if level <= 0 || level >= 1 {
		return domainstats.ConfidenceInterval{}, errors.InvalidInput("confidence level must be strictly between 0 and 1")
	}

	summary, err := describe.Summarize(data)
	if err != nil {
		return domainstats.ConfidenceInterval{}, err
	}

	n := float64(summary.N)
	se := summary.StdDev / math.Sqrt(n)

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 1}
	tCrit := tDist.Quantile(1 - (1-level)/2)
	margin := tCrit * se

	return domainstats.ConfidenceInterval{
		Lower:  summary.Mean - margin,
		Upper:  summary.Mean + margin,
		Level:  level,
		Method: "student-t",
	}, nil
}
