// Package describe computes descriptive statistics for a single variable:
// the summary table, distribution-shape measures, and histogram bins used
// throughout the course walkthroughs.
package describe

import (
	"math"

	domainstats "ecostat/domain/stats"
	"ecostat/internal/errors"

	"github.com/montanaflynn/stats"
)

// Summarize computes the full summary-statistics block for a sample
func Summarize(data []float64) (domainstats.SummaryStats, error) {
	if len(data) == 0 {
		return domainstats.SummaryStats{}, errors.InvalidInput("cannot summarize an empty sample")
	}

	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviation(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)
	q25, _ := stats.Percentile(data, 25)
	q75, _ := stats.Percentile(data, 75)

	// montanaflynn computes the population standard deviation; course
	// material uses the sample (n-1) convention throughout.
	variance := 0.0
	if len(data) > 1 {
		sumSq := 0.0
		for _, x := range data {
			d := x - mean
			sumSq += d * d
		}
		variance = sumSq / float64(len(data)-1)
		stdDev = math.Sqrt(variance)
	}

	return domainstats.SummaryStats{
		N:        len(data),
		Mean:     mean,
		StdDev:   stdDev,
		Variance: variance,
		Min:      min,
		Max:      max,
		Median:   median,
		Q25:      q25,
		Q75:      q75,
		IQR:      q75 - q25,
	}, nil
}

// Skewness computes sample skewness using the adjusted Fisher-Pearson coefficient
func Skewness(data []float64) float64 {
	if len(data) < 3 {
		return 0
	}

	mean, _ := stats.Mean(data)
	stdDev := sampleStdDev(data, mean)
	if stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubedDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}

	skewness := sumCubedDeviations / n

	// Bias correction for sample skewness
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skewness * correction
}

// Kurtosis computes sample excess kurtosis (normal distribution = 0)
func Kurtosis(data []float64) float64 {
	if len(data) < 4 {
		return 0
	}

	mean, _ := stats.Mean(data)
	stdDev := sampleStdDev(data, mean)
	if stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumFourthDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumFourthDeviations += deviation * deviation * deviation * deviation
	}

	return sumFourthDeviations/n - 3
}

// Bin builds a histogram with the given number of equal-width bins.
// The last bin is closed on both ends so the maximum lands inside it.
func Bin(data []float64, bins int) (domainstats.Histogram, error) {
	if len(data) == 0 {
		return domainstats.Histogram{}, errors.InvalidInput("cannot bin an empty sample")
	}
	if bins < 1 {
		return domainstats.Histogram{}, errors.InvalidInput("bin count must be at least 1")
	}

	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	if min == max {
		// Degenerate sample: one bin holding everything
		return domainstats.Histogram{
			BinEdges: []float64{min, max},
			Counts:   []int{len(data)},
		}, nil
	}

	width := (max - min) / float64(bins)
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	edges[bins] = max

	counts := make([]int, bins)
	for _, x := range data {
		idx := int((x - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	return domainstats.Histogram{BinEdges: edges, Counts: counts}, nil
}

func sampleStdDev(data []float64, mean float64) float64 {
	if len(data) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, x := range data {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(data)-1))
}
