// Package resample implements percentile-bootstrap estimation: resample a
// sample with replacement, recompute a statistic per resample, and derive
// the statistic's sampling distribution from the replicates.
package resample

import (
	"context"
	"math"
	"math/rand"
	"sort"

	domainstats "ecostat/domain/stats"
	"ecostat/internal/describe"
	"ecostat/internal/errors"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
)

// Statistic maps a resampled sequence to a single real value. It must be
// pure and deterministic given its input; any error it returns aborts the
// whole estimate.
type Statistic func(resample []float64) (float64, error)

// Mean is the course's default statistic
func Mean(sample []float64) (float64, error) {
	return stats.Mean(sample)
}

// Median statistic for skewed variables
func Median(sample []float64) (float64, error) {
	return stats.Median(sample)
}

// trialChunk fixes how trials are partitioned across workers. Each chunk
// owns its own deterministically-derived RNG stream, so results are
// bit-identical for a given seed regardless of the worker limit.
const trialChunk = 256

// seedStride separates per-chunk RNG streams. It is the 64-bit
// golden-ratio increment 0x9E3779B97F4A7C15 written in two's complement
// so it fits int64.
const seedStride int64 = -0x61C8864680B583EB

// Result holds the outcome of one bootstrap estimate. All fields are
// private to the call that produced them; no partial result is ever
// observable.
type Result struct {
	Replicates []float64                      `json:"replicates"`
	Mean       float64                        `json:"mean"`
	StdErr     float64                        `json:"std_err"`
	CI         domainstats.ConfidenceInterval `json:"ci"`
	Trials     int                            `json:"trials"`
	Seed       int64                          `json:"seed"` // Effective seed, recorded for reruns
}

// Estimator runs percentile-bootstrap estimates with a fixed trial count,
// confidence level and worker limit
type Estimator struct {
	trials     int
	confidence float64
	workers    int
}

// NewEstimator creates an estimator with course defaults: 1000 trials,
// 95% confidence, sequential execution
func NewEstimator() *Estimator {
	return &Estimator{
		trials:     1000,
		confidence: 0.95,
		workers:    1,
	}
}

// SetTrials configures the number of resampling trials
func (e *Estimator) SetTrials(n int) *Estimator {
	e.trials = n
	return e
}

// SetConfidence configures the confidence level, e.g. 0.95
func (e *Estimator) SetConfidence(level float64) *Estimator {
	e.confidence = level
	return e
}

// SetWorkers configures the parallel worker limit. The replicate values
// do not depend on this setting, only the wall-clock time does.
func (e *Estimator) SetWorkers(n int) *Estimator {
	if n < 1 {
		n = 1
	}
	e.workers = n
	return e
}

// Estimate draws e.trials resamples of sample (with replacement, each the
// same length as sample), applies statistic to each, and summarizes the
// replicate distribution. A negative seed selects a non-deterministic
// source; a seed >= 0 makes repeated calls bit-identical.
func (e *Estimator) Estimate(ctx context.Context, sample []float64, statistic Statistic, seed int64) (*Result, error) {
	if len(sample) == 0 {
		return nil, errors.InvalidInput("sample must contain at least one observation")
	}
	if statistic == nil {
		return nil, errors.InvalidInput("statistic function is required")
	}
	if e.trials < 1 {
		return nil, errors.InvalidInput("trial count must be at least 1")
	}
	if e.confidence <= 0 || e.confidence >= 1 {
		return nil, errors.InvalidInput("confidence level must be strictly between 0 and 1")
	}

	if seed < 0 {
		seed = rand.Int63()
	}

	replicates := make([]float64, e.trials)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for start := 0; start < e.trials; start += trialChunk {
		end := start + trialChunk
		if end > e.trials {
			end = e.trials
		}
		chunkIndex := start / trialChunk

		g.Go(func() error {
			// One stream per chunk keeps the partition, and therefore the
			// replicate values, independent of scheduling order.
			rng := rand.New(rand.NewSource(seed + int64(chunkIndex+1)*seedStride))
			scratch := make([]float64, len(sample))

			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				for j := range scratch {
					scratch[j] = sample[rng.Intn(len(sample))]
				}

				value, err := statistic(scratch)
				if err != nil {
					// Abort the whole estimate: dropping trials would bias
					// the replicate distribution.
					return errors.StatisticError(err)
				}
				replicates[i] = value
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return e.summarize(replicates, seed), nil
}

// summarize derives mean, standard error and the percentile interval
// from a complete replicate set
func (e *Estimator) summarize(replicates []float64, seed int64) *Result {
	mean := 0.0
	for _, r := range replicates {
		mean += r
	}
	mean /= float64(len(replicates))

	stdErr := 0.0
	if len(replicates) > 1 {
		sumSq := 0.0
		for _, r := range replicates {
			d := r - mean
			sumSq += d * d
		}
		stdErr = math.Sqrt(sumSq / float64(len(replicates)-1))
	}

	sorted := make([]float64, len(replicates))
	copy(sorted, replicates)
	sort.Float64s(sorted)

	alpha := 1 - e.confidence
	ci := domainstats.ConfidenceInterval{
		Lower:  describe.Quantile(sorted, alpha/2),
		Upper:  describe.Quantile(sorted, 1-alpha/2),
		Level:  e.confidence,
		Method: "percentile-bootstrap",
	}

	return &Result{
		Replicates: replicates,
		Mean:       mean,
		StdErr:     stdErr,
		CI:         ci,
		Trials:     len(replicates),
		Seed:       seed,
	}
}
