package infer

import (
	"math"
	"sort"

	"ecostat/domain/core"
	"ecostat/domain/dataset"
	domainstats "ecostat/domain/stats"
	"ecostat/internal/errors"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Pearson computes the Pearson product-moment correlation between two
// paired samples with a two-sided t-based p-value
func Pearson(varX core.VariableKey, x []float64, varY core.VariableKey, y []float64) (*domainstats.CorrelationResult, error) {
	if err := checkPaired(x, y); err != nil {
		return nil, err
	}

	r := stat.Correlation(x, y, nil)
	return correlationResult(varX, varY, "pearson", r, len(x)), nil
}

// Spearman computes the Spearman rank correlation: Pearson on ranks,
// with ties assigned their average rank
func Spearman(varX core.VariableKey, x []float64, varY core.VariableKey, y []float64) (*domainstats.CorrelationResult, error) {
	if err := checkPaired(x, y); err != nil {
		return nil, err
	}

	r := stat.Correlation(rank(x), rank(y), nil)
	return correlationResult(varX, varY, "spearman", r, len(x)), nil
}

// Correlate builds the full pairwise Pearson matrix for a columnar table
func Correlate(table *dataset.Table) (*domainstats.CorrelationMatrix, error) {
	if len(table.Columns) < 2 {
		return nil, errors.InvalidInput("correlation matrix requires at least 2 columns")
	}

	matrix := &domainstats.CorrelationMatrix{}
	for _, c := range table.Columns {
		matrix.Variables = append(matrix.Variables, c.Key)
	}

	for i := 0; i < len(table.Columns); i++ {
		for j := i + 1; j < len(table.Columns); j++ {
			ci := table.Columns[i]
			cj := table.Columns[j]
			result, err := Pearson(ci.Key, ci.Values, cj.Key, cj.Values)
			if err != nil {
				return nil, errors.Wrapf(err, "correlating %s with %s", ci.Key, cj.Key)
			}
			matrix.Pairs = append(matrix.Pairs, *result)
		}
	}

	return matrix, nil
}

func checkPaired(x, y []float64) error {
	if len(x) != len(y) {
		return errors.InvalidInput("paired samples must have the same length")
	}
	if len(x) < 3 {
		return errors.InvalidInput("correlation requires at least 3 paired observations")
	}
	return nil
}

func correlationResult(varX, varY core.VariableKey, method string, r float64, n int) *domainstats.CorrelationResult {
	pValue := 1.0
	if math.Abs(r) >= 1 {
		pValue = 0
	} else if !math.IsNaN(r) {
		// t transform of the correlation coefficient
		df := float64(n - 2)
		t := r * math.Sqrt(df/(1-r*r))
		tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
		pValue = 2 * tDist.Survival(math.Abs(t))
		if pValue > 1 {
			pValue = 1
		}
	}

	return &domainstats.CorrelationResult{
		VariableX:   varX,
		VariableY:   varY,
		Method:      method,
		Coefficient: r,
		PValue:      pValue,
		N:           n,
	}
}

// rank assigns 1-based ranks, averaging over ties
func rank(data []float64) []float64 {
	n := len(data)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return data[idx[a]] < data[idx[b]] })

	ranks := make([]float64, n)
	i := 0
	for i < n {
		j := i
		for j+1 < n && data[idx[j+1]] == data[idx[i]] {
			j++
		}
		// Average rank for the tie run [i, j]
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}
