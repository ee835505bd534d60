package infer

import (
	"math"

	domainstats "ecostat/domain/stats"
	"ecostat/internal/errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// normalityAlpha is the rejection threshold reported in IsNormal
const normalityAlpha = 0.05

// TestNormality checks whether a sample is consistent with a normal
// distribution. For n >= 8 it runs D'Agostino's K-squared omnibus test
// (more robust than Jarque-Bera for moderate samples); for smaller
// samples it falls back to a Jarque-Bera approximation built from
// skewness and kurtosis.
func TestNormality(data []float64) (*domainstats.NormalityResult, error) {
	if len(data) < 3 {
		return nil, errors.InvalidInput("normality test requires at least 3 observations")
	}

	if len(data) >= 8 {
		return dagostinoK2(data)
	}
	return jarqueBera(data)
}

// dagostinoK2 implements D'Agostino & Pearson (1973): transform the
// sample skewness and kurtosis to approximate standard normals, then
// combine them as K2 = Z1^2 + Z2^2 ~ chi-squared(2).
func dagostinoK2(data []float64) (*domainstats.NormalityResult, error) {
	n := float64(len(data))
	b1, b2, err := momentRatios(data)
	if err != nil {
		return nil, err
	}

	// Skewness transform (D'Agostino 1970)
	y := b1 * math.Sqrt((n+1)*(n+3)/(6*(n-2)))
	beta2 := 3 * (n*n + 27*n - 70) * (n + 1) * (n + 3) /
		((n - 2) * (n + 5) * (n + 7) * (n + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	delta := 1 / math.Sqrt(0.5*math.Log(w2))
	alpha := math.Sqrt(2 / (w2 - 1))
	z1 := delta * math.Log(y/alpha+math.Sqrt(y/alpha*(y/alpha)+1))

	// Kurtosis transform (Anscombe & Glynn 1983)
	eb2 := 3 * (n - 1) / (n + 1)
	varb2 := 24 * n * (n - 2) * (n - 3) / ((n + 1) * (n + 1) * (n + 3) * (n + 5))
	x := (b2 - eb2) / math.Sqrt(varb2)
	sqrtBeta1 := 6 * (n*n - 5*n + 2) / ((n + 7) * (n + 9)) *
		math.Sqrt(6*(n+3)*(n+5)/(n*(n-2)*(n-3)))
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))
	term1 := 1 - 2/(9*a)
	denom := 1 + x*math.Sqrt(2/(a-4))
	term2 := math.Copysign(math.Cbrt((1-2/a)/math.Abs(denom)), denom)
	z2 := (term1 - term2) / math.Sqrt(2/(9*a))

	k2 := z1*z1 + z2*z2
	chi2 := distuv.ChiSquared{K: 2}
	pValue := chi2.Survival(k2)

	return &domainstats.NormalityResult{
		Statistic: k2,
		PValue:    pValue,
		IsNormal:  pValue > normalityAlpha,
		Method:    "dagostino-k2",
	}, nil
}

// jarqueBera is the small-sample fallback: JB = n/6 * (S^2 + K^2/4)
func jarqueBera(data []float64) (*domainstats.NormalityResult, error) {
	n := float64(len(data))
	b1, b2, err := momentRatios(data)
	if err != nil {
		return nil, err
	}

	excess := b2 - 3
	jb := n / 6 * (b1*b1 + excess*excess/4)
	chi2 := distuv.ChiSquared{K: 2}
	pValue := chi2.Survival(jb)

	return &domainstats.NormalityResult{
		Statistic: jb,
		PValue:    pValue,
		IsNormal:  pValue > normalityAlpha,
		Method:    "jarque-bera",
	}, nil
}

// momentRatios returns the population moment ratios sqrt(b1) = m3/m2^1.5
// and b2 = m4/m2^2
func momentRatios(data []float64) (float64, float64, error) {
	n := float64(len(data))

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= n

	var m2, m3, m4 float64
	for _, v := range data {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	m2 /= n
	m3 /= n
	m4 /= n

	if m2 == 0 {
		return 0, 0, errors.InvalidInput("zero variance in sample")
	}

	return m3 / math.Pow(m2, 1.5), m4 / (m2 * m2), nil
}
