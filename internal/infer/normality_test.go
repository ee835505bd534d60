package infer

import (
	"math"
	"testing"

	"ecostat/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

// normalScores builds a deterministic sample whose shape matches the
// standard normal: the expected order statistics Phi^-1((i+0.5)/n).
func normalScores(n int) []float64 {
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = distuv.UnitNormal.Quantile((float64(i) + 0.5) / float64(n))
	}
	return scores
}

func TestTestNormality_NormalShapedSample(t *testing.T) {
	result, err := TestNormality(normalScores(100))
	require.NoError(t, err)

	assert.Equal(t, "dagostino-k2", result.Method)
	assert.True(t, result.IsNormal)
	assert.Greater(t, result.PValue, 0.05)
}

func TestTestNormality_SkewedSample(t *testing.T) {
	// Exponentiating normal scores gives a lognormal shape with a heavy
	// right tail
	scores := normalScores(100)
	skewed := make([]float64, len(scores))
	for i, s := range scores {
		skewed[i] = math.Exp(s)
	}

	result, err := TestNormality(skewed)
	require.NoError(t, err)

	assert.False(t, result.IsNormal)
	assert.Less(t, result.PValue, 0.01)
}

func TestTestNormality_SmallSampleFallback(t *testing.T) {
	result, err := TestNormality([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	assert.Equal(t, "jarque-bera", result.Method)
	assert.True(t, result.IsNormal, "a tiny symmetric sample carries no evidence against normality")
}

func TestTestNormality_InvalidInput(t *testing.T) {
	_, err := TestNormality([]float64{1, 2})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = TestNormality([]float64{3, 3, 3, 3, 3, 3, 3, 3})
	require.Error(t, err, "constant samples have no moments to test")
}
