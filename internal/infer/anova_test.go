package infer

import (
	"testing"

	"ecostat/domain/dataset"
	"ecostat/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneWayANOVA_HandComputedCase(t *testing.T) {
	// Grand mean 3; SSB = 3*(2-3)^2 + 0 + 3*(4-3)^2 = 6; SSW = 2+2+2 = 6;
	// F = (6/2) / (6/6) = 3
	groups := []dataset.Group{
		{Name: "low", Values: []float64{1, 2, 3}},
		{Name: "mid", Values: []float64{2, 3, 4}},
		{Name: "high", Values: []float64{3, 4, 5}},
	}

	result, err := OneWayANOVA(groups)
	require.NoError(t, err)

	assert.InDelta(t, 6.0, result.SSBetween, 1e-9)
	assert.InDelta(t, 6.0, result.SSWithin, 1e-9)
	assert.InDelta(t, 12.0, result.SSTotal, 1e-9)
	assert.Equal(t, 2, result.DFBetween)
	assert.Equal(t, 6, result.DFWithin)
	assert.InDelta(t, 3.0, result.FStatistic, 1e-9)
	assert.InDelta(t, 0.5, result.EtaSquared, 1e-9)

	// F(2,6) upper tail at 3.0 is about 0.125
	assert.Greater(t, result.PValue, 0.10)
	assert.Less(t, result.PValue, 0.15)

	require.Len(t, result.Groups, 3)
	assert.Equal(t, "low", result.Groups[0].Name)
	assert.InDelta(t, 2.0, result.Groups[0].Mean, 1e-12)
}

func TestOneWayANOVA_EqualMeans(t *testing.T) {
	groups := []dataset.Group{
		{Name: "a", Values: []float64{1, 3, 5}},
		{Name: "b", Values: []float64{2, 3, 4}},
	}

	result, err := OneWayANOVA(groups)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, result.FStatistic, 1e-12)
	assert.InDelta(t, 1.0, result.PValue, 1e-9)
}

func TestOneWayANOVA_InvalidInput(t *testing.T) {
	_, err := OneWayANOVA([]dataset.Group{{Name: "only", Values: []float64{1, 2}}})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = OneWayANOVA([]dataset.Group{
		{Name: "a", Values: []float64{1}},
		{Name: "b", Values: []float64{1, 2}},
	})
	require.Error(t, err)

	_, err = OneWayANOVA([]dataset.Group{
		{Name: "a", Values: []float64{2, 2}},
		{Name: "b", Values: []float64{5, 5}},
	})
	require.Error(t, err, "zero within-group variance is not testable")
}

func TestLevene_UnequalSpread(t *testing.T) {
	groups := []dataset.Group{
		{Name: "tight", Values: []float64{4.8, 5.2, 5.0, 4.9, 5.1, 5.3, 4.7, 5.0}},
		{Name: "wide", Values: []float64{1, 9, 2, 8, 3, 7, 2, 9}},
	}

	result, err := Levene(groups, CenterMedian)
	require.NoError(t, err)

	assert.Less(t, result.PValue, 0.01)
	assert.Equal(t, 1, result.DF1)
	assert.Equal(t, 14, result.DF2)
	assert.Equal(t, CenterMedian, result.Center)
}

func TestLevene_SimilarSpread(t *testing.T) {
	groups := []dataset.Group{
		{Name: "a", Values: []float64{1, 5, 2, 8, 3, 7, 2, 9}},
		{Name: "b", Values: []float64{2, 6, 1, 9, 4, 8, 3, 7}},
	}

	result, err := Levene(groups, CenterMean)
	require.NoError(t, err)

	assert.Greater(t, result.PValue, 0.05)
	assert.Equal(t, CenterMean, result.Center)
}

func TestLevene_InvalidInput(t *testing.T) {
	groups := []dataset.Group{
		{Name: "a", Values: []float64{1, 2, 3}},
		{Name: "b", Values: []float64{4, 5, 6}},
	}

	_, err := Levene(groups, "mode")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = Levene(groups[:1], CenterMean)
	require.Error(t, err)
}
