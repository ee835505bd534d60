package stats

import (
	"ecostat/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// SummaryStats holds the descriptive statistics for a single variable.
// INVARIANTS:
// - N always present and > 0
// - Q25 <= Median <= Q75
type SummaryStats struct {
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Variance float64 `json:"variance"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	IQR      float64 `json:"iqr"`
}

// DistributionStats describes the shape of a variable's distribution
type DistributionStats struct {
	Skewness   float64 `json:"skewness"`
	Kurtosis   float64 `json:"kurtosis"` // Excess kurtosis (normal = 0)
	IsNormal   bool    `json:"is_normal"`
	NormalityP float64 `json:"normality_p"`
}

// ConfidenceInterval is a two-sided interval for a statistic.
// Lower <= Upper always holds; the point estimate need not sit at the
// midpoint (percentile bootstrap intervals are often asymmetric).
type ConfidenceInterval struct {
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	Level  float64 `json:"level"`  // e.g. 0.95
	Method string  `json:"method"` // "student-t" or "percentile-bootstrap"
}

// Contains reports whether v falls inside the interval
func (ci ConfidenceInterval) Contains(v float64) bool {
	return v >= ci.Lower && v <= ci.Upper
}

// Histogram is a binned view of a variable for distribution display
type Histogram struct {
	BinEdges []float64 `json:"bin_edges"` // len(Counts) + 1 edges
	Counts   []int     `json:"counts"`
}

// ============================================================================
// TEST RESULTS (one struct per inferential procedure)
// ============================================================================

// GroupSummary is the per-group slice of a multi-group comparison
type GroupSummary struct {
	Name   string  `json:"name"`
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// TTestResult holds a two-sample t-test outcome
type TTestResult struct {
	TStatistic    float64            `json:"t_statistic"`
	DF            float64            `json:"df"` // Welch-Satterthwaite df is fractional
	PValue        float64            `json:"p_value"`
	MeanDiff      float64            `json:"mean_diff"`
	EffectSize    float64            `json:"effect_size"` // Cohen's d
	CI            ConfidenceInterval `json:"ci"`          // Interval for the mean difference
	EqualVariance bool               `json:"equal_variance"`
	Groups        [2]GroupSummary    `json:"groups"`
}

// AnovaResult holds a one-way ANOVA decomposition
type AnovaResult struct {
	FStatistic float64        `json:"f_statistic"`
	PValue     float64        `json:"p_value"`
	DFBetween  int            `json:"df_between"`
	DFWithin   int            `json:"df_within"`
	SSBetween  float64        `json:"ss_between"`
	SSWithin   float64        `json:"ss_within"`
	SSTotal    float64        `json:"ss_total"`
	MSBetween  float64        `json:"ms_between"`
	MSWithin   float64        `json:"ms_within"`
	EtaSquared float64        `json:"eta_squared"`
	Groups     []GroupSummary `json:"groups"`
}

// LeveneResult holds a variance-equality test outcome
type LeveneResult struct {
	FStatistic float64 `json:"f_statistic"`
	PValue     float64 `json:"p_value"`
	DF1        int     `json:"df1"`
	DF2        int     `json:"df2"`
	Center     string  `json:"center"` // "mean" (Levene) or "median" (Brown-Forsythe)
}

// NormalityResult holds a distribution-normality test outcome
type NormalityResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
	IsNormal  bool    `json:"is_normal"` // At alpha = 0.05
	Method    string  `json:"method"`
}

// CorrelationResult holds a pairwise association measure
type CorrelationResult struct {
	VariableX   core.VariableKey `json:"variable_x"`
	VariableY   core.VariableKey `json:"variable_y"`
	Method      string           `json:"method"` // "pearson" or "spearman"
	Coefficient float64          `json:"coefficient"`
	PValue      float64          `json:"p_value"`
	N           int              `json:"n"`
}

// CorrelationMatrix holds all pairwise correlations for a variable set
type CorrelationMatrix struct {
	Variables []core.VariableKey  `json:"variables"`
	Pairs     []CorrelationResult `json:"pairs"`
}
