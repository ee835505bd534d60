package infer

import (
	"ecostat/domain/dataset"
	domainstats "ecostat/domain/stats"
	"ecostat/internal/describe"
	"ecostat/internal/errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// OneWayANOVA partitions total variability into between-group and
// within-group sums of squares and tests whether all group means are
// equal
func OneWayANOVA(groups []dataset.Group) (*domainstats.AnovaResult, error) {
	if len(groups) < 2 {
		return nil, errors.InvalidInput("one-way ANOVA requires at least 2 groups")
	}

	totalN := 0
	summaries := make([]domainstats.GroupSummary, len(groups))
	for i, g := range groups {
		if len(g.Values) < 2 {
			return nil, errors.InvalidInput("each ANOVA group requires at least 2 observations")
		}
		s, err := describe.Summarize(g.Values)
		if err != nil {
			return nil, err
		}
		summaries[i] = domainstats.GroupSummary{Name: g.Name, N: s.N, Mean: s.Mean, StdDev: s.StdDev}
		totalN += s.N
	}

	grandSum := 0.0
	for _, g := range groups {
		for _, v := range g.Values {
			grandSum += v
		}
	}
	grandMean := grandSum / float64(totalN)

	ssBetween := 0.0
	ssWithin := 0.0
	for i, g := range groups {
		d := summaries[i].Mean - grandMean
		ssBetween += float64(summaries[i].N) * d * d
		for _, v := range g.Values {
			w := v - summaries[i].Mean
			ssWithin += w * w
		}
	}
	ssTotal := ssBetween + ssWithin

	dfBetween := len(groups) - 1
	dfWithin := totalN - len(groups)

	msBetween := ssBetween / float64(dfBetween)
	msWithin := ssWithin / float64(dfWithin)
	if msWithin == 0 {
		return nil, errors.InvalidInput("zero within-group variance")
	}

	fStat := msBetween / msWithin
	fDist := distuv.F{D1: float64(dfBetween), D2: float64(dfWithin)}
	pValue := 1 - fDist.CDF(fStat)

	etaSquared := 0.0
	if ssTotal > 0 {
		etaSquared = ssBetween / ssTotal
	}

	return &domainstats.AnovaResult{
		FStatistic: fStat,
		PValue:     pValue,
		DFBetween:  dfBetween,
		DFWithin:   dfWithin,
		SSBetween:  ssBetween,
		SSWithin:   ssWithin,
		SSTotal:    ssTotal,
		MSBetween:  msBetween,
		MSWithin:   msWithin,
		EtaSquared: etaSquared,
		Groups:     summaries,
	}, nil
}
