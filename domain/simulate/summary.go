package simulate

import (
	"github.com/brendav1/simulation-final/domain/cohort"
)

// SubgroupSummary reports attrition effects for one demographic subgroup.
// ObservedMean and Bias are absent when no rows in the subgroup survived
// dropout; that is an explicit undefined state, not zero.
type SubgroupSummary struct {
	Key          cohort.GroupKey
	N            int
	DropoutRate  float64
	TrueMean     float64
	ObservedMean cohort.Score
	Bias         cohort.Score // observed mean minus true mean
}

// Summarize tabulates per-subgroup dropout rates and observed-vs-true bias
// over a simulated dataset. Output order matches the census ordering.
func Summarize(ds Dataset) []SubgroupSummary {
	type acc struct {
		n           int
		dropped     int
		trueSum     float64
		observedSum float64
		survived    int
	}
	groups := map[cohort.GroupKey]*acc{}
	for _, r := range ds {
		key := cohort.GroupKey{
			LunchEligible:   r.Obs.LunchEligible,
			ParentEducation: r.Obs.ParentEducation,
			Gender:          r.Obs.Gender,
		}
		a, ok := groups[key]
		if !ok {
			a = &acc{}
			groups[key] = a
		}
		a.n++
		a.trueSum += r.True
		if r.Dropped {
			a.dropped++
		} else {
			a.survived++
			a.observedSum += r.Observed.Value
		}
	}

	var out []SubgroupSummary
	for _, key := range cohort.OrderedGroupKeys() {
		a, ok := groups[key]
		if !ok {
			continue
		}
		s := SubgroupSummary{
			Key:         key,
			N:           a.n,
			DropoutRate: float64(a.dropped) / float64(a.n),
			TrueMean:    a.trueSum / float64(a.n),
		}
		if a.survived > 0 {
			observed := a.observedSum / float64(a.survived)
			s.ObservedMean = cohort.SomeScore(observed)
			s.Bias = cohort.SomeScore(observed - s.TrueMean)
		}
		out = append(out, s)
	}
	return out
}
