package montecarlo

import (
	"github.com/montanaflynn/stats"

	"github.com/brendav1/simulation-final/domain/core"
)

// TermSummary is the empirical sampling distribution of one model term
// across Monte Carlo iterations. Lower and Upper bound the Monte Carlo
// interval (2.5th and 97.5th percentiles), which is distinct from a single
// fit's analytic confidence interval.
type TermSummary struct {
	Term  string
	Mean  float64
	SD    float64
	Lower float64
	Upper float64
	Runs  int
}

// Summarize aggregates coefficient samples per term: mean, sample standard
// deviation, and the 2.5/97.5 empirical percentiles. Percentiles use the
// nearest-rank rule, which is defined for any run count; interpolating
// variants reject counts where 2.5% of the sample rounds below one
// observation. Terms keep their first appearance order, which matches the
// design's column ordering.
func Summarize(samples []Sample) ([]TermSummary, error) {
	if len(samples) == 0 {
		return nil, core.ErrNoSamples
	}

	byTerm := map[string][]float64{}
	var order []string
	for _, s := range samples {
		if _, ok := byTerm[s.Term]; !ok {
			order = append(order, s.Term)
		}
		byTerm[s.Term] = append(byTerm[s.Term], s.Estimate)
	}

	out := make([]TermSummary, 0, len(order))
	for _, term := range order {
		estimates := byTerm[term]

		mean, err := stats.Mean(estimates)
		if err != nil {
			return nil, err
		}
		lower, err := stats.PercentileNearestRank(estimates, 2.5)
		if err != nil {
			return nil, err
		}
		upper, err := stats.PercentileNearestRank(estimates, 97.5)
		if err != nil {
			return nil, err
		}

		sd := 0.0
		if len(estimates) > 1 {
			sd, err = stats.StandardDeviationSample(estimates)
			if err != nil {
				return nil, err
			}
		}

		out = append(out, TermSummary{
			Term:  term,
			Mean:  mean,
			SD:    sd,
			Lower: lower,
			Upper: upper,
			Runs:  len(estimates),
		})
	}
	return out, nil
}
