package montecarlo

import (
	"github.com/brendav1/simulation-final/domain/model"
)

// Comparison contrasts one term's observed-only estimate with the Monte
// Carlo mean of the imputed-complete refits. The difference characterizes
// the magnitude and direction of attrition bias for that term.
type Comparison struct {
	Term          string
	Observed      float64
	ObservedSE    float64
	CompletedMean float64
	Difference    float64 // completed mean minus observed-only estimate
}

// Compare pairs the baseline observed-only fit with the Monte Carlo term
// summaries, in summary order.
func Compare(baseline *model.Fitted, summaries []TermSummary) []Comparison {
	out := make([]Comparison, 0, len(summaries))
	for _, s := range summaries {
		observed, ok := baseline.Coefficient(s.Term)
		if !ok {
			continue
		}
		se, _ := baseline.StdError(s.Term)
		out = append(out, Comparison{
			Term:          s.Term,
			Observed:      observed,
			ObservedSE:    se,
			CompletedMean: s.Mean,
			Difference:    s.Mean - observed,
		})
	}
	return out
}
