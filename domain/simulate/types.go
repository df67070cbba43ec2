package simulate

import (
	"github.com/brendav1/simulation-final/domain/cohort"
)

// Row is one record of a simulated dataset. Invariant: Observed is present
// exactly when Dropped is false.
type Row struct {
	Obs      cohort.Observation
	True     float64      // synthetic ground-truth outcome, always present
	Dropped  bool         // whether the attrition mechanism removed it
	Observed cohort.Score // equals True unless dropped
}

// Dataset is a simulated copy of the cohort with synthetic true and
// observed outcomes.
type Dataset []Row

// Observations returns the dataset as cohort observations with the observed
// outcome in place of the original score, suitable for refitting.
func (ds Dataset) Observations() []cohort.Observation {
	out := make([]cohort.Observation, len(ds))
	for i, r := range ds {
		o := r.Obs
		o.Score = r.Observed
		out[i] = o
	}
	return out
}
