package montecarlo

import (
	"math/rand"

	"github.com/brendav1/simulation-final/domain/cohort"
	"github.com/brendav1/simulation-final/domain/model"
	"github.com/brendav1/simulation-final/domain/simulate"
)

// Complete fills every missing outcome with a single predictive draw from
// the sampler. Present outcomes pass through untouched, so the returned
// dataset has no missing outcomes by construction. This is total imputation:
// one stochastic draw per missing value per call, no pooling.
func Complete(obs []cohort.Observation, sampler *simulate.Sampler, rng *rand.Rand) []cohort.Observation {
	out := make([]cohort.Observation, len(obs))
	for i, o := range obs {
		if !o.Score.Valid {
			o.Score = cohort.SomeScore(sampler.Sample(o, rng))
		}
		out[i] = o
	}
	return out
}

// ImputeAndRefit completes the dataset and fits a fresh model on it with the
// same design (formula and reference levels) as the baseline fit. The
// returned model is the per-iteration artifact the driver collects from.
func ImputeAndRefit(obs []cohort.Observation, sampler *simulate.Sampler, design *model.Design, rng *rand.Rand) ([]cohort.Observation, *model.Fitted, error) {
	completed := Complete(obs, sampler, rng)
	fitted, err := model.Fit(completed, design)
	if err != nil {
		return nil, nil, err
	}
	return completed, fitted, nil
}
