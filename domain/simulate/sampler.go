package simulate

import (
	"math/rand"

	"github.com/brendav1/simulation-final/domain/cohort"
	"github.com/brendav1/simulation-final/domain/model"
)

// Sampler draws synthetic outcomes from a fitted model's predictive
// distribution: point prediction plus Gaussian noise at the model's fitted
// residual scale, so simulated variability matches the empirical unexplained
// variance. All randomness comes from the caller-supplied source; the
// sampler holds no random state of its own.
type Sampler struct {
	fitted *model.Fitted
	design *model.Design
}

// NewSampler builds a sampler over a fitted model and the design it was
// estimated with.
func NewSampler(fitted *model.Fitted, design *model.Design) *Sampler {
	return &Sampler{fitted: fitted, design: design}
}

// Sample returns one predictive draw for the covariate row.
func (s *Sampler) Sample(o cohort.Observation, rng *rand.Rand) float64 {
	prediction := s.fitted.Predict(s.design.Row(o))
	return prediction + rng.NormFloat64()*s.fitted.ResidualSD
}

// Predict returns the noise-free point prediction for the covariate row.
func (s *Sampler) Predict(o cohort.Observation) float64 {
	return s.fitted.Predict(s.design.Row(o))
}
