package simulate

import (
	"math"
	"math/rand"

	"github.com/brendav1/simulation-final/domain/cohort"
)

// Scenario holds the attrition calibration constants: logistic coefficients
// for the dropout mechanism. These are tunable scenario parameters, not
// universal constants.
type Scenario struct {
	Intercept          float64 // b0
	LunchEligible      float64 // b1, added when free/reduced lunch eligible
	ReferenceEducation float64 // b2, added when parent education is the reference level
	Male               float64 // b3, added for male students
}

// DefaultScenario returns the reference calibration.
func DefaultScenario() Scenario {
	return Scenario{
		Intercept:          -0.75,
		LunchEligible:      0.8,
		ReferenceEducation: 0.6,
		Male:               0.4,
	}
}

// DropoutProbability computes the per-row dropout probability as a logistic
// function of group membership.
func (s Scenario) DropoutProbability(o cohort.Observation) float64 {
	logit := s.Intercept
	if o.LunchEligible {
		logit += s.LunchEligible
	}
	if o.ParentEducation == cohort.EducationNotHSGrad {
		logit += s.ReferenceEducation
	}
	if o.Gender == cohort.GenderMale {
		logit += s.Male
	}
	return sigmoid(logit)
}

// Run builds a simulated dataset: a synthetic true outcome per observation
// from the sampler, then a Bernoulli dropout draw per row under the
// scenario. Dropped rows carry the missing sentinel as their observed
// outcome.
func (s Scenario) Run(obs []cohort.Observation, sampler *Sampler, rng *rand.Rand) Dataset {
	ds := make(Dataset, len(obs))
	for i, o := range obs {
		truth := sampler.Sample(o, rng)
		dropped := rng.Float64() < s.DropoutProbability(o)

		row := Row{Obs: o, True: truth, Dropped: dropped}
		if dropped {
			row.Observed = cohort.MissingScore()
		} else {
			row.Observed = cohort.SomeScore(truth)
		}
		ds[i] = row
	}
	return ds
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
