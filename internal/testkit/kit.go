package testkit

import (
	"fmt"
	"math/rand"

	"github.com/brendav1/simulation-final/domain/cohort"
	"github.com/brendav1/simulation-final/domain/model"
)

// CohortConfig configures the synthetic cohort generator. The generating
// coefficients are known exactly, so tests can measure estimation bias
// against ground truth.
type CohortConfig struct {
	Rows       int
	Seed       int64
	Years      []string
	Intercept  float64
	LunchShift float64
	MaleShift  float64
	EduShifts  map[cohort.ParentEducation]float64
	YearShifts map[string]float64
	ResidualSD float64
	LunchRate  float64 // fraction of students lunch-eligible
}

// DefaultCohortConfig returns a cohort whose outcome scale sits inside the
// plausible assessment range.
func DefaultCohortConfig() CohortConfig {
	return CohortConfig{
		Rows:       1000,
		Seed:       42,
		Years:      []string{"2018", "2019"},
		Intercept:  1500,
		LunchShift: -80,
		MaleShift:  -20,
		EduShifts: map[cohort.ParentEducation]float64{
			cohort.EducationHSGrad:      40,
			cohort.EducationSomeCollege: 70,
			cohort.EducationAssociate:   90,
			cohort.EducationBachelor:    130,
			cohort.EducationGraduate:    170,
		},
		YearShifts: map[string]float64{"2019": 15},
		ResidualSD: 60,
		LunchRate:  0.4,
	}
}

// CohortGenerator produces synthetic student-year observations from known
// generating coefficients.
type CohortGenerator struct {
	config CohortConfig
	rng    *rand.Rand
}

// NewCohortGenerator creates a generator seeded from the config.
func NewCohortGenerator(config CohortConfig) *CohortGenerator {
	return &CohortGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate produces a fully observed cohort.
func (g *CohortGenerator) Generate() []cohort.Observation {
	obs := make([]cohort.Observation, 0, g.config.Rows)
	educations := cohort.EducationLevels()

	for i := 0; i < g.config.Rows; i++ {
		o := cohort.Observation{
			StudentID:       fmt.Sprintf("student_%04d", i+1),
			Year:            g.config.Years[g.rng.Intn(len(g.config.Years))],
			ParentEducation: educations[g.rng.Intn(len(educations))],
			LunchEligible:   g.rng.Float64() < g.config.LunchRate,
			Gender:          cohort.GenderFemale,
		}
		if g.rng.Float64() < 0.5 {
			o.Gender = cohort.GenderMale
		}
		o.Score = cohort.SomeScore(g.TrueScore(o) + g.rng.NormFloat64()*g.config.ResidualSD)
		obs = append(obs, o)
	}
	return obs
}

// GenerateWithAttrition produces a cohort with education-keyed informative
// missingness: students whose parent education is the reference level are
// blanked at a marginal rate of dropRef, with low scorers (below their
// covariate mean) dropping at dropRef+0.3 and high scorers at dropRef-0.3;
// everyone else is blanked uniformly at dropOther. The outcome dependence
// inside the reference group is what makes the observed-only estimates
// biased rather than merely noisier.
func (g *CohortGenerator) GenerateWithAttrition(dropRef, dropOther float64) []cohort.Observation {
	obs := g.Generate()
	for i := range obs {
		p := dropOther
		if obs[i].ParentEducation == cohort.EducationNotHSGrad {
			if obs[i].Score.Value < g.TrueScore(obs[i]) {
				p = dropRef + 0.3
			} else {
				p = dropRef - 0.3
			}
		}
		if g.rng.Float64() < p {
			obs[i].Score = cohort.MissingScore()
		}
	}
	return obs
}

// TrueScore returns the noise-free generating value for an observation.
func (g *CohortGenerator) TrueScore(o cohort.Observation) float64 {
	score := g.config.Intercept
	score += g.config.YearShifts[o.Year]
	score += g.config.EduShifts[o.ParentEducation]
	if o.LunchEligible {
		score += g.config.LunchShift
	}
	if o.Gender == cohort.GenderMale {
		score += g.config.MaleShift
	}
	return score
}

// TrueCoefficient returns the generating coefficient for a model term
// relative to the standard reference levels, and whether the term is known.
func (g *CohortGenerator) TrueCoefficient(term string) (float64, bool) {
	if term == model.TermLunch {
		return g.config.LunchShift, true
	}
	if term == model.GenderTerm(cohort.GenderMale) {
		return g.config.MaleShift, true
	}
	for edu, shift := range g.config.EduShifts {
		if term == model.EducationTerm(edu) {
			return shift, true
		}
	}
	for year, shift := range g.config.YearShifts {
		if term == model.YearTerm(year) {
			return shift, true
		}
	}
	return 0, false
}
