package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brendav1/simulation-final/domain/cohort"
	"github.com/brendav1/simulation-final/domain/core"
)

// fullCohort builds a noise-free cohort covering every level, with outcomes
// generated from known coefficients.
func fullCohort() ([]cohort.Observation, map[string]float64) {
	truth := map[string]float64{
		TermIntercept:    1500,
		YearTerm("2019"): 15,
		TermLunch:        -80,
		GenderTerm(cohort.GenderMale):              -20,
		EducationTerm(cohort.EducationHSGrad):      40,
		EducationTerm(cohort.EducationSomeCollege): 70,
		EducationTerm(cohort.EducationAssociate):   90,
		EducationTerm(cohort.EducationBachelor):    130,
		EducationTerm(cohort.EducationGraduate):    170,
	}

	var obs []cohort.Observation
	for _, year := range []string{"2018", "2019"} {
		for _, gender := range []cohort.Gender{cohort.GenderFemale, cohort.GenderMale} {
			for _, lunch := range []bool{false, true} {
				for _, edu := range cohort.EducationLevels() {
					o := cohort.Observation{
						Year:            year,
						Gender:          gender,
						ParentEducation: edu,
						LunchEligible:   lunch,
					}
					score := truth[TermIntercept]
					if year == "2019" {
						score += truth[YearTerm("2019")]
					}
					if lunch {
						score += truth[TermLunch]
					}
					if gender == cohort.GenderMale {
						score += truth[GenderTerm(cohort.GenderMale)]
					}
					if edu != cohort.EducationNotHSGrad {
						score += truth[EducationTerm(edu)]
					}
					o.Score = cohort.SomeScore(score)
					obs = append(obs, o)
				}
			}
		}
	}
	return obs, truth
}

func TestFitRecoversKnownCoefficients(t *testing.T) {
	obs, truth := fullCohort()
	levels, err := cohort.LevelsFrom(obs)
	require.NoError(t, err)
	design := NewDesign(levels)

	fitted, err := Fit(obs, design)
	require.NoError(t, err)

	require.Equal(t, design.Terms(), fitted.Terms)
	for i, term := range fitted.Terms {
		assert.InDeltaf(t, truth[term], fitted.Coefficients[i], 1e-8, "term %s", term)
	}
	assert.InDelta(t, 0, fitted.ResidualSD, 1e-8)
	assert.Equal(t, len(obs), fitted.N)
	assert.Equal(t, len(obs)-design.Width(), fitted.DF)
}

func TestFitSkipsMissingOutcomes(t *testing.T) {
	obs, _ := fullCohort()
	// Duplicate the cohort with missing outcomes; they must not affect the fit.
	withMissing := append([]cohort.Observation{}, obs...)
	for _, o := range obs {
		o.Score = cohort.MissingScore()
		withMissing = append(withMissing, o)
	}

	levels, err := cohort.LevelsFrom(obs)
	require.NoError(t, err)
	design := NewDesign(levels)

	base, err := Fit(obs, design)
	require.NoError(t, err)
	padded, err := Fit(withMissing, design)
	require.NoError(t, err)

	assert.Equal(t, base.Coefficients, padded.Coefficients)
	assert.Equal(t, base.N, padded.N)
}

func TestFitMissingLevel(t *testing.T) {
	obs, _ := fullCohort()
	// Blank every Graduate Degree outcome: the level exists in the full data
	// but not in the fitting subset.
	for i := range obs {
		if obs[i].ParentEducation == cohort.EducationGraduate {
			obs[i].Score = cohort.MissingScore()
		}
	}
	levels, err := cohort.LevelsFrom(obs)
	require.NoError(t, err)

	_, err = Fit(obs, NewDesign(levels))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrMissingLevel))
	assert.True(t, core.IsModelFitError(err))
}

func TestFitInsufficientData(t *testing.T) {
	obs, _ := fullCohort()
	levels, err := cohort.LevelsFrom(obs)
	require.NoError(t, err)
	design := NewDesign(levels)

	// Nine rows, nine design columns: every level present, but no residual
	// degrees of freedom.
	small := make([]cohort.Observation, 0, design.Width())
	educations := cohort.EducationLevels()
	years := []string{"2018", "2019"}
	genders := []cohort.Gender{cohort.GenderFemale, cohort.GenderMale}
	for i := 0; i < design.Width(); i++ {
		small = append(small, cohort.Observation{
			Year:            years[i%2],
			Gender:          genders[i%2],
			ParentEducation: educations[i%len(educations)],
			LunchEligible:   i%2 == 0,
			Score:           cohort.SomeScore(1400 + float64(i)),
		})
	}

	_, err = Fit(small, design)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInsufficientData))
	assert.True(t, core.IsModelFitError(err))
}

func TestFitEmpty(t *testing.T) {
	obs, _ := fullCohort()
	levels, err := cohort.LevelsFrom(obs)
	require.NoError(t, err)

	_, err = Fit(nil, NewDesign(levels))
	assert.True(t, errors.Is(err, core.ErrEmptyCohort))
}

func TestDesignRowColumnOrder(t *testing.T) {
	obs, _ := fullCohort()
	levels, err := cohort.LevelsFrom(obs)
	require.NoError(t, err)
	design := NewDesign(levels)

	o := cohort.Observation{
		Year:            "2019",
		Gender:          cohort.GenderMale,
		ParentEducation: cohort.EducationBachelor,
		LunchEligible:   true,
		Score:           cohort.SomeScore(1400),
	}
	row := design.Row(o)
	require.Len(t, row, design.Width())

	byTerm := map[string]float64{}
	for i, term := range design.Terms() {
		byTerm[term] = row[i]
	}
	assert.Equal(t, 1.0, byTerm[TermIntercept])
	assert.Equal(t, 1.0, byTerm[YearTerm("2019")])
	assert.Equal(t, 1.0, byTerm[TermLunch])
	assert.Equal(t, 1.0, byTerm[GenderTerm(cohort.GenderMale)])
	assert.Equal(t, 1.0, byTerm[EducationTerm(cohort.EducationBachelor)])
	assert.Equal(t, 0.0, byTerm[EducationTerm(cohort.EducationHSGrad)])
}

func TestPValueBounds(t *testing.T) {
	obs, _ := fullCohort()
	// Perturb one outcome so the residual SD is nonzero and p-values are
	// well defined.
	obs[0].Score = cohort.SomeScore(obs[0].Score.Value + 5)

	levels, err := cohort.LevelsFrom(obs)
	require.NoError(t, err)
	fitted, err := Fit(obs, NewDesign(levels))
	require.NoError(t, err)

	for i := range fitted.Terms {
		p := fitted.PValue(i)
		assert.False(t, math.IsNaN(p))
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}
