package cohort

import (
	"fmt"
	"sort"

	"github.com/brendav1/simulation-final/domain/core"
)

// Score is an assessment score that may be absent. A missing outcome is a
// sentinel state, never zero.
type Score struct {
	Value float64
	Valid bool
}

// SomeScore wraps a present score value.
func SomeScore(v float64) Score {
	return Score{Value: v, Valid: true}
}

// MissingScore returns the missing-outcome sentinel.
func MissingScore() Score {
	return Score{}
}

func (s Score) String() string {
	if !s.Valid {
		return "missing"
	}
	return fmt.Sprintf("%g", s.Value)
}

// Gender is a two-level categorical predictor.
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

// ParentEducation is a six-level categorical predictor. The reference level
// for every model fit is EducationNotHSGrad.
type ParentEducation string

const (
	EducationNotHSGrad   ParentEducation = "Not a High School Graduate"
	EducationHSGrad      ParentEducation = "High School Graduate"
	EducationSomeCollege ParentEducation = "Some College"
	EducationAssociate   ParentEducation = "Associate's Degree"
	EducationBachelor    ParentEducation = "Bachelor's Degree"
	EducationGraduate    ParentEducation = "Graduate Degree"
)

// EducationLevels returns all parent-education levels in canonical order,
// reference level first.
func EducationLevels() []ParentEducation {
	return []ParentEducation{
		EducationNotHSGrad,
		EducationHSGrad,
		EducationSomeCollege,
		EducationAssociate,
		EducationBachelor,
		EducationGraduate,
	}
}

// Observation is one student-year record after preparation.
type Observation struct {
	StudentID       string
	Year            string
	Gender          Gender
	ParentEducation ParentEducation
	LunchEligible   bool
	Score           Score
}

// RawTable is a wide-format input table as read from an external source:
// one row per student, demographic columns plus <variable>_<year> columns.
type RawTable struct {
	Headers []string
	Rows    []map[string]string
}

// HasColumn reports whether the table carries the named column.
func (t *RawTable) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Levels is the fixed category-to-reference-level table shared by the
// baseline fit and every Monte Carlo refit. It is constructed once from the
// full prepared cohort so term identity never drifts between iterations.
type Levels struct {
	Years      []string          // reference level first
	Genders    []Gender          // reference level first
	Educations []ParentEducation // reference level first
}

// LevelsFrom collects the categorical levels present in the full prepared
// cohort. Year reference is the earliest year; gender reference is female;
// parent-education reference is always "Not a High School Graduate".
func LevelsFrom(obs []Observation) (Levels, error) {
	if len(obs) == 0 {
		return Levels{}, core.ErrEmptyCohort
	}

	yearSet := map[string]bool{}
	genderSet := map[Gender]bool{}
	eduSet := map[ParentEducation]bool{}
	for _, o := range obs {
		yearSet[o.Year] = true
		genderSet[o.Gender] = true
		eduSet[o.ParentEducation] = true
	}

	years := make([]string, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Strings(years)

	genders := make([]Gender, 0, 2)
	for _, g := range []Gender{GenderFemale, GenderMale} {
		if genderSet[g] {
			genders = append(genders, g)
		}
	}

	educations := make([]ParentEducation, 0, len(eduSet))
	for _, e := range EducationLevels() {
		if eduSet[e] {
			educations = append(educations, e)
		}
	}

	return Levels{Years: years, Genders: genders, Educations: educations}, nil
}

// CompleteOutcome returns the subset of observations with a present score.
func CompleteOutcome(obs []Observation) []Observation {
	out := make([]Observation, 0, len(obs))
	for _, o := range obs {
		if o.Score.Valid {
			out = append(out, o)
		}
	}
	return out
}
