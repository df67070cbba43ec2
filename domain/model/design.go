package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/brendav1/simulation-final/domain/cohort"
	"github.com/brendav1/simulation-final/domain/core"
)

// Term names for the additive formula
// score ~ year + lunch_eligible + gender + parent_education.
const (
	TermIntercept = "intercept"
	TermLunch     = "lunch_eligible"
)

// YearTerm names the indicator column for a non-reference year.
func YearTerm(year string) string {
	return fmt.Sprintf("year=%s", year)
}

// GenderTerm names the indicator column for a non-reference gender.
func GenderTerm(g cohort.Gender) string {
	return fmt.Sprintf("gender=%s", g)
}

// EducationTerm names the indicator column for a non-reference
// parent-education level.
func EducationTerm(e cohort.ParentEducation) string {
	return fmt.Sprintf("parent_education=%s", e)
}

// Design expands observations into a numeric matrix with reference-level
// indicator coding. Column ordering is fixed by the levels table, so every
// matrix built from the same Design shares term identity.
type Design struct {
	levels cohort.Levels
	terms  []string
}

// NewDesign builds a design for the given levels table. The first entry of
// each level slice is the reference level and gets no column.
func NewDesign(levels cohort.Levels) *Design {
	terms := []string{TermIntercept}
	for _, y := range levels.Years[1:] {
		terms = append(terms, YearTerm(y))
	}
	terms = append(terms, TermLunch)
	for _, g := range levels.Genders[1:] {
		terms = append(terms, GenderTerm(g))
	}
	for _, e := range levels.Educations[1:] {
		terms = append(terms, EducationTerm(e))
	}
	return &Design{levels: levels, terms: terms}
}

// Levels returns the level table the design encodes against.
func (d *Design) Levels() cohort.Levels { return d.levels }

// Terms returns the design column names in matrix order.
func (d *Design) Terms() []string { return d.terms }

// Width returns the number of design columns.
func (d *Design) Width() int { return len(d.terms) }

// Row encodes one observation as a design-matrix row.
func (d *Design) Row(o cohort.Observation) []float64 {
	row := make([]float64, 0, len(d.terms))
	row = append(row, 1)
	for _, y := range d.levels.Years[1:] {
		row = append(row, indicator(o.Year == y))
	}
	row = append(row, indicator(o.LunchEligible))
	for _, g := range d.levels.Genders[1:] {
		row = append(row, indicator(o.Gender == g))
	}
	for _, e := range d.levels.Educations[1:] {
		row = append(row, indicator(o.ParentEducation == e))
	}
	return row
}

// Matrix encodes a set of observations, one row each, in input order.
func (d *Design) Matrix(obs []cohort.Observation) (*mat.Dense, error) {
	if len(obs) == 0 {
		return nil, core.ErrEmptyCohort
	}
	X := mat.NewDense(len(obs), d.Width(), nil)
	for i, o := range obs {
		X.SetRow(i, d.Row(o))
	}
	return X, nil
}

// checkLevels verifies every non-reference level of the table occurs in the
// fitting subset. A level present in the full data but absent here would
// leave its coefficient undefined.
func (d *Design) checkLevels(obs []cohort.Observation) error {
	years := map[string]bool{}
	genders := map[cohort.Gender]bool{}
	educations := map[cohort.ParentEducation]bool{}
	for _, o := range obs {
		years[o.Year] = true
		genders[o.Gender] = true
		educations[o.ParentEducation] = true
	}

	for _, y := range d.levels.Years {
		if !years[y] {
			return core.NewMissingLevelError("year", y)
		}
	}
	for _, g := range d.levels.Genders {
		if !genders[g] {
			return core.NewMissingLevelError("gender", string(g))
		}
	}
	for _, e := range d.levels.Educations {
		if !educations[e] {
			return core.NewMissingLevelError("parent_education", string(e))
		}
	}
	return nil
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
