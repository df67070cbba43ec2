package model

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Fitted is a read-only ordinary least-squares fit. Coefficients and
// standard errors align with the design's term ordering. A Fitted is never
// mutated after Fit returns; refits replace it wholesale.
type Fitted struct {
	Terms        []string
	Coefficients []float64
	StdErrors    []float64
	ResidualSD   float64
	N            int // rows used in the fit
	DF           int // residual degrees of freedom (N - columns)
}

// Coefficient looks up the point estimate for a term.
func (f *Fitted) Coefficient(term string) (float64, bool) {
	for i, t := range f.Terms {
		if t == term {
			return f.Coefficients[i], true
		}
	}
	return 0, false
}

// StdError looks up the standard error for a term.
func (f *Fitted) StdError(term string) (float64, bool) {
	for i, t := range f.Terms {
		if t == term {
			return f.StdErrors[i], true
		}
	}
	return 0, false
}

// TStatistic returns the t statistic for term index i.
func (f *Fitted) TStatistic(i int) float64 {
	if f.StdErrors[i] == 0 {
		return 0
	}
	return f.Coefficients[i] / f.StdErrors[i]
}

// PValue returns the two-sided p-value for term index i under Student's t
// with the fit's residual degrees of freedom.
func (f *Fitted) PValue(i int) float64 {
	if f.DF <= 0 {
		return 1
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(f.DF)}
	return 2 * (1 - tDist.CDF(math.Abs(f.TStatistic(i))))
}

// Predict computes the point prediction for a design row.
func (f *Fitted) Predict(row []float64) float64 {
	var sum float64
	for i, x := range row {
		sum += x * f.Coefficients[i]
	}
	return sum
}
