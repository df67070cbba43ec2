package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/brendav1/simulation-final/domain/cohort"
	"github.com/brendav1/simulation-final/domain/core"
)

// Fit estimates score ~ year + lunch_eligible + gender + parent_education by
// ordinary least squares on the rows with a present outcome. It is a pure
// function of its inputs. Fit fails distinguishably when the subset is
// smaller than the design width, when a level from the full-data table is
// absent from the subset, or when the normal equations are singular.
func Fit(obs []cohort.Observation, d *Design) (*Fitted, error) {
	fitSet := cohort.CompleteOutcome(obs)
	if len(fitSet) == 0 {
		return nil, core.ErrEmptyCohort
	}
	if err := d.checkLevels(fitSet); err != nil {
		return nil, err
	}

	n := len(fitSet)
	p := d.Width()
	if n <= p {
		return nil, fmt.Errorf("%w: %d rows, %d columns", core.ErrInsufficientData, n, p)
	}

	X, err := d.Matrix(fitSet)
	if err != nil {
		return nil, err
	}
	y := mat.NewVecDense(n, nil)
	for i, o := range fitSet {
		y.SetVec(i, o.Score.Value)
	}

	// Normal equations: beta = (X'X)^-1 X'y.
	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRankDeficient, err)
	}

	var xty mat.VecDense
	xty.MulVec(X.T(), y)

	var beta mat.VecDense
	beta.MulVec(&xtxInv, &xty)

	// Residual scale from the unexplained sum of squares.
	var yhat mat.VecDense
	yhat.MulVec(X, &beta)

	var rss float64
	for i := 0; i < n; i++ {
		r := y.AtVec(i) - yhat.AtVec(i)
		rss += r * r
	}
	df := n - p
	residualSD := math.Sqrt(rss / float64(df))

	coefs := make([]float64, p)
	stderrs := make([]float64, p)
	for j := 0; j < p; j++ {
		coefs[j] = beta.AtVec(j)
		stderrs[j] = residualSD * math.Sqrt(xtxInv.At(j, j))
	}

	return &Fitted{
		Terms:        d.Terms(),
		Coefficients: coefs,
		StdErrors:    stderrs,
		ResidualSD:   residualSD,
		N:            n,
		DF:           df,
	}, nil
}
