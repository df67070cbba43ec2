package montecarlo

import (
	"context"
	"math"
	"testing"

	rngadapter "github.com/brendav1/simulation-final/adapters/rng"
	"github.com/brendav1/simulation-final/domain/cohort"
	"github.com/brendav1/simulation-final/domain/model"
	"github.com/brendav1/simulation-final/domain/simulate"
	"github.com/brendav1/simulation-final/internal/testkit"
)

// TestImputationReducesInformativeAttritionBias plants outcome-dependent
// dropout in the reference education group: low scorers leave far more often
// than high scorers, so the survivors overstate that group's mean. The
// observed-only fit then understates every education contrast. Imputing from
// a model calibrated on the pre-attrition cohort restores the dropped half
// of the group without the selection distortion, so the Monte Carlo mean
// should land much closer to the generating coefficients.
func TestImputationReducesInformativeAttritionBias(t *testing.T) {
	config := testkit.DefaultCohortConfig()

	// Same seed, so the pre-attrition rows of both cohorts are identical.
	complete := testkit.NewCohortGenerator(config).Generate()
	attrited := testkit.NewCohortGenerator(config).GenerateWithAttrition(0.5, 0.05)

	levels, err := cohort.LevelsFrom(complete)
	if err != nil {
		t.Fatalf("levels: %v", err)
	}
	design := model.NewDesign(levels)

	calibrated, err := model.Fit(complete, design)
	if err != nil {
		t.Fatalf("fit pre-attrition cohort: %v", err)
	}
	observedOnly, err := model.Fit(attrited, design)
	if err != nil {
		t.Fatalf("fit attrited cohort: %v", err)
	}

	driver := NewDriver(design, simulate.NewSampler(calibrated, design), rngadapter.New())
	samples, err := driver.Run(context.Background(), attrited, Config{Iterations: 200, Seed: 7, Workers: 4})
	if err != nil {
		t.Fatalf("monte carlo run: %v", err)
	}
	summaries, err := Summarize(samples)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	comparisons := Compare(observedOnly, summaries)

	gen := testkit.NewCohortGenerator(config)
	var observedBias, completedBias float64
	var terms int
	for _, c := range comparisons {
		truth, known := gen.TrueCoefficient(c.Term)
		if !known || !isEducationTerm(c.Term) {
			continue
		}
		observedBias += c.Observed - truth
		completedBias += c.CompletedMean - truth
		terms++
	}
	if terms != len(cohort.EducationLevels())-1 {
		t.Fatalf("found %d education contrasts, want %d", terms, len(cohort.EducationLevels())-1)
	}
	observedBias /= float64(terms)
	completedBias /= float64(terms)

	// Survivors in the reference group run roughly thirty points high, so
	// every contrast against them is pulled down by about that much.
	if observedBias > -12 {
		t.Fatalf("observed-only education bias %.1f is too small for the planted dropout", observedBias)
	}
	if math.Abs(completedBias) > 0.7*math.Abs(observedBias) {
		t.Fatalf("imputation left bias at %.1f of an observed-only %.1f, want a substantial reduction",
			completedBias, observedBias)
	}

	// The intercept carries the mirror distortion: the reference group's
	// surviving mean is inflated.
	interceptObserved, _ := observedOnly.Coefficient(model.TermIntercept)
	if interceptObserved-config.Intercept < 12 {
		t.Fatalf("observed-only intercept %.1f shows no survivor inflation over %.1f",
			interceptObserved, config.Intercept)
	}
	var interceptCompleted float64
	for _, s := range summaries {
		if s.Term == model.TermIntercept {
			interceptCompleted = s.Mean
		}
	}
	if math.Abs(interceptCompleted-config.Intercept) > 0.7*math.Abs(interceptObserved-config.Intercept) {
		t.Fatalf("imputed intercept %.1f is not closer to truth than observed-only %.1f",
			interceptCompleted, interceptObserved)
	}
}

func isEducationTerm(term string) bool {
	for _, edu := range cohort.EducationLevels() {
		if term == model.EducationTerm(edu) {
			return true
		}
	}
	return false
}
