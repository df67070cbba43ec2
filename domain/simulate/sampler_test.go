package simulate

import (
	"math"
	"math/rand"
	"testing"
)

func TestSampleDeterministicUnderSeed(t *testing.T) {
	sampler, obs := fitNoiseless(t)

	a := rand.New(rand.NewSource(123))
	b := rand.New(rand.NewSource(123))
	for i := 0; i < 50; i++ {
		o := obs[i%len(obs)]
		if sampler.Sample(o, a) != sampler.Sample(o, b) {
			t.Fatalf("draw %d differs between identically seeded streams", i)
		}
	}
}

func TestSampleNoiselessModelReturnsPrediction(t *testing.T) {
	sampler, obs := fitNoiseless(t)
	rng := rand.New(rand.NewSource(5))

	// The fit is exact, so the residual SD is zero and every draw equals the
	// point prediction.
	for _, o := range obs[:10] {
		draw := sampler.Sample(o, rng)
		if math.Abs(draw-sampler.Predict(o)) > 1e-8 {
			t.Fatalf("draw %v != prediction %v with zero residual scale", draw, sampler.Predict(o))
		}
	}
}

func TestSampleNoiseMatchesResidualScale(t *testing.T) {
	sampler, obs := fitNoiseless(t)

	// Force a known residual scale and verify empirical moments of the
	// draws against it.
	const sd = 50.0
	fitted := *sampler.fitted
	fitted.ResidualSD = sd
	scaled := NewSampler(&fitted, sampler.design)

	o := obs[0]
	rng := rand.New(rand.NewSource(17))

	const n = 20000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		d := scaled.Sample(o, rng)
		sum += d
		sumSq += d * d
	}
	mean := sum / n
	variance := sumSq/n - mean*mean

	if math.Abs(mean-scaled.Predict(o)) > 1.5 {
		t.Errorf("empirical mean %v too far from prediction %v", mean, scaled.Predict(o))
	}
	if math.Abs(math.Sqrt(variance)-sd) > 1.5 {
		t.Errorf("empirical sd %v too far from residual sd %v", math.Sqrt(variance), sd)
	}
}
