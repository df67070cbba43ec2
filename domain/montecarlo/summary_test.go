package montecarlo

import (
	"fmt"
	"testing"
)

// Small runs used to fail summarization outright: interpolating percentile
// rules reject sample counts where 2.5% of the run rounds below a single
// observation. Nearest-rank must produce the min/max order statistics
// instead for every count up to forty.
func TestSummarizePercentilesDefinedForSmallRuns(t *testing.T) {
	for _, runs := range []int{1, 2, 3, 5, 20, 25, 39} {
		t.Run(fmt.Sprintf("%d_iterations", runs), func(t *testing.T) {
			samples := make([]Sample, runs)
			min, max := 0.0, 0.0
			for i := range samples {
				est := 100 + float64((i*7)%runs) // shuffled but bounded
				if i == 0 || est < min {
					min = est
				}
				if i == 0 || est > max {
					max = est
				}
				samples[i] = Sample{Iteration: i, Term: "lunch_eligible", Estimate: est}
			}

			summaries, err := Summarize(samples)
			if err != nil {
				t.Fatalf("summarize %d samples: %v", runs, err)
			}
			if len(summaries) != 1 {
				t.Fatalf("got %d summaries, want 1", len(summaries))
			}

			s := summaries[0]
			if s.Runs != runs {
				t.Fatalf("runs = %d, want %d", s.Runs, runs)
			}
			if s.Lower != min {
				t.Errorf("lower = %v, want min %v", s.Lower, min)
			}
			if s.Upper != max {
				t.Errorf("upper = %v, want max %v", s.Upper, max)
			}
			if s.Lower > s.Mean || s.Mean > s.Upper {
				t.Errorf("interval out of order: %v <= %v <= %v", s.Lower, s.Mean, s.Upper)
			}
		})
	}
}
