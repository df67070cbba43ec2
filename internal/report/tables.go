package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brendav1/simulation-final/domain/cohort"
	"github.com/brendav1/simulation-final/domain/montecarlo"
	"github.com/brendav1/simulation-final/domain/simulate"
	"github.com/brendav1/simulation-final/internal/errors"
)

// Writer renders output tables under a directory. Undefined values (empty
// subgroups) are written as empty cells, never as zero.
type Writer struct {
	dir string
}

// NewWriter creates a table writer rooted at dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.ReportWrite("failed to create output directory", err)
	}
	return &Writer{dir: dir}, nil
}

// WriteCensus writes the subgroup missingness table.
func (w *Writer) WriteCensus(groups []cohort.MissingnessGroup) error {
	records := [][]string{{"lunch_eligible", "parent_education", "gender", "n", "n_missing", "rate"}}
	for _, g := range groups {
		records = append(records, []string{
			formatBool(g.Key.LunchEligible),
			string(g.Key.ParentEducation),
			string(g.Key.Gender),
			fmt.Sprintf("%d", g.N),
			fmt.Sprintf("%d", g.NMissing),
			formatFloat(g.Rate),
		})
	}
	return w.writeCSV("missingness.csv", records)
}

// WriteBias writes the attrition bias-by-subgroup table.
func (w *Writer) WriteBias(summaries []simulate.SubgroupSummary) error {
	records := [][]string{{"lunch_eligible", "parent_education", "gender", "n", "dropout_rate", "true_mean", "observed_mean", "bias"}}
	for _, s := range summaries {
		records = append(records, []string{
			formatBool(s.Key.LunchEligible),
			string(s.Key.ParentEducation),
			string(s.Key.Gender),
			fmt.Sprintf("%d", s.N),
			formatFloat(s.DropoutRate),
			formatFloat(s.TrueMean),
			formatScore(s.ObservedMean),
			formatScore(s.Bias),
		})
	}
	return w.writeCSV("attrition_bias.csv", records)
}

// WriteSummary writes the Monte Carlo coefficient-summary table.
func (w *Writer) WriteSummary(summaries []montecarlo.TermSummary) error {
	records := [][]string{{"term", "mean_estimate", "sd_estimate", "lower_2.5pct", "upper_97.5pct", "runs"}}
	for _, s := range summaries {
		records = append(records, []string{
			s.Term,
			formatFloat(s.Mean),
			formatFloat(s.SD),
			formatFloat(s.Lower),
			formatFloat(s.Upper),
			fmt.Sprintf("%d", s.Runs),
		})
	}
	return w.writeCSV("monte_carlo_summary.csv", records)
}

// WriteComparison writes the observed-vs-completed coefficient table.
func (w *Writer) WriteComparison(rows []montecarlo.Comparison) error {
	records := [][]string{{"term", "observed_estimate", "observed_se", "completed_mean", "difference"}}
	for _, c := range rows {
		records = append(records, []string{
			c.Term,
			formatFloat(c.Observed),
			formatFloat(c.ObservedSE),
			formatFloat(c.CompletedMean),
			formatFloat(c.Difference),
		})
	}
	return w.writeCSV("coefficient_comparison.csv", records)
}

func (w *Writer) writeCSV(name string, records [][]string) error {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return errors.ReportWrite(fmt.Sprintf("failed to create %s", name), err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(records); err != nil {
		return errors.ReportWrite(fmt.Sprintf("failed to write %s", name), err)
	}
	return nil
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.6g", v)
}

// formatScore leaves undefined values empty rather than writing zero.
func formatScore(s cohort.Score) string {
	if !s.Valid {
		return ""
	}
	return formatFloat(s.Value)
}
