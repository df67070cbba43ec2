package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/brendav1/simulation-final/domain/cohort"
	"github.com/brendav1/simulation-final/domain/core"
	"github.com/brendav1/simulation-final/domain/montecarlo"
	"github.com/brendav1/simulation-final/domain/simulate"
	"github.com/brendav1/simulation-final/internal/errors"
)

// Manifest records the inputs that make a run repeatable.
type Manifest struct {
	RunID       core.RunID
	Seed        int64
	Iterations  int
	Scenario    simulate.Scenario
	GeneratedAt time.Time
}

// ReportData bundles everything the rendered report shows.
type ReportData struct {
	Manifest   Manifest
	Census     []cohort.MissingnessGroup
	Bias       []simulate.SubgroupSummary
	Summary    []montecarlo.TermSummary
	Comparison []montecarlo.Comparison
}

// WriteReport renders the analysis report as markdown and as HTML.
func (w *Writer) WriteReport(data ReportData) error {
	md := renderMarkdown(data)

	mdPath := filepath.Join(w.dir, "report.md")
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return errors.ReportWrite("failed to write report.md", err)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	htmlBody := markdown.ToHTML([]byte(md), p, renderer)

	htmlPath := filepath.Join(w.dir, "report.html")
	if err := os.WriteFile(htmlPath, htmlBody, 0o644); err != nil {
		return errors.ReportWrite("failed to write report.html", err)
	}
	return nil
}

func renderMarkdown(data ReportData) string {
	var b strings.Builder

	b.WriteString("# Attrition Sensitivity Analysis\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", data.Manifest.RunID)
	fmt.Fprintf(&b, "- Generated: %s\n", data.Manifest.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Seed: %d, iterations: %d\n", data.Manifest.Seed, data.Manifest.Iterations)
	fmt.Fprintf(&b, "- Attrition scenario: b0=%g b1=%g b2=%g b3=%g\n\n",
		data.Manifest.Scenario.Intercept,
		data.Manifest.Scenario.LunchEligible,
		data.Manifest.Scenario.ReferenceEducation,
		data.Manifest.Scenario.Male)

	b.WriteString("## Outcome missingness by subgroup\n\n")
	b.WriteString("| Lunch | Parent education | Gender | N | Missing | Rate |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, g := range data.Census {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %d | %s |\n",
			formatBool(g.Key.LunchEligible), g.Key.ParentEducation, g.Key.Gender,
			g.N, g.NMissing, formatFloat(g.Rate))
	}

	b.WriteString("\n## Simulated attrition bias by subgroup\n\n")
	b.WriteString("| Lunch | Parent education | Gender | N | Dropout | True mean | Observed mean | Bias |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, s := range data.Bias {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %s | %s | %s |\n",
			formatBool(s.Key.LunchEligible), s.Key.ParentEducation, s.Key.Gender,
			s.N, formatFloat(s.DropoutRate), formatFloat(s.TrueMean),
			orUndefined(s.ObservedMean), orUndefined(s.Bias))
	}

	b.WriteString("\n## Monte Carlo coefficient summary\n\n")
	b.WriteString("| Term | Mean | SD | 2.5% | 97.5% |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, s := range data.Summary {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			s.Term, formatFloat(s.Mean), formatFloat(s.SD),
			formatFloat(s.Lower), formatFloat(s.Upper))
	}

	b.WriteString("\n## Observed-only vs imputed-complete coefficients\n\n")
	b.WriteString("| Term | Observed | SE | Completed mean | Difference |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, c := range data.Comparison {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			c.Term, formatFloat(c.Observed), formatFloat(c.ObservedSE),
			formatFloat(c.CompletedMean), formatFloat(c.Difference))
	}

	return b.String()
}

func orUndefined(s cohort.Score) string {
	if !s.Valid {
		return "undefined"
	}
	return formatFloat(s.Value)
}
