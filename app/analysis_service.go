package app

import (
	"context"

	"github.com/brendav1/simulation-final/domain/cohort"
	"github.com/brendav1/simulation-final/domain/core"
	"github.com/brendav1/simulation-final/domain/model"
	"github.com/brendav1/simulation-final/domain/montecarlo"
	"github.com/brendav1/simulation-final/domain/simulate"
	"github.com/brendav1/simulation-final/internal"
	"github.com/brendav1/simulation-final/internal/config"
	"github.com/brendav1/simulation-final/internal/errors"
	"github.com/brendav1/simulation-final/ports"
)

const attritionStream = "attrition"

// AnalysisService orchestrates the full sensitivity analysis: ingest,
// preparation, baseline fit, attrition simulation, and the Monte Carlo
// imputation study.
type AnalysisService struct {
	reader ports.DatasetReader
	rng    ports.RNGPort
	config *config.Config
	log    *internal.Logger
}

// NewAnalysisService wires the service from its ports and configuration.
func NewAnalysisService(reader ports.DatasetReader, rng ports.RNGPort, cfg *config.Config, log *internal.Logger) *AnalysisService {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &AnalysisService{reader: reader, rng: rng, config: cfg, log: log}
}

// Result collects every table the run produces.
type Result struct {
	RunID      core.RunID
	Scenario   simulate.Scenario
	Census     []cohort.MissingnessGroup
	Baseline   *model.Fitted
	Bias       []simulate.SubgroupSummary
	Samples    []montecarlo.Sample
	Summary    []montecarlo.TermSummary
	Comparison []montecarlo.Comparison
}

// Run executes the whole pipeline once. Pure batch transform: the only
// outputs are the returned tables.
func (s *AnalysisService) Run(ctx context.Context) (*Result, error) {
	runID := core.NewRunID()
	s.log.Info("starting analysis run %s", runID)

	table, err := s.reader.Read(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input table")
	}
	s.log.Info("input table loaded (%d columns, %d rows)", len(table.Headers), len(table.Rows))

	prepCfg := cohort.PrepareConfig{
		Years:    s.config.Data.Years,
		ScoreMin: s.config.Model.ScoreMin,
		ScoreMax: s.config.Model.ScoreMax,
	}
	obs, err := cohort.Prepare(table, prepCfg)
	if err != nil {
		return nil, errors.DataQuality("data preparation failed", err)
	}
	s.log.Info("prepared %d observations across years %v", len(obs), s.config.Data.Years)

	levels, err := cohort.LevelsFrom(obs)
	if err != nil {
		return nil, errors.DataQuality("level table construction failed", err)
	}
	design := model.NewDesign(levels)

	census := cohort.Census(obs)

	baseline, err := model.Fit(obs, design)
	if err != nil {
		return nil, errors.ModelFit("baseline fit failed", err)
	}
	s.log.Info("baseline fit: n=%d, residual sd=%.2f", baseline.N, baseline.ResidualSD)

	sampler := simulate.NewSampler(baseline, design)

	scenario := simulate.Scenario{
		Intercept:          s.config.Scenario.Intercept,
		LunchEligible:      s.config.Scenario.LunchEligible,
		ReferenceEducation: s.config.Scenario.ReferenceEducation,
		Male:               s.config.Scenario.Male,
	}
	simStream := s.rng.SeededStream(attritionStream, s.config.MonteCarlo.Seed)
	simulated := scenario.Run(obs, sampler, simStream)
	bias := simulate.Summarize(simulated)

	driver := montecarlo.NewDriver(design, sampler, s.rng)
	mcCfg := montecarlo.Config{
		Iterations: s.config.MonteCarlo.Iterations,
		Seed:       s.config.MonteCarlo.Seed,
		Workers:    s.config.MonteCarlo.Workers,
	}
	samples, err := driver.Run(ctx, obs, mcCfg)
	if err != nil {
		return nil, errors.Simulation("monte carlo run failed", err)
	}
	s.log.Info("monte carlo complete: %d iterations, %d samples", mcCfg.Iterations, len(samples))

	summary, err := montecarlo.Summarize(samples)
	if err != nil {
		return nil, errors.Simulation("coefficient summary failed", err)
	}

	return &Result{
		RunID:      runID,
		Scenario:   scenario,
		Census:     census,
		Baseline:   baseline,
		Bias:       bias,
		Samples:    samples,
		Summary:    summary,
		Comparison: montecarlo.Compare(baseline, summary),
	}, nil
}
