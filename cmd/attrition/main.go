package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/brendav1/simulation-final/adapters/excel"
	"github.com/brendav1/simulation-final/adapters/rng"
	"github.com/brendav1/simulation-final/app"
	"github.com/brendav1/simulation-final/internal"
	"github.com/brendav1/simulation-final/internal/config"
	"github.com/brendav1/simulation-final/internal/report"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	readerConfig := excel.DefaultConfig()
	readerConfig.FilePath = appConfig.Data.InputFile
	readerConfig.Sheet = appConfig.Data.Sheet
	reader := excel.NewDataReader(readerConfig)

	service := app.NewAnalysisService(reader, rng.New(), appConfig, logger)

	start := time.Now()
	result, err := service.Run(context.Background())
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
	logger.Info("analysis finished in %s", time.Since(start).Round(time.Millisecond))

	writer, err := report.NewWriter(appConfig.Paths.OutputDir)
	if err != nil {
		log.Fatalf("Failed to prepare output directory: %v", err)
	}

	if err := writer.WriteCensus(result.Census); err != nil {
		log.Fatalf("Failed to write missingness table: %v", err)
	}
	if err := writer.WriteBias(result.Bias); err != nil {
		log.Fatalf("Failed to write bias table: %v", err)
	}
	if err := writer.WriteSummary(result.Summary); err != nil {
		log.Fatalf("Failed to write monte carlo summary: %v", err)
	}
	if err := writer.WriteComparison(result.Comparison); err != nil {
		log.Fatalf("Failed to write comparison table: %v", err)
	}

	reportData := report.ReportData{
		Manifest: report.Manifest{
			RunID:       result.RunID,
			Seed:        appConfig.MonteCarlo.Seed,
			Iterations:  appConfig.MonteCarlo.Iterations,
			Scenario:    result.Scenario,
			GeneratedAt: time.Now().UTC(),
		},
		Census:     result.Census,
		Bias:       result.Bias,
		Summary:    result.Summary,
		Comparison: result.Comparison,
	}
	if err := writer.WriteReport(reportData); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	logger.Info("artifacts written to %s", appConfig.Paths.OutputDir)
}
