package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Model-fit errors
	ErrModelFit         = errors.New("model fit failed")
	ErrRankDeficient    = fmt.Errorf("%w: rank deficient design matrix", ErrModelFit)
	ErrInsufficientData = fmt.Errorf("%w: fewer rows than design columns", ErrModelFit)
	ErrMissingLevel     = fmt.Errorf("%w: categorical level absent from fitting subset", ErrModelFit)

	// Data errors
	ErrEmptyCohort   = errors.New("cohort contains no observations")
	ErrUnknownColumn = errors.New("required column not found")
	ErrUnknownLevel  = errors.New("value is not a known categorical level")

	// Simulation errors
	ErrIterationFailed = errors.New("monte carlo iteration failed")
	ErrNoSamples       = errors.New("no coefficient samples collected")
)

// NewIterationError tags a per-iteration refit failure with the iteration
// index, so a failing Monte Carlo run reports where it broke.
func NewIterationError(iteration int, err error) error {
	return fmt.Errorf("%w: iteration %d: %v", ErrIterationFailed, iteration, err)
}

// NewMissingLevelError reports which level of which predictor was absent.
func NewMissingLevelError(predictor, level string) error {
	return fmt.Errorf("%w: %s level %q", ErrMissingLevel, predictor, level)
}

// NewColumnError reports a missing input column by name.
func NewColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrUnknownColumn, column)
}

// Error checking helpers
func IsModelFitError(err error) bool {
	return errors.Is(err, ErrModelFit)
}

func IsIterationError(err error) bool {
	return errors.Is(err, ErrIterationFailed)
}
