package ports

import (
	"context"

	"github.com/brendav1/simulation-final/domain/cohort"
)

// DatasetReader loads the raw wide-format student table from an external
// source (xlsx or csv file).
type DatasetReader interface {
	Read(ctx context.Context) (*cohort.RawTable, error)
}
