package ports

import (
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic
// operations. There is no global random state anywhere in the pipeline;
// every stochastic step receives a stream from this port.
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a
	// named operation.
	SeededStream(name string, seed int64) *rand.Rand

	// IterationStream creates a deterministic RNG stream for one Monte Carlo
	// iteration. Streams for distinct iterations are non-overlapping, so
	// results are reproducible regardless of execution order.
	IterationStream(name string, baseSeed int64, iteration int) *rand.Rand
}
