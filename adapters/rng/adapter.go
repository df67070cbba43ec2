package rng

import (
	"math/rand"

	"github.com/brendav1/simulation-final/domain/core"
)

// Adapter implements ports.RNGPort with SHA-256 derived sub-stream seeds.
// Each (name, seed, iteration) triple maps to its own generator, so streams
// never share state across iterations or operations.
type Adapter struct{}

// New creates the deterministic RNG adapter.
func New() *Adapter {
	return &Adapter{}
}

// SeededStream creates a generator for a named operation.
func (a *Adapter) SeededStream(name string, seed int64) *rand.Rand {
	return rand.New(rand.NewSource(core.StreamSeed(seed, name, 0)))
}

// IterationStream creates an iteration-local generator derived from the
// base seed and the iteration index.
func (a *Adapter) IterationStream(name string, baseSeed int64, iteration int) *rand.Rand {
	return rand.New(rand.NewSource(core.StreamSeed(baseSeed, name, iteration)))
}
