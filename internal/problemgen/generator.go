package problemgen

import "math/rand/v2"

// Generator produces addition problems.
type Generator interface {
	// Generate returns a fresh problem. It never fails.
	Generate() Problem
}

// RandomGenerator draws both operands independently and uniformly
// from [0, MaxOperand).
type RandomGenerator struct {
	rng *rand.Rand
}

var _ Generator = (*RandomGenerator)(nil)

// NewRandom creates a generator seeded from the runtime's entropy source.
func NewRandom() *RandomGenerator {
	return &RandomGenerator{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// NewSeeded creates a deterministic generator. Two generators with the
// same seed produce the same sequence of problems.
func NewSeeded(seed uint64) *RandomGenerator {
	return &RandomGenerator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (g *RandomGenerator) Generate() Problem {
	return Problem{
		Num1: g.rng.IntN(MaxOperand),
		Num2: g.rng.IntN(MaxOperand),
	}
}

// Fixed always returns the same problem. Useful in tests and demos.
type Fixed Problem

func (f Fixed) Generate() Problem {
	return Problem(f)
}
