package tests

import (
	"math/rand"
	"time"
)

type Randomizer struct {
	Seed    int64
	Float64 func() float64
	Int63n  func(n int64) int64
	Bool    func() bool
}

func NewRandomizer() Randomizer {
	return NewSeededRandomizer(time.Now().UnixNano())
}

// NewSeededRandomizer makes a failing property run reproducible: log the
// Seed and replay it here.
func NewSeededRandomizer(seed int64) Randomizer {
	random := rand.New(rand.NewSource(seed)) //nolint:gosec // for tests

	return Randomizer{
		Seed:    seed,
		Float64: random.Float64,
		Int63n:  random.Int63n,
		Bool:    func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
	}
}
