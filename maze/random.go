package maze

import (
	"math/rand"
	"time"
)

// Randomizer is the uniform random source used for carving.
// *rand.Rand satisfies it; tests may pass a scripted source.
type Randomizer interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// NewRandomizer returns a deterministic source for the given seed.
func NewRandomizer(seed int64) Randomizer {
	return rand.New(rand.NewSource(seed))
}

// NewSeed returns a fresh seed for callers that do not pin one.
func NewSeed() int64 {
	return time.Now().UnixNano()
}

// Shuffle permutes n elements uniformly with the Fisher–Yates algorithm.
func Shuffle(r Randomizer, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, r.Intn(i+1))
	}
}
