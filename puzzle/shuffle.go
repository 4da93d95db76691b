package puzzle

import (
	"math/rand"
	"time"
)

// Rand is the subset of *rand.Rand the shuffle needs.
type Rand interface {
	Intn(n int) int
}

// Shuffler shuffles piece sequences using a seeded source.
type Shuffler struct {
	rng  *rand.Rand
	seed int64
}

// NewShuffler creates a Shuffler. A zero seed picks one from the clock.
func NewShuffler(seed int64) *Shuffler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Shuffler{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed the Shuffler was built with.
func (s *Shuffler) Seed() int64 {
	return s.seed
}

// Intn implements Rand.
func (s *Shuffler) Intn(n int) int {
	return s.rng.Intn(n)
}

// Shuffle returns a uniformly random permutation of items.
// items itself is left untouched.
func Shuffle[T any](items []T, rng Rand) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)

	// Durstenfeld: j is drawn from [0, i] inclusive.
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
