package dice

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

// Source yields uniform integers. A game owns two: the world source derived
// from the seed and the runtime source used for play. Neither is safe for
// concurrent use.
type Source interface {
	// Intn returns a value in [0, n). It panics when n <= 0.
	Intn(n int) int
}

// cryptoSource implements Source using crypto/rand.
//
// Invariant: All values produced are uniformly distributed in [0, n) for any n > 0.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
// Panics with "dice: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// SeededSource is a reproducible Source. Two SeededSources built from the same
// seed produce identical sequences.
type SeededSource struct {
	seed int64
	rng  *mrand.Rand
}

// NewSeededSource returns a SeededSource for seed.
func NewSeededSource(seed int64) *SeededSource {
	return &SeededSource{seed: seed, rng: mrand.New(mrand.NewSource(seed))}
}

// Seed returns the seed the source was built from.
func (s *SeededSource) Seed() int64 { return s.seed }

// Intn returns a value in [0, n).
//
// Precondition: n > 0.
func (s *SeededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	return s.rng.Intn(n)
}

// FixedSource replays a fixed list of values, cycling when exhausted.
// Each value is reduced modulo n so it always satisfies the Source contract.
// It exists so callers can script exact rolls.
type FixedSource struct {
	values []int
	pos    int
}

// NewFixedSource returns a FixedSource replaying values.
//
// Precondition: len(values) > 0.
func NewFixedSource(values ...int) *FixedSource {
	if len(values) == 0 {
		panic("dice: NewFixedSource requires at least one value")
	}
	return &FixedSource{values: values}
}

// Intn returns the next scripted value modulo n.
func (f *FixedSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	v := f.values[f.pos%len(f.values)]
	f.pos++
	if v < 0 {
		v = -v
	}
	return v % n
}
