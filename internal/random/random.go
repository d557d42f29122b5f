// Package random derives reproducible pseudo-random values from a seed
// string, normally the scenario name. Two sources built from the same
// seed produce identical value sequences, which is what makes scenario
// reruns byte-for-byte comparable.
package random

import (
	"crypto/sha256"
	"math/rand/v2"

	"github.com/google/uuid"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
const hexdigits = "0123456789abcdef"

// Source is a deterministic random-value generator. It is owned by a
// single scenario's execution scope and must not be shared across
// scenarios.
type Source struct {
	seed   string
	chacha *rand.ChaCha8
	rng    *rand.Rand
}

// NewSource builds a source seeded from the given string. The seed is
// hashed, so any string works and similar strings diverge immediately.
func NewSource(seed string) *Source {
	sum := sha256.Sum256([]byte(seed))
	chacha := rand.NewChaCha8(sum)
	return &Source{
		seed:   seed,
		chacha: chacha,
		rng:    rand.New(chacha),
	}
}

// Seed returns the string this source was seeded with.
func (s *Source) Seed() string {
	return s.seed
}

// NextUUID returns a deterministic version-4 UUID.
func (s *Source) NextUUID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(s.chacha)
	if err != nil {
		// ChaCha8.Read never fails; this would indicate a broken stream.
		panic(err)
	}
	return id
}

// NextString returns a random alphanumeric string of length n.
func (s *Source) NextString(n int) string {
	return s.pick(alphanumeric, n)
}

// NextHex returns a random lowercase hex string of length n.
func (s *Source) NextHex(n int) string {
	return s.pick(hexdigits, n)
}

func (s *Source) pick(charset string, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = charset[s.rng.IntN(len(charset))]
	}
	return string(out)
}

// NextInt returns a random integer in [min, max). It panics if max <= min,
// matching the rand.IntN contract.
func (s *Source) NextInt(min, max int64) int64 {
	return min + s.rng.Int64N(max-min)
}

// NextFloat returns a random float in [0, 1).
func (s *Source) NextFloat() float64 {
	return s.rng.Float64()
}

// NextBool returns a random boolean.
func (s *Source) NextBool() bool {
	return s.rng.Uint64()&1 == 1
}

// Choose returns a random element of items, or false when items is empty.
func Choose[T any](s *Source, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[s.rng.IntN(len(items))], true
}

// Shuffle permutes items in place.
func Shuffle[T any](s *Source, items []T) {
	s.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
