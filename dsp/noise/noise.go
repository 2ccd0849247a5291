// Package noise draws Gaussian noise sequences from a generator owned by the
// source, so reproducibility is a matter of construction rather than ambient
// global state.
package noise

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Errors returned by noise sampling.
var (
	ErrNegativeVariance = errors.New("noise: variance must be >= 0")
	ErrInvalidLength    = errors.New("noise: length must be >= 1")
)

// Source draws normally distributed samples from its own generator state.
// A Source is not safe for concurrent use.
type Source struct {
	rng *rand.Rand
}

// Option configures a Source.
type Option func(*Source)

// WithSeed seeds the source's generator deterministically.
func WithSeed(seed uint64) Option {
	return func(s *Source) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand supplies an externally constructed generator. Useful for sharing
// one generator across sources under test.
func WithRand(rng *rand.Rand) Option {
	return func(s *Source) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// NewSource creates a noise source. Without options the generator is seeded
// from the default global source once at construction.
func NewSource(opts ...Option) *Source {
	s := &Source{
		rng: rand.New(rand.NewSource(rand.Uint64())),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Reseed resets the generator to a deterministic state. Intended for test
// harnesses; production callers seed once at construction and leave the
// generator alone.
func (s *Source) Reseed(seed uint64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// Sample draws length independent values from a Normal distribution with the
// given mean and standard deviation sqrt(variance). Each call advances the
// generator state.
func (s *Source) Sample(length int, mean, variance float64) ([]float64, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	if variance < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNegativeVariance, variance)
	}

	dist := distuv.Normal{
		Mu:    mean,
		Sigma: math.Sqrt(variance),
		Src:   s.rng,
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out, nil
}
