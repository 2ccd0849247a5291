// Package params holds the tunable parameters of the signal pipeline and the
// store that owns them.
//
// Validation policy: continuous parameters are clamped to the ranges exposed
// by the control surface; phase is unconstrained. The filter window must be an integral value >= 1
// and is rejected, not clamped, when it is not. Unknown parameter names and
// NaN values are rejected.
package params

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by the store.
var (
	ErrUnknownParameter = errors.New("params: unknown parameter")
	ErrInvalidValue     = errors.New("params: invalid value")
)

// Parameter names accepted by [Store.Set].
const (
	NameAmplitude     = "amplitude"
	NameFrequency     = "frequency"
	NamePhase         = "phase"
	NameNoiseMean     = "noise_mean"
	NameNoiseVariance = "noise_variance"
	NameFilterWindow  = "filter_window"
)

// Clamp ranges for the continuous parameters.
const (
	MinAmplitude     = 0.1
	MaxAmplitude     = 5.0
	MinFrequency     = 0.1
	MaxFrequency     = 3.0
	MinNoiseMean     = -1.0
	MaxNoiseMean     = 1.0
	MinNoiseVariance = 0.0
	MaxNoiseVariance = 1.0
)

// Parameters is the full parameter set of one recompute.
type Parameters struct {
	Amplitude     float64
	Frequency     float64
	Phase         float64
	NoiseMean     float64
	NoiseVariance float64
	FilterWindow  int
}

// Defaults returns the startup parameter values.
func Defaults() Parameters {
	return Parameters{
		Amplitude:     1.0,
		Frequency:     1.0,
		Phase:         0.0,
		NoiseMean:     0.0,
		NoiseVariance: 0.2,
		FilterWindow:  10,
	}
}

// Store owns the current parameter values. It is the single writer's
// responsibility (the event loop) to serialize access; the store itself
// takes no locks.
type Store struct {
	cur Parameters
}

// NewStore creates a store initialized to the defaults.
func NewStore() *Store {
	return &Store{cur: Defaults()}
}

// Get returns the current parameters by value.
func (s *Store) Get() Parameters {
	return s.cur
}

// Set updates one named parameter and returns the resulting parameter set.
// Continuous values are clamped to their declared range; the filter window
// is rejected unless it is an integral value >= 1. On error the stored
// parameters are unchanged.
func (s *Store) Set(name string, value float64) (Parameters, error) {
	if math.IsNaN(value) {
		return s.cur, fmt.Errorf("%w: %s is NaN", ErrInvalidValue, name)
	}

	switch name {
	case NameAmplitude:
		s.cur.Amplitude = clamp(value, MinAmplitude, MaxAmplitude)
	case NameFrequency:
		s.cur.Frequency = clamp(value, MinFrequency, MaxFrequency)
	case NamePhase:
		s.cur.Phase = value
	case NameNoiseMean:
		s.cur.NoiseMean = clamp(value, MinNoiseMean, MaxNoiseMean)
	case NameNoiseVariance:
		s.cur.NoiseVariance = clamp(value, MinNoiseVariance, MaxNoiseVariance)
	case NameFilterWindow:
		w := int(value)
		if float64(w) != value || w < 1 {
			return s.cur, fmt.Errorf("%w: filter_window must be an integer >= 1: %v", ErrInvalidValue, value)
		}
		s.cur.FilterWindow = w
	default:
		return s.cur, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return s.cur, nil
}

// Reset restores all parameters to the startup defaults and returns them.
func (s *Store) Reset() Parameters {
	s.cur = Defaults()
	return s.cur
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
