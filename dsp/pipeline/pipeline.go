// Package pipeline derives the {pure, noisy, filtered} signal triple from a
// parameter set over a fixed time base.
package pipeline

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-harmonic/dsp/harmonic"
	"github.com/cwbudde/algo-harmonic/dsp/movavg"
	"github.com/cwbudde/algo-harmonic/dsp/noise"
	"github.com/cwbudde/algo-harmonic/params"
)

// Errors returned by pipeline construction.
var (
	ErrEmptyTimeBase = errors.New("pipeline: empty time base")
	ErrNilSource     = errors.New("pipeline: nil noise source")
)

// Result is one complete derivation of the three signals. All slices have
// the length of the time base and are freshly allocated each recompute;
// callers may hold on to them across later recomputes.
type Result struct {
	Pure     []float64
	Noisy    []float64
	Filtered []float64
}

// Pipeline binds an immutable time base to a noise source.
type Pipeline struct {
	t   []float64
	src *noise.Source
}

// New creates a pipeline over the given time base. The slice is not copied;
// it must not be mutated for the lifetime of the pipeline.
func New(t []float64, src *noise.Source) (*Pipeline, error) {
	if len(t) == 0 {
		return nil, ErrEmptyTimeBase
	}
	if src == nil {
		return nil, ErrNilSource
	}
	return &Pipeline{t: t, src: src}, nil
}

// Time returns the pipeline's time base. Callers must treat it as read-only.
func (p *Pipeline) Time() []float64 {
	return p.t
}

// Len returns the sample count of every derived signal.
func (p *Pipeline) Len() int {
	return len(p.t)
}

// Recompute derives a fresh result from the given parameters:
// pure sinusoid, pure plus one new noise draw, and the moving average of the
// noisy signal. Errors from the noise draw or the filter are propagated;
// the orchestration itself adds none. Every call consumes fresh noise, so
// identical parameters still yield a new noisy/filtered pair.
func (p *Pipeline) Recompute(pr params.Parameters) (Result, error) {
	pure := harmonic.Synthesize(p.t, pr.Amplitude, pr.Frequency, pr.Phase)

	nz, err := p.src.Sample(len(p.t), pr.NoiseMean, pr.NoiseVariance)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: noise: %w", err)
	}

	noisy := make([]float64, len(pure))
	copy(noisy, pure)
	floats.Add(noisy, nz)

	filtered, err := movavg.Smooth(noisy, pr.FilterWindow)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: filter: %w", err)
	}

	return Result{Pure: pure, Noisy: noisy, Filtered: filtered}, nil
}
