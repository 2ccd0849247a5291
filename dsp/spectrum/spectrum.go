// Package spectrum computes single-sided magnitude spectra of sample
// sequences, giving the display collaborator a frequency-domain view of any
// pipeline output. It is derived data only and plays no part in the
// recompute contract.
package spectrum

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by the analyzer.
var (
	ErrInvalidLength  = errors.New("spectrum: length must be >= 2")
	ErrLengthMismatch = errors.New("spectrum: signal length mismatch")
)

// Analyzer holds an FFT plan sized for one fixed signal length. Reuse one
// analyzer across recomputes of the same time base; construction is the
// expensive part.
type Analyzer struct {
	n       int
	fftSize int
	plan    *algofft.Plan[complex128]

	// Scratch buffers, reused across calls.
	padded []complex128
	re     []float64
	im     []float64
}

// NewAnalyzer creates an analyzer for signals of exactly n samples. The FFT
// size is n rounded up to the next power of two; the input is zero-padded to
// that size.
func NewAnalyzer(n int) (*Analyzer, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	fftSize := nextPowerOf2(n)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	bins := fftSize/2 + 1
	return &Analyzer{
		n:       n,
		fftSize: fftSize,
		plan:    plan,
		padded:  make([]complex128, fftSize),
		re:      make([]float64, bins),
		im:      make([]float64, bins),
	}, nil
}

// Len returns the signal length the analyzer was built for.
func (a *Analyzer) Len() int {
	return a.n
}

// FFTSize returns the padded transform size.
func (a *Analyzer) FFTSize() int {
	return a.fftSize
}

// Bins returns the number of single-sided spectrum bins, fftSize/2 + 1.
func (a *Analyzer) Bins() int {
	return a.fftSize/2 + 1
}

// Magnitude returns |X[k]| for k in [0, fftSize/2]. The signal must have the
// analyzer's configured length.
func (a *Analyzer) Magnitude(signal []float64) ([]float64, error) {
	if len(signal) != a.n {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(signal), a.n)
	}

	for i := range a.padded {
		a.padded[i] = 0
	}
	for i, v := range signal {
		a.padded[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.padded, a.padded); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	bins := a.Bins()
	for i := 0; i < bins; i++ {
		a.re[i] = real(a.padded[i])
		a.im[i] = imag(a.padded[i])
	}

	out := make([]float64, bins)
	vecmath.Magnitude(out, a.re, a.im)
	return out, nil
}

// Frequencies returns the frequency of each single-sided bin given the
// sample spacing dt of the underlying time base: k / (fftSize * dt).
func (a *Analyzer) Frequencies(dt float64) ([]float64, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("spectrum: sample spacing must be > 0: %v", dt)
	}
	out := make([]float64, a.Bins())
	scale := 1.0 / (float64(a.fftSize) * dt)
	for k := range out {
		out[k] = float64(k) * scale
	}
	return out, nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
