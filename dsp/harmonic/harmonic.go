// Package harmonic synthesizes pure sinusoids over an explicit time base.
package harmonic

import "math"

// Synthesize returns amplitude*sin(2*pi*frequency*t[i] + phase) for each
// instant in t. Amplitude and frequency may legally be zero; extreme values
// only change the output magnitude.
func Synthesize(t []float64, amplitude, frequency, phase float64) []float64 {
	out := make([]float64, len(t))
	SynthesizeTo(out, t, amplitude, frequency, phase)
	return out
}

// SynthesizeTo writes the sinusoid into a pre-allocated destination.
// dst and t must have the same length.
func SynthesizeTo(dst, t []float64, amplitude, frequency, phase float64) {
	if len(t) == 0 {
		return
	}
	_ = dst[len(t)-1] // bounds check hint
	w := 2 * math.Pi * frequency
	for i, ti := range t {
		dst[i] = amplitude * math.Sin(w*ti+phase)
	}
}
