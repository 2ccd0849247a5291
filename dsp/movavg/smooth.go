package movavg

import (
	"errors"
	"fmt"
)

// Errors returned by smoothing functions.
var (
	ErrInvalidWindow  = errors.New("movavg: window must be >= 1")
	ErrEmptyInput     = errors.New("movavg: empty input")
	ErrLengthMismatch = errors.New("movavg: buffer length mismatch")
)

// Smooth convolves signal with a uniform kernel of window taps, each
// weighted 1/window, and returns a new slice of the same length. The kernel
// is centered at each position; positions where it extends past either end
// are treated as zero-padded, so the first and last samples are averaged
// against fewer neighbors but still divided by window.
//
// window == 1 returns a copy of the input.
func Smooth(signal []float64, window int) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}
	out := make([]float64, len(signal))
	if err := SmoothTo(out, signal, window); err != nil {
		return nil, err
	}
	return out, nil
}

// SmoothTo smooths signal into a pre-allocated destination of the same
// length. Uses a running sum, so cost is O(len(signal)) for any window.
func SmoothTo(dst, signal []float64, window int) error {
	if window < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}
	if len(signal) == 0 {
		return ErrEmptyInput
	}
	if len(dst) != len(signal) {
		return fmt.Errorf("%w: dst %d, signal %d", ErrLengthMismatch, len(dst), len(signal))
	}

	n := len(signal)
	// Center index of the kernel; output i averages
	// signal[i-(window-1-half) .. i+half] clipped to range.
	half := (window - 1) / 2
	inv := 1.0 / float64(window)

	sum := 0.0
	for j := 0; j <= half && j < n; j++ {
		sum += signal[j]
	}
	for i := 0; i < n; i++ {
		dst[i] = sum * inv
		if add := i + half + 1; add < n {
			sum += signal[add]
		}
		if sub := i - (window - 1 - half); sub >= 0 {
			sum -= signal[sub]
		}
	}
	return nil
}

// Kernel returns the uniform smoothing kernel: window taps of 1/window.
func Kernel(window int) ([]float64, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}
	k := make([]float64, window)
	w := 1.0 / float64(window)
	for i := range k {
		k[i] = w
	}
	return k, nil
}
