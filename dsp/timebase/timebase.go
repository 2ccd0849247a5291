// Package timebase generates the fixed sequence of sample instants shared by
// all signals in a pipeline.
package timebase

import "fmt"

// Default span of the standard time base.
const (
	DefaultStart = 0.0
	DefaultStop  = 10.0
	DefaultCount = 1000
)

// Generate returns count evenly spaced instants spanning [start, stop],
// both endpoints included. The result is strictly increasing.
func Generate(start, stop float64, count int) ([]float64, error) {
	if count < 2 {
		return nil, fmt.Errorf("timebase: count must be >= 2: %d", count)
	}
	if stop <= start {
		return nil, fmt.Errorf("timebase: stop must be > start: [%v, %v]", start, stop)
	}

	out := make([]float64, count)
	step := (stop - start) / float64(count-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	// Pin the endpoint so accumulated rounding never shortens the span.
	out[count-1] = stop
	return out, nil
}

// Default returns the standard process-lifetime time base: 1000 instants
// over [0, 10].
func Default() []float64 {
	t, err := Generate(DefaultStart, DefaultStop, DefaultCount)
	if err != nil {
		panic(err) // unreachable with the fixed constants above
	}
	return t
}
