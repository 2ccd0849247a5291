package movavg

import "fmt"

// Filter implements a causal streaming moving average using a
// circular-buffer delay line and a running sum.
type Filter struct {
	delay []float64
	pos   int
	sum   float64
}

// NewFilter creates a streaming moving-average filter over window samples.
// The delay line starts zeroed, so early outputs ramp up as real samples
// displace the padding.
func NewFilter(window int) (*Filter, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}
	return &Filter{
		delay: make([]float64, window),
	}, nil
}

// ProcessSample pushes one input sample and returns the average of the last
// window samples.
func (f *Filter) ProcessSample(x float64) float64 {
	f.sum += x - f.delay[f.pos]
	f.delay[f.pos] = x
	f.pos++
	if f.pos >= len(f.delay) {
		f.pos = 0
	}
	return f.sum / float64(len(f.delay))
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
func (f *Filter) ProcessBlockTo(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst %d, src %d", ErrLengthMismatch, len(dst), len(src))
	}
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
	return nil
}

// Reset clears the delay line and running sum.
func (f *Filter) Reset() {
	for i := range f.delay {
		f.delay[i] = 0
	}
	f.pos = 0
	f.sum = 0
}

// Window returns the averaging window length.
func (f *Filter) Window() int {
	return len(f.delay)
}
