// Package movavg provides uniform moving-average smoothing.
//
// [Smooth] is the one-shot form used as the recovery step of a signal
// pipeline: it convolves the input with a window-tap kernel weighted
// 1/window, using same-length centered alignment with implicit zero padding
// at the boundaries. Edge samples are therefore attenuated, not
// renormalized.
//
// [Filter] is the causal streaming runtime for sample-at-a-time use. It
// keeps a circular delay line and a running sum, so per-sample cost is O(1)
// regardless of window size.
package movavg
