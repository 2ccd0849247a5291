package harmonic_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-harmonic/dsp/harmonic"
)

func ExampleSynthesize() {
	// Quarter points of one cycle at 1 Hz.
	t := []float64{0, 0.25, 0.5, 0.75}
	x := harmonic.Synthesize(t, 1, 1, 0)
	for i, v := range x {
		if math.Abs(v) < 1e-12 {
			x[i] = 0
		}
	}
	fmt.Printf("%.0f %.0f %.0f %.0f\n", x[0], x[1], x[2], x[3])

	// Output:
	// 0 1 0 -1
}
