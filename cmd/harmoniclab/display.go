package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/cwbudde/algo-harmonic/controller"
	"github.com/cwbudde/algo-harmonic/dsp/pipeline"
	"github.com/cwbudde/algo-harmonic/dsp/spectrum"
)

// seriesOrder fixes the CSV column order.
var seriesOrder = []string{
	controller.SeriesPure,
	controller.SeriesNoisy,
	controller.SeriesFiltered,
}

// csvDisplay is the display collaborator for the CLI: it remembers the most
// recently published result and writes it out as CSV on demand.
type csvDisplay struct {
	out       io.Writer
	t         []float64
	last      pipeline.Result
	published bool
	visible   map[string]bool
}

func newCSVDisplay(out io.Writer, t []float64) *csvDisplay {
	return &csvDisplay{
		out: out,
		t:   t,
		visible: map[string]bool{
			controller.SeriesPure:     true,
			controller.SeriesNoisy:    true,
			controller.SeriesFiltered: true,
		},
	}
}

// Publish replaces the remembered result with the fresh one.
func (d *csvDisplay) Publish(res pipeline.Result) {
	d.last = res
	d.published = true
}

// SetSeriesVisible records whether a series appears in the output.
func (d *csvDisplay) SetSeriesVisible(series string, visible bool) {
	d.visible[series] = visible
}

func (d *csvDisplay) series(name string) []float64 {
	switch name {
	case controller.SeriesPure:
		return d.last.Pure
	case controller.SeriesNoisy:
		return d.last.Noisy
	case controller.SeriesFiltered:
		return d.last.Filtered
	}
	return nil
}

func (d *csvDisplay) visibleSeries() []string {
	var out []string
	for _, name := range seriesOrder {
		if d.visible[name] {
			out = append(out, name)
		}
	}
	return out
}

// WriteCSV writes t plus every visible series, one row per sample instant.
func (d *csvDisplay) WriteCSV() error {
	if !d.published {
		return errors.New("no result published yet")
	}

	w := bufio.NewWriter(d.out)
	names := d.visibleSeries()

	fmt.Fprint(w, "t")
	for _, name := range names {
		fmt.Fprintf(w, ",%s", name)
	}
	fmt.Fprintln(w)

	for i, ti := range d.t {
		fmt.Fprintf(w, "%.6g", ti)
		for _, name := range names {
			fmt.Fprintf(w, ",%.6g", d.series(name)[i])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

// WriteSpectrumCSV writes the single-sided magnitude spectrum of every
// visible series against the given bin frequencies.
func (d *csvDisplay) WriteSpectrumCSV(an *spectrum.Analyzer, freqs []float64) error {
	if !d.published {
		return errors.New("no result published yet")
	}

	names := d.visibleSeries()
	mags := make([][]float64, len(names))
	for i, name := range names {
		mag, err := an.Magnitude(d.series(name))
		if err != nil {
			return errors.Wrapf(err, "spectrum of %s", name)
		}
		mags[i] = mag
	}

	w := bufio.NewWriter(d.out)
	fmt.Fprint(w, "freq")
	for _, name := range names {
		fmt.Fprintf(w, ",%s", name)
	}
	fmt.Fprintln(w)

	for k, f := range freqs {
		fmt.Fprintf(w, "%.6g", f)
		for i := range names {
			fmt.Fprintf(w, ",%.6g", mags[i][k])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
