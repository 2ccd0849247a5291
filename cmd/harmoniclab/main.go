// Command harmoniclab drives the signal pipeline from the command line and
// writes the published series as CSV on stdout. It plays the role of the
// interactive shell: every flag that differs from the defaults is delivered
// to the controller as a parameter-change event.
package main

import (
	"os"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-harmonic/controller"
	"github.com/cwbudde/algo-harmonic/dsp/noise"
	"github.com/cwbudde/algo-harmonic/dsp/pipeline"
	"github.com/cwbudde/algo-harmonic/dsp/spectrum"
	"github.com/cwbudde/algo-harmonic/dsp/timebase"
	"github.com/cwbudde/algo-harmonic/params"
)

// AppName is the command name shown in help output.
const AppName = "harmoniclab"

// AppDesc is the one-line description shown in help output.
const AppDesc = "harmonic signal pipeline: sine + gaussian noise + moving average"

var version = "unknown"

type config struct {
	amplitude     float64
	frequency     float64
	phase         float64
	noiseMean     float64
	noiseVariance float64
	window        int

	seed         uint64
	hidePure     bool
	hideNoisy    bool
	hideFiltered bool
	spectrumOut  bool
}

func defaultConfig() config {
	d := params.Defaults()
	return config{
		amplitude:     d.Amplitude,
		frequency:     d.Frequency,
		phase:         d.Phase,
		noiseMean:     d.NoiseMean,
		noiseVariance: d.NoiseVariance,
		window:        d.FilterWindow,
		seed:          1,
	}
}

func doFlags(cfg *config) {
	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.Version = version

	parser.Float64(&cfg.amplitude, "a", "amplitude", "sine amplitude [0.1, 5.0]")
	parser.Float64(&cfg.frequency, "f", "frequency", "sine frequency [0.1, 3.0]")
	parser.Float64(&cfg.phase, "p", "phase", "sine phase in radians")
	parser.Float64(&cfg.noiseMean, "m", "noise-mean", "noise mean [-1.0, 1.0]")
	parser.Float64(&cfg.noiseVariance, "v", "noise-variance", "noise variance [0.0, 1.0]")
	parser.Int(&cfg.window, "w", "window", "moving-average window (integer >= 1)")
	parser.UInt64(&cfg.seed, "s", "seed", "noise generator seed")
	parser.Bool(&cfg.hidePure, "", "hide-pure", "omit the pure series from the output")
	parser.Bool(&cfg.hideNoisy, "", "hide-noisy", "omit the noisy series from the output")
	parser.Bool(&cfg.hideFiltered, "", "hide-filtered", "omit the filtered series from the output")
	parser.Bool(&cfg.spectrumOut, "", "spectrum", "write the magnitude spectrum instead of the time series")

	chkParse(parser.Parse())
}

func chkParse(err error) {
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
}

func main() {
	cfg := defaultConfig()
	doFlags(&cfg)

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("harmoniclab failed", zap.Error(err))
	}
}

func run(cfg config, logger *zap.Logger) error {
	tb := timebase.Default()

	pipe, err := pipeline.New(tb, noise.NewSource(noise.WithSeed(cfg.seed)))
	if err != nil {
		return errors.Wrap(err, "build pipeline")
	}

	disp := newCSVDisplay(os.Stdout, tb)
	ctrl, err := controller.New(params.NewStore(), pipe, disp, controller.WithLogger(logger))
	if err != nil {
		return errors.Wrap(err, "build controller")
	}

	if err := ctrl.Start(); err != nil {
		return errors.Wrap(err, "initial recompute")
	}

	// Deliver one parameter-change event per flag that moved off the default.
	d := params.Defaults()
	changes := []struct {
		name    string
		value   float64
		changed bool
	}{
		{params.NameAmplitude, cfg.amplitude, cfg.amplitude != d.Amplitude},
		{params.NameFrequency, cfg.frequency, cfg.frequency != d.Frequency},
		{params.NamePhase, cfg.phase, cfg.phase != d.Phase},
		{params.NameNoiseMean, cfg.noiseMean, cfg.noiseMean != d.NoiseMean},
		{params.NameNoiseVariance, cfg.noiseVariance, cfg.noiseVariance != d.NoiseVariance},
		{params.NameFilterWindow, float64(cfg.window), cfg.window != d.FilterWindow},
	}
	for _, ch := range changes {
		if !ch.changed {
			continue
		}
		if err := ctrl.HandleParameterChange(ch.name, ch.value); err != nil {
			return errors.Wrapf(err, "set %s", ch.name)
		}
	}

	for series, hide := range map[string]bool{
		controller.SeriesPure:     cfg.hidePure,
		controller.SeriesNoisy:    cfg.hideNoisy,
		controller.SeriesFiltered: cfg.hideFiltered,
	} {
		if !hide {
			continue
		}
		if err := ctrl.HandleVisibilityToggle(series); err != nil {
			return errors.Wrapf(err, "hide %s", series)
		}
	}

	if cfg.spectrumOut {
		return writeSpectrum(tb, disp)
	}
	return disp.WriteCSV()
}

// writeSpectrum emits freq,magnitude CSV for every visible series of the
// last published result.
func writeSpectrum(tb []float64, disp *csvDisplay) error {
	an, err := spectrum.NewAnalyzer(len(tb))
	if err != nil {
		return errors.Wrap(err, "build analyzer")
	}
	freqs, err := an.Frequencies(tb[1] - tb[0])
	if err != nil {
		return errors.Wrap(err, "bin frequencies")
	}
	return disp.WriteSpectrumCSV(an, freqs)
}
