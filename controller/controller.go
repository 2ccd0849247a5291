// Package controller ties parameter-change events from an external shell to
// pipeline recomputation and republication of the derived signals.
//
// The controller is single-threaded by contract: the shell delivers one
// event at a time and each handler runs to completion before the next event
// is accepted. Reentrant recompute events fail with [ErrBusy] rather than
// overlapping.
package controller

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-harmonic/dsp/pipeline"
	"github.com/cwbudde/algo-harmonic/params"
)

// Errors returned by event handlers.
var (
	ErrBusy          = errors.New("controller: recompute in progress")
	ErrUnknownSeries = errors.New("controller: unknown series")
)

// Series names accepted by visibility toggles.
const (
	SeriesPure     = "pure"
	SeriesNoisy    = "noisy"
	SeriesFiltered = "filtered"
)

// State of the controller between and during events.
type State int

const (
	// StateIdle means no event is being handled.
	StateIdle State = iota

	// StateRecomputing means a parameter-change or reset event is mid-flight.
	StateRecomputing
)

// Display is the external collaborator that renders published results.
// Implementations receive each fresh result wholesale and visibility
// changes without sample data attached.
type Display interface {
	Publish(pipeline.Result)
	SetSeriesVisible(series string, visible bool)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// Controller routes events into the parameter store and the pipeline, and
// publishes every fresh result to the display.
type Controller struct {
	store   *params.Store
	pipe    *pipeline.Pipeline
	display Display
	log     *zap.Logger

	state   State
	visible map[string]bool
}

// New creates a controller over the given store, pipeline, and display.
// All three series start visible.
func New(store *params.Store, pipe *pipeline.Pipeline, display Display, opts ...Option) (*Controller, error) {
	if store == nil {
		return nil, errors.New("controller: nil parameter store")
	}
	if pipe == nil {
		return nil, errors.New("controller: nil pipeline")
	}
	if display == nil {
		return nil, errors.New("controller: nil display")
	}

	c := &Controller{
		store:   store,
		pipe:    pipe,
		display: display,
		log:     zap.NewNop(),
		visible: map[string]bool{
			SeriesPure:     true,
			SeriesNoisy:    true,
			SeriesFiltered: true,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// State returns the current controller state.
func (c *Controller) State() State {
	return c.state
}

// Parameters returns the current parameter values.
func (c *Controller) Parameters() params.Parameters {
	return c.store.Get()
}

// SeriesVisible reports the tracked visibility of a series.
func (c *Controller) SeriesVisible(series string) (bool, error) {
	v, ok := c.visible[series]
	if !ok {
		return false, errors.Wrap(ErrUnknownSeries, series)
	}
	return v, nil
}

// Start performs the initial recompute and publish with the stored
// parameters. Call once after construction, before delivering events.
func (c *Controller) Start() error {
	return c.recompute(c.store.Get(), "start")
}

// HandleParameterChange applies one named parameter update, recomputes, and
// publishes the fresh result. On failure the previously published result
// stands and the error is returned; the next valid event self-corrects.
func (c *Controller) HandleParameterChange(name string, value float64) error {
	if c.state != StateIdle {
		return ErrBusy
	}

	p, err := c.store.Set(name, value)
	if err != nil {
		c.log.Warn("parameter change rejected",
			zap.String("param", name),
			zap.Float64("value", value),
			zap.Error(err))
		return errors.Wrap(err, "apply parameter change")
	}

	c.log.Debug("parameter changed",
		zap.String("param", name),
		zap.Float64("value", value))
	return c.recompute(p, name)
}

// HandleReset restores the default parameters, recomputes, and publishes.
func (c *Controller) HandleReset() error {
	if c.state != StateIdle {
		return ErrBusy
	}

	p := c.store.Reset()
	c.log.Debug("parameters reset")
	return c.recompute(p, "reset")
}

// HandleVisibilityToggle flips the tracked visibility of a series and
// forwards the new flag to the display. It never touches the parameter
// store or the pipeline.
func (c *Controller) HandleVisibilityToggle(series string) error {
	v, ok := c.visible[series]
	if !ok {
		return errors.Wrap(ErrUnknownSeries, series)
	}
	c.visible[series] = !v
	c.display.SetSeriesVisible(series, !v)
	c.log.Debug("series visibility toggled",
		zap.String("series", series),
		zap.Bool("visible", !v))
	return nil
}

func (c *Controller) recompute(p params.Parameters, cause string) error {
	c.state = StateRecomputing
	defer func() { c.state = StateIdle }()

	res, err := c.pipe.Recompute(p)
	if err != nil {
		c.log.Error("recompute failed",
			zap.String("cause", cause),
			zap.Error(err))
		return errors.Wrap(err, "recompute")
	}

	c.display.Publish(res)
	c.log.Debug("result published",
		zap.String("cause", cause),
		zap.Int("samples", len(res.Pure)))
	return nil
}
