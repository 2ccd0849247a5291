package controller

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-harmonic/dsp/noise"
	"github.com/cwbudde/algo-harmonic/dsp/pipeline"
	"github.com/cwbudde/algo-harmonic/dsp/timebase"
	"github.com/cwbudde/algo-harmonic/params"
)

type visEvent struct {
	series  string
	visible bool
}

type fakeDisplay struct {
	published []pipeline.Result
	toggles   []visEvent

	// onPublish, when set, is invoked during Publish to exercise
	// reentrancy behavior.
	onPublish func()
}

func (d *fakeDisplay) Publish(res pipeline.Result) {
	d.published = append(d.published, res)
	if d.onPublish != nil {
		d.onPublish()
	}
}

func (d *fakeDisplay) SetSeriesVisible(series string, visible bool) {
	d.toggles = append(d.toggles, visEvent{series, visible})
}

func newTestController(t *testing.T) (*Controller, *fakeDisplay) {
	t.Helper()
	pipe, err := pipeline.New(timebase.Default(), noise.NewSource(noise.WithSeed(1)))
	if err != nil {
		t.Fatalf("pipeline.New() error = %v", err)
	}
	d := &fakeDisplay{}
	c, err := New(params.NewStore(), pipe, d)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, d
}

func TestStartPublishesDefaults(t *testing.T) {
	c, d := newTestController(t)
	if err := c.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if len(d.published) != 1 {
		t.Fatalf("published %d results, want 1", len(d.published))
	}
	res := d.published[0]
	if len(res.Pure) != 1000 || len(res.Noisy) != 1000 || len(res.Filtered) != 1000 {
		t.Fatalf("lengths = %d/%d/%d, want 1000", len(res.Pure), len(res.Noisy), len(res.Filtered))
	}
	if c.Parameters() != params.Defaults() {
		t.Fatalf("Parameters() = %+v, want defaults", c.Parameters())
	}
	if c.State() != StateIdle {
		t.Fatalf("State() = %v, want StateIdle", c.State())
	}
}

func TestParameterChangePublishesFreshResult(t *testing.T) {
	c, d := newTestController(t)
	if err := c.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := c.HandleParameterChange(params.NameAmplitude, 2); err != nil {
		t.Fatalf("HandleParameterChange() error = %v", err)
	}
	if len(d.published) != 2 {
		t.Fatalf("published %d results, want 2", len(d.published))
	}
	if c.Parameters().Amplitude != 2 {
		t.Fatalf("Amplitude = %v, want 2", c.Parameters().Amplitude)
	}
}

func TestParameterChangeRejectedKeepsPriorResult(t *testing.T) {
	c, d := newTestController(t)
	if err := c.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	err := c.HandleParameterChange(params.NameFilterWindow, 0)
	if !errors.Is(err, params.ErrInvalidValue) {
		t.Fatalf("error = %v, want params.ErrInvalidValue", err)
	}
	if len(d.published) != 1 {
		t.Fatalf("published %d results, want 1 (no publish on failure)", len(d.published))
	}
	if c.Parameters().FilterWindow != 10 {
		t.Fatalf("FilterWindow = %d, want untouched default 10", c.Parameters().FilterWindow)
	}
	if c.State() != StateIdle {
		t.Fatalf("State() = %v, want StateIdle after failed event", c.State())
	}
}

func TestUnknownParameterRejected(t *testing.T) {
	c, d := newTestController(t)
	err := c.HandleParameterChange("bogus", 1)
	if !errors.Is(err, params.ErrUnknownParameter) {
		t.Fatalf("error = %v, want params.ErrUnknownParameter", err)
	}
	if len(d.published) != 0 {
		t.Fatalf("published %d results, want 0", len(d.published))
	}
}

func TestResetRestoresDefaultsAndPublishes(t *testing.T) {
	c, d := newTestController(t)
	if err := c.HandleParameterChange(params.NameFrequency, 2.5); err != nil {
		t.Fatalf("HandleParameterChange() error = %v", err)
	}
	if err := c.HandleReset(); err != nil {
		t.Fatalf("HandleReset() error = %v", err)
	}
	if c.Parameters() != params.Defaults() {
		t.Fatalf("Parameters() = %+v, want defaults", c.Parameters())
	}
	if len(d.published) != 2 {
		t.Fatalf("published %d results, want 2", len(d.published))
	}
}

func TestVisibilityToggleForwardsWithoutPublishing(t *testing.T) {
	c, d := newTestController(t)
	if err := c.HandleVisibilityToggle(SeriesNoisy); err != nil {
		t.Fatalf("HandleVisibilityToggle() error = %v", err)
	}
	if len(d.published) != 0 {
		t.Fatalf("published %d results, want 0", len(d.published))
	}
	if len(d.toggles) != 1 || d.toggles[0] != (visEvent{SeriesNoisy, false}) {
		t.Fatalf("toggles = %+v, want one {noisy false}", d.toggles)
	}

	v, err := c.SeriesVisible(SeriesNoisy)
	if err != nil {
		t.Fatalf("SeriesVisible() error = %v", err)
	}
	if v {
		t.Fatal("noisy should be hidden after one toggle")
	}

	if err := c.HandleVisibilityToggle(SeriesNoisy); err != nil {
		t.Fatalf("HandleVisibilityToggle() error = %v", err)
	}
	v, err = c.SeriesVisible(SeriesNoisy)
	if err != nil {
		t.Fatalf("SeriesVisible() error = %v", err)
	}
	if !v {
		t.Fatal("noisy should be visible again after two toggles")
	}
}

func TestVisibilityToggleUnknownSeries(t *testing.T) {
	c, _ := newTestController(t)
	if err := c.HandleVisibilityToggle("shadow"); !errors.Is(err, ErrUnknownSeries) {
		t.Fatalf("error = %v, want ErrUnknownSeries", err)
	}
	if _, err := c.SeriesVisible("shadow"); !errors.Is(err, ErrUnknownSeries) {
		t.Fatalf("error = %v, want ErrUnknownSeries", err)
	}
}

func TestReentrantEventFailsWithErrBusy(t *testing.T) {
	c, d := newTestController(t)
	var reentrant error
	d.onPublish = func() {
		reentrant = c.HandleParameterChange(params.NameAmplitude, 3)
	}
	if err := c.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !errors.Is(reentrant, ErrBusy) {
		t.Fatalf("reentrant error = %v, want ErrBusy", reentrant)
	}
	if len(d.published) != 1 {
		t.Fatalf("published %d results, want 1", len(d.published))
	}
}

func TestNewValidatesArguments(t *testing.T) {
	pipe, err := pipeline.New(timebase.Default(), noise.NewSource(noise.WithSeed(1)))
	if err != nil {
		t.Fatalf("pipeline.New() error = %v", err)
	}
	d := &fakeDisplay{}
	if _, err := New(nil, pipe, d); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := New(params.NewStore(), nil, d); err == nil {
		t.Fatal("expected error for nil pipeline")
	}
	if _, err := New(params.NewStore(), pipe, nil); err == nil {
		t.Fatal("expected error for nil display")
	}
}
