// Package orrery ties the simulated clock to the body hierarchy: one
// Advance call is one tick, after which every world position reflects the
// new instant.
package orrery

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/echoflaresat/orrery/fault"
	"github.com/echoflaresat/orrery/simtime"
	"github.com/echoflaresat/orrery/system"
	"github.com/echoflaresat/orrery/vectors"
)

var ErrUnknownBody = fault.Configuration("unknown body")

// Config is the startup configuration.
type Config struct {
	// StartJD is the initial instant. Zero selects J2000.
	StartJD float64
	// TimeScale is simulated seconds per real second. Zero selects 1;
	// use Paused to start stopped.
	TimeScale float64
	Paused    bool
	Scale     system.Scale
}

// Orrery is a running simulation. It is not safe for concurrent use.
type Orrery struct {
	clock *simtime.Clock
	sys   *system.System
}

// New assembles the bodies, starts the clock and computes the first frame,
// so positions are valid as soon as New returns.
func New(specs []system.BodySpec, cfg Config) (*Orrery, error) {
	if cfg.StartJD == 0 {
		cfg.StartJD = simtime.J2000
	}
	if cfg.TimeScale == 0 {
		cfg.TimeScale = 1
	}

	clock, err := simtime.NewClock(cfg.StartJD, cfg.TimeScale)
	if err != nil {
		return nil, err
	}
	if cfg.Paused {
		clock.Pause()
	}

	sys, err := system.New(specs, cfg.Scale)
	if err != nil {
		return nil, err
	}
	if err := sys.Update(clock.JulianDate(), 0, 0); err != nil {
		return nil, fmt.Errorf("initial frame at JD %v: %w", clock.JulianDate(), err)
	}

	slog.Debug("orrery started", "jd", clock.JulianDate(), "date", clock.CalendarDate(), "scale", clock.TimeScale(), "bodies", sys.Len())
	return &Orrery{clock: clock, sys: sys}, nil
}

// Advance runs one tick of elapsed real seconds: the clock moves first,
// then every body is recomputed at the new instant. If either step fails
// the instant and positions of the previous tick are kept.
func (o *Orrery) Advance(elapsed float64) error {
	prev := o.clock.JulianDate()
	if err := o.clock.Advance(elapsed); err != nil {
		return err
	}
	if err := o.sys.Update(o.clock.JulianDate(), elapsed, o.clock.EffectiveScale()); err != nil {
		o.restore(prev)
		return err
	}
	return nil
}

// SetJulianDate jumps to jd and recomputes positions there.
func (o *Orrery) SetJulianDate(jd float64) error {
	prev := o.clock.JulianDate()
	if err := o.clock.SetJulianDate(jd); err != nil {
		return err
	}
	if err := o.sys.Update(jd, 0, 0); err != nil {
		o.restore(prev)
		return err
	}
	return nil
}

func (o *Orrery) restore(jd float64) {
	if err := o.clock.SetJulianDate(jd); err != nil {
		// jd was in band when it was committed.
		panic(err)
	}
}

// Lookup returns the ID of the named body.
func (o *Orrery) Lookup(name string) (system.BodyID, bool) { return o.sys.Lookup(name) }

// WorldPosition returns the current world position of id.
func (o *Orrery) WorldPosition(id system.BodyID) vectors.Vec3 { return o.sys.WorldPosition(id) }

// PositionOf returns the current world position of the named body.
func (o *Orrery) PositionOf(name string) (vectors.Vec3, error) {
	id, ok := o.sys.Lookup(name)
	if !ok {
		return vectors.Vec3{}, fmt.Errorf("%w %q", ErrUnknownBody, name)
	}
	return o.sys.WorldPosition(id), nil
}

func (o *Orrery) JulianDate() float64                { return o.clock.JulianDate() }
func (o *Orrery) CalendarDate() simtime.CalendarDate { return o.clock.CalendarDate() }
func (o *Orrery) Time() time.Time                    { return o.clock.Time() }
func (o *Orrery) SetTimeScale(s float64) error       { return o.clock.SetTimeScale(s) }
func (o *Orrery) TimeScale() float64                 { return o.clock.TimeScale() }
func (o *Orrery) Pause()                             { o.clock.Pause() }
func (o *Orrery) Resume()                            { o.clock.Resume() }
func (o *Orrery) Toggle()                            { o.clock.Toggle() }
func (o *Orrery) Paused() bool                       { return o.clock.Paused() }
func (o *Orrery) Reverse()                           { o.clock.Reverse() }
func (o *Orrery) Forward()                           { o.clock.Forward() }

// System exposes the body hierarchy for read-only queries.
func (o *Orrery) System() *system.System { return o.sys }
