// Package simtime owns the simulated instant: a Julian Date advanced by
// real elapsed time at a signed playback rate, plus calendar conversion.
package simtime

import (
	"fmt"
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/echoflaresat/orrery/fault"
)

const (
	// MinJulianDate and MaxJulianDate bound every instant the clock may hold.
	MinJulianDate = 0.0
	MaxJulianDate = 2e7

	// J2000 is 2000-01-01 12:00.
	J2000 = 2451545.0

	// MaxTimeScale bounds the magnitude of the playback rate.
	MaxTimeScale = 1e7

	secondsPerDay = 86400.0
)

var (
	ErrInvalidJulianDate   = fault.Configuration("julian date outside the supported band")
	ErrInvalidTimeScale    = fault.Configuration("invalid time scale")
	ErrInvalidCalendarDate = fault.Configuration("invalid calendar date")

	ErrJulianDateOutOfRange = fault.Divergence("julian date drifted outside the supported band")
	ErrInvalidElapsed       = fault.Divergence("invalid elapsed time")
)

// InBand reports whether jd lies in [MinJulianDate, MaxJulianDate].
func InBand(jd float64) bool {
	return fault.Finite(jd) && jd >= MinJulianDate && jd <= MaxJulianDate
}

func validScale(s float64) bool {
	return fault.Finite(s) && s >= -MaxTimeScale && s <= MaxTimeScale
}

// Clock is the simulated time controller. The zero value is not usable;
// build one with NewClock. A Clock is not safe for concurrent use.
type Clock struct {
	jd     float64
	scale  float64
	paused bool
}

// NewClock returns a running clock at jd with the given playback rate.
func NewClock(jd, scale float64) (*Clock, error) {
	if !InBand(jd) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJulianDate, jd)
	}
	if !validScale(scale) {
		return nil, fmt.Errorf("%w: %v (|scale| <= %g)", ErrInvalidTimeScale, scale, float64(MaxTimeScale))
	}
	return &Clock{jd: jd, scale: scale}, nil
}

// Advance moves the instant forward by elapsed real seconds times the
// time scale. It does nothing while paused. A result outside the band is
// reported and not committed.
func (c *Clock) Advance(elapsed float64) error {
	if !fault.Finite(elapsed) || elapsed < 0 {
		return fmt.Errorf("%w: %v seconds", ErrInvalidElapsed, elapsed)
	}
	if c.paused {
		return nil
	}
	next := c.jd + elapsed*c.scale/secondsPerDay
	if !InBand(next) {
		return fmt.Errorf("%w: %v + %vs at %vx gives %v", ErrJulianDateOutOfRange, c.jd, elapsed, c.scale, next)
	}
	c.jd = next
	return nil
}

// SetTimeScale sets the signed playback rate; negative runs backward.
func (c *Clock) SetTimeScale(s float64) error {
	if !validScale(s) {
		return fmt.Errorf("%w: %v (|scale| <= %g)", ErrInvalidTimeScale, s, float64(MaxTimeScale))
	}
	c.scale = s
	return nil
}

// TimeScale returns the signed playback rate, paused or not.
func (c *Clock) TimeScale() float64 { return c.scale }

// EffectiveScale is the rate at which simulated time currently flows:
// zero while paused.
func (c *Clock) EffectiveScale() float64 {
	if c.paused {
		return 0
	}
	return c.scale
}

func (c *Clock) Pause()       { c.paused = true }
func (c *Clock) Resume()      { c.paused = false }
func (c *Clock) Toggle()      { c.paused = !c.paused }
func (c *Clock) Paused() bool { return c.paused }

// Reverse makes time run backward at the current speed.
func (c *Clock) Reverse() {
	if c.scale > 0 {
		c.scale = -c.scale
	}
}

// Forward makes time run forward at the current speed.
func (c *Clock) Forward() {
	if c.scale < 0 {
		c.scale = -c.scale
	}
}

// JulianDate returns the current instant.
func (c *Clock) JulianDate() float64 { return c.jd }

// SetJulianDate jumps to jd, e.g. to restore a persisted session.
func (c *Clock) SetJulianDate(jd float64) error {
	if !InBand(jd) {
		return fmt.Errorf("%w: %v", ErrInvalidJulianDate, jd)
	}
	c.jd = jd
	return nil
}

// CalendarDate returns the current instant as a proleptic Gregorian date,
// rounded to the second.
func (c *Clock) CalendarDate() CalendarDate { return FromJulianDate(c.jd) }

// Time returns the current instant as a UTC time.Time.
func (c *Clock) Time() time.Time { return julian.JDToTime(c.jd) }
