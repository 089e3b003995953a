package system

import (
	"fmt"

	"github.com/echoflaresat/orrery/fault"
	"github.com/echoflaresat/orrery/orbit"
)

// Kind tags what sort of body an entry is.
type Kind string

const (
	Star        Kind = "star"
	Planet      Kind = "planet"
	DwarfPlanet Kind = "dwarf-planet"
	Moon        Kind = "moon"
	Asteroid    Kind = "asteroid"
)

func (k Kind) valid() bool {
	switch k {
	case Star, Planet, DwarfPlanet, Moon, Asteroid:
		return true
	}
	return false
}

// BodyID indexes a body in its System. IDs follow the parent-before-child
// order fixed at assembly.
type BodyID int

// NoBody is the parent of a root body.
const NoBody BodyID = -1

var (
	ErrInvalidBody   = fault.Configuration("invalid body")
	ErrDuplicateBody = fault.Configuration("duplicate body name")
	ErrUnknownParent = fault.Configuration("unknown parent")
	ErrParentCycle   = fault.Configuration("parent cycle")
	ErrInvalidScale  = fault.Configuration("invalid scale")
	ErrInvalidTick   = fault.Divergence("invalid tick input")
	ErrNonFinite     = fault.Divergence("non-finite world position")
)

// BodyError attributes an error to a named body.
type BodyError struct {
	Body string
	Err  error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("body %q: %v", e.Body, e.Err)
}

func (e *BodyError) Unwrap() error { return e.Err }

// BodySpec is one roster entry as handed over by the dataset.
type BodySpec struct {
	Name   string
	Kind   Kind
	Radius float64 // km

	// Orbit is relative to Parent, or to the frame origin for a root body.
	// A nil orbit keeps the body on its parent (or on the origin).
	Orbit  *orbit.Elements
	Parent string

	// RotationPeriod is the sidereal spin period in hours. Negative is
	// retrograde, zero means no autonomous spin.
	RotationPeriod float64
	AxialTilt      float64 // degrees
	TidallyLocked  bool
}

// Body is the static description of an assembled body.
type Body struct {
	ID             BodyID
	Name           string
	Kind           Kind
	Radius         float64
	Parent         BodyID
	RotationPeriod float64
	AxialTilt      float64
	TidallyLocked  bool

	orbit    orbit.Elements
	hasOrbit bool
}

// Orbit returns the body's elements, if it has any.
func (b Body) Orbit() (orbit.Elements, bool) { return b.orbit, b.hasOrbit }

// IsRoot reports whether the body has no parent.
func (b Body) IsRoot() bool { return b.Parent == NoBody }

func validateSpec(s BodySpec) error {
	switch {
	case s.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidBody)
	case !s.Kind.valid():
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidBody, s.Kind)
	case !fault.Finite(s.Radius) || s.Radius <= 0:
		return fmt.Errorf("%w: radius %v must be finite and positive", ErrInvalidBody, s.Radius)
	case !fault.Finite(s.RotationPeriod):
		return fmt.Errorf("%w: rotation period %v not finite", ErrInvalidBody, s.RotationPeriod)
	case !fault.Finite(s.AxialTilt):
		return fmt.Errorf("%w: axial tilt %v not finite", ErrInvalidBody, s.AxialTilt)
	case s.Orbit != nil && !s.Orbit.Valid():
		return fmt.Errorf("%w: %w", ErrInvalidBody, orbit.ErrInvalidElements)
	case s.TidallyLocked && s.Parent == "":
		return fmt.Errorf("%w: tidally locked without a parent", ErrInvalidBody)
	case s.Parent == s.Name:
		return fmt.Errorf("%w: body is its own parent", ErrParentCycle)
	}
	return nil
}
