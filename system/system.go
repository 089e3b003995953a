// Package system assembles bodies into a parent/child hierarchy and composes
// their world positions top-down every tick.
//
// Bodies live in a flat slice ordered so that every parent precedes its
// children; a parent is referenced by index, never owned.
package system

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/echoflaresat/orrery/fault"
	"github.com/echoflaresat/orrery/vectors"
)

// Scale holds the visual distance factors and the tidal-lock response.
// Zero fields take the DefaultScale value.
type Scale struct {
	// Distance multiplies the offset of root bodies.
	Distance float64
	// ChildDistance multiplies a child's offset from its parent.
	ChildDistance float64
	// LockSmoothing is the time constant, in real seconds, with which a
	// tidally locked body turns to face its parent.
	LockSmoothing float64
}

func DefaultScale() Scale {
	return Scale{Distance: 1, ChildDistance: 1, LockSmoothing: 0.1}
}

func (s Scale) withDefaults() Scale {
	d := DefaultScale()
	if s.Distance == 0 {
		s.Distance = d.Distance
	}
	if s.ChildDistance == 0 {
		s.ChildDistance = d.ChildDistance
	}
	if s.LockSmoothing == 0 {
		s.LockSmoothing = d.LockSmoothing
	}
	return s
}

func (s Scale) validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"distance", s.Distance},
		{"child distance", s.ChildDistance},
		{"lock smoothing", s.LockSmoothing},
	} {
		if !fault.Finite(f.v) || f.v <= 0 {
			return fmt.Errorf("%w: %s factor %v must be finite and positive", ErrInvalidScale, f.name, f.v)
		}
	}
	return nil
}

// state is the per-body transient data recomputed or advanced each tick.
type state struct {
	local  vectors.Vec3
	world  vectors.Vec3
	spin   float64 // radians
	facing vectors.Vec3
	faced  bool
}

// System is an assembled body hierarchy.
//
// Its static data is immutable after New, so PositionsAt may run
// concurrently. Update mutates transient state and must not overlap with
// itself or with the state accessors.
type System struct {
	bodies   []Body
	children [][]BodyID
	byName   map[string]BodyID
	scale    Scale

	state []state
	world []vectors.Vec3 // scratch for Update
	local []vectors.Vec3
	jd    float64
}

// New validates specs, orders them parents-first and returns the system.
// Positions are zero until the first Update.
func New(specs []BodySpec, scale Scale) (*System, error) {
	scale = scale.withDefaults()
	if err := scale.validate(); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(specs))
	var errs []error
	for i, s := range specs {
		if err := validateSpec(s); err != nil {
			errs = append(errs, &BodyError{Body: s.Name, Err: err})
			continue
		}
		if _, dup := index[s.Name]; dup {
			errs = append(errs, &BodyError{Body: s.Name, Err: ErrDuplicateBody})
			continue
		}
		index[s.Name] = i
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	for _, s := range specs {
		if s.Parent == "" {
			continue
		}
		if _, ok := index[s.Parent]; !ok {
			errs = append(errs, &BodyError{Body: s.Name, Err: fmt.Errorf("%w %q", ErrUnknownParent, s.Parent)})
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	order, err := parentsFirst(specs, index)
	if err != nil {
		return nil, err
	}

	sys := &System{
		bodies:   make([]Body, len(order)),
		children: make([][]BodyID, len(order)),
		byName:   make(map[string]BodyID, len(order)),
		scale:    scale,
		state:    make([]state, len(order)),
		world:    make([]vectors.Vec3, len(order)),
		local:    make([]vectors.Vec3, len(order)),
	}

	roots := 0
	for id, src := range order {
		s := specs[src]
		b := Body{
			ID:             BodyID(id),
			Name:           s.Name,
			Kind:           s.Kind,
			Radius:         s.Radius,
			Parent:         NoBody,
			RotationPeriod: s.RotationPeriod,
			AxialTilt:      s.AxialTilt,
			TidallyLocked:  s.TidallyLocked,
		}
		if s.Orbit != nil {
			b.orbit, b.hasOrbit = *s.Orbit, true
		}
		if s.Parent != "" {
			// parentsFirst guarantees the parent already has an ID.
			b.Parent = sys.byName[s.Parent]
			sys.children[b.Parent] = append(sys.children[b.Parent], b.ID)
		} else {
			roots++
		}
		sys.bodies[id] = b
		sys.byName[b.Name] = b.ID
	}

	slog.Debug("assembled body hierarchy", "bodies", len(sys.bodies), "roots", roots)
	return sys, nil
}

// parentsFirst returns indices into specs in depth-first pre-order from each
// root, visiting roots and siblings in input order. Bodies that are never
// reached sit on a parent cycle.
func parentsFirst(specs []BodySpec, index map[string]int) ([]int, error) {
	kids := make([][]int, len(specs))
	var roots []int
	for i, s := range specs {
		if s.Parent == "" {
			roots = append(roots, i)
			continue
		}
		p := index[s.Parent]
		kids[p] = append(kids[p], i)
	}

	order := make([]int, 0, len(specs))
	seen := make([]bool, len(specs))
	stack := make([]int, 0, len(specs))
	for _, r := range roots {
		stack = append(stack, r)
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			seen[n] = true
			order = append(order, n)
			for k := len(kids[n]) - 1; k >= 0; k-- {
				stack = append(stack, kids[n][k])
			}
		}
	}

	if len(order) == len(specs) {
		return order, nil
	}
	var errs []error
	for i, s := range specs {
		if !seen[i] {
			errs = append(errs, &BodyError{Body: s.Name, Err: ErrParentCycle})
		}
	}
	return nil, errors.Join(errs...)
}

// Len returns the number of bodies.
func (s *System) Len() int { return len(s.bodies) }

// Scale returns the effective scale factors.
func (s *System) Scale() Scale { return s.scale }

// Lookup returns the ID of the named body.
func (s *System) Lookup(name string) (BodyID, bool) {
	id, ok := s.byName[name]
	return id, ok
}

// Body returns the static description of id.
func (s *System) Body(id BodyID) Body { return s.bodies[id] }

// Bodies returns every body in parent-before-child order.
func (s *System) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// Children returns the direct children of id in roster order.
func (s *System) Children(id BodyID) []BodyID {
	out := make([]BodyID, len(s.children[id]))
	copy(out, s.children[id])
	return out
}

// JulianDate returns the instant of the last successful Update.
func (s *System) JulianDate() float64 { return s.jd }

// WorldPosition returns the composed, scaled position of id from the last Update.
func (s *System) WorldPosition(id BodyID) vectors.Vec3 { return s.state[id].world }

// LocalOffset returns the unscaled orbital offset of id from its parent.
func (s *System) LocalOffset(id BodyID) vectors.Vec3 { return s.state[id].local }

// Spin returns the accumulated rotation angle of id in radians, in (-2π, 2π).
func (s *System) Spin(id BodyID) float64 { return s.state[id].spin }

// Orientation returns the unit vector a tidally locked body faces.
// ok is false for bodies that are not locked or have not faced their parent yet.
func (s *System) Orientation(id BodyID) (dir vectors.Vec3, ok bool) {
	st := s.state[id]
	return st.facing, st.faced
}

// Distance returns the world-space distance between two bodies.
func (s *System) Distance(a, b BodyID) float64 {
	return vectors.Distance(s.state[a].world, s.state[b].world)
}
