package system

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/echoflaresat/orrery/fault"
	"github.com/echoflaresat/orrery/vectors"
)

const (
	twoPi = 2 * math.Pi

	// directionEpsilon is the shortest parent direction a locked body turns toward.
	directionEpsilon = 1e-12
)

// PositionsAt returns the world position of every body at jd, indexed by
// BodyID. It reads only static data and may be called concurrently.
func (s *System) PositionsAt(jd float64) ([]vectors.Vec3, error) {
	world := make([]vectors.Vec3, len(s.bodies))
	if err := s.compose(jd, world, nil); err != nil {
		return nil, err
	}
	return world, nil
}

// compose fills world (and local, when non-nil) top-down.
func (s *System) compose(jd float64, world, local []vectors.Vec3) error {
	if err := fault.Check(ErrInvalidTick, "julian date", jd); err != nil {
		return err
	}

	for id := range s.bodies {
		b := &s.bodies[id]

		var off vectors.Vec3
		if b.hasOrbit {
			p, err := b.orbit.Position(jd)
			if err != nil {
				return &BodyError{Body: b.Name, Err: err}
			}
			off = p
		}
		if local != nil {
			local[id] = off
		}

		var w vectors.Vec3
		if b.IsRoot() {
			w = off.Scale(s.scale.Distance)
		} else {
			if int(b.Parent) >= id {
				panic(fmt.Sprintf("system: %q composed before its parent %d", b.Name, b.Parent))
			}
			w = world[b.Parent].Add(off.Scale(s.scale.ChildDistance))
		}
		if err := fault.CheckVec(ErrNonFinite, "world position", w); err != nil {
			return &BodyError{Body: b.Name, Err: err}
		}
		world[id] = w
	}
	return nil
}

// Update recomputes every position at jd and advances spin and tidal lock
// by elapsed real seconds at the given time scale.
//
// Nothing is committed unless the whole pass succeeds: on error the
// previous frame stays visible.
func (s *System) Update(jd, elapsed, timeScale float64) error {
	if !fault.Finite(elapsed) || elapsed < 0 {
		return fmt.Errorf("%w: elapsed %v must be finite and non-negative", ErrInvalidTick, elapsed)
	}
	if err := fault.Check(ErrInvalidTick, "time scale", timeScale); err != nil {
		return err
	}
	if err := s.compose(jd, s.world, s.local); err != nil {
		return err
	}

	for id := range s.bodies {
		st := &s.state[id]
		st.local = s.local[id]
		st.world = s.world[id]
	}
	s.jd = jd

	for id := range s.bodies {
		b := &s.bodies[id]
		if b.RotationPeriod != 0 {
			s.advanceSpin(b, elapsed, timeScale)
		}
		if b.TidallyLocked {
			s.faceParent(b, elapsed)
		}
	}
	return nil
}

func (s *System) advanceSpin(b *Body, elapsed, timeScale float64) {
	st := &s.state[b.ID]
	delta := twoPi * (elapsed / 3600) / b.RotationPeriod * timeScale
	spin := math.Mod(st.spin+delta, twoPi)
	if !fault.Finite(spin) {
		slog.Warn("spin phase diverged, resetting", "body", b.Name, "delta", delta)
		spin = 0
	}
	st.spin = spin
}

func (s *System) faceParent(b *Body, elapsed float64) {
	st := &s.state[b.ID]
	dir := s.state[b.Parent].world.Sub(st.world)
	n := dir.Norm()
	if !fault.Finite(n) || n < directionEpsilon {
		return
	}
	target := dir.Scale(1 / n)

	if !st.faced {
		st.facing, st.faced = target, true
		return
	}

	alpha := 1 - math.Exp(-elapsed/s.scale.LockSmoothing)
	blend := st.facing.Lerp(target, alpha)
	if bn := blend.Norm(); !fault.Finite(bn) || bn < directionEpsilon {
		return
	}
	st.facing = blend.Normalize()
}
