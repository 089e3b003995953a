// Package ephemeris tabulates body positions over a span of instants.
//
// It only calls the pure position pass, so it can fan out across
// goroutines without touching the transient state of a running system.
package ephemeris

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/echoflaresat/orrery/fault"
	"github.com/echoflaresat/orrery/vectors"
)

var ErrInvalidRequest = fault.Configuration("invalid ephemeris request")

// Positioner computes world positions of every body at an instant.
// *system.System implements it.
type Positioner interface {
	PositionsAt(jd float64) ([]vectors.Vec3, error)
}

// Frame is every body's world position at one instant, indexed by BodyID.
type Frame struct {
	JD        float64
	Positions []vectors.Vec3
}

// Sample evaluates n frames starting at startJD, stepDays apart, on at
// most workers goroutines (GOMAXPROCS when workers <= 0). Frames come back
// in time order. The first failing instant cancels the rest.
func Sample(ctx context.Context, p Positioner, startJD, stepDays float64, n, workers int) ([]Frame, error) {
	switch {
	case n <= 0:
		return nil, fmt.Errorf("%w: %d frames", ErrInvalidRequest, n)
	case !fault.Finite(startJD):
		return nil, fmt.Errorf("%w: start %v", ErrInvalidRequest, startJD)
	case !fault.Finite(stepDays):
		return nil, fmt.Errorf("%w: step %v", ErrInvalidRequest, stepDays)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	frames := make([]Frame, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for k := 0; k < n; k++ {
		jd := startJD + float64(k)*stepDays
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pos, err := p.PositionsAt(jd)
			if err != nil {
				return fmt.Errorf("frame %d at JD %v: %w", k, jd, err)
			}
			frames[k] = Frame{JD: jd, Positions: pos}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}
