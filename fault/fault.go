// Package fault holds the two error classes shared by every package of the
// orrery core and the finiteness guards used at each numeric step.
//
// A configuration error means the input data or assembly is wrong and the
// system must not start. A divergence error means the numeric pipeline
// produced something it cannot stand behind; the current tick is aborted.
package fault

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/echoflaresat/orrery/vectors"
)

var (
	// ErrConfiguration classifies invalid elements, bodies, assembly or initial time.
	ErrConfiguration = errors.New("configuration defect")

	// ErrDivergence classifies non-convergence, non-finite intermediates and time drift.
	ErrDivergence = errors.New("numerical divergence")
)

// Configuration returns a new sentinel error in the configuration class.
func Configuration(msg string) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, msg)
}

// Divergence returns a new sentinel error in the divergence class.
func Divergence(msg string) error {
	return fmt.Errorf("%w: %s", ErrDivergence, msg)
}

// IsConfiguration reports whether err belongs to the configuration class.
func IsConfiguration(err error) bool { return errors.Is(err, ErrConfiguration) }

// IsDivergence reports whether err belongs to the divergence class.
func IsDivergence(err error) bool { return errors.Is(err, ErrDivergence) }

// Finite reports whether x is neither NaN nor ±Inf.
func Finite[T constraints.Float](x T) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// FiniteVec reports whether every component of v is finite.
func FiniteVec(v vectors.Vec3) bool {
	return Finite(v.X) && Finite(v.Y) && Finite(v.Z)
}

// Check returns an error wrapping sentinel when x is not finite.
// step names the pipeline stage so the failure is diagnosable.
func Check(sentinel error, step string, x float64) error {
	if Finite(x) {
		return nil
	}
	return fmt.Errorf("%w: %s = %v", sentinel, step, x)
}

// CheckVec is Check for vectors.
func CheckVec(sentinel error, step string, v vectors.Vec3) error {
	if FiniteVec(v) {
		return nil
	}
	return fmt.Errorf("%w: %s = (%v, %v, %v)", sentinel, step, v.X, v.Y, v.Z)
}
