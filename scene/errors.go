// Package scene provides the synthetic scene entities camlab explores:
// the pinhole camera model with its derived orthonormal basis and frustum,
// plus the cube and plane geometry primitives.
package scene

import "errors"

// Sentinel errors for precondition violations. All are detected before any
// derived state is mutated: a failed update leaves the entity in its
// last-valid state. Callers test with errors.Is.
var (
	// ErrDegenerateDirection is returned by LookAt when the target
	// coincides with the camera position.
	ErrDegenerateDirection = errors.New("degenerate direction: target coincides with camera position")

	// ErrDegenerateBasis is returned when the viewing direction is parallel
	// to the up hint, so no right vector can be derived.
	ErrDegenerateBasis = errors.New("degenerate basis: direction parallel to up hint")

	// ErrInvalidArgument is returned for out-of-range constructor or setter
	// arguments (non-positive sizes, zero up hint, too-small resolution).
	ErrInvalidArgument = errors.New("invalid argument")
)
