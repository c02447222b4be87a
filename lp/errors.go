package lp

import "errors"

var (
	// ErrSolverUnavailable is returned by Open when no backend is registered
	// under the requested name or its factory fails.
	ErrSolverUnavailable = errors.New("lp: solver unavailable")
	// ErrUnknownVar is returned for a Var that does not belong to the model.
	ErrUnknownVar = errors.New("lp: unknown variable")
	// ErrInvalidBounds is returned when lower > upper or a bound is NaN.
	ErrInvalidBounds = errors.New("lp: invalid variable bounds")
	// ErrInvalidCoefficient is returned for NaN or infinite coefficients and
	// right-hand sides.
	ErrInvalidCoefficient = errors.New("lp: invalid coefficient")
	// ErrInvalidSense is returned for an unknown constraint sense.
	ErrInvalidSense = errors.New("lp: invalid constraint sense")
	// ErrModelSealed is returned when the model is changed after Solve.
	ErrModelSealed = errors.New("lp: model already solved")
)
