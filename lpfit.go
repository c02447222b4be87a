// Package lpfit fits polynomial curves to 2-D points by minimizing the L1 or
// the minimax (Chebyshev) error with a linear program.
//
// # Core Features
//
//   - L1 (least absolute deviations) and minimax objectives, solved exactly as LPs
//   - Pluggable LP backends through the lp registry; a tableau simplex by default
//   - Monomial or Chebyshev basis, optional coefficient bounds and time limits
//   - Every error metric (l1, linf, mae, sse, rmse) recomputed after the solve
//   - Comparison against a reference curve, such as the least-squares fit
//   - A compact binary container for point sets (package dataset)
//
// # Basic Usage
//
//	points := []curve.Point{{X: 0, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 2}}
//
//	res, err := lpfit.FitMinimax(ctx, points, 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Curve(), res.Errors[metric.Linf])
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the fit package
// for the most common use cases. For backends, bounds, bases and logging, use
// fit.New with its options directly.
package lpfit

import (
	"context"

	"github.com/arloliu/lpfit/curve"
	"github.com/arloliu/lpfit/fit"
	"github.com/arloliu/lpfit/reference"
)

// Fit fits a polynomial of the given degree with a default fit.Fitter.
//
// Parameters:
//   - ctx: Cancels the solve
//   - points: Data points, at least one, all finite
//   - degree: Polynomial degree, non-negative
//   - objective: fit.L1 or fit.Minimax
//   - opts: Optional fit.Option values (backend, time limit, bounds, basis)
//
// Returns:
//   - *fit.Result: Coefficients, objective value and every error metric
//   - error: *fit.InvalidInputError, *fit.SolverUnavailableError or *fit.SolverError
func Fit(ctx context.Context, points []curve.Point, degree int, objective fit.Objective, opts ...fit.Option) (*fit.Result, error) {
	f, err := fit.New(opts...)
	if err != nil {
		return nil, err
	}

	return f.Fit(ctx, points, degree, objective, nil)
}

// FitL1 minimizes the sum of absolute residuals.
func FitL1(ctx context.Context, points []curve.Point, degree int, opts ...fit.Option) (*fit.Result, error) {
	return Fit(ctx, points, degree, fit.L1, opts...)
}

// FitMinimax minimizes the largest absolute residual.
func FitMinimax(ctx context.Context, points []curve.Point, degree int, opts ...fit.Option) (*fit.Result, error) {
	return Fit(ctx, points, degree, fit.Minimax, opts...)
}

// Compare runs every objective on the same points and compares each fit
// against the least-squares polynomial of the same degree.
//
// Returns:
//   - []*fit.Result: One result per fit.Objectives entry, in that order
//   - curve.Polynomial: The least-squares reference
//   - error: The first failure; least-squares errors come from package reference
func Compare(ctx context.Context, points []curve.Point, degree int, opts ...fit.Option) ([]*fit.Result, curve.Polynomial, error) {
	f, err := fit.New(opts...)
	if err != nil {
		return nil, nil, err
	}
	ref, err := reference.LeastSquares(points, degree)
	if err != nil {
		return nil, nil, err
	}

	results := make([]*fit.Result, 0, len(fit.Objectives()))
	for _, obj := range fit.Objectives() {
		res, err := f.Fit(ctx, points, degree, obj, ref)
		if err != nil {
			return nil, nil, err
		}
		results = append(results, res)
	}

	return results, ref, nil
}

// LeastSquares returns the ordinary least-squares polynomial of the given
// degree. It is the usual reference for Compare.
func LeastSquares(points []curve.Point, degree int) (curve.Polynomial, error) {
	return reference.LeastSquares(points, degree)
}
