package fit

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/arloliu/lpfit/curve"
	"github.com/arloliu/lpfit/internal/options"
	"github.com/arloliu/lpfit/lp"
	"github.com/arloliu/lpfit/metric"
)

// Fitter fits polynomials by linear programming. It holds only configuration,
// so one Fitter may serve concurrent Fit calls.
type Fitter struct {
	backend   string
	factory   lp.Factory
	timeLimit time.Duration
	uniform   *Bound
	bounds    []Bound
	basis     curve.Basis
	logger    *slog.Logger
}

// New creates a Fitter using the "simplex" backend, the monomial basis, free
// coefficients and no time limit unless options say otherwise.
func New(opts ...Option) (*Fitter, error) {
	f := &Fitter{
		backend: DefaultBackend,
		basis:   curve.Monomial{},
		logger:  slog.New(slog.DiscardHandler),
	}
	if err := options.Apply(f, opts...); err != nil {
		return nil, err
	}

	return f, nil
}

// Backend returns the name of the configured lp backend.
func (f *Fitter) Backend() string { return f.backend }

// Basis returns the configured basis.
func (f *Fitter) Basis() curve.Basis { return f.basis }

// Fit finds coefficients c_0..c_degree over the configured basis that
// minimize the objective's error norm on points, then evaluates every error
// metric of the result. When ref is non-nil the result also compares the fit
// against it; ref never influences the linear program.
//
// Errors are *InvalidInputError (empty points, negative degree, non-finite
// values, unknown objective), *SolverUnavailableError and *SolverError.
// Input is validated before a solver is opened.
func (f *Fitter) Fit(ctx context.Context, points []curve.Point, degree int, objective Objective, ref curve.Curve) (*Result, error) {
	build, ok := builders[objective]
	if !ok {
		return nil, invalid("objective", "unknown objective %d", objective)
	}
	phi, err := f.designRows(points, degree)
	if err != nil {
		return nil, err
	}

	solver, err := f.open()
	if err != nil {
		f.logger.DebugContext(ctx, "lp solver unavailable", "backend", f.backend, "error", err)
		return nil, &SolverUnavailableError{Backend: f.backend, Err: err}
	}

	if f.timeLimit > 0 {
		if tl, ok := solver.(lp.TimeLimiter); ok {
			tl.SetTimeLimit(f.timeLimit)
		} else {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, f.timeLimit)
			defer cancel()
		}
	}

	coeffs, err := f.addCoefficients(solver, degree)
	if err != nil {
		return nil, &SolverError{Backend: f.backend, Status: lp.StatusFailed, Err: err}
	}
	if err := build(solver, coeffs, phi, points); err != nil {
		return nil, &SolverError{Backend: f.backend, Status: lp.StatusFailed, Err: err}
	}

	f.logger.DebugContext(ctx, "solving lp",
		"backend", f.backend,
		"objective", objective.String(),
		"basis", f.basis.Name(),
		"degree", degree,
		"points", len(points),
	)

	start := time.Now()
	status, err := solver.Solve(ctx)
	elapsed := time.Since(start)
	if err != nil || status != lp.StatusOptimal {
		f.logger.DebugContext(ctx, "lp not solved", "status", status.String(), "elapsed", elapsed, "error", err)
		return nil, &SolverError{Backend: f.backend, Status: status, Err: err}
	}

	values := make([]float64, len(coeffs))
	for j, c := range coeffs {
		values[j] = solver.Value(c)
	}

	res := newResult(f.basis, degree, values, objective, points, ref)
	res.ObjectiveValue = solver.ObjectiveValue()
	res.Status = status
	res.Backend = f.backend
	res.Elapsed = elapsed

	f.logger.DebugContext(ctx, "lp solved",
		"objective", objective.String(),
		"value", res.ObjectiveValue,
		"elapsed", elapsed,
	)

	return res, nil
}

// designRows validates the input and returns φ_j(x_i) for every point.
func (f *Fitter) designRows(points []curve.Point, degree int) ([][]float64, error) {
	if len(points) == 0 {
		return nil, invalid("points", "empty point set")
	}
	if degree < 0 {
		return nil, invalid("degree", "negative degree %d", degree)
	}

	phi := make([][]float64, len(points))
	for i, p := range points {
		if !p.IsFinite() {
			return nil, invalid("points", "point %d (%s) is not finite", i, p)
		}

		row := make([]float64, degree+1)
		f.basis.Fill(p.X, row)
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, invalid("points", "%s basis function %d overflows at x=%g", f.basis.Name(), j, p.X)
			}
		}
		phi[i] = row
	}

	return phi, nil
}

func (f *Fitter) open() (lp.Solver, error) {
	if f.factory != nil {
		s, err := f.factory()
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, fmt.Errorf("%w: factory returned no solver", lp.ErrSolverUnavailable)
		}

		return s, nil
	}

	return lp.Open(f.backend)
}

func (f *Fitter) addCoefficients(s lp.Solver, degree int) ([]lp.Var, error) {
	coeffs := make([]lp.Var, degree+1)
	for j := range coeffs {
		b := f.bound(j)
		v, err := s.AddVariable(fmt.Sprintf("c_%d", j), b.Lower, b.Upper)
		if err != nil {
			return nil, err
		}
		coeffs[j] = v
	}

	return coeffs, nil
}

func (f *Fitter) bound(j int) Bound {
	switch {
	case f.uniform != nil:
		return *f.uniform
	case j < len(f.bounds):
		return f.bounds[j]
	default:
		return Free
	}
}

// Evaluate computes the error metrics of a curve given by coefficients over
// the fitter's basis, without solving anything.
func (f *Fitter) Evaluate(points []curve.Point, coefficients []float64, ref curve.Curve) metric.Report {
	e := curve.Expansion{Basis: f.basis, Coefficients: coefficients}
	if ref == nil {
		return metric.Evaluate(points, e)
	}

	return metric.Compare(points, e, ref)
}
