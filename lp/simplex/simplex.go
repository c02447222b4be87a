// Package simplex is the default lp backend. It converts a Model to standard
// form and solves it with a dense two-phase tableau simplex. Rows and columns
// are equilibrated before pivoting, degenerate runs fall back to Bland's rule,
// and the context is polled between pivots, so Solve returns promptly when it
// is canceled or its time limit expires.
//
// The same package provides a second backend that hands phase two to
// gonum.org/v1/gonum/optimize/convex/lp, starting from the feasible basis
// found by the tableau's phase one.
//
// Importing the package registers the backends under the names "simplex" and
// "gonum-simplex".
package simplex

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	convexlp "gonum.org/v1/gonum/optimize/convex/lp"
	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/lpfit/internal/options"
	"github.com/arloliu/lpfit/lp"
)

const (
	// Name is the registry name of the tableau backend.
	Name = "simplex"
	// GonumName is the registry name of the backend finishing with gonum.
	GonumName = "gonum-simplex"
)

// DefaultTolerance is the pivot and optimality tolerance on the equilibrated
// tableau.
const DefaultTolerance = 1e-9

// Method selects how phase two is run.
type Method uint8

const (
	// Tableau runs both phases on the in-process tableau.
	Tableau Method = iota + 1
	// Gonum runs phase two with gonum's simplex from the phase one basis.
	// gonum cannot be interrupted: when ctx ends first, Solve returns
	// StatusAborted and the computation finishes in the background.
	Gonum
)

func (m Method) String() string {
	switch m {
	case Tableau:
		return "tableau"
	case Gonum:
		return "gonum"
	default:
		return fmt.Sprintf("Method(%d)", uint8(m))
	}
}

func init() {
	lp.Register(Name, func() (lp.Solver, error) {
		return New()
	})
	lp.Register(GonumName, func() (lp.Solver, error) {
		return New(WithMethod(Gonum))
	})
}

// Solver solves a Model with the simplex method.
type Solver struct {
	lp.Model

	tol       float64
	method    Method
	timeLimit time.Duration
}

var (
	_ lp.Solver      = (*Solver)(nil)
	_ lp.TimeLimiter = (*Solver)(nil)
)

// Option configures a Solver.
type Option = options.Option[*Solver]

// WithTolerance sets the pivot tolerance. It must be positive.
func WithTolerance(tol float64) Option {
	return options.New(func(s *Solver) error {
		if !(tol > 0) || math.IsInf(tol, 0) {
			return fmt.Errorf("simplex: invalid tolerance %g", tol)
		}
		s.tol = tol

		return nil
	})
}

// WithMethod selects the phase two implementation. The default is Tableau.
func WithMethod(m Method) Option {
	return options.New(func(s *Solver) error {
		if m != Tableau && m != Gonum {
			return fmt.Errorf("simplex: unknown method %s", m)
		}
		s.method = m

		return nil
	})
}

// WithTimeLimit bounds the wall-clock time of Solve. Zero means no limit.
func WithTimeLimit(d time.Duration) Option {
	return options.NoError(func(s *Solver) {
		s.SetTimeLimit(d)
	})
}

// New creates an empty Solver.
func New(opts ...Option) (*Solver, error) {
	s := &Solver{tol: DefaultTolerance, method: Tableau}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// SetTimeLimit implements lp.TimeLimiter. Negative values are treated as zero.
func (s *Solver) SetTimeLimit(d time.Duration) {
	s.timeLimit = max(d, 0)
}

// Solve converts the model to standard form and runs the simplex method.
// Cancellation and the time limit yield StatusAborted with the context error;
// an exhausted pivot budget yields StatusFailed with ErrIterationLimit.
func (s *Solver) Solve(ctx context.Context) (lp.Status, error) {
	if s.timeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeLimit)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		s.Record(lp.StatusAborted, nil, 0)
		return lp.StatusAborted, err
	}

	sf, status := toStandardForm(&s.Model)
	if status != lp.StatusNotSolved {
		s.Record(status, nil, 0)
		return status, nil
	}

	var x []float64
	if sf.rows() > 0 {
		var err error
		x, status, err = s.solveStandard(ctx, sf)
		if status != lp.StatusNotSolved {
			s.Record(status, nil, 0)
			return status, err
		}
	}

	if sf.unbounded {
		s.Record(lp.StatusUnbounded, nil, 0)
		return lp.StatusUnbounded, nil
	}
	s.finish(sf, x)

	return lp.StatusOptimal, nil
}

func (s *Solver) solveStandard(ctx context.Context, sf *standardForm) ([]float64, lp.Status, error) {
	tb := newTableau(sf, s.tol)
	if s.method == Tableau {
		return tb.solve(ctx)
	}

	if status, err := tb.phaseOne(ctx); status != lp.StatusNotSolved {
		return nil, status, err
	}

	return s.gonumPhaseTwo(ctx, sf, tb)
}

type outcome struct {
	x   []float64
	err error
}

// gonumPhaseTwo hands the rows that survived phase one to gonum together with
// their feasible basis, so gonum never has to search for one itself.
func (s *Solver) gonumPhaseTwo(ctx context.Context, sf *standardForm, tb *tableau) ([]float64, lp.Status, error) {
	rows, basis := tb.feasibleBasis()
	n := len(sf.c)
	a := mat.NewDense(len(rows), n, nil)
	b := make([]float64, len(rows))
	for k, i := range rows {
		a.SetRow(k, sf.a[i*n:(i+1)*n])
		b[k] = sf.b[i]
	}

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("gonum simplex panicked: %v", r)}
			}
		}()
		_, optX, err := convexlp.Simplex(sf.c, a, b, s.tol, basis)
		done <- outcome{x: optX, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, lp.StatusAborted, ctx.Err()
	case out := <-done:
		switch {
		case errors.Is(out.err, convexlp.ErrInfeasible):
			return nil, lp.StatusInfeasible, nil
		case errors.Is(out.err, convexlp.ErrUnbounded):
			return nil, lp.StatusUnbounded, nil
		case out.err != nil:
			return nil, lp.StatusFailed, fmt.Errorf("simplex: %w", out.err)
		}

		return out.x, lp.StatusNotSolved, nil
	}
}

// finish maps the standard-form solution x back to model variables.
func (s *Solver) finish(sf *standardForm, x []float64) {
	values := make([]float64, len(sf.vars))
	for i, v := range sf.vars {
		val := v.offset
		for _, p := range v.parts {
			if p.col >= 0 && p.col < len(x) {
				val += p.sign * x[p.col]
			}
		}
		values[i] = val
	}

	terms, _ := s.Objective()
	var obj float64
	for _, t := range terms {
		obj += t.Coef * values[t.Var.Index()]
	}

	s.Record(lp.StatusOptimal, values, obj)
}
