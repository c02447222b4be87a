// Package lptest provides a scriptable lp.Solver for tests of code that
// builds linear programs.
package lptest

import (
	"context"
	"sync"
	"time"

	"github.com/arloliu/lpfit/lp"
)

// SolveFunc computes the scripted outcome of a solve from the recorded model.
// values must hold one entry per variable when status is lp.StatusOptimal.
type SolveFunc func(ctx context.Context, m *lp.Model) (status lp.Status, values []float64, objective float64, err error)

// Solver records the program it is given and answers Solve with a script.
// Without a script it reports lp.StatusOptimal with every variable at zero.
type Solver struct {
	lp.Model

	// Outcome is returned by Solve when Script is nil.
	Outcome lp.Status
	// Err is returned by Solve when Script is nil.
	Err error
	// Script overrides Outcome and Err.
	Script SolveFunc

	// SolveCalls counts Solve invocations.
	SolveCalls int
	// TimeLimit is the last limit passed to SetTimeLimit.
	TimeLimit time.Duration
}

var (
	_ lp.Solver      = (*Solver)(nil)
	_ lp.TimeLimiter = (*Solver)(nil)
)

// NewSolver returns a Solver that reports status.
func NewSolver(status lp.Status) *Solver {
	return &Solver{Outcome: status}
}

func (s *Solver) SetTimeLimit(d time.Duration) { s.TimeLimit = d }

func (s *Solver) Solve(ctx context.Context) (lp.Status, error) {
	s.SolveCalls++

	if s.Script != nil {
		status, values, obj, err := s.Script(ctx, &s.Model)
		s.Record(status, values, obj)

		return status, err
	}

	status := s.Outcome
	if status == lp.StatusNotSolved {
		status = lp.StatusOptimal
	}
	s.Record(status, make([]float64, s.NumVariables()), 0)

	return status, s.Err
}

// Factory hands out Solvers and counts how often it was asked to.
type Factory struct {
	// New builds each solver. Nil means NewSolver(lp.StatusOptimal).
	New func() *Solver
	// Err, when set, makes Open fail.
	Err error

	mu      sync.Mutex
	solvers []*Solver
}

// Open implements lp.Factory.
func (f *Factory) Open() (lp.Solver, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}

	var s *Solver
	if f.New != nil {
		s = f.New()
	} else {
		s = NewSolver(lp.StatusOptimal)
	}
	f.solvers = append(f.solvers, s)

	return s, nil
}

// Opens returns the number of successful Open calls.
func (f *Factory) Opens() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.solvers)
}

// Solvers returns the solvers handed out so far.
func (f *Factory) Solvers() []*Solver {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]*Solver(nil), f.solvers...)
}
