// Package lp defines the linear-programming capability the fitter depends on.
//
// A Solver is built incrementally: add variables with bounds, add linear
// constraints, set a linear objective, then Solve. Backends register a Factory
// under a name and callers open them with Open, the way database/sql drivers
// work:
//
//	import _ "github.com/arloliu/lpfit/lp/simplex"
//
//	s, err := lp.Open("simplex")
//	x, _ := s.AddVariable("x", 0, lp.Inf)
//	_ = s.AddConstraint("cap", []lp.Term{{Var: x, Coef: 1}}, lp.LessEq, 4)
//	_ = s.SetObjective([]lp.Term{{Var: x, Coef: 1}}, lp.Maximize)
//	status, err := s.Solve(ctx)
//
// Model implements the bookkeeping half of Solver and is meant to be
// embedded by backends.
package lp

import (
	"context"
	"math"
	"time"
)

// Inf is an infinite bound. Use -Inf for "no lower bound".
var Inf = math.Inf(1)

// Var refers to a variable of the Solver that created it. The zero Var is invalid.
type Var struct {
	id int
}

// Index returns the position of v in creation order, or -1 for the zero Var.
func (v Var) Index() int { return v.id - 1 }

// Valid reports whether v was returned by AddVariable.
func (v Var) Valid() bool { return v.id > 0 }

// Term is one coefficient·variable product of a linear expression.
type Term struct {
	Var  Var
	Coef float64
}

// Sense is the relation of a constraint.
type Sense uint8

const (
	LessEq Sense = iota + 1
	GreaterEq
	Equal
)

func (s Sense) String() string {
	switch s {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Equal:
		return "=="
	default:
		return "?"
	}
}

// Direction is the optimization direction of the objective.
type Direction uint8

const (
	Minimize Direction = iota
	Maximize
)

func (d Direction) String() string {
	if d == Maximize {
		return "maximize"
	}

	return "minimize"
}

// Status is the outcome of Solve.
type Status uint8

const (
	StatusNotSolved Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
	// StatusAborted means the time limit expired or the context was canceled.
	StatusAborted
	// StatusFailed means the backend terminated abnormally.
	StatusFailed
)

var statusNames = map[Status]string{
	StatusNotSolved:  "not_solved",
	StatusOptimal:    "optimal",
	StatusInfeasible: "infeasible",
	StatusUnbounded:  "unbounded",
	StatusAborted:    "aborted",
	StatusFailed:     "failed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}

	return "unknown"
}

// Solver is a linear program under construction.
//
// Solve blocks until the backend finishes or ctx is done. It returns the
// final status; the error is non-nil only when the backend itself failed or
// ctx ended the solve. Infeasible and unbounded programs are reported
// through the status alone. Value and ObjectiveValue are meaningful only
// after Solve returned StatusOptimal.
type Solver interface {
	AddVariable(name string, lower, upper float64) (Var, error)
	AddConstraint(name string, terms []Term, sense Sense, rhs float64) error
	SetObjective(terms []Term, dir Direction) error
	Solve(ctx context.Context) (Status, error)
	Status() Status
	Value(v Var) float64
	ObjectiveValue() float64
}

// TimeLimiter is implemented by solvers that accept a wall-clock limit in
// addition to context cancellation. A limit of zero removes it.
type TimeLimiter interface {
	SetTimeLimit(d time.Duration)
}
