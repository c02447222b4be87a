package lp

import (
	"fmt"
	"math"
)

// Variable is a decision variable as recorded by Model.
type Variable struct {
	Name  string
	Lower float64
	Upper float64
}

// Constraint is a linear constraint as recorded by Model.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Model records variables, constraints and the objective of a linear program
// and stores the solution reported by a backend. It implements every Solver
// method except Solve.
//
// Model is not safe for concurrent use.
type Model struct {
	vars      []Variable
	cons      []Constraint
	objective []Term
	dir       Direction

	status   Status
	values   []float64
	objValue float64
	sealed   bool
}

// AddVariable adds a variable with lower <= x <= upper. Use -Inf and Inf for
// missing bounds.
func (m *Model) AddVariable(name string, lower, upper float64) (Var, error) {
	if m.sealed {
		return Var{}, ErrModelSealed
	}
	if math.IsNaN(lower) || math.IsNaN(upper) || lower > upper || math.IsInf(lower, 1) || math.IsInf(upper, -1) {
		return Var{}, fmt.Errorf("%w: %s in [%g, %g]", ErrInvalidBounds, name, lower, upper)
	}

	m.vars = append(m.vars, Variable{Name: name, Lower: lower, Upper: upper})

	return Var{id: len(m.vars)}, nil
}

// AddConstraint adds Σ terms (sense) rhs.
func (m *Model) AddConstraint(name string, terms []Term, sense Sense, rhs float64) error {
	if m.sealed {
		return ErrModelSealed
	}
	if sense < LessEq || sense > Equal {
		return fmt.Errorf("%w: %s: %d", ErrInvalidSense, name, sense)
	}
	if math.IsNaN(rhs) || math.IsInf(rhs, 0) {
		return fmt.Errorf("%w: %s: rhs %g", ErrInvalidCoefficient, name, rhs)
	}
	if err := m.checkTerms(terms); err != nil {
		return fmt.Errorf("constraint %s: %w", name, err)
	}

	m.cons = append(m.cons, Constraint{Name: name, Terms: append([]Term(nil), terms...), Sense: sense, RHS: rhs})

	return nil
}

// SetObjective replaces the objective.
func (m *Model) SetObjective(terms []Term, dir Direction) error {
	if m.sealed {
		return ErrModelSealed
	}
	if err := m.checkTerms(terms); err != nil {
		return fmt.Errorf("objective: %w", err)
	}

	m.objective = append([]Term(nil), terms...)
	m.dir = dir

	return nil
}

func (m *Model) checkTerms(terms []Term) error {
	for _, t := range terms {
		if !t.Var.Valid() || t.Var.Index() >= len(m.vars) {
			return ErrUnknownVar
		}
		if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
			return fmt.Errorf("%w: %g for %s", ErrInvalidCoefficient, t.Coef, m.vars[t.Var.Index()].Name)
		}
	}

	return nil
}

// Status returns the status recorded by the last solve.
func (m *Model) Status() Status { return m.status }

// Value returns the solution value of v, or 0 if there is no optimal solution
// or v is unknown.
func (m *Model) Value(v Var) float64 {
	i := v.Index()
	if i < 0 || i >= len(m.values) {
		return 0
	}

	return m.values[i]
}

// ObjectiveValue returns the optimal objective value, or 0 without one.
func (m *Model) ObjectiveValue() float64 { return m.objValue }

// NumVariables returns the number of variables added so far.
func (m *Model) NumVariables() int { return len(m.vars) }

// NumConstraints returns the number of constraints added so far.
func (m *Model) NumConstraints() int { return len(m.cons) }

// Variables returns the recorded variables. Callers must not modify them.
func (m *Model) Variables() []Variable { return m.vars }

// Constraints returns the recorded constraints. Callers must not modify them.
func (m *Model) Constraints() []Constraint { return m.cons }

// Objective returns the objective terms and direction.
func (m *Model) Objective() ([]Term, Direction) { return m.objective, m.dir }

// Record stores the outcome of a solve and seals the model. values holds one
// entry per variable and is only kept for StatusOptimal.
func (m *Model) Record(status Status, values []float64, objective float64) {
	m.sealed = true
	m.status = status
	if status != StatusOptimal {
		m.values, m.objValue = nil, 0
		return
	}

	m.values = append([]float64(nil), values...)
	m.objValue = objective
}
