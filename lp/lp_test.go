package lp_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/lpfit/lp"
	"github.com/arloliu/lpfit/lp/lptest"
)

func TestModel_AddVariable(t *testing.T) {
	var m lp.Model

	x, err := m.AddVariable("x", 0, lp.Inf)
	require.NoError(t, err)
	require.True(t, x.Valid())
	require.Equal(t, 0, x.Index())

	y, err := m.AddVariable("y", math.Inf(-1), 3)
	require.NoError(t, err)
	require.Equal(t, 1, y.Index())
	require.Equal(t, 2, m.NumVariables())
	require.Equal(t, lp.Variable{Name: "y", Lower: math.Inf(-1), Upper: 3}, m.Variables()[1])

	for _, b := range [][2]float64{{1, 0}, {math.NaN(), 1}, {0, math.NaN()}, {lp.Inf, lp.Inf}, {math.Inf(-1), math.Inf(-1)}} {
		_, err := m.AddVariable("bad", b[0], b[1])
		require.ErrorIs(t, err, lp.ErrInvalidBounds, "%v", b)
	}

	var zero lp.Var
	require.False(t, zero.Valid())
	require.Equal(t, -1, zero.Index())
}

func TestModel_AddConstraint(t *testing.T) {
	var m lp.Model
	x, _ := m.AddVariable("x", 0, lp.Inf)

	require.NoError(t, m.AddConstraint("c", []lp.Term{{Var: x, Coef: 2}}, lp.LessEq, 4))
	require.Equal(t, 1, m.NumConstraints())
	require.Equal(t, lp.LessEq, m.Constraints()[0].Sense)

	require.ErrorIs(t, m.AddConstraint("u", []lp.Term{{Coef: 1}}, lp.LessEq, 1), lp.ErrUnknownVar)
	require.ErrorIs(t, m.AddConstraint("n", []lp.Term{{Var: x, Coef: math.NaN()}}, lp.LessEq, 1), lp.ErrInvalidCoefficient)
	require.ErrorIs(t, m.AddConstraint("r", []lp.Term{{Var: x, Coef: 1}}, lp.LessEq, math.Inf(1)), lp.ErrInvalidCoefficient)
	require.ErrorIs(t, m.AddConstraint("s", []lp.Term{{Var: x, Coef: 1}}, lp.Sense(9), 1), lp.ErrInvalidSense)
	require.Equal(t, 1, m.NumConstraints())

	var other lp.Model
	require.ErrorIs(t, other.SetObjective([]lp.Term{{Var: x, Coef: 1}}, lp.Minimize), lp.ErrUnknownVar)
}

func TestModel_Record(t *testing.T) {
	var m lp.Model
	x, _ := m.AddVariable("x", 0, 1)
	require.NoError(t, m.SetObjective([]lp.Term{{Var: x, Coef: 1}}, lp.Maximize))
	terms, dir := m.Objective()
	require.Len(t, terms, 1)
	require.Equal(t, lp.Maximize, dir)

	require.Equal(t, lp.StatusNotSolved, m.Status())
	m.Record(lp.StatusOptimal, []float64{1}, 1)
	require.Equal(t, lp.StatusOptimal, m.Status())
	require.InDelta(t, 1.0, m.Value(x), 0)
	require.InDelta(t, 1.0, m.ObjectiveValue(), 0)
	require.Zero(t, m.Value(lp.Var{}))

	_, err := m.AddVariable("late", 0, 1)
	require.ErrorIs(t, err, lp.ErrModelSealed)

	m.Record(lp.StatusInfeasible, []float64{5}, 5)
	require.Zero(t, m.Value(x))
	require.Zero(t, m.ObjectiveValue())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "optimal", lp.StatusOptimal.String())
	assert.Equal(t, "aborted", lp.StatusAborted.String())
	assert.Equal(t, "unknown", lp.Status(99).String())
	assert.Equal(t, "<=", lp.LessEq.String())
	assert.Equal(t, ">=", lp.GreaterEq.String())
	assert.Equal(t, "==", lp.Equal.String())
	assert.Equal(t, "maximize", lp.Maximize.String())
	assert.Equal(t, "minimize", lp.Minimize.String())
}

func TestRegistry(t *testing.T) {
	f := &lptest.Factory{}
	lp.Register("registry-test", f.Open)

	require.Contains(t, lp.Backends(), "registry-test")
	require.Panics(t, func() { lp.Register("registry-test", f.Open) })
	require.Panics(t, func() { lp.Register("registry-nil", nil) })

	s, err := lp.Open("registry-test")
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Equal(t, 1, f.Opens())

	_, err = lp.Open("no-such-backend")
	require.ErrorIs(t, err, lp.ErrSolverUnavailable)

	broken := &lptest.Factory{Err: errors.New("license missing")}
	lp.Register("registry-broken", broken.Open)
	_, err = lp.Open("registry-broken")
	require.ErrorIs(t, err, lp.ErrSolverUnavailable)
	require.ErrorContains(t, err, "license missing")
}
