package simplex

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lpfit/lp"
)

const tol = 1e-7

func newSolver(t *testing.T) *Solver {
	t.Helper()

	s, err := New()
	require.NoError(t, err)

	return s
}

func term(v lp.Var, c float64) lp.Term { return lp.Term{Var: v, Coef: c} }

func TestSolve_Textbook(t *testing.T) {
	// max x + y  s.t.  x + 2y <= 4, 3x + y <= 6, x, y >= 0
	s := newSolver(t)
	x, _ := s.AddVariable("x", 0, lp.Inf)
	y, _ := s.AddVariable("y", 0, lp.Inf)
	require.NoError(t, s.AddConstraint("a", []lp.Term{term(x, 1), term(y, 2)}, lp.LessEq, 4))
	require.NoError(t, s.AddConstraint("b", []lp.Term{term(x, 3), term(y, 1)}, lp.LessEq, 6))
	require.NoError(t, s.SetObjective([]lp.Term{term(x, 1), term(y, 1)}, lp.Maximize))

	status, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, lp.StatusOptimal, status)
	require.Equal(t, lp.StatusOptimal, s.Status())
	require.InDelta(t, 1.6, s.Value(x), tol)
	require.InDelta(t, 1.2, s.Value(y), tol)
	require.InDelta(t, 2.8, s.ObjectiveValue(), tol)
}

func TestSolve_FreeVariableAbsoluteValue(t *testing.T) {
	// min t  s.t.  |x - 3| <= t, x free
	s := newSolver(t)
	x, _ := s.AddVariable("x", math.Inf(-1), lp.Inf)
	u, _ := s.AddVariable("t", 0, lp.Inf)
	require.NoError(t, s.AddConstraint("pos", []lp.Term{term(x, 1), term(u, -1)}, lp.LessEq, 3))
	require.NoError(t, s.AddConstraint("neg", []lp.Term{term(x, -1), term(u, -1)}, lp.LessEq, -3))
	require.NoError(t, s.SetObjective([]lp.Term{term(u, 1)}, lp.Minimize))

	status, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, lp.StatusOptimal, status)
	require.InDelta(t, 3.0, s.Value(x), tol)
	require.InDelta(t, 0.0, s.Value(u), tol)
}

func TestSolve_Equality(t *testing.T) {
	// min x - y  s.t.  x + y == 2, x + y >= 1
	s := newSolver(t)
	x, _ := s.AddVariable("x", 0, lp.Inf)
	y, _ := s.AddVariable("y", 0, lp.Inf)
	require.NoError(t, s.AddConstraint("sum", []lp.Term{term(x, 1), term(y, 1)}, lp.Equal, 2))
	require.NoError(t, s.AddConstraint("floor", []lp.Term{term(x, 1), term(y, 1)}, lp.GreaterEq, 1))
	require.NoError(t, s.SetObjective([]lp.Term{term(x, 1), term(y, -1)}, lp.Minimize))

	status, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, lp.StatusOptimal, status)
	require.InDelta(t, 0.0, s.Value(x), tol)
	require.InDelta(t, 2.0, s.Value(y), tol)
	require.InDelta(t, -2.0, s.ObjectiveValue(), tol)
}

func TestSolve_Bounds(t *testing.T) {
	tests := []struct {
		name         string
		lower, upper float64
		dir          lp.Direction
		status       lp.Status
		want         float64
	}{
		{"boxed min", 2, 5, lp.Minimize, lp.StatusOptimal, 2},
		{"boxed max", 2, 5, lp.Maximize, lp.StatusOptimal, 5},
		{"negative box", -4, -1, lp.Maximize, lp.StatusOptimal, -1},
		{"upper only max", math.Inf(-1), 7, lp.Maximize, lp.StatusOptimal, 7},
		{"upper only min", math.Inf(-1), 7, lp.Minimize, lp.StatusUnbounded, 0},
		{"lower only max", 0, lp.Inf, lp.Maximize, lp.StatusUnbounded, 0},
		{"fixed", 3, 3, lp.Maximize, lp.StatusOptimal, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSolver(t)
			x, err := s.AddVariable("x", tt.lower, tt.upper)
			require.NoError(t, err)
			require.NoError(t, s.SetObjective([]lp.Term{term(x, 1)}, tt.dir))

			status, err := s.Solve(context.Background())
			require.NoError(t, err)
			require.Equal(t, tt.status, status)
			if status == lp.StatusOptimal {
				require.InDelta(t, tt.want, s.Value(x), tol)
			}
		})
	}
}

func TestSolve_UnusedVariable(t *testing.T) {
	s := newSolver(t)
	x, _ := s.AddVariable("x", 0, lp.Inf)
	z, _ := s.AddVariable("z", math.Inf(-1), lp.Inf)
	require.NoError(t, s.AddConstraint("c", []lp.Term{term(x, 1)}, lp.GreaterEq, 1.5))
	require.NoError(t, s.SetObjective([]lp.Term{term(x, 1)}, lp.Minimize))

	status, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, lp.StatusOptimal, status)
	require.InDelta(t, 1.5, s.Value(x), tol)
	require.Zero(t, s.Value(z))
}

func TestSolve_Infeasible(t *testing.T) {
	s := newSolver(t)
	x, _ := s.AddVariable("x", 0, lp.Inf)
	require.NoError(t, s.AddConstraint("c", []lp.Term{term(x, 1)}, lp.LessEq, -1))
	require.NoError(t, s.SetObjective([]lp.Term{term(x, 1)}, lp.Minimize))

	status, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, lp.StatusInfeasible, status)
	require.Zero(t, s.Value(x))
}

func TestSolve_InfeasibleEmptyRow(t *testing.T) {
	s := newSolver(t)
	x, _ := s.AddVariable("x", 0, lp.Inf)
	require.NoError(t, s.AddConstraint("c", []lp.Term{term(x, 0)}, lp.GreaterEq, 1))

	status, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, lp.StatusInfeasible, status)
}

func TestSolve_Unbounded(t *testing.T) {
	// min -x  s.t.  x - y <= 1
	s := newSolver(t)
	x, _ := s.AddVariable("x", 0, lp.Inf)
	y, _ := s.AddVariable("y", 0, lp.Inf)
	require.NoError(t, s.AddConstraint("c", []lp.Term{term(x, 1), term(y, -1)}, lp.LessEq, 1))
	require.NoError(t, s.SetObjective([]lp.Term{term(x, -1)}, lp.Minimize))

	status, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, lp.StatusUnbounded, status)
}

func TestSolve_Canceled(t *testing.T) {
	s := newSolver(t)
	x, _ := s.AddVariable("x", 0, 1)
	require.NoError(t, s.SetObjective([]lp.Term{term(x, 1)}, lp.Minimize))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status, err := s.Solve(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, lp.StatusAborted, status)
	require.Equal(t, lp.StatusAborted, s.Status())
}

func TestSolve_SealedAfterSolve(t *testing.T) {
	s := newSolver(t)
	_, err := s.Solve(context.Background())
	require.NoError(t, err)

	_, err = s.AddVariable("late", 0, 1)
	require.ErrorIs(t, err, lp.ErrModelSealed)
}

func TestOptions(t *testing.T) {
	_, err := New(WithTolerance(0))
	require.Error(t, err)
	_, err = New(WithTolerance(math.NaN()))
	require.Error(t, err)

	_, err = New(WithMethod(Method(9)))
	require.Error(t, err)

	s, err := New(WithTolerance(1e-8), WithTimeLimit(time.Second), WithMethod(Gonum))
	require.NoError(t, err)
	require.InDelta(t, 1e-8, s.tol, 0)
	require.Equal(t, time.Second, s.timeLimit)
	require.Equal(t, Gonum, s.method)
	require.Equal(t, "gonum", s.method.String())

	s.SetTimeLimit(-time.Second)
	require.Zero(t, s.timeLimit)
}

func TestRegistered(t *testing.T) {
	require.Contains(t, lp.Backends(), Name)

	s, err := lp.Open(Name)
	require.NoError(t, err)
	require.IsType(t, &Solver{}, s)
	require.Equal(t, Tableau, s.(*Solver).method)

	s, err = lp.Open(GonumName)
	require.NoError(t, err)
	require.Equal(t, Gonum, s.(*Solver).method)
}

func TestToStandardForm(t *testing.T) {
	var m lp.Model
	// x = 1 + p0 with row p0 <= 3, y = p1 - p2, the unused pair is dropped
	x, _ := m.AddVariable("x", 1, 4)
	y, _ := m.AddVariable("y", math.Inf(-1), lp.Inf)
	_, _ = m.AddVariable("unused", math.Inf(-1), lp.Inf)
	require.NoError(t, m.AddConstraint("c", []lp.Term{term(x, 1), term(y, 1)}, lp.GreaterEq, 0))
	require.NoError(t, m.SetObjective([]lp.Term{term(y, 1)}, lp.Minimize))

	sf, status := toStandardForm(&m)
	require.Equal(t, lp.StatusNotSolved, status)
	require.False(t, sf.unbounded)
	require.Equal(t, 2, sf.rows())

	// columns: p0, p1, p2, slack(c), slack(bound)
	require.Equal(t, []float64{0, 1, -1, 0, 0}, sf.c)
	// p0 + p1 - p2 - s0 >= -1 rewritten with b >= 0
	require.Equal(t, []float64{-1, -1, 1, 1, 0}, sf.a[0:5])
	require.Equal(t, []float64{1, 0, 0, 0, 1}, sf.a[5:10])
	require.Equal(t, []float64{1, 3}, sf.b)
	require.Equal(t, -1, sf.vars[2].parts[0].col)
}
