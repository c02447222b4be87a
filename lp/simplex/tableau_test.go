package simplex

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lpfit/lp"
)

func TestSolve_Methods(t *testing.T) {
	type check func(t *testing.T, s *Solver, vars []lp.Var)

	tests := []struct {
		name   string
		build  func(t *testing.T, s *Solver) []lp.Var
		status lp.Status
		check  check

		tableauOnly bool
	}{
		{
			name: "textbook",
			build: func(t *testing.T, s *Solver) []lp.Var {
				x, _ := s.AddVariable("x", 0, lp.Inf)
				y, _ := s.AddVariable("y", 0, lp.Inf)
				require.NoError(t, s.AddConstraint("a", []lp.Term{term(x, 1), term(y, 2)}, lp.LessEq, 4))
				require.NoError(t, s.AddConstraint("b", []lp.Term{term(x, 3), term(y, 1)}, lp.LessEq, 6))
				require.NoError(t, s.SetObjective([]lp.Term{term(x, 1), term(y, 1)}, lp.Maximize))

				return []lp.Var{x, y}
			},
			status: lp.StatusOptimal,
			check: func(t *testing.T, s *Solver, vars []lp.Var) {
				require.InDelta(t, 1.6, s.Value(vars[0]), tol)
				require.InDelta(t, 1.2, s.Value(vars[1]), tol)
			},
		},
		{
			name: "equality with redundant row",
			build: func(t *testing.T, s *Solver) []lp.Var {
				x, _ := s.AddVariable("x", 0, lp.Inf)
				y, _ := s.AddVariable("y", 0, lp.Inf)
				require.NoError(t, s.AddConstraint("a", []lp.Term{term(x, 1), term(y, 1)}, lp.Equal, 2))
				require.NoError(t, s.AddConstraint("b", []lp.Term{term(x, 2), term(y, 2)}, lp.Equal, 4))
				require.NoError(t, s.SetObjective([]lp.Term{term(x, 1), term(y, 3)}, lp.Minimize))

				return []lp.Var{x, y}
			},
			status: lp.StatusOptimal,
			check: func(t *testing.T, s *Solver, vars []lp.Var) {
				require.InDelta(t, 2.0, s.Value(vars[0]), tol)
				require.InDelta(t, 0.0, s.Value(vars[1]), tol)
				require.InDelta(t, 2.0, s.ObjectiveValue(), tol)
			},
		},
		{
			name: "badly scaled columns",
			build: func(t *testing.T, s *Solver) []lp.Var {
				// min t  s.t.  |c0 + c1·x_i - y_i| <= t with x up to 1e3
				c0, _ := s.AddVariable("c0", math.Inf(-1), lp.Inf)
				c1, _ := s.AddVariable("c1", math.Inf(-1), lp.Inf)
				u, _ := s.AddVariable("t", 0, lp.Inf)
				for i, x := range []float64{0, 10, 100, 1000} {
					y := 2 + 0.5*x
					name := string(rune('a' + i))
					require.NoError(t, s.AddConstraint("over_"+name, []lp.Term{term(c0, 1), term(c1, x), term(u, -1)}, lp.LessEq, y))
					require.NoError(t, s.AddConstraint("under_"+name, []lp.Term{term(c0, -1), term(c1, -x), term(u, -1)}, lp.LessEq, -y))
				}
				require.NoError(t, s.SetObjective([]lp.Term{term(u, 1)}, lp.Minimize))

				return []lp.Var{c0, c1, u}
			},
			status: lp.StatusOptimal,
			check: func(t *testing.T, s *Solver, vars []lp.Var) {
				require.InDelta(t, 2.0, s.Value(vars[0]), tol)
				require.InDelta(t, 0.5, s.Value(vars[1]), tol)
				require.InDelta(t, 0.0, s.ObjectiveValue(), tol)
			},
			tableauOnly: true,
		},
		{
			name: "infeasible",
			build: func(t *testing.T, s *Solver) []lp.Var {
				x, _ := s.AddVariable("x", 0, lp.Inf)
				require.NoError(t, s.AddConstraint("lo", []lp.Term{term(x, 1)}, lp.GreaterEq, 2))
				require.NoError(t, s.AddConstraint("hi", []lp.Term{term(x, 1)}, lp.LessEq, 1))
				require.NoError(t, s.SetObjective([]lp.Term{term(x, 1)}, lp.Minimize))

				return []lp.Var{x}
			},
			status: lp.StatusInfeasible,
		},
		{
			name: "unbounded",
			build: func(t *testing.T, s *Solver) []lp.Var {
				x, _ := s.AddVariable("x", 0, lp.Inf)
				y, _ := s.AddVariable("y", 0, lp.Inf)
				require.NoError(t, s.AddConstraint("c", []lp.Term{term(x, 1), term(y, -1)}, lp.LessEq, 1))
				require.NoError(t, s.SetObjective([]lp.Term{term(x, -1)}, lp.Minimize))

				return []lp.Var{x, y}
			},
			status: lp.StatusUnbounded,
		},
	}

	for _, method := range []Method{Tableau, Gonum} {
		for _, tt := range tests {
			t.Run(method.String()+"/"+tt.name, func(t *testing.T) {
				if tt.tableauOnly && method != Tableau {
					t.Skip("scaling is only applied by the tableau")
				}
				s, err := New(WithMethod(method))
				require.NoError(t, err)
				vars := tt.build(t, s)

				status, err := s.Solve(context.Background())
				require.NoError(t, err)
				require.Equal(t, tt.status, status)
				if tt.check != nil {
					tt.check(t, s, vars)
				}
			})
		}
	}
}

func TestSolve_DegenerateCycling(t *testing.T) {
	// Beale's example cycles under Dantzig's rule with naive tie-breaking.
	s := newSolver(t)
	x4, _ := s.AddVariable("x4", 0, lp.Inf)
	x5, _ := s.AddVariable("x5", 0, lp.Inf)
	x6, _ := s.AddVariable("x6", 0, lp.Inf)
	x7, _ := s.AddVariable("x7", 0, lp.Inf)
	require.NoError(t, s.AddConstraint("r1", []lp.Term{term(x4, 0.25), term(x5, -8), term(x6, -1), term(x7, 9)}, lp.LessEq, 0))
	require.NoError(t, s.AddConstraint("r2", []lp.Term{term(x4, 0.5), term(x5, -12), term(x6, -0.5), term(x7, 3)}, lp.LessEq, 0))
	require.NoError(t, s.AddConstraint("r3", []lp.Term{term(x6, 1)}, lp.LessEq, 1))
	require.NoError(t, s.SetObjective([]lp.Term{term(x4, -0.75), term(x5, 20), term(x6, -0.5), term(x7, 6)}, lp.Minimize))

	status, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, lp.StatusOptimal, status)
	require.InDelta(t, -1.25, s.ObjectiveValue(), tol)
	require.InDelta(t, 1.0, s.Value(x6), tol)
}

func TestNewTableau(t *testing.T) {
	t.Run("slack columns form the basis", func(t *testing.T) {
		var m lp.Model
		x, _ := m.AddVariable("x", 1, 4)
		y, _ := m.AddVariable("y", math.Inf(-1), lp.Inf)
		require.NoError(t, m.AddConstraint("c", []lp.Term{term(x, 1), term(y, 1)}, lp.GreaterEq, 0))
		require.NoError(t, m.SetObjective([]lp.Term{term(y, 1)}, lp.Minimize))

		sf, status := toStandardForm(&m)
		require.Equal(t, lp.StatusNotSolved, status)

		tb := newTableau(sf, DefaultTolerance)
		require.Zero(t, tb.nArt)
		require.Equal(t, []int{2, 4}, tb.basis)
		require.Equal(t, []float64{1, 1, 1, 1, 1}, tb.colScale)
	})

	t.Run("equilibration", func(t *testing.T) {
		// 100x + 4y == 200, -50x + 2y == 0: rows are scaled by 1/100 and
		// 1/50, then y's column by 1/0.04
		sf := &standardForm{
			c: []float64{1, 1},
			a: []float64{
				100, 4,
				-50, 2,
			},
			b: []float64{200, 0},
		}
		tb := newTableau(sf, DefaultTolerance)
		require.Equal(t, 2, tb.nArt)
		require.Equal(t, []int{2, 3}, tb.basis)
		require.InDeltaSlice(t, []float64{1, 0.04}, tb.colScale, 1e-15)
		require.InDelta(t, 1.0, tb.t.At(0, 1), 1e-12)
		require.InDelta(t, 1.0, tb.t.At(1, 1), 1e-12)
		require.InDelta(t, 2.0, tb.t.At(0, tb.rhs), 1e-12)

		x, status, err := tb.solve(context.Background())
		require.NoError(t, err)
		require.Equal(t, lp.StatusNotSolved, status)
		require.InDelta(t, 1.0, x[0], tol)
		require.InDelta(t, 25.0, x[1], tol)
	})
}

func TestTableau_Limits(t *testing.T) {
	sf := &standardForm{
		c: []float64{-1, -1, 0, 0},
		a: []float64{
			1, 2, 1, 0,
			3, 1, 0, 1,
		},
		b: []float64{4, 6},
	}

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, status, err := newTableau(sf, DefaultTolerance).solve(ctx)
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, lp.StatusAborted, status)
	})

	t.Run("iteration limit", func(t *testing.T) {
		tb := newTableau(sf, DefaultTolerance)
		tb.maxPivots = 1

		_, status, err := tb.solve(context.Background())
		require.ErrorIs(t, err, ErrIterationLimit)
		require.Equal(t, lp.StatusFailed, status)
	})

	t.Run("optimal", func(t *testing.T) {
		x, status, err := newTableau(sf, DefaultTolerance).solve(context.Background())
		require.NoError(t, err)
		require.Equal(t, lp.StatusNotSolved, status)
		require.InDelta(t, 1.6, x[0], tol)
		require.InDelta(t, 1.2, x[1], tol)
	})
}
