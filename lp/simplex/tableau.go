package simplex

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/lpfit/lp"
)

// ErrIterationLimit is returned with StatusFailed when the pivot budget of a
// solve is exhausted.
var ErrIterationLimit = errors.New("simplex: iteration limit reached")

const (
	// ctxCheckInterval is the number of pivots between context checks.
	ctxCheckInterval = 64

	// blandAfter is the length of a run of degenerate pivots after which the
	// entering column is picked by Bland's rule until the objective moves.
	blandAfter = 32

	// phaseOneTol is the largest phase one objective, relative to the scaled
	// right-hand side, still accepted as feasible.
	phaseOneTol = 1e-8
)

// tableau is a dense two-phase simplex tableau over a standard form. Rows
// 0..m-1 hold B⁻¹[A | I_art | b], row m holds the reduced costs with the
// negated objective value in its last column.
//
// Rows and columns of A are equilibrated before the first pivot: every row
// and then every column is divided by its largest magnitude, so monomial
// design columns of very different size do not drive the pivot tolerances.
type tableau struct {
	t    *mat.Dense
	m, n int // constraint rows, structural columns
	nArt int
	rhs  int // column index of the right-hand side

	basis   []int  // basic column per row
	isBasic []bool // per column
	active  []bool // false for rows found redundant after phase one

	a        *mat.Dense // equilibrated constraint matrix
	b        []float64  // equilibrated right-hand side
	cost     []float64  // scaled phase two costs over structural columns
	colScale []float64  // x_j = x'_j / colScale[j]

	tol       float64
	pivots    int
	maxPivots int
}

func newTableau(sf *standardForm, tol float64) *tableau {
	m, n := sf.rows(), len(sf.c)

	a := mat.NewDense(m, n, append([]float64(nil), sf.a...))
	b := append([]float64(nil), sf.b...)
	for i := range m {
		r := a.RawRowView(i)
		if s := floats.Norm(r, math.Inf(1)); s > 0 {
			floats.Scale(1/s, r)
			b[i] /= s
		}
	}

	tb := &tableau{
		m:        m,
		n:        n,
		a:        a,
		b:        b,
		basis:    make([]int, m),
		active:   make([]bool, m),
		cost:     make([]float64, n),
		colScale: make([]float64, n),
		tol:      tol,
	}

	for j := range n {
		s := mat.Norm(a.ColView(j), math.Inf(1))
		if s == 0 {
			s = 1
		}
		tb.colScale[j] = s
		tb.cost[j] = sf.c[j] / s
		for i := range m {
			a.Set(i, j, a.At(i, j)/s)
		}
	}

	// A column with a single positive entry is a ready-made basic column for
	// its row; the remaining rows get an artificial.
	for i := range tb.basis {
		tb.basis[i] = -1
		tb.active[i] = true
	}
	for j := range n {
		row, single := -1, true
		for i := range m {
			if a.At(i, j) == 0 {
				continue
			}
			if row >= 0 {
				single = false
				break
			}
			row = i
		}
		if single && row >= 0 && a.At(row, j) > 0 && tb.basis[row] < 0 {
			tb.basis[row] = j
		}
	}
	for i := range m {
		if tb.basis[i] < 0 {
			tb.basis[i] = n + tb.nArt
			tb.nArt++
		}
	}

	cols := n + tb.nArt + 1
	tb.rhs = cols - 1
	tb.t = mat.NewDense(m+1, cols, nil)
	tb.isBasic = make([]bool, cols-1)
	for i := range m {
		r := tb.t.RawRowView(i)
		copy(r, a.RawRowView(i))
		r[tb.rhs] = b[i]

		k := tb.basis[i]
		tb.isBasic[k] = true
		if k >= n {
			r[k] = 1
		} else if v := r[k]; v != 1 {
			floats.Scale(1/v, r)
		}
	}
	tb.maxPivots = max(1000, 50*(m+cols))

	return tb
}

// solve runs both phases and returns the standard-form solution. The status
// is StatusNotSolved when an optimum was found.
func (tb *tableau) solve(ctx context.Context) ([]float64, lp.Status, error) {
	if status, err := tb.phaseOne(ctx); status != lp.StatusNotSolved {
		return nil, status, err
	}
	if status, err := tb.phaseTwo(ctx); status != lp.StatusNotSolved {
		return nil, status, err
	}

	return tb.solution(), lp.StatusNotSolved, nil
}

// phaseOne minimizes the sum of the artificials and then drives every
// artificial out of the basis. Rows whose artificial cannot leave are linearly
// dependent on the others and are deactivated.
func (tb *tableau) phaseOne(ctx context.Context) (lp.Status, error) {
	if tb.nArt == 0 {
		return lp.StatusNotSolved, nil
	}

	cost := make([]float64, tb.n+tb.nArt)
	for j := tb.n; j < len(cost); j++ {
		cost[j] = 1
	}
	tb.setObjective(cost)

	if status, err := tb.iterate(ctx, len(cost)); status != lp.StatusNotSolved {
		// phase one is bounded below by zero
		if status == lp.StatusUnbounded {
			return lp.StatusFailed, errors.New("simplex: phase one reported unbounded")
		}

		return status, err
	}

	var bmax float64
	for i := range tb.m {
		bmax = math.Max(bmax, math.Abs(tb.t.At(i, tb.rhs)))
	}
	if -tb.t.At(tb.m, tb.rhs) > phaseOneTol*math.Max(1, bmax) {
		return lp.StatusInfeasible, nil
	}

	for i := range tb.m {
		if tb.basis[i] < tb.n {
			continue
		}
		r := tb.t.RawRowView(i)
		q, best := -1, tb.tol
		for j := range tb.n {
			if !tb.isBasic[j] && math.Abs(r[j]) > best {
				q, best = j, math.Abs(r[j])
			}
		}
		if q < 0 {
			tb.active[i] = false
			continue
		}
		tb.pivot(i, q)
	}

	return lp.StatusNotSolved, nil
}

func (tb *tableau) phaseTwo(ctx context.Context) (lp.Status, error) {
	cost := make([]float64, tb.n+tb.nArt)
	copy(cost, tb.cost)
	tb.setObjective(cost)

	return tb.iterate(ctx, tb.n)
}

// setObjective loads cost into the objective row and prices out the basis.
func (tb *tableau) setObjective(cost []float64) {
	obj := tb.t.RawRowView(tb.m)
	clear(obj)
	copy(obj, cost)
	for i := range tb.m {
		if !tb.active[i] {
			continue
		}
		if c := cost[tb.basis[i]]; c != 0 {
			floats.AddScaled(obj, -c, tb.t.RawRowView(i))
		}
	}
}

// iterate pivots until no column below limit has a negative reduced cost.
// Entering columns follow Dantzig's rule; a long run of degenerate pivots
// switches to Bland's rule, which cannot cycle.
func (tb *tableau) iterate(ctx context.Context, limit int) (lp.Status, error) {
	degenerate := 0
	for {
		if tb.pivots%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return lp.StatusAborted, err
			}
		}
		if tb.pivots >= tb.maxPivots {
			return lp.StatusFailed, ErrIterationLimit
		}

		q := tb.entering(limit, degenerate >= blandAfter)
		if q < 0 {
			return lp.StatusNotSolved, nil
		}
		r := tb.leaving(q)
		if r < 0 {
			return lp.StatusUnbounded, nil
		}

		if tb.t.At(r, tb.rhs) <= tb.tol {
			degenerate++
		} else {
			degenerate = 0
		}
		tb.pivot(r, q)
	}
}

func (tb *tableau) entering(limit int, bland bool) int {
	obj := tb.t.RawRowView(tb.m)
	q, best := -1, -tb.tol
	for j := range limit {
		if tb.isBasic[j] || obj[j] >= best {
			continue
		}
		if bland {
			return j
		}
		q, best = j, obj[j]
	}

	return q
}

// leaving runs the ratio test on column q. Ties go to the row whose basic
// column has the smallest index.
func (tb *tableau) leaving(q int) int {
	r := -1
	var best float64
	for i := range tb.m {
		if !tb.active[i] {
			continue
		}
		v := tb.t.At(i, q)
		if v <= tb.tol {
			continue
		}
		ratio := math.Max(tb.t.At(i, tb.rhs), 0) / v
		switch {
		case r < 0, ratio < best-tb.tol*math.Max(1, best):
			r, best = i, ratio
		case ratio <= best+tb.tol*math.Max(1, best) && tb.basis[i] < tb.basis[r]:
			r = i
		}
	}

	return r
}

func (tb *tableau) pivot(r, q int) {
	pr := tb.t.RawRowView(r)
	floats.Scale(1/pr[q], pr)
	pr[q] = 1

	for i := 0; i <= tb.m; i++ {
		if i == r || (i < tb.m && !tb.active[i]) {
			continue
		}
		row := tb.t.RawRowView(i)
		if f := row[q]; f != 0 {
			floats.AddScaled(row, -f, pr)
			row[q] = 0
		}
	}

	tb.isBasic[tb.basis[r]] = false
	tb.isBasic[q] = true
	tb.basis[r] = q
	tb.pivots++
}

// solution returns the basic values with the column scaling undone. The
// values are recomputed by solving B·x_B = b against the equilibrated matrix,
// which drops the rounding accumulated over the pivots; the tableau column is
// used when the basis matrix turns out singular.
func (tb *tableau) solution() []float64 {
	rows, basis := tb.feasibleBasis()

	xb := make([]float64, len(rows))
	for k, i := range rows {
		xb[k] = tb.t.At(i, tb.rhs)
	}

	if len(rows) > 0 {
		bm := mat.NewDense(len(rows), len(rows), nil)
		rhs := mat.NewVecDense(len(rows), nil)
		for k, i := range rows {
			for l, j := range basis {
				bm.Set(k, l, tb.a.At(i, j))
			}
			rhs.SetVec(k, tb.b[i])
		}
		var sol mat.VecDense
		if err := sol.SolveVec(bm, rhs); err == nil {
			xb = sol.RawVector().Data
		}
	}

	x := make([]float64, tb.n)
	for k, j := range basis {
		x[j] = math.Max(xb[k], 0) / tb.colScale[j]
	}

	return x
}

// feasibleBasis returns the active rows and their basic columns. Once phase
// one has driven out every artificial, all of them are structural.
func (tb *tableau) feasibleBasis() (rows, basis []int) {
	for i, k := range tb.basis {
		if tb.active[i] {
			rows = append(rows, i)
			basis = append(basis, k)
		}
	}

	return rows, basis
}
