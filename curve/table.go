package curve

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

var (
	// ErrEmptyTable is returned when a Table is built from no points.
	ErrEmptyTable = errors.New("curve: table has no knots")
	// ErrDuplicateKnot is returned when two table points share an x value.
	ErrDuplicateKnot = errors.New("curve: duplicate table knot")
	// ErrNonFinite is returned for NaN or infinite coordinates.
	ErrNonFinite = errors.New("curve: non-finite coordinate")
)

// Table is a reference curve given as a value table. Between knots it
// interpolates linearly; outside the knot range it holds the nearest end value.
type Table struct {
	xs []float64
	ys []float64
}

var _ Curve = (*Table)(nil)

// NewTable builds a Table from points in any order. The input is not modified.
func NewTable(points []Point) (*Table, error) {
	if len(points) == 0 {
		return nil, ErrEmptyTable
	}

	sorted := slices.Clone(points)
	for _, p := range sorted {
		if !p.IsFinite() {
			return nil, fmt.Errorf("%w: knot %s", ErrNonFinite, p)
		}
	}
	slices.SortFunc(sorted, func(a, b Point) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		default:
			return 0
		}
	})

	xs, ys := XY(sorted)
	for i := 1; i < len(xs); i++ {
		if xs[i] == xs[i-1] {
			return nil, fmt.Errorf("%w: x=%g", ErrDuplicateKnot, xs[i])
		}
	}

	return &Table{xs: xs, ys: ys}, nil
}

// Len returns the number of knots.
func (t *Table) Len() int { return len(t.xs) }

func (t *Table) Eval(x float64) float64 {
	n := len(t.xs)
	i := sort.SearchFloat64s(t.xs, x)
	switch {
	case i < n && t.xs[i] == x:
		return t.ys[i]
	case i == 0:
		return t.ys[0]
	case i == n:
		return t.ys[n-1]
	}

	x0, x1 := t.xs[i-1], t.xs[i]
	y0, y1 := t.ys[i-1], t.ys[i]

	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}
