package simplex

import (
	"math"

	"github.com/arloliu/lpfit/lp"
)

// feasTol decides whether an empty row is satisfied by its right-hand side.
const feasTol = 1e-9

// part maps a model variable onto one standard-form column: x += sign·col.
// col is -1 when the column was eliminated (fixed at zero).
type part struct {
	col  int
	sign float64
}

type varMap struct {
	offset float64
	parts  []part
}

// standardForm is min cᵀx subject to Ax = b, x >= 0, with A stored row-major.
type standardForm struct {
	vars []varMap
	c    []float64
	a    []float64
	b    []float64

	// unbounded is set when a column with negative cost appears in no row;
	// the program is then unbounded as soon as it is feasible.
	unbounded bool
}

func (sf *standardForm) rows() int { return len(sf.b) }

type row struct {
	coef  []float64 // over structural columns
	sense lp.Sense
	rhs   float64
}

// toStandardForm rewrites m:
//
//   - a variable with a finite lower bound becomes lower + p, and a finite
//     upper bound adds the row p <= upper - lower;
//   - a variable with only an upper bound becomes upper - p;
//   - a free variable becomes p - q;
//   - every inequality gets a slack column and rows are negated so b >= 0;
//   - columns that appear in no row are dropped, since gonum rejects them.
//
// A status other than StatusNotSolved means the outcome was decided without
// running the simplex method.
func toStandardForm(m *lp.Model) (*standardForm, lp.Status) {
	sf := &standardForm{vars: make([]varMap, m.NumVariables())}

	nStruct := 0
	var bounds []row
	for i, v := range m.Variables() {
		lowFinite, highFinite := !math.IsInf(v.Lower, -1), !math.IsInf(v.Upper, 1)
		switch {
		case lowFinite:
			sf.vars[i] = varMap{offset: v.Lower, parts: []part{{col: nStruct, sign: 1}}}
			if highFinite {
				bounds = append(bounds, row{coef: unit(nStruct), sense: lp.LessEq, rhs: v.Upper - v.Lower})
			}
			nStruct++
		case highFinite:
			sf.vars[i] = varMap{offset: v.Upper, parts: []part{{col: nStruct, sign: -1}}}
			nStruct++
		default:
			sf.vars[i] = varMap{parts: []part{{col: nStruct, sign: 1}, {col: nStruct + 1, sign: -1}}}
			nStruct += 2
		}
	}

	rows := make([]row, 0, m.NumConstraints()+len(bounds))
	for _, con := range m.Constraints() {
		r := row{coef: make([]float64, nStruct), sense: con.Sense, rhs: con.RHS}
		for _, t := range con.Terms {
			vm := sf.vars[t.Var.Index()]
			r.rhs -= t.Coef * vm.offset
			for _, p := range vm.parts {
				r.coef[p.col] += t.Coef * p.sign
			}
		}
		rows = append(rows, r)
	}
	for _, r := range bounds {
		r.coef = padTo(r.coef, nStruct)
		rows = append(rows, r)
	}

	// Empty rows are either trivially satisfied or make the program infeasible.
	kept := rows[:0]
	for _, r := range rows {
		if !allZero(r.coef) {
			kept = append(kept, r)
			continue
		}
		if !emptyRowFeasible(r) {
			return nil, lp.StatusInfeasible
		}
	}
	rows = kept

	terms, dir := m.Objective()
	sgn := 1.0
	if dir == lp.Maximize {
		sgn = -1
	}
	cost := make([]float64, nStruct)
	for _, t := range terms {
		for _, p := range sf.vars[t.Var.Index()].parts {
			cost[p.col] += sgn * t.Coef * p.sign
		}
	}

	used := make([]bool, nStruct)
	for _, r := range rows {
		for j, a := range r.coef {
			if a != 0 {
				used[j] = true
			}
		}
	}
	remap := make([]int, nStruct)
	nKept := 0
	for j := range nStruct {
		if !used[j] {
			remap[j] = -1
			if cost[j] < 0 {
				sf.unbounded = true
			}

			continue
		}
		remap[j] = nKept
		nKept++
	}
	for i := range sf.vars {
		for k := range sf.vars[i].parts {
			sf.vars[i].parts[k].col = remap[sf.vars[i].parts[k].col]
		}
	}

	nSlack := 0
	for _, r := range rows {
		if r.sense != lp.Equal {
			nSlack++
		}
	}

	n := nKept + nSlack
	sf.c = make([]float64, n)
	for j, c := range cost {
		if remap[j] >= 0 {
			sf.c[remap[j]] = c
		}
	}

	sf.a = make([]float64, len(rows)*n)
	sf.b = make([]float64, len(rows))
	slack := nKept
	for i, r := range rows {
		line := sf.a[i*n : (i+1)*n]
		for j, a := range r.coef {
			if remap[j] >= 0 {
				line[remap[j]] = a
			}
		}
		switch r.sense {
		case lp.LessEq:
			line[slack] = 1
			slack++
		case lp.GreaterEq:
			line[slack] = -1
			slack++
		}

		sf.b[i] = r.rhs
		if r.rhs < 0 {
			for j := range line {
				line[j] = -line[j]
			}
			sf.b[i] = -r.rhs
		}
	}

	return sf, lp.StatusNotSolved
}

func emptyRowFeasible(r row) bool {
	switch r.sense {
	case lp.LessEq:
		return r.rhs >= -feasTol
	case lp.GreaterEq:
		return r.rhs <= feasTol
	default:
		return math.Abs(r.rhs) <= feasTol
	}
}

func unit(j int) []float64 {
	v := make([]float64, j+1)
	v[j] = 1

	return v
}

func padTo(v []float64, n int) []float64 {
	if len(v) >= n {
		return v
	}

	return append(v, make([]float64, n-len(v))...)
}

func allZero(v []float64) bool {
	for _, a := range v {
		if a != 0 {
			return false
		}
	}

	return true
}
