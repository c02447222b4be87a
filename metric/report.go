package metric

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/lpfit/curve"
)

// Report maps metric names to values.
type Report map[Name]float64

// Evaluate computes every error metric of c against points.
func Evaluate(points []curve.Point, c curve.Curve) Report {
	r := make(Report, len(funcs)+1)
	for name, fn := range funcs {
		r[name] = fn(points, c)
	}

	return r
}

// Compare evaluates fitted against points and adds the Reference entry, the
// largest deviation between fitted and ref at the sample x values.
func Compare(points []curve.Point, fitted, ref curve.Curve) Report {
	r := Evaluate(points, fitted)
	r[Reference] = MaxDeviation(points, fitted, ref)

	return r
}

// Get returns the value for name and whether it is present.
func (r Report) Get(name Name) (float64, bool) {
	v, ok := r[name]
	return v, ok
}

// Names returns the names present in r: known metrics in display order first,
// then any others sorted.
func (r Report) Names() []Name {
	names := make([]Name, 0, len(r))
	for _, n := range order {
		if _, ok := r[n]; ok {
			names = append(names, n)
		}
	}

	var extra []Name
	for n := range r {
		if !slices.Contains(order, n) {
			extra = append(extra, n)
		}
	}
	slices.Sort(extra)

	return append(names, extra...)
}

// String renders r as "l1=1.5 linf=0.5 ...".
func (r Report) String() string {
	var sb strings.Builder
	for i, n := range r.Names() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%.6g", n, r[n])
	}

	return sb.String()
}
