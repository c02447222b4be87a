package fit

import (
	"fmt"
	"strings"

	"github.com/arloliu/lpfit/curve"
	"github.com/arloliu/lpfit/lp"
	"github.com/arloliu/lpfit/metric"
)

// Objective selects the error norm minimized by the linear program.
type Objective uint8

const (
	// L1 minimizes the sum of absolute residuals (least absolute deviations).
	L1 Objective = iota + 1
	// Minimax minimizes the largest absolute residual (Chebyshev fit).
	Minimax
)

var objectiveNames = map[Objective]string{
	L1:      "l1",
	Minimax: "minimax",
}

var objectiveFromString = map[string]Objective{
	"l1":        L1,
	"lad":       L1,
	"minimax":   Minimax,
	"linf":      Minimax,
	"chebyshev": Minimax,
}

func (o Objective) String() string {
	if name, ok := objectiveNames[o]; ok {
		return name
	}

	return "unknown"
}

// Metric returns the error metric this objective minimizes. Its value on the
// fitted curve equals the LP optimum.
func (o Objective) Metric() metric.Name {
	if o == Minimax {
		return metric.Linf
	}

	return metric.L1
}

// ParseObjective accepts "l1", "lad", "minimax", "linf" and "chebyshev".
func ParseObjective(s string) (Objective, error) {
	if o, ok := objectiveFromString[strings.ToLower(strings.TrimSpace(s))]; ok {
		return o, nil
	}

	return 0, fmt.Errorf("fit: unknown objective %q", s)
}

// Objectives lists every objective in declaration order.
func Objectives() []Objective {
	return []Objective{L1, Minimax}
}

// builder adds the deviation variables, the residual constraints and the
// objective for one Objective. phi[i] holds the basis values at points[i].
type builder func(s lp.Solver, coeffs []lp.Var, phi [][]float64, points []curve.Point) error

var builders = map[Objective]builder{
	L1:      buildL1,
	Minimax: buildMinimax,
}

// buildL1: one slack e_i >= |r_i| per point, minimize Σ e_i.
func buildL1(s lp.Solver, coeffs []lp.Var, phi [][]float64, points []curve.Point) error {
	objective := make([]lp.Term, 0, len(points))
	for i, p := range points {
		e, err := s.AddVariable(fmt.Sprintf("e_%d", i), 0, lp.Inf)
		if err != nil {
			return err
		}
		if err := addDeviation(s, i, coeffs, phi[i], p.Y, e); err != nil {
			return err
		}
		objective = append(objective, lp.Term{Var: e, Coef: 1})
	}

	return s.SetObjective(objective, lp.Minimize)
}

// buildMinimax: one shared slack t >= |r_i| for all points, minimize t.
func buildMinimax(s lp.Solver, coeffs []lp.Var, phi [][]float64, points []curve.Point) error {
	t, err := s.AddVariable("t", 0, lp.Inf)
	if err != nil {
		return err
	}
	for i, p := range points {
		if err := addDeviation(s, i, coeffs, phi[i], p.Y, t); err != nil {
			return err
		}
	}

	return s.SetObjective([]lp.Term{{Var: t, Coef: 1}}, lp.Minimize)
}

// addDeviation adds the pair Σ c_j·φ_j - slack <= y and -Σ c_j·φ_j - slack <= -y,
// i.e. slack >= |residual|.
func addDeviation(s lp.Solver, i int, coeffs []lp.Var, phi []float64, y float64, slack lp.Var) error {
	over := make([]lp.Term, 0, len(coeffs)+1)
	under := make([]lp.Term, 0, len(coeffs)+1)
	for j, c := range coeffs {
		over = append(over, lp.Term{Var: c, Coef: phi[j]})
		under = append(under, lp.Term{Var: c, Coef: -phi[j]})
	}
	over = append(over, lp.Term{Var: slack, Coef: -1})
	under = append(under, lp.Term{Var: slack, Coef: -1})

	if err := s.AddConstraint(fmt.Sprintf("over_%d", i), over, lp.LessEq, y); err != nil {
		return err
	}

	return s.AddConstraint(fmt.Sprintf("under_%d", i), under, lp.LessEq, -y)
}
