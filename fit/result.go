package fit

import (
	"fmt"
	"time"

	"github.com/arloliu/lpfit/curve"
	"github.com/arloliu/lpfit/lp"
	"github.com/arloliu/lpfit/metric"
)

// Result is the outcome of one Fit call. It is not modified after Fit returns.
type Result struct {
	// Basis is the basis the coefficients refer to.
	Basis curve.Basis
	// Degree is the highest basis index; len(Coefficients) == Degree+1.
	Degree int
	// Coefficients in ascending basis order.
	Coefficients []float64
	// Objective is the norm the linear program minimized.
	Objective Objective
	// ObjectiveValue is the optimum reported by the solver.
	ObjectiveValue float64
	// Errors holds every metric.Names entry, plus metric.Reference when a
	// reference curve was given, all measured on the fitted points.
	Errors metric.Report
	// RSquared is the coefficient of determination of the fit.
	RSquared float64
	// Reference is nil unless a reference curve was given.
	Reference *ReferenceComparison
	Status    lp.Status
	Backend   string
	Elapsed   time.Duration
}

// ReferenceComparison describes the reference curve on the same points.
type ReferenceComparison struct {
	Curve curve.Curve
	// Errors of the reference curve itself.
	Errors metric.Report
	// MaxDeviation is max |fit(x_i) - ref(x_i)|.
	MaxDeviation float64
}

func newResult(basis curve.Basis, degree int, coeffs []float64, objective Objective, points []curve.Point, ref curve.Curve) *Result {
	res := &Result{
		Basis:        basis,
		Degree:       degree,
		Coefficients: coeffs,
		Objective:    objective,
	}

	fitted := res.Curve()
	res.RSquared = metric.RSquared(points, fitted)
	if ref == nil {
		res.Errors = metric.Evaluate(points, fitted)
		return res
	}

	res.Errors = metric.Compare(points, fitted, ref)
	res.Reference = &ReferenceComparison{
		Curve:        ref,
		Errors:       metric.Evaluate(points, ref),
		MaxDeviation: res.Errors[metric.Reference],
	}

	return res
}

// Curve returns the fitted curve.
func (r *Result) Curve() curve.Expansion {
	return curve.Expansion{Basis: r.Basis, Coefficients: r.Coefficients}
}

// Polynomial returns the fit in monomial form, if the basis supports it.
func (r *Result) Polynomial() (curve.Polynomial, bool) {
	return r.Curve().Polynomial()
}

// MinimizedError returns the value of the metric the objective minimized.
func (r *Result) MinimizedError() float64 {
	return r.Errors[r.Objective.Metric()]
}

func (r *Result) String() string {
	return fmt.Sprintf("Result{Objective: %s, Formula: %s, R²: %.4f, Errors: %s}",
		r.Objective, r.Curve(), r.RSquared, r.Errors)
}
