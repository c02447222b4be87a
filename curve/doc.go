// Package curve holds the value types shared by the fitter and its callers:
// sample points, polynomial bases, fitted expansions and reference curves.
//
// A Curve is anything that can be evaluated at x. The package provides four:
//
//   - Polynomial: ascending monomial coefficients, evaluated with Horner's rule.
//   - Expansion: coefficients over an arbitrary Basis (Monomial or Chebyshev).
//   - Func: adapts a closure, for closed-form reference curves.
//   - Table: a value table with linear interpolation between knots.
//
// Example:
//
//	p := curve.Polynomial{0.2857, 1.5238} // y = 0.2857 + 1.5238x
//	y := p.Eval(3)
package curve
