// Package fit fits polynomial curves to points by linear programming.
//
// Two error norms can be minimized exactly with a linear program:
//
//   - L1: the sum of absolute residuals. Each point i gets a slack e_i >= 0
//     with e_i >= r_i and e_i >= -r_i; the objective is Σ e_i.
//   - Minimax: the largest absolute residual. All points share one slack t
//     with t >= r_i and t >= -r_i; the objective is t.
//
// Here r_i = Σ_j c_j·φ_j(x_i) - y_i for the coefficients c_j of the chosen
// basis φ (monomials by default). After the solve every error metric of the
// metric package is recomputed from the coefficients, so fits under different
// objectives, and an optional closed-form reference curve such as the
// least-squares fit, can be compared on equal terms.
//
// The linear program is handed to an lp backend; the default "simplex" backend
// is a two-phase tableau simplex. Tests can inject lp/lptest through
// WithSolverFactory.
//
// Example:
//
//	f, err := fit.New(fit.WithTimeLimit(time.Second))
//	if err != nil {
//		return err
//	}
//	res, err := f.Fit(ctx, points, 1, fit.Minimax, nil)
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.Coefficients, res.Errors[metric.Linf])
package fit
