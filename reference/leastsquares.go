// Package reference computes closed-form reference curves for comparison with
// LP fits. Least squares has no LP formulation, so it is solved directly via a
// QR factorization of the design matrix.
package reference

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/lpfit/curve"
)

var (
	// ErrNoPoints is returned for an empty point set.
	ErrNoPoints = errors.New("reference: no points")
	// ErrNegativeDegree is returned for degree < 0.
	ErrNegativeDegree = errors.New("reference: negative degree")
	// ErrNonFinite is returned when a coordinate is NaN or infinite.
	ErrNonFinite = errors.New("reference: non-finite coordinate")
	// ErrUnderdetermined is returned when there are fewer points than coefficients.
	ErrUnderdetermined = errors.New("reference: fewer points than coefficients")
	// ErrIllConditioned is returned when the design matrix is (numerically) rank deficient.
	ErrIllConditioned = errors.New("reference: design matrix is rank deficient")
)

// LeastSquares returns the monomial polynomial of the given degree that
// minimizes the sum of squared residuals.
func LeastSquares(points []curve.Point, degree int) (curve.Polynomial, error) {
	e, err := Fit(points, curve.Monomial{}, degree)
	if err != nil {
		return nil, err
	}

	return curve.Polynomial(e.Coefficients), nil
}

// Fit solves the least-squares problem over an arbitrary basis. It needs at
// least degree+1 points with enough distinct x values.
func Fit(points []curve.Point, basis curve.Basis, degree int) (curve.Expansion, error) {
	switch {
	case len(points) == 0:
		return curve.Expansion{}, ErrNoPoints
	case degree < 0:
		return curve.Expansion{}, fmt.Errorf("%w: %d", ErrNegativeDegree, degree)
	case len(points) < degree+1:
		return curve.Expansion{}, fmt.Errorf("%w: %d points for %d coefficients", ErrUnderdetermined, len(points), degree+1)
	}
	distinct := make(map[float64]struct{}, len(points))
	for i, p := range points {
		if !p.IsFinite() {
			return curve.Expansion{}, fmt.Errorf("%w: point %d", ErrNonFinite, i)
		}
		distinct[p.X] = struct{}{}
	}
	if len(distinct) < degree+1 {
		return curve.Expansion{}, fmt.Errorf("%w: %d distinct x values for %d coefficients", ErrIllConditioned, len(distinct), degree+1)
	}

	a := designMatrix(points, basis, degree)
	b := mat.NewVecDense(len(points), nil)
	for i, p := range points {
		b.SetVec(i, p.Y)
	}

	var qr mat.QR
	qr.Factorize(a)

	c := mat.NewVecDense(degree+1, nil)
	if err := qr.SolveVecTo(c, false, b); err != nil {
		return curve.Expansion{}, fmt.Errorf("%w: %w", ErrIllConditioned, err)
	}

	return curve.Expansion{Basis: basis, Coefficients: mat.Col(nil, 0, c)}, nil
}

// designMatrix returns A with A[i][j] = φ_j(x_i); for the monomial basis this
// is the Vandermonde matrix.
func designMatrix(points []curve.Point, basis curve.Basis, degree int) *mat.Dense {
	a := mat.NewDense(len(points), degree+1, nil)
	row := make([]float64, degree+1)
	for i, p := range points {
		basis.Fill(p.X, row)
		a.SetRow(i, row)
	}

	return a
}
