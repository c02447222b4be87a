package curve

import (
	"math"
	"strconv"
	"strings"
)

// Curve is a real function of one variable.
type Curve interface {
	Eval(x float64) float64
}

// Func adapts an ordinary function to Curve.
type Func func(x float64) float64

func (f Func) Eval(x float64) float64 { return f(x) }

// Polynomial holds monomial coefficients in ascending order: p[j] multiplies x^j.
type Polynomial []float64

var _ Curve = Polynomial(nil)

// Eval evaluates p at x with Horner's rule. The empty polynomial is zero.
func (p Polynomial) Eval(x float64) float64 {
	var y float64
	for j := len(p) - 1; j >= 0; j-- {
		y = y*x + p[j]
	}

	return y
}

// Degree returns len(p)-1, or -1 for the empty polynomial.
func (p Polynomial) Degree() int {
	return len(p) - 1
}

// String renders p as a formula, for example "y = 0.2857 + 1.524x - 3x^2".
func (p Polynomial) String() string {
	return formula(p, func(j int) string {
		switch j {
		case 0:
			return ""
		case 1:
			return "x"
		default:
			return "x^" + strconv.Itoa(j)
		}
	})
}

// Expansion is a linear combination of basis functions.
type Expansion struct {
	Basis        Basis
	Coefficients []float64
}

var _ Curve = Expansion{}

// Eval returns Σ c_j·φ_j(x).
func (e Expansion) Eval(x float64) float64 {
	if _, ok := e.Basis.(Monomial); ok {
		return Polynomial(e.Coefficients).Eval(x)
	}

	phi := make([]float64, len(e.Coefficients))
	e.Basis.Fill(x, phi)

	var y float64
	for j, c := range e.Coefficients {
		y += c * phi[j]
	}

	return y
}

// Degree returns the highest basis index used.
func (e Expansion) Degree() int {
	return len(e.Coefficients) - 1
}

// Polynomial converts the expansion to monomial form. ok is false for bases
// this package does not know how to convert.
func (e Expansion) Polynomial() (p Polynomial, ok bool) {
	switch e.Basis.(type) {
	case Monomial:
		return append(Polynomial(nil), e.Coefficients...), true
	case Chebyshev:
		return chebyshevToMonomial(e.Coefficients), true
	default:
		return nil, false
	}
}

func (e Expansion) String() string {
	if p, ok := e.Polynomial(); ok {
		return p.String()
	}

	name := e.Basis.Name()

	return formula(e.Coefficients, func(j int) string {
		return "·" + name + "_" + strconv.Itoa(j)
	})
}

// chebyshevToMonomial expands Σ c_k·T_k into ascending monomial coefficients.
func chebyshevToMonomial(c []float64) Polynomial {
	n := len(c)
	out := make(Polynomial, n)
	if n == 0 {
		return out
	}

	prev := make([]float64, n) // T_{k-1}
	cur := make([]float64, n)  // T_k
	prev[0] = 1
	out[0] = c[0]
	if n == 1 {
		return out
	}
	cur[1] = 1
	out[1] += c[1]

	for k := 2; k < n; k++ {
		next := make([]float64, n)
		for j := range n - 1 {
			next[j+1] += 2 * cur[j]
		}
		for j := range n {
			next[j] -= prev[j]
		}
		for j := range n {
			out[j] += c[k] * next[j]
		}
		prev, cur = cur, next
	}

	return out
}

func formula(coeffs []float64, term func(j int) string) string {
	if len(coeffs) == 0 {
		return "y = 0"
	}

	var sb strings.Builder
	sb.WriteString("y = ")
	for j, c := range coeffs {
		mag := strconv.FormatFloat(math.Abs(c), 'g', 4, 64)
		switch {
		case j == 0 && c < 0:
			sb.WriteString("-" + mag)
		case j == 0:
			sb.WriteString(mag)
		case c < 0:
			sb.WriteString(" - " + mag)
		default:
			sb.WriteString(" + " + mag)
		}
		sb.WriteString(term(j))
	}

	return sb.String()
}
