package curve

import (
	"fmt"
	"slices"
	"strings"
)

// Basis is a family of functions φ₀, φ₁, ... over which a fit is expressed.
// A fit of degree N uses the first N+1 members.
type Basis interface {
	// Name identifies the basis ("monomial", "chebyshev").
	Name() string
	// Fill writes φ₀(x)..φ_{len(dst)-1}(x) into dst.
	Fill(x float64, dst []float64)
}

// Monomial is the basis 1, x, x², ...
type Monomial struct{}

func (Monomial) Name() string { return "monomial" }

func (Monomial) Fill(x float64, dst []float64) {
	v := 1.0
	for j := range dst {
		dst[j] = v
		v *= x
	}
}

// Chebyshev is the basis T₀, T₁, ... of Chebyshev polynomials of the first
// kind, generated by T_{k+1}(x) = 2x·T_k(x) - T_{k-1}(x). It is better
// conditioned than Monomial when x is scaled to [-1, 1].
type Chebyshev struct{}

func (Chebyshev) Name() string { return "chebyshev" }

func (Chebyshev) Fill(x float64, dst []float64) {
	if len(dst) == 0 {
		return
	}
	dst[0] = 1
	if len(dst) == 1 {
		return
	}
	dst[1] = x
	for k := 2; k < len(dst); k++ {
		dst[k] = 2*x*dst[k-1] - dst[k-2]
	}
}

var bases = map[string]Basis{
	"monomial":  Monomial{},
	"chebyshev": Chebyshev{},
}

// ParseBasis returns the built-in basis with the given case-insensitive name.
func ParseBasis(name string) (Basis, error) {
	if b, ok := bases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return b, nil
	}

	return nil, fmt.Errorf("curve: unknown basis %q (want one of %s)", name, strings.Join(BasisNames(), ", "))
}

// BasisNames lists the built-in basis names in sorted order.
func BasisNames() []string {
	names := make([]string, 0, len(bases))
	for name := range bases {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
