package fit

import (
	"log/slog"
	"math"
	"time"

	"github.com/arloliu/lpfit/curve"
	"github.com/arloliu/lpfit/internal/options"
	"github.com/arloliu/lpfit/lp"
	"github.com/arloliu/lpfit/lp/simplex"
)

// DefaultBackend is the lp backend used when no solver option is given.
const DefaultBackend = simplex.Name

// Option configures a Fitter.
type Option = options.Option[*Fitter]

// Bound restricts one coefficient to [Lower, Upper].
type Bound struct {
	Lower float64
	Upper float64
}

// Free is the bound of an unconstrained coefficient.
var Free = Bound{Lower: math.Inf(-1), Upper: math.Inf(1)}

func (b Bound) valid() bool {
	return !math.IsNaN(b.Lower) && !math.IsNaN(b.Upper) && b.Lower <= b.Upper &&
		!math.IsInf(b.Lower, 1) && !math.IsInf(b.Upper, -1)
}

// WithSolver selects the lp backend registered under name.
func WithSolver(name string) Option {
	return options.New(func(f *Fitter) error {
		if name == "" {
			return invalid("solver", "empty backend name")
		}
		f.backend = name
		f.factory = nil

		return nil
	})
}

// WithSolverFactory injects a solver factory directly, bypassing the
// registry. The backend is reported as "custom".
func WithSolverFactory(factory lp.Factory) Option {
	return options.New(func(f *Fitter) error {
		if factory == nil {
			return invalid("solver", "nil factory")
		}
		f.backend = "custom"
		f.factory = factory

		return nil
	})
}

// WithTimeLimit bounds each solve. It is passed to backends implementing
// lp.TimeLimiter and enforced through the context otherwise. Zero disables it.
func WithTimeLimit(d time.Duration) Option {
	return options.New(func(f *Fitter) error {
		if d < 0 {
			return invalid("time limit", "negative duration %s", d)
		}
		f.timeLimit = d

		return nil
	})
}

// WithCoefficientBounds applies the same bounds to every coefficient.
func WithCoefficientBounds(lower, upper float64) Option {
	return options.New(func(f *Fitter) error {
		b := Bound{Lower: lower, Upper: upper}
		if !b.valid() {
			return invalid("coefficient bounds", "[%g, %g]", lower, upper)
		}
		f.uniform = &b
		f.bounds = nil

		return nil
	})
}

// WithBounds sets per-coefficient bounds; bounds[j] applies to coefficient j.
// Coefficients without an entry are free.
func WithBounds(bounds []Bound) Option {
	return options.New(func(f *Fitter) error {
		for j, b := range bounds {
			if !b.valid() {
				return invalid("coefficient bounds", "coefficient %d: [%g, %g]", j, b.Lower, b.Upper)
			}
		}
		f.bounds = append([]Bound(nil), bounds...)
		f.uniform = nil

		return nil
	})
}

// WithBasis selects the polynomial basis. The default is curve.Monomial.
func WithBasis(basis curve.Basis) Option {
	return options.New(func(f *Fitter) error {
		if basis == nil {
			return invalid("basis", "nil basis")
		}
		f.basis = basis

		return nil
	})
}

// WithLogger sets the logger for solve diagnostics. Nil restores the default,
// which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(f *Fitter) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		f.logger = logger
	})
}
