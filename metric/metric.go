// Package metric computes error measurements of a curve against sample points.
//
// Every metric is a pure function of (points, curve); none of them know how
// the curve was produced. Evaluate runs all of them so fits made under
// different objectives can be compared side by side.
package metric

import (
	"fmt"
	"math"
	"strings"

	"github.com/arloliu/lpfit/curve"
)

// Name identifies an error metric.
type Name string

const (
	// L1 is the sum of absolute residuals.
	L1 Name = "l1"
	// Linf is the largest absolute residual (minimax error).
	Linf Name = "linf"
	// MAE is the mean absolute residual.
	MAE Name = "mae"
	// SSE is the sum of squared residuals.
	SSE Name = "sse"
	// RMSE is the root mean squared residual.
	RMSE Name = "rmse"
	// Reference is the largest deviation between a fit and a reference curve,
	// measured at the sample x values. Only present when a reference is given.
	Reference Name = "reference"
)

// Func computes one metric.
type Func func(points []curve.Point, c curve.Curve) float64

var funcs = map[Name]Func{
	L1:   SumAbs,
	Linf: MaxAbs,
	MAE:  MeanAbs,
	SSE:  SumSquares,
	RMSE: RootMeanSquare,
}

// order is the display order of the error metrics.
var order = []Name{L1, Linf, MAE, SSE, RMSE}

var aliases = map[string]Name{
	"l1":        L1,
	"lad":       L1,
	"linf":      Linf,
	"minimax":   Linf,
	"chebyshev": Linf,
	"max":       Linf,
	"mae":       MAE,
	"sse":       SSE,
	"rmse":      RMSE,
}

// Names returns the error metrics computed by Evaluate, in display order.
func Names() []Name {
	return append([]Name(nil), order...)
}

// Lookup returns the function for name.
func Lookup(name Name) (Func, bool) {
	fn, ok := funcs[name]
	return fn, ok
}

// ParseName resolves a metric name or alias ("minimax" for linf, "lad" for l1).
func ParseName(s string) (Name, error) {
	if n, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return n, nil
	}

	return "", fmt.Errorf("metric: unknown metric %q", s)
}

// Residuals returns c(x_i) - y_i for every point.
func Residuals(points []curve.Point, c curve.Curve) []float64 {
	r := make([]float64, len(points))
	for i, p := range points {
		r[i] = c.Eval(p.X) - p.Y
	}

	return r
}

// SumAbs returns Σ|r_i|.
func SumAbs(points []curve.Point, c curve.Curve) float64 {
	var sum float64
	for _, p := range points {
		sum += math.Abs(c.Eval(p.X) - p.Y)
	}

	return sum
}

// MaxAbs returns max|r_i|, or 0 for no points.
func MaxAbs(points []curve.Point, c curve.Curve) float64 {
	var m float64
	for _, p := range points {
		m = math.Max(m, math.Abs(c.Eval(p.X)-p.Y))
	}

	return m
}

// MeanAbs returns Σ|r_i|/n, or 0 for no points.
func MeanAbs(points []curve.Point, c curve.Curve) float64 {
	if len(points) == 0 {
		return 0
	}

	return SumAbs(points, c) / float64(len(points))
}

// SumSquares returns Σr_i².
func SumSquares(points []curve.Point, c curve.Curve) float64 {
	var sum float64
	for _, p := range points {
		r := c.Eval(p.X) - p.Y
		sum += r * r
	}

	return sum
}

// RootMeanSquare returns √(Σr_i²/n), or 0 for no points.
func RootMeanSquare(points []curve.Point, c curve.Curve) float64 {
	if len(points) == 0 {
		return 0
	}

	return math.Sqrt(SumSquares(points, c) / float64(len(points)))
}

// perfectFitTol is the SSE, relative to Σy², below which a fit of constant
// data counts as perfect. LP optima carry rounding of this order.
const perfectFitTol = 1e-12

// RSquared returns the coefficient of determination 1 - SSE/SST. When the y
// values have no variance it returns 1 for a fit within perfectFitTol of the
// data and 0 otherwise.
func RSquared(points []curve.Point, c curve.Curve) float64 {
	if len(points) == 0 {
		return 0
	}

	var mean float64
	for _, p := range points {
		mean += p.Y
	}
	mean /= float64(len(points))

	var sst, sumY2 float64
	for _, p := range points {
		d := p.Y - mean
		sst += d * d
		sumY2 += p.Y * p.Y
	}

	sse := SumSquares(points, c)
	if sst == 0 {
		if sse <= perfectFitTol*math.Max(1, sumY2) {
			return 1
		}

		return 0
	}

	return 1 - sse/sst
}

// MaxDeviation returns max|a(x_i) - b(x_i)| over the x values of points.
func MaxDeviation(points []curve.Point, a, b curve.Curve) float64 {
	var m float64
	for _, p := range points {
		m = math.Max(m, math.Abs(a.Eval(p.X)-b.Eval(p.X)))
	}

	return m
}
