package curve

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a single (x, y) sample.
type Point struct {
	X float64
	Y float64
}

// String formats the point as "x,y", the same form ParsePoint accepts.
func (p Point) String() string {
	return strconv.FormatFloat(p.X, 'g', -1, 64) + "," + strconv.FormatFloat(p.Y, 'g', -1, 64)
}

// IsFinite reports whether both coordinates are finite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// ParsePoint parses "x,y" (surrounding whitespace allowed).
func ParsePoint(s string) (Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, fmt.Errorf("curve: point %q: want x,y", s)
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return Point{}, fmt.Errorf("curve: point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return Point{}, fmt.Errorf("curve: point %q: %w", s, err)
	}

	return Point{X: x, Y: y}, nil
}

// XY splits points into separate x and y columns.
func XY(points []Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}

	return xs, ys
}

// FromXY zips two equally long columns into points.
func FromXY(xs, ys []float64) ([]Point, error) {
	if len(xs) != len(ys) {
		return nil, errors.New("curve: x and y columns differ in length")
	}

	points := make([]Point, len(xs))
	for i := range xs {
		points[i] = Point{X: xs[i], Y: ys[i]}
	}

	return points, nil
}
