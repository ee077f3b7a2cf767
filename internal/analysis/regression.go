// Package analysis holds the small numeric helpers behind the dashboard
// charts: a least-squares trend line and a centered rolling mean.
package analysis

import (
	"gonum.org/v1/gonum/stat"
)

// Line is y = Slope*x + Intercept.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// LinearFit fits an ordinary least-squares line through (i, ys[i]).
// It reports false when there are fewer than two points.
func LinearFit(ys []float64) (Line, bool) {
	if len(ys) < 2 {
		return Line{}, false
	}

	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i)
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	return Line{Slope: slope, Intercept: intercept}, true
}

// Fitted returns the line evaluated at every index of ys.
func (l Line) Fitted(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = l.At(float64(i))
	}
	return out
}
