package solver

import (
	"math"
	"testing"
)

func rootsEqual(t *testing.T, got, want []float64, epsilon float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d roots %v, want %d roots %v", len(got), got, len(want), want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Fatalf("root %d = %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestQuadraticRoots(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		want    []float64
	}{
		{"two roots", 1, -3, 2, []float64{1, 2}},
		{"no real roots", 1, 0, 1, nil},
		{"linear", 0, 2, -4, []float64{2}},
		{"constant", 0, 0, 5, nil},
		{"pure square", 2, 0, -8, []float64{-2, 2}},
		{"zero constant", 1, -3, 0, []float64{0, 3}},
		{"zero constant negative ratio", 1, 3, 0, []float64{-3, 0}},
		{"double root", 1, -4, 4, []float64{2, 2}},
		{"negative leading", -1, 3, -2, []float64{1, 2}},
		{"tiny constant", 1, 0, 1e-20, []float64{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootsEqual(t, QuadraticRoots(tt.a, tt.b, tt.c), tt.want, 1e-12)
		})
	}
}

func TestCubicRoots(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d float64
		want       []float64
	}{
		{"three distinct", 1, -6, 11, -6, []float64{1, 2, 3}},
		{"triple root", 1, 0, 0, -8, []float64{2, 2, 2}},
		{"negative triple root", 1, 0, 0, 1, []float64{-1, -1, -1}},
		{"scaled", 2, -4, -22, 24, []float64{-3, 1, 4}},
		{"single real", 1, 1, 1, 1, []float64{-1}},
		{"zero root factor", 1, -3, 2, 0, []float64{0, 1, 2}},
		{"degenerate to quadratic", 0, 1, -3, 2, []float64{1, 2}},
		{"all zero below leading", 3, 0, 0, 0, []float64{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootsEqual(t, CubicRoots(tt.a, tt.b, tt.c, tt.d), tt.want, 1e-10)
		})
	}
}

func TestQuarticRoots(t *testing.T) {
	tests := []struct {
		name          string
		a, b, c, d, e float64
		want          []float64
	}{
		{"four positive", 1, -10, 35, -50, 24, []float64{1, 2, 3, 4}},
		{"biquadratic", 1, 0, -5, 0, 4, []float64{-2, -1, 1, 2}},
		{"mixed signs", 1, -4, -7, 22, 24, []float64{-2, -1, 3, 4}},
		{"neumark pattern 1", 1, 8.5, 18.5, 3.5, -7.5, []float64{-5, -3, -1, 0.5}},
		{"neumark pattern 2", 1, 5.5, 0, -11.5, 5, []float64{-5, -2, 0.5, 1}},
		{"neumark pattern 5", 1, 1.5, -14, 16.5, -5, []float64{-5, 0.5, 1, 2}},
		{"neumark pattern 11", 1, -11, 32, -4, -48, []float64{-1, 2, 4, 6}},
		{"two real", 2, 0, 0, 0, -2, []float64{-1, 1}},
		{"no real roots", 1, 0, 0, 0, 1, nil},
		{"falls back to cubic", 0, 1, -6, 11, -6, []float64{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootsEqual(t, QuarticRoots(tt.a, tt.b, tt.c, tt.d, tt.e), tt.want, 1e-8)
		})
	}
}

func TestQuarticSignPatternDispatch(t *testing.T) {
	tests := []struct {
		a3, a2, a1, a0 float64
		want           int
	}{
		{1, 1, 1, 1, 0},
		{1, 1, 1, -1, 1},
		{1, 1, -1, 1, 2},
		{1, -1, 1, -1, 5},
		{-1, 1, 1, 1, 8},
		{-1, 1, -1, -1, 11},
		{-1, -1, -1, -1, 15},
	}
	for _, tt := range tests {
		if got := quarticSignPattern(tt.a3, tt.a2, tt.a1, tt.a0); got != tt.want {
			t.Errorf("quarticSignPattern(%v, %v, %v, %v) = %d, want %d", tt.a3, tt.a2, tt.a1, tt.a0, got, tt.want)
		}
	}

	neumark := []int{1, 2, 5, 8, 11}
	for k, m := range quarticMethods {
		isNeumark := false
		for _, n := range neumark {
			if k == n {
				isNeumark = true
			}
		}
		if isNeumark != (m == quarticNeumark) {
			t.Errorf("pattern %d mapped to %v", k, m)
		}
	}
}

func TestDiscriminants(t *testing.T) {
	if got := QuadraticDiscriminant(1, -3, 2); got != 1 {
		t.Errorf("QuadraticDiscriminant = %v, want 1", got)
	}
	if got := CubicDiscriminant(1, -6, 11, -6); math.Abs(got-4) > 1e-9 {
		t.Errorf("CubicDiscriminant = %v, want 4", got)
	}
	// (x-1)(x-2)(x-3)(x-4): product of squared root differences is 144.
	if got := QuarticDiscriminant(1, -10, 35, -50, 24); math.Abs(got-144) > 1e-6 {
		t.Errorf("QuarticDiscriminant = %v, want 144", got)
	}
}
