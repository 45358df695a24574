// Package solver finds the real roots of quadratic, cubic and quartic
// polynomials. Every solver is a pure function: coefficients are given highest
// degree first and the roots come back in ascending order, or nil when the
// polynomial has no real root.
package solver

import (
	"math"

	"github.com/Carmen-Shannon/oxy-globe/common"
)

// QuadraticDiscriminant returns b² - 4ac.
func QuadraticDiscriminant(a, b, c float64) float64 {
	return b*b - 4*a*c
}

// QuadraticRoots returns the real roots of a·x² + b·x + c = 0.
//
// A zero leading coefficient degrades to the linear equation b·x + c = 0; a
// constant equation has no roots. Near-cancelling discriminant terms are
// treated as an exact double root.
//
// Parameters:
//   - a, b, c: polynomial coefficients, highest degree first
//
// Returns:
//   - []float64: roots in ascending order, or nil if none are real
func QuadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}

	if b == 0 {
		if c == 0 {
			return []float64{0, 0}
		}

		cMagnitude := math.Abs(c)
		aMagnitude := math.Abs(a)
		if cMagnitude < aMagnitude && cMagnitude/aMagnitude < common.Epsilon14 {
			return []float64{0, 0}
		}
		if cMagnitude > aMagnitude && aMagnitude/cMagnitude < common.Epsilon14 {
			return nil
		}

		ratio := -c / a
		if ratio < 0 {
			return nil
		}
		root := math.Sqrt(ratio)
		return []float64{-root, root}
	}

	if c == 0 {
		ratio := -b / a
		if ratio < 0 {
			return []float64{ratio, 0}
		}
		return []float64{0, ratio}
	}

	radicand := common.AddWithCancellationCheck(b*b, -4*a*c, common.Epsilon14)
	if radicand < 0 {
		return nil
	}

	q := -0.5 * common.AddWithCancellationCheck(b, common.Sign(b)*math.Sqrt(radicand), common.Epsilon14)
	r0, r1 := q/a, c/q
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	return []float64{r0, r1}
}
