package solver

import (
	"math"
)

// CubicDiscriminant returns the discriminant of a·x³ + b·x² + c·x + d.
func CubicDiscriminant(a, b, c, d float64) float64 {
	a2, b2, c2, d2 := a*a, b*b, c*c, d*d
	return 18*a*b*c*d + b2*c2 - 27*a2*d2 - 4*(a*c2*c+b2*b*d)
}

// CubicRoots returns the real roots of a·x³ + b·x² + c·x + d = 0.
//
// Zero coefficients are peeled off first so the common factored forms are
// exact; the general case is solved through the depressed cubic and reports
// one or three roots depending on the discriminant sign.
//
// Parameters:
//   - a, b, c, d: polynomial coefficients, highest degree first
//
// Returns:
//   - []float64: roots in ascending order, or nil if none are real
func CubicRoots(a, b, c, d float64) []float64 {
	if a == 0 {
		return QuadraticRoots(b, c, d)
	}

	if b == 0 {
		if c == 0 {
			if d == 0 {
				return []float64{0, 0, 0}
			}
			root := math.Cbrt(-d / a)
			return []float64{root, root, root}
		}
		if d == 0 {
			roots := QuadraticRoots(a, 0, c)
			if len(roots) == 0 {
				return []float64{0}
			}
			return []float64{roots[0], 0, roots[1]}
		}
		return cubicRootsGeneral(a, 0, c, d)
	}

	if c == 0 {
		if d == 0 {
			ratio := -b / a
			if ratio < 0 {
				return []float64{ratio, 0, 0}
			}
			return []float64{0, 0, ratio}
		}
		return cubicRootsGeneral(a, b, 0, d)
	}

	if d == 0 {
		roots := QuadraticRoots(a, b, c)
		switch {
		case len(roots) == 0:
			return []float64{0}
		case roots[1] <= 0:
			return []float64{roots[0], roots[1], 0}
		case roots[0] >= 0:
			return []float64{0, roots[0], roots[1]}
		}
		return []float64{roots[0], 0, roots[1]}
	}

	return cubicRootsGeneral(a, b, c, d)
}

// cubicRootsGeneral solves a cubic with all coefficients non-degenerate using
// Blinn's formulation, choosing the large or small root branch that keeps the
// arithmetic well conditioned.
func cubicRootsGeneral(a, b, c, d float64) []float64 {
	A := a
	B := b / 3
	C := c / 3
	D := d

	AC := A * C
	BD := B * D
	B2 := B * B
	C2 := C * C
	delta1 := A*C - B2
	delta2 := A*D - B*C
	delta3 := B*D - C2

	discriminant := 4*delta1*delta3 - delta2*delta2

	if discriminant < 0 {
		var aBar, cBar, dBar float64
		useA := B2*BD >= AC*C2
		if useA {
			aBar = A
			cBar = delta1
			dBar = -2*B*delta1 + A*delta2
		} else {
			aBar = D
			cBar = delta3
			dBar = -D*delta2 + 2*C*delta3
		}

		s := 1.0
		if dBar < 0 {
			s = -1
		}
		temp0 := -s * math.Abs(aBar) * math.Sqrt(-discriminant)
		temp1 := -dBar + temp0

		p := math.Cbrt(temp1 / 2)
		q := -p
		if temp1 != temp0 {
			q = -cBar / p
		}

		var temp float64
		if cBar <= 0 {
			temp = p + q
		} else {
			temp = -dBar / (p*p + q*q + cBar)
		}

		if useA {
			return []float64{(temp - B) / A}
		}
		return []float64{-D / (temp + C)}
	}

	cBarA := delta1
	dBarA := -2*B*delta1 + A*delta2
	cBarD := delta3
	dBarD := -D*delta2 + 2*C*delta3

	sqrtDiscriminant := math.Sqrt(discriminant)
	halfSqrt3 := math.Sqrt(3) / 2

	theta := math.Abs(math.Atan2(A*sqrtDiscriminant, -dBarA) / 3)
	temp := 2 * math.Sqrt(-cBarA)
	cosine := math.Cos(theta)
	temp1 := temp * cosine
	temp3 := temp * (-cosine/2 - halfSqrt3*math.Sin(theta))

	var numeratorLarge float64
	if temp1+temp3 > 2*B {
		numeratorLarge = temp1 - B
	} else {
		numeratorLarge = temp3 - B
	}
	denominatorLarge := A
	root1 := numeratorLarge / denominatorLarge

	theta = math.Abs(math.Atan2(D*sqrtDiscriminant, -dBarD) / 3)
	temp = 2 * math.Sqrt(-cBarD)
	cosine = math.Cos(theta)
	temp1 = temp * cosine
	temp3 = temp * (-cosine/2 - halfSqrt3*math.Sin(theta))

	numeratorSmall := -D
	var denominatorSmall float64
	if temp1+temp3 < 2*C {
		denominatorSmall = temp1 + C
	} else {
		denominatorSmall = temp3 + C
	}
	root3 := numeratorSmall / denominatorSmall

	E := denominatorLarge * denominatorSmall
	F := -numeratorLarge*denominatorSmall - denominatorLarge*numeratorSmall
	G := numeratorLarge * numeratorSmall
	root2 := (C*F - B*G) / (-B*F + C*E)

	return sort3(root1, root2, root3)
}

// sort3 returns the three values in ascending order.
func sort3(r1, r2, r3 float64) []float64 {
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	if r2 > r3 {
		r2, r3 = r3, r2
	}
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return []float64{r1, r2, r3}
}
