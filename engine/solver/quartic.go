package solver

import (
	"math"

	"github.com/Carmen-Shannon/oxy-globe/common"
)

// quarticMethod names the reduction used to split a normalized quartic into two quadratics.
type quarticMethod int

const (
	quarticOriginal quarticMethod = iota // Ferrari-style resolvent cubic in h²
	quarticNeumark                       // Neumark's resolvent
)

// quarticMethods maps the sign pattern of the normalized coefficients to the
// reduction that keeps precision for that pattern. Bit 0 is a0 < 0, bit 1 is
// a1 < 0, bit 2 is a2 < 0, bit 3 is a3 < 0 after the cascading encoding in
// quarticSignPattern.
var quarticMethods = [16]quarticMethod{
	0:  quarticOriginal,
	1:  quarticNeumark,
	2:  quarticNeumark,
	3:  quarticOriginal,
	4:  quarticOriginal,
	5:  quarticNeumark,
	6:  quarticOriginal,
	7:  quarticOriginal,
	8:  quarticNeumark,
	9:  quarticOriginal,
	10: quarticOriginal,
	11: quarticNeumark,
	12: quarticOriginal,
	13: quarticOriginal,
	14: quarticOriginal,
	15: quarticOriginal,
}

// QuarticDiscriminant returns the discriminant of a·x⁴ + b·x³ + c·x² + d·x + e.
func QuarticDiscriminant(a, b, c, d, e float64) float64 {
	a2 := a * a
	a3 := a2 * a
	b2 := b * b
	b3 := b2 * b
	c2 := c * c
	c3 := c2 * c
	d2 := d * d
	d3 := d2 * d
	e2 := e * e
	e3 := e2 * e

	return b2*c2*d2 - 4*b3*d3 - 4*a*c3*d2 + 18*a*b*c*d3 - 27*a2*d2*d2 + 256*a3*e3 +
		e*(18*b3*c*d-4*b2*c3+16*a*c2*c2-80*a*b*c2*d-6*a*b2*d2+144*a2*c*d2) +
		e2*(144*a*b2*c-27*b2*b2-128*a2*c2-192*a2*b*d)
}

// QuarticRoots returns the real roots of a·x⁴ + b·x³ + c·x² + d·x + e = 0.
// A leading coefficient within EPSILON15 of zero falls back to CubicRoots.
//
// Parameters:
//   - a, b, c, d, e: polynomial coefficients, highest degree first
//
// Returns:
//   - []float64: roots in ascending order, or nil if none are real
func QuarticRoots(a, b, c, d, e float64) []float64 {
	if math.Abs(a) < common.Epsilon15 {
		return CubicRoots(b, c, d, e)
	}

	a3 := b / a
	a2 := c / a
	a1 := d / a
	a0 := e / a

	if quarticMethods[quarticSignPattern(a3, a2, a1, a0)] == quarticNeumark {
		return quarticNeumarkRoots(a3, a2, a1, a0)
	}
	return quarticOriginalRoots(a3, a2, a1, a0)
}

// quarticSignPattern encodes which normalized coefficients are negative.
// Each step doubles the running value and adds one for a negative coefficient.
func quarticSignPattern(a3, a2, a1, a0 float64) int {
	k := 0
	if a3 < 0 {
		k = 1
	}
	for _, v := range [3]float64{a2, a1, a0} {
		if v < 0 {
			k += k + 1
		} else {
			k += k
		}
	}
	return k
}

// quarticOriginalRoots solves x⁴ + a3·x³ + a2·x² + a1·x + a0 through the
// depressed quartic and a resolvent cubic in h².
func quarticOriginalRoots(a3, a2, a1, a0 float64) []float64 {
	a3Squared := a3 * a3

	p := a2 - 3*a3Squared/8
	q := a1 - a2*a3/2 + a3Squared*a3/8
	r := a0 - a1*a3/4 + a2*a3Squared/16 - 3*a3Squared*a3Squared/256

	cubicRoots := CubicRoots(1, 2*p, p*p-4*r, -q*q)
	if len(cubicRoots) == 0 {
		return nil
	}

	temp := -a3 / 4
	hSquared := cubicRoots[len(cubicRoots)-1]

	if math.Abs(hSquared) < common.Epsilon14 {
		roots := QuadraticRoots(1, p, r)
		if len(roots) != 2 {
			return nil
		}
		root0, root1 := roots[0], roots[1]
		switch {
		case root0 >= 0 && root1 >= 0:
			y0 := math.Sqrt(root0)
			y1 := math.Sqrt(root1)
			return []float64{temp - y1, temp - y0, temp + y0, temp + y1}
		case root0 >= 0 && root1 < 0:
			y := math.Sqrt(root0)
			return []float64{temp - y, temp + y}
		case root0 < 0 && root1 >= 0:
			y := math.Sqrt(root1)
			return []float64{temp - y, temp + y}
		}
		return nil
	}

	if hSquared < 0 {
		return nil
	}

	h := math.Sqrt(hSquared)
	m := (p + hSquared - q/h) / 2
	n := (p + hSquared + q/h) / 2

	roots1 := QuadraticRoots(1, h, m)
	roots2 := QuadraticRoots(1, -h, n)
	for i := range roots1 {
		roots1[i] += temp
	}
	for i := range roots2 {
		roots2[i] += temp
	}
	return mergeQuadraticRoots(roots1, roots2)
}

// quarticNeumarkRoots solves x⁴ + a3·x³ + a2·x² + a1·x + a0 by Neumark's
// factorization into two quadratics, picking the error-minimizing branch for
// the auxiliary square root.
func quarticNeumarkRoots(a3, a2, a1, a0 float64) []float64 {
	a1Squared := a1 * a1
	a2Squared := a2 * a2
	a3Squared := a3 * a3

	p := -2 * a2
	q := a1*a3 + a2Squared - 4*a0
	r := a3Squared*a0 - a1*a2*a3 + a1Squared

	cubicRoots := CubicRoots(1, p, q, r)
	if len(cubicRoots) == 0 {
		return nil
	}

	y := cubicRoots[0]
	temp := a2 - y
	tempSquared := temp * temp

	g1 := a3 / 2
	h1 := temp / 2

	m := tempSquared - 4*a0
	mError := tempSquared + 4*math.Abs(a0)

	n := a3Squared - 4*y
	nError := a3Squared + 4*math.Abs(y)

	var g2, h2 float64
	if y < 0 || m*nError < n*mError {
		sqrtN := math.Sqrt(n)
		g2 = sqrtN / 2
		if sqrtN != 0 {
			h2 = (a3*h1 - a1) / sqrtN
		}
	} else {
		sqrtM := math.Sqrt(m)
		if sqrtM != 0 {
			g2 = (a3*h1 - a1) / sqrtM
		}
		h2 = sqrtM / 2
	}

	var G, g float64
	switch {
	case g1 == 0 && g2 == 0:
	case common.Sign(g1) == common.Sign(g2):
		G = g1 + g2
		g = y / G
	default:
		g = g1 - g2
		G = y / g
	}

	var H, hh float64
	switch {
	case h1 == 0 && h2 == 0:
	case common.Sign(h1) == common.Sign(h2):
		H = h1 + h2
		hh = a0 / H
	default:
		hh = h1 - h2
		H = a0 / hh
	}

	return mergeQuadraticRoots(QuadraticRoots(1, G, H), QuadraticRoots(1, g, hh))
}

// mergeQuadraticRoots interleaves two ascending root pairs into one ascending slice.
func mergeQuadraticRoots(roots1, roots2 []float64) []float64 {
	if len(roots1) == 0 {
		if len(roots2) == 0 {
			return nil
		}
		return roots2
	}
	if len(roots2) == 0 {
		return roots1
	}

	switch {
	case roots1[1] <= roots2[0]:
		return []float64{roots1[0], roots1[1], roots2[0], roots2[1]}
	case roots2[1] <= roots1[0]:
		return []float64{roots2[0], roots2[1], roots1[0], roots1[1]}
	case roots1[0] >= roots2[0] && roots1[1] <= roots2[1]:
		return []float64{roots2[0], roots1[0], roots1[1], roots2[1]}
	case roots2[0] >= roots1[0] && roots2[1] <= roots1[1]:
		return []float64{roots1[0], roots2[0], roots2[1], roots1[1]}
	case roots1[0] > roots2[0] && roots1[0] < roots2[1]:
		return []float64{roots2[0], roots1[0], roots2[1], roots1[1]}
	}
	return []float64{roots1[0], roots2[0], roots1[1], roots2[1]}
}
