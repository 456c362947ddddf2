package poly

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// imagTolerance is the largest imaginary magnitude, relative to the root's
// modulus, below which a companion-matrix eigenvalue is accepted as a real
// root. It also deduplicates near-coincident roots in rootsIn.
const imagTolerance = 1e-9

// closedFormRoots returns the real roots of the trimmed coefficient vector
// c, which must describe a polynomial of degree ≤ 2. Degree 0 has no
// isolated roots regardless of value.
func closedFormRoots(c []float64) []float64 {
	switch len(c) - 1 {
	case 0:
		return nil
	case 1:
		return []float64{-c[0] / c[1]}
	default:
		delta := c[1]*c[1] - 4*c[2]*c[0]
		switch {
		case delta > 0:
			sq := math.Sqrt(delta)

			return []float64{(-c[1] - sq) / (2 * c[2]), (-c[1] + sq) / (2 * c[2])}
		case delta == 0:
			return []float64{-c[1] / (2 * c[2])}
		default:
			return nil
		}
	}
}

// CriticalPoints returns the real roots of p′ in closed form.
// Supported derivative degrees:
//
//	0 — no critical points (constant or linear p);
//	1 — the single root of the linear derivative;
//	2 — 0, 1 or 2 roots by discriminant.
//
// Derivative degree > 2 yields ErrUnsupportedDegree; the caller must opt in
// to a numeric strategy (CriticalPointsNumeric) instead of inheriting an
// undocumented approximation.
func (p Polynomial) CriticalPoints() ([]float64, error) {
	c := p.Derivative().trimmed()
	if len(c)-1 > 2 {
		return nil, fmt.Errorf("%w: derivative degree %d", ErrUnsupportedDegree, len(c)-1)
	}

	return closedFormRoots(c), nil
}

// CriticalPointsNumeric returns the real roots of p′ via the companion
// matrix of the derivative. This is the deliberate fallback for derivative
// degree > 2; for degree ≤ 2 it agrees with CriticalPoints up to round-off.
func (p Polynomial) CriticalPointsNumeric() ([]float64, error) {
	d := p.Derivative()
	if d.IsZero() {
		return nil, nil
	}

	return d.RootsNumeric()
}

// RootsNumeric returns the real roots of p as the real eigenvalues of its
// companion matrix (gonum mat.Eigen), sorted ascending. Eigenvalues whose
// imaginary part exceeds imagTolerance (relative to modulus) are discarded.
// The zero polynomial has no isolated roots and reports ErrNoCoefficients.
func (p Polynomial) RootsNumeric() ([]float64, error) {
	c := p.trimmed()
	n := len(c) - 1
	if n == 0 {
		if c[0] == 0 {
			return nil, fmt.Errorf("%w: zero polynomial has no isolated roots", ErrNoCoefficients)
		}

		return nil, nil
	}
	if n <= 2 {
		roots := closedFormRoots(c)
		sort.Float64s(roots)

		return roots, nil
	}

	// Companion matrix of the monic normalization: ones on the subdiagonal,
	// −cᵢ/cₙ in the last column.
	a := mat.NewDense(n, n, nil)
	for i := 1; i < n; i++ {
		a.Set(i, i-1, 1)
	}
	for i := 0; i < n; i++ {
		a.Set(i, n-1, -c[i]/c[n])
	}

	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenNone); !ok {
		return nil, fmt.Errorf("poly: companion matrix eigendecomposition failed for %v", c)
	}

	values := eig.Values(nil)
	roots := make([]float64, 0, n)
	for _, v := range values {
		re, im := real(v), imag(v)
		if math.Abs(im) <= imagTolerance*math.Max(1, math.Hypot(re, im)) {
			roots = append(roots, re)
		}
	}
	sort.Float64s(roots)

	return roots, nil
}

// RootsWithin returns the real roots of p strictly inside (left, right), sorted
// and deduplicated, preferring the closed form and falling back to the
// companion matrix above degree 2.
func (p Polynomial) RootsWithin(left, right float64) ([]float64, error) {
	roots, err := p.RootsNumeric()
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(roots))
	for _, r := range roots {
		if r <= left || r >= right {
			continue
		}
		if len(out) > 0 && math.Abs(r-out[len(out)-1]) <= imagTolerance {
			continue
		}
		out = append(out, r)
	}

	return out, nil
}
