// Package poly defines the core polynomial value types and sentinel errors.
package poly

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

// Sentinel errors returned by the poly package.
var (
	// ErrNoCoefficients indicates that a constructor received an empty
	// coefficient vector. A polynomial always carries at least the constant
	// term.
	ErrNoCoefficients = errors.New("poly: coefficient vector is empty")

	// ErrUnsupportedDegree indicates that a closed-form operation met a
	// derivative of degree > 2. The caller must choose a numeric fallback
	// (ExtremaNumeric) deliberately; no silent approximation is attempted.
	ErrUnsupportedDegree = errors.New("poly: derivative degree > 2 has no closed form")

	// ErrBadInterval indicates that an interval query was given left ≥ right.
	ErrBadInterval = errors.New("poly: interval left bound must be below right bound")

	// ErrBadDistribution indicates a malformed ξ-distribution, such as a
	// Uniform with Lo ≥ Hi.
	ErrBadDistribution = errors.New("poly: malformed xi distribution")

	// ErrNotFinite indicates that a constructor received NaN or ±Inf where a
	// finite coefficient is required.
	ErrNotFinite = errors.New("poly: coefficient must be finite")
)

// equivalenceSamples is the number of evaluation points used by the sampled
// comparators (EquivalentOn). Endpoints are always included.
const equivalenceSamples = 17

// Polynomial is an immutable real polynomial in one variable, stored as the
// coefficient vector c₀…cₙ with the constant term first.
//
// Invariant: the vector holds at least one coefficient. The zero value of
// the type behaves as the zero polynomial but should only arise through
// Zero(); constructors enforce the invariant.
type Polynomial struct {
	coeffs []float64
}

// New constructs a Polynomial from the given coefficients (constant term
// first). The slice is copied; the caller keeps ownership of its argument.
// Returns ErrNoCoefficients for an empty slice and ErrNotFinite if any
// coefficient is NaN or infinite.
func New(coeffs []float64) (Polynomial, error) {
	if len(coeffs) == 0 {
		return Polynomial{}, ErrNoCoefficients
	}
	for i, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return Polynomial{}, fmt.Errorf("%w: coefficient %d is %v", ErrNotFinite, i, c)
		}
	}
	out := make([]float64, len(coeffs))
	copy(out, coeffs)

	return Polynomial{coeffs: out}, nil
}

// Zero returns the zero polynomial.
func Zero() Polynomial { return Polynomial{coeffs: []float64{0}} }

// Constant returns the degree-0 polynomial p(x) = c.
func Constant(c float64) Polynomial { return Polynomial{coeffs: []float64{c}} }

// X returns the identity monomial p(x) = x.
func X() Polynomial { return Polynomial{coeffs: []float64{0, 1}} }

// Line returns the unique degree ≤ 1 polynomial through (x1,y1) and (x2,y2).
// x1 and x2 must differ; equal abscissae collapse to the constant y1.
func Line(x1, y1, x2, y2 float64) Polynomial {
	if x1 == x2 {
		return Constant(y1)
	}
	slope := (y2 - y1) / (x2 - x1)

	return Polynomial{coeffs: []float64{y1 - slope*x1, slope}}
}

// Coefficients returns a copy of the coefficient vector, constant term
// first. The vector is never degree-trimmed — what was built is what is
// reported (Add/Sub may leave leading zeros; see Degree).
func (p Polynomial) Coefficients() []float64 {
	if len(p.coeffs) == 0 {
		return []float64{0}
	}
	out := make([]float64, len(p.coeffs))
	copy(out, p.coeffs)

	return out
}

// Degree reports the index of the highest nonzero coefficient, or 0 if all
// coefficients are zero.
func (p Polynomial) Degree() int {
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		if p.coeffs[i] != 0 {
			return i
		}
	}

	return 0
}

// IsZero reports whether every coefficient is exactly zero.
func (p Polynomial) IsZero() bool {
	for _, c := range p.coeffs {
		if c != 0 {
			return false
		}
	}

	return true
}

// Value evaluates p at x using Horner's scheme.
func (p Polynomial) Value(x float64) float64 {
	if len(p.coeffs) == 0 {
		return 0
	}
	v := p.coeffs[len(p.coeffs)-1]
	for i := len(p.coeffs) - 2; i >= 0; i-- {
		v = v*x + p.coeffs[i]
	}

	return v
}

// Equal reports exact structural equality of the coefficient vectors,
// length included: Constant(0) and the two-coefficient vector {0,0} differ.
// This is the deduplication comparison used by piecewise simplification.
// It is brittle under floating-point arithmetic — for computed values use
// EquivalentOn instead.
func (p Polynomial) Equal(q Polynomial) bool {
	if len(p.coeffs) != len(q.coeffs) {
		return false
	}
	for i := range p.coeffs {
		if p.coeffs[i] != q.coeffs[i] {
			return false
		}
	}

	return true
}

// EquivalentOn reports whether p and q agree within tol at a fixed sample of
// points across [left, right], endpoints included. This is the comparator
// intended for tests and convergence checks; it tolerates representation
// differences (padding zeros, round-off) that Equal rejects.
func (p Polynomial) EquivalentOn(q Polynomial, left, right, tol float64) bool {
	if left > right {
		left, right = right, left
	}
	step := (right - left) / float64(equivalenceSamples-1)
	for i := 0; i < equivalenceSamples; i++ {
		x := left + step*float64(i)
		if !scalar.EqualWithinAbsOrRel(p.Value(x), q.Value(x), tol, tol) {
			return false
		}
	}

	return true
}

// trimmed returns the coefficient slice cut after the highest nonzero
// coefficient (always at least one entry). The returned slice aliases p and
// must not be modified.
func (p Polynomial) trimmed() []float64 {
	if len(p.coeffs) == 0 {
		return []float64{0}
	}

	return p.coeffs[:p.Degree()+1]
}

// String renders the polynomial in increasing-degree form, e.g.
// "50 - 0.25·x" or "1 + 2·x^2".
func (p Polynomial) String() string {
	var b strings.Builder
	wrote := false
	for i, c := range p.trimmed() {
		if c == 0 && p.Degree() > 0 {
			continue
		}
		switch {
		case !wrote && c < 0:
			b.WriteString("-")
		case wrote && c < 0:
			b.WriteString(" - ")
		case wrote:
			b.WriteString(" + ")
		}
		abs := math.Abs(c)
		switch {
		case i == 0:
			fmt.Fprintf(&b, "%g", abs)
		case i == 1:
			if abs == 1 {
				b.WriteString("x")
			} else {
				fmt.Fprintf(&b, "%g·x", abs)
			}
		default:
			if abs == 1 {
				fmt.Fprintf(&b, "x^%d", i)
			} else {
				fmt.Fprintf(&b, "%g·x^%d", abs, i)
			}
		}
		wrote = true
	}
	if !wrote {
		return "0"
	}

	return b.String()
}
