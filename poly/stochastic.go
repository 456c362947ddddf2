package poly

import (
	"fmt"
	"math"
	"strings"
)

// StochasticPolynomial is the bivariate function F(x, ξ) = Σ Pᵢ(x)·ξⁱ: a
// polynomial in the exogenous random variable ξ whose coefficients are
// themselves Polynomials in the decision variable x. It models a cost that
// depends on both the decision time and a noise draw, and is the output
// type of Polynomial.Compose.
//
// The container is passive: all algebra happens through Compose and the
// moment integration in Expectation.
type StochasticPolynomial struct {
	coeffs []Polynomial
}

// NewStochastic constructs a StochasticPolynomial from coefficients indexed
// by power of ξ (P₀ first). The slice is copied. Returns ErrNoCoefficients
// for an empty slice.
func NewStochastic(coeffs []Polynomial) (StochasticPolynomial, error) {
	if len(coeffs) == 0 {
		return StochasticPolynomial{}, ErrNoCoefficients
	}
	out := make([]Polynomial, len(coeffs))
	copy(out, coeffs)

	return StochasticPolynomial{coeffs: out}, nil
}

// DeterministicStochastic wraps a plain Polynomial as a ξ-degree-0
// StochasticPolynomial, for edges whose cost carries no noise.
func DeterministicStochastic(p Polynomial) StochasticPolynomial {
	return StochasticPolynomial{coeffs: []Polynomial{p}}
}

// Coefficient returns the Polynomial attached to ξⁱ, or the zero polynomial
// when i is outside the stored range.
func (s StochasticPolynomial) Coefficient(i int) Polynomial {
	if i < 0 || i >= len(s.coeffs) {
		return Zero()
	}

	return s.coeffs[i]
}

// DegreeXi reports the highest power of ξ with a nonzero coefficient
// polynomial, or 0 when all are zero.
func (s StochasticPolynomial) DegreeXi() int {
	for i := len(s.coeffs) - 1; i >= 0; i-- {
		if !s.coeffs[i].IsZero() {
			return i
		}
	}

	return 0
}

// DegreeX reports the highest degree in x across all coefficient
// polynomials.
func (s StochasticPolynomial) DegreeX() int {
	deg := 0
	for _, p := range s.coeffs {
		if d := p.Degree(); d > deg {
			deg = d
		}
	}

	return deg
}

// Value evaluates F(x, ξ) for a determined noise draw, Horner in ξ over the
// coefficient values at x.
func (s StochasticPolynomial) Value(x, xi float64) float64 {
	if len(s.coeffs) == 0 {
		return 0
	}
	v := s.coeffs[len(s.coeffs)-1].Value(x)
	for i := len(s.coeffs) - 2; i >= 0; i-- {
		v = v*xi + s.coeffs[i].Value(x)
	}

	return v
}

// Add returns s + t, coefficient-polynomial-wise by power of ξ.
func (s StochasticPolynomial) Add(t StochasticPolynomial) StochasticPolynomial {
	n := len(s.coeffs)
	if len(t.coeffs) > n {
		n = len(t.coeffs)
	}
	out := make([]Polynomial, n)
	for i := range out {
		out[i] = s.Coefficient(i).Add(t.Coefficient(i))
	}

	return StochasticPolynomial{coeffs: out}
}

// AddPolynomial returns s with p added to the ξ⁰ coefficient. Forming an
// arrival expression x + C(x,ξ) from an edge cost C is AddPolynomial(X()).
func (s StochasticPolynomial) AddPolynomial(p Polynomial) StochasticPolynomial {
	out := make([]Polynomial, len(s.coeffs))
	copy(out, s.coeffs)
	if len(out) == 0 {
		out = []Polynomial{Zero()}
	}
	out[0] = out[0].Add(p)

	return StochasticPolynomial{coeffs: out}
}

// Expectation integrates ξ out against dist in closed form:
//
//	E[Σ Pᵢ(x)·ξⁱ] = Σ Pᵢ(x)·E[ξⁱ]
//
// returning the expected cost as a plain Polynomial in x.
func (s StochasticPolynomial) Expectation(dist XiDistribution) Polynomial {
	out := Zero()
	for i, p := range s.coeffs {
		if p.IsZero() {
			continue
		}
		out = out.Add(p.Scale(dist.Moment(i)))
	}

	return out
}

// String renders the function as ξ-power terms, e.g. "(20) + (5 + x)·ξ".
func (s StochasticPolynomial) String() string {
	var b strings.Builder
	for i, p := range s.coeffs {
		if i > 0 {
			b.WriteString(" + ")
		}
		switch i {
		case 0:
			fmt.Fprintf(&b, "(%s)", p)
		case 1:
			fmt.Fprintf(&b, "(%s)·ξ", p)
		default:
			fmt.Fprintf(&b, "(%s)·ξ^%d", p, i)
		}
	}

	return b.String()
}

// XiDistribution supplies the raw moments E[ξᵏ] of the noise model, which is
// all the closed-form integration in Expectation needs. Implementations
// must return 1 for k = 0.
type XiDistribution interface {
	// Moment returns the k-th raw moment E[ξᵏ].
	Moment(k int) float64
}

// Uniform is the continuous uniform noise distribution on [Lo, Hi].
// The zero value is invalid; build one with NewUniform or use
// StandardUniform.
type Uniform struct {
	Lo, Hi float64
}

// StandardUniform is the ξ ~ U[0, 1] noise model assumed by the historical
// cost data; it is the solver default.
var StandardUniform = Uniform{Lo: 0, Hi: 1}

// NewUniform validates and returns a Uniform distribution on [lo, hi].
// Returns ErrBadDistribution unless lo < hi and both are finite.
func NewUniform(lo, hi float64) (Uniform, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo >= hi {
		return Uniform{}, fmt.Errorf("%w: uniform bounds [%v, %v]", ErrBadDistribution, lo, hi)
	}

	return Uniform{Lo: lo, Hi: hi}, nil
}

// Moment returns E[ξᵏ] = (Hiᵏ⁺¹ − Loᵏ⁺¹) / ((k+1)·(Hi − Lo)).
func (u Uniform) Moment(k int) float64 {
	if k == 0 {
		return 1
	}

	return (math.Pow(u.Hi, float64(k+1)) - math.Pow(u.Lo, float64(k+1))) /
		(float64(k+1) * (u.Hi - u.Lo))
}

// Degenerate is the point-mass distribution ξ ≡ At, for deterministic
// costs expressed through the stochastic machinery.
type Degenerate struct {
	At float64
}

// Moment returns E[ξᵏ] = Atᵏ.
func (d Degenerate) Moment(k int) float64 {
	if k == 0 {
		return 1
	}

	return math.Pow(d.At, float64(k))
}
