// Package poly implements exact univariate polynomial algebra and its
// bivariate "stochastic" extension F(x,ξ) = Σ Pᵢ(x)·ξⁱ, the closed-form
// backbone of time-dependent value functions.
//
// A Polynomial is an immutable coefficient vector c₀…cₙ (constant term
// first). Every operation returns a fresh value; nothing is mutated in
// place. Leading zero coefficients may survive Add/Sub (cancellation is not
// special-cased) — Degree always reports the trimmed degree, and callers
// that need a tight vector can rely on it.
//
// Operations:
//
//   - Add / Sub / Neg / Mul / AddScalar / Scale — coefficient arithmetic;
//     Mul is the standard convolution, len(a)+len(b)−1 coefficients.
//   - Derivative / Shift — calculus and domain translation p(x) → p(x+t).
//   - Extrema — closed form for derivative degree ≤ 2; above that it reports
//     ErrUnsupportedDegree instead of an unreliable numeric guess.
//   - ExtremaNumeric / RootsNumeric — the deliberate numeric fallback:
//     eigenvalues of the companion matrix (gonum/mat).
//   - Compose — substitutes a StochasticPolynomial for the variable, with
//     iterative accumulation of the substitution's powers.
//
// Stochastic side:
//
//   - StochasticPolynomial — Polynomials indexed by power of ξ.
//   - XiDistribution — raw moments E[ξᵏ] of the noise model; Uniform and
//     Degenerate are provided. Expectation integrates ξ out in closed form:
//     E[Σ Pᵢ(x)ξⁱ] = Σ Pᵢ(x)·E[ξⁱ].
//
// Equality comes in two deliberate flavours (see Equal vs EquivalentOn):
// exact structural comparison for piece deduplication, and tolerance-based
// sampled comparison for tests and convergence checks. Never use the exact
// form for correctness decisions on computed values.
//
// Errors (sentinel):
//
//   - ErrNoCoefficients    if a constructor receives an empty vector.
//   - ErrUnsupportedDegree if Extrema meets a derivative of degree > 2.
//   - ErrBadInterval       if a queried interval has left ≥ right.
//   - ErrBadDistribution   if a ξ-distribution is malformed (e.g. Lo ≥ Hi).
package poly
