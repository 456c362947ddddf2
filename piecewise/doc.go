// Package piecewise implements piecewise polynomial functions over a
// half-line domain — the representation of time-dependent value functions —
// and their stochastic analogue holding one StochasticPolynomial per piece
// for edge cost models.
//
// A Piecewise is an ordered sequence of (lower-bound, Polynomial) entries
// plus a terminal bound that may be +Inf. Piece i is valid on the half-open
// interval [boundᵢ, boundᵢ₊₁). Construction validates the structure:
//
//   - at least one piece;
//   - strictly increasing, finite lower bounds;
//   - terminal bound above the last lower bound (+Inf allowed).
//
// Every operation returns a new value; no mutation is observable across an
// operation boundary.
//
// Operations:
//
//   - Value        — linear scan lookup; comma-ok false outside the domain.
//   - Simplify     — merge consecutive pieces with identical coefficient
//     vectors (exact structural comparison, the one place it is safe).
//   - Add          — two-pointer breakpoint union to the finest common
//     partition, then pointwise piece addition.
//   - Shift        — V(x) → V(x+t) in the frame of an upstream decision,
//     first/last bound pinned, interior breakpoints re-filtered.
//   - Replace      — splice a polynomial over [left, right), splitting
//     straddling pieces.
//   - Min / Max    — exact pointwise envelopes; piece crossings are located
//     by closed-form roots up to degree 2 and companion-matrix eigenvalues
//     beyond (the aggregation primitive of the value recursion).
//   - LinearApproximation — lower-envelope compression of runs of narrow
//     pieces; never rises above the original at any surviving breakpoint.
//   - RoundTrivial — snaps constant and monotone-degenerate pieces to
//     integers without ever increasing the running maximum, preserving the
//     monotonicity documented for value functions.
//
// Errors (sentinel):
//
//   - ErrNoPieces        construction with an empty piece list.
//   - ErrUnorderedBounds bounds not strictly increasing.
//   - ErrNotFinite       a non-finite interior bound (or NaN terminal).
//   - ErrDomainMismatch  binary operation on functions with different domains.
//   - ErrOutOfDomain     a query or splice interval escaping the domain.
//   - ErrNilOperand      a nil *Piecewise operand.
package piecewise
