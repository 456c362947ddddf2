// Package routeval computes time-dependent expected-cost value functions for
// routing decisions under stochastic travel times — exactly, in closed form,
// with no sampling.
//
// 🚀 What is routeval?
//
//	A library of exact symbolic building blocks for Markov decision processes
//	with continuous (time-valued) state:
//		• poly      — polynomial and stochastic-polynomial algebra: addition,
//		              convolution products, derivatives, shifts, closed-form
//		              extrema, multinomial composition, ξ-moment integration
//		• piecewise — piecewise polynomial value functions on a half-line:
//		              breakpoint splicing, exact pointwise envelopes,
//		              lower-envelope compression
//		• mdp       — Move/DoNothing actions over a graph of locations and
//		              the backward-induction solver that composes edge costs
//		              with downstream value functions until convergence
//
// ✨ Why choose routeval?
//
//   - Exact – compositions, expectations and shifts are symbolic, not Monte Carlo
//   - Conservative – compression passes never rise above the true function
//   - Explicit – unsupported algebraic cases are reported, never silently guessed
//   - Pluggable – aggregation policy, ξ-distribution and compression are options
//
// Data flow, in one line:
//
//	edge cost C(x,ξ)  +  successor value V  →  compose  →  ∫dξ  →  candidate
//	→ aggregate over actions → simplify/compress → next sweep's value function
//
// Dive into the package docs of poly, piecewise and mdp for the algebra,
// the invariants, and worked examples.
//
//	go get github.com/katalvlaran/routeval
package routeval
