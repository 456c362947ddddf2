// IntegrateComposition: the exact ξ-integration of a value function composed
// with a stochastic arrival expression — the inner product of the backward
// recursion.
package mdp

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/routeval/piecewise"
	"github.com/katalvlaran/routeval/poly"
)

// cutTolerance deduplicates refinement points produced by distinct value
// breakpoints that happen to coincide numerically.
const cutTolerance = 1e-12

// IntegrateComposition evaluates
//
//	preV(x) = E[ C(x,ξ) + V(x + C(x,ξ)) ]
//
// exactly, on the cost model's domain. The algorithm:
//
//  1. merge the breakpoint grids of cost and value over the cost domain, so
//     each working interval is governed by a single cost piece;
//  2. refine each interval at the points where the expected arrival
//     m(x) = x + E[C(x,ξ)] crosses an interior value breakpoint (closed-form
//     roots up to degree 2, companion-matrix eigenvalues beyond);
//  3. on each refined atom, compose the value piece containing the expected
//     arrival with the arrival expression x + C(x,ξ), add the cost itself,
//     and integrate ξ out by raw moments;
//  4. simplify the assembled result.
//
// The refined atoms are chosen so that the expected arrival stays within one
// value piece per atom; if an expected arrival escapes the value function's
// domain the result is ErrArrivalOutOfDomain.
func IntegrateComposition(value *piecewise.Piecewise, cost *piecewise.Stochastic, dist poly.XiDistribution) (*piecewise.Piecewise, error) {
	if value == nil || cost == nil {
		return nil, ErrNilOperand
	}
	if dist == nil {
		dist = poly.StandardUniform
	}

	grid := mergeOver(cost.Bounds(), value.Bounds(), cost.Start(), cost.End())
	vb := value.Bounds()
	interior := vb[1 : len(vb)-1]

	pieces := make([]piecewise.Piece, 0, len(grid)-1)
	for n := 0; n < len(grid)-1; n++ {
		lo, hi := grid[n], grid[n+1]
		fnC, ok := cost.PieceAt(lo)
		if !ok {
			return nil, fmt.Errorf("%w: cost undefined at %v", ErrNilOperand, lo)
		}

		// Expected arrival m(x) = x + E[C(x,ξ)] on this interval.
		m := fnC.Expectation(dist).Add(poly.X())

		cuts, err := arrivalCuts(m, interior, lo, hi)
		if err != nil {
			return nil, err
		}

		for k := 0; k < len(cuts)-1; k++ {
			a, b := cuts[k], cuts[k+1]
			mid := a + (b-a)/2
			if math.IsInf(b, 1) {
				mid = a + 1
			}
			arrival := m.Value(mid)
			vp, ok := value.FnAt(arrival)
			if !ok {
				return nil, fmt.Errorf("%w: departure %v arrives at %v, value domain [%g, %g)",
					ErrArrivalOutOfDomain, mid, arrival, value.Start(), value.End())
			}

			// E[C + V(x + C)] over ξ, in closed form.
			total := vp.Compose(fnC.AddPolynomial(poly.X())).Add(fnC)
			pieces = append(pieces, piecewise.Piece{Lo: a, Fn: total.Expectation(dist)})
		}
	}

	out, err := piecewise.New(pieces, cost.End())
	if err != nil {
		return nil, fmt.Errorf("mdp: assembling integration result: %w", err)
	}

	return out.Simplify(), nil
}

// arrivalCuts returns the ordered refinement [lo, c₁, …, hi] of one working
// interval: lo, hi, plus every point strictly inside where the expected
// arrival m crosses an interior value breakpoint.
func arrivalCuts(m poly.Polynomial, interior []float64, lo, hi float64) ([]float64, error) {
	cuts := []float64{lo}
	for _, b := range interior {
		diff := m.AddScalar(-b)
		if diff.IsZero() {
			// m sits exactly on the breakpoint across the whole interval;
			// one value piece governs it, no cut needed.
			continue
		}
		roots, err := diff.RootsWithin(lo, hi)
		if err != nil {
			return nil, fmt.Errorf("mdp: locating arrival crossing of breakpoint %v: %w", b, err)
		}
		cuts = append(cuts, roots...)
	}
	sort.Float64s(cuts)

	out := cuts[:1]
	for _, c := range cuts[1:] {
		if c-out[len(out)-1] <= cutTolerance*math.Max(1, math.Abs(c)) {
			continue
		}
		out = append(out, c)
	}

	return append(out, hi), nil
}

// mergeOver returns the ascending union of two bound sequences restricted to
// [start, end]: start and end always appear, interior points of either
// sequence survive only strictly inside.
func mergeOver(a, b []float64, start, end float64) []float64 {
	out := []float64{start}
	for _, src := range [][]float64{a, b} {
		for _, x := range src {
			if x > start && x < end {
				out = append(out, x)
			}
		}
	}
	sort.Float64s(out)

	dedup := out[:1]
	for _, x := range out[1:] {
		if x == dedup[len(dedup)-1] {
			continue
		}
		dedup = append(dedup, x)
	}

	return append(dedup, end)
}
