// Exact pointwise envelopes of two piecewise polynomials — the aggregation
// primitive combining candidate value functions across actions.
package piecewise

import (
	"fmt"
	"math"

	"github.com/katalvlaran/routeval/poly"
)

// Min returns the exact pointwise minimum of f and o. The breakpoint sets
// are reconciled as in Add; inside each common sub-interval the crossing
// points of the two polynomials are located exactly (closed-form roots for
// difference degree ≤ 2, companion-matrix eigenvalues beyond) and become new
// breakpoints. The result is simplified. Domains must match.
func (f *Piecewise) Min(o *Piecewise) (*Piecewise, error) {
	return f.envelope(o, true)
}

// Max returns the exact pointwise maximum of f and o; see Min.
func (f *Piecewise) Max(o *Piecewise) (*Piecewise, error) {
	return f.envelope(o, false)
}

// envelope builds the lower (wantMin) or upper envelope over the merged
// partition of f and o.
func (f *Piecewise) envelope(o *Piecewise, wantMin bool) (*Piecewise, error) {
	if o == nil {
		return nil, ErrNilOperand
	}
	if f.Start() != o.Start() || f.end != o.end {
		return nil, fmt.Errorf("%w: [%g, %g) vs [%g, %g)",
			ErrDomainMismatch, f.Start(), f.end, o.Start(), o.end)
	}

	bounds := mergeBounds(f.Bounds(), o.Bounds())
	out := make([]Piece, 0, len(bounds)-1)
	i, j := 0, 0
	for n := 0; n < len(bounds)-1; n++ {
		lo, hi := bounds[n], bounds[n+1]
		fa, fb := f.pieces[i].Fn, o.pieces[j].Fn

		cuts, err := crossings(fa, fb, lo, hi)
		if err != nil {
			return nil, err
		}
		atomLo := lo
		for _, cut := range append(cuts, hi) {
			if cut-atomLo > 0 {
				out = append(out, Piece{Lo: atomLo, Fn: pickEnvelope(fa, fb, atomLo, cut, wantMin)})
				atomLo = cut
			}
		}

		if hi >= f.upper(i) && i+1 < len(f.pieces) {
			i++
		}
		if hi >= o.upper(j) && j+1 < len(o.pieces) {
			j++
		}
	}

	return (&Piecewise{pieces: out, end: f.end}).Simplify(), nil
}

// crossings returns the points strictly inside (lo, hi) where fa − fb
// changes side, sorted ascending. An identically zero difference has no
// crossings.
func crossings(fa, fb poly.Polynomial, lo, hi float64) ([]float64, error) {
	d := fa.Sub(fb)
	if d.IsZero() {
		return nil, nil
	}

	return d.RootsWithin(lo, hi)
}

// pickEnvelope chooses the piece polynomial representing the envelope on
// [lo, hi), deciding at the atom's midpoint (a finite probe one unit in for
// unbounded atoms). Between consecutive crossings the sign of fa − fb is
// constant, so one probe decides the whole atom.
func pickEnvelope(fa, fb poly.Polynomial, lo, hi float64, wantMin bool) poly.Polynomial {
	probe := lo + 1
	if !math.IsInf(hi, 1) {
		probe = lo + (hi-lo)/2
	}
	va, vb := fa.Value(probe), fb.Value(probe)
	if (wantMin && va <= vb) || (!wantMin && va >= vb) {
		return fa
	}

	return fb
}
