// Core splicing algebra on Piecewise: simplification, addition over the
// finest common partition, domain shifting and interval replacement.
package piecewise

import (
	"fmt"

	"github.com/katalvlaran/routeval/poly"
)

// Simplify returns f with consecutive pieces carrying identical coefficient
// vectors merged into one, collapsing the breakpoint between them. The
// comparison is exact (poly.Polynomial.Equal); values are preserved
// everywhere and the pass is idempotent.
func (f *Piecewise) Simplify() *Piecewise {
	out := make([]Piece, 0, len(f.pieces))
	for _, pc := range f.pieces {
		if len(out) > 0 && out[len(out)-1].Fn.Equal(pc.Fn) {
			continue
		}
		out = append(out, pc)
	}

	return &Piecewise{pieces: out, end: f.end}
}

// Add returns f + o on the finest common partition: the breakpoint
// sequences are merged with a two-pointer union (shared breakpoints
// collapse), the contributing polynomials are added pointwise in each
// resulting sub-interval, and the result is simplified. The operands must
// share the same overall domain (ErrDomainMismatch).
func (f *Piecewise) Add(o *Piecewise) (*Piecewise, error) {
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
		out = append(out, Piece{Lo: bounds[n], Fn: f.pieces[i].Fn.Add(o.pieces[j].Fn)})
		if bounds[n+1] >= f.upper(i) && i+1 < len(f.pieces) {
			i++
		}
		if bounds[n+1] >= o.upper(j) && j+1 < len(o.pieces) {
			j++
		}
	}

	return (&Piecewise{pieces: out, end: f.end}).Simplify(), nil
}

// AddScalar returns f + c, the constant added to every piece, simplified.
func (f *Piecewise) AddScalar(c float64) *Piecewise {
	out := make([]Piece, len(f.pieces))
	for i, pc := range f.pieces {
		out[i] = Piece{Lo: pc.Lo, Fn: pc.Fn.AddScalar(c)}
	}

	return (&Piecewise{pieces: out, end: f.end}).Simplify()
}

// Shift returns the function V′ with V′(x) = V(x + t): the view of a
// downstream value function from a decision taken t earlier. The first and
// last bounds stay fixed; interior breakpoints move by −t and only those
// remaining inside (first, last] survive; each surviving piece's polynomial
// has its variable shifted accordingly. Pieces pushed entirely below the
// first bound are absorbed by their right neighbour.
func (f *Piecewise) Shift(t float64) *Piecewise {
	first, last := f.Start(), f.end

	out := make([]Piece, 0, len(f.pieces))
	lo := first
	for i := 0; i < len(f.pieces)-1; i++ {
		hi := f.upper(i) - t
		if hi <= first || hi > last {
			continue
		}
		out = append(out, Piece{Lo: lo, Fn: f.pieces[i].Fn.Shift(t)})
		lo = hi
	}
	if lo < last {
		out = append(out, Piece{Lo: lo, Fn: f.pieces[len(f.pieces)-1].Fn.Shift(t)})
	}

	return &Piecewise{pieces: out, end: last}
}

// Replace returns f with fn spliced over [left, right): pieces straddling
// left or right are split at those points, pieces strictly inside the
// interval are dropped, and everything outside is untouched. The interval
// must satisfy Start ≤ left < right ≤ End (ErrOutOfDomain otherwise).
func (f *Piecewise) Replace(fn poly.Polynomial, left, right float64) (*Piecewise, error) {
	if left >= right {
		return nil, fmt.Errorf("%w: empty interval [%g, %g)", ErrOutOfDomain, left, right)
	}
	if left < f.Start() || right > f.end {
		return nil, fmt.Errorf("%w: [%g, %g) escapes [%g, %g)",
			ErrOutOfDomain, left, right, f.Start(), f.end)
	}

	out := make([]Piece, 0, len(f.pieces)+2)
	// Everything beginning before left survives on its original lower
	// bound; the splice entry truncates the straddler at left.
	for _, pc := range f.pieces {
		if pc.Lo < left {
			out = append(out, pc)
		}
	}
	out = append(out, Piece{Lo: left, Fn: fn})
	// Everything extending past right resumes there: the straddler restarts
	// at right, later pieces keep their own lower bound.
	for i, pc := range f.pieces {
		if f.upper(i) <= right {
			continue
		}
		lo := pc.Lo
		if lo < right {
			lo = right
		}
		out = append(out, Piece{Lo: lo, Fn: pc.Fn})
	}

	return &Piecewise{pieces: out, end: f.end}, nil
}
