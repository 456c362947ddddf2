// Package piecewise defines the piecewise function types, their validated
// constructors and sentinel errors.
package piecewise

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/katalvlaran/routeval/poly"
)

// Sentinel errors returned by the piecewise package.
var (
	// ErrNoPieces indicates construction from an empty piece list.
	ErrNoPieces = errors.New("piecewise: at least one piece is required")

	// ErrUnorderedBounds indicates lower bounds that are not strictly
	// increasing, or a terminal bound at or below the last lower bound.
	ErrUnorderedBounds = errors.New("piecewise: bounds must be strictly increasing")

	// ErrNotFinite indicates a NaN or infinite lower bound (only the
	// terminal bound may be +Inf).
	ErrNotFinite = errors.New("piecewise: interior bounds must be finite")

	// ErrDomainMismatch indicates a binary operation over two functions
	// whose overall domains differ.
	ErrDomainMismatch = errors.New("piecewise: operand domains differ")

	// ErrOutOfDomain indicates an interval that escapes the function's
	// domain.
	ErrOutOfDomain = errors.New("piecewise: interval outside function domain")

	// ErrNilOperand indicates a nil *Piecewise or *Stochastic operand.
	ErrNilOperand = errors.New("piecewise: nil operand")
)

// Piece pairs a half-open interval's lower bound with the Polynomial valid
// on it. The upper bound is the next piece's Lo, or the terminal bound for
// the last piece.
type Piece struct {
	Lo float64
	Fn poly.Polynomial
}

// Piecewise is an immutable piecewise polynomial function on
// [pieces[0].Lo, end). The bound/piece structure is a single ordered
// sequence — there is no separate bounds array to keep in sync.
type Piecewise struct {
	pieces []Piece
	end    float64
}

// validatePieces checks the shared structural invariants of Piecewise and
// Stochastic: non-empty, strictly increasing finite lower bounds, terminal
// bound above the last lower bound.
func validatePieces(los []float64, end float64) error {
	if len(los) == 0 {
		return ErrNoPieces
	}
	for i, lo := range los {
		if math.IsNaN(lo) || math.IsInf(lo, 0) {
			return fmt.Errorf("%w: bound %d is %v", ErrNotFinite, i, lo)
		}
		if i > 0 && lo <= los[i-1] {
			return fmt.Errorf("%w: bound %d (%v) does not exceed bound %d (%v)",
				ErrUnorderedBounds, i, lo, i-1, los[i-1])
		}
	}
	if math.IsNaN(end) || end <= los[len(los)-1] {
		return fmt.Errorf("%w: terminal bound %v does not exceed last lower bound %v",
			ErrUnorderedBounds, end, los[len(los)-1])
	}

	return nil
}

// New constructs a Piecewise from ordered pieces and a terminal bound
// (math.Inf(1) for a half-line domain). The piece slice is copied.
func New(pieces []Piece, end float64) (*Piecewise, error) {
	los := make([]float64, len(pieces))
	for i := range pieces {
		los[i] = pieces[i].Lo
	}
	if err := validatePieces(los, end); err != nil {
		return nil, err
	}
	out := make([]Piece, len(pieces))
	copy(out, pieces)

	return &Piecewise{pieces: out, end: end}, nil
}

// Single constructs a one-piece function: fn on [lo, end).
func Single(fn poly.Polynomial, lo, end float64) (*Piecewise, error) {
	return New([]Piece{{Lo: lo, Fn: fn}}, end)
}

// ZeroOn constructs the zero function on [lo, end) — the usual terminal
// value function.
func ZeroOn(lo, end float64) (*Piecewise, error) {
	return Single(poly.Zero(), lo, end)
}

// NumPieces reports the number of pieces.
func (f *Piecewise) NumPieces() int { return len(f.pieces) }

// Start returns the domain's lower bound.
func (f *Piecewise) Start() float64 { return f.pieces[0].Lo }

// End returns the domain's terminal bound, possibly +Inf.
func (f *Piecewise) End() float64 { return f.end }

// Bounds returns the full breakpoint sequence b₀ < … < b_k: one lower bound
// per piece plus the terminal bound, so len == NumPieces()+1.
func (f *Piecewise) Bounds() []float64 {
	out := make([]float64, len(f.pieces)+1)
	for i := range f.pieces {
		out[i] = f.pieces[i].Lo
	}
	out[len(f.pieces)] = f.end

	return out
}

// Pieces returns a copy of the piece sequence.
func (f *Piecewise) Pieces() []Piece {
	out := make([]Piece, len(f.pieces))
	copy(out, f.pieces)

	return out
}

// Degree reports the highest polynomial degree across pieces.
func (f *Piecewise) Degree() int {
	deg := 0
	for _, pc := range f.pieces {
		if d := pc.Fn.Degree(); d > deg {
			deg = d
		}
	}

	return deg
}

// upper returns piece i's exclusive upper bound.
func (f *Piecewise) upper(i int) float64 {
	if i+1 < len(f.pieces) {
		return f.pieces[i+1].Lo
	}

	return f.end
}

// pieceIndex returns the index of the piece containing x, or -1 outside the
// domain.
func (f *Piecewise) pieceIndex(x float64) int {
	for i, pc := range f.pieces {
		if x >= pc.Lo && x < f.upper(i) {
			return i
		}
	}

	return -1
}

// Value evaluates the function at x. The second result is false when x lies
// outside [Start, End).
func (f *Piecewise) Value(x float64) (float64, bool) {
	i := f.pieceIndex(x)
	if i < 0 {
		return 0, false
	}

	return f.pieces[i].Fn.Value(x), true
}

// FnAt returns the piece polynomial governing x, comma-ok false outside the
// domain.
func (f *Piecewise) FnAt(x float64) (poly.Polynomial, bool) {
	i := f.pieceIndex(x)
	if i < 0 {
		return poly.Polynomial{}, false
	}

	return f.pieces[i].Fn, true
}

// Equal reports exact structural equality: identical bounds and identical
// coefficient vectors per piece. Like poly.Polynomial.Equal, this is the
// deduplication comparison — use EquivalentWithin for computed values.
func (f *Piecewise) Equal(o *Piecewise) bool {
	if o == nil || len(f.pieces) != len(o.pieces) || f.end != o.end {
		return false
	}
	for i := range f.pieces {
		if f.pieces[i].Lo != o.pieces[i].Lo || !f.pieces[i].Fn.Equal(o.pieces[i].Fn) {
			return false
		}
	}

	return true
}

// samplePoints returns the evaluation grid used by EquivalentWithin: every
// finite breakpoint of both operands plus each atom's midpoint; intervals
// stretching to +Inf are probed at fixed offsets past the last bound.
func samplePoints(f, o *Piecewise) []float64 {
	bounds := mergeBounds(f.Bounds(), o.Bounds())
	out := make([]float64, 0, 2*len(bounds)+2)
	for k, b := range bounds {
		if math.IsInf(b, 1) {
			// Probe the unbounded tail a little and a lot past the last
			// finite bound.
			last := bounds[k-1]
			out = append(out, last+1, last+10)

			continue
		}
		out = append(out, b)
		if k+1 < len(bounds) && !math.IsInf(bounds[k+1], 1) {
			out = append(out, b+(bounds[k+1]-b)/2)
		}
	}

	return out
}

// EquivalentWithin reports whether f and o agree within tol at every sampled
// point of the union of their breakpoints (midpoints included). Points where
// exactly one of the two is undefined count as disagreement; points outside
// both domains (such as a finite terminal bound) contribute nothing.
func (f *Piecewise) EquivalentWithin(o *Piecewise, tol float64) bool {
	if o == nil {
		return false
	}
	for _, x := range samplePoints(f, o) {
		fv, fok := f.Value(x)
		ov, ook := o.Value(x)
		if fok != ook {
			return false
		}
		if !fok {
			continue
		}
		if !scalar.EqualWithinAbsOrRel(fv, ov, tol, tol) {
			return false
		}
	}

	return true
}

// String renders one piece per line: "[lo, hi) fn".
func (f *Piecewise) String() string {
	var b strings.Builder
	for i, pc := range f.pieces {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%g, %g) %s", pc.Lo, f.upper(i), pc.Fn)
	}

	return b.String()
}

// mergeBounds returns the ordered two-pointer union of two ascending bound
// sequences; shared values collapse to one entry. It is the breakpoint
// reconciliation used by Add, the envelopes and the ξ-integration.
func mergeBounds(a, b []float64) []float64 {
	out := make([]float64, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case b[j] < a[i]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)

	return out
}
