// Stochastic is the piecewise analogue holding one StochasticPolynomial per
// piece: the representation of an edge's random travel-time cost as a
// function of departure time.
package piecewise

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/routeval/poly"
)

// StochasticPiece pairs a half-open interval's lower bound with the
// StochasticPolynomial valid on it.
type StochasticPiece struct {
	Lo float64
	Fn poly.StochasticPolynomial
}

// Stochastic is an immutable piecewise bivariate function C(x, ξ) on
// [pieces[0].Lo, end), subject to the same contiguity invariants as
// Piecewise. It carries no algebra of its own beyond piece lookup — all
// composition runs through poly.Polynomial.Compose and the explicit
// ξ-integration.
type Stochastic struct {
	pieces []StochasticPiece
	end    float64
}

// NewStochastic constructs a Stochastic from ordered pieces and a terminal
// bound. The piece slice is copied; the invariants of New apply.
func NewStochastic(pieces []StochasticPiece, end float64) (*Stochastic, error) {
	los := make([]float64, len(pieces))
	for i := range pieces {
		los[i] = pieces[i].Lo
	}
	if err := validatePieces(los, end); err != nil {
		return nil, err
	}
	out := make([]StochasticPiece, len(pieces))
	copy(out, pieces)

	return &Stochastic{pieces: out, end: end}, nil
}

// SingleStochastic constructs a one-piece cost model: fn on [lo, end).
func SingleStochastic(fn poly.StochasticPolynomial, lo, end float64) (*Stochastic, error) {
	return NewStochastic([]StochasticPiece{{Lo: lo, Fn: fn}}, end)
}

// NumPieces reports the number of pieces.
func (c *Stochastic) NumPieces() int { return len(c.pieces) }

// Start returns the domain's lower bound.
func (c *Stochastic) Start() float64 { return c.pieces[0].Lo }

// End returns the domain's terminal bound, possibly +Inf.
func (c *Stochastic) End() float64 { return c.end }

// Bounds returns the breakpoint sequence, one lower bound per piece plus
// the terminal bound.
func (c *Stochastic) Bounds() []float64 {
	out := make([]float64, len(c.pieces)+1)
	for i := range c.pieces {
		out[i] = c.pieces[i].Lo
	}
	out[len(c.pieces)] = c.end

	return out
}

// Pieces returns a copy of the piece sequence.
func (c *Stochastic) Pieces() []StochasticPiece {
	out := make([]StochasticPiece, len(c.pieces))
	copy(out, c.pieces)

	return out
}

// upper returns piece i's exclusive upper bound.
func (c *Stochastic) upper(i int) float64 {
	if i+1 < len(c.pieces) {
		return c.pieces[i+1].Lo
	}

	return c.end
}

// PieceAt returns the StochasticPolynomial governing departure time x,
// comma-ok false outside the domain.
func (c *Stochastic) PieceAt(x float64) (poly.StochasticPolynomial, bool) {
	for i, pc := range c.pieces {
		if x >= pc.Lo && x < c.upper(i) {
			return pc.Fn, true
		}
	}

	return poly.StochasticPolynomial{}, false
}

// Value evaluates C(x, ξ) for a determined noise draw, comma-ok false
// outside the domain.
func (c *Stochastic) Value(x, xi float64) (float64, bool) {
	fn, ok := c.PieceAt(x)
	if !ok {
		return 0, false
	}

	return fn.Value(x, xi), true
}

// Expectation integrates ξ out of every piece against dist in closed form,
// producing the expected cost as a deterministic Piecewise, simplified.
func (c *Stochastic) Expectation(dist poly.XiDistribution) *Piecewise {
	out := make([]Piece, len(c.pieces))
	for i, pc := range c.pieces {
		out[i] = Piece{Lo: pc.Lo, Fn: pc.Fn.Expectation(dist)}
	}

	return (&Piecewise{pieces: out, end: c.end}).Simplify()
}

// String renders one piece per line: "[lo, hi) fn".
func (c *Stochastic) String() string {
	var b strings.Builder
	for i, pc := range c.pieces {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%g, %g) %s", pc.Lo, c.upper(i), pc.Fn)
	}

	return b.String()
}
