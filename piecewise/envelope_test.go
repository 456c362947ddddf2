package piecewise_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/routeval/piecewise"
	"github.com/katalvlaran/routeval/poly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMin_Constants takes the lower of two flat functions.
func TestMin_Constants(t *testing.T) {
	a := mustPw(t, math.Inf(1), piecewise.Piece{Lo: 0, Fn: poly.Constant(5)})
	b := mustPw(t, math.Inf(1), piecewise.Piece{Lo: 0, Fn: poly.Constant(3)})

	m, err := a.Min(b)
	require.NoError(t, err)
	assert.Equal(t, 1, m.NumPieces())
	assert.InDelta(t, 3.0, valueAt(t, m, 17), tol)
}

// TestMin_LineCrossing inserts a breakpoint at the crossing of a line and a
// constant: min(x, 4) switches pieces at x = 4.
func TestMin_LineCrossing(t *testing.T) {
	line := mustPw(t, math.Inf(1), piecewise.Piece{Lo: 0, Fn: poly.X()})
	flat := mustPw(t, math.Inf(1), piecewise.Piece{Lo: 0, Fn: poly.Constant(4)})

	m, err := line.Min(flat)
	require.NoError(t, err)
	require.Equal(t, 2, m.NumPieces(), "one crossing, two pieces")
	assert.InDelta(t, 4.0, m.Bounds()[1], 1e-9, "crossing at x=4 becomes a breakpoint")
	assert.InDelta(t, 2.0, valueAt(t, m, 2), tol)
	assert.InDelta(t, 4.0, valueAt(t, m, 100), tol)
}

// TestMax_LineCrossing is the mirrored upper envelope.
func TestMax_LineCrossing(t *testing.T) {
	line := mustPw(t, math.Inf(1), piecewise.Piece{Lo: 0, Fn: poly.X()})
	flat := mustPw(t, math.Inf(1), piecewise.Piece{Lo: 0, Fn: poly.Constant(4)})

	m, err := line.Max(flat)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, valueAt(t, m, 2), tol)
	assert.InDelta(t, 100.0, valueAt(t, m, 100), tol)
}

// TestMin_QuadraticDoubleCrossing handles two crossings inside one merged
// interval: min(x² - 4x + 5, 2) dips under the constant between 1 and 3.
func TestMin_QuadraticDoubleCrossing(t *testing.T) {
	quad := mustPw(t, 10, piecewise.Piece{Lo: 0, Fn: mustPoly(t, 5, -4, 1)})
	flat := mustPw(t, 10, piecewise.Piece{Lo: 0, Fn: poly.Constant(2)})

	m, err := quad.Min(flat)
	require.NoError(t, err)
	require.Equal(t, 3, m.NumPieces(), "two crossings split the interval into three pieces")
	assert.InDelta(t, 2.0, valueAt(t, m, 0.5), tol, "flat wins left of x=1")
	assert.InDelta(t, 1.0, valueAt(t, m, 2), tol, "parabola bottom wins between the crossings")
	assert.InDelta(t, 2.0, valueAt(t, m, 5), tol, "flat wins right of x=3")
	assert.InDelta(t, 1.0, m.Bounds()[1], 1e-9)
	assert.InDelta(t, 3.0, m.Bounds()[2], 1e-9)
}

// TestMin_MultiPieceOperands reconciles breakpoints before enveloping.
func TestMin_MultiPieceOperands(t *testing.T) {
	a := mustPw(t, 20,
		piecewise.Piece{Lo: 0, Fn: poly.Constant(1)},
		piecewise.Piece{Lo: 10, Fn: poly.Constant(6)},
	)
	b := mustPw(t, 20,
		piecewise.Piece{Lo: 0, Fn: poly.Constant(2)},
		piecewise.Piece{Lo: 5, Fn: poly.Constant(4)},
	)

	m, err := a.Min(b)
	require.NoError(t, err)
	for _, x := range []float64{0, 4, 5, 9, 10, 19} {
		av := valueAt(t, a, x)
		bv := valueAt(t, b, x)
		assert.InDelta(t, math.Min(av, bv), valueAt(t, m, x), tol, "pointwise minimum at x=%v", x)
	}
}

// TestMin_IdenticalOperands short-circuits the zero difference.
func TestMin_IdenticalOperands(t *testing.T) {
	a := mustPw(t, math.Inf(1), piecewise.Piece{Lo: 0, Fn: mustPoly(t, 1, 2)})

	m, err := a.Min(a)
	require.NoError(t, err)
	assert.True(t, m.EquivalentWithin(a, tol))
}

// TestMin_DomainMismatch rejects operands on different domains.
func TestMin_DomainMismatch(t *testing.T) {
	a := mustPw(t, 10, piecewise.Piece{Lo: 0, Fn: poly.Zero()})
	b := mustPw(t, math.Inf(1), piecewise.Piece{Lo: 0, Fn: poly.Zero()})

	_, err := a.Min(b)
	assert.ErrorIs(t, err, piecewise.ErrDomainMismatch)
}
