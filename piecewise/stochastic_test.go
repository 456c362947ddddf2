package piecewise_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/routeval/piecewise"
	"github.com/katalvlaran/routeval/poly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustStochastic builds a StochasticPolynomial from ξ-power coefficients.
func mustStochastic(t *testing.T, coeffs ...poly.Polynomial) poly.StochasticPolynomial {
	t.Helper()
	s, err := poly.NewStochastic(coeffs)
	require.NoError(t, err)

	return s
}

// TestNewStochastic_Validation shares the Piecewise structural invariants.
func TestNewStochastic_Validation(t *testing.T) {
	_, err := piecewise.NewStochastic(nil, 1)
	assert.ErrorIs(t, err, piecewise.ErrNoPieces)

	_, err = piecewise.NewStochastic([]piecewise.StochasticPiece{
		{Lo: 3, Fn: mustStochastic(t, poly.Zero())},
		{Lo: 3, Fn: mustStochastic(t, poly.Zero())},
	}, 5)
	assert.ErrorIs(t, err, piecewise.ErrUnorderedBounds)
}

// TestStochastic_PieceLookup walks the historical two-regime cost model:
// a time-varying morning regime then a flat tail.
func TestStochastic_PieceLookup(t *testing.T) {
	c, err := piecewise.NewStochastic([]piecewise.StochasticPiece{
		{Lo: 0, Fn: mustStochastic(t, mustPoly(t, 50, -0.25), poly.Constant(20))},
		{Lo: 100, Fn: mustStochastic(t, poly.Constant(25), poly.Constant(20))},
	}, math.Inf(1))
	require.NoError(t, err)

	assert.Equal(t, 2, c.NumPieces())

	v, ok := c.Value(0, 0)
	require.True(t, ok)
	assert.InDelta(t, 50.0, v, tol)

	v, ok = c.Value(0, 1)
	require.True(t, ok)
	assert.InDelta(t, 70.0, v, tol, "ξ=1 adds the full noise amplitude")

	v, ok = c.Value(200, 0.5)
	require.True(t, ok)
	assert.InDelta(t, 35.0, v, tol, "flat tail regime")

	_, ok = c.Value(-1, 0)
	assert.False(t, ok, "before the domain")
}

// TestStochastic_Expectation integrates ξ out piece by piece:
// E[(50 − 0.25x) + 20ξ] = 60 − 0.25x under ξ ~ U[0,1].
func TestStochastic_Expectation(t *testing.T) {
	c, err := piecewise.NewStochastic([]piecewise.StochasticPiece{
		{Lo: 0, Fn: mustStochastic(t, mustPoly(t, 50, -0.25), poly.Constant(20))},
		{Lo: 100, Fn: mustStochastic(t, poly.Constant(25), poly.Constant(20))},
	}, math.Inf(1))
	require.NoError(t, err)

	e := c.Expectation(poly.StandardUniform)
	assert.InDelta(t, 60.0, valueAt(t, e, 0), tol)
	assert.InDelta(t, 60.0-0.25*40, valueAt(t, e, 40), tol)
	assert.InDelta(t, 35.0, valueAt(t, e, 150), tol)
}

// TestStochastic_ExpectationSimplifies merges pieces whose expectations
// coincide.
func TestStochastic_ExpectationSimplifies(t *testing.T) {
	// Different noise shapes, identical means: 10 + 2ξ and 10 + 3ξ².
	c, err := piecewise.NewStochastic([]piecewise.StochasticPiece{
		{Lo: 0, Fn: mustStochastic(t, poly.Constant(10), poly.Constant(2))},
		{Lo: 5, Fn: mustStochastic(t, poly.Constant(10), poly.Zero(), poly.Constant(3))},
	}, 10)
	require.NoError(t, err)

	e := c.Expectation(poly.StandardUniform)
	assert.Equal(t, 1, e.NumPieces(), "equal expected costs collapse to one piece")
	assert.InDelta(t, 11.0, valueAt(t, e, 7), tol)
}
