package mdp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routeval/mdp"
	"github.com/katalvlaran/routeval/piecewise"
	"github.com/katalvlaran/routeval/poly"
)

// singleValue wraps one polynomial as a value function on [0, +Inf).
func singleValue(t *testing.T, fn poly.Polynomial) *piecewise.Piecewise {
	t.Helper()
	v, err := piecewise.Single(fn, 0, math.Inf(1))
	require.NoError(t, err)

	return v
}

// noisyCost builds a one-piece cost model c0 + c1·ξ on [0, +Inf).
func noisyCost(t *testing.T, c0, c1 poly.Polynomial) *piecewise.Stochastic {
	t.Helper()
	fn, err := poly.NewStochastic([]poly.Polynomial{c0, c1})
	require.NoError(t, err)
	s, err := piecewise.SingleStochastic(fn, 0, math.Inf(1))
	require.NoError(t, err)

	return s
}

// TestIntegrateComposition_ConstantCostZeroValue: a deterministic constant
// cost c over a zero downstream value yields the constant function c.
func TestIntegrateComposition_ConstantCostZeroValue(t *testing.T) {
	pre, err := mdp.IntegrateComposition(zeroValue(t), constCost(t, 10), poly.StandardUniform)
	require.NoError(t, err)

	assert.Equal(t, 1, pre.NumPieces())
	assert.InDelta(t, 10.0, valueAt(t, pre, 0), tol)
	assert.InDelta(t, 10.0, valueAt(t, pre, 123), tol)
}

// TestIntegrateComposition_NoisyCostZeroValue: with a zero downstream value
// only the expected cost survives: E[10 + 20ξ] = 20 under ξ ~ U[0,1].
func TestIntegrateComposition_NoisyCostZeroValue(t *testing.T) {
	cost := noisyCost(t, poly.Constant(10), poly.Constant(20))

	pre, err := mdp.IntegrateComposition(zeroValue(t), cost, poly.StandardUniform)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, valueAt(t, pre, 7), tol)
}

// TestIntegrateComposition_LinearValue composes through a linear value:
// V(x) = x, C ≡ 10 gives preV(x) = 10 + (x + 10) = x + 20.
func TestIntegrateComposition_LinearValue(t *testing.T) {
	pre, err := mdp.IntegrateComposition(singleValue(t, poly.X()), constCost(t, 10), poly.StandardUniform)
	require.NoError(t, err)

	assert.InDelta(t, 20.0, valueAt(t, pre, 0), tol)
	assert.InDelta(t, 55.0, valueAt(t, pre, 35), tol)
}

// TestIntegrateComposition_NoisyLinearValue keeps the noise inside the
// composition: V(x) = x, C = 10 + 20ξ gives
// preV(x) = E[C + (x + C)] = x + 2·E[C] = x + 40.
func TestIntegrateComposition_NoisyLinearValue(t *testing.T) {
	cost := noisyCost(t, poly.Constant(10), poly.Constant(20))

	pre, err := mdp.IntegrateComposition(singleValue(t, poly.X()), cost, poly.StandardUniform)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, valueAt(t, pre, 0), tol)
	assert.InDelta(t, 43.0, valueAt(t, pre, 3), tol)
}

// TestIntegrateComposition_QuadraticValue exercises the full multinomial
// expansion: V(x) = x², C = 1 + 2ξ, ξ ~ U[0,1] gives
// preV(x) = x² + 4x + 6 + 1/3.
func TestIntegrateComposition_QuadraticValue(t *testing.T) {
	cost := noisyCost(t, poly.Constant(1), poly.Constant(2))
	quad, err := poly.New([]float64{0, 0, 1})
	require.NoError(t, err)

	pre, err := mdp.IntegrateComposition(singleValue(t, quad), cost, poly.StandardUniform)
	require.NoError(t, err)

	want := func(x float64) float64 { return x*x + 4*x + 6 + 1.0/3.0 }
	for _, x := range []float64{0, 1, 2.5, 10} {
		assert.InDelta(t, want(x), valueAt(t, pre, x), 1e-9, "x=%v", x)
	}
}

// TestIntegrateComposition_ArrivalCrossing refines where the expected
// arrival crosses a value breakpoint: V jumps from 0 to 5 at t=100 and the
// constant cost 10 pushes the crossing back to departure time 90.
func TestIntegrateComposition_ArrivalCrossing(t *testing.T) {
	value, err := piecewise.New([]piecewise.Piece{
		{Lo: 0, Fn: poly.Zero()},
		{Lo: 100, Fn: poly.Constant(5)},
	}, math.Inf(1))
	require.NoError(t, err)

	pre, err := mdp.IntegrateComposition(value, constCost(t, 10), poly.StandardUniform)
	require.NoError(t, err)

	require.Equal(t, 2, pre.NumPieces(), "identical pieces around the cost boundary merge away")
	assert.InDelta(t, 90.0, pre.Bounds()[1], 1e-9, "crossing pulled back by the travel time")
	assert.InDelta(t, 10.0, valueAt(t, pre, 50), tol)
	assert.InDelta(t, 15.0, valueAt(t, pre, 95), tol)
	assert.InDelta(t, 15.0, valueAt(t, pre, 200), tol)
}

// TestIntegrateComposition_TimeVaryingCost crosses a cost regime boundary
// and a value breakpoint in one call.
func TestIntegrateComposition_TimeVaryingCost(t *testing.T) {
	cost, err := piecewise.NewStochastic([]piecewise.StochasticPiece{
		{Lo: 0, Fn: poly.DeterministicStochastic(mustPoly(t, 50, -0.25))},
		{Lo: 100, Fn: poly.DeterministicStochastic(poly.Constant(25))},
	}, math.Inf(1))
	require.NoError(t, err)

	pre, err := mdp.IntegrateComposition(zeroValue(t), cost, poly.StandardUniform)
	require.NoError(t, err)

	// Zero downstream value: the pre-value is the expected cost itself.
	assert.InDelta(t, 50.0, valueAt(t, pre, 0), tol)
	assert.InDelta(t, 40.0, valueAt(t, pre, 40), tol)
	assert.InDelta(t, 25.0, valueAt(t, pre, 150), tol)
}

// TestIntegrateComposition_ArrivalOutOfDomain rejects arrivals the value
// function cannot answer.
func TestIntegrateComposition_ArrivalOutOfDomain(t *testing.T) {
	value, err := piecewise.ZeroOn(0, 20)
	require.NoError(t, err)
	cost, err := piecewise.SingleStochastic(
		poly.DeterministicStochastic(poly.Constant(30)), 0, 20)
	require.NoError(t, err)

	_, err = mdp.IntegrateComposition(value, cost, poly.StandardUniform)
	assert.ErrorIs(t, err, mdp.ErrArrivalOutOfDomain)
}

// TestIntegrateComposition_NilOperands.
func TestIntegrateComposition_NilOperands(t *testing.T) {
	_, err := mdp.IntegrateComposition(nil, constCost(t, 1), poly.StandardUniform)
	assert.ErrorIs(t, err, mdp.ErrNilOperand)

	_, err = mdp.IntegrateComposition(zeroValue(t), nil, poly.StandardUniform)
	assert.ErrorIs(t, err, mdp.ErrNilOperand)
}

// mustPoly builds a Polynomial from constant-first coefficients.
func mustPoly(t *testing.T, coeffs ...float64) poly.Polynomial {
	t.Helper()
	p, err := poly.New(coeffs)
	require.NoError(t, err)

	return p
}
