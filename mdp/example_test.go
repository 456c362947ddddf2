package mdp_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/routeval/mdp"
	"github.com/katalvlaran/routeval/piecewise"
	"github.com/katalvlaran/routeval/poly"
)

// ExampleSolve computes the expected cost-to-go of a depot whose single
// route to a customer is cheap in the afternoon and dear in the morning.
func ExampleSolve() {
	zero, _ := piecewise.ZeroOn(0, math.Inf(1))
	morning, _ := poly.New([]float64{50, -0.25})
	cost, _ := piecewise.NewStochastic([]piecewise.StochasticPiece{
		{Lo: 0, Fn: poly.DeterministicStochastic(morning)},
		{Lo: 100, Fn: poly.DeterministicStochastic(poly.Constant(25))},
	}, math.Inf(1))

	g, _ := mdp.NewGraph(
		[]mdp.Node{
			{ID: "depot"},
			{ID: "customer", Terminal: true, Value: zero},
		},
		[]mdp.Edge{{From: "depot", To: "customer", Cost: cost}})

	res, _ := mdp.Solve(g)
	fmt.Println(res.Values["depot"])
	fmt.Println("converged:", res.Converged)
	// Output:
	// [0, 100) 50 - 0.25·x
	// [100, +Inf) 25
	// converged: true
}

// ExampleIntegrateComposition evaluates a single backward step by hand: a
// constant travel time of 10 toward a zero terminal value.
func ExampleIntegrateComposition() {
	zero, _ := piecewise.ZeroOn(0, math.Inf(1))
	cost, _ := piecewise.SingleStochastic(
		poly.DeterministicStochastic(poly.Constant(10)), 0, math.Inf(1))

	pre, _ := mdp.IntegrateComposition(zero, cost, poly.StandardUniform)
	fmt.Println(pre)
	// Output:
	// [0, +Inf) 10
}
