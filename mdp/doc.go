// Package mdp implements backward induction over a routing graph whose edges
// carry time-dependent stochastic cost models: the recursion that turns
// terminal value functions into expected-cost-to-go functions for every node.
//
// The graph is a thin immutable container: Nodes (terminal nodes pinned to a
// known value function), Edges (a piecewise stochastic cost C(x, ξ) per
// edge), and a State/TaskSet surface for the policy layer on top. All the
// mathematics lives in two places:
//
//   - IntegrateComposition — the exact evaluation of
//     preV(x) = E[C(x,ξ) + V(x + C(x,ξ))]: the breakpoint grids of cost and
//     value are merged, each interval is refined where the expected arrival
//     crosses a value breakpoint, and ξ is integrated out in closed form by
//     raw moments.
//   - Solve — synchronous value-iteration sweeps: every non-terminal node
//     aggregates the pre-values of its outgoing moves (pointwise Min by
//     default) against the previous sweep's table, until successive tables
//     agree within tolerance or the iteration cap is reached.
//
// Sweeps are data-parallel on request (WithParallel): each sweep reads only
// the previous table, so nodes within a sweep never race; a barrier separates
// sweeps. Optional compression between sweeps (WithApproximationInterval,
// WithRounding) trades exactness for piece count.
//
// Errors (sentinel):
//
//   - ErrNilGraph            Solve on a nil graph.
//   - ErrDuplicateNode       two nodes share an ID.
//   - ErrDanglingEdge        an edge endpoint names no node.
//   - ErrNilCost             an edge without a cost model.
//   - ErrMissingValue        a terminal node without a value function.
//   - ErrNilOperand          a nil value function or cost model operand.
//   - ErrArrivalOutOfDomain  an expected arrival time the value function
//     cannot answer.
//   - ErrBadOption           an out-of-range solver option.
package mdp
