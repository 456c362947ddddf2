// Backward-induction solver: synchronous value-iteration sweeps with a
// pluggable aggregation policy and optional per-sweep compression.
package mdp

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/routeval/piecewise"
	"github.com/katalvlaran/routeval/poly"
)

// Aggregator folds one more candidate pre-value into the running aggregate
// for a node. acc is nil for the first candidate.
type Aggregator func(acc, next *piecewise.Piecewise) (*piecewise.Piecewise, error)

// AggregateMin keeps the pointwise lower envelope: expected-cost
// minimization, the default policy.
func AggregateMin(acc, next *piecewise.Piecewise) (*piecewise.Piecewise, error) {
	if acc == nil {
		return next, nil
	}

	return acc.Min(next)
}

// AggregateMax keeps the pointwise upper envelope: worst-case (or reward
// maximization) aggregation.
func AggregateMax(acc, next *piecewise.Piecewise) (*piecewise.Piecewise, error) {
	if acc == nil {
		return next, nil
	}

	return acc.Max(next)
}

// Options configures Solve. Build it with DefaultOptions and the With*
// setters.
type Options struct {
	// MaxIterations caps the number of sweeps; hitting the cap without
	// convergence yields Converged=false, not an error.
	MaxIterations int
	// Tolerance is the per-node EquivalentWithin threshold for declaring two
	// consecutive sweeps equal.
	Tolerance float64
	// Aggregate folds candidate pre-values per node; AggregateMin when nil.
	Aggregate Aggregator
	// Dist is the noise model of ξ; poly.StandardUniform when nil.
	Dist poly.XiDistribution
	// ApproxInterval enables LinearApproximation compression of every
	// updated value function between sweeps; 0 disables.
	ApproxInterval float64
	// Rounding enables RoundTrivial compression between sweeps.
	Rounding bool
	// Parallel is the number of concurrent node updates per sweep; values
	// below 2 mean serial.
	Parallel int
	// Logger receives per-sweep progress; silent when nil.
	Logger *slog.Logger
	// DoNothingAbsorbing keeps each node's previous value function as an
	// aggregation candidate, modelling idling at zero cost.
	DoNothingAbsorbing bool
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the solver defaults: 100 sweeps, 1e-9 tolerance,
// AggregateMin, ξ ~ U[0,1], serial, no compression, silent.
func DefaultOptions() Options {
	return Options{
		MaxIterations: 100,
		Tolerance:     1e-9,
		Aggregate:     AggregateMin,
		Dist:          poly.StandardUniform,
		Parallel:      1,
	}
}

// WithMaxIterations caps the sweep count.
func WithMaxIterations(n int) Option { return func(o *Options) { o.MaxIterations = n } }

// WithTolerance sets the convergence tolerance.
func WithTolerance(tol float64) Option { return func(o *Options) { o.Tolerance = tol } }

// WithAggregator replaces the aggregation policy.
func WithAggregator(a Aggregator) Option { return func(o *Options) { o.Aggregate = a } }

// WithXiDistribution replaces the noise model.
func WithXiDistribution(d poly.XiDistribution) Option { return func(o *Options) { o.Dist = d } }

// WithApproximationInterval enables LinearApproximation compression between
// sweeps with the given width threshold.
func WithApproximationInterval(interval float64) Option {
	return func(o *Options) { o.ApproxInterval = interval }
}

// WithRounding enables RoundTrivial compression between sweeps.
func WithRounding() Option { return func(o *Options) { o.Rounding = true } }

// WithParallel sets the number of concurrent node updates per sweep.
func WithParallel(n int) Option { return func(o *Options) { o.Parallel = n } }

// WithLogger attaches a structured logger for per-sweep progress.
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithDoNothingAbsorbing treats idling as absorbing: each node's previous
// value function joins the aggregation candidates.
func WithDoNothingAbsorbing() Option { return func(o *Options) { o.DoNothingAbsorbing = true } }

// validate normalizes and checks the assembled options.
func (o *Options) validate() error {
	if o.MaxIterations < 1 {
		return fmt.Errorf("%w: MaxIterations %d", ErrBadOption, o.MaxIterations)
	}
	if o.Tolerance <= 0 || math.IsNaN(o.Tolerance) {
		return fmt.Errorf("%w: Tolerance %v", ErrBadOption, o.Tolerance)
	}
	if o.ApproxInterval < 0 || math.IsNaN(o.ApproxInterval) {
		return fmt.Errorf("%w: ApproxInterval %v", ErrBadOption, o.ApproxInterval)
	}
	if o.Aggregate == nil {
		o.Aggregate = AggregateMin
	}
	if o.Dist == nil {
		o.Dist = poly.StandardUniform
	}
	if o.Parallel < 1 {
		o.Parallel = 1
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return nil
}

// Result is the outcome of Solve: one value function per node, the number of
// sweeps performed, and whether the table converged before the cap.
type Result struct {
	Values     map[string]*piecewise.Piecewise
	Iterations int
	Converged  bool
}

// Solve runs synchronous backward-induction sweeps over the graph until the
// table is stable within the tolerance or the iteration cap is reached.
//
// Each sweep reads only the previous table: for every non-terminal node the
// pre-values of its outgoing moves are computed against the destinations'
// previous value functions and folded by the aggregation policy. Terminal
// nodes keep their pinned value functions. Nodes with no candidates (no
// outgoing edges, idling not absorbing) keep their previous value.
func Solve(g *Graph, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	prev := initialTable(g)

	var converged bool
	it := 0
	for ; it < o.MaxIterations; it++ {
		next, err := sweep(g, prev, &o)
		if err != nil {
			return nil, err
		}

		converged = tablesAgree(g, prev, next, o.Tolerance)
		o.Logger.Debug("sweep complete",
			slog.Int("iteration", it+1),
			slog.Bool("converged", converged),
		)
		prev = next
		if converged {
			it++

			break
		}
	}

	o.Logger.Info("backward induction finished",
		slog.Int("iterations", it),
		slog.Bool("converged", converged),
	)

	return &Result{Values: prev, Iterations: it, Converged: converged}, nil
}

// initialTable seeds the value table: pinned terminal values, provided
// guesses, and the zero function on a shared domain for the rest.
func initialTable(g *Graph) map[string]*piecewise.Piecewise {
	start, end := defaultDomain(g)
	table := make(map[string]*piecewise.Piecewise, g.NumNodes())
	for _, n := range g.Nodes() {
		if n.Value != nil {
			table[n.ID] = n.Value

			continue
		}
		zero, _ := piecewise.ZeroOn(start, end)
		table[n.ID] = zero
	}

	return table
}

// defaultDomain picks the domain for unseeded nodes: the first provided
// value function's domain, or [0, +Inf) when none exists.
func defaultDomain(g *Graph) (float64, float64) {
	for _, n := range g.Nodes() {
		if n.Value != nil {
			return n.Value.Start(), n.Value.End()
		}
	}

	return 0, math.Inf(1)
}

// sweep computes the next table from the previous one. With Parallel > 1 the
// per-node updates run concurrently under an errgroup; every update reads
// prev only, so there is no intra-sweep ordering.
func sweep(g *Graph, prev map[string]*piecewise.Piecewise, o *Options) (map[string]*piecewise.Piecewise, error) {
	nodes := g.Nodes()
	updated := make([]*piecewise.Piecewise, len(nodes))

	if o.Parallel > 1 {
		var eg errgroup.Group
		eg.SetLimit(o.Parallel)
		for i, n := range nodes {
			eg.Go(func() error {
				v, err := updateNode(g, n, prev, o)
				if err != nil {
					return err
				}
				updated[i] = v

				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, n := range nodes {
			v, err := updateNode(g, n, prev, o)
			if err != nil {
				return nil, err
			}
			updated[i] = v
		}
	}

	next := make(map[string]*piecewise.Piecewise, len(nodes))
	for i, n := range nodes {
		next[n.ID] = updated[i]
	}

	return next, nil
}

// updateNode computes one node's next value function from the previous
// table.
func updateNode(g *Graph, n Node, prev map[string]*piecewise.Piecewise, o *Options) (*piecewise.Piecewise, error) {
	if n.Terminal {
		return prev[n.ID], nil
	}

	var acc *piecewise.Piecewise
	if o.DoNothingAbsorbing {
		acc = prev[n.ID]
	}
	for _, e := range g.OutEdges(n.ID) {
		pre, err := (Move{Edge: e}).PreValue(prev[e.To], o.Dist)
		if err != nil {
			return nil, fmt.Errorf("mdp: updating %q via edge to %q: %w", n.ID, e.To, err)
		}
		if acc, err = o.Aggregate(acc, pre); err != nil {
			return nil, fmt.Errorf("mdp: aggregating at %q: %w", n.ID, err)
		}
	}
	if acc == nil {
		// No candidates at all: keep the previous value.
		return prev[n.ID], nil
	}

	if o.ApproxInterval > 0 {
		acc = acc.LinearApproximation(o.ApproxInterval)
	}
	if o.Rounding {
		acc = acc.RoundTrivial()
	}

	return acc, nil
}

// tablesAgree reports whether every node's value function is equivalent
// within tol across two sweeps.
func tablesAgree(g *Graph, prev, next map[string]*piecewise.Piecewise, tol float64) bool {
	for _, id := range g.order {
		if !next[id].EquivalentWithin(prev[id], tol) {
			return false
		}
	}

	return true
}
