// Graph, node, edge and state containers plus the package's sentinel errors.
package mdp

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/routeval/piecewise"
)

// Sentinel errors returned by the mdp package.
var (
	// ErrNilGraph indicates Solve was handed a nil graph.
	ErrNilGraph = errors.New("mdp: nil graph")

	// ErrDuplicateNode indicates two nodes sharing an ID.
	ErrDuplicateNode = errors.New("mdp: duplicate node id")

	// ErrDanglingEdge indicates an edge endpoint naming no node.
	ErrDanglingEdge = errors.New("mdp: edge endpoint not in graph")

	// ErrNilCost indicates an edge without a cost model.
	ErrNilCost = errors.New("mdp: edge requires a cost model")

	// ErrMissingValue indicates a terminal node without a pinned value
	// function.
	ErrMissingValue = errors.New("mdp: terminal node requires a value function")

	// ErrNilOperand indicates a nil value function or cost model operand.
	ErrNilOperand = errors.New("mdp: nil operand")

	// ErrArrivalOutOfDomain indicates an expected arrival time outside the
	// downstream value function's domain.
	ErrArrivalOutOfDomain = errors.New("mdp: expected arrival escapes the value function domain")

	// ErrBadOption indicates an out-of-range solver option.
	ErrBadOption = errors.New("mdp: invalid solver option")
)

// Node is a location in the routing graph. Terminal nodes carry a pinned
// value function and are excluded from solver updates; on non-terminal nodes
// Value is an optional initial guess (zero when nil).
type Node struct {
	ID       string
	Terminal bool
	Value    *piecewise.Piecewise
}

// Edge is a directed connection whose traversal cost depends on the
// departure time and a noise draw: Cost(x, ξ).
type Edge struct {
	From, To string
	Cost     *piecewise.Stochastic
}

// Graph is an immutable node/edge container built once by NewGraph. Node
// iteration order is the construction order, so sweeps are deterministic.
type Graph struct {
	order []string
	nodes map[string]Node
	out   map[string][]Edge
}

// NewGraph validates and assembles a graph: IDs must be unique, every edge
// endpoint must name a node, every edge needs a cost model, and every
// terminal node needs a value function. The input slices are copied.
func NewGraph(nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{
		order: make([]string, 0, len(nodes)),
		nodes: make(map[string]Node, len(nodes)),
		out:   make(map[string][]Edge, len(nodes)),
	}
	for _, n := range nodes {
		if _, dup := g.nodes[n.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
		}
		if n.Terminal && n.Value == nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingValue, n.ID)
		}
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)
	}
	for _, e := range edges {
		if _, ok := g.nodes[e.From]; !ok {
			return nil, fmt.Errorf("%w: %q -> %q (from)", ErrDanglingEdge, e.From, e.To)
		}
		if _, ok := g.nodes[e.To]; !ok {
			return nil, fmt.Errorf("%w: %q -> %q (to)", ErrDanglingEdge, e.From, e.To)
		}
		if e.Cost == nil {
			return nil, fmt.Errorf("%w: %q -> %q", ErrNilCost, e.From, e.To)
		}
		g.out[e.From] = append(g.out[e.From], e)
	}

	return g, nil
}

// Node returns the node with the given ID, comma-ok false when absent.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]

	return n, ok
}

// Nodes returns the nodes in construction order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}

	return out
}

// OutEdges returns a copy of the edges leaving id, in insertion order.
func (g *Graph) OutEdges(id string) []Edge {
	es := g.out[id]
	out := make([]Edge, len(es))
	copy(out, es)

	return out
}

// NumNodes reports the node count.
func (g *Graph) NumNodes() int { return len(g.order) }

// NumEdges reports the edge count.
func (g *Graph) NumEdges() int {
	n := 0
	for _, es := range g.out {
		n += len(es)
	}

	return n
}

// TaskSet is an immutable-by-convention set of outstanding task names; the
// policy layer consumes it, the solver itself never inspects it.
type TaskSet map[string]struct{}

// NewTaskSet builds a TaskSet from the given task names.
func NewTaskSet(tasks ...string) TaskSet {
	s := make(TaskSet, len(tasks))
	for _, t := range tasks {
		s[t] = struct{}{}
	}

	return s
}

// Contains reports whether the task is outstanding.
func (s TaskSet) Contains(task string) bool {
	_, ok := s[task]

	return ok
}

// Without returns a copy of the set with the task removed.
func (s TaskSet) Without(task string) TaskSet {
	out := make(TaskSet, len(s))
	for t := range s {
		if t != task {
			out[t] = struct{}{}
		}
	}

	return out
}

// Equal reports set equality.
func (s TaskSet) Equal(o TaskSet) bool {
	if len(s) != len(o) {
		return false
	}
	for t := range s {
		if _, ok := o[t]; !ok {
			return false
		}
	}

	return true
}

// Sorted returns the task names in ascending order.
func (s TaskSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)

	return out
}

// String renders the set as "{a, b, c}".
func (s TaskSet) String() string {
	return "{" + strings.Join(s.Sorted(), ", ") + "}"
}

// State is a policy-level position: a location plus the outstanding tasks.
type State struct {
	Location string
	Tasks    TaskSet
}

// Equal reports state equality: same location, same task set.
func (s State) Equal(o State) bool {
	return s.Location == o.Location && s.Tasks.Equal(o.Tasks)
}
