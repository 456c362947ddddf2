package mdp

import (
	"github.com/katalvlaran/routeval/piecewise"
	"github.com/katalvlaran/routeval/poly"
)

// Action is anything the policy layer can do in a state. Perform applies the
// action's state transition; ok=false marks a defined no-op (the action does
// not apply there), never an error. PreValue computes the action's
// contribution to the backward recursion: the expected cost-to-go of taking
// the action at departure time x against the downstream value function.
type Action interface {
	Perform(s State) (State, bool)
	PreValue(current *piecewise.Piecewise, dist poly.XiDistribution) (*piecewise.Piecewise, error)
}

// Move traverses an edge. It applies only in states located at the edge's
// origin; elsewhere Perform returns the input state unchanged with ok=false.
type Move struct {
	Edge Edge
}

// Perform relocates the state along the edge.
func (m Move) Perform(s State) (State, bool) {
	if s.Location != m.Edge.From {
		return s, false
	}

	return State{Location: m.Edge.To, Tasks: s.Tasks}, true
}

// PreValue evaluates preV(x) = E[C(x,ξ) + V(x + C(x,ξ))] for the edge's cost
// model C against the destination's value function V.
func (m Move) PreValue(current *piecewise.Piecewise, dist poly.XiDistribution) (*piecewise.Piecewise, error) {
	return IntegrateComposition(current, m.Edge.Cost, dist)
}

// DoNothing is the idle action. It never applies and contributes no value
// function: PreValue returns (nil, nil), absent by contract. Whether idling
// is instead treated as absorbing (keeping the node's current value as a
// candidate) is a solver option.
type DoNothing struct{}

// Perform returns the input state unchanged with ok=false.
func (DoNothing) Perform(s State) (State, bool) { return s, false }

// PreValue returns (nil, nil): no contribution.
func (DoNothing) PreValue(*piecewise.Piecewise, poly.XiDistribution) (*piecewise.Piecewise, error) {
	return nil, nil
}
