// Package graph implements the core differentiable computation engine: a
// node table addressed by index, name-keyed lookup, topological forward and
// reverse passes, and the position node the integrator reads gradients
// from.
package graph

import (
	"fmt"
	"sort"
)

// Kind tags which of the two node families a Node belongs to, the "tagged
// variant at the boundary" called for instead of deep inheritance.
type Kind int

const (
	KindCoord Kind = iota
	KindPotential
)

// Node is the engine's bookkeeping record: a stable name, the polymorphic
// computation, parent/child indices, and the two precomputed execution
// levels that determine firing order. Nodes reference each other by index
// into the engine's node table, never by pointer.
type Node struct {
	Name         string
	Kind         Kind
	Comp         Computation
	Parents      []int
	Children     []int
	ForwardLevel int
	ReverseLevel int
}

// Engine owns the node table and orchestrates forward/reverse evaluation.
// The position node always occupies index 0.
type Engine struct {
	nodes     []*Node
	byName    map[string]int
	potential float32

	forwardOrder []int
	reverseOrder []int
}

// New constructs an engine containing only a position node sized 3 x nAtom.
func New(nAtom int) *Engine {
	e := &Engine{byName: make(map[string]int)}
	pos := NewPosition(nAtom)
	e.nodes = append(e.nodes, &Node{
		Name: "pos",
		Kind: KindCoord,
		Comp: pos,
	})
	e.byName["pos"] = 0
	e.recomputeOrder()
	return e
}

// AddNode appends a node referring to previously added parents. It fails
// with ErrDuplicateName if name is already present, ErrUnknownParent if any
// parent name is missing, and ErrTypeMismatch if a named parent does not
// implement CoordComputation (only coordinate-producing nodes can be read
// by downstream consumers) or comp implements neither CoordComputation nor
// PotentialComputation. After insertion it recomputes every node's
// ForwardLevel and ReverseLevel; insertion index remains the stable
// secondary sort key.
func (e *Engine) AddNode(name string, comp Computation, parentNames []string) (int, error) {
	if _, exists := e.byName[name]; exists {
		return -1, fmt.Errorf("add node %q: %w", name, ErrDuplicateName)
	}

	parents := make([]int, 0, len(parentNames))
	for _, pn := range parentNames {
		idx, ok := e.byName[pn]
		if !ok {
			return -1, fmt.Errorf("add node %q: parent %q: %w", name, pn, ErrUnknownParent)
		}
		if _, ok := e.nodes[idx].Comp.(CoordComputation); !ok {
			return -1, fmt.Errorf("add node %q: parent %q is not a coordinate node: %w", name, pn, ErrTypeMismatch)
		}
		parents = append(parents, idx)
	}

	_, isCoord := comp.(CoordComputation)
	_, isPotential := comp.(PotentialComputation)
	switch {
	case isCoord == isPotential:
		return -1, fmt.Errorf("add node %q: computation must implement exactly one of CoordComputation or PotentialComputation: %w", name, ErrTypeMismatch)
	}

	kind := KindCoord
	if isPotential {
		kind = KindPotential
	}

	idx := len(e.nodes)
	node := &Node{
		Name:    name,
		Kind:    kind,
		Comp:    comp,
		Parents: parents,
	}
	e.nodes = append(e.nodes, node)
	e.byName[name] = idx
	for _, p := range parents {
		e.nodes[p].Children = append(e.nodes[p].Children, idx)
	}

	e.recomputeOrder()
	return idx, nil
}

// recomputeOrder recomputes ForwardLevel/ReverseLevel for every node and
// rebuilds the cached forward/reverse firing orders. AddNode is the only
// caller; this keeps evaluation itself allocation-free and lookup-free.
func (e *Engine) recomputeOrder() {
	n := len(e.nodes)

	// ForwardLevel: parents always precede children by index (AddNode
	// rejects forward references), so a single increasing pass suffices.
	for i := 0; i < n; i++ {
		level := 0
		for _, p := range e.nodes[i].Parents {
			if l := e.nodes[p].ForwardLevel + 1; l > level {
				level = l
			}
		}
		e.nodes[i].ForwardLevel = level
	}

	// ReverseLevel: children always have higher index than this node
	// (Children is only ever appended to by later AddNode calls), so a
	// single decreasing pass suffices.
	for i := n - 1; i >= 0; i-- {
		level := 0
		for _, c := range e.nodes[i].Children {
			if l := e.nodes[c].ReverseLevel + 1; l > level {
				level = l
			}
		}
		e.nodes[i].ReverseLevel = level
	}

	e.forwardOrder = orderedIndices(n, func(i int) int { return e.nodes[i].ForwardLevel })
	e.reverseOrder = orderedIndices(n, func(i int) int { return e.nodes[i].ReverseLevel })
}

// orderedIndices returns [0,n) stably sorted by the given level function,
// non-decreasing, with insertion index (the natural order of [0,n)) as the
// tie-break.
func orderedIndices(n int, level func(int) int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return level(idx[a]) < level(idx[b])
	})
	return idx
}

// Get performs name lookup, returning the node and whether it was found.
func (e *Engine) Get(name string) (*Node, bool) {
	idx, ok := e.byName[name]
	if !ok {
		return nil, false
	}
	return e.nodes[idx], true
}

// GetIdx performs name-to-index lookup.
func (e *Engine) GetIdx(name string) (int, bool) {
	idx, ok := e.byName[name]
	return idx, ok
}

// NodeAt returns the node at the given index.
func (e *Engine) NodeAt(idx int) *Node { return e.nodes[idx] }

// NumNodes returns the number of nodes in the table, including position.
func (e *Engine) NumNodes() int { return len(e.nodes) }

// Position returns the position node at index 0.
func (e *Engine) Position() *Position {
	return e.nodes[0].Comp.(*Position)
}

// GetAs downcasts the named node's computation to T, failing with
// ErrTypeMismatch if the name is absent or the concrete computation does
// not implement T.
func GetAs[T Computation](e *Engine, name string) (T, error) {
	var zero T
	node, ok := e.Get(name)
	if !ok {
		return zero, fmt.Errorf("get %q: %w", name, ErrTypeMismatch)
	}
	t, ok := node.Comp.(T)
	if !ok {
		return zero, fmt.Errorf("get %q: %w", name, ErrTypeMismatch)
	}
	return t, nil
}

// Compute always executes one forward pass followed by one reverse pass —
// derivatives must come out refreshed regardless of mode (DerivMode exists
// to let a node skip the *accurate* potential-value work it would otherwise
// do in ComputeValue, not to skip propagation). It sets the engine-wide
// potential to the sum of PotentialNode.Potential() across every
// potential-term node; under DerivMode that sum may be cheap/approximate
// rather than meaningful, since individual nodes are free to shortcut their
// own potential computation when mode is DerivMode.
func (e *Engine) Compute(mode Mode) {
	e.forwardPass(mode)
	e.reversePass()
	e.potential = 0
	for _, n := range e.nodes {
		if n.Kind == KindPotential {
			e.potential += n.Comp.(PotentialComputation).Potential()
		}
	}
}

// Potential returns the value computed by the most recent Compute call.
func (e *Engine) Potential() float32 { return e.potential }

func (e *Engine) forwardPass(mode Mode) {
	for _, idx := range e.forwardOrder {
		e.nodes[idx].Comp.ComputeValue(mode)
	}
}

func (e *Engine) reversePass() {
	// Zero every CoordNode's sens buffer and every ledger's accum buffer
	// before any PropagateDeriv runs.
	for _, n := range e.nodes {
		if n.Kind != KindCoord {
			continue
		}
		cc := n.Comp.(CoordComputation)
		cc.Sens().Zero()
		cc.Ledger().Reset()
	}

	for _, idx := range e.reverseOrder {
		n := e.nodes[idx]
		switch n.Kind {
		case KindCoord:
			cc := n.Comp.(CoordComputation)
			// Step 1: pull every downstream consumer's contribution out
			// of this node's own ledger into its own sens buffer.
			cc.Ledger().Accumulate(cc.Sens())
			// Step 2: node-specific. Using its now-populated sens, write
			// local-Jacobian contributions into its parents' ledgers.
			n.Comp.PropagateDeriv()
		case KindPotential:
			n.Comp.PropagateDeriv()
		}
	}
}

// NHBond returns the summed n_hbond counter across every node implementing
// HBondCapable.
func (e *Engine) NHBond() float32 {
	var total float32
	for _, n := range e.nodes {
		if hb, ok := n.Comp.(HBondCapable); ok {
			total += hb.NHBond()
		}
	}
	return total
}

// HBondCapable is the optional diagnostic capability of HBondCounter nodes.
type HBondCapable interface {
	NHBond() float32
}

// GetValueByName looks up a node by name and asks it for a diagnostic value
// by key. It fails with ErrTypeMismatch if the node itself doesn't exist or
// doesn't support the NamedValueGetter capability, and propagates
// ErrUnknownValueName from the node itself for an unrecognised key.
func (e *Engine) GetValueByName(nodeName, key string) ([]float32, error) {
	node, ok := e.Get(nodeName)
	if !ok {
		return nil, fmt.Errorf("get value %q on %q: %w", key, nodeName, ErrTypeMismatch)
	}
	nv, ok := node.Comp.(NamedValueGetter)
	if !ok {
		return nil, fmt.Errorf("get value %q on %q: %w", key, nodeName, ErrTypeMismatch)
	}
	return nv.GetValueByName(key)
}
