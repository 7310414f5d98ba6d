package registry

import (
	"fmt"

	"github.com/born-ml/mdcore/config"
	"github.com/born-ml/mdcore/graph"
)

// InitializeFromConfig builds an Engine of nAtom atoms and populates it by
// walking potentialGroup's subgroups in order: for each, it reads the type
// name and ordered parent-node names, resolves the parents already added to
// the engine, asks reg to construct the computation, and calls AddNode.
// Unknown type names fail with ErrUnknownNodeType (via reg.Create); arity
// mismatches fail with ErrArgCountMismatch; unresolvable parent names fail
// with graph.ErrUnknownParent. The engine itself never parses
// potentialGroup's parameters — only reg's creation functions do.
func InitializeFromConfig(nAtom int, potentialGroup config.Group, reg *Registry) (*graph.Engine, error) {
	e := graph.New(nAtom)

	for _, sub := range potentialGroup.Subgroups() {
		name := sub.Name()
		typeName := sub.TypeName()
		parentNames := sub.Parents()

		parents := make([]graph.CoordComputation, 0, len(parentNames))
		for _, pn := range parentNames {
			node, ok := e.Get(pn)
			if !ok {
				return nil, fmt.Errorf("initialize %q: %w", name, graph.ErrUnknownParent)
			}
			cc, ok := node.Comp.(graph.CoordComputation)
			if !ok {
				return nil, fmt.Errorf("initialize %q: parent %q is not a coordinate node: %w", name, pn, graph.ErrTypeMismatch)
			}
			parents = append(parents, cc)
		}

		comp, err := reg.Create(typeName, sub, parents)
		if err != nil {
			return nil, fmt.Errorf("initialize %q: %w", name, err)
		}

		if _, err := e.AddNode(name, comp, parentNames); err != nil {
			return nil, fmt.Errorf("initialize %q: %w", name, err)
		}
	}

	return e, nil
}
