package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/mdcore/config"
	"github.com/born-ml/mdcore/graph"
	"github.com/born-ml/mdcore/registry"
)

// fakeCoord is a minimal graph.CoordComputation used only to exercise the
// registry's arity checking, independent of any real node implementation.
type fakeCoord struct {
	graph.CoordNode
}

func newFakeCoord() *fakeCoord {
	return &fakeCoord{CoordNode: graph.NewCoordNode(3, 1)}
}

func (f *fakeCoord) ComputeValue(graph.Mode) {}
func (f *fakeCoord) PropagateDeriv()         {}

var _ graph.CoordComputation = (*fakeCoord)(nil)

func newFakeGroup() config.Group {
	return config.NewYAMLGroup(map[string]any{"name": "n", "type": "quad"})
}

func TestCreateUsesLongestPrefixMatch(t *testing.T) {
	r := registry.NewRegistry()
	var got string
	r.Register0("quad", func(cfg config.Group) (graph.Computation, error) {
		got = "quad"
		return newFakeCoord(), nil
	})
	r.Register0("quadratic", func(cfg config.Group) (graph.Computation, error) {
		got = "quadratic"
		return newFakeCoord(), nil
	})

	_, err := r.Create("quadratic_spring", newFakeGroup(), nil)
	require.NoError(t, err)
	assert.Equal(t, "quadratic", got)
}

func TestCreateEnforcesArity(t *testing.T) {
	r := registry.NewRegistry()
	r.Register1("scale", func(cfg config.Group, p0 graph.CoordComputation) (graph.Computation, error) {
		return newFakeCoord(), nil
	})

	_, err := r.Create("scale", newFakeGroup(), nil)
	assert.ErrorIs(t, err, registry.ErrArgCountMismatch)

	parent := graph.CoordComputation(newFakeCoord())
	_, err = r.Create("scale", newFakeGroup(), []graph.CoordComputation{parent})
	assert.NoError(t, err)
}

func TestCreateVariadicAcceptsAnyArity(t *testing.T) {
	r := registry.NewRegistry()
	r.RegisterVariadic("hbond", func(cfg config.Group, parents []graph.CoordComputation) (graph.Computation, error) {
		return newFakeCoord(), nil
	})

	parents := []graph.CoordComputation{newFakeCoord(), newFakeCoord(), newFakeCoord()}
	_, err := r.Create("hbond", newFakeGroup(), parents)
	assert.NoError(t, err)

	_, err = r.Create("hbond", newFakeGroup(), nil)
	assert.ErrorIs(t, err, registry.ErrArgCountMismatch)
}

func TestCreateUnknownNodeType(t *testing.T) {
	r := registry.NewRegistry()
	_, err := r.Create("bogus", newFakeGroup(), nil)
	assert.ErrorIs(t, err, registry.ErrUnknownNodeType)
}

func TestPrefixesSorted(t *testing.T) {
	r := registry.NewRegistry()
	r.Register0("zeta", func(cfg config.Group) (graph.Computation, error) { return nil, nil })
	r.Register0("alpha", func(cfg config.Group) (graph.Computation, error) { return nil, nil })
	assert.Equal(t, []string{"alpha", "zeta"}, r.Prefixes())
}
