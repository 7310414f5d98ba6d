package terms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/mdcore/config"
	"github.com/born-ml/mdcore/graph"
	"github.com/born-ml/mdcore/internal/gradcheck"
	"github.com/born-ml/mdcore/registry"
	"github.com/born-ml/mdcore/terms"
)

func buildRegistry() *registry.Registry {
	r := registry.NewRegistry()
	terms.Register(r)
	return r
}

func TestInitializeFromConfigChainedTransform(t *testing.T) {
	root := config.NewYAMLGroup(map[string]any{
		"name": "potential",
		"nodes": []any{
			map[string]any{"name": "y", "type": "scale", "parents": []any{"pos"}, "factor": 2.0},
			map[string]any{"name": "V", "type": "quadratic", "parents": []any{"y"}, "k": 2.0},
		},
	})

	e, err := registry.InitializeFromConfig(1, root, buildRegistry())
	require.NoError(t, err)

	e.Position().Output().SetElement(0, []float32{1, 0, 0})
	e.Compute(graph.PotentialAndDerivMode)

	assert.InDelta(t, float64(4), float64(e.Potential()), 1e-6)
	got := make([]float32, 3)
	e.Position().Sens().Element(0, got)
	assert.Equal(t, []float32{8, 0, 0}, got)
}

func TestInitializeFromConfigUnknownNodeType(t *testing.T) {
	root := config.NewYAMLGroup(map[string]any{
		"name": "potential",
		"nodes": []any{
			map[string]any{"name": "x", "type": "bogus", "parents": []any{"pos"}},
		},
	})
	_, err := registry.InitializeFromConfig(1, root, buildRegistry())
	assert.ErrorIs(t, err, registry.ErrUnknownNodeType)
}

func TestInitializeFromConfigArgCountMismatch(t *testing.T) {
	root := config.NewYAMLGroup(map[string]any{
		"name": "potential",
		"nodes": []any{
			map[string]any{"name": "x", "type": "scale", "parents": []any{}},
		},
	})
	_, err := registry.InitializeFromConfig(1, root, buildRegistry())
	assert.ErrorIs(t, err, registry.ErrArgCountMismatch)
}

// fakeWideCoord is a minimal graph.CoordComputation of elem_width 4, used
// only to exercise HBondCounter's width-mismatch check.
type fakeWideCoord struct {
	graph.CoordNode
}

func newFakeWideCoord(nAtom int) *fakeWideCoord {
	return &fakeWideCoord{CoordNode: graph.NewCoordNode(4, nAtom)}
}

func (f *fakeWideCoord) ComputeValue(graph.Mode) {}
func (f *fakeWideCoord) PropagateDeriv()         {}

var _ graph.CoordComputation = (*fakeWideCoord)(nil)

func TestHBondCounterWidthMismatch(t *testing.T) {
	cfg := config.NewYAMLGroup(map[string]any{"name": "hb", "type": "hbond"})
	_, err := terms.NewHBondCounter(cfg, newFakeWideCoord(1), graph.New(1).Position())
	assert.ErrorIs(t, err, graph.ErrSizeMismatch)
}

func TestHBondCounterDiagnostic(t *testing.T) {
	e := graph.New(2)
	pos := e.Position()
	pos.Output().SetElement(0, []float32{0, 0, 0})
	pos.Output().SetElement(1, []float32{1, 0, 0})

	_, err := e.AddNode("hb", mustHBond(t, pos, pos), []string{"pos", "pos"})
	require.NoError(t, err)

	e.Compute(graph.PotentialAndDerivMode)
	assert.Equal(t, float32(0), e.Potential())
	assert.Greater(t, e.NHBond(), float32(0))
}

func mustHBond(t *testing.T, donors, acceptors graph.CoordComputation) *terms.HBondCounter {
	t.Helper()
	cfg := config.NewYAMLGroup(map[string]any{"name": "hb", "type": "hbond"})
	h, err := terms.NewHBondCounter(cfg, donors, acceptors)
	require.NoError(t, err)
	return h
}

func TestQuadraticGradientConsistency(t *testing.T) {
	e := graph.New(3)
	pos := e.Position()
	pos.Output().SetElement(0, []float32{0.7, -1.2, 2.1})
	pos.Output().SetElement(1, []float32{-0.3, 0.4, -0.8})
	pos.Output().SetElement(2, []float32{1.5, 1.5, -1.5})

	cfg := config.NewYAMLGroup(map[string]any{"name": "V", "type": "quadratic", "k": 2.0})
	q, err := terms.NewQuadratic(cfg, pos)
	require.NoError(t, err)
	_, err = e.AddNode("V", q, []string{"pos"})
	require.NoError(t, err)

	e.Compute(graph.PotentialAndDerivMode)
	analytic := append([]float32{}, pos.Sens().Data...)

	flat := make([]float32, 0, 9)
	for a := 0; a < 3; a++ {
		for d := 0; d < 3; d++ {
			flat = append(flat, pos.Output().At(d, a))
		}
	}
	eval := func(x []float32) float32 {
		for a := 0; a < 3; a++ {
			for d := 0; d < 3; d++ {
				pos.Output().Set(d, a, x[a*3+d])
			}
		}
		e.Compute(graph.DerivMode)
		var v float32
		for a := 0; a < 3; a++ {
			for d := 0; d < 3; d++ {
				x := pos.Output().At(d, a)
				v += 0.5 * 2.0 * x * x
			}
		}
		return v
	}
	numGrad := gradcheck.NumericalGradient(eval, flat, 1e-3)

	analyticFlat := make([]float32, 0, 9)
	for a := 0; a < 3; a++ {
		for d := 0; d < 3; d++ {
			analyticFlat = append(analyticFlat, analytic[d*3+a])
		}
	}

	dev := gradcheck.RelativeRMSDeviation(analyticFlat, numGrad)
	assert.Less(t, dev, float32(1e-3))
}
