// Package terms implements a small illustrative catalogue of concrete node
// implementations — a coordinate-scaling CoordNode, a per-atom harmonic
// PotentialNode, and a distance-threshold HBondCounter — sufficient to
// exercise the graph, ledger and registry packages end to end without
// pulling in a full bonded/nonbonded/hydrogen-bond potential catalogue,
// which is explicitly out of scope for the core.
package terms

import (
	"fmt"

	"github.com/born-ml/mdcore/config"
	"github.com/born-ml/mdcore/graph"
)

// Scale is a CoordNode computing y = factor * x elementwise, from a single
// CoordNode parent of the same elem_width.
type Scale struct {
	graph.CoordNode
	parent graph.CoordComputation
	factor float32
	slots  []int
}

// NewScale constructs a Scale node reading its "factor" parameter from cfg
// (defaulting to 2 if absent).
func NewScale(cfg config.Group, parent graph.CoordComputation) (*Scale, error) {
	factor, ok := cfg.Float("factor")
	if !ok {
		factor = 2
	}
	w := parent.ElemWidth()
	n := parent.NElem()
	s := &Scale{
		CoordNode: graph.NewCoordNode(w, n),
		parent:    parent,
		factor:    factor,
		slots:     make([]int, n),
	}
	for a := 0; a < n; a++ {
		s.slots[a] = parent.Ledger().AddRequest(w, a)
	}
	return s, nil
}

func (s *Scale) ComputeValue(graph.Mode) {
	in := s.parent.Output()
	out := s.Output()
	for a := 0; a < in.NElem; a++ {
		for d := 0; d < in.Width; d++ {
			out.Set(d, a, s.factor*in.At(d, a))
		}
	}
}

// PropagateDeriv writes the diagonal Jacobian factor*sens into the parent's
// ledger for every element: since y_k depends only on x_k, the (k, d) block
// entry is nonzero only for d == k.
func (s *Scale) PropagateDeriv() {
	w := s.ElemWidth()
	view := s.parent.Ledger().AccumView()
	sens := s.Sens()
	for a := 0; a < s.NElem(); a++ {
		slot := s.slots[a]
		for k := 0; k < w; k++ {
			for d := 0; d < w; d++ {
				var v float32
				if d == k {
					v = s.factor * sens.At(k, a)
				}
				view[slot+k*w+d] = v
			}
		}
	}
}

func (s *Scale) GetParam() []float32  { return []float32{s.factor} }
func (s *Scale) SetParam(p []float32) { s.factor = p[0] }

func (s *Scale) GetValueByName(name string) ([]float32, error) {
	if name == "factor" {
		return []float32{s.factor}, nil
	}
	return nil, fmt.Errorf("scale: %s: %w", name, graph.ErrUnknownValueName)
}

var (
	_ graph.CoordComputation = (*Scale)(nil)
	_ graph.ParamGetter      = (*Scale)(nil)
	_ graph.ParamSetter      = (*Scale)(nil)
	_ graph.NamedValueGetter = (*Scale)(nil)
)
