package terms

import (
	"fmt"

	"github.com/born-ml/mdcore/config"
	"github.com/born-ml/mdcore/graph"
)

// Quadratic is a PotentialNode computing V = sum_a 1/2 * k * ||x_a||^2 over
// every element of a single CoordNode parent.
type Quadratic struct {
	graph.PotentialNode
	parent graph.CoordComputation
	k      float32
	slots  []int
}

// NewQuadratic constructs a Quadratic node reading its "k" spring constant
// from cfg (defaulting to 1 if absent).
func NewQuadratic(cfg config.Group, parent graph.CoordComputation) (*Quadratic, error) {
	k, ok := cfg.Float("k")
	if !ok {
		k = 1
	}
	q := &Quadratic{parent: parent, k: k}
	n := parent.NElem()
	q.slots = make([]int, n)
	for a := 0; a < n; a++ {
		q.slots[a] = parent.Ledger().AddRequest(1, a)
	}
	return q, nil
}

func (q *Quadratic) ComputeValue(graph.Mode) {
	out := q.parent.Output()
	var v float32
	for a := 0; a < out.NElem; a++ {
		for d := 0; d < out.Width; d++ {
			x := out.At(d, a)
			v += 0.5 * q.k * x * x
		}
	}
	q.SetPotential(v)
}

// PropagateDeriv writes dV/dx_a = k*x_a into the parent's ledger for every
// atom, the coefficient-1 case described for PotentialNode propagation.
func (q *Quadratic) PropagateDeriv() {
	out := q.parent.Output()
	view := q.parent.Ledger().AccumView()
	w := q.parent.ElemWidth()
	for a := 0; a < out.NElem; a++ {
		slot := q.slots[a]
		for d := 0; d < w; d++ {
			view[slot+d] = q.k * out.At(d, a)
		}
	}
}

func (q *Quadratic) GetParam() []float32  { return []float32{q.k} }
func (q *Quadratic) SetParam(p []float32) { q.k = p[0] }

func (q *Quadratic) GetValueByName(name string) ([]float32, error) {
	if name == "k" {
		return []float32{q.k}, nil
	}
	return nil, fmt.Errorf("quadratic: %s: %w", name, graph.ErrUnknownValueName)
}

var (
	_ graph.PotentialComputation = (*Quadratic)(nil)
	_ graph.ParamGetter          = (*Quadratic)(nil)
	_ graph.ParamSetter          = (*Quadratic)(nil)
	_ graph.NamedValueGetter     = (*Quadratic)(nil)
)
