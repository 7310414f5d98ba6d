package terms

import (
	"fmt"
	"math"

	"github.com/born-ml/mdcore/config"
	"github.com/born-ml/mdcore/coord"
	"github.com/born-ml/mdcore/graph"
)

// HBondCounter is a PotentialNode carrying an additional diagnostic float
// NHBond, updated during every forward evaluation: a smooth count of
// donor/acceptor pairs closer than a cutoff distance, using a logistic
// switching function so the count varies continuously rather than jumping
// at the cutoff. It contributes nothing to the total potential — it exists
// purely as the diagnostic counter described for HBondCounter nodes — so
// its PropagateDeriv is inert.
type HBondCounter struct {
	graph.PotentialNode
	donors    graph.CoordComputation
	acceptors graph.CoordComputation
	cutoff    float32
	width     float32
	nHBond    float32
}

// NewHBondCounter constructs an HBondCounter reading "cutoff" (default 3.5)
// and "width" (default 0.25) from cfg.
func NewHBondCounter(cfg config.Group, donors, acceptors graph.CoordComputation) (*HBondCounter, error) {
	cutoff, ok := cfg.Float("cutoff")
	if !ok {
		cutoff = 3.5
	}
	width, ok := cfg.Float("width")
	if !ok {
		width = 0.25
	}
	if donors.ElemWidth() != acceptors.ElemWidth() {
		return nil, fmt.Errorf("hbond: donor width %d, acceptor width %d: %w",
			donors.ElemWidth(), acceptors.ElemWidth(), graph.ErrSizeMismatch)
	}
	return &HBondCounter{donors: donors, acceptors: acceptors, cutoff: cutoff, width: width}, nil
}

func (h *HBondCounter) ComputeValue(graph.Mode) {
	d := h.donors.Output()
	a := h.acceptors.Output()
	var total float32
	for i := 0; i < d.NElem; i++ {
		for j := 0; j < a.NElem; j++ {
			dist := pairDistance(d, i, a, j)
			total += logistic((h.cutoff - dist) / h.width)
		}
	}
	h.nHBond = total
	h.SetPotential(0)
}

func (h *HBondCounter) PropagateDeriv() {}

// NHBond returns the most recently computed diagnostic count.
func (h *HBondCounter) NHBond() float32 { return h.nHBond }

func pairDistance(a *coord.Array, i int, b *coord.Array, j int) float32 {
	var sumSq float32
	w := a.Width
	for d := 0; d < w; d++ {
		diff := a.At(d, i) - b.At(d, j)
		sumSq += diff * diff
	}
	return float32(math.Sqrt(float64(sumSq)))
}

func logistic(x float32) float32 {
	return float32(1 / (1 + math.Exp(-float64(x))))
}

var (
	_ graph.PotentialComputation = (*HBondCounter)(nil)
	_ graph.HBondCapable         = (*HBondCounter)(nil)
)
