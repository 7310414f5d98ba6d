package graph

import (
	"github.com/born-ml/mdcore/coord"
	"github.com/born-ml/mdcore/ledger"
)

// Computation is the minimal capability every node implements: compute its
// own value given a mode, and propagate accumulated sensitivity to its
// inputs. This is the narrow polymorphic boundary behind which all concrete
// node implementations live.
type Computation interface {
	ComputeValue(mode Mode)
	PropagateDeriv()
}

// CoordComputation is the capability set of a CoordNode: in addition to
// Computation, it owns output/sens buffers and a ledger recording who
// depends on which of its elements. Both the built-in Position node and
// every concrete coordinate-producing term implement this interface, and it
// doubles as the "parent reference" type handed to downstream node
// constructors.
type CoordComputation interface {
	Computation
	NElem() int
	ElemWidth() int
	Output() *coord.Array
	Sens() *coord.Array
	Ledger() *ledger.Ledger
}

// PotentialComputation is the capability set of a PotentialNode: in
// addition to Computation, it owns a scalar potential contribution.
type PotentialComputation interface {
	Computation
	Potential() float32
}

// ParamGetter is an optional capability: a node exposing a flat parameter
// vector for inspection or checkpointing.
type ParamGetter interface {
	GetParam() []float32
}

// ParamSetter is an optional capability: a node accepting a new parameter
// vector.
type ParamSetter interface {
	SetParam([]float32)
}

// ParamDerivGetter is an optional capability: a node exposing the gradient
// of the total potential with respect to its own parameters, valid after a
// reverse pass.
type ParamDerivGetter interface {
	GetParamDeriv() []float32
}

// NamedValueGetter is an optional capability: a node exposing diagnostic
// quantities by name. Implementations fail with ErrUnknownValueName for an
// unrecognised key.
type NamedValueGetter interface {
	GetValueByName(name string) ([]float32, error)
}

// CoordNode is the reusable base embedded by every concrete coordinate-node
// implementation. It owns the output/sens buffers and the per-node ledger,
// and implements the CoordComputation accessor methods; embedders need only
// supply ComputeValue and PropagateDeriv.
type CoordNode struct {
	output *coord.Array
	sens   *coord.Array
	ledger *ledger.Ledger
}

// NewCoordNode allocates output/sens buffers and an empty ledger shaped
// (elemWidth, nElem).
func NewCoordNode(elemWidth, nElem int) CoordNode {
	return CoordNode{
		output: coord.New(elemWidth, nElem),
		sens:   coord.New(elemWidth, nElem),
		ledger: ledger.New(elemWidth, nElem),
	}
}

func (c *CoordNode) NElem() int             { return c.output.NElem }
func (c *CoordNode) ElemWidth() int         { return c.output.Width }
func (c *CoordNode) Output() *coord.Array   { return c.output }
func (c *CoordNode) Sens() *coord.Array     { return c.sens }
func (c *CoordNode) Ledger() *ledger.Ledger { return c.ledger }

// PotentialNode is the reusable base embedded by every concrete
// potential-term implementation. It owns the scalar potential value;
// embedders supply ComputeValue and PropagateDeriv.
type PotentialNode struct {
	value float32
}

func (p *PotentialNode) Potential() float32 { return p.value }

// SetPotential lets embedders of PotentialNode write their computed scalar.
func (p *PotentialNode) SetPotential(v float32) { p.value = v }

// Position is the distinguished source CoordNode at index 0: elem_width=3,
// n_elem=n_atom. Its ComputeValue and PropagateDeriv are inert — it only
// holds current positions and receives the gradient of the total potential
// on the reverse leg.
type Position struct {
	CoordNode
}

// NewPosition allocates the position node for nAtom atoms.
func NewPosition(nAtom int) *Position {
	return &Position{CoordNode: NewCoordNode(3, nAtom)}
}

func (p *Position) ComputeValue(Mode)  {}
func (p *Position) PropagateDeriv()    {}

var (
	_ CoordComputation = (*Position)(nil)
)
