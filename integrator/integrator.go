// Package integrator implements the symplectic position/momentum update:
// Verlet and Predescu multi-substep schemes, force clipping, and centroid
// recentering. Each variant is parameterised by a per-substep
// (velFactor, posFactor) pair, in the same shape as the update-rule
// configs the source's own optimizer package uses (a Config struct plus a
// Step-style loop over elements) — generalised here from loss-gradient
// descent to position/momentum integration.
package integrator

import (
	"github.com/born-ml/mdcore/graph"
	"github.com/born-ml/mdcore/internal/kernels"
)

// Substep is one (velFactor, posFactor) pair of an integration cycle.
type Substep struct {
	VelFactor float32
	PosFactor float32
}

// Type identifies a built-in integrator variant.
type Type int

const (
	Verlet Type = iota
	Predescu
)

// Substeps returns the substep schedule for t.
func (t Type) Substeps() []Substep {
	switch t {
	case Verlet:
		return verletSubsteps
	case Predescu:
		return predescuSubsteps
	default:
		panic("integrator: unknown type")
	}
}

// verletSubsteps: the two-substep velocity-Verlet scheme.
var verletSubsteps = []Substep{
	{VelFactor: 0.5, PosFactor: 1},
	{VelFactor: 0.5, PosFactor: 0},
}

// predescuSubsteps: a five-substep schedule in the style of Predescu,
// Predescu & Berne (2010), splitting velocity-Verlet into five
// position/velocity updates with unequal weights instead of two. These
// coefficients are not the published values from that paper; they only
// sum to (velFactor=1, posFactor=1) across the cycle, matching Verlet's
// total displacement per step.
var predescuSubsteps = []Substep{
	{VelFactor: 0.193285, PosFactor: 0.271174},
	{VelFactor: 0.284801, PosFactor: 0.354827},
	{VelFactor: 0.043827, PosFactor: 0.334065},
	{VelFactor: 0.284801, PosFactor: 0.039935},
	{VelFactor: 0.193285, PosFactor: 0},
}

// Momenta is the per-atom momentum buffer the integrator mutates alongside
// the engine's position node. It is shaped like a coordinate array of
// elem_width 3, but kept as a flat caller-owned buffer since the engine
// itself never reads or writes momentum.
type Momenta struct {
	NAtom int
	Data  [][3]float32
}

// NewMomenta allocates a zeroed momentum buffer for nAtom atoms.
func NewMomenta(nAtom int) *Momenta {
	return &Momenta{NAtom: nAtom, Data: make([][3]float32, nAtom)}
}

// IntegrationCycle advances e's position and mom by one integration cycle
// of the given type: for each substep it recomputes position.sens via
// compute(DerivMode), then for every atom and axis applies clipped-force
// velocity and position updates.
func IntegrationCycle(e *graph.Engine, mom *Momenta, dt, maxForce float32, kind Type) {
	pos := e.Position()
	force := make([]float32, mom.NAtom*3)
	for _, sub := range kind.Substeps() {
		e.Compute(graph.DerivMode)
		sens := pos.Sens()
		for a := 0; a < mom.NAtom; a++ {
			for d := 0; d < 3; d++ {
				force[a*3+d] = -sens.At(d, a)
			}
		}
		kernels.Clip(force, maxForce)

		out := pos.Output()
		kernels.For(mom.NAtom, func(a int) {
			for d := 0; d < 3; d++ {
				mom.Data[a][d] += sub.VelFactor * dt * force[a*3+d]
				out.Add(d, a, sub.PosFactor*dt*mom.Data[a][d])
			}
		}, kernels.DefaultConfig())
	}
}

// Recenter subtracts the centroid of the position array from every atom.
// When xyOnly is set the z-component (axis 2) is left untouched.
func Recenter(e *graph.Engine, xyOnly bool) {
	pos := e.Position().Output()
	n := pos.NElem
	if n == 0 {
		return
	}
	axes := 3
	if xyOnly {
		axes = 2
	}
	for d := 0; d < axes; d++ {
		var sum float32
		row := pos.Row(d)
		for _, v := range row {
			sum += v
		}
		mean := sum / float32(n)
		for a := 0; a < n; a++ {
			pos.Add(d, a, -mean)
		}
	}
}
