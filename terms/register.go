package terms

import (
	"github.com/born-ml/mdcore/config"
	"github.com/born-ml/mdcore/graph"
	"github.com/born-ml/mdcore/registry"
)

// Register adds every term in this package's catalogue to reg under short
// prefixes, so config-driven graph construction can build a small graph
// without needing the real physics catalogue.
func Register(reg *registry.Registry) {
	reg.Register1("scale", func(cfg config.Group, p0 graph.CoordComputation) (graph.Computation, error) {
		return NewScale(cfg, p0)
	})
	reg.Register1("quadratic", func(cfg config.Group, p0 graph.CoordComputation) (graph.Computation, error) {
		return NewQuadratic(cfg, p0)
	})
	reg.Register2("hbond", func(cfg config.Group, p0, p1 graph.CoordComputation) (graph.Computation, error) {
		return NewHBondCounter(cfg, p0, p1)
	})
}
