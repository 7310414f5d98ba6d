// Package registry implements the process-wide, longest-prefix node
// registry: a mapping from textual name-prefix to a creation function, with
// registration helpers enforcing fixed arities 0, 1, 2, 3 and a variadic
// form for an arbitrary number of parents.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/born-ml/mdcore/config"
	"github.com/born-ml/mdcore/graph"
)

// CreateFunc receives a configuration-group handle and the already-resolved
// parent CoordNode references for a subgroup, and returns a newly-allocated
// computation.
type CreateFunc func(cfg config.Group, parents []graph.CoordComputation) (graph.Computation, error)

type entry struct {
	arity  int // -1 means variadic
	create CreateFunc
}

// Registry is a mutable, name-prefix-keyed table of creation functions. The
// zero value is not usable; construct with NewRegistry.
type Registry struct {
	entries map[string]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

func (r *Registry) register(prefix string, arity int, fn CreateFunc) {
	r.entries[prefix] = entry{arity: arity, create: fn}
}

// Register0 registers a zero-arity creation function under prefix.
func (r *Registry) Register0(prefix string, fn func(cfg config.Group) (graph.Computation, error)) {
	r.register(prefix, 0, func(cfg config.Group, parents []graph.CoordComputation) (graph.Computation, error) {
		return fn(cfg)
	})
}

// Register1 registers a one-arity creation function under prefix.
func (r *Registry) Register1(prefix string, fn func(cfg config.Group, p0 graph.CoordComputation) (graph.Computation, error)) {
	r.register(prefix, 1, func(cfg config.Group, parents []graph.CoordComputation) (graph.Computation, error) {
		return fn(cfg, parents[0])
	})
}

// Register2 registers a two-arity creation function under prefix.
func (r *Registry) Register2(prefix string, fn func(cfg config.Group, p0, p1 graph.CoordComputation) (graph.Computation, error)) {
	r.register(prefix, 2, func(cfg config.Group, parents []graph.CoordComputation) (graph.Computation, error) {
		return fn(cfg, parents[0], parents[1])
	})
}

// Register3 registers a three-arity creation function under prefix.
func (r *Registry) Register3(prefix string, fn func(cfg config.Group, p0, p1, p2 graph.CoordComputation) (graph.Computation, error)) {
	r.register(prefix, 3, func(cfg config.Group, parents []graph.CoordComputation) (graph.Computation, error) {
		return fn(cfg, parents[0], parents[1], parents[2])
	})
}

// RegisterVariadic registers a creation function accepting any number of
// parents under prefix.
func (r *Registry) RegisterVariadic(prefix string, fn func(cfg config.Group, parents []graph.CoordComputation) (graph.Computation, error)) {
	r.register(prefix, -1, fn)
}

// Create looks up typeName by longest registered prefix and invokes its
// creation function with cfg and parents. It fails with ErrUnknownNodeType
// if no prefix matches, and ErrArgCountMismatch if the matched function's
// declared arity disagrees with len(parents) — for a variadic entry
// (arity -1) that means failing on zero parents, since a node with no
// coordinate input at all is never valid.
func (r *Registry) Create(typeName string, cfg config.Group, parents []graph.CoordComputation) (graph.Computation, error) {
	e, ok := r.lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("create %q: %w", typeName, ErrUnknownNodeType)
	}
	if e.arity == -1 {
		if len(parents) == 0 {
			return nil, fmt.Errorf("create %q: expected at least 1 parent, got 0: %w", typeName, ErrArgCountMismatch)
		}
	} else if e.arity != len(parents) {
		return nil, fmt.Errorf("create %q: expected %d parents, got %d: %w", typeName, e.arity, len(parents), ErrArgCountMismatch)
	}
	return e.create(cfg, parents)
}

// lookup finds the longest registered prefix of typeName. Ties (multiple
// registered prefixes of equal maximal length that both match) are broken
// deterministically by taking the lexicographically smallest prefix.
func (r *Registry) lookup(typeName string) (entry, bool) {
	var best string
	var found bool
	for prefix := range r.entries {
		if !strings.HasPrefix(typeName, prefix) {
			continue
		}
		if !found || len(prefix) > len(best) || (len(prefix) == len(best) && prefix < best) {
			best = prefix
			found = true
		}
	}
	if !found {
		return entry{}, false
	}
	return r.entries[best], true
}

// Prefixes returns every registered prefix, sorted.
func (r *Registry) Prefixes() []string {
	out := make([]string, 0, len(r.entries))
	for p := range r.entries {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
