// Package config defines the hierarchical configuration-group interface the
// engine and registry treat as opaque: a handle to a scientific
// tree-of-arrays style store, where the engine only ever reads a
// subgroup's name, ordered parent list, and type name, and concrete node
// implementations parse their own parameters out of it.
package config

// Group is a handle to one node (or node-group) in the hierarchical
// configuration tree. The engine and registry see only this interface,
// never a concrete file format.
type Group interface {
	// Name returns this subgroup's own name (the node name to register
	// under in the graph).
	Name() string
	// TypeName returns the registry prefix used to look up a creation
	// function (the "name" attribute in the spec's config contract).
	TypeName() string
	// Parents returns the ordered list of parent node names.
	Parents() []string

	// String, Float, Floats and Ints read scalar/array parameters by key.
	// The boolean result reports whether the key was present.
	String(key string) (string, bool)
	Float(key string) (float32, bool)
	Floats(key string) ([]float32, bool)
	Ints(key string) ([]int, bool)

	// Subgroups returns this group's immediate children, each
	// corresponding to one node to add to the graph.
	Subgroups() []Group
}
