package registry

import "errors"

var (
	// ErrUnknownNodeType is returned when no registered prefix matches a
	// requested type name.
	ErrUnknownNodeType = errors.New("registry: unknown node type")
	// ErrArgCountMismatch is returned when the number of supplied parents
	// disagrees with the arity the matched creation function was
	// registered with.
	ErrArgCountMismatch = errors.New("registry: argument count mismatch")
)
