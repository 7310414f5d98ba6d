package graph

import "errors"

// Sentinel errors surfaced by the graph engine. All of them are reported at
// construction time (AddNode, GetAs) or at the single call site that
// provoked them (GetValueByName); evaluation paths are infallible.
var (
	ErrDuplicateName    = errors.New("graph: duplicate node name")
	ErrUnknownParent    = errors.New("graph: unknown parent name")
	ErrTypeMismatch     = errors.New("graph: type mismatch")
	ErrSizeMismatch     = errors.New("graph: size mismatch")
	ErrUnknownValueName = errors.New("graph: unknown value name")
)
