package ledger

// Fixed per-element upstream slot capacities, carried over unchanged from
// the source: a node's AutoDiffParams may record at most MaxType1Slots
// slots into one grandparent ledger and MaxType2Slots into a second. This
// bounds memory per element and keeps the reverse kernel branch-free;
// exceeding it is a construction-time error, never a silent truncation.
const (
	MaxType1Slots = 6
	MaxType2Slots = 5
)

// AutoDiffParams is the per-node-element indirection a concrete node uses to
// remember, for each of its own elements, which slots in its parents'
// ledgers it must write its local-Jacobian-times-sens contribution into
// during its own PropagateDeriv. Type1 slots address one parent ("type 1"),
// Type2 slots a second, distinct parent ("type 2") — the usual shape for
// terms depending on at most two coordinate-producing parents (e.g. a
// pairwise distance between two atoms drawn from two different CoordNodes).
type AutoDiffParams struct {
	Type1 []int
	Type2 []int
}

// AddType1 records a new type-1 upstream slot, failing with
// ErrSlotCapacityExceeded once MaxType1Slots have already been recorded.
func (p *AutoDiffParams) AddType1(slot int) error {
	if len(p.Type1) >= MaxType1Slots {
		return ErrSlotCapacityExceeded
	}
	p.Type1 = append(p.Type1, slot)
	return nil
}

// AddType2 records a new type-2 upstream slot, failing with
// ErrSlotCapacityExceeded once MaxType2Slots have already been recorded.
func (p *AutoDiffParams) AddType2(slot int) error {
	if len(p.Type2) >= MaxType2Slots {
		return ErrSlotCapacityExceeded
	}
	p.Type2 = append(p.Type2, slot)
	return nil
}
