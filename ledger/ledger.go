// Package ledger implements the sensitivity ledger ("slot machine"): the
// per-CoordNode bookkeeping that records which consumer depends on which
// producer element, where that consumer's Jacobian contribution is to be
// deposited, and how those deposits are folded back into the producer's own
// sensitivity buffer during a reverse pass.
//
// This is deliberately not a general-purpose, dynamically-growing autodiff
// tape. The computation graph is fully built before any evaluation runs, so
// every edge's Jacobian-block location is known once and for all at
// construction time; the ledger is a flat, pre-sized float buffer rather
// than a map keyed by node identity.
package ledger

import "github.com/born-ml/mdcore/coord"

// Record describes one consumer's request against a producer element: the
// producer-side element index (Atom), the starting offset inside accum
// (Loc), and the consumer-side output width (OutputWidth). Records are
// immutable once appended.
type Record struct {
	Atom        int
	Loc         int
	OutputWidth int
}

// Ledger is the per-CoordNode slot machine: width is the producer's
// elem_width, nElem its element count. tape grows only during construction;
// accum is zeroed and rewritten once per reverse pass.
type Ledger struct {
	width int
	nElem int
	tape  []Record
	accum []float32
}

// New creates an empty ledger for a producer of the given elem_width and
// element count.
func New(width, nElem int) *Ledger {
	return &Ledger{width: width, nElem: nElem}
}

// Width returns the producer's elem_width.
func (l *Ledger) Width() int { return l.width }

// NElem returns the producer's element count.
func (l *Ledger) NElem() int { return l.nElem }

// Len returns the number of records appended so far.
func (l *Ledger) Len() int { return len(l.tape) }

// Records returns the tape in insertion order. Callers must not mutate the
// returned slice; it is the ledger's own backing storage.
func (l *Ledger) Records() []Record { return l.tape }

// AddRequest registers a new consumer dependency on producer element
// atomIndex, with a consumer-side output width of outputWidth. It appends a
// record, reserves outputWidth*width contiguous zeroed floats in accum, and
// returns the slot offset (the record's Loc) the consumer must remember and
// write into during its own PropagateDeriv.
func (l *Ledger) AddRequest(outputWidth, atomIndex int) int {
	loc := len(l.accum)
	l.tape = append(l.tape, Record{Atom: atomIndex, Loc: loc, OutputWidth: outputWidth})
	l.accum = append(l.accum, make([]float32, outputWidth*l.width)...)
	return loc
}

// AccumView returns a read/write view of the accum buffer. Consumers write
// their Jacobian-times-sensitivity blocks into accum[slot:slot+outputWidth*width]
// during their own PropagateDeriv.
func (l *Ledger) AccumView() []float32 { return l.accum }

// Reset zeroes the accum buffer. Called once at the start of every reverse
// pass, before any node's PropagateDeriv runs.
func (l *Ledger) Reset() {
	for i := range l.accum {
		l.accum[i] = 0
	}
}

// Accumulate implements step 1 of the reverse-autodiff primitive described
// in the ledger's design: for every tape record, read each of its
// outputWidth stored width-vectors out of accum and add them into sens at
// the record's producer element. Each stored width-vector is already the
// consumer's own contribution to d(total potential)/d(producer element) —
// the consumer computed it by multiplying its local Jacobian by its own,
// already-populated sens before writing into accum. This call therefore
// fully materialises the producer's output sensitivity; the producer's
// PropagateDeriv can then read sens and propagate further upstream.
func (l *Ledger) Accumulate(sens *coord.Array) {
	w := l.width
	for _, r := range l.tape {
		for k := 0; k < r.OutputWidth; k++ {
			base := r.Loc + k*w
			for d := 0; d < w; d++ {
				sens.Add(d, r.Atom, l.accum[base+d])
			}
		}
	}
}
