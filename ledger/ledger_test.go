package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/mdcore/coord"
	"github.com/born-ml/mdcore/ledger"
)

func TestAddRequestReservesNonOverlappingSlots(t *testing.T) {
	l := ledger.New(3, 4)
	s0 := l.AddRequest(1, 0)
	s1 := l.AddRequest(2, 1)
	s2 := l.AddRequest(1, 2)

	assert.Equal(t, 0, s0)
	assert.Equal(t, 3, s1)  // 1*width(3)
	assert.Equal(t, 9, s2)  // 3 + 2*width(3)
	assert.Len(t, l.AccumView(), 12)

	for _, r := range l.Records() {
		require.LessOrEqual(t, r.Loc+r.OutputWidth*l.Width(), len(l.AccumView()))
	}
}

func TestAccumulateSumsContributionsIntoSens(t *testing.T) {
	width := 3
	nElem := 2
	l := ledger.New(width, nElem)

	// Two independent consumers depend on producer element 0, each
	// contributing a 1-wide block; one consumer depends on element 1.
	slotA := l.AddRequest(1, 0)
	slotB := l.AddRequest(1, 0)
	slotC := l.AddRequest(1, 1)

	view := l.AccumView()
	copy(view[slotA:slotA+width], []float32{1, 2, 3})
	copy(view[slotB:slotB+width], []float32{10, 20, 30})
	copy(view[slotC:slotC+width], []float32{5, 5, 5})

	sens := coord.New(width, nElem)
	l.Accumulate(sens)

	assert.Equal(t, float32(11), sens.At(0, 0))
	assert.Equal(t, float32(22), sens.At(1, 0))
	assert.Equal(t, float32(33), sens.At(2, 0))
	assert.Equal(t, float32(5), sens.At(0, 1))
}

func TestResetZeroesAccum(t *testing.T) {
	l := ledger.New(3, 1)
	slot := l.AddRequest(1, 0)
	view := l.AccumView()
	view[slot] = 7
	l.Reset()
	for _, v := range l.AccumView() {
		assert.Equal(t, float32(0), v)
	}
}

func TestAutoDiffParamsEnforcesCapacity(t *testing.T) {
	p := &ledger.AutoDiffParams{}
	for i := 0; i < ledger.MaxType1Slots; i++ {
		require.NoError(t, p.AddType1(i))
	}
	err := p.AddType1(99)
	assert.ErrorIs(t, err, ledger.ErrSlotCapacityExceeded)

	for i := 0; i < ledger.MaxType2Slots; i++ {
		require.NoError(t, p.AddType2(i))
	}
	err = p.AddType2(99)
	assert.ErrorIs(t, err, ledger.ErrSlotCapacityExceeded)
}
