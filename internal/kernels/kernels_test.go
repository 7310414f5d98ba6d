package kernels_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/mdcore/internal/kernels"
)

func TestForSequentialCoversEveryIndex(t *testing.T) {
	n := 37
	seen := make([]bool, n)
	kernels.For(n, func(i int) { seen[i] = true }, kernels.Config{Enabled: false})
	for i, s := range seen {
		assert.True(t, s, "index %d not visited", i)
	}
}

func TestForParallelCoversEveryIndex(t *testing.T) {
	n := 10000
	var count int64
	cfg := kernels.Config{Enabled: true, NumWorkers: 8, MinChunkSize: 1}
	kernels.For(n, func(i int) { atomic.AddInt64(&count, 1) }, cfg)
	assert.Equal(t, int64(n), count)
}

func TestAddInto(t *testing.T) {
	dst := []float32{1, 2, 3}
	kernels.AddInto(dst, []float32{10, 20, 30})
	assert.Equal(t, []float32{11, 22, 33}, dst)
}

func TestClip(t *testing.T) {
	dst := []float32{-5, 0.5, 5}
	kernels.Clip(dst, 1)
	assert.Equal(t, []float32{-1, 0.5, 1}, dst)
}

func TestZero(t *testing.T) {
	dst := []float32{1, 2, 3}
	kernels.Zero(dst)
	assert.Equal(t, []float32{0, 0, 0}, dst)
}
