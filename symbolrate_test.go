package urh

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sigwave/urhcore/config"
)

func repeatedRuns(runLen int, n int) []float64 {
	var out []float64
	v := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < runLen; j++ {
			out = append(out, v)
		}
		v = 1 - v
	}
	return out
}

func TestEstimateBitLengthExactRuns(t *testing.T) {
	cfg := config.Default()
	cfg.RunLengthTolerance = 0.10

	stream := repeatedRuns(20, 11) // eleven runs of exactly 20 samples each, an odd count so zeros outnumber ones and the binarization threshold is unambiguous
	bl, ok := EstimateBitLength(stream, cfg)
	assert.True(t, ok)
	assert.Equal(t, 20, bl)
}

func TestEstimateBitLengthTooShortFails(t *testing.T) {
	cfg := config.Default()
	_, ok := EstimateBitLength([]float64{1}, cfg)
	assert.False(t, ok)
}

func TestEstimateBitLengthBelowFloorFails(t *testing.T) {
	cfg := config.Default()
	stream := repeatedRuns(1, 21) // every run is length 1, GCD below 2
	_, ok := EstimateBitLength(stream, cfg)
	assert.False(t, ok)
}

func TestMedian(t *testing.T) {
	assert.InDelta(t, 3, median([]float64{1, 2, 3, 4, 5}), 1e-9)
}

func TestRunLengths(t *testing.T) {
	bits := []byte{0, 0, 1, 1, 1, 0}
	assert.Equal(t, []int{2, 3, 1}, runLengths(bits))
}

func TestTolerantGCD(t *testing.T) {
	bins := []runBin{{centroid: 10, count: 5}, {centroid: 20, count: 5}, {centroid: 30, count: 5}}
	g := tolerantGCD(bins, 0.05)
	assert.InDelta(t, 10, g, 1e-9)
}
