package urh

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sigwave/urhcore/config"
)

func constFloat32(n int, v float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestSegmentFindsOnePlateau(t *testing.T) {
	cfg := config.Default()
	cfg.MinPlateau = 2
	cfg.HysteresisIn = 0.1
	cfg.HysteresisOut = 0.05

	var stream []float32
	stream = append(stream, constFloat32(50, 0.01)...)  // silence
	stream = append(stream, constFloat32(20, 1.0)...)   // signal
	stream = append(stream, constFloat32(1050, 0.01)...) // long silence

	plateaus := Segment(stream, 0.1, 1000, cfg)
	if assert.Len(t, plateaus, 1) {
		assert.Equal(t, 50, plateaus[0].Start)
		assert.Equal(t, 70, plateaus[0].End)
	}
}

func TestSegmentDropsShortGlitch(t *testing.T) {
	cfg := config.Default()
	cfg.MinPlateau = 20
	cfg.HysteresisIn = 0.1
	cfg.HysteresisOut = 0.05

	var stream []float32
	stream = append(stream, constFloat32(10, 0.01)...)
	stream = append(stream, constFloat32(3, 1.0)...) // too short to count
	stream = append(stream, constFloat32(1100, 0.01)...)

	plateaus := Segment(stream, 0.1, 1000, cfg)
	assert.Empty(t, plateaus)
}

func TestSegmentRequiresMinimumPause(t *testing.T) {
	cfg := config.Default()
	cfg.MinPlateau = 2

	var stream []float32
	stream = append(stream, constFloat32(10, 1.0)...)
	stream = append(stream, constFloat32(5, 0.01)...) // pause shorter than minPause=100
	stream = append(stream, constFloat32(10, 1.0)...)
	stream = append(stream, constFloat32(200, 0.01)...)

	plateaus := Segment(stream, 0.1, 100, cfg)
	// The short gap shouldn't be treated as a real silence boundary,
	// so the two bursts merge into one plateau.
	assert.Len(t, plateaus, 1)
}

func TestSegmentEmptyInput(t *testing.T) {
	cfg := config.Default()
	assert.Empty(t, Segment(nil, 0.1, 100, cfg))
}

func TestPauses(t *testing.T) {
	plateaus := []Plateau{{Start: 0, End: 10}, {Start: 50, End: 60}, {Start: 200, End: 210}}
	pauses := Pauses(plateaus)
	assert.Equal(t, []int{40, 140, 0}, pauses)
}
