package urh

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sigwave/urhcore/config"
)

func TestDemodulatePlateauRecoversBits(t *testing.T) {
	cfg := config.Default()
	cfg.MaxAmbiguousSymbolFraction = 0.25

	bitLength := 10
	tolerance := 1
	wantBits := []byte{1, 0, 1, 1, 0}

	// A short pre-roll at the opposite quantized level precedes the
	// real symbols, the way a plateau's attack edge looks in
	// practice: the first transition (spec section 4.H step 2) then
	// lands exactly on the boundary of the first real symbol instead
	// of splitting it.
	var stream []float64
	for i := 0; i < 5; i++ {
		stream = append(stream, 0.0)
	}
	for _, b := range wantBits {
		v := 0.0
		if b == 1 {
			v = 1.0
		}
		for i := 0; i < bitLength; i++ {
			stream = append(stream, v)
		}
	}

	plateau := Plateau{Start: 0, End: len(stream)}
	bits, ok := DemodulatePlateau(stream, plateau, 0.5, bitLength, tolerance, true, cfg)
	assert.True(t, ok)
	assert.Equal(t, wantBits, bits)
}

func TestDemodulatePlateauTooShortFails(t *testing.T) {
	cfg := config.Default()
	stream := []float64{1, 1, 1}
	plateau := Plateau{Start: 0, End: 3}
	_, ok := DemodulatePlateau(stream, plateau, 0.5, 10, 1, true, cfg)
	assert.False(t, ok)
}

func TestFirstTransition(t *testing.T) {
	assert.Equal(t, 3, firstTransition([]byte{0, 0, 0, 1, 1}))
	assert.Equal(t, 0, firstTransition([]byte{1, 1, 1, 1}))
}
