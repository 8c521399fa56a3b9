package fsked

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sigwave/urhcore/config"
)

func TestComputeCRC32MatchesStdlib(t *testing.T) {
	alg := config.DefaultChecksumCatalogue()[0] // CRC-32
	assert.Equal(t, "CRC-32", alg.Name)

	// The standard CRC-32/ISO-HDLC check value for the ASCII string
	// "123456789", a widely published test vector.
	got := Compute(alg, []byte("123456789"))
	assert.Equal(t, uint32(0xCBF43926), got)

	// Round-trip: recomputing gives the same value.
	assert.Equal(t, got, Compute(alg, []byte("123456789")))
}

func TestComputeAdditiveSum(t *testing.T) {
	alg := config.ChecksumAlgorithm{Name: "SUM-8", Width: 8, Additive: true}
	got := Compute(alg, []byte{0x01, 0x02, 0xFF})
	assert.Equal(t, uint32(0x01+0x02+0xFF)&0xFF, got)
}

func TestComputeAdditiveSumWraps(t *testing.T) {
	alg := config.ChecksumAlgorithm{Name: "SUM-8", Width: 8, Additive: true}
	got := Compute(alg, []byte{0xFF, 0xFF, 0x02})
	assert.Equal(t, uint32(0x00), got) // 0x200 mod 0x100
}

func TestComputeCRC8Deterministic(t *testing.T) {
	alg := config.ChecksumAlgorithm{Name: "CRC-8", Width: 8, Polynomial: 0x07, Init: 0x00}
	a := Compute(alg, []byte{0x12, 0x34})
	b := Compute(alg, []byte{0x12, 0x34})
	assert.Equal(t, a, b)
	assert.LessOrEqual(t, a, uint32(0xFF))
}

func TestBitsToBytes(t *testing.T) {
	bits := []byte{0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0}
	got := BitsToBytes(bits)
	assert.Equal(t, []byte{0x01, 0xFE}, got)
}

func TestBitsToBytesDropsPartialTrailingByte(t *testing.T) {
	bits := []byte{1, 1, 1, 1, 1, 1, 1, 1, 0, 1, 0}
	got := BitsToBytes(bits)
	assert.Equal(t, []byte{0xFF}, got)
}
