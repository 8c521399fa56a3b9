package urh

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sigwave/urhcore/config"
)

func byteBits(v byte) []byte {
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		if v&(1<<uint(7-i)) != 0 {
			out[i] = 1
		}
	}
	return out
}

func zeros(n int) []byte { return make([]byte, n) }

func TestFindLengthBitsUnit(t *testing.T) {
	cfg := config.Default()

	// 8-bit length field counting total message bits: message 1 is
	// 100 bits long with a length byte of 100; message 2 is 200 bits
	// long with a length byte of 200.
	m1 := append(byteBits(100), zeros(92)...)
	m2 := append(byteBits(200), zeros(192)...)
	messages := []Message{newMessage(m1, 0), newMessage(m2, 0)}

	field, ok := findLength(messages, 0, commonPrefixLength(messages), cfg)
	assert.True(t, ok)
	assert.Equal(t, 0, field.Start)
	assert.Equal(t, 8, field.End)
}

func TestFindLengthBytesUnit(t *testing.T) {
	cfg := config.Default()

	// 8-bit length field counting bytes of total message: message 1 is
	// 24 bits (3 bytes) -> value 3; message 2 is 40 bits (5 bytes) ->
	// value 5.
	m1 := append(byteBits(3), zeros(16)...)
	m2 := append(byteBits(5), zeros(32)...)
	messages := []Message{newMessage(m1, 0), newMessage(m2, 0)}

	field, ok := findLength(messages, 0, commonPrefixLength(messages), cfg)
	assert.True(t, ok)
	assert.Equal(t, 0, field.Start)
	assert.Equal(t, 8, field.End)
}

func TestFindLengthNoCandidateFails(t *testing.T) {
	cfg := config.Default()

	// Same total length for both messages, so any affine relation
	// would require their field values to be equal at every offset --
	// make the two messages bitwise complements so none ever are.
	m1 := []byte{1, 1, 1, 1, 1, 1, 1, 1}
	m2 := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	messages := []Message{newMessage(m1, 0), newMessage(m2, 0)}

	_, ok := findLength(messages, 0, commonPrefixLength(messages), cfg)
	assert.False(t, ok)
}

func TestFindLengthRespectsFromOffset(t *testing.T) {
	cfg := config.Default()

	prefix := bitsFromString("11110000") // 8 bits already assigned (e.g. sync)
	m1 := append(append([]byte{}, prefix...), append(byteBits(100), zeros(92)...)...)
	m2 := append(append([]byte{}, prefix...), append(byteBits(200), zeros(192)...)...)
	messages := []Message{newMessage(m1, 0), newMessage(m2, 0)}

	field, ok := findLength(messages, 8, commonPrefixLength(messages), cfg)
	assert.True(t, ok)
	assert.Equal(t, 8, field.Start)
	assert.Equal(t, 16, field.End)
}
