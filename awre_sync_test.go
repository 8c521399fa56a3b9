package urh

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sigwave/urhcore/config"
)

func TestFindSyncCommonRun(t *testing.T) {
	cfg := config.Default()
	cfg.MinSyncBits = 8

	sync := bitsFromString("1100101100101100") // 16 bits, multiple of 4
	messages := []Message{
		newMessage(append(append([]byte{}, sync...), bitsFromString("0000")...), 0),
		newMessage(append(append([]byte{}, sync...), bitsFromString("1111")...), 0),
	}

	end, ok := findSync(messages, 0, commonPrefixLength(messages), cfg)
	assert.True(t, ok)
	assert.Equal(t, len(sync), end)
}

func TestFindSyncBelowMinimumFails(t *testing.T) {
	cfg := config.Default()
	cfg.MinSyncBits = 32

	sync := bitsFromString("11001011") // 8 bits, below 32
	messages := []Message{
		newMessage(append(append([]byte{}, sync...), bitsFromString("0000")...), 0),
		newMessage(append(append([]byte{}, sync...), bitsFromString("1111")...), 0),
	}

	_, ok := findSync(messages, 0, commonPrefixLength(messages), cfg)
	assert.False(t, ok)
}

func TestFindSyncTruncatesToMultipleOfFour(t *testing.T) {
	cfg := config.Default()
	cfg.MinSyncBits = 4

	// 10 identical bits, then diverge -- sync length must drop to 8
	// (the largest multiple of 4 not exceeding 10).
	common := bitsFromString("1100101100")
	messages := []Message{
		newMessage(append(append([]byte{}, common...), bitsFromString("00")...), 0),
		newMessage(append(append([]byte{}, common...), bitsFromString("11")...), 0),
	}

	end, ok := findSync(messages, 0, commonPrefixLength(messages), cfg)
	assert.True(t, ok)
	assert.Equal(t, 8, end)
}
