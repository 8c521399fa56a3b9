package urh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func msgOfLen(n int) Message {
	return newMessage(make([]byte, n), 0)
}

func TestClusterMessagesSingleTypeWhenNoLengthRepeats(t *testing.T) {
	messages := []Message{msgOfLen(8), msgOfLen(16), msgOfLen(24)}
	types := clusterMessages(messages)
	assert.Len(t, types, 1)
	assert.Equal(t, DefaultMessageTypeID, types[0].ID)
	assert.ElementsMatch(t, []int{0, 1, 2}, types[0].indices)
}

func TestClusterMessagesTwoRepeatedLengths(t *testing.T) {
	messages := []Message{
		msgOfLen(16), // type Default (first to appear with >=2 members)
		msgOfLen(32), // type Type 2
		msgOfLen(16),
		msgOfLen(32),
	}
	types := clusterMessages(messages)
	assert.Len(t, types, 2)
	assert.Equal(t, DefaultMessageTypeID, types[0].ID)
	assert.ElementsMatch(t, []int{0, 2}, types[0].indices)
	assert.Equal(t, "Type 2", types[1].ID)
	assert.ElementsMatch(t, []int{1, 3}, types[1].indices)
}

func TestClusterMessagesSingletonMergesToNearest(t *testing.T) {
	messages := []Message{
		msgOfLen(16),
		msgOfLen(16),
		msgOfLen(18), // singleton length, merges into the nearest cluster (16)
	}
	types := clusterMessages(messages)
	assert.Len(t, types, 1)
	assert.ElementsMatch(t, []int{0, 1, 2}, types[0].indices)
}

func TestClusterMessagesEmpty(t *testing.T) {
	assert.Empty(t, clusterMessages(nil))
}

func TestMessagesFor(t *testing.T) {
	all := []Message{msgOfLen(8), msgOfLen(16), msgOfLen(24)}
	got := messagesFor(all, []int{2, 0})
	assert.Equal(t, 24, got[0].Len())
	assert.Equal(t, 8, got[1].Len())
}
