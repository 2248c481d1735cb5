package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func upd(ids ...int64) []Update {
	out := make([]Update, len(ids))
	for i, id := range ids {
		out[i] = Update{UpdateID: id}
	}
	return out
}

func TestCursor_BootstrapSwallowsBacklog(t *testing.T) {
	c := NewCursor()
	assert.EqualValues(t, 0, c.Offset())
	assert.False(t, c.Initialized())

	got := c.Observe(upd(3, 7, 5))
	assert.Nil(t, got, "bootstrap poll must yield nothing")
	assert.True(t, c.Initialized())
	assert.EqualValues(t, 8, c.Offset(), "cursor jumps past the highest backlog id")
}

func TestCursor_EmptyBacklogRetriesBootstrap(t *testing.T) {
	c := NewCursor()

	got := c.Observe(nil)
	assert.Nil(t, got)
	assert.False(t, c.Initialized(), "empty backlog leaves bootstrap pending")
	assert.EqualValues(t, 0, c.Offset())
}

func TestCursor_DeliversAfterBootstrap(t *testing.T) {
	c := NewCursor()
	c.Observe(upd(10))

	got := c.Observe(upd(11, 12))
	assert.Len(t, got, 2)
	assert.EqualValues(t, 13, c.Offset())

	got = c.Observe(nil)
	assert.Nil(t, got)
	assert.EqualValues(t, 13, c.Offset(), "empty poll leaves the offset alone")
}

func TestCursor_NeverMovesBackwards(t *testing.T) {
	c := NewCursor()
	c.Observe(upd(100))
	assert.EqualValues(t, 101, c.Offset())

	// A server replay of older ids must not rewind the cursor.
	c.Observe(upd(50))
	assert.EqualValues(t, 101, c.Offset())
}

func TestCursor_FiltersReplayedUpdates(t *testing.T) {
	c := NewCursor()
	c.Observe(upd(10, 11, 12))
	assert.EqualValues(t, 13, c.Offset())

	got := c.Observe(upd(10, 11, 12))
	assert.Empty(t, got, "acknowledged updates must not be handed back")
	assert.EqualValues(t, 13, c.Offset())
}

func TestCursor_FiltersMixedBatch(t *testing.T) {
	c := NewCursor()
	c.Observe(upd(20))
	c.Observe(upd(21, 22))

	// A batch straddling the offset yields only the unseen tail.
	got := c.Observe(upd(22, 23, 24))
	if assert.Len(t, got, 2) {
		assert.EqualValues(t, 23, got[0].UpdateID)
		assert.EqualValues(t, 24, got[1].UpdateID)
	}
	assert.EqualValues(t, 25, c.Offset())
}
