package telegram

// Cursor tracks one bot's position in the update stream. It lives in
// process memory only: a restart loses at most the look-back window of
// history, and the periodic full snapshot re-converges the store anyway.
//
// Bootstrap semantics: the first poll runs without an offset, the cursor
// jumps past whatever backlog came back, and none of those updates are
// handed to the caller. Pre-startup history is never processed.
type Cursor struct {
	offset      int64
	initialized bool
}

func NewCursor() *Cursor {
	return &Cursor{}
}

// Offset returns the value to pass to getUpdates; 0 means poll without an
// offset.
func (c *Cursor) Offset() int64 {
	if !c.initialized {
		return 0
	}
	return c.offset
}

// Initialized reports whether bootstrap has completed.
func (c *Cursor) Initialized() bool {
	return c.initialized
}

// Observe advances the cursor over a poll result and returns the updates the
// caller may process. Updates at ids the cursor has already acknowledged are
// dropped, so a server replay yields nothing. On the bootstrap poll the
// result is always empty. An empty backlog leaves the cursor unbootstrapped
// so the next poll tries again.
func (c *Cursor) Observe(updates []Update) []Update {
	if !c.initialized {
		if len(updates) == 0 {
			return nil
		}
		c.offset = maxUpdateID(updates) + 1
		c.initialized = true
		return nil
	}

	if len(updates) == 0 {
		return nil
	}

	var fresh []Update
	for _, u := range updates {
		if u.UpdateID >= c.offset {
			fresh = append(fresh, u)
		}
	}

	next := maxUpdateID(updates)
	if prev := c.offset - 1; prev > next {
		next = prev
	}
	c.offset = next + 1
	return fresh
}

func maxUpdateID(updates []Update) int64 {
	var max int64
	for _, u := range updates {
		if u.UpdateID > max {
			max = u.UpdateID
		}
	}
	return max
}
