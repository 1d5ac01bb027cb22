package game

// Cursor walks a Schedule forward, one group at a time. It never moves back.
type Cursor struct {
	schedule *Schedule
	index    int
}

func (c *Cursor) Exhausted() bool {
	return c.index >= len(c.schedule.keys)
}

// Current returns the earliest group not yet advanced past, ok is false once
// the cursor is exhausted
func (c *Cursor) Current() (offset int, group []Entry, ok bool) {
	if c.Exhausted() {
		return 0, nil, false
	}
	offset = c.schedule.keys[c.index]
	return offset, c.schedule.groups[offset], true
}

// Advance moves to the next group and reports whether there is one
func (c *Cursor) Advance() bool {
	if c.Exhausted() {
		return false
	}
	c.index++
	return !c.Exhausted()
}
