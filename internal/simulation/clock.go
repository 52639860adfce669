package simulation

// Clock is a monotonic logical day counter.
//
// The first call to Next returns 1. Day 0 is the starting inventory.
type Clock struct {
	day int
}

// NewClock creates a clock at day 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock positioned at a specific day.
// Used when resuming a stored run.
func NewClockAt(day int) *Clock {
	return &Clock{day: day}
}

// Next advances the clock and returns the new day.
func (c *Clock) Next() int {
	c.day++
	return c.day
}

// Current returns the current day without advancing.
func (c *Clock) Current() int {
	return c.day
}
