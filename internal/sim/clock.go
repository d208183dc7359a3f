package sim

import "mimir/internal/book"

// Clock tracks the simulation's current timestamp. Advancing moves to the
// next distinct timestamp present in the book, wrapping to the earliest
// when the timeline is exhausted.
type Clock struct {
	book    *book.Book
	current string
}

// NewClock starts a clock at the book's earliest timestamp. The book must
// not be empty.
func NewClock(b *book.Book) (*Clock, error) {
	earliest, err := b.EarliestTimestamp()
	if err != nil {
		return nil, err
	}
	return &Clock{book: b, current: earliest}, nil
}

func (c *Clock) Now() string {
	return c.current
}

func (c *Clock) Advance() error {
	next, err := c.book.NextTimestamp(c.current)
	if err != nil {
		return err
	}
	c.current = next
	return nil
}
