// Package navigator holds the ordered question list and the current index.
//
// Movement wraps around at both ends. An empty list is a valid state: every
// move is a no-op and Current reports nothing loaded.
package navigator

import (
	"context"
	"errors"
	"fmt"

	"github.com/idilsaglam/qotd/internal/model"
)

// ErrOutOfRange is returned by Goto for a position outside the list.
var ErrOutOfRange = errors.New("index out of range")

// Sink receives the index after every change.
type Sink interface {
	Save(ctx context.Context, index int) error
}

type Controller struct {
	items []model.Question
	index int
}

// New returns a controller positioned at 0.
func New(items []model.Question) *Controller {
	c := &Controller{}
	c.SetItems(items)
	return c
}

// SetItems replaces the list. The index is kept when still in range,
// otherwise it falls back to 0.
func (c *Controller) SetItems(items []model.Question) {
	c.items = items
	if c.index < 0 || c.index >= len(items) {
		c.index = 0
	}
}

func (c *Controller) Items() []model.Question { return c.items }
func (c *Controller) Len() int                { return len(c.items) }
func (c *Controller) Index() int              { return c.index }

// Current returns the question under the cursor; false means not loaded.
func (c *Controller) Current() (model.Question, bool) {
	if len(c.items) == 0 {
		return model.Question{}, false
	}
	return c.items[c.index], true
}

// Next advances with wraparound and reports whether the index changed.
func (c *Controller) Next() bool {
	n := len(c.items)
	if n == 0 {
		return false
	}
	prev := c.index
	c.index = (c.index + 1) % n
	return c.index != prev
}

// Previous retreats with wraparound and reports whether the index changed.
func (c *Controller) Previous() bool {
	n := len(c.items)
	if n == 0 {
		return false
	}
	prev := c.index
	c.index = (c.index - 1 + n) % n
	return c.index != prev
}

// Restore applies a persisted index; anything outside [0, len) becomes 0.
func (c *Controller) Restore(persisted int) {
	if persisted >= 0 && persisted < len(c.items) {
		c.index = persisted
		return
	}
	c.index = 0
}

// Goto moves to i.
func (c *Controller) Goto(i int) error {
	if i < 0 || i >= len(c.items) {
		return fmt.Errorf("%w: have %d, got %d", ErrOutOfRange, len(c.items), i)
	}
	c.index = i
	return nil
}

// Persist writes the current index to sink.
func (c *Controller) Persist(ctx context.Context, sink Sink) error {
	return sink.Save(ctx, c.index)
}

// SetCompleted mirrors a stored completion change into the list.
func (c *Controller) SetCompleted(id int, completed bool) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Completed = completed
			return true
		}
	}
	return false
}
