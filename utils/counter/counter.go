// Package counter provides monotonic identifiers that are safe to draw from
// multiple goroutines.
package counter

import (
	"fmt"
	"sync/atomic"
)

// Counter hands out increasing identifiers starting from zero.
// The zero value is ready to use and must not be copied after first use.
type Counter struct {
	next atomic.Uint64
}

// Next returns the current identifier and advances the counter.
func (c *Counter) Next() uint64 {
	return c.next.Add(1) - 1
}

// Peek returns the identifier the next call to Next will return.
func (c *Counter) Peek() uint64 {
	return c.next.Load()
}

// Name draws the next identifier and formats it as <prefix>_<id>.
func (c *Counter) Name(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, c.Next())
}
