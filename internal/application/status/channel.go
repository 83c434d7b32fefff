// internal/application/status/channel.go
package status

import (
	"sync"
	"time"
)

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// DefaultTTL matches the display interval the UI historically used.
const DefaultTTL = 3 * time.Second

// Notification is the single user-visible outcome of an operation. Message
// is constructed by this system only and may embed a small amount of markup
// (an actionable link); it is rendered without further escaping, so external
// input never flows into it unsanitized.
type Notification struct {
	Kind    Kind
	Message string
}

// Channel is a single-slot publish surface. The latest publication
// overwrites any currently displayed notification (last-write-wins) and
// self-expires after the TTL unless superseded sooner.
type Channel struct {
	mu  sync.Mutex
	ttl time.Duration
	gen uint64
	cur *Notification

	// onChange, when set, observes every slot transition including expiry.
	onChange func(*Notification)

	// afterFunc is swappable for tests.
	afterFunc func(time.Duration, func()) *time.Timer
}

// NewChannel returns a channel with the given TTL; ttl <= 0 uses DefaultTTL.
func NewChannel(ttl time.Duration) *Channel {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Channel{ttl: ttl, afterFunc: time.AfterFunc}
}

// Watch registers a callback invoked on every change, including expiry
// (with nil). Intended for the view; a single watcher is enough.
func (c *Channel) Watch(fn func(*Notification)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Publish replaces the current notification and arms its expiry. A timer
// from a superseded notification never clears a newer one: each publication
// bumps a generation counter and the timer only clears its own generation.
func (c *Channel) Publish(kind Kind, message string) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	n := &Notification{Kind: kind, Message: message}
	c.cur = n
	fn := c.onChange
	c.afterFunc(c.ttl, func() { c.expire(gen) })
	c.mu.Unlock()

	if fn != nil {
		fn(n)
	}
}

// Success publishes a success notification.
func (c *Channel) Success(message string) { c.Publish(KindSuccess, message) }

// Error publishes an error notification.
func (c *Channel) Error(message string) { c.Publish(KindError, message) }

// Current returns the live notification, or nil when the slot is empty.
func (c *Channel) Current() *Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

func (c *Channel) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.cur == nil {
		c.mu.Unlock()
		return
	}
	c.cur = nil
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(nil)
	}
}
