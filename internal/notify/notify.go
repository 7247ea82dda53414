// Package notify queues dismissible user-facing notifications for failed
// explicit actions (bid, listing, pricing). Background polling never posts here.
package notify

import (
	"sync"
	"time"

	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/utils"

	"github.com/gammazero/deque"
)

// Level of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one message shown until dismissed.
type Notification struct {
	ID      string
	Level   Level
	Message string
	At      time.Time
}

// DefaultCapacity bounds the queue; the oldest entry is dropped beyond it.
const DefaultCapacity = 20

// Center is a FIFO of pending notifications.
type Center struct {
	mu        sync.Mutex
	queue     *deque.Deque[Notification]
	capacity  int
	listeners map[int]func([]Notification)
	nextID    int
	now       func() time.Time
}

// NewCenter returns a Center holding at most capacity notifications.
func NewCenter(capacity int) *Center {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Center{
		queue:     deque.New[Notification](),
		capacity:  capacity,
		listeners: make(map[int]func([]Notification)),
		now:       time.Now,
	}
}

// Push enqueues a message and returns it.
func (c *Center) Push(level Level, message string) Notification {
	n := Notification{ID: utils.GenerateID(), Level: level, Message: message, At: c.now()}

	c.mu.Lock()
	c.queue.PushBack(n)
	for c.queue.Len() > c.capacity {
		c.queue.PopFront()
	}
	pending, listeners := c.pendingLocked(), c.listenersLocked()
	c.mu.Unlock()

	notifyAll(listeners, pending)
	return n
}

// Error enqueues the human-readable form of err for the named action.
func (c *Center) Error(action string, err error) Notification {
	utils.Error(action+" failed", map[string]any{"error": err.Error()})
	return c.Push(LevelError, marketerrors.UserMessage(err))
}

// Dismiss removes the notification with id; unknown ids are ignored.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	found := false
	for i := c.queue.Len(); i > 0; i-- {
		n := c.queue.PopFront()
		if n.ID == id && !found {
			found = true
			continue
		}
		c.queue.PushBack(n)
	}
	pending, listeners := c.pendingLocked(), c.listenersLocked()
	c.mu.Unlock()

	if found {
		notifyAll(listeners, pending)
	}
	return found
}

// Pending returns the queued notifications, oldest first.
func (c *Center) Pending() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingLocked()
}

// Drain returns and removes every pending notification.
func (c *Center) Drain() []Notification {
	c.mu.Lock()
	out := c.pendingLocked()
	c.queue.Clear()
	listeners := c.listenersLocked()
	c.mu.Unlock()

	if len(out) > 0 {
		notifyAll(listeners, nil)
	}
	return out
}

// Subscribe registers fn for every change of the pending list.
func (c *Center) Subscribe(fn func([]Notification)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Center) pendingLocked() []Notification {
	out := make([]Notification, c.queue.Len())
	for i := range out {
		out[i] = c.queue.At(i)
	}
	return out
}

func (c *Center) listenersLocked() []func([]Notification) {
	out := make([]func([]Notification), 0, len(c.listeners))
	for _, fn := range c.listeners {
		out = append(out, fn)
	}
	return out
}

func notifyAll(listeners []func([]Notification), pending []Notification) {
	for _, fn := range listeners {
		fn(pending)
	}
}
