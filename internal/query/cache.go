// Package query is the data-fetching layer: a keyed result cache with
// in-flight deduplication, observers, invalidation and pollers.
package query

import (
	"context"
	"errors"
	"sync"
	"time"

	"ev-marketplace/utils"

	"golang.org/x/sync/singleflight"
)

// Status of one cache entry.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// State is what observers of a key see. Data holds the last successful
// result and survives later failures.
type State struct {
	Status    Status
	Data      any
	Err       error
	UpdatedAt time.Time
	Stale     bool
}

// HasData reports whether a successful result was ever stored.
func (s State) HasData() bool { return !s.UpdatedAt.IsZero() }

// Observer is notified with the new state of a key.
type Observer func(key Key, st State)

type entry struct {
	state     State
	observers map[int]Observer
	// epoch is bumped by Invalidate and Reset so fetches started earlier
	// cannot overwrite newer knowledge.
	epoch uint64
}

// Cache stores the last successful result per key.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	nextID  int
	group   singleflight.Group
	now     func() time.Time
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[Key]*entry),
		now:     time.Now,
	}
}

func (c *Cache) entryLocked(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{observers: make(map[int]Observer)}
		c.entries[key] = e
	}
	return e
}

// Peek returns the current state of key without fetching.
func (c *Cache) Peek(key Key) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.state
	}
	return State{}
}

// Subscribe registers fn for state changes of key.
func (c *Cache) Subscribe(key Key, fn Observer) (unsubscribe func()) {
	c.mu.Lock()
	e := c.entryLocked(key)
	id := c.nextID
	c.nextID++
	e.observers[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			if e, ok := c.entries[key]; ok {
				delete(e.observers, id)
			}
			c.mu.Unlock()
		})
	}
}

// Fetch runs fn for key unless a fetch for the same key is already in
// flight, in which case the caller shares its result.
func (c *Cache) Fetch(ctx context.Context, key Key, fn func(ctx context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	e := c.entryLocked(key)
	epoch := e.epoch
	c.mu.Unlock()

	ch := c.group.DoChan(string(key), func() (any, error) {
		c.update(key, epoch, func(st *State) { st.Status = StatusLoading })

		v, err := fn(ctx)
		switch {
		case err == nil:
			c.update(key, epoch, func(st *State) {
				st.Status = StatusSuccess
				st.Data = v
				st.Err = nil
				st.Stale = false
				st.UpdatedAt = c.now()
			})
		case ctx.Err() != nil:
			// The owner went away; leave the entry as it was.
			c.update(key, epoch, func(st *State) {
				if st.HasData() {
					st.Status = StatusSuccess
				} else {
					st.Status = StatusIdle
				}
			})
		default:
			c.update(key, epoch, func(st *State) {
				st.Status = StatusError
				st.Err = err
			})
		}
		return v, err
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// update applies mutate when the entry has not been invalidated since epoch,
// then notifies observers outside the lock.
func (c *Cache) update(key Key, epoch uint64, mutate func(st *State)) {
	c.mu.Lock()
	e := c.entryLocked(key)
	if e.epoch != epoch {
		c.mu.Unlock()
		utils.Debug("dropping result of superseded fetch", map[string]any{"key": string(key)})
		return
	}
	mutate(&e.state)
	st := e.state
	observers := snapshotObservers(e)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(key, st)
	}
}

func snapshotObservers(e *entry) []Observer {
	out := make([]Observer, 0, len(e.observers))
	for _, fn := range e.observers {
		out = append(out, fn)
	}
	return out
}

// Set stores data for key as if it had just been fetched.
func (c *Cache) Set(key Key, data any) {
	c.mu.Lock()
	e := c.entryLocked(key)
	epoch := e.epoch
	c.mu.Unlock()
	c.update(key, epoch, func(st *State) {
		st.Status = StatusSuccess
		st.Data = data
		st.Err = nil
		st.Stale = false
		st.UpdatedAt = c.now()
	})
}

// Invalidate marks every entry under prefix stale. Data is kept for display;
// in-flight fetches that began earlier can no longer write their result.
func (c *Cache) Invalidate(prefixes ...Key) {
	type note struct {
		key       Key
		st        State
		observers []Observer
	}
	var notes []note

	c.mu.Lock()
	for key, e := range c.entries {
		for _, p := range prefixes {
			if !key.HasPrefix(p) {
				continue
			}
			e.epoch++
			e.state.Stale = true
			if e.state.Status == StatusLoading {
				e.state.Status = StatusIdle
				if e.state.HasData() {
					e.state.Status = StatusSuccess
				}
			}
			c.group.Forget(string(key))
			notes = append(notes, note{key: key, st: e.state, observers: snapshotObservers(e)})
			break
		}
	}
	c.mu.Unlock()

	for _, n := range notes {
		utils.Debug("cache entry invalidated", map[string]any{"key": string(n.key)})
		for _, fn := range n.observers {
			fn(n.key, n.st)
		}
	}
}

// Reset drops every cached result. Observers stay registered.
func (c *Cache) Reset() {
	c.mu.Lock()
	var notes []func()
	for key, e := range c.entries {
		e.epoch++
		e.state = State{}
		c.group.Forget(string(key))
		key, observers := key, snapshotObservers(e)
		notes = append(notes, func() {
			for _, fn := range observers {
				fn(key, State{})
			}
		})
	}
	c.mu.Unlock()

	for _, n := range notes {
		n()
	}
}

// ErrWrongType is returned when a cached value does not have the requested type.
var ErrWrongType = errors.New("query: cached value has unexpected type")

// Fetch is the typed form of Cache.Fetch.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	var zero T
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, ErrWrongType
	}
	return out, nil
}

// Peek is the typed form of Cache.Peek; ok is false without data.
func Peek[T any](c *Cache, key Key) (T, bool) {
	st := c.Peek(key)
	out, ok := st.Data.(T)
	return out, ok && st.HasData()
}

// Mutate runs fn and, only when it succeeds, invalidates the given prefixes.
func Mutate[T any](ctx context.Context, c *Cache, fn func(ctx context.Context) (T, error), invalidates ...Key) (T, error) {
	out, err := fn(ctx)
	if err != nil {
		return out, err
	}
	c.Invalidate(invalidates...)
	return out, nil
}
