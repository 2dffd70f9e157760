package repositories

import (
	"sync"
	"sync/atomic"
)

// Sequence hands out ids for one entity type: 1, 2, 3, ... Ids are never
// reused. Safe for concurrent use.
type Sequence struct {
	last atomic.Int64
}

func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}

// Last returns the most recently allocated id, or 0 if none was allocated.
func (s *Sequence) Last() int64 {
	return s.last.Load()
}

// collection is an id -> record arena that remembers insertion order.
// Records are copied in and out; callers never share memory with stored rows.
type collection[T any] struct {
	mu    sync.RWMutex
	seq   Sequence
	order []int64
	rows  map[int64]T
	clone func(T) T
}

func newCollection[T any](clone func(T) T) *collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &collection[T]{
		rows:  make(map[int64]T),
		clone: clone,
	}
}

func (c *collection[T]) insert(build func(id int64) T) T {
	rec, _ := c.insertUnless(nil, build)
	return rec
}

// insertUnless stores build(id) unless clash reports true for a stored row.
// The check and the write happen under one lock.
func (c *collection[T]) insertUnless(clash func(T) bool, build func(id int64) T) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if clash != nil {
		for _, id := range c.order {
			if clash(c.rows[id]) {
				var zero T
				return zero, false
			}
		}
	}
	id := c.seq.Next()
	rec := build(id)
	c.rows[id] = c.clone(rec)
	c.order = append(c.order, id)
	return c.clone(rec), true
}

func (c *collection[T]) get(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.clone(rec), true
}

func (c *collection[T]) update(id int64, apply func(*T)) (T, bool) {
	rec, found, _ := c.updateUnless(id, apply, nil)
	return rec, found
}

// updateUnless applies apply to a copy of row id and stores it, unless clash
// reports true for the candidate against any other stored row.
func (c *collection[T]) updateUnless(id int64, apply func(*T), clash func(candidate, other T) bool) (rec T, found bool, clashed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.rows[id]
	if !ok {
		return rec, false, false
	}
	candidate := c.clone(current)
	apply(&candidate)
	if clash != nil {
		for _, otherID := range c.order {
			if otherID != id && clash(candidate, c.rows[otherID]) {
				return rec, true, true
			}
		}
	}
	c.rows[id] = c.clone(candidate)
	return c.clone(candidate), true, false
}

// list returns a snapshot of the rows accepted by keep, in insertion order.
// A nil keep accepts every row.
func (c *collection[T]) list(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		rec := c.rows[id]
		if keep == nil || keep(rec) {
			out = append(out, c.clone(rec))
		}
	}
	return out
}

func (c *collection[T]) find(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, id := range c.order {
		if rec := c.rows[id]; match(rec) {
			return c.clone(rec), true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) count(keep func(T) bool) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if keep == nil {
		return len(c.order)
	}
	n := 0
	for _, id := range c.order {
		if keep(c.rows[id]) {
			n++
		}
	}
	return n
}
