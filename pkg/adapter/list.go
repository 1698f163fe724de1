package adapter

import (
	"sync"

	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/flow"
)

// ListAdapter is an Adapter backed by a slice. Every mutation notifies the
// registered observers after the internal lock is released.
type ListAdapter struct {
	Observable

	mu    sync.RWMutex
	boxes []flow.Box
}

// NewListAdapter returns a ListAdapter holding a copy of boxes.
func NewListAdapter(boxes ...flow.Box) *ListAdapter {
	return &ListAdapter{boxes: append([]flow.Box(nil), boxes...)}
}

// Count returns the number of boxes.
func (l *ListAdapter) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.boxes)
}

// Box returns the box at position i.
func (l *ListAdapter) Box(i int) (flow.Box, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 || i >= len(l.boxes) {
		return flow.Box{}, errors.New(errors.ErrCodeNotFound, "box index %d out of range [0, %d)", i, len(l.boxes))
	}
	return l.boxes[i], nil
}

// Boxes returns a copy of every box, read under one lock.
func (l *ListAdapter) Boxes() []flow.Box {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]flow.Box(nil), l.boxes...)
}

// Add appends boxes.
func (l *ListAdapter) Add(boxes ...flow.Box) {
	if len(boxes) == 0 {
		return
	}
	l.mu.Lock()
	l.boxes = append(l.boxes, boxes...)
	l.mu.Unlock()
	l.NotifyChanged()
}

// Remove deletes the box at position i.
func (l *ListAdapter) Remove(i int) error {
	l.mu.Lock()
	if i < 0 || i >= len(l.boxes) {
		n := len(l.boxes)
		l.mu.Unlock()
		return errors.New(errors.ErrCodeNotFound, "box index %d out of range [0, %d)", i, n)
	}
	l.boxes = append(l.boxes[:i], l.boxes[i+1:]...)
	l.mu.Unlock()
	l.NotifyChanged()
	return nil
}

// RemoveLast deletes the last box and reports whether there was one.
func (l *ListAdapter) RemoveLast() bool {
	l.mu.Lock()
	if len(l.boxes) == 0 {
		l.mu.Unlock()
		return false
	}
	l.boxes = l.boxes[:len(l.boxes)-1]
	l.mu.Unlock()
	l.NotifyChanged()
	return true
}

// Clear removes every box.
func (l *ListAdapter) Clear() {
	l.mu.Lock()
	l.boxes = nil
	l.mu.Unlock()
	l.NotifyChanged()
}

// Set replaces the contents with a copy of boxes.
func (l *ListAdapter) Set(boxes []flow.Box) {
	l.mu.Lock()
	l.boxes = append([]flow.Box(nil), boxes...)
	l.mu.Unlock()
	l.NotifyChanged()
}
