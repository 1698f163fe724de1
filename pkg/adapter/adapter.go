// Package adapter connects a changing box source to the layout engine.
//
// An [Adapter] exposes an ordered, indexable collection of boxes and tells
// registered observers when that collection changes. A [Host] binds to one
// adapter, re-reads the full box list on every change notification, and
// runs layout and reflow passes over its current box order.
//
// # Adapters
//
// [ListAdapter] is a slice-backed adapter with Add, Remove, RemoveLast,
// Clear and Set. Custom adapters can embed [Observable] to get observer
// bookkeeping for free:
//
//	type tagAdapter struct {
//	    adapter.Observable
//	    tags []string
//	}
//
// # Reflow
//
// Host.Compress, Host.Align and Host.CompressAndAlign replace the host's
// current box order until the adapter changes again or Host.Reset is called.
// Host.TruncateToLines uses the line counts recorded by the last Host.Layout.
package adapter

import (
	"sync"

	"github.com/matzehuels/flowlayout/pkg/flow"
)

// Observer is notified after an adapter's contents change.
// Observers must be comparable; they are removed by equality.
type Observer interface {
	OnChanged()
}

// Adapter supplies boxes to a Host.
type Adapter interface {
	Count() int
	Box(i int) (flow.Box, error)
	RegisterObserver(o Observer)
	UnregisterObserver(o Observer)
}

// Snapshotter is implemented by adapters that can copy out all of their
// boxes in one consistent read. Host prefers it to Count and Box, which can
// interleave with a concurrent mutation.
type Snapshotter interface {
	Boxes() []flow.Box
}

// Observable keeps a set of observers. The zero value is ready to use.
type Observable struct {
	mu        sync.Mutex
	observers []Observer
}

// RegisterObserver adds o. Registering the same observer twice is a no-op.
func (ob *Observable) RegisterObserver(o Observer) {
	if o == nil {
		return
	}
	ob.mu.Lock()
	defer ob.mu.Unlock()
	for _, existing := range ob.observers {
		if existing == o {
			return
		}
	}
	ob.observers = append(ob.observers, o)
}

// UnregisterObserver removes o if present.
func (ob *Observable) UnregisterObserver(o Observer) {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	for i, existing := range ob.observers {
		if existing == o {
			ob.observers = append(ob.observers[:i], ob.observers[i+1:]...)
			return
		}
	}
}

// NotifyChanged calls OnChanged on every registered observer. Observers are
// called without holding the lock, so they may register or unregister.
func (ob *Observable) NotifyChanged() {
	ob.mu.Lock()
	observers := append([]Observer(nil), ob.observers...)
	ob.mu.Unlock()

	for _, o := range observers {
		o.OnChanged()
	}
}
