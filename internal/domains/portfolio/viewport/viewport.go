// Package viewport tracks the vertical scroll offset of a page and fans it
// out to subscribed listeners.
package viewport

import "sync"

type Listener func(scrollY float64)

type Viewport struct {
	mu        sync.RWMutex
	scrollY   float64
	nextID    uint64
	listeners map[uint64]Listener
}

func New() *Viewport {
	return &Viewport{listeners: map[uint64]Listener{}}
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	viewport *Viewport
	id       uint64
	once     sync.Once
}

// Subscribe registers listener for scroll updates. Listeners are called
// outside the lock, so a listener may unsubscribe itself.
func (v *Viewport) Subscribe(listener Listener) *Subscription {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.nextID++
	v.listeners[v.nextID] = listener

	return &Subscription{viewport: v, id: v.nextID}
}

// Scroll records the new offset and dispatches it to every live listener.
func (v *Viewport) Scroll(scrollY float64) {
	v.mu.Lock()
	v.scrollY = scrollY

	listeners := make([]Listener, 0, len(v.listeners))
	for _, listener := range v.listeners {
		listeners = append(listeners, listener)
	}
	v.mu.Unlock()

	for _, listener := range listeners {
		listener(scrollY)
	}
}

func (v *Viewport) ScrollY() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.scrollY
}

// Listeners returns the number of live subscriptions.
func (v *Viewport) Listeners() int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return len(v.listeners)
}

// Unsubscribe detaches the listener. Calling it again is a no-op.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.viewport.mu.Lock()
		defer s.viewport.mu.Unlock()

		delete(s.viewport.listeners, s.id)
	})
}
