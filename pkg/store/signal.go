package store

import (
	"reflect"
	"sync"
)

// subscriber is a registered change callback.
type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Signal is an observable value cell.
//
// Subscribers are called in subscription order after a Set or Update that
// actually changed the value. They run outside the cell's locks, so a
// subscriber may read the cell or even write it.
//
// Delivery is serialized and always carries the value current at delivery
// time. When writes race, one writer delivers on behalf of the others and
// intermediate values may be skipped, but the last value delivered is
// always the cell's final value.
type Signal[T any] struct {
	// value is the current value.
	value T

	// mu protects value.
	mu sync.RWMutex

	// equal decides whether a write changed the value.
	equal func(T, T) bool

	subs   []subscriber[T]
	nextID uint64

	// notifying is set while a goroutine is delivering; dirty asks it to
	// deliver again.
	notifying bool
	dirty     bool

	// delivered is the value last handed to subscribers. Only the
	// delivering goroutine touches it.
	delivered T

	// subMu protects subs, nextID, notifying and dirty.
	subMu sync.Mutex
}

// NewSignal creates a cell holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial, delivered: initial}
}

// WithEquals configures a custom equality function.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.Update(func(T) T { return value })
}

// Update atomically replaces the value with fn(current) and notifies
// subscribers if it changed.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	old := s.value
	next := fn(old)
	changed := !s.equals(old, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Subscribe registers fn to run after every change. The returned function
// unsubscribes; calling it more than once is harmless.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.subMu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

// Subscribers returns the number of active subscriptions.
func (s *Signal[T]) Subscribers() int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subs)
}

func (s *Signal[T]) unsubscribe(id uint64) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// notify delivers the current value to every subscriber. If another
// goroutine is already delivering, it is asked to run another round
// instead, so deliveries never interleave.
func (s *Signal[T]) notify() {
	s.subMu.Lock()
	if s.notifying {
		s.dirty = true
		s.subMu.Unlock()
		return
	}
	s.notifying = true
	s.subMu.Unlock()

	for {
		s.subMu.Lock()
		s.dirty = false
		subs := make([]subscriber[T], len(s.subs))
		copy(subs, s.subs)
		s.subMu.Unlock()

		// Read after clearing dirty so a racing write either lands here
		// or requests another round.
		value := s.Get()

		// Copy-before-notify keeps the lock out of subscriber code.
		if !s.equals(s.delivered, value) {
			s.delivered = value
			for _, sub := range subs {
				sub.fn(value)
			}
		}

		s.subMu.Lock()
		if !s.dirty {
			s.notifying = false
			s.subMu.Unlock()
			return
		}
		s.subMu.Unlock()
	}
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for strings and reflect.DeepEqual for everything else.
func defaultEquals[T any](a, b T) bool {
	if as, ok := any(a).(string); ok {
		return as == any(b).(string)
	}
	return reflect.DeepEqual(a, b)
}
