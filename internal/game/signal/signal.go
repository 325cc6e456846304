// Package signal provides the observer primitive used for health, death,
// stat and skill notifications.
//
// Signals are owned by a single simulation goroutine and are not safe for
// concurrent use.
package signal

// Signal is a multicast notification channel carrying a payload of type T.
// The zero value is ready to use.
type Signal[T any] struct {
	handlers []*handler[T]
}

type handler[T any] struct {
	fn     func(T)
	active bool
}

// Subscription detaches a handler from its signal.
type Subscription interface {
	Unsubscribe()
}

type subscription[T any] struct {
	sig *Signal[T]
	h   *handler[T]
}

// Unsubscribe removes the handler. Safe to call more than once.
func (s *subscription[T]) Unsubscribe() {
	if s.h == nil || !s.h.active {
		return
	}
	s.h.active = false
	s.sig.compact()
}

// Subscribe registers fn and returns a handle that removes it.
// A nil fn is ignored.
func (s *Signal[T]) Subscribe(fn func(T)) Subscription {
	if fn == nil {
		return &subscription[T]{}
	}
	h := &handler[T]{fn: fn, active: true}
	s.handlers = append(s.handlers, h)
	return &subscription[T]{sig: s, h: h}
}

// Emit calls every subscribed handler in subscription order.
// Handlers added during Emit are not called until the next emission;
// handlers removed during Emit are skipped if not yet reached.
func (s *Signal[T]) Emit(v T) {
	if s == nil || len(s.handlers) == 0 {
		return
	}
	snapshot := make([]*handler[T], len(s.handlers))
	copy(snapshot, s.handlers)
	for _, h := range snapshot {
		if h.active {
			h.fn(v)
		}
	}
}

// Len returns the number of active handlers.
func (s *Signal[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.handlers)
}

// Clear detaches every handler.
func (s *Signal[T]) Clear() {
	for _, h := range s.handlers {
		h.active = false
	}
	s.handlers = nil
}

func (s *Signal[T]) compact() {
	n := 0
	for _, h := range s.handlers {
		if h.active {
			s.handlers[n] = h
			n++
		}
	}
	clear(s.handlers[n:])
	s.handlers = s.handlers[:n]
}

// Group collects subscriptions so an owner can drop all of them on teardown.
type Group struct {
	subs []Subscription
}

// Add tracks sub and returns it.
func (g *Group) Add(sub Subscription) Subscription {
	g.subs = append(g.subs, sub)
	return sub
}

// Close unsubscribes everything tracked by the group.
func (g *Group) Close() {
	for _, sub := range g.subs {
		sub.Unsubscribe()
	}
	g.subs = nil
}
