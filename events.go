package fastauth

import (
	"context"
	"sync"
)

// Event names a point in the user lifecycle hosts can hook into
type Event string

const (
	// EventRegister fires after a user is registered
	EventRegister Event = "on_register"
	// EventLogin fires after a user logs in
	EventLogin Event = "on_login"
	// EventDelete fires after a user is deleted, the handler receives
	// the deleted snapshot
	EventDelete Event = "on_delete"
)

// EventHandler receives the user the lifecycle event is about
type EventHandler[T UserRecord] func(ctx context.Context, user T) error

// eventRegistry keeps a single handler slot per event name. A later
// registration for the same event silently replaces the earlier one,
// that is the contract, not an accident
type eventRegistry[T UserRecord] struct {
	mu       sync.RWMutex
	handlers map[Event]EventHandler[T]
}

func newEventRegistry[T UserRecord]() *eventRegistry[T] {
	return &eventRegistry[T]{
		handlers: make(map[Event]EventHandler[T]),
	}
}

func (r *eventRegistry[T]) register(event Event, handler EventHandler[T]) error {
	switch event {
	case EventRegister, EventLogin, EventDelete:
	default:
		return ErrUnknownEvent
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if handler == nil {
		delete(r.handlers, event)
		return nil
	}

	r.handlers[event] = handler
	return nil
}

// dispatch runs the registered handler inline. No handler registered is
// not an error
func (r *eventRegistry[T]) dispatch(ctx context.Context, event Event, user T) error {
	r.mu.RLock()
	handler, ok := r.handlers[event]
	r.mu.RUnlock()

	if !ok {
		return nil
	}

	return handler(ctx, user)
}
