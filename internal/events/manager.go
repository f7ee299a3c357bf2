package events

import (
	"reflect"
	"sync"

	"TaiGate/pkg/logger"
)

// Callback receives events of the single type it was subscribed for.
type Callback func(evt *Event)

// Handler receives every event the manager emits. OnEvent fires for each
// emission; then exactly one of the specific methods fires, chosen by the
// event's payload tag (or OnError when the type is Error).
type Handler interface {
	OnEvent(evt *Event)
	OnTick(evt *Event, tick *Tick)
	OnOrder(evt *Event, order *Order)
	OnPosition(evt *Event, position *Position)
	OnError(evt *Event, err error)
}

// Manager decouples an adapter from its consumers: narrow callbacks keyed by
// event type plus broad handlers, fan-out on emit, one subscriber's panic
// never blocks delivery to the rest.
type Manager struct {
	mu        sync.Mutex
	callbacks map[Type]map[uintptr]Callback
	handlers  map[Handler]struct{}
	log       logger.Logger
}

func NewManager(lg logger.Logger) *Manager {
	return &Manager{
		callbacks: make(map[Type]map[uintptr]Callback),
		handlers:  make(map[Handler]struct{}),
		log:       lg,
	}
}

// callbackKey identifies a callback for subscribe/unsubscribe pairing.
// Two references to the same function share a key, so duplicate
// subscription is a no-op.
func callbackKey(cb Callback) uintptr {
	return reflect.ValueOf(cb).Pointer()
}

// Subscribe registers cb for events of eType. Registering the same
// function for the same type again has no additional effect.
func (m *Manager) Subscribe(eType Type, cb Callback) {
	if cb == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.callbacks[eType]
	if !ok {
		set = make(map[uintptr]Callback)
		m.callbacks[eType] = set
	}
	set[callbackKey(cb)] = cb
}

// Unsubscribe removes a prior registration. Removing a callback that was
// never registered is a no-op.
func (m *Manager) Unsubscribe(eType Type, cb Callback) {
	if cb == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if set, ok := m.callbacks[eType]; ok {
		delete(set, callbackKey(cb))
	}
}

// SubscribeAll registers a broad handler. Duplicate registration is a no-op.
func (m *Manager) SubscribeAll(h Handler) {
	if h == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[h] = struct{}{}
}

// UnsubscribeAll removes a broad handler, no-op if absent.
func (m *Manager) UnsubscribeAll(h Handler) {
	if h == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.handlers, h)
}

// Clear removes every subscription. Used at adapter teardown.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = make(map[Type]map[uintptr]Callback)
	m.handlers = make(map[Handler]struct{})
}

// Emit delivers evt to every callback registered for its type and then to
// every broad handler. The subscriber sets are snapshotted under the lock
// first, so a subscriber that re-subscribes or unsubscribes from inside its
// own invocation does not affect the current fan-out.
func (m *Manager) Emit(evt *Event) {
	if evt == nil {
		return
	}

	m.mu.Lock()
	cbs := make([]Callback, 0, len(m.callbacks[evt.Type]))
	for _, cb := range m.callbacks[evt.Type] {
		cbs = append(cbs, cb)
	}
	hs := make([]Handler, 0, len(m.handlers))
	for h := range m.handlers {
		hs = append(hs, h)
	}
	m.mu.Unlock()

	for _, cb := range cbs {
		m.deliver(evt, cb)
	}

	for _, h := range hs {
		m.dispatch(evt, h)
	}
}

func (m *Manager) deliver(evt *Event, cb Callback) {
	defer m.recoverSubscriber(evt)
	cb(evt)
}

func (m *Manager) dispatch(evt *Event, h Handler) {
	defer m.recoverSubscriber(evt)

	h.OnEvent(evt)

	switch {
	case evt.Tick != nil:
		h.OnTick(evt, evt.Tick)
	case evt.Order != nil:
		h.OnOrder(evt, evt.Order)
	case evt.Position != nil:
		h.OnPosition(evt, evt.Position)
	case evt.Type == Error:
		h.OnError(evt, evt.Err)
	}
}

func (m *Manager) recoverSubscriber(evt *Event) {
	if r := recover(); r != nil {
		if m.log != nil {
			m.log.Errorf("subscriber panic on %s event: %v", evt.Type, r)
		}
	}
}
