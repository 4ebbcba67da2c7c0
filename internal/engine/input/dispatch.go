package input

// Handler receives one event.
type Handler func(Event)

type registration struct {
	id int
	h  Handler
}

// Dispatcher fans events out to handlers registered per event type. It is used from
// the main thread only.
type Dispatcher struct {
	handlers map[EventType][]registration
	nextID   int
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventType][]registration)}
}

// On registers h for events of type t. The returned function removes it again and
// is safe to call more than once.
func (d *Dispatcher) On(t EventType, h Handler) (remove func()) {
	d.nextID++
	id := d.nextID
	d.handlers[t] = append(d.handlers[t], registration{id: id, h: h})

	return func() {
		regs := d.handlers[t]
		for i, r := range regs {
			if r.id == id {
				d.handlers[t] = append(regs[:i:i], regs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers e to every handler registered for its type, in registration order.
func (d *Dispatcher) Dispatch(e Event) {
	// Copy so handlers may unregister themselves while being called.
	regs := append([]registration(nil), d.handlers[e.Type]...)
	for _, r := range regs {
		r.h(e)
	}
}

// Count returns the number of handlers registered for t.
func (d *Dispatcher) Count(t EventType) int {
	return len(d.handlers[t])
}

// Total returns the number of handlers across all event types.
func (d *Dispatcher) Total() int {
	n := 0
	for _, regs := range d.handlers {
		n += len(regs)
	}
	return n
}
