package ui

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownEvent   = errors.New("unknown event")
	ErrUnknownHandler = errors.New("unknown handler")
)

// Event identifies a widget notification.
type Event int

const (
	EventShow Event = iota
	EventHide
	EventMap
	EventUnmap
	EventRealize
	EventUnrealize
	EventSizeRequest
	EventSizeAllocate
	EventParentSet
	EventAdd
	EventRemove
	EventCheckResize
	numEvents
)

var eventNames = [numEvents]string{
	EventShow:         "show",
	EventHide:         "hide",
	EventMap:          "map",
	EventUnmap:        "unmap",
	EventRealize:      "realize",
	EventUnrealize:    "unrealize",
	EventSizeRequest:  "size-request",
	EventSizeAllocate: "size-allocate",
	EventParentSet:    "parent-set",
	EventAdd:          "add",
	EventRemove:       "remove",
	EventCheckResize:  "check-resize",
}

func (e Event) String() string {
	if e < 0 || e >= numEvents {
		return fmt.Sprintf("Event(%d)", int(e))
	}
	return eventNames[e]
}

// ParseEvent returns the event with the given name, e.g. "size-allocate".
func ParseEvent(name string) (Event, error) {
	if i := slices.Index(eventNames[:], name); i >= 0 {
		return Event(i), nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownEvent)
}

// Signal describes one emitted event.
type Signal struct {
	Event  Event
	Widget Widget

	// Child is the added or removed widget for EventAdd and EventRemove.
	Child Widget
	// Allocation is set for EventSizeAllocate.
	Allocation Rect
	// Requisition is set for EventSizeRequest.
	Requisition Requisition
	// OldParent is set for EventParentSet.
	OldParent Widget
}

// Handler is called after the default action of an event. Returning true
// stops the remaining handlers from running.
type Handler func(Signal) bool

type HandlerID uint64

type handler struct {
	id    HandlerID
	event Event
	fn    Handler
}

// handlerTable holds the connected handlers of one widget in connection
// order.
type handlerTable struct {
	last     HandlerID
	handlers []handler
}

func (t *handlerTable) connect(ev Event, fn Handler) (HandlerID, error) {
	if ev < 0 || ev >= numEvents {
		return 0, fmt.Errorf("connect %v: %w", ev, ErrUnknownEvent)
	}
	if fn == nil {
		return 0, fmt.Errorf("connect %v: nil handler", ev)
	}
	t.last++
	t.handlers = append(t.handlers, handler{id: t.last, event: ev, fn: fn})
	return t.last, nil
}

func (t *handlerTable) disconnect(id HandlerID) error {
	i := slices.IndexFunc(t.handlers, func(h handler) bool { return h.id == id })
	if i < 0 {
		return fmt.Errorf("disconnect %d: %w", id, ErrUnknownHandler)
	}
	t.handlers = slices.Delete(t.handlers, i, i+1)
	return nil
}

// emit runs the handlers connected to s.Event and reports whether one of
// them stopped propagation. Handlers connected or disconnected while
// emitting take effect with the next emission.
func (t *handlerTable) emit(s Signal) bool {
	if len(t.handlers) == 0 {
		return false
	}
	for _, h := range slices.Clone(t.handlers) {
		if h.event == s.Event && h.fn(s) {
			return true
		}
	}
	return false
}
