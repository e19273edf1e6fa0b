package worker

import (
	"errors"
	"fmt"
)

var ErrUnhandledEvent = errors.New("no handler registered for event")

type EventHandler func(data []byte) error

// Router dispatches a broker message to every handler registered for its event.
type Router struct {
	handlers map[string][]EventHandler
}

func NewRouter(handlers map[string][]EventHandler) *Router {
	return &Router{
		handlers: handlers,
	}
}

func (this *Router) Handle(event string, data []byte) error {
	handlers, ok := this.handlers[event]
	if !ok || len(handlers) == 0 {
		return fmt.Errorf("%w: %q", ErrUnhandledEvent, event)
	}

	for _, handler := range handlers {
		err := handler(data)
		if err != nil {
			return fmt.Errorf("handle %s: %w", event, err)
		}
	}
	return nil
}
