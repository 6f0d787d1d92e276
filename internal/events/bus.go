// Package events carries run and profile notifications between components
// without coupling them: publishing never blocks, slow consumers drop.
package events

import (
	"context"
	"sync"
	"time"
)

// Event types published by the app.
const (
	TypeRunStarted    = "run.started"
	TypeRunStopped    = "run.stopped"
	TypeClick         = "click.performed"
	TypeLoopComplete  = "loop.completed"
	TypePointCaptured = "point.captured"
	TypeProfileSaved  = "profile.saved"
	TypeProfileLoaded = "profile.loaded"
)

type Event struct {
	Type      string
	Timestamp time.Time
	Data      map[string]interface{}
}

type EventHandler interface {
	Handle(event Event)
	GetID() string
}

// NewHandler wraps a function as an EventHandler.
func NewHandler(id string, fn func(Event)) EventHandler {
	return &funcHandler{id: id, fn: fn}
}

type funcHandler struct {
	id string
	fn func(Event)
}

func (h *funcHandler) Handle(event Event) { h.fn(event) }
func (h *funcHandler) GetID() string      { return h.id }

type Bus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
	buffer      chan Event
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

func NewBus(bufferSize int) *Bus {
	ctx, cancel := context.WithCancel(context.Background())

	bus := &Bus{
		subscribers: make(map[string][]EventHandler),
		buffer:      make(chan Event, bufferSize),
		ctx:         ctx,
		cancel:      cancel,
	}

	bus.startWorker()
	return bus
}

// Publish stamps and queues the event. When the buffer is full the event is
// dropped rather than blocking the caller.
func (b *Bus) Publish(eventType string, data map[string]interface{}) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}

	select {
	case b.buffer <- event:
	case <-b.ctx.Done():
	default:
		// buffer full, drop
	}
}

func (b *Bus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// SubscribeAll registers the handler for every known event type.
func (b *Bus) SubscribeAll(handler EventHandler) {
	for _, t := range []string{
		TypeRunStarted,
		TypeRunStopped,
		TypeClick,
		TypeLoopComplete,
		TypePointCaptured,
		TypeProfileSaved,
		TypeProfileLoaded,
	} {
		b.Subscribe(t, handler)
	}
}

// Shutdown stops the dispatch worker. Publishes after shutdown are dropped.
func (b *Bus) Shutdown() {
	b.cancel()
	b.wg.Wait()
}

func (b *Bus) startWorker() {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		for {
			select {
			case event := <-b.buffer:
				b.dispatchEvent(event)
			case <-b.ctx.Done():
				return
			}
		}
	}()
}

func (b *Bus) dispatchEvent(event Event) {
	b.mu.RLock()
	handlers := make([]EventHandler, len(b.subscribers[event.Type]))
	copy(handlers, b.subscribers[event.Type])
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h EventHandler) {
			defer func() {
				if r := recover(); r != nil {
					// Keep dispatching even if a handler panics
				}
			}()
			h.Handle(event)
		}(handler)
	}
}
