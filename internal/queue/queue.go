package queue

import (
	"fmt"
	"log"
	"sync"
)

const (
	TopicOpens  = "email_opens"
	TopicClicks = "link_clicks"
)

// Queue decouples the tracking HTTP responses from the interaction writes:
// handlers publish and return immediately, subscribers persist in the
// background. Payloads are JSON so the in-memory and AMQP implementations
// are interchangeable.
type Queue interface {
	Publish(topic string, body []byte) error
	Subscribe(topic string, handler func(body []byte) error) error
}

// InMemoryQueue fans published messages out to in-process subscribers.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(body []byte) error
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(body []byte) error),
	}
}

// Publish hands the message to every subscriber on its own goroutine. Handler
// errors are logged and dropped; the publisher has already moved on.
func (q *InMemoryQueue) Publish(topic string, body []byte) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		h := handler
		go func() {
			if err := h(body); err != nil {
				log.Printf("⚠️ %s handler failed: %v", topic, err)
			}
		}()
	}
	return nil
}

func (q *InMemoryQueue) Subscribe(topic string, handler func(body []byte) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

var _ Queue = (*InMemoryQueue)(nil)
