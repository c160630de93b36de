package notify

import (
	"context"
	"sync"
)

// InMemoryPublisher records events. Default for deployments without a broker
// and for asserting delivery in tests.
type InMemoryPublisher struct {
	mu     sync.Mutex
	events []Event
	buf    chan Event
	done   chan struct{}
	wg     sync.WaitGroup
}

// Option configures a publisher.
type Option func(*InMemoryPublisher)

// WithAsyncBuffer makes Emit enqueue instead of appending synchronously.
// Events are dropped when the buffer is full and drained on Close.
func WithAsyncBuffer(size int) Option {
	return func(p *InMemoryPublisher) {
		p.buf = make(chan Event, size)
	}
}

func NewMemory(opts ...Option) *InMemoryPublisher {
	p := &InMemoryPublisher{done: make(chan struct{})}
	for _, opt := range opts {
		opt(p)
	}
	if p.buf != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

func (p *InMemoryPublisher) drain() {
	defer p.wg.Done()
	for {
		select {
		case event := <-p.buf:
			p.append(event)
		case <-p.done:
			for {
				select {
				case event := <-p.buf:
					p.append(event)
				default:
					return
				}
			}
		}
	}
}

func (p *InMemoryPublisher) append(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *InMemoryPublisher) Emit(_ context.Context, event Event) error {
	if p.buf == nil {
		p.append(event)
		return nil
	}
	select {
	case p.buf <- event:
	default:
		// Buffer full: drop. Notifications are best-effort.
	}
	return nil
}

func (p *InMemoryPublisher) Close() {
	select {
	case <-p.done:
		return
	default:
	}
	close(p.done)
	p.wg.Wait()
}

// Events returns a copy of everything recorded so far.
func (p *InMemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event{}, p.events...)
}
